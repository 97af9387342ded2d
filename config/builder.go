// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the runtime-tunable parameters of the execution
// stack: the Layer-0 gas schedule and limit, the witness size policy,
// and the session-type recursion depth bound — assembled through a
// fluent Builder in the same style as consensus parameter builders.
package config

import (
	"fmt"

	"github.com/timewave-computer/causality/l0"
	"github.com/timewave-computer/causality/witness"
)

// Profile names a preset parameter set.
type Profile string

const (
	DevelopmentProfile Profile = "development"
	ProductionProfile   Profile = "production"
	StrictProfile       Profile = "strict"
)

// Config holds every tunable parameter of an execution/compilation run.
type Config struct {
	GasSchedule               l0.GasSchedule `json:"-"`
	GasLimit                  uint64         `json:"gasLimit"`
	WitnessPolicy             witness.Policy `json:"witnessPolicy"`
	MaxSessionRecursionDepth  int            `json:"maxSessionRecursionDepth"`
	MaxInstructionsPerProgram int            `json:"maxInstructionsPerProgram"`
}

// Builder provides a fluent interface for constructing a Config,
// accumulating the first validation error encountered and surfacing it
// at Build.
type Builder struct {
	config *Config
	err    error
}

// NewBuilder starts from sensible defaults: a uniform gas schedule, the
// spec's default witness size bounds, and a session recursion depth
// generous enough for realistic protocols but bounded against runaway
// rec X.S unfolding.
func NewBuilder() *Builder {
	return &Builder{
		config: &Config{
			GasSchedule:               l0.UniformGasSchedule(),
			GasLimit:                  1_000_000,
			WitnessPolicy:             witness.DefaultPolicy(),
			MaxSessionRecursionDepth:  64,
			MaxInstructionsPerProgram: 1 << 20,
		},
	}
}

// FromProfile loads a named preset.
func (b *Builder) FromProfile(p Profile) *Builder {
	if b.err != nil {
		return b
	}
	switch p {
	case DevelopmentProfile:
		clone := DevelopmentConfig
		b.config = &clone
	case ProductionProfile:
		clone := ProductionConfig
		b.config = &clone
	case StrictProfile:
		clone := StrictConfig
		b.config = &clone
	default:
		b.err = fmt.Errorf("config: unknown profile %q", p)
	}
	return b
}

// WithGasLimit sets the per-execution gas ceiling.
func (b *Builder) WithGasLimit(limit uint64) *Builder {
	if b.err != nil {
		return b
	}
	if limit == 0 {
		b.err = fmt.Errorf("config: gas limit must be positive")
		return b
	}
	b.config.GasLimit = limit
	return b
}

// WithGasSchedule overrides the default uniform per-opcode costs.
func (b *Builder) WithGasSchedule(schedule l0.GasSchedule) *Builder {
	if b.err != nil {
		return b
	}
	if len(schedule) == 0 {
		b.err = fmt.Errorf("config: gas schedule must not be empty")
		return b
	}
	b.config.GasSchedule = schedule
	return b
}

// WithWitnessPolicy overrides the witness size bounds.
func (b *Builder) WithWitnessPolicy(policy witness.Policy) *Builder {
	if b.err != nil {
		return b
	}
	if policy.MaxInputBytes <= 0 || policy.MaxOutputBytes <= 0 {
		b.err = fmt.Errorf("config: witness policy bounds must be positive")
		return b
	}
	b.config.WitnessPolicy = policy
	return b
}

// WithMaxSessionRecursionDepth sets Config.MaxSessionRecursionDepth.
// The value is stored only: the session package does not read it
// (session.VerifyDeclaration checks against
// session.DefaultMaxRecursionDepth), and Channel.Progress places no
// bound on unfolding.
func (b *Builder) WithMaxSessionRecursionDepth(depth int) *Builder {
	if b.err != nil {
		return b
	}
	if depth < 1 {
		b.err = fmt.Errorf("config: max session recursion depth must be at least 1, got %d", depth)
		return b
	}
	b.config.MaxSessionRecursionDepth = depth
	return b
}

// WithMaxInstructionsPerProgram bounds compiled program size.
func (b *Builder) WithMaxInstructionsPerProgram(max int) *Builder {
	if b.err != nil {
		return b
	}
	if max < 1 {
		b.err = fmt.Errorf("config: max instructions per program must be at least 1, got %d", max)
		return b
	}
	b.config.MaxInstructionsPerProgram = max
	return b
}

// Build returns the final, validated Config.
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.config.GasLimit == 0 {
		return nil, fmt.Errorf("config: gas limit must be positive")
	}
	return b.config, nil
}

// Preset configurations, mirroring the conservative/balanced/fast
// tradeoffs a consensus parameter set would name.
var (
	DevelopmentConfig = Config{
		GasSchedule:               l0.UniformGasSchedule(),
		GasLimit:                  10_000_000,
		WitnessPolicy:             witness.Policy{MaxInputBytes: witness.DefaultMaxInputBytes, MaxOutputBytes: witness.DefaultMaxOutputBytes},
		MaxSessionRecursionDepth:  256,
		MaxInstructionsPerProgram: 1 << 22,
	}

	ProductionConfig = Config{
		GasSchedule:               l0.UniformGasSchedule(),
		GasLimit:                  1_000_000,
		WitnessPolicy:             witness.DefaultPolicy(),
		MaxSessionRecursionDepth:  64,
		MaxInstructionsPerProgram: 1 << 20,
	}

	StrictConfig = Config{
		GasSchedule:               l0.UniformGasSchedule(),
		GasLimit:                  100_000,
		WitnessPolicy:             witness.Policy{MaxInputBytes: 1 << 20, MaxOutputBytes: 1 << 16},
		MaxSessionRecursionDepth:  16,
		MaxInstructionsPerProgram: 1 << 16,
	}
)
