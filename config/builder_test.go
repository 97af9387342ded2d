// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timewave-computer/causality/witness"
)

func TestBuilderDefaults(t *testing.T) {
	cfg, err := NewBuilder().Build()
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), cfg.GasLimit)
	require.Equal(t, 64, cfg.MaxSessionRecursionDepth)
}

func TestBuilderRejectsZeroGasLimit(t *testing.T) {
	_, err := NewBuilder().WithGasLimit(0).Build()
	require.Error(t, err)
}

func TestBuilderFromProfile(t *testing.T) {
	cfg, err := NewBuilder().FromProfile(StrictProfile).Build()
	require.NoError(t, err)
	require.Equal(t, uint64(100_000), cfg.GasLimit)
	require.Equal(t, 16, cfg.MaxSessionRecursionDepth)
}

func TestBuilderRejectsUnknownProfile(t *testing.T) {
	_, err := NewBuilder().FromProfile("bogus").Build()
	require.Error(t, err)
}

func TestBuilderRejectsInvalidWitnessPolicy(t *testing.T) {
	_, err := NewBuilder().WithWitnessPolicy(witness.Policy{}).Build()
	require.Error(t, err)
}
