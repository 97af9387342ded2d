// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package witness implements the ZK Witness Interface of spec.md §4.J:
// deriving a size-bounded witness from an execution trace, extracting
// its public inputs, and naming a verification key for a (program,
// proof system) pair. It never performs real zero-knowledge proving —
// that is out of scope (spec.md Non-goals) — but models the interface
// a prover backend would implement.
package witness

import (
	"fmt"

	"github.com/timewave-computer/causality/crypto/binding"
	"github.com/timewave-computer/causality/id"
	"github.com/timewave-computer/causality/l0"
)

// Default size bounds from spec.md §4.J.
const (
	DefaultMaxInputBytes  = 32 << 20 // 32 MiB
	DefaultMaxOutputBytes = 1 << 20  // 1 MiB
)

// Policy bounds the size of witnesses produced by WitnessOf.
type Policy struct {
	MaxInputBytes  int64
	MaxOutputBytes int64
}

// DefaultPolicy returns spec.md §4.J's default size bounds.
func DefaultPolicy() Policy {
	return Policy{MaxInputBytes: DefaultMaxInputBytes, MaxOutputBytes: DefaultMaxOutputBytes}
}

// OverSize is returned when a trace's encoded witness, or its derived
// public inputs, exceeds the configured Policy bound.
type OverSize struct {
	Field string // "input" or "output"
	Limit int64
	Got   int64
}

func (e *OverSize) Error() string {
	return fmt.Sprintf("witness: %s exceeds size bound: got %d bytes, limit %d", e.Field, e.Got, e.Limit)
}

// Witness is the content-addressed proof witness for one program
// execution: the program it proves, a digest of the full trace (the
// prover's private input), and the bounded public inputs a verifier
// checks against.
type Witness struct {
	ProgramID    id.Id
	TraceDigest  id.Id
	PublicInputs []byte
	TraceBytes   int64
}

// Id computes the witness's own content address.
func (w *Witness) Id() id.Id {
	buf := append([]byte{}, w.ProgramID.Bytes()...)
	buf = append(buf, w.TraceDigest.Bytes()...)
	buf = id.EncodeLenPrefixed(buf, w.PublicInputs)
	return id.Hash(buf)
}

// WitnessOf derives a Witness from a completed execution: witness_of
// (trace) → witness (spec.md §4.J). The trace is encoded canonically
// and digested (never embedded verbatim — the digest is the private
// witness commitment); the final result value's canonical bytes become
// the public inputs, since that is the only part of an execution a
// verifier needs to check against.
func WitnessOf(program *l0.Program, result *l0.ExecuteResult, policy Policy) (*Witness, error) {
	traceBytes := encodeTrace(result.Trace)
	if int64(len(traceBytes)) > policy.MaxInputBytes {
		return nil, &OverSize{Field: "input", Limit: policy.MaxInputBytes, Got: int64(len(traceBytes))}
	}

	publicInputs := result.Result.CanonicalBytes()
	if int64(len(publicInputs)) > policy.MaxOutputBytes {
		return nil, &OverSize{Field: "output", Limit: policy.MaxOutputBytes, Got: int64(len(publicInputs))}
	}

	return &Witness{
		ProgramID:    program.Id(),
		TraceDigest:  id.Hash(traceBytes),
		PublicInputs: publicInputs,
		TraceBytes:   int64(len(traceBytes)),
	}, nil
}

// Commitment binds the witness's program id, trace digest, and public
// inputs into a single digest a verifier can check a submitted proof
// against without needing the full trace.
func (w *Witness) Commitment() []byte {
	return binding.Witness3(w.ProgramID.Bytes(), w.TraceDigest.Bytes(), w.PublicInputs)
}

// PublicInputsOf returns the bytes a verifier checks a proof against —
// public_inputs_of(witness) → bytes (spec.md §4.J).
func PublicInputsOf(w *Witness) []byte { return w.PublicInputs }

func encodeTrace(trace []l0.TraceEntry) []byte {
	var buf []byte
	var lenBytes [8]byte
	putUint64LE(lenBytes[:], uint64(len(trace)))
	buf = append(buf, lenBytes[:]...)
	for _, entry := range trace {
		var pc [4]byte
		putUint32LE(pc[:], entry.PC)
		buf = append(buf, pc[:]...)
		buf = append(buf, byte(entry.Instr.Op))
		putUint64LE(lenBytes[:], uint64(len(entry.RegistersRead)))
		buf = append(buf, lenBytes[:]...)
		for _, r := range entry.RegistersRead {
			var b [4]byte
			putUint32LE(b[:], uint32(r))
			buf = append(buf, b[:]...)
		}
		putUint64LE(lenBytes[:], uint64(len(entry.RegistersWritten)))
		buf = append(buf, lenBytes[:]...)
		for _, r := range entry.RegistersWritten {
			var b [4]byte
			putUint32LE(b[:], uint32(r))
			buf = append(buf, b[:]...)
		}
	}
	return buf
}

func putUint64LE(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

func putUint32LE(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
