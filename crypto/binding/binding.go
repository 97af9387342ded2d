// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package binding cryptographically binds the three components of a
// witness commitment — the program being proved, the private trace
// digest, and the public inputs — into one digest a verifier can
// check without re-deriving any of the three itself.
package binding

import "crypto/sha256"

// Witness3 binds a program id, a trace digest, and public inputs into
// a single commitment, domain-separating each leaf by position so that
// swapping two same-length fields never produces a colliding digest.
func Witness3(programID, traceDigest, publicInputs []byte) []byte {
	h := sha256.New()
	h.Write([]byte{0})
	h.Write(programID)
	leaf0 := h.Sum(nil)

	h.Reset()
	h.Write([]byte{1})
	h.Write(traceDigest)
	leaf1 := h.Sum(nil)

	h.Reset()
	h.Write([]byte{2})
	h.Write(publicInputs)
	leaf2 := h.Sum(nil)

	h.Reset()
	h.Write(leaf0)
	h.Write(leaf1)
	h.Write(leaf2)
	return h.Sum(nil)
}
