// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package witness

import "github.com/timewave-computer/causality/id"

// ProofSystem names a backend a real prover/verifier would target. Only
// the name participates in key derivation here — no proof system is
// actually wired in (spec.md Non-goals).
type ProofSystem string

const (
	ProofSystemGroth16 ProofSystem = "groth16"
	ProofSystemPlonk   ProofSystem = "plonk"
	ProofSystemSTARK   ProofSystem = "stark"
)

// VerificationKey names the key a verifier would use to check proofs
// against a given program under a given proof system.
type VerificationKey struct {
	ProgramID   id.Id
	ProofSystem ProofSystem
	Digest      id.Id
}

// VerificationKeyOf derives verification_key_of(program_id, proof_system)
// → vk (spec.md §4.J): a deterministic function of the pair, so the same
// program compiled and proved under the same system always names the
// same key.
func VerificationKeyOf(programID id.Id, system ProofSystem) *VerificationKey {
	buf := append([]byte{}, programID.Bytes()...)
	buf = append(buf, []byte(system)...)
	return &VerificationKey{
		ProgramID:   programID,
		ProofSystem: system,
		Digest:      id.Hash(buf),
	}
}
