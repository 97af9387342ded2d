// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package witness

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timewave-computer/causality/l0"
)

func buildProgram() (*l0.Program, *l0.ExecuteResult) {
	program := &l0.Program{
		Instructions: []l0.Instruction{
			l0.Witness(0),
			l0.Return(0),
		},
		WitnessTable: []*l0.Value{l0.Int(41)},
	}
	witnessSrc := l0.NewSliceWitnessSource(program.WitnessTable)
	result, err := l0.Execute(program, nil, witnessSrc, nil, 0)
	if err != nil {
		panic(err)
	}
	return program, result
}

func TestWitnessOfDeterministic(t *testing.T) {
	program, result := buildProgram()
	w1, err := WitnessOf(program, result, DefaultPolicy())
	require.NoError(t, err)
	w2, err := WitnessOf(program, result, DefaultPolicy())
	require.NoError(t, err)
	require.Equal(t, w1.Id(), w2.Id())
	require.Equal(t, int64(41), result.Result.Int)
}

func TestWitnessOfRejectsOverSizeOutput(t *testing.T) {
	program, result := buildProgram()
	_, err := WitnessOf(program, result, Policy{MaxInputBytes: DefaultMaxInputBytes, MaxOutputBytes: 0})
	var over *OverSize
	require.ErrorAs(t, err, &over)
	require.Equal(t, "output", over.Field)
}

func TestWitnessCommitmentDeterministicAndSensitiveToFields(t *testing.T) {
	program, result := buildProgram()
	w1, err := WitnessOf(program, result, DefaultPolicy())
	require.NoError(t, err)
	w2, err := WitnessOf(program, result, DefaultPolicy())
	require.NoError(t, err)
	require.Equal(t, w1.Commitment(), w2.Commitment())

	other := *w1
	other.PublicInputs = append([]byte{0xff}, w1.PublicInputs...)
	require.NotEqual(t, w1.Commitment(), other.Commitment())
}

func TestVerificationKeyOfDeterministic(t *testing.T) {
	program, _ := buildProgram()
	vk1 := VerificationKeyOf(program.Id(), ProofSystemGroth16)
	vk2 := VerificationKeyOf(program.Id(), ProofSystemGroth16)
	require.Equal(t, vk1.Digest, vk2.Digest)

	vk3 := VerificationKeyOf(program.Id(), ProofSystemPlonk)
	require.NotEqual(t, vk1.Digest, vk3.Digest)
}

func TestCachePutGet(t *testing.T) {
	program, result := buildProgram()
	w, err := WitnessOf(program, result, DefaultPolicy())
	require.NoError(t, err)

	cache := NewCache(Policy{MaxInputBytes: int64(w.TraceBytes)})
	cache.Put(w)
	got, ok := cache.Get(w.Id())
	require.True(t, ok)
	require.Equal(t, w.Id(), got.Id())
}
