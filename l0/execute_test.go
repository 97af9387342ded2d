package l0

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestScenarioPureLiteral mirrors spec.md §8 Scenario 1: [Witness r0;
// Move r0 r1] with witness [42] returns 42.
func TestScenarioPureLiteral(t *testing.T) {
	program := &Program{Instructions: []Instruction{
		Witness(0),
		Move(0, 1),
	}}
	witness := NewSliceWitnessSource([]*Value{Int(42)})

	result, err := Execute(program, nil, witness, nil, 0)
	require.NoError(t, err)
	require.True(t, result.FinalRegisters.Occupied(1))
	v, _ := result.FinalRegisters.Peek(1)
	require.Equal(t, int64(42), v.Int)
}

// TestScenarioLinearConsume mirrors spec.md §8 Scenario 2: [Witness r0;
// Alloc r0 r1; Consume r1 r2; Return r2] executes to 7, and re-running
// with the same witness yields identical trace and gas.
func TestScenarioLinearConsume(t *testing.T) {
	program := &Program{Instructions: []Instruction{
		Witness(0),
		Alloc(0, 1),
		Consume(1, 2),
		Return(2),
	}}

	run := func() *ExecuteResult {
		witness := NewSliceWitnessSource([]*Value{Int(7)})
		result, err := Execute(program, nil, witness, nil, 0)
		require.NoError(t, err)
		return result
	}

	r1 := run()
	require.Equal(t, int64(7), r1.Result.Int)

	r2 := run()
	require.Equal(t, r1.GasUsed, r2.GasUsed)
	require.Equal(t, len(r1.Trace), len(r2.Trace))
	for i := range r1.Trace {
		require.Equal(t, r1.Trace[i].PC, r2.Trace[i].PC)
		require.Equal(t, r1.Trace[i].Instr.Op, r2.Trace[i].Instr.Op)
	}
}

func TestMoveEmptiesSource(t *testing.T) {
	program := &Program{Instructions: []Instruction{
		Witness(0),
		Move(0, 1),
	}}
	witness := NewSliceWitnessSource([]*Value{Int(1)})
	result, err := Execute(program, nil, witness, nil, 0)
	require.NoError(t, err)
	require.False(t, result.FinalRegisters.Occupied(0))
}

func TestRegisterEmptyFailure(t *testing.T) {
	program := &Program{Instructions: []Instruction{
		Move(0, 1),
	}}
	_, err := Execute(program, nil, NewSliceWitnessSource(nil), nil, 0)
	require.ErrorIs(t, err, ErrRegisterEmpty)
}

func TestWitnessExhaustedAtExactStep(t *testing.T) {
	program := &Program{Instructions: []Instruction{
		Witness(0),
		Witness(1),
	}}
	witness := NewSliceWitnessSource([]*Value{Int(1)})
	state := NewState(program, nil, witness, nil, 0)

	require.NoError(t, state.Step())
	err := state.Step()
	require.ErrorIs(t, err, ErrWitnessExhausted)
	require.Equal(t, uint32(1), state.PC())
}

func TestGasExhausted(t *testing.T) {
	program := &Program{Instructions: []Instruction{
		Witness(0),
		Move(0, 1),
	}}
	witness := NewSliceWitnessSource([]*Value{Int(1)})
	_, err := Execute(program, nil, witness, nil, 1)
	require.ErrorIs(t, err, ErrGasExhausted)
}

func TestTensorUntensorRoundTrip(t *testing.T) {
	program := &Program{Instructions: []Instruction{
		Witness(0),
		Witness(1),
		TensorOp(0, 1, 2),
		UntensorOp(2, 3, 4),
	}}
	witness := NewSliceWitnessSource([]*Value{Int(1), Int(2)})
	result, err := Execute(program, nil, witness, nil, 0)
	require.NoError(t, err)
	a, _ := result.FinalRegisters.Peek(3)
	b, _ := result.FinalRegisters.Peek(4)
	require.Equal(t, int64(1), a.Int)
	require.Equal(t, int64(2), b.Int)
}

func TestMatchBranchesOnSumConstructor(t *testing.T) {
	// program: witness r0 (a sum value), match r0 -> left:2 right:4
	//   2: Witness r1 (marker); Jump 5
	//   4: Witness r1 (other marker)
	//   5: Return r0 (whichever inner value Match unwrapped into r0)
	program := &Program{Instructions: []Instruction{
		Witness(0),            // 0
		Match(0, 2, 4),        // 1
		Witness(1),            // 2 (left branch marker, unused)
		Jump(5),               // 3
		Witness(1),            // 4 (right branch marker, unused)
		Return(0),             // 5
	}}

	witness := NewSliceWitnessSource([]*Value{InrVal(Int(99)), Int(0)})
	result, err := Execute(program, nil, witness, nil, 0)
	require.NoError(t, err)
	require.Equal(t, int64(99), result.Result.Int)
}

func TestApplyClosure(t *testing.T) {
	// Build a tiny top-level program that constructs a closure value via
	// witness (closures are produced by Layer-1 compilation, represented
	// here directly as a witnessed value) and applies it.
	closureProgram := &Program{Instructions: []Instruction{
		Witness(0), // r0 = closure value
		Witness(1), // r1 = argument
		Apply(0, 1, 2),
		Return(2),
	}}
	closureBody := []Instruction{
		Move(1, 2), // entry PC 0 of this mini body: move arg to r2
		Return(2),
	}
	full := &Program{
		Instructions: append(append([]Instruction{}, closureProgram.Instructions...), closureBody...),
	}
	entryPC := uint32(len(closureProgram.Instructions))
	witness := NewSliceWitnessSource([]*Value{
		ClosureVal(entryPC, UnitVal()),
		Int(55),
	})

	result, err := Execute(full, nil, witness, nil, 0)
	require.NoError(t, err)
	require.Equal(t, int64(55), result.Result.Int)
}
