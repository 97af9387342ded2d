// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package l0

import (
	"fmt"

	causalitymath "github.com/timewave-computer/causality/utils/math"
)

// WitnessSource yields the ordered sequence of values a program
// consumes via Witness. A program's witness consumption order always
// equals its trace order (spec.md §5, "Ordering guarantees").
type WitnessSource interface {
	// Next returns the next witness value, or ok=false if exhausted.
	Next() (*Value, bool)
}

// SliceWitnessSource is the in-memory WitnessSource used by
// conformance tests and the CLI: a fixed ordered slice of values.
type SliceWitnessSource struct {
	values []*Value
	pos    int
}

func NewSliceWitnessSource(values []*Value) *SliceWitnessSource {
	return &SliceWitnessSource{values: values}
}

func (s *SliceWitnessSource) Next() (*Value, bool) {
	if s.pos >= len(s.values) {
		return nil, false
	}
	v := s.values[s.pos]
	s.pos++
	return v, true
}

// GasSchedule maps each opcode to its cost. The spec leaves the exact
// schedule as an open question and states the existing implementation
// uses a uniform cost; UniformGasSchedule below is that default, but it
// is plain data so a production schedule can be substituted without
// code changes (SPEC_FULL.md §11).
type GasSchedule map[Opcode]uint64

// UniformGasSchedule charges 1 gas per instruction; the Gas
// instruction's own base cost is 0, so it charges only its Cost field.
func UniformGasSchedule() GasSchedule {
	return GasSchedule{
		OpWitness: 1, OpMove: 1, OpApply: 1, OpAlloc: 1, OpConsume: 1,
		OpTensor: 1, OpUntensor: 1, OpInl: 1, OpInr: 1, OpMatch: 1,
		OpJump: 1, OpReturn: 1, OpGas: 0,
	}
}

// TraceEntry records one executed instruction: its program counter, the
// instruction itself, and the registers it read and wrote. The
// concatenation of TraceEntries is the proof witness (spec.md §4.B).
type TraceEntry struct {
	PC              uint32
	Instr           Instruction
	RegistersRead   []Register
	RegistersWritten []Register
}

type frame struct {
	pc     uint32
	regs   *RegisterFile
	outReg Register // where the caller wants this frame's Return value
}

// State is the full Layer-0 execution state: (PC, register file, effect
// log, gas counter, trace). The effect log and call stack are execution
// state too, but are folded into State's private fields; PC and the
// register file surface through PC()/Registers() for step-by-step
// inspection.
type State struct {
	program *Program
	schedule GasSchedule
	witness WitnessSource

	frames []*frame
	witnessPos int

	GasUsed uint64
	GasLimit uint64

	Trace []TraceEntry

	// EffectLog records content-addressed effect records appended by
	// higher layers (the effect algebra) while replaying a compiled
	// program; pure L0 programs never append to it themselves.
	EffectLog []EffectLogEntry

	done   bool
	result *Value
	err    error
}

// EffectLogEntry is an opaque, content-addressed record appended to the
// execution's effect log by Layer-2 handlers.
type EffectLogEntry struct {
	Kind string
	Data []byte
}

// NewState constructs an initial execution state: PC 0, the given
// initial registers in frame 0, an empty trace, and zero gas used.
func NewState(program *Program, initialRegisters map[Register]*Value, witness WitnessSource, schedule GasSchedule, gasLimit uint64) *State {
	regs := NewRegisterFile()
	for reg, v := range initialRegisters {
		regs.Set(reg, v)
	}
	if schedule == nil {
		schedule = UniformGasSchedule()
	}
	return &State{
		program:  program,
		schedule: schedule,
		witness:  witness,
		frames:   []*frame{{pc: 0, regs: regs}},
		GasLimit: gasLimit,
	}
}

// Done reports whether execution has halted: by a Return at the
// top-level frame, by running past the top-level frame's last
// instruction (both success), or by failing.
func (s *State) Done() bool { return s.done }

// Result is the top-level Return value once Done() is true and Err() is
// nil.
func (s *State) Result() *Value { return s.result }

// Err is the failure, if any, that ended execution.
func (s *State) Err() error { return s.err }

// Registers exposes the current (innermost) frame's register file, for
// diagnostics and tests.
func (s *State) Registers() *RegisterFile { return s.top().regs }

// PC exposes the current (innermost) frame's program counter.
func (s *State) PC() uint32 { return s.top().pc }

func (s *State) top() *frame { return s.frames[len(s.frames)-1] }

func (s *State) chargeGas(cost uint64) error {
	used, err := causalitymath.Add64(s.GasUsed, cost)
	if err != nil || (s.GasLimit != 0 && used > s.GasLimit) {
		return ErrGasExhausted
	}
	s.GasUsed = used
	return nil
}

// Step advances execution by exactly one instruction. Step is total:
// every call either advances the PC (and possibly pushes/pops a frame)
// or sets Done()/Err() — it never blocks or loops internally.
func (s *State) Step() error {
	if s.done {
		return nil
	}
	f := s.top()
	if int(f.pc) >= len(s.program.Instructions) {
		// Falling off the end of the top frame with no explicit Return is
		// a normal halt, not a fault (spec.md §8 Scenario 1): whatever the
		// program last computed is already sitting in its registers, so
		// there is nothing further to do. A callee frame falling off the
		// end is a different matter — every compiled call site expects its
		// callee to end in Return, so that is still a genuine fault.
		if len(s.frames) == 1 {
			s.done = true
			return nil
		}
		s.done = true
		s.err = fmt.Errorf("%w: pc %d out of range", ErrInvalidInstruction, f.pc)
		return s.err
	}
	instr := s.program.Instructions[f.pc]

	cost := s.schedule[instr.Op]
	if instr.Op == OpGas {
		cost += instr.Cost
	}
	if err := s.chargeGas(cost); err != nil {
		s.done = true
		s.err = err
		return err
	}

	entry := TraceEntry{PC: f.pc, Instr: instr}
	advance := f.pc + 1

	switch instr.Op {
	case OpWitness:
		v, ok := s.witness.Next()
		if !ok {
			s.done, s.err = true, ErrWitnessExhausted
			return s.err
		}
		out := instr.Regs[0]
		f.regs.Set(out, v)
		entry.RegistersWritten = []Register{out}

	case OpMove:
		src, dst := instr.Regs[0], instr.Regs[1]
		v, err := f.regs.Take(src)
		if err != nil {
			s.done, s.err = true, err
			return err
		}
		f.regs.Set(dst, v)
		entry.RegistersRead = []Register{src}
		entry.RegistersWritten = []Register{dst}

	case OpApply:
		fnReg, argReg, outReg := instr.Regs[0], instr.Regs[1], instr.Regs[2]
		fnVal, err := f.regs.Take(fnReg)
		if err != nil {
			s.done, s.err = true, err
			return err
		}
		if fnVal.Kind != ValueClosure {
			s.done, s.err = true, ErrTypeMismatch
			return s.err
		}
		argVal, err := f.regs.Take(argReg)
		if err != nil {
			s.done, s.err = true, err
			return err
		}
		entry.RegistersRead = []Register{fnReg, argReg}

		f.pc++ // resume here in the caller once the callee returns
		callee := NewRegisterFile()
		callee.Set(0, fnVal.Closure.Env)
		callee.Set(1, argVal)
		s.frames = append(s.frames, &frame{pc: fnVal.Closure.EntryPC, regs: callee, outReg: outReg})
		s.Trace = append(s.Trace, entry)
		return nil

	case OpAlloc:
		valReg, outReg := instr.Regs[0], instr.Regs[1]
		v, err := f.regs.Take(valReg)
		if err != nil {
			s.done, s.err = true, err
			return err
		}
		res := &Resource{ResourceID: v.Id(), Inner: v}
		f.regs.Set(outReg, ResourceVal(res))
		entry.RegistersRead = []Register{valReg}
		entry.RegistersWritten = []Register{outReg}

	case OpConsume:
		resReg, outReg := instr.Regs[0], instr.Regs[1]
		v, err := f.regs.Take(resReg)
		if err != nil {
			s.done, s.err = true, err
			return err
		}
		if v.Kind != ValueResource {
			s.done, s.err = true, ErrTypeMismatch
			return s.err
		}
		f.regs.Set(outReg, v.Resource.Inner)
		entry.RegistersRead = []Register{resReg}
		entry.RegistersWritten = []Register{outReg}

	case OpTensor:
		aReg, bReg, outReg := instr.Regs[0], instr.Regs[1], instr.Regs[2]
		a, err := f.regs.Take(aReg)
		if err != nil {
			s.done, s.err = true, err
			return err
		}
		b, err := f.regs.Take(bReg)
		if err != nil {
			s.done, s.err = true, err
			return err
		}
		f.regs.Set(outReg, PairVal(a, b))
		entry.RegistersRead = []Register{aReg, bReg}
		entry.RegistersWritten = []Register{outReg}

	case OpUntensor:
		pairReg, aOut, bOut := instr.Regs[0], instr.Regs[1], instr.Regs[2]
		pair, err := f.regs.Take(pairReg)
		if err != nil {
			s.done, s.err = true, err
			return err
		}
		if pair.Kind != ValueTensor {
			s.done, s.err = true, ErrTypeMismatch
			return s.err
		}
		f.regs.Set(aOut, pair.Fst)
		f.regs.Set(bOut, pair.Snd)
		entry.RegistersRead = []Register{pairReg}
		entry.RegistersWritten = []Register{aOut, bOut}

	case OpInl:
		valReg, outReg := instr.Regs[0], instr.Regs[1]
		v, err := f.regs.Take(valReg)
		if err != nil {
			s.done, s.err = true, err
			return err
		}
		f.regs.Set(outReg, InlVal(v))
		entry.RegistersRead = []Register{valReg}
		entry.RegistersWritten = []Register{outReg}

	case OpInr:
		valReg, outReg := instr.Regs[0], instr.Regs[1]
		v, err := f.regs.Take(valReg)
		if err != nil {
			s.done, s.err = true, err
			return err
		}
		f.regs.Set(outReg, InrVal(v))
		entry.RegistersRead = []Register{valReg}
		entry.RegistersWritten = []Register{outReg}

	case OpMatch:
		sumReg := instr.Regs[0]
		v, err := f.regs.Take(sumReg)
		if err != nil {
			s.done, s.err = true, err
			return err
		}
		entry.RegistersRead = []Register{sumReg}
		switch v.Kind {
		case ValueSumLeft:
			f.regs.Set(sumReg, v.Inner)
			advance = instr.Targets[0]
		case ValueSumRight:
			f.regs.Set(sumReg, v.Inner)
			advance = instr.Targets[1]
		default:
			s.done, s.err = true, ErrTypeMismatch
			return s.err
		}
		entry.RegistersWritten = []Register{sumReg}

	case OpJump:
		advance = instr.Targets[0]

	case OpReturn:
		valReg := instr.Regs[0]
		v, err := f.regs.Take(valReg)
		if err != nil {
			s.done, s.err = true, err
			return err
		}
		entry.RegistersRead = []Register{valReg}
		s.Trace = append(s.Trace, entry)

		if len(s.frames) == 1 {
			s.done = true
			s.result = v
			return nil
		}
		s.frames = s.frames[:len(s.frames)-1]
		caller := s.top()
		caller.regs.Set(caller.outReg, v)
		return nil

	case OpGas:
		// cost already charged above; no register effect.

	default:
		s.done, s.err = true, ErrInvalidInstruction
		return s.err
	}

	f.pc = advance
	s.Trace = append(s.Trace, entry)
	return nil
}

// Run drives Step to completion. It is total: it always returns, either
// because Done() became true or because an error occurred.
func (s *State) Run() error {
	for !s.done {
		if err := s.Step(); err != nil {
			return err
		}
	}
	return s.err
}

// ExecuteResult is the output of Execute: the final top-level register
// file, the full instruction trace (the proof witness), and total gas
// used.
type ExecuteResult struct {
	FinalRegisters *RegisterFile
	Result         *Value
	Trace          []TraceEntry
	GasUsed        uint64
}

// Execute runs program to completion from initialRegisters, consuming
// witnessSource via Witness instructions, and returns the final
// registers, trace, and gas used. Execute is a pure function of its
// inputs (spec.md §8 property 6): identical (program, registers,
// witness) always yields an identical ExecuteResult or error.
func Execute(program *Program, initialRegisters map[Register]*Value, witnessSource WitnessSource, schedule GasSchedule, gasLimit uint64) (*ExecuteResult, error) {
	state := NewState(program, initialRegisters, witnessSource, schedule, gasLimit)
	if err := state.Run(); err != nil {
		return nil, err
	}
	return &ExecuteResult{
		FinalRegisters: state.Registers(),
		Result:         state.result,
		Trace:          state.Trace,
		GasUsed:        state.GasUsed,
	}, nil
}
