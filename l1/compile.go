// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package l1

import (
	"errors"
	"fmt"

	"github.com/timewave-computer/causality/l0"
	"github.com/timewave-computer/causality/linear"
)

// ErrUnsupportedCapture is returned when a Lambda's body references a
// variable bound outside the lambda itself. Compiling a closure that
// captures a runtime register would require synthesizing a
// ValueClosure's Env field from live register contents, which the
// closed, bit-stable Layer-0 instruction set (spec.md §6.1) has no
// opcode to do. Lambdas compiled by this package must be closed
// combinators; no pass in this module performs closure conversion
// (lifting captures into explicit extra parameters), so a capturing
// lambda is rejected here — see DESIGN.md.
var ErrUnsupportedCapture = errors.New("l1: compile: lambda captures a free variable")

// pendingClosure records a witnessed closure constant whose EntryPC is
// only known once all blocks have been laid out.
type pendingClosure struct {
	val      *l0.Value
	blockIdx int
}

// compiler holds the in-progress compilation state: one instruction
// block per (nested) lambda body, plus the shared witness table.
type compiler struct {
	blocks   [][]l0.Instruction
	nextFree []l0.Register
	witness  []*l0.Value
	pending  []pendingClosure
}

func newCompiler() *compiler {
	return &compiler{
		blocks:   [][]l0.Instruction{{}},
		nextFree: []l0.Register{0},
	}
}

func (c *compiler) newBlock() int {
	c.blocks = append(c.blocks, []l0.Instruction{})
	c.nextFree = append(c.nextFree, 0)
	return len(c.blocks) - 1
}

func (c *compiler) alloc(block int) l0.Register {
	r := c.nextFree[block]
	c.nextFree[block]++
	return r
}

func (c *compiler) emit(block int, instr l0.Instruction) int {
	c.blocks[block] = append(c.blocks[block], instr)
	return len(c.blocks[block]) - 1
}

func (c *compiler) pos(block int) uint32 { return uint32(len(c.blocks[block])) }

// Compile type-checks term (on a clone of ctx, so the caller's context
// is left untouched) and, on success, deterministically compiles it to
// a Layer-0 program: same term always yields a byte-identical
// instruction sequence (spec.md §4.D, §4.H).
func Compile(term *Term, ctx *linear.Context) (*l0.Program, error) {
	if _, err := Check(term, ctx.Clone()); err != nil {
		return nil, err
	}

	c := newCompiler()
	resultReg, err := c.compileTerm(term, 0, map[string]l0.Register{})
	if err != nil {
		return nil, err
	}
	c.emit(0, l0.Return(resultReg))

	offsets := make([]uint32, len(c.blocks))
	var total uint32
	for i, b := range c.blocks {
		offsets[i] = total
		total += uint32(len(b))
	}

	instructions := make([]l0.Instruction, 0, total)
	for i, b := range c.blocks {
		for _, instr := range b {
			if instr.Op == l0.OpMatch || instr.Op == l0.OpJump {
				targets := make([]uint32, len(instr.Targets))
				for j, t := range instr.Targets {
					targets[j] = t + offsets[i]
				}
				instr.Targets = targets
			}
			instructions = append(instructions, instr)
		}
	}

	for _, pc := range c.pending {
		pc.val.Closure.EntryPC = offsets[pc.blockIdx]
	}

	return &l0.Program{Instructions: instructions, WitnessTable: c.witness}, nil
}

func (c *compiler) witnessConst(block int, v *l0.Value) l0.Register {
	c.witness = append(c.witness, v)
	out := c.alloc(block)
	c.emit(block, l0.Witness(out))
	return out
}

func (c *compiler) compileTerm(t *Term, block int, env map[string]l0.Register) (l0.Register, error) {
	switch t.Kind {
	case KindVar:
		reg, ok := env[t.Name]
		if !ok {
			return 0, fmt.Errorf("l1: compile: unbound variable %q", t.Name)
		}
		return reg, nil

	case KindLiteral:
		return c.witnessConst(block, t.LitValue), nil

	case KindUnit:
		return c.witnessConst(block, l0.UnitVal()), nil

	case KindLambda:
		if free := freeVars(t.Body, map[string]bool{t.Param: true}); len(free) > 0 {
			return 0, fmt.Errorf("%w: %v", ErrUnsupportedCapture, free)
		}
		newBlock := c.newBlock()
		c.alloc(newBlock) // register 0: Env (unused, closed lambda)
		paramReg := c.alloc(newBlock)
		bodyReg, err := c.compileTerm(t.Body, newBlock, map[string]l0.Register{t.Param: paramReg})
		if err != nil {
			return 0, err
		}
		c.emit(newBlock, l0.Return(bodyReg))

		closureVal := l0.ClosureVal(0, l0.UnitVal())
		c.pending = append(c.pending, pendingClosure{val: closureVal, blockIdx: newBlock})
		return c.witnessConst(block, closureVal), nil

	case KindApply:
		fnReg, err := c.compileTerm(t.Fn, block, env)
		if err != nil {
			return 0, err
		}
		argReg, err := c.compileTerm(t.Arg, block, env)
		if err != nil {
			return 0, err
		}
		out := c.alloc(block)
		c.emit(block, l0.Apply(fnReg, argReg, out))
		return out, nil

	case KindLet:
		valReg, err := c.compileTerm(t.Value, block, env)
		if err != nil {
			return 0, err
		}
		inner := withBinding(env, t.Name, valReg)
		return c.compileTerm(t.Body, block, inner)

	case KindTensor:
		fstReg, err := c.compileTerm(t.Fst, block, env)
		if err != nil {
			return 0, err
		}
		sndReg, err := c.compileTerm(t.Snd, block, env)
		if err != nil {
			return 0, err
		}
		out := c.alloc(block)
		c.emit(block, l0.TensorOp(fstReg, sndReg, out))
		return out, nil

	case KindLetTensor:
		valReg, err := c.compileTerm(t.Value, block, env)
		if err != nil {
			return 0, err
		}
		fstReg := c.alloc(block)
		sndReg := c.alloc(block)
		c.emit(block, l0.UntensorOp(valReg, fstReg, sndReg))
		inner := withBinding(env, t.FstName, fstReg)
		inner = withBinding(inner, t.SndName, sndReg)
		return c.compileTerm(t.Body, block, inner)

	case KindInl:
		innerReg, err := c.compileTerm(t.Inner, block, env)
		if err != nil {
			return 0, err
		}
		out := c.alloc(block)
		c.emit(block, l0.Inl(innerReg, out))
		return out, nil

	case KindInr:
		innerReg, err := c.compileTerm(t.Inner, block, env)
		if err != nil {
			return 0, err
		}
		out := c.alloc(block)
		c.emit(block, l0.Inr(innerReg, out))
		return out, nil

	case KindCase:
		sumReg, err := c.compileTerm(t.Scrutinee, block, env)
		if err != nil {
			return 0, err
		}
		resultReg := c.alloc(block)

		matchIdx := c.emit(block, l0.Match(sumReg, 0, 0))
		leftTarget := c.pos(block)

		leftEnv := withBinding(env, t.LeftName, sumReg)
		leftReg, err := c.compileTerm(t.LeftBody, block, leftEnv)
		if err != nil {
			return 0, err
		}
		c.emit(block, l0.Move(leftReg, resultReg))
		jumpIdx := c.emit(block, l0.Jump(0))
		rightTarget := c.pos(block)

		rightEnv := withBinding(env, t.RightName, sumReg)
		rightReg, err := c.compileTerm(t.RightBody, block, rightEnv)
		if err != nil {
			return 0, err
		}
		c.emit(block, l0.Move(rightReg, resultReg))
		afterTarget := c.pos(block)

		c.blocks[block][matchIdx].Targets = []uint32{leftTarget, rightTarget}
		c.blocks[block][jumpIdx].Targets = []uint32{afterTarget}
		return resultReg, nil

	case KindAlloc:
		innerReg, err := c.compileTerm(t.Inner, block, env)
		if err != nil {
			return 0, err
		}
		out := c.alloc(block)
		c.emit(block, l0.Alloc(innerReg, out))
		return out, nil

	case KindConsume:
		innerReg, err := c.compileTerm(t.Inner, block, env)
		if err != nil {
			return 0, err
		}
		out := c.alloc(block)
		c.emit(block, l0.Consume(innerReg, out))
		return out, nil

	default:
		return 0, fmt.Errorf("l1: compile: unknown term kind %d", t.Kind)
	}
}

func withBinding(env map[string]l0.Register, name string, reg l0.Register) map[string]l0.Register {
	out := make(map[string]l0.Register, len(env)+1)
	for k, v := range env {
		out[k] = v
	}
	out[name] = reg
	return out
}

// freeVars returns the names referenced in t that are not in bound, in
// first-occurrence order with duplicates removed.
func freeVars(t *Term, bound map[string]bool) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(t *Term, bound map[string]bool)
	walk = func(t *Term, bound map[string]bool) {
		if t == nil {
			return
		}
		switch t.Kind {
		case KindVar:
			if !bound[t.Name] && !seen[t.Name] {
				seen[t.Name] = true
				out = append(out, t.Name)
			}
		case KindLiteral, KindUnit:
		case KindLambda:
			walk(t.Body, withBound(bound, t.Param))
		case KindApply:
			walk(t.Fn, bound)
			walk(t.Arg, bound)
		case KindLet:
			walk(t.Value, bound)
			walk(t.Body, withBound(bound, t.Name))
		case KindTensor:
			walk(t.Fst, bound)
			walk(t.Snd, bound)
		case KindLetTensor:
			walk(t.Value, bound)
			inner := withBound(bound, t.FstName)
			inner = withBound(inner, t.SndName)
			walk(t.Body, inner)
		case KindInl, KindInr, KindAlloc, KindConsume:
			walk(t.Inner, bound)
		case KindCase:
			walk(t.Scrutinee, bound)
			walk(t.LeftBody, withBound(bound, t.LeftName))
			walk(t.RightBody, withBound(bound, t.RightName))
		}
	}
	walk(t, bound)
	return out
}

func withBound(bound map[string]bool, name string) map[string]bool {
	out := make(map[string]bool, len(bound)+1)
	for k, v := range bound {
		out[k] = v
	}
	out[name] = true
	return out
}
