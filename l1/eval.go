// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package l1

import (
	"fmt"

	"github.com/timewave-computer/causality/id"
	"github.com/timewave-computer/causality/l0"
)

// Value is the interpreter's runtime value: either a Layer-0 base value
// (Int, Sym, Unit, tensor, sum, resource) or a Closure capturing its
// defining environment directly (unlike the compiler, the interpreter
// has no register-file or bit-stable-opcode constraints, so closures
// here may freely capture anything — this is why spec.md §4.D says the
// compiler must not rely on the interpreter for correctness).
type Value struct {
	Base    *l0.Value
	Closure *Closure
}

// Closure is the interpreter's closure representation: a parameter
// name, body term, and captured environment.
type Closure struct {
	Param string
	Body  *Term
	Env   map[string]*Value
}

func baseValue(v *l0.Value) *Value { return &Value{Base: v} }

// Eval interprets term under env using call-by-value, left-to-right
// evaluation (spec.md §4.D). It is used for debugging and does not
// back Compile's correctness.
func Eval(term *Term, env map[string]*Value) (*Value, error) {
	switch term.Kind {
	case KindVar:
		v, ok := env[term.Name]
		if !ok {
			return nil, fmt.Errorf("l1: eval: unbound variable %q", term.Name)
		}
		return v, nil

	case KindLiteral:
		return baseValue(term.LitValue), nil

	case KindUnit:
		return baseValue(l0.UnitVal()), nil

	case KindLambda:
		captured := make(map[string]*Value, len(env))
		for k, v := range env {
			captured[k] = v
		}
		return &Value{Closure: &Closure{Param: term.Param, Body: term.Body, Env: captured}}, nil

	case KindApply:
		fn, err := Eval(term.Fn, env)
		if err != nil {
			return nil, err
		}
		if fn.Closure == nil {
			return nil, fmt.Errorf("l1: eval: apply target is not a closure")
		}
		arg, err := Eval(term.Arg, env)
		if err != nil {
			return nil, err
		}
		callEnv := make(map[string]*Value, len(fn.Closure.Env)+1)
		for k, v := range fn.Closure.Env {
			callEnv[k] = v
		}
		callEnv[fn.Closure.Param] = arg
		return Eval(fn.Closure.Body, callEnv)

	case KindLet:
		v, err := Eval(term.Value, env)
		if err != nil {
			return nil, err
		}
		return Eval(term.Body, withValue(env, term.Name, v))

	case KindTensor:
		fst, err := Eval(term.Fst, env)
		if err != nil {
			return nil, err
		}
		snd, err := Eval(term.Snd, env)
		if err != nil {
			return nil, err
		}
		return packTensor(fst, snd)

	case KindLetTensor:
		v, err := Eval(term.Value, env)
		if err != nil {
			return nil, err
		}
		if v.Base == nil || v.Base.Kind != l0.ValueTensor {
			return nil, fmt.Errorf("l1: eval: let-tensor target is not a tensor")
		}
		inner := withValue(env, term.FstName, baseValue(v.Base.Fst))
		inner = withValue(inner, term.SndName, baseValue(v.Base.Snd))
		return Eval(term.Body, inner)

	case KindInl:
		inner, err := Eval(term.Inner, env)
		if err != nil {
			return nil, err
		}
		if inner.Base == nil {
			return nil, fmt.Errorf("l1: eval: cannot inject a closure into a sum")
		}
		return baseValue(l0.InlVal(inner.Base)), nil

	case KindInr:
		inner, err := Eval(term.Inner, env)
		if err != nil {
			return nil, err
		}
		if inner.Base == nil {
			return nil, fmt.Errorf("l1: eval: cannot inject a closure into a sum")
		}
		return baseValue(l0.InrVal(inner.Base)), nil

	case KindCase:
		v, err := Eval(term.Scrutinee, env)
		if err != nil {
			return nil, err
		}
		if v.Base == nil {
			return nil, fmt.Errorf("l1: eval: case target is not a sum")
		}
		switch v.Base.Kind {
		case l0.ValueSumLeft:
			return Eval(term.LeftBody, withValue(env, term.LeftName, baseValue(v.Base.Inner)))
		case l0.ValueSumRight:
			return Eval(term.RightBody, withValue(env, term.RightName, baseValue(v.Base.Inner)))
		default:
			return nil, fmt.Errorf("l1: eval: case target is not a sum")
		}

	case KindAlloc:
		v, err := Eval(term.Inner, env)
		if err != nil {
			return nil, err
		}
		if v.Base == nil {
			return nil, fmt.Errorf("l1: eval: cannot allocate a closure as a resource")
		}
		res := &l0.Resource{ResourceID: id.Hash(v.Base.CanonicalBytes()), Inner: v.Base}
		return baseValue(l0.ResourceVal(res)), nil

	case KindConsume:
		v, err := Eval(term.Inner, env)
		if err != nil {
			return nil, err
		}
		if v.Base == nil || v.Base.Kind != l0.ValueResource {
			return nil, fmt.Errorf("l1: eval: consume target is not a resource")
		}
		return baseValue(v.Base.Resource.Inner), nil

	default:
		return nil, fmt.Errorf("l1: eval: unknown term kind %d", term.Kind)
	}
}

func packTensor(fst, snd *Value) (*Value, error) {
	if fst.Base == nil || snd.Base == nil {
		return nil, fmt.Errorf("l1: eval: cannot tensor a closure")
	}
	return baseValue(l0.PairVal(fst.Base, snd.Base)), nil
}

func withValue(env map[string]*Value, name string, v *Value) map[string]*Value {
	out := make(map[string]*Value, len(env)+1)
	for k, val := range env {
		out[k] = val
	}
	out[name] = v
	return out
}
