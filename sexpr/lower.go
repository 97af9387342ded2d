// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sexpr

import (
	"github.com/timewave-computer/causality/l0"
	"github.com/timewave-computer/causality/l1"
	"github.com/timewave-computer/causality/linear"
)

// reservedHeads are the symbols spec.md §4.G lowers directly to Layer-1
// term constructors (or, for pure/bind, to their Layer-1 realization)
// rather than treating as ordinary function application.
var reservedHeads = map[string]bool{
	"lambda": true, "apply": true, "let": true, "tensor": true,
	"inl": true, "inr": true, "case": true, "pure": true, "bind": true,
	"alloc": true, "consume": true,
}

// Lower translates a parsed SExpr into a Layer-1 term. Reserved head
// symbols map to their corresponding term constructor; any other list
// head is ordinary (left-associative, curried) function application.
//
// pure and bind are the effect algebra's sequencing vocabulary
// (spec.md §3.5); at the term level "pure x" is just x, and
// "bind e f" sequences by applying the continuation f to e's result.
// No form of this frontend reaches package effect's CompileEffect.
func Lower(e *SExpr) (*l1.Term, error) {
	switch e.Kind {
	case KindSymbol:
		return l1.Var(e.Symbol), nil
	case KindInteger:
		return l1.Literal(l0.Int(int64(e.Integer)), linear.Base("Int")), nil
	case KindBoolean:
		sym := "false"
		if e.Boolean {
			sym = "true"
		}
		return l1.Literal(l0.Sym(sym), linear.Base("Bool")), nil
	case KindNil:
		return l1.UnitTerm(), nil
	case KindList:
		return lowerList(e)
	default:
		return nil, &InvalidParameter{Form: "term", Detail: "unrecognized expression"}
	}
}

func lowerList(e *SExpr) (*l1.Term, error) {
	if len(e.Items) == 0 {
		return nil, &InvalidParameter{Form: "term", Detail: "empty list is not a term"}
	}
	head := e.Items[0]
	rest := e.Items[1:]
	if head.Kind != KindSymbol || !reservedHeads[head.Symbol] {
		return lowerApplication(e.Items)
	}

	switch head.Symbol {
	case "lambda":
		return lowerLambda(rest)
	case "apply":
		if len(rest) != 2 {
			return nil, &InvalidArity{Form: "apply", Want: "2 operands", Got: len(rest)}
		}
		fn, err := Lower(rest[0])
		if err != nil {
			return nil, err
		}
		arg, err := Lower(rest[1])
		if err != nil {
			return nil, err
		}
		return l1.Apply(fn, arg), nil
	case "let":
		return lowerLet(rest)
	case "tensor":
		if len(rest) != 2 {
			return nil, &InvalidArity{Form: "tensor", Want: "2 operands", Got: len(rest)}
		}
		fst, err := Lower(rest[0])
		if err != nil {
			return nil, err
		}
		snd, err := Lower(rest[1])
		if err != nil {
			return nil, err
		}
		return l1.Tensor(fst, snd), nil
	case "inl":
		return lowerInj(rest, true)
	case "inr":
		return lowerInj(rest, false)
	case "case":
		return lowerCase(rest)
	case "pure":
		if len(rest) != 1 {
			return nil, &InvalidArity{Form: "pure", Want: "1 operand", Got: len(rest)}
		}
		return Lower(rest[0])
	case "bind":
		if len(rest) != 2 {
			return nil, &InvalidArity{Form: "bind", Want: "2 operands", Got: len(rest)}
		}
		e, err := Lower(rest[0])
		if err != nil {
			return nil, err
		}
		k, err := Lower(rest[1])
		if err != nil {
			return nil, err
		}
		return l1.Apply(k, e), nil
	case "alloc":
		if len(rest) != 1 {
			return nil, &InvalidArity{Form: "alloc", Want: "1 operand", Got: len(rest)}
		}
		inner, err := Lower(rest[0])
		if err != nil {
			return nil, err
		}
		return l1.Alloc(inner), nil
	case "consume":
		if len(rest) != 1 {
			return nil, &InvalidArity{Form: "consume", Want: "1 operand", Got: len(rest)}
		}
		inner, err := Lower(rest[0])
		if err != nil {
			return nil, err
		}
		return l1.Consume(inner), nil
	default:
		return nil, &UnknownSymbol{Symbol: head.Symbol}
	}
}

// lowerLambda reads (lambda (param Type) body). The binder carries an
// explicit type since the surface grammar has no inference.
func lowerLambda(rest []*SExpr) (*l1.Term, error) {
	if len(rest) != 2 {
		return nil, &InvalidArity{Form: "lambda", Want: "2 operands", Got: len(rest)}
	}
	binder := rest[0]
	if binder.Kind != KindList || len(binder.Items) != 2 || binder.Items[0].Kind != KindSymbol {
		return nil, &InvalidParameter{Form: "lambda", Detail: "parameter must be (name Type)"}
	}
	paramType, err := parseType(binder.Items[1])
	if err != nil {
		return nil, err
	}
	body, err := Lower(rest[1])
	if err != nil {
		return nil, err
	}
	return l1.Lambda(binder.Items[0].Symbol, paramType, body), nil
}

func lowerLet(rest []*SExpr) (*l1.Term, error) {
	if len(rest) != 3 {
		return nil, &InvalidArity{Form: "let", Want: "3 operands", Got: len(rest)}
	}
	if rest[0].Kind != KindSymbol {
		return nil, &InvalidParameter{Form: "let", Detail: "bound name must be a symbol"}
	}
	value, err := Lower(rest[1])
	if err != nil {
		return nil, err
	}
	body, err := Lower(rest[2])
	if err != nil {
		return nil, err
	}
	return l1.Let(rest[0].Symbol, value, body), nil
}

func lowerInj(rest []*SExpr, left bool) (*l1.Term, error) {
	form := "inr"
	if left {
		form = "inl"
	}
	if len(rest) != 2 {
		return nil, &InvalidArity{Form: form, Want: "2 operands (value, other-side type)", Got: len(rest)}
	}
	inner, err := Lower(rest[0])
	if err != nil {
		return nil, err
	}
	otherType, err := parseType(rest[1])
	if err != nil {
		return nil, err
	}
	if left {
		return l1.Inl(inner, otherType), nil
	}
	return l1.Inr(inner, otherType), nil
}

// lowerCase reads (case scrutinee (leftName leftBody) (rightName rightBody)).
func lowerCase(rest []*SExpr) (*l1.Term, error) {
	if len(rest) != 3 {
		return nil, &InvalidArity{Form: "case", Want: "3 operands (scrutinee, inl branch, inr branch)", Got: len(rest)}
	}
	scrutinee, err := Lower(rest[0])
	if err != nil {
		return nil, err
	}
	leftName, leftBody, err := lowerBranch("case inl branch", rest[1])
	if err != nil {
		return nil, err
	}
	rightName, rightBody, err := lowerBranch("case inr branch", rest[2])
	if err != nil {
		return nil, err
	}
	return l1.Case(scrutinee, leftName, leftBody, rightName, rightBody), nil
}

func lowerBranch(form string, e *SExpr) (string, *l1.Term, error) {
	if e.Kind != KindList || len(e.Items) != 2 || e.Items[0].Kind != KindSymbol {
		return "", nil, &InvalidParameter{Form: form, Detail: "branch must be (name body)"}
	}
	body, err := Lower(e.Items[1])
	if err != nil {
		return "", nil, err
	}
	return e.Items[0].Symbol, body, nil
}

// lowerApplication lowers (f a b c) as ((f a) b) c — left-associative
// curried application.
func lowerApplication(items []*SExpr) (*l1.Term, error) {
	if len(items) < 2 {
		return nil, &InvalidArity{Form: "application", Want: "a function and at least one argument", Got: len(items) - 1}
	}
	fn, err := Lower(items[0])
	if err != nil {
		return nil, err
	}
	for _, argExpr := range items[1:] {
		arg, err := Lower(argExpr)
		if err != nil {
			return nil, err
		}
		fn = l1.Apply(fn, arg)
	}
	return fn, nil
}
