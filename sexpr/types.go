// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sexpr

import "github.com/timewave-computer/causality/linear"

// parseType reads a linear type from its S-expression surface form.
// Compound types use keyword heads rather than symbolic operators since
// the token grammar (spec.md §4.G) only allows symbols starting with a
// letter or underscore:
//
//	Name          -> Base("Name")
//	Unit          -> the unit type
//	(bang T)      -> !T
//	(prod A B)    -> A ⊗ B
//	(sum A B)     -> A ⊕ B
//	(fn A B)      -> A ⊸ B
func parseType(e *SExpr) (*linear.Type, error) {
	switch e.Kind {
	case KindSymbol:
		if e.Symbol == "Unit" {
			return linear.Unit(), nil
		}
		return linear.Base(e.Symbol), nil
	case KindList:
		if len(e.Items) == 0 {
			return nil, &InvalidParameter{Form: "type", Detail: "empty type expression"}
		}
		head := e.Items[0]
		if head.Kind != KindSymbol {
			return nil, &InvalidParameter{Form: "type", Detail: "type operator must be a symbol"}
		}
		switch head.Symbol {
		case "bang":
			if len(e.Items) != 2 {
				return nil, &InvalidArity{Form: "bang", Want: "1 operand", Got: len(e.Items) - 1}
			}
			inner, err := parseType(e.Items[1])
			if err != nil {
				return nil, err
			}
			return linear.Bang(inner), nil
		case "prod", "sum", "fn":
			if len(e.Items) != 3 {
				return nil, &InvalidArity{Form: head.Symbol, Want: "2 operands", Got: len(e.Items) - 1}
			}
			left, err := parseType(e.Items[1])
			if err != nil {
				return nil, err
			}
			right, err := parseType(e.Items[2])
			if err != nil {
				return nil, err
			}
			switch head.Symbol {
			case "prod":
				return linear.Tensor(left, right), nil
			case "sum":
				return linear.Sum(left, right), nil
			default:
				return linear.Arrow(left, right), nil
			}
		default:
			return nil, &UnknownSymbol{Symbol: head.Symbol}
		}
	default:
		return nil, &InvalidParameter{Form: "type", Detail: "expected a type expression"}
	}
}
