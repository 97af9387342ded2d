// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sexpr

import "fmt"

// InvalidArity reports a reserved form applied to the wrong number of
// operands.
type InvalidArity struct {
	Form string
	Want string
	Got  int
}

func (e *InvalidArity) Error() string {
	return fmt.Sprintf("sexpr: %s expects %s, got %d", e.Form, e.Want, e.Got)
}

// InvalidParameter reports a malformed binder (e.g. a lambda parameter
// that isn't a (name Type) pair).
type InvalidParameter struct {
	Form   string
	Detail string
}

func (e *InvalidParameter) Error() string {
	return fmt.Sprintf("sexpr: %s: invalid parameter: %s", e.Form, e.Detail)
}

// UnknownSymbol reports a base type name or head symbol the lowering
// pass doesn't recognize.
type UnknownSymbol struct {
	Symbol string
}

func (e *UnknownSymbol) Error() string {
	return fmt.Sprintf("sexpr: unknown symbol %q", e.Symbol)
}
