// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package linear

// binding tracks one entry of the typing context: a name, its type, and
// whether it has been consumed yet.
type binding struct {
	typ  *Type
	used bool
}

// Context is the substructural typing context: a multiset of (name,
// type) pairs. Linear bindings (IsLinear() == true) must be consumed
// exactly once; bang-typed bindings (!A) may be used any number of
// times, including zero.
//
// Contexts are mutated in place by a single-threaded recursive-descent
// checker; Snapshot/Restore let the checker explore the two branches of
// a Case or the two sides of a tensor split independently and then
// compare what each branch consumed.
type Context struct {
	vars map[string]*binding
}

// NewContext returns an empty typing context.
func NewContext() *Context {
	return &Context{vars: make(map[string]*binding)}
}

// Bind introduces a fresh name. It is an error to shadow an existing
// unconsumed linear binding of the same name (the checker should
// alpha-rename instead); Bind does not itself enforce that — callers
// (the term checker) are expected to use fresh names per scope.
func (c *Context) Bind(name string, t *Type) {
	c.vars[name] = &binding{typ: t}
}

// Unbind removes a name from the context entirely, e.g. when a lambda
// scope closes. It does not check whether the binding was consumed;
// callers should call CheckClosed first.
func (c *Context) Unbind(name string) {
	delete(c.vars, name)
}

// Lookup returns the type of the binding without consuming it. Used to
// type-check !A values which may be referenced freely.
func (c *Context) Lookup(name string) (*Type, bool) {
	b, ok := c.vars[name]
	if !ok {
		return nil, false
	}
	return b.typ, true
}

// Use consumes a binding, marking a linear variable as used exactly
// once. Re-using an already-consumed linear variable raises
// LinearityViolation{Duplicated}; referencing an unknown name raises
// ErrUnknownSymbol. Bang-typed variables may be used any number of
// times and never trip Duplicated.
func (c *Context) Use(name string) (*Type, error) {
	b, ok := c.vars[name]
	if !ok {
		return nil, ErrUnknownSymbol
	}
	if b.typ.IsLinear() && b.used {
		return nil, &LinearityViolation{Name: name, Kind: Duplicated}
	}
	b.used = true
	return b.typ, nil
}

// Snapshot captures which names are currently consumed, for later
// comparison across branches (e.g. both arms of Case must leave the
// context in the same consumption state for variables bound outside the
// branch).
func (c *Context) Snapshot() map[string]bool {
	out := make(map[string]bool, len(c.vars))
	for name, b := range c.vars {
		out[name] = b.used
	}
	return out
}

// Restore resets consumption state to a prior snapshot, without
// changing which names are bound. Used to check a second branch from
// the same starting point as the first.
func (c *Context) Restore(snap map[string]bool) {
	for name, used := range snap {
		if b, ok := c.vars[name]; ok {
			b.used = used
		}
	}
}

// UnusedLinear returns the names of all linear (non-bang) bindings that
// have not yet been consumed. A non-empty result at scope close is an
// Unused LinearityViolation.
func (c *Context) UnusedLinear() []string {
	var out []string
	for name, b := range c.vars {
		if b.typ.IsLinear() && !b.used {
			out = append(out, name)
		}
	}
	return out
}

// CheckClosed verifies that every linear binding currently in scope has
// been consumed exactly once. It is the discharge check run at the end
// of a lambda body, a let body, or a top-level term.
func (c *Context) CheckClosed() error {
	unused := c.UnusedLinear()
	if len(unused) > 0 {
		return &LinearityViolation{Name: unused[0], Kind: Unused}
	}
	return nil
}

// Clone produces an independent copy of the context (bindings and usage
// state), used when checking needs a fully separate scratch context
// rather than a snapshot/restore pair (e.g. planning speculative
// effects without side-effecting the caller's context).
func (c *Context) Clone() *Context {
	out := NewContext()
	for name, b := range c.vars {
		out.vars[name] = &binding{typ: b.typ, used: b.used}
	}
	return out
}
