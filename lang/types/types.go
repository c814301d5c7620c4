// Copyright 2025 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package types defines the TACK stack-type model and the shared function
// table.
//
// Design principles:
//   - The type of the value on top of the single runtime stack is the only
//     type state the language tracks; it is a closed five-member enumeration.
//   - Any is a wildcard on the consuming side of a call: a function declared
//     with input Any accepts every top-of-stack type.  It is not a wildcard
//     on the producing side — calling a concrete-input function while the
//     top-of-stack type is Any is an error.
//   - Function definitions are immutable once created and live for the whole
//     compilation; the table they sit in is extended in place by the parser.
package types

import (
	"fmt"

	"github.com/probechain/tack-lang/lang/ast"
	"github.com/probechain/tack-lang/lang/token"
)

// StackType is the simulated type of the value on top of the runtime stack.
type StackType int

const (
	Int StackType = iota
	Float
	Str
	Bool
	Any
)

var stackTypeNames = [...]string{
	Int:   "int",
	Float: "float",
	Str:   "str",
	Bool:  "bool",
	Any:   "any",
}

func (t StackType) String() string {
	if int(t) < len(stackTypeNames) {
		return stackTypeNames[t]
	}
	return fmt.Sprintf("stacktype(%d)", t)
}

// FromToken maps a cast keyword, return marker, or literal token type to the
// stack type it denotes.  The second result is false for token types that do
// not denote a stack type.
func FromToken(t token.Type) (StackType, bool) {
	switch t {
	case token.CASTINT, token.RETINT, token.INT:
		return Int, true
	case token.CASTFLOAT, token.RETFLOAT, token.FLOAT:
		return Float, true
	case token.CASTSTR, token.RETSTR, token.STRING:
		return Str, true
	case token.CASTBOOL, token.RETBOOL, token.BOOL:
		return Bool, true
	case token.ANY, token.RETANY:
		return Any, true
	}
	return Any, false
}

// ---------------------------------------------------------------------------
// Functions
// ---------------------------------------------------------------------------

// Param is a single declared parameter: a name bound to a stack type.
// Parameters are positional pseudo-identifiers — reading one inside a body
// pushes its type, it is not popped at the call site during verification.
type Param struct {
	Name string
	Type StackType
}

// Function is an entry in the shared function table.  User functions carry a
// Body; standard-library functions leave it nil and are executed natively.
// A Function is never mutated after construction.
type Function struct {
	Name   string
	Params []Param // declaration order
	Return StackType
	Body   *ast.Program // nil for standard-library entries
}

// Accepts reports whether the function may be called when the simulated
// top-of-stack type is st.  A call site is legal when some declared
// parameter has type st or any; a function with no parameters accepts
// every type.  The top-of-stack wildcard does not match concrete
// parameters: a call at any is only legal on a function that itself
// declares an any parameter (or none at all).
func (f *Function) Accepts(st StackType) bool {
	if len(f.Params) == 0 {
		return true
	}
	for _, p := range f.Params {
		if p.Type == Any || p.Type == st {
			return true
		}
	}
	return false
}

// ParamContext returns the identifier context for verifying the function's
// body: its parameter names mapped to their declared types.
func (f *Function) ParamContext() map[string]StackType {
	if len(f.Params) == 0 {
		return nil
	}
	ctx := make(map[string]StackType, len(f.Params))
	for _, p := range f.Params {
		ctx[p.Name] = p.Type
	}
	return ctx
}

func (f *Function) String() string {
	sig := "fn " + f.Name + "("
	for i, p := range f.Params {
		if i > 0 {
			sig += " "
		}
		sig += p.Name + ": " + p.Type.String()
	}
	return sig + ") @" + f.Return.String()
}

// ---------------------------------------------------------------------------
// Function table
// ---------------------------------------------------------------------------

// Table is the single name → Function mapping shared by the parser, the
// verifier, and the executor.  It is pre-seeded with standard-library entries
// before parsing and extended in place by each fn declaration.
//
// Define is last-write-wins: a user declaration silently replaces any earlier
// entry with the same name, standard-library entries included.  The table is
// safe for single-threaded sequential use only.
type Table struct {
	funcs map[string]*Function
}

// NewTable returns an empty function table.
func NewTable() *Table {
	return &Table{funcs: make(map[string]*Function)}
}

// Define inserts fn under its name, replacing any existing entry.
func (t *Table) Define(fn *Function) {
	t.funcs[fn.Name] = fn
}

// Lookup returns the function registered under name, if any.
func (t *Table) Lookup(name string) (*Function, bool) {
	fn, ok := t.funcs[name]
	return fn, ok
}

// Len returns the number of registered functions.
func (t *Table) Len() int { return len(t.funcs) }

// Each calls visit for every registered function, in unspecified order.
func (t *Table) Each(visit func(*Function)) {
	for _, fn := range t.funcs {
		visit(fn)
	}
}
