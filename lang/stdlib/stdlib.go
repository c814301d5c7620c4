// Copyright 2025 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package stdlib seeds the shared function table with the TACK standard
// library.
//
// Only signatures live here: each entry declares the parameter types that
// gate its call sites and the nominal return type.  The matching native
// implementations are registered in the executor, keyed by the same names.
//
// Arithmetic and comparison words declare one int and one float
// parameter, which makes them callable at either numeric type (a call
// site is legal at any declared parameter type) but never at str or
// bool.  The stack-shuffling words accept any type.
package stdlib

import (
	"github.com/probechain/tack-lang/lang/types"
)

// NewTable returns a fresh table pre-seeded with the standard library.
// The parser extends the returned table in place; user declarations may
// shadow any entry.
func NewTable() *types.Table {
	t := types.NewTable()

	// Arithmetic: pop two numbers, push their result.  The result type
	// follows the operands at run time; int is the nominal return.
	for _, name := range []string{"+", "-", "*", "/", "%"} {
		t.Define(&types.Function{
			Name:   name,
			Params: []types.Param{{Name: "a", Type: types.Int}, {Name: "b", Type: types.Float}},
			Return: types.Int,
		})
	}

	// Comparison: pop two numbers, push a bool.
	for _, name := range []string{"=", "<", ">"} {
		t.Define(&types.Function{
			Name:   name,
			Params: []types.Param{{Name: "a", Type: types.Int}, {Name: "b", Type: types.Float}},
			Return: types.Bool,
		})
	}

	// Boolean negation.
	t.Define(&types.Function{
		Name:   "not",
		Params: []types.Param{{Name: "b", Type: types.Bool}},
		Return: types.Bool,
	})

	// String words.
	t.Define(&types.Function{
		Name:   "concat",
		Params: []types.Param{{Name: "a", Type: types.Str}, {Name: "b", Type: types.Str}},
		Return: types.Str,
	})
	t.Define(&types.Function{
		Name:   "len",
		Params: []types.Param{{Name: "s", Type: types.Str}},
		Return: types.Int,
	})

	// Stack shuffling and I/O: callable at any stack type.
	for _, e := range []struct {
		name string
		ret  types.StackType
	}{
		{"dup", types.Any},
		{"drop", types.Any},
		{"swap", types.Any},
		{"print", types.Any},
		{"readln", types.Str},
	} {
		t.Define(&types.Function{
			Name:   e.name,
			Params: []types.Param{{Name: "v", Type: types.Any}},
			Return: e.ret,
		})
	}

	return t
}
