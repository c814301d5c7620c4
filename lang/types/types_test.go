// Copyright 2025 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package types

import (
	"testing"

	"github.com/probechain/tack-lang/lang/token"
)

func TestStackTypeString(t *testing.T) {
	cases := []struct {
		st   StackType
		want string
	}{
		{Int, "int"},
		{Float, "float"},
		{Str, "str"},
		{Bool, "bool"},
		{Any, "any"},
	}
	for _, c := range cases {
		if got := c.st.String(); got != c.want {
			t.Errorf("String(%d) = %q, want %q", int(c.st), got, c.want)
		}
	}
}

func TestFromToken(t *testing.T) {
	cases := []struct {
		tok  token.Type
		want StackType
		ok   bool
	}{
		{token.CASTINT, Int, true},
		{token.CASTFLOAT, Float, true},
		{token.CASTSTR, Str, true},
		{token.CASTBOOL, Bool, true},
		{token.ANY, Any, true},
		{token.RETINT, Int, true},
		{token.RETANY, Any, true},
		{token.INT, Int, true},
		{token.FLOAT, Float, true},
		{token.STRING, Str, true},
		{token.BOOL, Bool, true},
		{token.LBRACE, 0, false},
		{token.IDENT, 0, false},
	}
	for _, c := range cases {
		got, ok := FromToken(c.tok)
		if ok != c.ok {
			t.Errorf("FromToken(%s): ok = %v, want %v", c.tok, ok, c.ok)
			continue
		}
		if ok && got != c.want {
			t.Errorf("FromToken(%s) = %s, want %s", c.tok, got, c.want)
		}
	}
}

func TestFunctionAccepts(t *testing.T) {
	numeric := &Function{
		Name:   "+",
		Params: []Param{{Name: "a", Type: Int}, {Name: "b", Type: Float}},
		Return: Int,
	}
	strOnly := &Function{
		Name:   "len",
		Params: []Param{{Name: "s", Type: Str}},
		Return: Int,
	}
	wildcard := &Function{
		Name:   "dup",
		Params: []Param{{Name: "v", Type: Any}},
		Return: Any,
	}
	nullary := &Function{Name: "seed", Return: Int}

	cases := []struct {
		fn   *Function
		st   StackType
		want bool
	}{
		{numeric, Int, true},
		{numeric, Float, true},
		{numeric, Str, false},
		{numeric, Bool, false},
		{numeric, Any, false},
		{strOnly, Str, true},
		{strOnly, Int, false},
		{wildcard, Int, true},
		{wildcard, Str, true},
		{wildcard, Any, true},
		{nullary, Int, true},
		{nullary, Str, true},
		{nullary, Any, true},
	}
	for _, c := range cases {
		if got := c.fn.Accepts(c.st); got != c.want {
			t.Errorf("%s.Accepts(%s) = %v, want %v", c.fn.Name, c.st, got, c.want)
		}
	}
}

func TestFunctionParamContext(t *testing.T) {
	fn := &Function{
		Name:   "f",
		Params: []Param{{Name: "a", Type: Int}, {Name: "b", Type: Str}},
		Return: Any,
	}
	ctx := fn.ParamContext()
	if len(ctx) != 2 {
		t.Fatalf("context size = %d, want 2", len(ctx))
	}
	if ctx["a"] != Int || ctx["b"] != Str {
		t.Errorf("context = %v", ctx)
	}
}

func TestTableLastWriteWins(t *testing.T) {
	tab := NewTable()
	tab.Define(&Function{Name: "f", Params: []Param{{Name: "x", Type: Int}}, Return: Int})
	tab.Define(&Function{Name: "f", Params: []Param{{Name: "s", Type: Str}}, Return: Str})

	if tab.Len() != 1 {
		t.Fatalf("table len = %d, want 1", tab.Len())
	}
	fn, ok := tab.Lookup("f")
	if !ok {
		t.Fatal("f not found")
	}
	if fn.Params[0].Type != Str {
		t.Errorf("surviving param type = %s, want str", fn.Params[0].Type)
	}
}

func TestErrorFormatting(t *testing.T) {
	err := Structuralf(token.Position{File: "x.tack", Line: 2, Column: 7}, "expected ending bracket pair")
	want := "x.tack:2:7: expected ending bracket pair"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Class != Structural {
		t.Errorf("class = %s, want structural", err.Class)
	}
}
