// Copyright 2025 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package verifier implements the static stack-type checker for parsed TACK
// programs.
//
// The verifier walks the tree simulating the type of the value on top of the
// single runtime stack.  The state is one scalar — the current top-of-stack
// type — not a full stack of types, so effects deeper than the top are
// invisible to it.  That scalar flows left to right through each block:
//
//   - literals and cast keywords overwrite it unconditionally,
//   - reading a parameter replaces it with the parameter's declared type,
//   - calling a function requires it to match one of the callee's declared
//     parameter types (an any parameter matches everything),
//   - loop and if bodies are checked from their seeded convention types
//     (for → int, while → bool, if/else → bool).
//
// Compatibility rule: a successful call does NOT replace the current type
// with the callee's declared return type.  Callers relying on a function's
// output must follow the call with a cast.
//
// The root program and every newly declared function body are walked
// independently, each with its own starting type and identifier context;
// contexts never nest.  The first error aborts the walk.
package verifier

import (
	"github.com/probechain/tack-lang/lang/ast"
	"github.com/probechain/tack-lang/lang/token"
	"github.com/probechain/tack-lang/lang/types"
)

// TraceEvent describes one step of the simulated walk, for diagnostics.
type TraceEvent struct {
	Pos     token.Position
	Literal string
	Type    types.StackType // current top-of-stack type after the step
}

// TraceFunc receives trace events when attached via WithTrace.
type TraceFunc func(TraceEvent)

// Option configures a verification run.
type Option func(*verifier)

// WithTrace attaches a structured trace hook.  Tracing is off by default.
func WithTrace(fn TraceFunc) Option {
	return func(v *verifier) { v.trace = fn }
}

// WithRootType overrides the starting top-of-stack type for the root
// program.  The default is int.
func WithRootType(st types.StackType) Option {
	return func(v *verifier) { v.rootType = st }
}

// Verify type-checks the root program and the bodies of the functions named
// in newFns against the shared table.  It mutates nothing; on failure it
// returns the first *types.Error encountered.
//
// The root walk starts at int with an empty identifier context.  Each
// function body starts at the function's declared return type, with the
// function's own parameters as its identifier context.
func Verify(prog *ast.Program, table *types.Table, newFns []string, opts ...Option) error {
	v := &verifier{table: table, rootType: types.Int}
	for _, opt := range opts {
		opt(v)
	}

	if err := v.checkProgram(prog, v.rootType, nil); err != nil {
		return err
	}

	for _, name := range newFns {
		fn, ok := table.Lookup(name)
		if !ok || fn.Body == nil {
			// Redeclared and replaced by a later entry; the surviving
			// definition is still in the list under the same name.
			continue
		}
		if err := v.checkProgram(fn.Body, fn.Return, fn.ParamContext()); err != nil {
			return err
		}
	}
	return nil
}

type verifier struct {
	table    *types.Table
	rootType types.StackType
	trace    TraceFunc
}

// checkProgram walks one independent program (the root or a function body).
func (v *verifier) checkProgram(prog *ast.Program, start types.StackType, idents map[string]types.StackType) *types.Error {
	_, err := v.checkBlock(prog, start, idents)
	return err
}

// checkBlock verifies a block left to right, threading the current
// top-of-stack type through it, and returns the type in effect after the
// last node.
func (v *verifier) checkBlock(prog *ast.Program, cur types.StackType, idents map[string]types.StackType) (types.StackType, *types.Error) {
	for _, node := range prog.Nodes {
		switch n := node.(type) {
		case *ast.Expr:
			next, err := v.checkExpr(n, cur, idents)
			if err != nil {
				return cur, err
			}
			cur = next

		case *ast.LoopStmt:
			// The body must check starting from the ambient type; the loop
			// itself leaves the ambient type untouched.
			if _, err := v.checkBlock(n.Body, cur, idents); err != nil {
				return cur, err
			}

		case *ast.ForLoopStmt:
			// Counted loops run with the implicit int counter on top.
			if _, err := v.checkBlock(n.Body, types.Int, idents); err != nil {
				return cur, err
			}
			cur = types.Int

		case *ast.WhileLoopStmt:
			// Conditional loops run with the implicit bool condition on top.
			if _, err := v.checkBlock(n.Body, types.Bool, idents); err != nil {
				return cur, err
			}
			cur = types.Bool

		case *ast.IfStmt:
			if _, err := v.checkBlock(n.Then, types.Bool, idents); err != nil {
				return cur, err
			}
			if n.Else != nil {
				if _, err := v.checkBlock(n.Else, types.Bool, idents); err != nil {
					return cur, err
				}
			}
			cur = types.Bool
		}
	}
	return cur, nil
}

// resolution is the outcome of looking up an identifier at a use site.
type resolution int

const (
	notFound resolution = iota
	parameter
	function
)

// resolve classifies name against the identifier context and the function
// table.  Parameters shadow functions.
func (v *verifier) resolve(name string, idents map[string]types.StackType) (resolution, types.StackType, *types.Function) {
	if st, ok := idents[name]; ok {
		return parameter, st, nil
	}
	if fn, ok := v.table.Lookup(name); ok {
		return function, 0, fn
	}
	return notFound, 0, nil
}

// checkExpr applies one leaf node to the simulated type and returns the new
// current type.
func (v *verifier) checkExpr(e *ast.Expr, cur types.StackType, idents map[string]types.StackType) (types.StackType, *types.Error) {
	tok := e.Token

	switch {
	// Literals overwrite the current type unconditionally.
	case tok.Type.IsLiteral() && tok.Type != token.IDENT:
		cur, _ = types.FromToken(tok.Type)

	// Cast keywords (including any) assert the new top-of-stack type.
	case tok.Type.IsCast() || tok.Type == token.ANY:
		cur, _ = types.FromToken(tok.Type)

	// break/continue transfer control; they have no stack effect.
	case tok.Type == token.BREAK || tok.Type == token.CONTINUE:

	case tok.Type == token.IDENT:
		switch kind, st, fn := v.resolve(tok.Literal, idents); kind {
		case parameter:
			// Reading a parameter pushes its declared type.
			cur = st
		case function:
			if !fn.Accepts(cur) {
				return cur, types.TypeErrorf(tok.Pos, "attempt to call function %q not found at stack %s", tok.Literal, cur)
			}
			// The declared return type deliberately does not replace the
			// current type here; see the package comment.
		case notFound:
			return cur, types.TypeErrorf(tok.Pos, "undeclared identifier %q", tok.Literal)
		}
	}

	if v.trace != nil {
		v.trace(TraceEvent{Pos: tok.Pos, Literal: tok.Literal, Type: cur})
	}
	return cur, nil
}
