// Copyright 2025 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package vm executes verified TACK programs against a real value stack.
//
// The executor assumes its input already passed the verifier; it still
// guards every pop and cast because runtime values can diverge from the
// scalar type simulation (the verifier only tracks the top of the stack).
// Execution conventions:
//
//   - literals push, casts convert the top in place,
//   - reading a parameter pushes a copy of the bound argument,
//   - calling a user function pops one argument per declared parameter, in
//     reverse declaration order, and runs the body with those bindings,
//   - `loop` repeats its body until a break, `for loop` pops an int count
//     and pushes the counter before each pass, `while loop` pops a bool
//     before each pass and stops on false,
//   - `if` pops a bool and runs the then- or else-block.
package vm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/probechain/tack-lang/lang/ast"
	"github.com/probechain/tack-lang/lang/token"
	"github.com/probechain/tack-lang/lang/types"
)

// ---- Error sentinels -------------------------------------------------------

// ErrStackUnderflow is returned when a word pops more values than the stack
// holds.
var ErrStackUnderflow = errors.New("vm: stack underflow")

// ErrTypeFault is returned when a runtime value does not have the type a
// word or cast requires.
var ErrTypeFault = errors.New("vm: type fault")

// ErrDivisionByZero is returned by / and % when the divisor is zero.
var ErrDivisionByZero = errors.New("vm: division by zero")

// ErrNoNative is returned when a standard-library entry has no registered
// native implementation.
var ErrNoNative = errors.New("vm: no native implementation")

// ErrUndefined is returned when an identifier resolves to nothing at run
// time.  Verified programs never trigger it.
var ErrUndefined = errors.New("vm: undefined identifier")

// Control-flow signals, confined to loop bodies by the parser.
var (
	errBreak    = errors.New("vm: break")
	errContinue = errors.New("vm: continue")
)

// ---- VM --------------------------------------------------------------------

// VM is the TACK tree-walking executor.  The value stack persists across
// Run calls so an embedder (the REPL) can feed programs incrementally.
type VM struct {
	table *types.Table
	stack []Value

	out io.Writer
	in  *bufio.Reader
}

// New creates an executor over the given function table, reading from
// stdin and writing to stdout.
func New(table *types.Table) *VM {
	return &VM{
		table: table,
		out:   os.Stdout,
		in:    bufio.NewReader(os.Stdin),
	}
}

// SetIO redirects the executor's input and output streams.
func (m *VM) SetIO(in io.Reader, out io.Writer) {
	m.in = bufio.NewReader(in)
	m.out = out
}

// Run executes prog against the current stack.
func (m *VM) Run(prog *ast.Program) error {
	err := m.run(prog, nil)
	if err == errBreak || err == errContinue {
		// Cannot happen for parsed programs; break/continue are loop-only.
		return nil
	}
	return err
}

// Depth returns the number of values on the stack.
func (m *VM) Depth() int { return len(m.stack) }

// Top returns the value on top of the stack without popping it.
func (m *VM) Top() (Value, bool) {
	if len(m.stack) == 0 {
		return Value{}, false
	}
	return m.stack[len(m.stack)-1], true
}

// TopType returns the type of the top of the stack, or int (the root
// convention type) when the stack is empty.
func (m *VM) TopType() types.StackType {
	if v, ok := m.Top(); ok {
		return v.T
	}
	return types.Int
}

// Push places v on top of the stack.
func (m *VM) Push(v Value) { m.stack = append(m.stack, v) }

// Pop removes and returns the top of the stack.
func (m *VM) Pop() (Value, error) {
	if len(m.stack) == 0 {
		return Value{}, ErrStackUnderflow
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

func (m *VM) popTyped(t types.StackType) (Value, error) {
	v, err := m.Pop()
	if err != nil {
		return Value{}, err
	}
	if v.T != t {
		return Value{}, fmt.Errorf("%w: need %s on stack, have %s", ErrTypeFault, t, v.T)
	}
	return v, nil
}

// ---- Tree walk -------------------------------------------------------------

// run executes one block with the given parameter bindings.
func (m *VM) run(prog *ast.Program, params map[string]Value) error {
	for _, node := range prog.Nodes {
		var err error
		switch n := node.(type) {
		case *ast.Expr:
			err = m.runExpr(n, params)
		case *ast.LoopStmt:
			err = m.runLoop(n, params)
		case *ast.ForLoopStmt:
			err = m.runForLoop(n, params)
		case *ast.WhileLoopStmt:
			err = m.runWhileLoop(n, params)
		case *ast.IfStmt:
			err = m.runIf(n, params)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *VM) runExpr(e *ast.Expr, params map[string]Value) error {
	tok := e.Token

	switch {
	case tok.Type == token.INT:
		i, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: bad int literal %q at %s", ErrTypeFault, tok.Literal, tok.Pos)
		}
		m.Push(IntValue(i))

	case tok.Type == token.FLOAT:
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return fmt.Errorf("%w: bad float literal %q at %s", ErrTypeFault, tok.Literal, tok.Pos)
		}
		m.Push(FloatValue(f))

	case tok.Type == token.STRING:
		s, err := strconv.Unquote(tok.Literal)
		if err != nil {
			// Literal straight from the lexer, quotes included; fall back to
			// stripping them when an escape does not unquote cleanly.
			s = tok.Literal
			if len(s) >= 2 {
				s = s[1 : len(s)-1]
			}
		}
		m.Push(StrValue(s))

	case tok.Type == token.BOOL:
		m.Push(BoolValue(tok.Literal == "true"))

	case tok.Type.IsCast() || tok.Type == token.ANY:
		target, _ := types.FromToken(tok.Type)
		v, err := m.Pop()
		if err != nil {
			return fmt.Errorf("%w: cast at %s", err, tok.Pos)
		}
		cast, err := v.Cast(target)
		if err != nil {
			return fmt.Errorf("%w at %s", err, tok.Pos)
		}
		m.Push(cast)

	case tok.Type == token.BREAK:
		return errBreak

	case tok.Type == token.CONTINUE:
		return errContinue

	case tok.Type == token.IDENT:
		return m.runIdent(tok, params)
	}
	return nil
}

// runIdent resolves a word: parameter read, native word, or user function.
func (m *VM) runIdent(tok token.Token, params map[string]Value) error {
	if v, ok := params[tok.Literal]; ok {
		m.Push(v)
		return nil
	}

	fn, ok := m.table.Lookup(tok.Literal)
	if !ok {
		return fmt.Errorf("%w: %q at %s", ErrUndefined, tok.Literal, tok.Pos)
	}

	if fn.Body == nil {
		native, ok := natives[fn.Name]
		if !ok {
			return fmt.Errorf("%w: %q at %s", ErrNoNative, fn.Name, tok.Pos)
		}
		if err := native(m); err != nil {
			return fmt.Errorf("%w (in %q at %s)", err, fn.Name, tok.Pos)
		}
		return nil
	}

	// User function: pop one argument per parameter, last parameter first,
	// and run the body with the bindings.
	bound := make(map[string]Value, len(fn.Params))
	for i := len(fn.Params) - 1; i >= 0; i-- {
		v, err := m.Pop()
		if err != nil {
			return fmt.Errorf("%w: calling %q at %s", err, fn.Name, tok.Pos)
		}
		bound[fn.Params[i].Name] = v
	}
	return m.run(fn.Body, bound)
}

func (m *VM) runLoop(n *ast.LoopStmt, params map[string]Value) error {
	for {
		err := m.run(n.Body, params)
		switch err {
		case nil, errContinue:
			continue
		case errBreak:
			return nil
		default:
			return err
		}
	}
}

func (m *VM) runForLoop(n *ast.ForLoopStmt, params map[string]Value) error {
	count, err := m.popTyped(types.Int)
	if err != nil {
		return fmt.Errorf("%w at %s", err, n.Token.Pos)
	}
	for i := int64(0); i < count.I; i++ {
		m.Push(IntValue(i))
		err := m.run(n.Body, params)
		switch err {
		case nil, errContinue:
		case errBreak:
			return nil
		default:
			return err
		}
	}
	return nil
}

func (m *VM) runWhileLoop(n *ast.WhileLoopStmt, params map[string]Value) error {
	for {
		cond, err := m.popTyped(types.Bool)
		if err != nil {
			return fmt.Errorf("%w at %s", err, n.Token.Pos)
		}
		if !cond.B {
			return nil
		}
		err = m.run(n.Body, params)
		switch err {
		case nil, errContinue:
		case errBreak:
			return nil
		default:
			return err
		}
	}
}

func (m *VM) runIf(n *ast.IfStmt, params map[string]Value) error {
	cond, err := m.popTyped(types.Bool)
	if err != nil {
		return fmt.Errorf("%w at %s", err, n.Token.Pos)
	}
	if cond.B {
		return m.run(n.Then, params)
	}
	if n.Else != nil {
		return m.run(n.Else, params)
	}
	return nil
}
