// Copyright 2025 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ast defines the syntax tree for the TACK language.
//
// Design overview:
//
//   - A Program is an ordered sequence of nodes; order is execution order.
//   - Expr is the only leaf: a single token promoted into program position
//     (literal, identifier, cast keyword, or break/continue/any).
//   - The statement nodes wrap nested Programs: the three loop forms hold one
//     body each, If holds a required then-block and an optional else-block.
//   - Every node is position-annotated via its originating token.Token so
//     later passes can report source locations.
package ast

import (
	"bytes"
	"strings"

	"github.com/probechain/tack-lang/lang/token"
)

// ---------------------------------------------------------------------------
// Core interfaces
// ---------------------------------------------------------------------------

// Node is the base interface that every tree node implements.
type Node interface {
	// Pos returns the source position of the token that originated this node.
	Pos() token.Position

	// String returns a human-readable representation of the node suitable for
	// unit tests and debug output.
	String() string
}

// Statement is a marker interface for the composite control-flow nodes.
// Every Statement is also a Node.
type Statement interface {
	Node
	statementNode()
}

// ---------------------------------------------------------------------------
// Program — root of every parse tree and of every function body
// ---------------------------------------------------------------------------

// Program holds an ordered block of Expr and Statement nodes.  The root
// program and each function body are independent Programs.
type Program struct {
	Nodes []Node
}

func (p *Program) Pos() token.Position {
	if len(p.Nodes) > 0 {
		return p.Nodes[0].Pos()
	}
	return token.Position{}
}

func (p *Program) String() string {
	parts := make([]string, len(p.Nodes))
	for i, n := range p.Nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, " ")
}

// ---------------------------------------------------------------------------
// Expr — the single leaf node
// ---------------------------------------------------------------------------

// Expr is a token in program position.  It carries the token's
// classification, literal text, and source range unchanged.
type Expr struct {
	Token token.Token
}

func (e *Expr) Pos() token.Position { return e.Token.Pos }

// Kind returns the classification of the underlying token.
func (e *Expr) Kind() token.Type { return e.Token.Type }

func (e *Expr) String() string {
	if e.Token.Type == token.STRING {
		return e.Token.Literal // literal already includes its quotes
	}
	return e.Token.Literal
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// LoopStmt is the unconditional `loop { ... }` form; it repeats until a
// `break` inside the body executes.
type LoopStmt struct {
	Token token.Token // 'loop'
	Body  *Program
}

func (s *LoopStmt) statementNode()      {}
func (s *LoopStmt) Pos() token.Position { return s.Token.Pos }
func (s *LoopStmt) String() string {
	return "loop { " + s.Body.String() + " }"
}

// ForLoopStmt is the counted `for loop { ... }` form.
type ForLoopStmt struct {
	Token token.Token // 'for'
	Body  *Program
}

func (s *ForLoopStmt) statementNode()      {}
func (s *ForLoopStmt) Pos() token.Position { return s.Token.Pos }
func (s *ForLoopStmt) String() string {
	return "for loop { " + s.Body.String() + " }"
}

// WhileLoopStmt is the conditional `while loop { ... }` form.
type WhileLoopStmt struct {
	Token token.Token // 'while'
	Body  *Program
}

func (s *WhileLoopStmt) statementNode()      {}
func (s *WhileLoopStmt) Pos() token.Position { return s.Token.Pos }
func (s *WhileLoopStmt) String() string {
	return "while loop { " + s.Body.String() + " }"
}

// IfStmt is `if { ... }` with an optional `else { ... }` block.
// Else is nil when no else-block was present.
type IfStmt struct {
	Token token.Token // 'if'
	Then  *Program
	Else  *Program
}

func (s *IfStmt) statementNode()      {}
func (s *IfStmt) Pos() token.Position { return s.Token.Pos }
func (s *IfStmt) String() string {
	var out bytes.Buffer
	out.WriteString("if { ")
	out.WriteString(s.Then.String())
	out.WriteString(" }")
	if s.Else != nil {
		out.WriteString(" else { ")
		out.WriteString(s.Else.String())
		out.WriteString(" }")
	}
	return out.String()
}
