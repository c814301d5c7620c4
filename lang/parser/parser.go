// Copyright 2025 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package parser implements the recursive-descent structural parser for the
// TACK language.
//
// Design overview:
//
//   - The parser consumes an already-lexed token sequence exactly once, left
//     to right, through a single cursor; the only lookback is a fixed
//     one-token check for an `else` following a closed `if` block.
//   - One recursive block procedure does all the work, parameterized by four
//     context flags: at-root, in-loop, in-if, in-function.  Keyword legality
//     (break/continue, any, else, return markers, nested fn) is enforced by
//     those flags.
//   - fn declarations are registered into the shared function table as they
//     are parsed (last declaration wins) and their names collected so the
//     verifier knows which bodies to walk.
//   - The first error aborts the whole parse; there is no recovery and no
//     partial program.
package parser

import (
	"github.com/probechain/tack-lang/lang/ast"
	"github.com/probechain/tack-lang/lang/token"
	"github.com/probechain/tack-lang/lang/types"
)

// Parse consumes toks and returns the root program together with the names
// of the functions declared in it, in declaration order.  Declarations are
// inserted into table as a side effect.  On failure the returned error is a
// *types.Error carrying a 1-based source position.
func Parse(toks []token.Token, table *types.Table) (*ast.Program, []string, error) {
	p := newParser(toks, table)
	prog, err := p.parseBlock(token.Token{}, true, false, false, false)
	if err != nil {
		return nil, nil, err
	}
	return prog, p.declared, nil
}

// parser holds the mutable state for a single parse run.
type parser struct {
	toks     []token.Token
	pos      int
	table    *types.Table
	declared []string // function names declared during this run
}

// newParser strips comment tokens and guarantees a trailing EOF so the
// cursor arithmetic never runs off the slice.
func newParser(toks []token.Token, table *types.Table) *parser {
	kept := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.Type != token.COMMENT {
			kept = append(kept, t)
		}
	}
	if n := len(kept); n == 0 || kept[n-1].Type != token.EOF {
		var end token.Position
		if n > 0 {
			end = kept[n-1].End
		} else {
			end = token.Position{Line: 1, Column: 1}
		}
		kept = append(kept, token.Token{Type: token.EOF, Pos: end, End: end})
	}
	return &parser{toks: kept, table: table}
}

// ---------------------------------------------------------------------------
// Cursor helpers
// ---------------------------------------------------------------------------

// cur returns the token under the cursor without consuming it.  Past the
// end it keeps returning the final EOF token, whose position is one column
// past the last real token.
func (p *parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

// next consumes and returns the current token.
func (p *parser) next() token.Token {
	tok := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches typ, otherwise it returns
// a structural error built from the context description.
func (p *parser) expect(typ token.Type, context string) (token.Token, *types.Error) {
	tok := p.cur()
	if tok.Type != typ {
		return tok, types.Structuralf(tok.Pos, "expected '%s' %s, got %q", typ, context, tok.Literal)
	}
	p.pos++
	return tok, nil
}

// ---------------------------------------------------------------------------
// Block parsing — the single recursive procedure
// ---------------------------------------------------------------------------

// parseBlock parses nodes until the block's closing brace (or end of input
// at root).  open is the brace token that opened this block; it anchors the
// unterminated-block error.  The four flags carry the syntactic context that
// keyword dispatch depends on.
func (p *parser) parseBlock(open token.Token, root, inLoop, inIf, inFn bool) (*ast.Program, *types.Error) {
	prog := &ast.Program{}

	for {
		tok := p.cur()

		switch tok.Type {
		case token.EOF:
			if root {
				return prog, nil
			}
			return nil, types.Structuralf(open.Pos, "expected ending bracket pair")

		case token.LBRACE, token.LPAREN, token.RPAREN, token.COLON:
			return nil, types.Structuralf(tok.Pos, "unexpected character %q", tok.Literal)

		case token.RBRACE:
			if root {
				return nil, types.Structuralf(tok.Pos, "unexpected character %q", tok.Literal)
			}
			p.next() // consume '}'
			return prog, nil

		case token.INT, token.FLOAT, token.STRING, token.BOOL, token.IDENT,
			token.CASTINT, token.CASTFLOAT, token.CASTSTR, token.CASTBOOL:
			prog.Nodes = append(prog.Nodes, &ast.Expr{Token: p.next()})

		case token.RETINT, token.RETFLOAT, token.RETSTR, token.RETBOOL, token.RETANY:
			return nil, types.Contextualf(tok.Pos, "return marker %q is only allowed after a function's parameter list", tok.Literal)

		case token.ELSE:
			return nil, types.Contextualf(tok.Pos, "'else' is only allowed directly after an 'if' block")

		case token.ANY:
			if !inFn {
				return nil, types.Contextualf(tok.Pos, "'any' is only allowed inside a function body")
			}
			prog.Nodes = append(prog.Nodes, &ast.Expr{Token: p.next()})

		case token.BREAK, token.CONTINUE:
			if !inLoop {
				return nil, types.Contextualf(tok.Pos, "%q is only allowed inside a loop", tok.Literal)
			}
			prog.Nodes = append(prog.Nodes, &ast.Expr{Token: p.next()})

		case token.LOOP:
			loopTok := p.next()
			lbrace, err := p.expect(token.LBRACE, "after 'loop'")
			if err != nil {
				return nil, err
			}
			body, err := p.parseBlock(lbrace, false, true, inIf, inFn)
			if err != nil {
				return nil, err
			}
			prog.Nodes = append(prog.Nodes, &ast.LoopStmt{Token: loopTok, Body: body})

		case token.FOR:
			forTok := p.next()
			if _, err := p.expect(token.LOOP, "after 'for'"); err != nil {
				return nil, err
			}
			lbrace, err := p.expect(token.LBRACE, "after 'for loop'")
			if err != nil {
				return nil, err
			}
			body, err := p.parseBlock(lbrace, false, true, inIf, inFn)
			if err != nil {
				return nil, err
			}
			prog.Nodes = append(prog.Nodes, &ast.ForLoopStmt{Token: forTok, Body: body})

		case token.WHILE:
			whileTok := p.next()
			if _, err := p.expect(token.LOOP, "after 'while'"); err != nil {
				return nil, err
			}
			lbrace, err := p.expect(token.LBRACE, "after 'while loop'")
			if err != nil {
				return nil, err
			}
			body, err := p.parseBlock(lbrace, false, true, inIf, inFn)
			if err != nil {
				return nil, err
			}
			prog.Nodes = append(prog.Nodes, &ast.WhileLoopStmt{Token: whileTok, Body: body})

		case token.IF:
			stmt, err := p.parseIf(inLoop, inFn)
			if err != nil {
				return nil, err
			}
			prog.Nodes = append(prog.Nodes, stmt)

		case token.FN:
			if !root {
				return nil, types.Structuralf(tok.Pos, "function declarations are only allowed at top level")
			}
			if err := p.parseFnDecl(); err != nil {
				return nil, err
			}

		default:
			if tok.Type.IsKeyword() {
				return nil, types.Structuralf(tok.Pos, "unknown keyword %q", tok.Literal)
			}
			return nil, types.Structuralf(tok.Pos, "unknown token %q", tok.Literal)
		}
	}
}

// parseIf parses `if { ... }` and, via a one-token lookback after the
// then-block closes, an optional `else { ... }`.
func (p *parser) parseIf(inLoop, inFn bool) (*ast.IfStmt, *types.Error) {
	ifTok := p.next() // 'if'

	lbrace, err := p.expect(token.LBRACE, "after 'if'")
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock(lbrace, false, inLoop, true, inFn)
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStmt{Token: ifTok, Then: then}

	// Step back to the brace that closed the then-block and check what
	// follows it.  Anything other than 'else' is left for the caller.
	p.pos--
	p.next() // re-consume '}'
	if p.cur().Type != token.ELSE {
		return stmt, nil
	}
	p.next() // consume 'else'

	lbrace, err = p.expect(token.LBRACE, "after 'else'")
	if err != nil {
		return nil, err
	}
	stmt.Else, err = p.parseBlock(lbrace, false, inLoop, true, inFn)
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseFnDecl parses a function declaration and registers it into the shared
// table.  Grammar:
//
//	fn IDENT "(" { IDENT [ ":" type ] } ")" return-marker "{" body "}"
//
// Parameters are whitespace-separated; a bare parameter name defaults to
// type any.  A redeclared name silently replaces the earlier entry.
func (p *parser) parseFnDecl() *types.Error {
	p.next() // 'fn'

	nameTok := p.cur()
	if nameTok.Type != token.IDENT {
		return types.Structuralf(nameTok.Pos, "expected function name, got %q", nameTok.Literal)
	}
	p.next()

	if _, err := p.expect(token.LPAREN, "after function name"); err != nil {
		return err
	}

	var params []types.Param
	for {
		tok := p.cur()
		if tok.Type == token.RPAREN {
			p.next()
			break
		}
		if tok.Type != token.IDENT {
			return types.Structuralf(tok.Pos, "expected parameter name or ')', got %q", tok.Literal)
		}
		p.next()

		ptype := types.Any
		if p.cur().Type == token.COLON {
			p.next()
			typeTok := p.cur()
			if !typeTok.Type.IsCast() && typeTok.Type != token.ANY {
				return types.Structuralf(typeTok.Pos, "expected parameter type after ':', got %q", typeTok.Literal)
			}
			ptype, _ = types.FromToken(typeTok.Type)
			p.next()
		}
		params = append(params, types.Param{Name: tok.Literal, Type: ptype})
	}

	retTok := p.cur()
	if !retTok.Type.IsReturnMarker() {
		return types.Structuralf(retTok.Pos, "expected return type marker after parameter list, got %q", retTok.Literal)
	}
	retType, _ := types.FromToken(retTok.Type)
	p.next()

	lbrace, err := p.expect(token.LBRACE, "to begin function body")
	if err != nil {
		return err
	}
	body, err := p.parseBlock(lbrace, false, false, false, true)
	if err != nil {
		return err
	}

	p.table.Define(&types.Function{
		Name:   nameTok.Literal,
		Params: params,
		Return: retType,
		Body:   body,
	})
	p.declared = append(p.declared, nameTok.Literal)
	return nil
}
