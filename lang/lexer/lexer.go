// Copyright 2025 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package lexer implements a single-pass, no-backtracking lexer for the TACK
// language.
//
// Design principles:
//   - ASCII-only input
//   - Whitespace separates words; braces, parens, and colons self-delimit
//   - Words made of symbol characters (+ - * / % = < > …) lex as identifiers,
//     so the standard-library operators are ordinary words
//   - "@" followed by a type word produces a return-type marker token
//   - "#" starts a line comment
//   - String literals ("...") support backslash escapes
package lexer

import (
	"github.com/probechain/tack-lang/lang/token"
)

// Lexer holds the state for a single-pass tokenization run.
type Lexer struct {
	filename string
	input    []byte

	// pos is the index into input of the next byte to be loaded into ch.
	// After advance(), ch == input[pos-1] and pos points one past it.
	pos  int
	line int // 1-based current line number
	col  int // 1-based current column number

	ch byte // current character; 0 when past end
}

// New creates a new Lexer for the given filename and input string.
func New(filename, input string) *Lexer {
	l := &Lexer{
		filename: filename,
		input:    []byte(input),
		line:     1,
		col:      0,
	}
	l.advance() // prime l.ch with the first byte
	return l
}

// advance moves to the next byte in the input, updating line/column tracking.
// When the end of input is reached, ch is set to 0.
func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	if l.pos >= len(l.input) {
		l.ch = 0
		return
	}
	l.ch = l.input[l.pos]
	l.pos++
}

// peek returns the byte after the current character without consuming it.
// Returns 0 if at or past end.
func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// currentPos returns a token.Position capturing the lexer's state right now.
// Call this before consuming the first character of a token; calling it after
// the last character yields the position one column past the token.
func (l *Lexer) currentPos() token.Position {
	// After advance(), pos is already one past ch, so the byte offset of ch is pos-1.
	return token.Position{
		File:   l.filename,
		Line:   l.line,
		Column: l.col,
		Offset: l.pos - 1,
	}
}

// makeToken constructs a token spanning from pos to the lexer's current
// position.
func (l *Lexer) makeToken(typ token.Type, literal string, pos token.Position) token.Token {
	return token.Token{Type: typ, Literal: literal, Pos: pos, End: l.currentPos()}
}

// skipWhitespace consumes space, tab, carriage return, and newline characters.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.advance()
	}
}

// NextToken scans and returns the next token from the input.
// After EOF is reached, subsequent calls continue returning EOF tokens.
// The EOF token's position is one column past the last real character.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	pos := l.currentPos()
	ch := l.ch

	if ch == 0 {
		return l.makeToken(token.EOF, "", pos)
	}

	l.advance() // consume ch; from here on, l.ch is the character AFTER ch

	switch {
	// -------------------------------------------------------------------------
	// Alphabetic words: identifiers, keywords, boolean literals
	// -------------------------------------------------------------------------
	case isWordStart(ch):
		lit := l.readWordFromFirst(ch)
		typ := token.LookupIdent(lit)
		return l.makeToken(typ, lit, pos)

	// -------------------------------------------------------------------------
	// Numeric literals
	// -------------------------------------------------------------------------
	case isDigit(ch):
		typ, lit := l.readNumberFromFirst(ch)
		return l.makeToken(typ, lit, pos)

	// -------------------------------------------------------------------------
	// String literals
	// -------------------------------------------------------------------------
	case ch == '"':
		// The opening '"' has been consumed; read the rest.
		lit, ok := l.readStringBody()
		if !ok {
			return l.makeToken(token.ILLEGAL, lit, pos)
		}
		return l.makeToken(token.STRING, lit, pos)

	// -------------------------------------------------------------------------
	// Return-type markers  @int @float @str @bool @any
	// -------------------------------------------------------------------------
	case ch == '@':
		if !isWordStart(l.ch) {
			return l.makeToken(token.ILLEGAL, "@", pos)
		}
		first := l.ch
		l.advance()
		word := l.readWordFromFirst(first)
		typ := token.LookupReturnMarker(word)
		return l.makeToken(typ, "@"+word, pos)

	// -------------------------------------------------------------------------
	// Line comments
	// -------------------------------------------------------------------------
	case ch == '#':
		body := l.readLineCommentBody()
		return l.makeToken(token.COMMENT, "#"+body, pos)

	// -------------------------------------------------------------------------
	// Punctuation
	// -------------------------------------------------------------------------
	case ch == '{':
		return l.makeToken(token.LBRACE, "{", pos)
	case ch == '}':
		return l.makeToken(token.RBRACE, "}", pos)
	case ch == '(':
		return l.makeToken(token.LPAREN, "(", pos)
	case ch == ')':
		return l.makeToken(token.RPAREN, ")", pos)
	case ch == ':':
		return l.makeToken(token.COLON, ":", pos)

	// -------------------------------------------------------------------------
	// Symbolic words: operators are ordinary identifiers in TACK.
	// A '-' directly followed by a digit starts a negative numeric literal.
	// -------------------------------------------------------------------------
	case isSymbol(ch):
		if ch == '-' && isDigit(l.ch) {
			first := l.ch
			l.advance()
			typ, lit := l.readNumberFromFirst(first)
			return l.makeToken(typ, "-"+lit, pos)
		}
		lit := l.readSymbolFromFirst(ch)
		return l.makeToken(token.IDENT, lit, pos)
	}

	// Anything else is ILLEGAL.
	return l.makeToken(token.ILLEGAL, string([]byte{ch}), pos)
}

// Tokenize returns all tokens (including the final EOF) produced by repeated
// calls to NextToken.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

// ---------------------------------------------------------------------------
// Internal readers — each assumes the first character has already been
// consumed by the advance() call inside NextToken.
// ---------------------------------------------------------------------------

// readWordFromFirst builds an alphabetic word starting with the already-
// consumed byte `first`, then consuming subsequent word-continue bytes.
func (l *Lexer) readWordFromFirst(first byte) string {
	buf := make([]byte, 1, 16)
	buf[0] = first
	for isWordContinue(l.ch) {
		buf = append(buf, l.ch)
		l.advance()
	}
	return string(buf)
}

// readSymbolFromFirst builds a symbolic word (operator identifier).
func (l *Lexer) readSymbolFromFirst(first byte) string {
	buf := make([]byte, 1, 4)
	buf[0] = first
	for isSymbol(l.ch) {
		buf = append(buf, l.ch)
		l.advance()
	}
	return string(buf)
}

// readNumberFromFirst parses an integer or float literal given the already-
// consumed first digit `first`.
//
//	digits "." digits   →  FLOAT  (with optional exponent)
//	digits              →  INT
func (l *Lexer) readNumberFromFirst(first byte) (token.Type, string) {
	buf := make([]byte, 1, 24)
	buf[0] = first

	for isDigit(l.ch) {
		buf = append(buf, l.ch)
		l.advance()
	}

	// Float: a '.' followed by at least one digit.
	if l.ch == '.' && isDigit(l.peek()) {
		buf = append(buf, '.')
		l.advance() // consume '.'
		for isDigit(l.ch) {
			buf = append(buf, l.ch)
			l.advance()
		}
		// Optional exponent: e/E, optional sign, one or more digits.
		if l.ch == 'e' || l.ch == 'E' {
			buf = append(buf, l.ch)
			l.advance()
			if l.ch == '+' || l.ch == '-' {
				buf = append(buf, l.ch)
				l.advance()
			}
			for isDigit(l.ch) {
				buf = append(buf, l.ch)
				l.advance()
			}
		}
		return token.FLOAT, string(buf)
	}

	return token.INT, string(buf)
}

// readStringBody reads the content of a string literal after the opening '"'
// has been consumed.  It returns the full literal — including both quote
// characters — and a bool that is false when the string was unterminated.
//
// Escape sequences are preserved verbatim in the literal; decoding happens
// in the executor, not at the lexing stage.
func (l *Lexer) readStringBody() (string, bool) {
	buf := make([]byte, 1, 32)
	buf[0] = '"' // re-add the already-consumed opening quote
	for {
		switch l.ch {
		case 0, '\n':
			// Unterminated string.
			return string(buf), false
		case '\\':
			buf = append(buf, '\\')
			l.advance() // consume '\'
			if l.ch == 0 {
				return string(buf), false
			}
			buf = append(buf, l.ch)
			l.advance() // consume the escaped character
		case '"':
			buf = append(buf, '"')
			l.advance() // consume closing '"'
			return string(buf), true
		default:
			buf = append(buf, l.ch)
			l.advance()
		}
	}
}

// readLineCommentBody reads from the current position to end-of-line (not
// including the newline byte).  The "#" prefix has already been consumed.
func (l *Lexer) readLineCommentBody() string {
	var buf []byte
	for l.ch != '\n' && l.ch != 0 {
		buf = append(buf, l.ch)
		l.advance()
	}
	return string(buf)
}

// ---------------------------------------------------------------------------
// Character classification helpers
// ---------------------------------------------------------------------------

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isWordStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isWordContinue(ch byte) bool {
	return isWordStart(ch) || isDigit(ch)
}

func isSymbol(ch byte) bool {
	switch ch {
	case '+', '-', '*', '/', '%', '=', '<', '>', '!', '&', '|', '^', '~', '.', '?':
		return true
	}
	return false
}
