// Copyright 2025 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package token defines the lexical token types for the TACK language.
//
// TACK is a concatenative, stack-based language: a program is a flat
// sequence of words separated by whitespace, grouped into blocks by braces.
// The token set is accordingly small — four literal kinds, identifiers,
// a dozen keywords, the five return-type markers, and brace/paren/colon
// punctuation.
package token

import "fmt"

// Token represents a lexical token.  Start and End delimit the token's
// source range; End points one column past the last character.
type Token struct {
	Type    Type
	Literal string
	Pos     Position
	End     Position
}

// Position tracks source location.  Line and Column are 1-based.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Type is the set of lexical token types.
type Type int

const (
	// Special tokens
	ILLEGAL Type = iota
	EOF
	COMMENT

	// Literals
	IDENT  // negate, x, my_word
	INT    // 42
	FLOAT  // 3.14
	STRING // "hello"
	BOOL   // true, false

	// Punctuation
	LBRACE // {
	RBRACE // }
	LPAREN // (
	RPAREN // )
	COLON  // :

	// Keywords
	keywordStart
	LOOP     // loop
	FOR      // for   (only as part of "for loop")
	WHILE    // while (only as part of "while loop")
	IF       // if
	ELSE     // else
	FN       // fn
	BREAK    // break
	CONTINUE // continue
	ANY      // any

	// Cast keywords — assert/convert the top-of-stack type.
	CASTINT   // int
	CASTFLOAT // float
	CASTSTR   // str
	CASTBOOL  // bool
	keywordEnd

	// Return-type markers — legal only after a function's parameter list.
	RETINT   // @int
	RETFLOAT // @float
	RETSTR   // @str
	RETBOOL  // @bool
	RETANY   // @any
)

var tokenNames = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	COMMENT: "COMMENT",

	IDENT:  "IDENT",
	INT:    "INT",
	FLOAT:  "FLOAT",
	STRING: "STRING",
	BOOL:   "BOOL",

	LBRACE: "{",
	RBRACE: "}",
	LPAREN: "(",
	RPAREN: ")",
	COLON:  ":",

	LOOP:     "loop",
	FOR:      "for",
	WHILE:    "while",
	IF:       "if",
	ELSE:     "else",
	FN:       "fn",
	BREAK:    "break",
	CONTINUE: "continue",
	ANY:      "any",

	CASTINT:   "int",
	CASTFLOAT: "float",
	CASTSTR:   "str",
	CASTBOOL:  "bool",

	RETINT:   "@int",
	RETFLOAT: "@float",
	RETSTR:   "@str",
	RETBOOL:  "@bool",
	RETANY:   "@any",
}

// String returns the string form of a token type.
func (t Type) String() string {
	if int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// IsKeyword returns true if the token is a keyword.
func (t Type) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsLiteral returns true if the token is a literal value or identifier.
func (t Type) IsLiteral() bool {
	return t >= IDENT && t <= BOOL
}

// IsCast returns true for the four concrete cast keywords.
func (t Type) IsCast() bool {
	return t >= CASTINT && t <= CASTBOOL
}

// IsReturnMarker returns true for the @-prefixed return-type markers.
func (t Type) IsReturnMarker() bool {
	return t >= RETINT && t <= RETANY
}

// keywords maps keyword strings to token types.
var keywords map[string]Type

func init() {
	keywords = make(map[string]Type)
	for i := keywordStart + 1; i < keywordEnd; i++ {
		keywords[tokenNames[i]] = i
	}
}

// LookupIdent checks if an identifier is a keyword.  The boolean literals
// lex as BOOL rather than as keywords so that they reach the parser as
// ordinary literal tokens.
func LookupIdent(ident string) Type {
	switch ident {
	case "true", "false":
		return BOOL
	}
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// LookupReturnMarker maps the identifier following an '@' to its marker
// type, or ILLEGAL when the word is not a valid return type.
func LookupReturnMarker(ident string) Type {
	switch ident {
	case "int":
		return RETINT
	case "float":
		return RETFLOAT
	case "str":
		return RETSTR
	case "bool":
		return RETBOOL
	case "any":
		return RETANY
	}
	return ILLEGAL
}
