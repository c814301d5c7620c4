// Copyright 2025 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package types

import (
	"fmt"

	"github.com/probechain/tack-lang/lang/token"
)

// ErrorClass categorizes a diagnostic.
type ErrorClass int

const (
	// Structural errors: illegal token sequences — unexpected or unknown
	// tokens, missing required keywords or punctuation, unterminated blocks,
	// nested fn declarations.
	Structural ErrorClass = iota

	// Contextual errors: a keyword used outside its only legal context
	// (break/continue outside a loop, any outside a function, a stray else
	// or return marker).
	Contextual

	// TypeCheck errors: undeclared identifiers and calls whose declared
	// input type does not match the simulated top-of-stack type.
	TypeCheck
)

func (c ErrorClass) String() string {
	switch c {
	case Structural:
		return "structural"
	case Contextual:
		return "contextual"
	case TypeCheck:
		return "type"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Error is the single diagnostic value produced by the parser and the
// verifier.  It is fatal to the pass that produced it: there is no recovery
// and no multi-error accumulation.  Presenting it to the user is the
// caller's job; Error() yields only position and plain message.
type Error struct {
	Class ErrorClass
	Pos   token.Position
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Structuralf builds a structural error at pos.
func Structuralf(pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Class: Structural, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Contextualf builds a contextual keyword error at pos.
func Contextualf(pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Class: Contextual, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// TypeErrorf builds a type error at pos.
func TypeErrorf(pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Class: TypeCheck, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
