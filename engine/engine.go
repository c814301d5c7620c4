// Copyright 2025 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package engine bundles the TACK pipeline — lex, parse, verify — behind a
// caching façade for embedders that run the same scripts repeatedly.
//
// Accepted scripts are cached in an LRU keyed by the Keccak-256 of their
// source, so re-checking a hot script is a hash and a map hit.  Rejected
// scripts are never cached: the function table a failed parse partially
// populated is discarded with it.
package engine

import (
	"errors"
	"io"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/crypto/sha3"

	"github.com/probechain/tack-lang/lang/ast"
	"github.com/probechain/tack-lang/lang/lexer"
	"github.com/probechain/tack-lang/lang/parser"
	"github.com/probechain/tack-lang/lang/stdlib"
	"github.com/probechain/tack-lang/lang/types"
	"github.com/probechain/tack-lang/lang/verifier"
	"github.com/probechain/tack-lang/lang/vm"
)

// RejectError wraps the structural, contextual, or type diagnostic that
// made Check fail.  It unwraps to the underlying *types.Error so callers
// can recover the position and class.
type RejectError struct {
	Diag error
}

func (e *RejectError) Error() string { return "engine: script rejected: " + e.Diag.Error() }
func (e *RejectError) Unwrap() error { return e.Diag }

// IsRejected reports whether err is a script-level rejection rather than an
// engine fault.
func IsRejected(err error) bool {
	var reject *RejectError
	return errors.As(err, &reject)
}

// DefaultCacheSize is the number of verified scripts kept when no size is
// given.
const DefaultCacheSize = 128

// Script is a checked program ready for execution: the parsed tree plus the
// function table it was verified against (standard library and its own
// declarations).  Scripts are immutable after Check returns them.
type Script struct {
	Hash     [32]byte
	Program  *ast.Program
	Table    *types.Table
	Declared []string
}

// Engine checks TACK source and caches the accepted results.
type Engine struct {
	cache *lru.Cache
}

// New creates an Engine holding at most cacheSize verified scripts.
// A cacheSize of zero selects DefaultCacheSize.
func New(cacheSize int) (*Engine, error) {
	if cacheSize == 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Engine{cache: cache}, nil
}

// Check lexes, parses, and verifies src, returning the cached result when
// the same source has been accepted before.
func (e *Engine) Check(filename, src string) (*Script, error) {
	key := hashSource(src)
	if cached, ok := e.cache.Get(key); ok {
		return cached.(*Script), nil
	}

	table := stdlib.NewTable()
	toks := lexer.New(filename, src).Tokenize()

	prog, declared, err := parser.Parse(toks, table)
	if err != nil {
		return nil, &RejectError{Diag: err}
	}
	if err := verifier.Verify(prog, table, declared); err != nil {
		return nil, &RejectError{Diag: err}
	}

	script := &Script{Hash: key, Program: prog, Table: table, Declared: declared}
	e.cache.Add(key, script)
	return script, nil
}

// Run checks src and executes it on a fresh stack, writing program output
// to out.
func (e *Engine) Run(filename, src string, in io.Reader, out io.Writer) error {
	script, err := e.Check(filename, src)
	if err != nil {
		return err
	}
	m := vm.New(script.Table)
	m.SetIO(in, out)
	return m.Run(script.Program)
}

// CacheLen returns the number of scripts currently cached.
func (e *Engine) CacheLen() int { return e.cache.Len() }

// hashSource returns the Keccak-256 of the source text.
func hashSource(src string) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(src))
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}
