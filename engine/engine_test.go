// Copyright 2025 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package engine

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/probechain/tack-lang/lang/types"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestCheckAccepts(t *testing.T) {
	e := newTestEngine(t)
	script, err := e.Check("t.tack", `1 2 +`)
	assert.NoError(t, err)
	assert.NotNil(t, script)
	assert.Len(t, script.Program.Nodes, 3)
	assert.Equal(t, 1, e.CacheLen())
}

func TestCheckCachesByContent(t *testing.T) {
	e := newTestEngine(t)
	first, err := e.Check("a.tack", `1 2 +`)
	assert.NoError(t, err)

	// Same source, different name: the cache is keyed by content.
	second, err := e.Check("b.tack", `1 2 +`)
	assert.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, e.CacheLen())

	_, err = e.Check("c.tack", `3 4 *`)
	assert.NoError(t, err)
	assert.Equal(t, 2, e.CacheLen())
}

func TestCheckRejectsParseError(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Check("t.tack", `loop {`)
	assert.Error(t, err)
	assert.True(t, IsRejected(err))

	// The structural diagnostic is preserved in the chain.
	var diag *types.Error
	assert.True(t, errors.As(err, &diag))
	assert.Equal(t, types.Structural, diag.Class)
	assert.Contains(t, diag.Msg, "expected ending bracket pair")

	// Rejected scripts are never cached.
	assert.Equal(t, 0, e.CacheLen())
}

func TestCheckRejectsTypeError(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Check("t.tack", `"1" "2" /`)
	assert.True(t, IsRejected(err))

	var diag *types.Error
	assert.True(t, errors.As(err, &diag))
	assert.Equal(t, types.TypeCheck, diag.Class)
	assert.Equal(t, 0, e.CacheLen())
}

func TestIsRejectedDistinguishesFaults(t *testing.T) {
	assert.False(t, IsRejected(nil))
	assert.False(t, IsRejected(errors.New("disk on fire")))
	assert.True(t, IsRejected(&RejectError{Diag: errors.New("bad program")}))
}

func TestRun(t *testing.T) {
	e := newTestEngine(t)
	var out bytes.Buffer
	err := e.Run("t.tack", `6 7 * print`, strings.NewReader(""), &out)
	assert.NoError(t, err)
	assert.Equal(t, "42\n", out.String())
}

func TestRunFreshStackPerCall(t *testing.T) {
	// Each Run starts a new machine; nothing leaks between calls even for
	// the same cached script.
	e := newTestEngine(t)
	src := `1 print`
	for i := 0; i < 2; i++ {
		var out bytes.Buffer
		err := e.Run("t.tack", src, strings.NewReader(""), &out)
		assert.NoError(t, err)
		assert.Equal(t, "1\n", out.String())
	}
	assert.Equal(t, 1, e.CacheLen())
}

func TestRunRuntimeFaultNotRejection(t *testing.T) {
	e := newTestEngine(t)
	var out bytes.Buffer
	err := e.Run("t.tack", `1 0 /`, strings.NewReader(""), &out)
	assert.Error(t, err)
	assert.False(t, IsRejected(err))

	// The script itself was accepted and cached.
	assert.Equal(t, 1, e.CacheLen())
}

func TestCacheEviction(t *testing.T) {
	e, err := New(2)
	assert.NoError(t, err)

	sources := []string{`1`, `2`, `3`}
	for _, src := range sources {
		_, err := e.Check("t.tack", src)
		assert.NoError(t, err)
	}
	assert.Equal(t, 2, e.CacheLen())
}

func TestScriptHashDiffers(t *testing.T) {
	e := newTestEngine(t)
	a, _ := e.Check("t.tack", `1`)
	b, _ := e.Check("t.tack", `2`)
	assert.NotEqual(t, a.Hash, b.Hash)
}
