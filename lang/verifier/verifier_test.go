// Copyright 2025 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package verifier

import (
	"strings"
	"testing"

	"github.com/probechain/tack-lang/lang/lexer"
	"github.com/probechain/tack-lang/lang/parser"
	"github.com/probechain/tack-lang/lang/stdlib"
	"github.com/probechain/tack-lang/lang/types"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// verifySrc lexes, parses, and verifies src with a fresh standard-library
// table, returning the verification result.  Parse failures abort the test.
func verifySrc(t *testing.T, src string, opts ...Option) error {
	t.Helper()
	table := stdlib.NewTable()
	prog, declared, err := parser.Parse(lexer.New("test.tack", src).Tokenize(), table)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return Verify(prog, table, declared, opts...)
}

// mustVerify asserts that src passes verification.
func mustVerify(t *testing.T, src string, opts ...Option) {
	t.Helper()
	if err := verifySrc(t, src, opts...); err != nil {
		t.Fatalf("unexpected verify error: %v", err)
	}
}

// mustReject asserts that verification fails with a type error whose message
// contains sub, and returns the error.
func mustReject(t *testing.T, src, sub string) *types.Error {
	t.Helper()
	err := verifySrc(t, src)
	if err == nil {
		t.Fatal("expected a verify error, got none")
	}
	terr, ok := err.(*types.Error)
	if !ok {
		t.Fatalf("expected *types.Error, got %T: %v", err, err)
	}
	if terr.Class != types.TypeCheck {
		t.Errorf("error class = %s, want type", terr.Class)
	}
	if !strings.Contains(terr.Msg, sub) {
		t.Errorf("error %q does not contain %q", terr.Msg, sub)
	}
	return terr
}

// ---------------------------------------------------------------------------
// Literals and casts
// ---------------------------------------------------------------------------

func TestLiteralsRetype(t *testing.T) {
	// Each literal overwrites the simulated type; the final + sees int.
	mustVerify(t, `"ignored" true 3.3 1 2 +`)
}

func TestCastsRetype(t *testing.T) {
	mustVerify(t, `"12" int 1 +`)
	mustVerify(t, `1 str "x" concat`)
	mustVerify(t, `0 bool not`)
}

// ---------------------------------------------------------------------------
// Calls against the standard library
// ---------------------------------------------------------------------------

func TestArithmeticAtInt(t *testing.T) {
	mustVerify(t, `1 2 +`)
}

func TestArithmeticAtFloat(t *testing.T) {
	mustVerify(t, `1.5 2.5 *`)
}

func TestArithmeticRejectsStrings(t *testing.T) {
	err := mustReject(t, `"1" "2" /`, `attempt to call function "/" not found at stack str`)
	// The error points at the call site.
	if err.Pos.Column != 9 {
		t.Errorf("error column = %d, want 9", err.Pos.Column)
	}
}

func TestArithmeticRejectsBool(t *testing.T) {
	mustReject(t, `true false +`, "not found at stack bool")
}

func TestUndeclaredIdentifier(t *testing.T) {
	mustReject(t, `1 frobnicate`, `undeclared identifier "frobnicate"`)
}

func TestCallDoesNotApplyReturnType(t *testing.T) {
	// After a successful call the simulated type is unchanged: < returns
	// bool at run time, but the next word still sees int.
	mustVerify(t, `1 2 < 3 +`)
	// Relying on the output type without a cast fails.
	mustReject(t, `1 2 < not`, "not found at stack int")
	// The cast bridges the gap.
	mustVerify(t, `1 2 < bool not`)
}

// ---------------------------------------------------------------------------
// User functions
// ---------------------------------------------------------------------------

func TestUserFnMatchingInput(t *testing.T) {
	mustVerify(t, `
fn negate(t: float) @float {
    0 t -
}
44.44 55.4 negate
`)
}

func TestUserFnMismatchedInput(t *testing.T) {
	mustReject(t, `
fn negate(t: int) @int {
    0 t -
}
44.44 55.4 negate
`, `attempt to call function "negate" not found at stack float`)
}

func TestUserFnBodyStartsAtReturnType(t *testing.T) {
	// The body's simulated type starts at the declared return type.
	mustVerify(t, `fn tail(s: str) @str { concat }`)
	mustReject(t, `fn bad(s: str) @int { concat }`, "not found at stack int")
}

func TestParameterReadSetsType(t *testing.T) {
	mustVerify(t, `fn echo(s: str) @int { s "!" concat 1 }`)
}

func TestZeroParamFnCallableAnywhere(t *testing.T) {
	mustVerify(t, `
fn seed() @int { 7 }
"whatever" seed
`)
}

func TestAnyParamAcceptsEverything(t *testing.T) {
	mustVerify(t, `
fn sink(v) @any { v }
"s" sink
1 sink
true sink
`)
}

func TestAnyOnStackRejectsConcreteParams(t *testing.T) {
	// A wildcard on top of the stack does not satisfy concrete parameters.
	mustReject(t, `
fn pass(x: any) @any { x not }
`, `attempt to call function "not" not found at stack any`)
}

func TestDuplicateFnLastWins(t *testing.T) {
	mustVerify(t, `
fn f(x: int) @int { x }
fn f(s: str) @str { s }
"s" f
`)
	mustReject(t, `
fn f(s: str) @str { s }
fn f(b: bool) @bool { b }
"s" f
`, "not found at stack str")
}

func TestFnContextsDoNotNest(t *testing.T) {
	// A function body cannot see another function's parameters.
	mustReject(t, `
fn a(x: int) @int { x }
fn b(y: int) @int { x }
`, `undeclared identifier "x"`)
}

// ---------------------------------------------------------------------------
// Block seeding conventions
// ---------------------------------------------------------------------------

func TestForLoopBodySeededInt(t *testing.T) {
	// Whatever type came before, the counted loop's body checks from int
	// and leaves int behind.
	mustVerify(t, `"hi" for loop { 1 + } 2 +`)
}

func TestWhileLoopBodySeededBool(t *testing.T) {
	mustVerify(t, `1 while loop { not } not`)
	mustReject(t, `1 while loop { + }`, "not found at stack bool")
}

func TestIfBranchesSeededBool(t *testing.T) {
	mustVerify(t, `1 if { not } else { not } not`)
	mustReject(t, `1 if { + }`, "not found at stack bool")
}

func TestPlainLoopCarriesAmbientType(t *testing.T) {
	// loop neither reseeds its body nor changes the ambient type.
	mustVerify(t, `true loop { not break } not`)
	mustReject(t, `"s" loop { + break }`, "not found at stack str")
}

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

func TestWithRootType(t *testing.T) {
	// Default root type is int.
	mustReject(t, `concat`, "not found at stack int")
	mustVerify(t, `concat`, WithRootType(types.Str))
}

func TestWithTrace(t *testing.T) {
	var events []TraceEvent
	err := verifySrc(t, `1 2.5 "s"`, WithTrace(func(ev TraceEvent) {
		events = append(events, ev)
	}))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("want 3 trace events, got %d", len(events))
	}
	wantTypes := []types.StackType{types.Int, types.Float, types.Str}
	for i, ev := range events {
		if ev.Type != wantTypes[i] {
			t.Errorf("event[%d]: type = %s, want %s", i, ev.Type, wantTypes[i])
		}
	}
}
