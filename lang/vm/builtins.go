// Copyright 2025 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

import (
	"fmt"
	"math"
	"strings"

	"github.com/probechain/tack-lang/lang/types"
)

// nativeFunc is the implementation of one standard-library word.
type nativeFunc func(m *VM) error

// natives maps standard-library names to their implementations.  The
// signatures these must honor are declared in the stdlib package.
var natives = map[string]nativeFunc{
	"+": numBinop(
		func(a, b int64) (int64, error) { return a + b, nil },
		func(a, b float64) (float64, error) { return a + b, nil },
	),
	"-": numBinop(
		func(a, b int64) (int64, error) { return a - b, nil },
		func(a, b float64) (float64, error) { return a - b, nil },
	),
	"*": numBinop(
		func(a, b int64) (int64, error) { return a * b, nil },
		func(a, b float64) (float64, error) { return a * b, nil },
	),
	"/": numBinop(
		func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, ErrDivisionByZero
			}
			return a / b, nil
		},
		func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, ErrDivisionByZero
			}
			return a / b, nil
		},
	),
	"%": numBinop(
		func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, ErrDivisionByZero
			}
			return a % b, nil
		},
		func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, ErrDivisionByZero
			}
			return math.Mod(a, b), nil
		},
	),

	"=": numCompare(func(a, b float64) bool { return a == b }),
	"<": numCompare(func(a, b float64) bool { return a < b }),
	">": numCompare(func(a, b float64) bool { return a > b }),

	"not": func(m *VM) error {
		v, err := m.popTyped(types.Bool)
		if err != nil {
			return err
		}
		m.Push(BoolValue(!v.B))
		return nil
	},

	"concat": func(m *VM) error {
		b, err := m.popTyped(types.Str)
		if err != nil {
			return err
		}
		a, err := m.popTyped(types.Str)
		if err != nil {
			return err
		}
		m.Push(StrValue(a.S + b.S))
		return nil
	},

	"len": func(m *VM) error {
		s, err := m.popTyped(types.Str)
		if err != nil {
			return err
		}
		m.Push(IntValue(int64(len(s.S))))
		return nil
	},

	"dup": func(m *VM) error {
		v, ok := m.Top()
		if !ok {
			return ErrStackUnderflow
		}
		m.Push(v)
		return nil
	},

	"drop": func(m *VM) error {
		_, err := m.Pop()
		return err
	},

	"swap": func(m *VM) error {
		b, err := m.Pop()
		if err != nil {
			return err
		}
		a, err := m.Pop()
		if err != nil {
			return err
		}
		m.Push(b)
		m.Push(a)
		return nil
	},

	"print": func(m *VM) error {
		v, err := m.Pop()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(m.out, v.String())
		return err
	},

	"readln": func(m *VM) error {
		line, err := m.in.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("vm: readln: %v", err)
		}
		m.Push(StrValue(strings.TrimRight(line, "\r\n")))
		return nil
	},
}

// popNumber pops the top value and rejects anything that is not an int
// or a float.
func (m *VM) popNumber() (Value, error) {
	v, err := m.Pop()
	if err != nil {
		return Value{}, err
	}
	if v.T != types.Int && v.T != types.Float {
		return Value{}, fmt.Errorf("%w: %s is not a number", ErrTypeFault, v.T)
	}
	return v, nil
}

// asFloat widens a numeric value for mixed-operand arithmetic.
func asFloat(v Value) float64 {
	if v.T == types.Float {
		return v.F
	}
	return float64(v.I)
}

// numBinop builds a native that pops two numbers and pushes op(a, b),
// where a is the deeper value.  Two ints stay in the int domain; any
// float operand promotes the result to float.
func numBinop(iop func(a, b int64) (int64, error), fop func(a, b float64) (float64, error)) nativeFunc {
	return func(m *VM) error {
		b, err := m.popNumber()
		if err != nil {
			return err
		}
		a, err := m.popNumber()
		if err != nil {
			return err
		}
		if a.T == types.Int && b.T == types.Int {
			r, err := iop(a.I, b.I)
			if err != nil {
				return err
			}
			m.Push(IntValue(r))
			return nil
		}
		r, err := fop(asFloat(a), asFloat(b))
		if err != nil {
			return err
		}
		m.Push(FloatValue(r))
		return nil
	}
}

// numCompare builds a native that pops two numbers and pushes cmp(a, b).
func numCompare(cmp func(a, b float64) bool) nativeFunc {
	return func(m *VM) error {
		b, err := m.popNumber()
		if err != nil {
			return err
		}
		a, err := m.popNumber()
		if err != nil {
			return err
		}
		m.Push(BoolValue(cmp(asFloat(a), asFloat(b))))
		return nil
	}
}
