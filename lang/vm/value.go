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
	"strconv"

	"github.com/probechain/tack-lang/lang/types"
)

// Value is a runtime stack slot: a concrete stack type plus the matching
// payload field.  T is never types.Any at run time.
type Value struct {
	T types.StackType
	I int64
	F float64
	S string
	B bool
}

// IntValue wraps an int64.
func IntValue(i int64) Value { return Value{T: types.Int, I: i} }

// FloatValue wraps a float64.
func FloatValue(f float64) Value { return Value{T: types.Float, F: f} }

// StrValue wraps a string.
func StrValue(s string) Value { return Value{T: types.Str, S: s} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{T: types.Bool, B: b} }

// String renders the value the way print shows it.
func (v Value) String() string {
	switch v.T {
	case types.Int:
		return strconv.FormatInt(v.I, 10)
	case types.Float:
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	case types.Str:
		return v.S
	case types.Bool:
		return strconv.FormatBool(v.B)
	default:
		return fmt.Sprintf("value(%s)", v.T)
	}
}

// Cast converts the value to the target stack type.  Casting to any is the
// identity.  A string that does not parse as the numeric target is a type
// fault.
func (v Value) Cast(target types.StackType) (Value, error) {
	if target == types.Any || v.T == target {
		return v, nil
	}
	switch target {
	case types.Int:
		switch v.T {
		case types.Float:
			return IntValue(int64(v.F)), nil
		case types.Bool:
			if v.B {
				return IntValue(1), nil
			}
			return IntValue(0), nil
		case types.Str:
			i, err := strconv.ParseInt(v.S, 10, 64)
			if err != nil {
				return Value{}, fmt.Errorf("%w: cannot cast %q to int", ErrTypeFault, v.S)
			}
			return IntValue(i), nil
		}
	case types.Float:
		switch v.T {
		case types.Int:
			return FloatValue(float64(v.I)), nil
		case types.Str:
			f, err := strconv.ParseFloat(v.S, 64)
			if err != nil {
				return Value{}, fmt.Errorf("%w: cannot cast %q to float", ErrTypeFault, v.S)
			}
			return FloatValue(f), nil
		}
	case types.Str:
		return StrValue(v.String()), nil
	case types.Bool:
		switch v.T {
		case types.Int:
			return BoolValue(v.I != 0), nil
		case types.Str:
			b, err := strconv.ParseBool(v.S)
			if err != nil {
				return Value{}, fmt.Errorf("%w: cannot cast %q to bool", ErrTypeFault, v.S)
			}
			return BoolValue(b), nil
		}
	}
	return Value{}, fmt.Errorf("%w: cannot cast %s to %s", ErrTypeFault, v.T, target)
}
