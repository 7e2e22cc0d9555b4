// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"fmt"
	"slices"
	"strings"
)

// Argument is a single QEMU option with an optional value, like "-m 4G" or
// "-enable-kvm".
//
// Options like "-m" may appear only once in a command line. Options like
// "-device" may appear multiple times, but never twice with the same value.
type Argument struct {
	name       string
	value      string
	repeatable bool
}

// UniqueArg returns an [Argument] that may appear only once in a command
// line. Multiple values are joined with commas.
func UniqueArg(name string, value ...string) Argument {
	return Argument{
		name:  name,
		value: strings.Join(value, ","),
	}
}

// RepeatableArg returns an [Argument] that may appear multiple times in a
// command line with different values. Multiple values are joined with commas.
func RepeatableArg(name string, value ...string) Argument {
	return Argument{
		name:       name,
		value:      strings.Join(value, ","),
		repeatable: true,
	}
}

// Name returns the option name without leading dash.
func (a Argument) Name() string {
	return a.name
}

// Value returns the option value. It is empty for plain switches.
func (a Argument) Value() string {
	return a.value
}

// String implements [fmt.Stringer].
func (a Argument) String() string {
	if a.value == "" {
		return "-" + a.name
	}

	return "-" + a.name + " " + a.value
}

// Collides reports whether both [Argument]s must not be used in the same
// command line.
func (a Argument) Collides(other Argument) bool {
	if a.name != other.name {
		return false
	}

	if a.repeatable && other.repeatable {
		return a.value == other.value
	}

	return true
}

// BuildArgumentStrings flattens the [Argument]s into a slice of strings as
// used by [exec.Command].
//
// It returns an error wrapping [ErrArgumentCollision] if any two arguments
// collide.
func BuildArgumentStrings(args []Argument) ([]string, error) {
	strs := make([]string, 0, 2*len(args))

	for idx, arg := range args {
		if arg.name == "" {
			return nil, &ArgumentError{"empty argument name"}
		}

		prev := slices.IndexFunc(args[:idx], arg.Collides)
		if prev != -1 {
			return nil, fmt.Errorf("%w: %s, %s",
				ErrArgumentCollision, args[prev], arg)
		}

		strs = append(strs, "-"+arg.name)

		if arg.value != "" {
			strs = append(strs, arg.value)
		}
	}

	return strs, nil
}
