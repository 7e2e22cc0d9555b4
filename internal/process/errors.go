// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package process

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyCommand is returned if a [Command] has no arguments.
	ErrEmptyCommand = errors.New("command must not be empty")

	// ErrWorkDir is returned if the working directory of a [Command] does
	// not exist or is not a directory.
	ErrWorkDir = errors.New("invalid working directory")

	// ErrNonZeroExitCode is wrapped by [Error] if the child ran but exited
	// with a non-zero exit code.
	ErrNonZeroExitCode = errors.New("non-zero exit code")
)

// Error is returned if a child process could not be spawned or terminated
// with a non-zero exit code.
type Error struct {
	Args     []string
	ExitCode int
	Err      error
}

// Error implements the [error] interface.
func (e *Error) Error() string {
	return fmt.Sprintf(
		"running %q failed with exit code %d: %v",
		strings.Join(e.Args, " "),
		e.ExitCode,
		e.Err,
	)
}

// Is implements the [errors.Is] interface.
func (*Error) Is(other error) bool {
	_, ok := other.(*Error)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *Error) Unwrap() error {
	return e.Err
}
