// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strings"
	"syscall"
	"time"
)

// WaitDelay is how long a child may take to exit after it received SIGTERM
// due to context cancellation before it is killed.
const WaitDelay = 5 * time.Second

// Command describes a single child process.
type Command struct {
	// Args is the program followed by its arguments. Must not be empty.
	Args []string

	// Dir is the working directory of the child. If empty, the working
	// directory of the caller is used.
	Dir string

	// Env is an overlay for the child's environment. If empty, the child
	// inherits the caller's environment unmodified. Otherwise, the child
	// gets the caller's environment with the overlay keys added or
	// overwritten. The environment is never replaced as a whole.
	Env map[string]string
}

// String returns the command line as it would be typed in a shell, without
// any quoting.
func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// Validate checks the constraints of the [Command].
func (c Command) Validate() error {
	if len(c.Args) == 0 || c.Args[0] == "" {
		return ErrEmptyCommand
	}

	if c.Dir == "" {
		return nil
	}

	stat, err := os.Stat(c.Dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWorkDir, err)
	}

	if !stat.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrWorkDir, c.Dir)
	}

	return nil
}

// environ returns the environment for the child process. A nil return value
// makes [exec.Cmd] use the environment of the caller.
func (c Command) environ() []string {
	if len(c.Env) == 0 {
		return nil
	}

	env := os.Environ()

	keys := make([]string, 0, len(c.Env))
	for key := range c.Env {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	// Later entries win in [exec.Cmd], so appending overwrites.
	for _, key := range keys {
		env = append(env, key+"="+c.Env[key])
	}

	return env
}

// Runner runs [Command]s one after another.
//
// The zero value is ready to use and attaches the standard IO streams of the
// current process.
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// Run spawns the given [Command] and blocks until it terminates.
//
// It returns an [*Error] if the child could not be started or exited with a
// non-zero exit code. If ctx is done before the child exits, the child gets
// SIGTERM and the returned [*Error] wraps the context's error.
func (r *Runner) Run(ctx context.Context, command Command) error {
	err := command.Validate()
	if err != nil {
		return err
	}

	r.logger().Info("Running command",
		slog.String("command", command.String()),
		slog.String("dir", command.Dir),
		slog.Int("env_overlay", len(command.Env)),
	)

	//nolint:gosec
	cmd := exec.CommandContext(ctx, command.Args[0], command.Args[1:]...)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = WaitDelay
	cmd.Dir = command.Dir
	cmd.Env = command.environ()
	cmd.Stdin = orDefault(r.Stdin, io.Reader(os.Stdin))
	cmd.Stdout = orDefault(r.Stdout, io.Writer(os.Stdout))
	cmd.Stderr = orDefault(r.Stderr, io.Writer(os.Stderr))

	err = cmd.Run()
	if err == nil {
		return nil
	}

	exitCode := -1

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
		err = ErrNonZeroExitCode
	}

	if ctx.Err() != nil {
		err = ctx.Err()
	}

	return &Error{
		Args:     command.Args,
		ExitCode: exitCode,
		Err:      err,
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}

	return r.Logger
}

func orDefault[T comparable](value, fallback T) T {
	var zero T
	if value == zero {
		return fallback
	}

	return value
}
