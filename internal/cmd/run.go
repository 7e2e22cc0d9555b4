// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime/debug"
)

const (
	exitCodeFailure   = 1
	exitCodeInterrupt = 130
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func handleRunError(ctx context.Context, err error, logger *slog.Logger) int {
	// An interrupt reaches the emulator as well, which then exits non-zero.
	// Report the interrupt, not the emulator failure.
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		logger.Warn("Interrupted", slog.Any("error", err))
		return exitCodeInterrupt
	}

	logger.Error(err.Error())

	return exitCodeFailure
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	var level slog.LevelVar

	logger := newLogger(cfg.Stderr, &level)
	slog.SetDefault(logger)

	root := newRootCommand(logger, &level)
	root.SetArgs(args)
	root.SetIn(cfg.Stdin)
	root.SetOut(cfg.Stdout)
	root.SetErr(cfg.Stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		return handleRunError(ctx, err, logger)
	}

	return 0
}

func getBuildInfo() (*debug.BuildInfo, error) {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, ErrReadBuildInfo
	}

	return buildInfo, nil
}
