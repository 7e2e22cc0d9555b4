// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import "errors"

var (
	// ErrEmptyFilePath is returned if an empty path is given.
	ErrEmptyFilePath = errors.New("file path must not be empty")

	// ErrReadBuildInfo is returned if the build info cannot be read.
	ErrReadBuildInfo = errors.New("failed to read build info")

	// ErrInvalidLogLevel is returned for unknown log level names.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrChecksFailed is returned if any host check failed.
	ErrChecksFailed = errors.New("host checks failed")
)
