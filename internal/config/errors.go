// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import "errors"

var (
	// ErrEmptyRoot is returned if no project root is set.
	ErrEmptyRoot = errors.New("project root must not be empty")

	// ErrInvalidMode is returned for build modes other than debug and
	// release.
	ErrInvalidMode = errors.New("invalid build mode")

	// ErrMissingValue is returned if a mandatory value is empty.
	ErrMissingValue = errors.New("missing value")
)
