// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package watch

import "errors"

var (
	// ErrClosed is returned by [Watcher.Wait] if the watcher has been closed.
	ErrClosed = errors.New("watcher closed")

	// ErrNotDir is returned if a path to watch is not a directory.
	ErrNotDir = errors.New("not a directory")
)
