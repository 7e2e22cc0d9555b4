// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package process runs external commands synchronously with the standard IO
// streams of the caller attached, so interactive programs like the QEMU
// monitor work transparently.
//
// Each [Runner.Run] call spawns exactly one child and blocks until it
// terminates. Nothing is retried and no state is kept between calls.
package process
