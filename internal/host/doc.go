// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package host detects the facts about the host system that decide how the
// guest is launched: CPU architecture and operating system.
//
// The architecture is the one of the machine, not the one of the running
// process. On an arm64 Mac, a process translated by Rosetta still reports
// [ARM64].
package host
