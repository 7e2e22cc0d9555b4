// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package efirun sequences the development loop of a UEFI application:
// compile it, stage it into the directory QEMU mounts as FAT drive, and boot
// it in a QEMU guest with the launch profile matching the host.
//
// Every phase completes or fails before the next one begins. A failure in
// any phase aborts the run; nothing is retried. The final launch blocks until
// the emulator exits, since its console is the interactive surface of the
// operator.
package efirun
