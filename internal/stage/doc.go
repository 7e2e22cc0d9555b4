// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package stage builds the guest application and places it into the staged
// image tree, the directory that QEMU mounts as a raw FAT drive.
//
// Stale artifacts are always removed before the build, so an artifact left
// over from a previous run can never be mistaken for a fresh build result.
package stage
