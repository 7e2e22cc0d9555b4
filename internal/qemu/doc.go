// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package qemu composes qemu-system command lines that boot a UEFI
// application from a directory mounted as a raw FAT drive.
//
// The guest firmware (OVMF) discovers the application at the removable media
// boot path of the mounted directory, so no disk image needs to be built.
// Debug output written by the firmware or application to the ISA debug
// console port ends up in a log file on the host.
package qemu
