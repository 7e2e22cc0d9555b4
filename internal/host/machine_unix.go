// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build unix

package host

import (
	"golang.org/x/sys/unix"
)

// machine returns the architecture of the machine as reported by uname. If
// the process runs translated on an arm64 host, [ARM64] is returned.
func machine() (Arch, error) {
	var uts unix.Utsname

	err := unix.Uname(&uts)
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	if translated() {
		return ARM64, nil
	}

	return NormalizeArch(unix.ByteSliceToString(uts.Machine[:])), nil
}
