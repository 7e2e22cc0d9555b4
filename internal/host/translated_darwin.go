// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package host

import "golang.org/x/sys/unix"

// translated reports whether the process runs under Rosetta. The sysctl does
// not exist on Intel Macs, which is the same as not translated.
func translated() bool {
	value, err := unix.SysctlUint32("sysctl.proc_translated")
	if err != nil {
		return false
	}

	return value == 1
}
