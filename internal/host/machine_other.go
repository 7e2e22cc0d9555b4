// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !unix

package host

import "runtime"

func machine() (Arch, error) {
	return NormalizeArch(runtime.GOARCH), nil
}
