// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package host

import (
	"fmt"
	"runtime"
)

// Facts are the host properties a launch profile is selected by.
type Facts struct {
	Arch Arch
	OS   OS
}

func (f Facts) String() string {
	return f.OS.String() + "-" + f.Arch.String()
}

// Detect reads the [Facts] of the running host.
func Detect() (Facts, error) {
	arch, err := machine()
	if err != nil {
		return Facts{}, fmt.Errorf("detect architecture: %w", err)
	}

	return Facts{
		Arch: arch,
		OS:   NormalizeOS(runtime.GOOS),
	}, nil
}
