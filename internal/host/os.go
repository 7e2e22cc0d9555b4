// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package host

import "strings"

// OS is a host operating system.
type OS string

// Known host operating systems.
const (
	Darwin OS = "darwin"
	Linux  OS = "linux"
)

func (o OS) String() string {
	return string(o)
}

// NormalizeOS maps operating system names as used by GOOS or uname to an
// [OS].
func NormalizeOS(name string) OS {
	normalized := strings.ToLower(strings.TrimSpace(name))

	switch normalized {
	case "darwin", "macos", "osx":
		return Darwin
	case "linux":
		return Linux
	default:
		return OS(normalized)
	}
}
