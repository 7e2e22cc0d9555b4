// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package host

import "strings"

// Arch is a host CPU architecture.
type Arch string

// Known host architectures.
const (
	X86_64 Arch = "x86_64"
	ARM64  Arch = "arm64"
)

func (a Arch) String() string {
	return string(a)
}

// NormalizeArch maps the various names used for an architecture by uname,
// GOARCH and friends to an [Arch]. Unknown names are returned lower cased
// as they are.
func NormalizeArch(name string) Arch {
	normalized := strings.ToLower(strings.TrimSpace(name))

	switch normalized {
	case "x86_64", "x86-64", "amd64":
		return X86_64
	case "arm64", "aarch64":
		return ARM64
	default:
		return Arch(normalized)
	}
}
