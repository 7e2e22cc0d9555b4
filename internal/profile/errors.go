// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package profile

import (
	"errors"
	"fmt"

	"github.com/aibor/efirun/internal/host"
)

// ErrUnknownProfile is returned if a profile is requested by a name that is
// not known.
var ErrUnknownProfile = errors.New("unknown profile")

// UnsupportedPlatformError is returned if no profile matches the host.
type UnsupportedPlatformError struct {
	Arch host.Arch
	OS   host.OS
}

// Error implements the [error] interface.
func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: arch %q on os %q", e.Arch, e.OS)
}

// Is implements the [errors.Is] interface.
func (*UnsupportedPlatformError) Is(other error) bool {
	_, ok := other.(*UnsupportedPlatformError)
	return ok
}
