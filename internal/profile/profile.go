// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package profile

import (
	"fmt"
	"slices"

	"github.com/aibor/efirun/internal/qemu"
)

// LaunchProfile is a complete emulator invocation for one host class.
type LaunchProfile struct {
	// Name of the profile, like "darwin-arm64".
	Name string

	// ArchWrapper pins the architecture the emulator binary is run as. Only
	// set on hosts that could otherwise run a translated emulator.
	ArchWrapper []string

	// PrivilegeWrapper runs the emulator with elevated privileges.
	PrivilegeWrapper []string

	// Env is the environment overlay for the emulator process. If empty,
	// the emulator inherits the complete environment of the caller.
	Env map[string]string

	// Spec is the emulator command itself.
	Spec qemu.CommandSpec
}

// Command returns the complete command line: wrappers first, then the
// emulator executable and its arguments.
func (p *LaunchProfile) Command() ([]string, error) {
	args, err := p.Spec.Args()
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", p.Name, err)
	}

	return slices.Concat(
		p.ArchWrapper,
		p.PrivilegeWrapper,
		[]string{p.Spec.Executable},
		args,
	), nil
}
