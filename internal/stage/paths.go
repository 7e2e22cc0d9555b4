// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package stage

import (
	"fmt"
	"path/filepath"
)

// ArtifactPaths is the pair of locations a guest binary passes through.
type ArtifactPaths struct {
	// Built is where the compiler is expected to write its output.
	Built string

	// Staged is where the firmware expects the bootable application inside
	// the staged image tree, like "esp/efi/boot/bootx64.efi".
	Staged string
}

// Validate checks that both paths are set and differ.
func (p ArtifactPaths) Validate() error {
	if p.Built == "" || p.Staged == "" {
		return ErrEmptyPath
	}

	if filepath.Clean(p.Built) == filepath.Clean(p.Staged) {
		return fmt.Errorf("%w: %s", ErrSamePath, p.Built)
	}

	return nil
}

func (p ArtifactPaths) all() []string {
	return []string{p.Built, p.Staged}
}
