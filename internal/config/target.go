// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"path/filepath"
)

// Build modes as used by cargo for output directory names.
const (
	ModeDebug   = "debug"
	ModeRelease = "release"
)

// BuildTarget identifies what the compiler builds.
type BuildTarget struct {
	// Triple is the target triple, like "x86_64-unknown-uefi".
	Triple string `yaml:"triple"`

	// Features are the cargo features enabled for the build.
	Features []string `yaml:"features,omitempty"`

	// Mode is either [ModeDebug] or [ModeRelease].
	Mode string `yaml:"mode"`
}

// Validate checks the [BuildTarget] for completeness.
func (t BuildTarget) Validate() error {
	if t.Triple == "" {
		return fmt.Errorf("%w: target triple", ErrMissingValue)
	}

	switch t.Mode {
	case ModeDebug, ModeRelease:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, t.Mode)
	}
}

// BuildArgs returns the compiler arguments for building the target, like
// "build --features a --target x86_64-unknown-uefi".
func (t BuildTarget) BuildArgs() []string {
	args := []string{"build"}

	for _, feature := range t.Features {
		args = append(args, "--features", feature)
	}

	args = append(args, "--target", t.Triple)

	if t.Mode == ModeRelease {
		args = append(args, "--release")
	}

	return args
}

// OutputPath returns where the compiler writes the artifact with the given
// file name for this target.
func (t BuildTarget) OutputPath(root, artifact string) string {
	return filepath.Join(root, "target", t.Triple, t.Mode, artifact)
}
