// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package stage

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPath is returned if [ArtifactPaths] has an empty path.
	ErrEmptyPath = errors.New("artifact path must not be empty")

	// ErrSamePath is returned if both [ArtifactPaths] point to the same file.
	ErrSamePath = errors.New("built and staged path must differ")
)

// BuildError is returned if the build command failed.
type BuildError struct {
	Err error
}

// Error implements the [error] interface.
func (e *BuildError) Error() string {
	return "build failed: " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*BuildError) Is(other error) bool {
	_, ok := other.(*BuildError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *BuildError) Unwrap() error {
	return e.Err
}

// MissingArtifactError is returned if a step that should have produced a
// file at Path finished without error, but the file does not exist.
type MissingArtifactError struct {
	Path string
}

// Error implements the [error] interface.
func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("expected artifact to exist: %s", e.Path)
}

// Is implements the [errors.Is] interface.
func (*MissingArtifactError) Is(other error) bool {
	_, ok := other.(*MissingArtifactError)
	return ok
}
