// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package stage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aibor/efirun/internal/process"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// Runner runs a single [process.Command] to completion.
type Runner interface {
	Run(ctx context.Context, command process.Command) error
}

// Stager builds and stages guest artifacts.
type Stager struct {
	Runner Runner
	Logger *slog.Logger
}

// Stage removes stale artifacts, runs the build command, and copies the
// build result into the staged image tree.
//
// If it returns without error, both paths of [ArtifactPaths] exist. There is
// no cleanup on failure. The next call reconciles any state left behind.
func (s *Stager) Stage(
	ctx context.Context,
	build process.Command,
	paths ArtifactPaths,
) error {
	err := paths.Validate()
	if err != nil {
		return err
	}

	for _, path := range paths.all() {
		err := s.removeStale(path)
		if err != nil {
			return err
		}
	}

	err = s.Runner.Run(ctx, build)
	if err != nil {
		return &BuildError{Err: err}
	}

	err = requireArtifact(paths.Built)
	if err != nil {
		return err
	}

	s.logger().Info("Staging artifact",
		slog.String("from", paths.Built),
		slog.String("to", paths.Staged),
	)

	err = copyFile(paths.Built, paths.Staged)
	if err != nil {
		return fmt.Errorf("copy artifact: %w", err)
	}

	return requireArtifact(paths.Staged)
}

func (s *Stager) removeStale(path string) error {
	_, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("stat stale artifact: %w", err)
	}

	s.logger().Info("Removing artifact prior to build",
		slog.String("path", path))

	err = os.Remove(path)
	if err != nil {
		return fmt.Errorf("remove stale artifact: %w", err)
	}

	return nil
}

func (s *Stager) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}

	return s.Logger
}

func requireArtifact(path string) error {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &MissingArtifactError{Path: path}
	} else if err != nil {
		return fmt.Errorf("stat artifact: %w", err)
	}

	return nil
}

func copyFile(src, dst string) error {
	err := os.MkdirAll(filepath.Dir(dst), dirMode)
	if err != nil {
		return fmt.Errorf("create parent dirs: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileMode)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	_, err = io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return fmt.Errorf("copy content: %w", err)
	}

	return out.Close()
}
