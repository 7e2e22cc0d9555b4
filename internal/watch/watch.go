// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package watch waits for changes in source directories.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/howeyc/fsnotify"
)

// CloseTimeout is how long [Watcher.Close] waits for pending events to be
// flushed.
const CloseTimeout = time.Second

// Watcher reports changes below a set of directories.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
}

// New creates a [Watcher] for the given directories and all their
// subdirectories. Hidden directories are skipped.
func New(dirs []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	for _, dir := range dirs {
		stat, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("watch: %w", err)
		}

		if !stat.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrNotDir, dir)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new watcher: %w", err)
	}

	w := &Watcher{
		watcher:  watcher,
		debounce: debounce,
		logger:   logger,
	}

	for _, dir := range dirs {
		err := w.addTree(dir)
		if err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	return w, nil
}

// Wait blocks until a change happened and no further change followed within
// the debounce period. Changes that happened since the last call count as
// well. It returns the context's error if ctx is done first.
func (w *Watcher) Wait(ctx context.Context) error {
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err() //nolint:wrapcheck
		case <-fire:
			return nil
		case ev, ok := <-w.watcher.Event:
			if !ok {
				return ErrClosed
			}

			if ev.IsAttrib() {
				continue
			}

			w.logger.Debug("Source changed", slog.String("path", ev.Name))

			if ev.IsCreate() {
				w.addIfDir(ev.Name)
			}

			fire = time.After(w.debounce)
		case err := <-w.watcher.Error:
			if err != nil {
				w.logger.Warn("Watcher error", slog.Any("error", err))
			}
		}
	}
}

// Close stops watching. It waits up to [CloseTimeout] for pending events to
// be flushed.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	if err != nil {
		return fmt.Errorf("close watcher: %w", err)
	}

	// The event channel is closed once the backend's reader terminated. It
	// only terminates if nothing blocks on sending events.
	timeout := time.NewTimer(CloseTimeout)
	defer timeout.Stop()

	for {
		select {
		case _, ok := <-w.watcher.Event:
			if !ok {
				return nil
			}
		case <-timeout.C:
			w.logger.Debug("Timeout flushing watcher events")
			return nil
		}
	}
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}

		if !entry.IsDir() {
			return nil
		}

		if path != root && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}

		err = w.watcher.Watch(path)
		if err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}

		return nil
	})
}

func (w *Watcher) addIfDir(path string) {
	stat, err := os.Stat(path)
	if err != nil || !stat.IsDir() {
		return
	}

	err = w.addTree(path)
	if err != nil {
		w.logger.Warn("Failed to watch new directory",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}
}
