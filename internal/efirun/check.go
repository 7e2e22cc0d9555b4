// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package efirun

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/aibor/efirun/internal/host"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotRegularFile is returned if a path exists but is not a regular
	// file.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrKVMUnavailable is returned if the KVM device cannot be opened.
	ErrKVMUnavailable = errors.New("kvm device not accessible")
)

// CheckResult is the outcome of a single host check. Err is nil if the check
// passed.
type CheckResult struct {
	Name string
	Err  error
}

type check struct {
	name string
	fn   func() error
}

// Check inspects the host for everything a run needs without changing
// anything. The checks run concurrently and all of them run, even if some
// fail. The returned error is only set if the checks could not be run at
// all.
func (o *Orchestrator) Check(ctx context.Context) ([]CheckResult, error) {
	launchProfile, err := o.Profile()
	if err != nil {
		return nil, err
	}

	checks := []check{
		{"compiler", lookPath(o.Config.Build.Compiler)},
		{"emulator", lookPath(launchProfile.Spec.Executable)},
		{"firmware", regularFile(launchProfile.Spec.Firmware)},
	}

	for _, wrapper := range [][]string{
		launchProfile.ArchWrapper,
		launchProfile.PrivilegeWrapper,
	} {
		if len(wrapper) > 0 {
			checks = append(checks, check{"wrapper " + wrapper[0], lookPath(wrapper[0])})
		}
	}

	if launchProfile.Spec.KVM {
		checks = append(checks, check{"kvm", kvm})
	}

	results := make([]CheckResult, len(checks))

	group, ctx := errgroup.WithContext(ctx)

	for idx, c := range checks {
		group.Go(func() error {
			err := ctx.Err()
			if err != nil {
				return err //nolint:wrapcheck
			}

			results[idx] = CheckResult{Name: c.name, Err: c.fn()}

			return nil
		})
	}

	err = group.Wait()
	if err != nil {
		return nil, fmt.Errorf("check: %w", err)
	}

	return results, nil
}

func lookPath(name string) func() error {
	return func() error {
		_, err := exec.LookPath(name)
		return err //nolint:wrapcheck
	}
}

func regularFile(path string) func() error {
	return func() error {
		stat, err := os.Stat(path)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if !stat.Mode().IsRegular() {
			return fmt.Errorf("%w: %s", ErrNotRegularFile, path)
		}

		return nil
	}
}

func kvm() error {
	if !host.KVMAvailable() {
		return fmt.Errorf("%w: %s", ErrKVMUnavailable, host.KVMDevice)
	}

	return nil
}
