// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package efirun_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/aibor/efirun/internal/config"
	"github.com/aibor/efirun/internal/efirun"
	"github.com/aibor/efirun/internal/host"
	"github.com/aibor/efirun/internal/process"
	"github.com/aibor/efirun/internal/profile"
	"github.com/aibor/efirun/internal/stage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var guestBinary = []byte("0123456789")

// fakeRunner plays the compiler by writing guestBinary to the build output
// path and records every other command as launch.
type fakeRunner struct {
	t        *testing.T
	built    string
	compile  func() error
	launch   func() error
	commands []process.Command
	contexts []context.Context
}

func (r *fakeRunner) Run(ctx context.Context, command process.Command) error {
	r.commands = append(r.commands, command)
	r.contexts = append(r.contexts, ctx)

	if command.Args[0] == "cargo" {
		if r.compile != nil {
			return r.compile()
		}

		require.NoError(r.t, os.MkdirAll(filepath.Dir(r.built), 0o755))

		return os.WriteFile(r.built, guestBinary, 0o600)
	}

	if r.launch != nil {
		return r.launch()
	}

	return nil
}

func (r *fakeRunner) launches() []process.Command {
	var launches []process.Command

	for _, command := range r.commands {
		if command.Args[0] != "cargo" {
			launches = append(launches, command)
		}
	}

	return launches
}

func newOrchestrator(t *testing.T, facts host.Facts) (*efirun.Orchestrator, *fakeRunner) {
	t.Helper()

	cfg := config.Default(t.TempDir())

	runner := &fakeRunner{
		t:     t,
		built: cfg.ArtifactPaths(cfg.Build.Target).Built,
	}

	return &efirun.Orchestrator{
		Config: cfg,
		Runner: runner,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		DetectHost: func() (host.Facts, error) {
			return facts, nil
		},
	}, runner
}

func TestCompileAndRun_LinuxKVM(t *testing.T) {
	orchestrator, runner := newOrchestrator(t,
		host.Facts{Arch: host.X86_64, OS: host.Linux})

	err := orchestrator.CompileAndRun(t.Context(), orchestrator.Config.Build.Target)
	require.NoError(t, err)

	paths := orchestrator.Config.ArtifactPaths(orchestrator.Config.Build.Target)

	staged, err := os.ReadFile(paths.Staged)
	require.NoError(t, err)
	assert.Equal(t, guestBinary, staged)

	require.Len(t, runner.commands, 2)

	compile := runner.commands[0]
	assert.Equal(t, []string{
		"cargo", "build",
		"--features", "run_in_uefi",
		"--target", "x86_64-unknown-uefi",
	}, compile.Args)
	assert.Equal(t, orchestrator.Config.Root, compile.Dir)

	launch := runner.commands[1]
	assert.Equal(t, "qemu-system-x86_64", launch.Args[0])
	assert.Contains(t, launch.Args, "-enable-kvm")
	assert.NotContains(t, launch.Args, "arch")
	assert.Contains(t, launch.Args, "format=raw,file=fat:rw:esp")
	assert.Contains(t, launch.Args,
		filepath.Join(orchestrator.Config.Root, "ubuntu_OVMF_with_mouse.fd"))
	assert.Equal(t, orchestrator.Config.Root, launch.Dir)
	assert.Nil(t, launch.Env)
}

func TestCompileAndRun_DarwinARM64(t *testing.T) {
	orchestrator, runner := newOrchestrator(t,
		host.Facts{Arch: host.ARM64, OS: host.Darwin})

	err := orchestrator.CompileAndRun(t.Context(), orchestrator.Config.Build.Target)
	require.NoError(t, err)

	launches := runner.launches()
	require.Len(t, launches, 1)

	assert.Equal(t,
		[]string{"arch", "-arm64", "qemu-system-x86_64"},
		launches[0].Args[:3],
	)
	assert.NotContains(t, launches[0].Args, "-enable-kvm")
}

func TestCompileAndRun_ForcedProfile(t *testing.T) {
	orchestrator, runner := newOrchestrator(t, host.Facts{})
	orchestrator.DetectHost = func() (host.Facts, error) {
		t.Fatal("host must not be detected")
		return host.Facts{}, nil
	}
	orchestrator.Config.Launch.Profile = "darwin-arm64"
	orchestrator.Config.Launch.Network = true
	orchestrator.Config.Launch.Privileged = true
	orchestrator.Config.Launch.Env = map[string]string{"QEMU_AUDIO_DRV": "none"}

	err := orchestrator.CompileAndRun(t.Context(), orchestrator.Config.Build.Target)
	require.NoError(t, err)

	launches := runner.launches()
	require.Len(t, launches, 1)

	assert.Equal(t,
		[]string{"arch", "-arm64", "sudo", "qemu-system-x86_64"},
		launches[0].Args[:4],
	)
	assert.Contains(t, launches[0].Args, "vmnet-bridged,id=net0,ifname=en0")
	assert.Equal(t, map[string]string{"QEMU_AUDIO_DRV": "none"}, launches[0].Env)
}

func TestCompileAndRun_Failures(t *testing.T) {
	compilerErr := &process.Error{
		Args:     []string{"cargo"},
		ExitCode: 101,
		Err:      process.ErrNonZeroExitCode,
	}
	emulatorErr := &process.Error{
		Args:     []string{"qemu-system-x86_64"},
		ExitCode: 1,
		Err:      process.ErrNonZeroExitCode,
	}

	tests := []struct {
		name             string
		facts            host.Facts
		modify           func(*efirun.Orchestrator, *fakeRunner)
		expectedErr      error
		expectedLaunches int
	}{
		{
			name:        "build failure",
			facts:       host.Facts{Arch: host.X86_64, OS: host.Linux},
			modify:      func(_ *efirun.Orchestrator, r *fakeRunner) { r.compile = func() error { return compilerErr } },
			expectedErr: &stage.BuildError{},
		},
		{
			name:        "compiler produces nothing",
			facts:       host.Facts{Arch: host.X86_64, OS: host.Linux},
			modify:      func(_ *efirun.Orchestrator, r *fakeRunner) { r.compile = func() error { return nil } },
			expectedErr: &stage.MissingArtifactError{},
		},
		{
			name:        "unsupported platform",
			facts:       host.Facts{Arch: host.ARM64, OS: host.Linux},
			expectedErr: &profile.UnsupportedPlatformError{},
		},
		{
			name:  "unknown forced profile",
			facts: host.Facts{Arch: host.X86_64, OS: host.Linux},
			modify: func(o *efirun.Orchestrator, _ *fakeRunner) {
				o.Config.Launch.Profile = "plan9-mips"
			},
			expectedErr: profile.ErrUnknownProfile,
		},
		{
			name:  "invalid config",
			facts: host.Facts{Arch: host.X86_64, OS: host.Linux},
			modify: func(o *efirun.Orchestrator, _ *fakeRunner) {
				o.Config.Build.Artifact = ""
			},
			expectedErr: config.ErrMissingValue,
		},
		{
			name:             "emulator failure",
			facts:            host.Facts{Arch: host.X86_64, OS: host.Linux},
			modify:           func(_ *efirun.Orchestrator, r *fakeRunner) { r.launch = func() error { return emulatorErr } },
			expectedErr:      &process.Error{},
			expectedLaunches: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orchestrator, runner := newOrchestrator(t, tt.facts)
			if tt.modify != nil {
				tt.modify(orchestrator, runner)
			}

			err := orchestrator.CompileAndRun(t.Context(), orchestrator.Config.Build.Target)
			require.ErrorIs(t, err, tt.expectedErr)

			assert.Len(t, runner.launches(), tt.expectedLaunches)
		})
	}
}

func TestStage(t *testing.T) {
	orchestrator, runner := newOrchestrator(t, host.Facts{})

	target := orchestrator.Config.Build.Target
	target.Mode = config.ModeRelease
	runner.built = orchestrator.Config.ArtifactPaths(target).Built

	err := orchestrator.Stage(t.Context(), target)
	require.NoError(t, err)

	require.Len(t, runner.commands, 1)
	assert.Contains(t, runner.commands[0].Args, "--release")
	assert.FileExists(t, orchestrator.Config.ArtifactPaths(target).Staged)
}

func TestRunHosted(t *testing.T) {
	orchestrator, runner := newOrchestrator(t, host.Facts{})
	runner.compile = func() error { return nil }

	err := orchestrator.RunHosted(t.Context())
	require.NoError(t, err)

	require.Len(t, runner.commands, 1)
	assert.Equal(t,
		[]string{"cargo", "run", "--features", "run_hosted"},
		runner.commands[0].Args,
	)
	assert.Equal(t, orchestrator.Config.Root, runner.commands[0].Dir)
}

type contextKey struct{}

func TestCompileAndRun_Context(t *testing.T) {
	orchestrator, runner := newOrchestrator(t,
		host.Facts{Arch: host.X86_64, OS: host.Linux})

	ctx := context.WithValue(t.Context(), contextKey{}, "run")

	err := orchestrator.CompileAndRun(ctx, orchestrator.Config.Build.Target)
	require.NoError(t, err)

	require.Len(t, runner.contexts, 2, "compile and launch")

	for _, actual := range runner.contexts {
		assert.Equal(t, "run", actual.Value(contextKey{}),
			"commands must be canceled with the caller's context")
	}
}

func TestCompileAndRun_Canceled(t *testing.T) {
	orchestrator, runner := newOrchestrator(t,
		host.Facts{Arch: host.X86_64, OS: host.Linux})

	runner.launch = func() error {
		return &process.Error{
			Args:     []string{"qemu-system-x86_64"},
			ExitCode: -1,
			Err:      context.Canceled,
		}
	}

	err := orchestrator.CompileAndRun(t.Context(), orchestrator.Config.Build.Target)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, &process.Error{})
}

type waiterFunc func(ctx context.Context) error

func (f waiterFunc) Wait(ctx context.Context) error {
	return f(ctx)
}

func TestWatch(t *testing.T) {
	orchestrator, runner := newOrchestrator(t,
		host.Facts{Arch: host.X86_64, OS: host.Linux})

	cycles := 0
	runner.launch = func() error {
		// The second launch fails, which must not end the loop.
		if cycles == 1 {
			return assert.AnError
		}

		return nil
	}

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	waiter := waiterFunc(func(ctx context.Context) error {
		cycles++
		if cycles == 3 {
			cancel()
		}

		return ctx.Err()
	})

	err := orchestrator.Watch(ctx, orchestrator.Config.Build.Target, waiter)
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 3, cycles)
	assert.Len(t, runner.launches(), 3)
}
