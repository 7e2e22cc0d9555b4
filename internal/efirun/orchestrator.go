// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package efirun

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aibor/efirun/internal/config"
	"github.com/aibor/efirun/internal/host"
	"github.com/aibor/efirun/internal/process"
	"github.com/aibor/efirun/internal/profile"
	"github.com/aibor/efirun/internal/stage"
	"github.com/google/uuid"
)

// Runner runs a single [process.Command] to completion.
type Runner interface {
	Run(ctx context.Context, command process.Command) error
}

// Waiter blocks until the next rebuild is due.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Orchestrator runs the phases of the development loop.
type Orchestrator struct {
	Config config.Config
	Runner Runner
	Logger *slog.Logger

	// DetectHost returns the facts of the host the emulator runs on. If nil,
	// [host.Detect] is used. It is not called if the config forces a
	// profile.
	DetectHost func() (host.Facts, error)
}

// CompileAndRun builds the target, stages it and boots it in the emulator.
//
// The emulator is never launched if staging fails. An emulator exiting with
// a non-zero exit code, including a shutdown by the operator, is returned as
// [*process.Error].
func (o *Orchestrator) CompileAndRun(ctx context.Context, target config.BuildTarget) error {
	logger := o.logger().With(slog.String("run", uuid.NewString()))

	err := o.stage(ctx, logger, target)
	if err != nil {
		return err
	}

	launchProfile, err := o.resolve(logger)
	if err != nil {
		return err
	}

	command, err := launchProfile.Command()
	if err != nil {
		return fmt.Errorf("launch command: %w", err)
	}

	logger.Info("Launching guest", slog.String("profile", launchProfile.Name))

	err = o.Runner.Run(ctx, process.Command{
		Args: command,
		Dir:  o.Config.Root,
		Env:  launchProfile.Env,
	})
	if err != nil {
		return fmt.Errorf("launch: %w", err)
	}

	return nil
}

// Stage builds the target and stages it without launching the emulator.
func (o *Orchestrator) Stage(ctx context.Context, target config.BuildTarget) error {
	logger := o.logger().With(slog.String("run", uuid.NewString()))

	return o.stage(ctx, logger, target)
}

// Profile returns the launch profile for the host without running anything.
func (o *Orchestrator) Profile() (*profile.LaunchProfile, error) {
	return o.resolve(o.logger())
}

// RunHosted runs the application natively on the host instead of in a guest.
func (o *Orchestrator) RunHosted(ctx context.Context) error {
	args := []string{o.Config.Build.Compiler, "run"}
	for _, feature := range o.Config.Hosted.Features {
		args = append(args, "--features", feature)
	}

	err := o.Runner.Run(ctx, process.Command{
		Args: args,
		Dir:  o.Config.Root,
		Env:  o.Config.Build.Env,
	})
	if err != nil {
		return fmt.Errorf("hosted run: %w", err)
	}

	return nil
}

// Watch runs [Orchestrator.CompileAndRun] and waits for the next change
// in a loop. Failed runs are logged and do not end the loop. It returns once
// the waiter fails, which it does when ctx is done.
func (o *Orchestrator) Watch(
	ctx context.Context,
	target config.BuildTarget,
	waiter Waiter,
) error {
	for {
		err := o.CompileAndRun(ctx, target)
		if err != nil {
			o.logger().Error("Run failed", slog.Any("error", err))
		}

		o.logger().Info("Waiting for changes")

		err = waiter.Wait(ctx)
		if err != nil {
			return fmt.Errorf("wait for changes: %w", err)
		}
	}
}

func (o *Orchestrator) stage(
	ctx context.Context,
	logger *slog.Logger,
	target config.BuildTarget,
) error {
	err := o.Config.Validate()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	err = target.Validate()
	if err != nil {
		return fmt.Errorf("build target: %w", err)
	}

	stager := &stage.Stager{
		Runner: o.Runner,
		Logger: logger,
	}

	build := process.Command{
		Args: append([]string{o.Config.Build.Compiler}, target.BuildArgs()...),
		Dir:  o.Config.Root,
		Env:  o.Config.Build.Env,
	}

	err = stager.Stage(ctx, build, o.Config.ArtifactPaths(target))
	if err != nil {
		return fmt.Errorf("stage: %w", err)
	}

	return nil
}

func (o *Orchestrator) resolve(logger *slog.Logger) (*profile.LaunchProfile, error) {
	facts, err := o.hostFacts()
	if err != nil {
		return nil, err
	}

	logger.Debug("Resolving launch profile",
		slog.String("arch", facts.Arch.String()),
		slog.String("os", facts.OS.String()),
	)

	launch := o.Config.Launch

	launchProfile, err := profile.Resolve(facts, profile.Options{
		Emulator:         launch.Emulator,
		Firmware:         o.Config.Path(launch.Firmware),
		Memory:           launch.Memory,
		Display:          launch.Display,
		DebugLog:         launch.DebugLog,
		DebugPort:        launch.DebugPort,
		StagedRoot:       o.Config.RootRelative(o.Config.Stage.Root),
		Network:          launch.Network,
		NetworkInterface: launch.NetworkInterface,
		Privileged:       launch.Privileged,
		Devices:          launch.Devices,
		Logger:           logger,
		Env:              launch.Env,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve profile: %w", err)
	}

	return launchProfile, nil
}

func (o *Orchestrator) hostFacts() (host.Facts, error) {
	if o.Config.Launch.Profile != "" {
		facts, err := profile.Lookup(o.Config.Launch.Profile)
		if err != nil {
			return host.Facts{}, fmt.Errorf("forced profile: %w", err)
		}

		return facts, nil
	}

	detect := o.DetectHost
	if detect == nil {
		detect = host.Detect
	}

	facts, err := detect()
	if err != nil {
		return host.Facts{}, fmt.Errorf("host facts: %w", err)
	}

	return facts, nil
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}

	return o.Logger
}
