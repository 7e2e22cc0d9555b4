// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aibor/efirun/internal/config"
	"github.com/aibor/efirun/internal/efirun"
	"github.com/aibor/efirun/internal/process"
	"github.com/aibor/efirun/internal/profile"
	"github.com/aibor/efirun/internal/watch"
	"github.com/spf13/cobra"
)

const name = "efirun"

type options struct {
	root       string
	configFile string
	logLevel   string
	debug      bool
	profile    string
	network    bool
	privileged bool
	release    bool
}

// app is what every sub command works with. It is created once per
// invocation after flags are parsed.
type app struct {
	orchestrator *efirun.Orchestrator
	target       config.BuildTarget
	logger       *slog.Logger
}

func newRootCommand(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   name,
		Short: "Build a UEFI application and boot it in QEMU",
		Long: `efirun compiles a UEFI application, stages it into a directory that QEMU
mounts as FAT drive, and boots it with the launch profile matching the host.

Without a sub command, it runs the complete cycle like "efirun run".

Defaults may be overridden in the file .efirun.yaml in the project root.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			parsed, err := parseLogLevel(opts.logLevel)
			if err != nil {
				return err
			}

			if opts.debug {
				parsed = slog.LevelDebug
			}

			level.Set(parsed)

			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.root, "root", ".", "project root directory")
	flags.StringVar(&opts.configFile, "config", config.DefaultFile,
		"config file, relative to the project root")
	flags.StringVar(&opts.logLevel, "log-level", "info",
		"log verbosity (debug, info, warning, error)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug output")
	flags.StringVar(&opts.profile, "profile", "",
		"force launch profile instead of detecting the host ("+
			strings.Join(profile.Names(), ", ")+")")
	flags.BoolVar(&opts.network, "network", false,
		"attach a bridged NIC, if the profile supports it")
	flags.BoolVar(&opts.privileged, "privileged", false,
		"run the emulator with sudo, if the profile supports it")
	flags.BoolVar(&opts.release, "release", false, "build in release mode")

	runCompileAndRun := func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd, opts, logger)
		if err != nil {
			return err
		}

		return a.orchestrator.CompileAndRun(cmd.Context(), a.target)
	}

	root.RunE = runCompileAndRun

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Compile, stage and boot the application",
			Args:  cobra.NoArgs,
			RunE:  runCompileAndRun,
		},
		newStageCommand(opts, logger),
		newProfileCommand(opts, logger),
		newCheckCommand(opts, logger),
		newHostedCommand(opts, logger),
		newWatchCommand(opts, logger),
		newVersionCommand(),
	)

	return root
}

func newStageCommand(opts *options, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "stage",
		Short: "Compile and stage the application without booting it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts, logger)
			if err != nil {
				return err
			}

			return a.orchestrator.Stage(cmd.Context(), a.target)
		},
	}
}

func newProfileCommand(opts *options, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Print the launch command for this host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts, logger)
			if err != nil {
				return err
			}

			launchProfile, err := a.orchestrator.Profile()
			if err != nil {
				return err
			}

			command, err := launchProfile.Command()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", launchProfile.Name)
			fmt.Fprintln(out, process.Command{Args: command}.String())

			return nil
		},
	}
}

func newCheckCommand(opts *options, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the host for everything a run needs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts, logger)
			if err != nil {
				return err
			}

			results, err := a.orchestrator.Check(cmd.Context())
			if err != nil {
				return err
			}

			failed := false
			out := cmd.OutOrStdout()

			for _, result := range results {
				if result.Err != nil {
					failed = true

					fmt.Fprintf(out, "FAIL %s: %v\n", result.Name, result.Err)

					continue
				}

				fmt.Fprintf(out, "ok   %s\n", result.Name)
			}

			if failed {
				return ErrChecksFailed
			}

			return nil
		},
	}
}

func newHostedCommand(opts *options, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "hosted",
		Short: "Run the application natively on the host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts, logger)
			if err != nil {
				return err
			}

			return a.orchestrator.RunHosted(cmd.Context())
		},
	}
}

func newWatchCommand(opts *options, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run again whenever the sources change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts, logger)
			if err != nil {
				return err
			}

			cfg := a.orchestrator.Config

			dirs := make([]string, 0, len(cfg.Watch.Paths))
			for _, path := range cfg.Watch.Paths {
				dirs = append(dirs, cfg.Path(path))
			}

			watcher, err := watch.New(dirs, cfg.Watch.Debounce,
				a.logger.With(slog.String("component", "watch")))
			if err != nil {
				return err
			}
			defer watcher.Close()

			return a.orchestrator.Watch(cmd.Context(), a.target, watcher)
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			buildInfo, err := getBuildInfo()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\n", buildInfo.Main.Version)

			return nil
		},
	}
}

func newApp(cmd *cobra.Command, opts *options, logger *slog.Logger) (*app, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	target := cfg.Build.Target
	if opts.release {
		target.Mode = config.ModeRelease
	}

	logger.Debug("Loaded config",
		slog.String("root", cfg.Root),
		slog.String("target", target.Triple),
		slog.String("mode", target.Mode),
	)

	return &app{
		orchestrator: &efirun.Orchestrator{
			Config: cfg,
			Runner: &process.Runner{
				Stdin:  cmd.InOrStdin(),
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
				Logger: logger,
			},
			Logger: logger,
		},
		target: target,
		logger: logger,
	}, nil
}

func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	root, err := AbsoluteFilePath(opts.root)
	if err != nil {
		return config.Config{}, fmt.Errorf("project root: %w", err)
	}

	dir, file := root, opts.configFile
	if filepath.IsAbs(file) {
		dir, file = filepath.Split(file)
	}

	cfg, err := config.Load(root, os.DirFS(dir), filepath.ToSlash(file))
	if err != nil {
		return config.Config{}, err
	}

	// Explicitly given flags win over the config file.
	flags := cmd.Flags()

	if opts.profile != "" {
		cfg.Launch.Profile = opts.profile
	}

	if flags.Changed("network") {
		cfg.Launch.Network = opts.network
	}

	if flags.Changed("privileged") {
		cfg.Launch.Privileged = opts.privileged
	}

	err = cfg.Validate()
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

