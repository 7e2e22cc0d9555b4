// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/aibor/efirun/internal/qemu"
	"github.com/aibor/efirun/internal/stage"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the name of the optional config file in the project root.
const DefaultFile = ".efirun.yaml"

// Build configures the compiler invocation.
type Build struct {
	// Compiler is the cargo executable.
	Compiler string `yaml:"compiler"`

	// Target is what gets built for the guest.
	Target BuildTarget `yaml:"target"`

	// Artifact is the file name the compiler writes for the target.
	Artifact string `yaml:"artifact"`

	// Env is an environment overlay for the compiler.
	Env map[string]string `yaml:"env,omitempty"`
}

// Stage configures the staged image tree.
type Stage struct {
	// Root is the directory mounted as FAT drive.
	Root string `yaml:"root"`

	// BootPath is where the firmware looks for the application, relative to
	// Root.
	BootPath string `yaml:"bootPath"`
}

// Launch configures the emulator.
type Launch struct {
	Emulator  string `yaml:"emulator"`
	Firmware  string `yaml:"firmware"`
	Memory    string `yaml:"memory"`
	Display   string `yaml:"display"`
	DebugLog  string `yaml:"debugLog"`
	DebugPort string `yaml:"debugPort"`

	// Profile forces a launch profile instead of detecting the host.
	Profile string `yaml:"profile,omitempty"`

	Network          bool   `yaml:"network"`
	NetworkInterface string `yaml:"networkInterface"`
	Privileged       bool   `yaml:"privileged"`

	// Devices are additional "-device" values, like "usb-kbd".
	Devices []string `yaml:"devices,omitempty"`

	// Env is an environment overlay for the emulator.
	Env map[string]string `yaml:"env,omitempty"`
}

// Hosted configures running the application natively on the host.
type Hosted struct {
	Features []string `yaml:"features"`
}

// Watch configures the rebuild loop.
type Watch struct {
	// Paths are directories watched recursively, relative to the root.
	Paths []string `yaml:"paths"`

	// Debounce is the quiet period after the last change before a rebuild
	// starts.
	Debounce time.Duration `yaml:"debounce"`
}

// Config is the complete efirun configuration.
type Config struct {
	// Root is the project root. Every command runs in it.
	Root string `yaml:"-"`

	Build  Build  `yaml:"build"`
	Stage  Stage  `yaml:"stage"`
	Launch Launch `yaml:"launch"`
	Hosted Hosted `yaml:"hosted"`
	Watch  Watch  `yaml:"watch"`
}

// Default returns the default [Config] for the given project root.
func Default(root string) Config {
	return Config{
		Root: root,
		Build: Build{
			Compiler: "cargo",
			Target: BuildTarget{
				Triple:   "x86_64-unknown-uefi",
				Features: []string{"run_in_uefi"},
				Mode:     ModeDebug,
			},
			Artifact: "uefirc.efi",
		},
		Stage: Stage{
			Root:     "esp",
			BootPath: filepath.Join("efi", "boot", "bootx64.efi"),
		},
		Launch: Launch{
			Emulator: "qemu-system-x86_64",
			// Needs to be an OVMF build with USB mouse support.
			Firmware:         "ubuntu_OVMF_with_mouse.fd",
			Memory:           "4G",
			Display:          "virtio",
			DebugLog:         "debug.log",
			DebugPort:        qemu.DefaultDebugPort,
			NetworkInterface: "en0",
		},
		Hosted: Hosted{
			Features: []string{"run_hosted"},
		},
		Watch: Watch{
			Paths:    []string{"src"},
			Debounce: 100 * time.Millisecond,
		},
	}
}

// Load returns the [Config] for the given root with the values of the given
// file in fsys applied on top of the defaults. A missing file is not an
// error.
func Load(root string, fsys fs.FS, file string) (Config, error) {
	cfg := Default(root)

	data, err := fs.ReadFile(fsys, file)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", file, err)
	}

	return cfg, nil
}

// Validate checks the [Config] for completeness.
func (c *Config) Validate() error {
	if c.Root == "" {
		return ErrEmptyRoot
	}

	mandatory := map[string]string{
		"build.compiler": c.Build.Compiler,
		"build.artifact": c.Build.Artifact,
		"stage.root":     c.Stage.Root,
		"stage.bootPath": c.Stage.BootPath,
	}

	for name, value := range mandatory {
		if value == "" {
			return fmt.Errorf("%w: %s", ErrMissingValue, name)
		}
	}

	err := c.Build.Target.Validate()
	if err != nil {
		return fmt.Errorf("build target: %w", err)
	}

	return nil
}

// Path resolves a path relative to the project root. Absolute paths are
// returned unchanged.
func (c *Config) Path(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(c.Root, path)
}

// RootRelative returns the path relative to the project root if it is inside
// of it, or the absolute path otherwise.
func (c *Config) RootRelative(path string) string {
	abs := c.Path(path)

	rel, err := filepath.Rel(c.Root, abs)
	if err != nil || !filepath.IsLocal(rel) {
		return abs
	}

	return rel
}

// ArtifactPaths returns the build output and staged paths for the target.
func (c *Config) ArtifactPaths(target BuildTarget) stage.ArtifactPaths {
	return stage.ArtifactPaths{
		Built:  target.OutputPath(c.Root, c.Build.Artifact),
		Staged: filepath.Join(c.Path(c.Stage.Root), c.Stage.BootPath),
	}
}
