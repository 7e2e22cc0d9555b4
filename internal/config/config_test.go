// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config_test

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/aibor/efirun/internal/config"
	"github.com/aibor/efirun/internal/stage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		".efirun.yaml": &fstest.MapFile{
			Data: []byte(`
build:
  target:
    features: [run_in_uefi, verbose]
    mode: release
  env:
    RUSTFLAGS: -Ctarget-cpu=native
launch:
  memory: 2G
  profile: linux-x86_64
  network: true
watch:
  paths: [src, assets]
  debounce: 250ms
`),
		},
		"broken.yaml": &fstest.MapFile{
			Data: []byte("build: [\n"),
		},
	}

	t.Run("file applied on top of defaults", func(t *testing.T) {
		cfg, err := config.Load("/src", fsys, config.DefaultFile)
		require.NoError(t, err)

		expected := config.Default("/src")
		expected.Build.Target.Features = []string{"run_in_uefi", "verbose"}
		expected.Build.Target.Mode = config.ModeRelease
		expected.Build.Env = map[string]string{
			"RUSTFLAGS": "-Ctarget-cpu=native",
		}
		expected.Launch.Memory = "2G"
		expected.Launch.Profile = "linux-x86_64"
		expected.Launch.Network = true
		expected.Watch.Paths = []string{"src", "assets"}
		expected.Watch.Debounce = 250 * time.Millisecond

		assert.Equal(t, expected, cfg)
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing file", func(t *testing.T) {
		cfg, err := config.Load("/src", fsys, "missing.yaml")
		require.NoError(t, err)
		assert.Equal(t, config.Default("/src"), cfg)
	})

	t.Run("broken file", func(t *testing.T) {
		_, err := config.Load("/src", fsys, "broken.yaml")
		require.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*config.Config)
		expectedErr error
	}{
		{
			name:   "defaults",
			modify: func(*config.Config) {},
		},
		{
			name:        "no root",
			modify:      func(c *config.Config) { c.Root = "" },
			expectedErr: config.ErrEmptyRoot,
		},
		{
			name:        "no compiler",
			modify:      func(c *config.Config) { c.Build.Compiler = "" },
			expectedErr: config.ErrMissingValue,
		},
		{
			name:        "no boot path",
			modify:      func(c *config.Config) { c.Stage.BootPath = "" },
			expectedErr: config.ErrMissingValue,
		},
		{
			name:        "no triple",
			modify:      func(c *config.Config) { c.Build.Target.Triple = "" },
			expectedErr: config.ErrMissingValue,
		},
		{
			name:        "invalid mode",
			modify:      func(c *config.Config) { c.Build.Target.Mode = "fast" },
			expectedErr: config.ErrInvalidMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default("/src")
			tt.modify(&cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestConfig_Paths(t *testing.T) {
	cfg := config.Default("/src")

	assert.Equal(t, "/src/esp", cfg.Path("esp"))
	assert.Equal(t, "/opt/OVMF.fd", cfg.Path("/opt/OVMF.fd"))

	assert.Equal(t, "esp", cfg.RootRelative("esp"))
	assert.Equal(t, "esp", cfg.RootRelative("/src/esp"))
	assert.Equal(t, "/tmp/esp", cfg.RootRelative("/tmp/esp"))
	assert.Equal(t, "/esp", cfg.RootRelative("../esp"))

	assert.Equal(t, stage.ArtifactPaths{
		Built:  "/src/target/x86_64-unknown-uefi/debug/uefirc.efi",
		Staged: "/src/esp/efi/boot/bootx64.efi",
	}, cfg.ArtifactPaths(cfg.Build.Target))
}

func TestBuildTarget(t *testing.T) {
	tests := []struct {
		name         string
		target       config.BuildTarget
		expectedArgs []string
		expectedPath string
	}{
		{
			name: "debug",
			target: config.BuildTarget{
				Triple:   "x86_64-unknown-uefi",
				Features: []string{"run_in_uefi"},
				Mode:     config.ModeDebug,
			},
			expectedArgs: []string{
				"build",
				"--features", "run_in_uefi",
				"--target", "x86_64-unknown-uefi",
			},
			expectedPath: "/src/target/x86_64-unknown-uefi/debug/app.efi",
		},
		{
			name: "release without features",
			target: config.BuildTarget{
				Triple: "aarch64-unknown-uefi",
				Mode:   config.ModeRelease,
			},
			expectedArgs: []string{
				"build",
				"--target", "aarch64-unknown-uefi",
				"--release",
			},
			expectedPath: "/src/target/aarch64-unknown-uefi/release/app.efi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.target.Validate())
			assert.Equal(t, tt.expectedArgs, tt.target.BuildArgs())
			assert.Equal(t, tt.expectedPath, tt.target.OutputPath("/src", "app.efi"))
		})
	}
}
