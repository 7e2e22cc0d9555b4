// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package host_test

import (
	"runtime"
	"testing"

	"github.com/aibor/efirun/internal/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeArch(t *testing.T) {
	tests := []struct {
		input    string
		expected host.Arch
	}{
		{input: "x86_64", expected: host.X86_64},
		{input: "amd64", expected: host.X86_64},
		{input: " X86-64 ", expected: host.X86_64},
		{input: "arm64", expected: host.ARM64},
		{input: "aarch64", expected: host.ARM64},
		{input: "riscv64", expected: host.Arch("riscv64")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, host.NormalizeArch(tt.input))
		})
	}
}

func TestNormalizeOS(t *testing.T) {
	tests := []struct {
		input    string
		expected host.OS
	}{
		{input: "darwin", expected: host.Darwin},
		{input: "macOS", expected: host.Darwin},
		{input: "Linux", expected: host.Linux},
		{input: "windows", expected: host.OS("windows")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, host.NormalizeOS(tt.input))
		})
	}
}

func TestFactsString(t *testing.T) {
	facts := host.Facts{Arch: host.ARM64, OS: host.Darwin}
	assert.Equal(t, "darwin-arm64", facts.String())
}

func TestDetect(t *testing.T) {
	facts, err := host.Detect()
	require.NoError(t, err)

	assert.Equal(t, host.NormalizeOS(runtime.GOOS), facts.OS)
	assert.NotEmpty(t, facts.Arch)

	// Translation only ever turns the reported arch into arm64.
	nativeArch := runtime.GOARCH == "amd64" || runtime.GOARCH == "arm64"
	if runtime.GOOS != "darwin" && nativeArch {
		assert.Equal(t, host.NormalizeArch(runtime.GOARCH), facts.Arch)
	}
}
