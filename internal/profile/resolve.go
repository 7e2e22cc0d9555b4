// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package profile

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/aibor/efirun/internal/host"
	"github.com/aibor/efirun/internal/qemu"
)

const (
	networkBackend = "vmnet-bridged"
	networkDevice  = "virtio-net-pci"
)

// Options are the run specific values every profile is parameterized with.
type Options struct {
	Emulator  string
	Firmware  string
	Memory    string
	Display   string
	DebugLog  string
	DebugPort string

	// StagedRoot is the staged image tree mounted as FAT drive.
	StagedRoot string

	// Network attaches a NIC bridged to NetworkInterface, if the profile
	// supports it.
	Network          bool
	NetworkInterface string

	// Privileged runs the emulator with sudo, if the profile supports it.
	Privileged bool

	// Devices are added on top of the profile's own devices.
	Devices []string

	Env map[string]string

	// Logger receives notes about ignored options. Defaults to
	// [slog.Default].
	Logger *slog.Logger
}

type variant struct {
	facts       host.Facts
	archWrapper []string
	kvm         bool
	pointer     bool
	// Optional features the profile may be launched with.
	network    bool
	privileged bool
}

func (v variant) name() string {
	return v.facts.String()
}

// variants is the closed set of supported hosts.
var variants = []variant{
	{
		facts: host.Facts{Arch: host.ARM64, OS: host.Darwin},
		// Without the pin, an x86_64 emulator binary would happily run
		// itself translated by Rosetta, which is way slower.
		archWrapper: []string{"arch", "-arm64"},
		pointer:     true,
		network:     true,
		privileged:  true,
	},
	{
		facts:   host.Facts{Arch: host.X86_64, OS: host.Darwin},
		pointer: true,
	},
	{
		facts: host.Facts{Arch: host.X86_64, OS: host.Linux},
		kvm:   true,
	},
}

// Names returns the names of all known profiles.
func Names() []string {
	names := make([]string, 0, len(variants))
	for _, v := range variants {
		names = append(names, v.name())
	}

	return names
}

// Lookup returns the [host.Facts] a profile with the given name is selected
// by. Use it to force a profile instead of detecting the host.
func Lookup(name string) (host.Facts, error) {
	for _, v := range variants {
		if v.name() == name {
			return v.facts, nil
		}
	}

	return host.Facts{}, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
}

// Resolve returns the [LaunchProfile] for the given host.
//
// It returns an [*UnsupportedPlatformError] if the host matches no profile.
func Resolve(facts host.Facts, opts Options) (*LaunchProfile, error) {
	v, found := find(facts)
	if !found {
		return nil, &UnsupportedPlatformError{Arch: facts.Arch, OS: facts.OS}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	profile := &LaunchProfile{
		Name:        v.name(),
		ArchWrapper: slices.Clone(v.archWrapper),
		Env:         maps.Clone(opts.Env),
		Spec: qemu.CommandSpec{
			Executable: opts.Emulator,
			Firmware:   opts.Firmware,
			Memory:     opts.Memory,
			Display:    opts.Display,
			KVM:        v.kvm,
			DebugLog:   opts.DebugLog,
			DebugPort:  opts.DebugPort,
			Drive:      opts.StagedRoot,
			Pointer:    v.pointer,
		},
	}

	for _, device := range opts.Devices {
		profile.Spec.ExtraArgs = append(profile.Spec.ExtraArgs,
			qemu.RepeatableArg("device", device))
	}

	switch {
	case !opts.Network:
	case v.network:
		profile.Spec.Network = &qemu.Network{
			Backend:   networkBackend,
			Interface: opts.NetworkInterface,
			Device:    networkDevice,
		}
	default:
		logger.Debug("Profile does not support networking, ignoring",
			slog.String("profile", profile.Name))
	}

	switch {
	case !opts.Privileged:
	case v.privileged:
		profile.PrivilegeWrapper = []string{"sudo"}
	default:
		logger.Debug("Profile does not support privileged launch, ignoring",
			slog.String("profile", profile.Name))
	}

	return profile, nil
}

func find(facts host.Facts) (variant, bool) {
	for _, v := range variants {
		if v.facts == facts {
			return v, true
		}
	}

	return variant{}, false
}
