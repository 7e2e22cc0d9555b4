// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

const (
	// DefaultDebugPort is the I/O port OVMF writes its debug output to.
	DefaultDebugPort = "0x402"

	networkID = "net0"
)

// Network describes a virtual NIC attached to the guest.
type Network struct {
	// Backend is the QEMU netdev backend, like "vmnet-bridged".
	Backend string

	// Interface is the host interface to bridge to, if the backend needs one.
	Interface string

	// Device is the guest NIC model, like "virtio-net-pci".
	Device string
}

// CommandSpec defines the parameters of a QEMU command line that boots a
// UEFI application.
type CommandSpec struct {
	// Path to the qemu-system binary.
	Executable string

	// Path to the UEFI firmware image. It must be an OVMF build with USB
	// mouse support if Pointer is set.
	Firmware string

	// Memory size in QEMU notation, like "4G".
	Memory string

	// VGA display adapter, like "virtio".
	Display string

	// Use KVM hardware acceleration.
	KVM bool

	// File the debug console output is written to.
	DebugLog string

	// I/O port of the ISA debug console. Defaults to [DefaultDebugPort].
	DebugPort string

	// Directory mounted as raw FAT drive. It must contain the application
	// at the firmware's removable media boot path.
	Drive string

	// Attach pointer devices.
	Pointer bool

	// Optional virtual NIC.
	Network *Network

	// ExtraArgs are appended as they are. They must not collide with the
	// arguments set by the [CommandSpec] itself.
	ExtraArgs []Argument
}

// Validate checks that all mandatory fields are set.
func (s *CommandSpec) Validate() error {
	mandatory := []struct {
		name  string
		value string
	}{
		{"executable", s.Executable},
		{"firmware", s.Firmware},
		{"memory", s.Memory},
		{"display", s.Display},
		{"debug log", s.DebugLog},
		{"drive", s.Drive},
	}

	for _, field := range mandatory {
		if field.value == "" {
			return &ArgumentError{field.name + " must not be empty"}
		}
	}

	if s.Network != nil && (s.Network.Backend == "" || s.Network.Device == "") {
		return &ArgumentError{"network needs backend and device"}
	}

	return nil
}

// Arguments compiles the argument list for the QEMU command.
func (s *CommandSpec) Arguments() []Argument {
	debugPort := s.DebugPort
	if debugPort == "" {
		debugPort = DefaultDebugPort
	}

	args := []Argument{
		UniqueArg("bios", s.Firmware),
		// Monitor on the controlling terminal for interactive use.
		UniqueArg("monitor", "stdio"),
		UniqueArg("m", s.Memory),
		UniqueArg("vga", s.Display),
		UniqueArg("debugcon", "file:"+s.DebugLog),
		RepeatableArg("global", "isa-debugcon.iobase="+debugPort),
		RepeatableArg("device", "virtio-rng-pci"),
	}

	if s.Pointer {
		args = append(args,
			RepeatableArg("device", "virtio-mouse-pci"),
			UniqueArg("usb"),
			RepeatableArg("device", "usb-mouse"),
		)
	}

	if s.Network != nil {
		netdev := []string{s.Network.Backend, "id=" + networkID}
		if s.Network.Interface != "" {
			netdev = append(netdev, "ifname="+s.Network.Interface)
		}

		args = append(args,
			RepeatableArg("netdev", netdev...),
			RepeatableArg("device", s.Network.Device, "netdev="+networkID),
		)
	}

	args = append(args, DriveArg(s.Drive))

	if s.KVM {
		args = append(args, UniqueArg("enable-kvm"))
	}

	return append(args, s.ExtraArgs...)
}

// Args validates the spec and returns the flattened argument strings,
// without the executable.
func (s *CommandSpec) Args() ([]string, error) {
	err := s.Validate()
	if err != nil {
		return nil, err
	}

	return BuildArgumentStrings(s.Arguments())
}

// DriveArg returns the argument that mounts the given directory as a
// writable raw FAT drive.
func DriveArg(dir string) Argument {
	return RepeatableArg("drive", "format=raw", "file=fat:rw:"+dir)
}
