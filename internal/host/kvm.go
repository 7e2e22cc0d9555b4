// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package host

import "os"

// KVMDevice is the device node used for hardware assisted virtualization.
const KVMDevice = "/dev/kvm"

// KVMAvailable checks if the KVM device can be opened for writing.
func KVMAvailable() bool {
	f, err := os.OpenFile(KVMDevice, os.O_WRONLY, 0)
	if err != nil {
		return false
	}

	_ = f.Close()

	return true
}
