// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package profile selects the QEMU launch configuration for a host.
//
// Profiles form a closed set keyed by [host.Facts]. Each one yields a
// complete, independent command line. Profiles are never merged, and a host
// without a matching profile is an error rather than a degraded launch.
package profile
