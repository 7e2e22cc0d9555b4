// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config provides the run configuration of efirun.
//
// A [Config] is created once at the entry point, optionally from a YAML file
// in the project root, and passed down to every component. All relative
// paths are resolved against [Config.Root].
package config
