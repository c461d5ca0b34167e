// SPDX-License-Identifier: MPL-2.0

// Package manifest locates and reads the bellows.toml project manifest.
//
// The manifest is a small TOML file with a [package] section carrying the
// package name and version. It is read once at startup and never mutated.
// A project is found by walking from a starting directory toward the
// filesystem root, cargo-style, until a bellows.toml appears.
package manifest
