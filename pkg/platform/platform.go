// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility helpers.
//
// It centralizes runtime.GOOS string literals so callers compare against
// named constants instead of scattered magic strings.
package platform

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)
