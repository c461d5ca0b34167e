// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as the file format.
//
// Configuration is loaded from ~/.config/bellows/config.toml (or XDG equivalent on Linux,
// ~/Library/Application Support/bellows/config.toml on macOS, %APPDATA%\bellows\config.toml
// on Windows). The package provides type-safe configuration access and covers toolchain
// location, test runner parallelism and timeouts, and UI settings.
//
// Every value has a sensible default, so a missing config file is not an error.
package config
