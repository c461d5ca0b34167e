// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride redirects ConfigDir away from the platform default.
// Tests point it at a t.TempDir() so they never touch the real
// ~/.config/bellows (os.UserHomeDir does not reliably follow the HOME
// environment variable on every platform).
var configDirOverride string

// Reset clears the config directory override. Call from test cleanup so the
// platform default applies again.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride makes ConfigDir return dir until Reset is called.
// Intended for tests that exercise config.toml reading and writing.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
