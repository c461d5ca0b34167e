// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bellows/internal/config"
)

func TestApplyConfigValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
		check   func(t *testing.T, cfg *config.Config)
	}{
		{
			name:  "toolchain bsc",
			key:   "toolchain.bsc",
			value: "/opt/bsc/bin/bsc",
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Toolchain.Bsc != "/opt/bsc/bin/bsc" {
					t.Errorf("bsc = %q", cfg.Toolchain.Bsc)
				}
			},
		},
		{
			name:  "test jobs",
			key:   "test.jobs",
			value: "8",
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Test.Jobs != 8 {
					t.Errorf("jobs = %d", cfg.Test.Jobs)
				}
			},
		},
		{
			name:    "test jobs not an integer",
			key:     "test.jobs",
			value:   "many",
			wantErr: true,
		},
		{
			name:  "test timeout",
			key:   "test.timeout",
			value: "90s",
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Test.Timeout != 90*time.Second {
					t.Errorf("timeout = %v", cfg.Test.Timeout)
				}
			},
		},
		{
			name:    "test timeout not a duration",
			key:     "test.timeout",
			value:   "soon",
			wantErr: true,
		},
		{
			name:  "ui color scheme",
			key:   "ui.color_scheme",
			value: "light",
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.UI.ColorScheme != config.ColorSchemeLight {
					t.Errorf("color_scheme = %q", cfg.UI.ColorScheme)
				}
			},
		},
		{
			name:  "ui verbose numeric true",
			key:   "ui.verbose",
			value: "1",
			check: func(t *testing.T, cfg *config.Config) {
				if !cfg.UI.Verbose {
					t.Error("verbose should be true")
				}
			},
		},
		{
			name:    "unknown key",
			key:     "toolchain.verilator",
			value:   "verilator",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.DefaultConfig()
			err := applyConfigValue(cfg, tt.key, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s=%s", tt.key, tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestSetConfigValue_PersistsToFile(t *testing.T) {
	cfgDir := t.TempDir()
	config.SetConfigDirOverride(cfgDir)
	t.Cleanup(config.Reset)

	if err := setConfigValue(context.Background(), "test.jobs", "7"); err != nil {
		t.Fatalf("set config value: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfgDir, "config.toml"))
	if err != nil {
		t.Fatalf("read config file: %v", err)
	}
	if !strings.Contains(string(data), "jobs = 7") {
		t.Errorf("config file missing saved value:\n%s", data)
	}
}

func TestSetConfigValue_RejectsInvalidValue(t *testing.T) {
	cfgDir := t.TempDir()
	config.SetConfigDirOverride(cfgDir)
	t.Cleanup(config.Reset)

	if err := setConfigValue(context.Background(), "ui.color_scheme", "neon"); err == nil {
		t.Fatal("expected validation error for invalid color scheme")
	}
	if _, err := os.Stat(filepath.Join(cfgDir, "config.toml")); !os.IsNotExist(err) {
		t.Error("invalid value must not be saved")
	}
}

func TestInitConfigFile_CreatesDefault(t *testing.T) {
	cfgDir := t.TempDir()
	config.SetConfigDirOverride(cfgDir)
	t.Cleanup(config.Reset)

	if err := initConfigFile(); err != nil {
		t.Fatalf("init config file: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfgDir, "config.toml"))
	if err != nil {
		t.Fatalf("read config file: %v", err)
	}
	if !strings.Contains(string(data), `bsc = "bsc"`) {
		t.Errorf("default config missing toolchain entry:\n%s", data)
	}

	// Re-running must be a no-op, not an error.
	if err := initConfigFile(); err != nil {
		t.Fatalf("second init: %v", err)
	}
}

func TestDefaultConfigFilePath(t *testing.T) {
	cfgDir := t.TempDir()
	config.SetConfigDirOverride(cfgDir)
	t.Cleanup(config.Reset)

	path, err := defaultConfigFilePath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(cfgDir, "config.toml") {
		t.Errorf("wrong path: %s", path)
	}
}

func TestFileExistsCheck(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	if fileExistsCheck(filepath.Join(dir, "missing.toml")) {
		t.Error("missing file reported as existing")
	}
	if fileExistsCheck(dir) {
		t.Error("directory reported as file")
	}

	path := filepath.Join(dir, "present.toml")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !fileExistsCheck(path) {
		t.Error("existing file not detected")
	}
}
