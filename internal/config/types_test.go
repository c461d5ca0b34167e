// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
	"time"
)

func TestColorScheme_Validate(t *testing.T) {
	tests := []struct {
		scheme  ColorScheme
		wantErr bool
	}{
		{ColorSchemeAuto, false},
		{ColorSchemeDark, false},
		{ColorSchemeLight, false},
		{ColorScheme("sepia"), true},
		{ColorScheme(""), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.scheme), func(t *testing.T) {
			err := tt.scheme.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColorScheme) {
					t.Errorf("Validate(%q) = %v, want ErrInvalidColorScheme", tt.scheme, err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate(%q) = %v, want nil", tt.scheme, err)
			}
		})
	}
}

func TestCompilerPath_Validate(t *testing.T) {
	if err := CompilerPath("").Validate(); err != nil {
		t.Errorf("empty path should be valid (means PATH lookup): %v", err)
	}
	if err := CompilerPath("bsc").Validate(); err != nil {
		t.Errorf("plain binary name should be valid: %v", err)
	}
	if err := CompilerPath("   ").Validate(); !errors.Is(err, ErrInvalidCompilerPath) {
		t.Errorf("whitespace-only path should fail: %v", err)
	}
}

func TestTestConfig_Validate(t *testing.T) {
	ok := TestConfig{Jobs: 4, Timeout: time.Minute}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	zero := TestConfig{}
	if err := zero.Validate(); err != nil {
		t.Errorf("zero config should be valid: %v", err)
	}

	bad := TestConfig{Jobs: -1, Timeout: -time.Second}
	err := bad.Validate()
	if !errors.Is(err, ErrInvalidTestConfig) {
		t.Fatalf("Validate() = %v, want ErrInvalidTestConfig", err)
	}

	var tcErr *InvalidTestConfigError
	if !errors.As(err, &tcErr) {
		t.Fatal("error should be an *InvalidTestConfigError")
	}
	if len(tcErr.FieldErrors) != 2 {
		t.Errorf("len(FieldErrors) = %d, want 2", len(tcErr.FieldErrors))
	}
}

func TestConfig_Validate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Toolchain: ToolchainConfig{Bsc: "  "},
		Test:      TestConfig{Jobs: -1},
		UI:        UIConfig{ColorScheme: "bogus"},
	}

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
	}

	var cfgErr *InvalidConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatal("error should be an *InvalidConfigError")
	}
	if len(cfgErr.FieldErrors) != 3 {
		t.Errorf("len(FieldErrors) = %d, want 3", len(cfgErr.FieldErrors))
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Toolchain.Bsc != "bsc" {
		t.Errorf("Toolchain.Bsc = %q, want bsc", cfg.Toolchain.Bsc)
	}
	if cfg.Test.Timeout != 5*time.Minute {
		t.Errorf("Test.Timeout = %v, want 5m", cfg.Test.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}
