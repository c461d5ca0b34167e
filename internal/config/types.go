// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidCompilerPath is returned when a CompilerPath value is whitespace-only.
	ErrInvalidCompilerPath = errors.New("invalid compiler path")
	// ErrInvalidTestConfig is the sentinel error wrapped by InvalidTestConfigError.
	ErrInvalidTestConfig = errors.New("invalid test config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// CompilerPath represents a filesystem path or binary name of the Bluespec compiler.
	// A valid path must be non-empty and not whitespace-only.
	// The zero value ("") is valid and means "look up bsc on PATH".
	CompilerPath string

	// InvalidCompilerPathError is returned when a CompilerPath value is
	// non-empty but whitespace-only.
	InvalidCompilerPathError struct {
		Value CompilerPath
	}

	// ToolchainConfig selects the external compiler invoked for builds and simulations.
	ToolchainConfig struct {
		// Bsc is the path or binary name of the Bluespec compiler.
		Bsc CompilerPath `mapstructure:"bsc"`
	}

	// TestConfig controls the test bench runner.
	TestConfig struct {
		// Jobs bounds the number of concurrently executing test benches.
		// Zero means "pick a default based on the machine".
		Jobs int `mapstructure:"jobs"`
		// Timeout is the per-bench wall-clock budget, covering both the
		// simulator compile and the simulation run.
		Timeout time.Duration `mapstructure:"timeout"`
	}

	// InvalidTestConfigError is returned when a TestConfig has invalid fields.
	// It wraps ErrInvalidTestConfig for errors.Is() compatibility.
	InvalidTestConfigError struct {
		FieldErrors []error
	}

	// UIConfig controls terminal output.
	UIConfig struct {
		// ColorScheme selects the terminal color scheme.
		ColorScheme ColorScheme `mapstructure:"color_scheme"`
		// Verbose enables detailed output, including full compiler invocations.
		Verbose bool `mapstructure:"verbose"`
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidColorScheme through its field errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// Config is the root application configuration.
	Config struct {
		Toolchain ToolchainConfig `mapstructure:"toolchain"`
		Test      TestConfig      `mapstructure:"test"`
		UI        UIConfig        `mapstructure:"ui"`
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Toolchain: ToolchainConfig{
			Bsc: "bsc",
		},
		Test: TestConfig{
			Jobs:    0,
			Timeout: 5 * time.Minute,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}

// --- ColorScheme ---

// Validate checks that the color scheme is one of the recognized values.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: c}
	}
}

func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("%v: %q (valid: auto, dark, light)", ErrInvalidColorScheme, e.Value)
}

func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// --- CompilerPath ---

// Validate checks that a non-empty path is not whitespace-only.
func (p CompilerPath) Validate() error {
	if p != "" && strings.TrimSpace(string(p)) == "" {
		return &InvalidCompilerPathError{Value: p}
	}
	return nil
}

func (e *InvalidCompilerPathError) Error() string {
	return fmt.Sprintf("%v: %q is whitespace-only", ErrInvalidCompilerPath, e.Value)
}

func (e *InvalidCompilerPathError) Unwrap() error { return ErrInvalidCompilerPath }

// --- TestConfig ---

// Validate checks that jobs and timeout are non-negative.
func (c *TestConfig) Validate() error {
	var fieldErrs []error

	if c.Jobs < 0 {
		fieldErrs = append(fieldErrs, fmt.Errorf("jobs must be >= 0, got %d", c.Jobs))
	}
	if c.Timeout < 0 {
		fieldErrs = append(fieldErrs, fmt.Errorf("timeout must be >= 0, got %v", c.Timeout))
	}

	if len(fieldErrs) > 0 {
		return &InvalidTestConfigError{FieldErrors: fieldErrs}
	}
	return nil
}

func (e *InvalidTestConfigError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInvalidTestConfig, errors.Join(e.FieldErrors...))
}

func (e *InvalidTestConfigError) Unwrap() error { return ErrInvalidTestConfig }

// --- UIConfig ---

// Validate checks all UI fields.
func (c *UIConfig) Validate() error {
	var fieldErrs []error

	if err := c.ColorScheme.Validate(); err != nil {
		fieldErrs = append(fieldErrs, err)
	}

	if len(fieldErrs) > 0 {
		return &InvalidUIConfigError{FieldErrors: fieldErrs}
	}
	return nil
}

func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %v", errors.Join(e.FieldErrors...))
}

func (e *InvalidUIConfigError) Unwrap() error { return errors.Join(e.FieldErrors...) }

// --- Config ---

// Validate checks all sub-components and collects their errors.
func (c *Config) Validate() error {
	var fieldErrs []error

	if err := c.Toolchain.Bsc.Validate(); err != nil {
		fieldErrs = append(fieldErrs, err)
	}
	if err := c.Test.Validate(); err != nil {
		fieldErrs = append(fieldErrs, err)
	}
	if err := c.UI.Validate(); err != nil {
		fieldErrs = append(fieldErrs, err)
	}

	if len(fieldErrs) > 0 {
		return &InvalidConfigError{FieldErrors: fieldErrs}
	}
	return nil
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInvalidConfig, errors.Join(e.FieldErrors...))
}

func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }
