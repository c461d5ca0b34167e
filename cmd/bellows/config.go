// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"bellows/internal/config"
	"bellows/internal/issue"

	"github.com/spf13/cobra"
)

var (
	// configCmd groups the configuration management subcommands.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage bellows configuration",
		Long: `Manage bellows configuration.

Configuration is stored in:
  - Linux: ~/.config/bellows/config.toml
  - macOS: ~/Library/Application Support/bellows/config.toml
  - Windows: %APPDATA%\bellows\config.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context())
		},
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile()
		},
	}

	configPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	}

	configSetCmd = &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd.Context(), args[0], args[1])
		},
	}

	configDumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigForCommand(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Print(config.GenerateTOML(cfg))
			return nil
		},
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configDumpCmd)
}

// loadConfigForCommand loads configuration honoring the global --config flag.
func loadConfigForCommand(ctx context.Context) (*config.Config, error) {
	return config.NewProvider().Load(ctx, config.LoadOptions{
		ConfigFilePath: cfgFile,
	})
}

func showConfig(ctx context.Context) error {
	cfg, err := loadConfigForCommand(ctx)
	if err != nil {
		renderIssueCard(issue.ConfigLoadFailedId)
		return err
	}

	keyStyle := SubtitleStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	// The provider does not cache resolved paths, so the file location is
	// derived again from the standard config directory.
	if cfgPath, err := defaultConfigFilePath(); err == nil && fileExistsCheck(cfgPath) {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), PathStyle.Render(cfgPath))
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s:\n", keyStyle.Render("toolchain"))
	fmt.Printf("  bsc: %s\n", valueStyle.Render(string(cfg.Toolchain.Bsc)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("test"))
	jobs := strconv.Itoa(cfg.Test.Jobs)
	if cfg.Test.Jobs == 0 {
		jobs = "0 (auto)"
	}
	fmt.Printf("  jobs: %s\n", valueStyle.Render(jobs))
	fmt.Printf("  timeout: %s\n", valueStyle.Render(cfg.Test.Timeout.String()))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(strconv.FormatBool(cfg.UI.Verbose)))

	return nil
}

func initConfigFile() error {
	cfgPath, err := defaultConfigFilePath()
	if err != nil {
		return err
	}

	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s\n", SuccessStyle.Render("✓"), PathStyle.Render(cfgPath))
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

func setConfigValue(ctx context.Context, key, value string) error {
	cfg, err := loadConfigForCommand(ctx)
	if err != nil {
		return err
	}

	if err := applyConfigValue(cfg, key, value); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

// applyConfigValue mutates one configuration field addressed by its TOML key.
func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "toolchain.bsc":
		cfg.Toolchain.Bsc = config.CompilerPath(value)

	case "test.jobs":
		jobs, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid test.jobs: %q is not an integer", value)
		}
		cfg.Test.Jobs = jobs

	case "test.timeout":
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid test.timeout: %q is not a duration (e.g. \"90s\", \"5m\")", value)
		}
		cfg.Test.Timeout = timeout

	case "ui.color_scheme":
		cfg.UI.ColorScheme = config.ColorScheme(value)

	case "ui.verbose":
		cfg.UI.Verbose = value == "true" || value == "1"

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: toolchain.bsc, test.jobs, test.timeout, ui.color_scheme, ui.verbose", key)
	}

	return nil
}

// defaultConfigFilePath returns the config file location in the standard
// config directory, ignoring the --config flag.
func defaultConfigFilePath() (string, error) {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt), nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
