// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions selects where bellows configuration is read from.
type LoadOptions struct {
	// ConfigFilePath reads exactly this config.toml when set (the --config
	// flag); a missing file is then an error rather than a fallback.
	ConfigFilePath string
	// ConfigDirPath looks for config.toml in this directory instead of the
	// platform config directory when set.
	ConfigDirPath string
}

// Provider loads bellows configuration. The file provider layers defaults,
// an optional config.toml, and BELLOWS_* environment overrides.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider returns the standard file-backed provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads and validates configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
