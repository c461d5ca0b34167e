// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the manifest file name looked for at the project root.
const FileName = "bellows.toml"

// ErrManifestNotFound is returned when no manifest exists at the given path
// or anywhere between the starting directory and the filesystem root.
var ErrManifestNotFound = errors.New("manifest not found")

type (
	// Manifest is the parsed project manifest. Immutable once loaded.
	Manifest struct {
		Package Package `toml:"package"`
	}

	// Package is the [package] section of the manifest.
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	}

	// MalformedManifestError is returned when the manifest exists but cannot
	// be decoded, or a required field is missing or empty.
	MalformedManifestError struct {
		Path   string
		Reason string
		Cause  error
	}
)

// Error implements the error interface.
func (e *MalformedManifestError) Error() string {
	return fmt.Sprintf("malformed manifest %s: %s", e.Path, e.Reason)
}

// Unwrap returns the underlying decode error, if any.
func (e *MalformedManifestError) Unwrap() error { return e.Cause }

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, &MalformedManifestError{Path: path, Reason: err.Error(), Cause: err}
	}

	if m.Package.Name == "" {
		return nil, &MalformedManifestError{Path: path, Reason: "package.name is required"}
	}
	if m.Package.Version == "" {
		return nil, &MalformedManifestError{Path: path, Reason: "package.version is required"}
	}

	return &m, nil
}

// Find walks from start toward the filesystem root looking for a manifest
// file, and returns the path of the first one found.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve search root %s: %w", start, err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: searched from %s upward", ErrManifestNotFound, start)
		}
		dir = parent
	}
}
