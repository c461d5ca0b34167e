// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"
	"os"
	"path/filepath"
)

// TargetDirName is the project subdirectory holding build artifacts.
const TargetDirName = "target"

// TestsDirName is the project subdirectory holding integration test benches.
const TestsDirName = "tests"

// Project couples a loaded manifest with the directory it was found in.
type Project struct {
	// Root is the directory containing the manifest.
	Root string
	// Manifest is the parsed manifest.
	Manifest *Manifest
}

// LoadProject finds the nearest manifest at or above start and loads it.
func LoadProject(start string) (*Project, error) {
	path, err := Find(start)
	if err != nil {
		return nil, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Project{Root: filepath.Dir(path), Manifest: m}, nil
}

// Name returns the package name.
func (p *Project) Name() string { return p.Manifest.Package.Name }

// TargetDir returns the project's artifact directory.
func (p *Project) TargetDir() string {
	return filepath.Join(p.Root, TargetDirName)
}

// TestsDir returns the project's integration-test directory.
func (p *Project) TestsDir() string {
	return filepath.Join(p.Root, TestsDirName)
}

// Clean removes the artifact directory. A missing directory is not an error.
func (p *Project) Clean() error {
	if err := os.RemoveAll(p.TargetDir()); err != nil {
		return fmt.Errorf("clean %s: %w", p.TargetDir(), err)
	}
	return nil
}
