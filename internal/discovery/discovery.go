// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"bellows/internal/modtree"

	"github.com/charmbracelet/log"
)

// BenchSuffix is inserted before the extension to name a module's unit
// test bench: alu.bsv -> alu_tb.bsv.
const BenchSuffix = "_tb"

// IntegrationDir is the project subdirectory holding integration benches.
// Defined locally to avoid coupling discovery to the manifest package.
const IntegrationDir = "tests"

// Bench kinds.
const (
	// Unit is a bench colocated with the module it tests.
	Unit Kind = iota + 1
	// Integration is a project-level bench under tests/.
	Integration
)

type (
	// Kind classifies a test bench.
	Kind int

	// TestBench is one discovered test bench, not yet built or run.
	TestBench struct {
		// Kind is Unit or Integration.
		Kind Kind
		// SourcePath is the bench's source file.
		SourcePath string
		// TopModule is the simulation entry point: the bench file's
		// `//!topmodule` override, or the conventional default.
		TopModule string
		// ContainingModule is the identifier of the module the bench sits
		// beside. Empty for integration benches, which carry no implicit
		// module-tree context.
		ContainingModule string
	}

	// Discoverer walks a module tree and the integration-test directory.
	Discoverer struct {
		// Ext is the source extension including the dot. Empty means the
		// resolver default.
		Ext string
		// Logger receives trace output. Nil means the package default logger.
		Logger *log.Logger
	}
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case Unit:
		return "unit"
	case Integration:
		return "integration"
	default:
		return "unknown"
	}
}

// Name returns the bench's display name, derived from its file stem.
func (b TestBench) Name() string {
	base := filepath.Base(b.SourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// New returns a Discoverer with defaults.
func New() *Discoverer {
	return &Discoverer{Ext: modtree.DefaultExt, Logger: log.Default()}
}

// Discover returns every test bench for the project: unit benches in module
// tree walk order, then integration benches in filename order. The returned
// order is stable across runs and becomes the report order.
func (d *Discoverer) Discover(tree *modtree.Module, projectRoot string) ([]TestBench, error) {
	var benches []TestBench

	units, err := d.discoverUnits(tree)
	if err != nil {
		return nil, err
	}
	benches = append(benches, units...)

	integrations, err := d.discoverIntegrations(projectRoot)
	if err != nil {
		return nil, err
	}
	benches = append(benches, integrations...)

	return benches, nil
}

// discoverUnits checks every module in the tree for a sibling bench file.
func (d *Discoverer) discoverUnits(tree *modtree.Module) ([]TestBench, error) {
	var benches []TestBench
	var walkErr error

	tree.Walk(func(m *modtree.Module) {
		if walkErr != nil {
			return
		}

		benchPath := filepath.Join(filepath.Dir(m.Path), m.Name+BenchSuffix+d.ext())
		info, err := os.Stat(benchPath)
		if err != nil || !info.Mode().IsRegular() {
			return
		}

		top, err := d.benchTopModule(benchPath)
		if err != nil {
			walkErr = err
			return
		}

		d.logger().Debug("unit bench found", "module", m.Name, "path", benchPath, "top", top)
		benches = append(benches, TestBench{
			Kind:             Unit,
			SourcePath:       benchPath,
			TopModule:        top,
			ContainingModule: m.Name,
		})
	})

	if walkErr != nil {
		return nil, walkErr
	}
	return benches, nil
}

// discoverIntegrations lists every regular file directly under tests/.
func (d *Discoverer) discoverIntegrations(projectRoot string) ([]TestBench, error) {
	dir := filepath.Join(projectRoot, IntegrationDir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read integration test dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var benches []TestBench
	for _, name := range names {
		path := filepath.Join(dir, name)
		top, err := d.benchTopModule(path)
		if err != nil {
			return nil, err
		}

		d.logger().Debug("integration bench found", "path", path, "top", top)
		benches = append(benches, TestBench{
			Kind:       Integration,
			SourcePath: path,
			TopModule:  top,
		})
	}
	return benches, nil
}

// benchTopModule scans a bench file for a `//!topmodule` override. Bench
// files are ordinary directive-bearing sources; their submodule directives
// are resolved later, when the bench is built.
func (d *Discoverer) benchTopModule(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("read test bench %s: %w", path, err)
	}
	defer f.Close()

	events, err := modtree.ScanDirectives(f)
	if err != nil {
		return "", fmt.Errorf("scan test bench %s: %w", path, err)
	}

	for _, ev := range events {
		if ev.Kind == modtree.TopModuleOverride {
			return ev.Arg, nil
		}
	}
	return modtree.DefaultTopModule, nil
}

func (d *Discoverer) ext() string {
	if d.Ext == "" {
		return modtree.DefaultExt
	}
	return d.Ext
}

func (d *Discoverer) logger() *log.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return log.Default()
}
