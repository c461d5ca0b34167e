// SPDX-License-Identifier: MPL-2.0

package builder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"bellows/internal/modtree"
	"bellows/internal/toolchain"

	"github.com/charmbracelet/log"
)

// ArtifactExt is the extension of the generated Verilog artifact.
const ArtifactExt = ".v"

// TargetDirName is the project subdirectory holding build artifacts.
// Defined locally to avoid coupling builder to the manifest package.
const TargetDirName = "target"

// ErrBuildFailed is the sentinel error wrapped by BuildFailedError.
var ErrBuildFailed = errors.New("build failed")

type (
	// Artifact is the deterministic output of one build, keyed by top module.
	Artifact struct {
		// TopModule is the synthesis entry point that was built.
		TopModule string
		// OutputPath is target/<top>/<top>.v under the project root.
		OutputPath string
	}

	// BuildFailedError is returned when the external compiler exits non-zero.
	// The build is not retried.
	BuildFailedError struct {
		TopModule string
		ExitCode  int
		Output    string
	}

	// Builder assembles compiler invocations for resolved module trees.
	Builder struct {
		// Toolchain performs the actual compilation.
		Toolchain toolchain.Toolchain
		// Logger receives progress output. Nil means the package default.
		Logger *log.Logger
	}
)

// Error implements the error interface.
func (e *BuildFailedError) Error() string {
	return fmt.Sprintf("build of %s failed with exit code %d", e.TopModule, e.ExitCode)
}

// Unwrap returns ErrBuildFailed for errors.Is detection.
func (e *BuildFailedError) Unwrap() error { return ErrBuildFailed }

// New returns a Builder over the given toolchain.
func New(tc toolchain.Toolchain) *Builder {
	return &Builder{Toolchain: tc, Logger: log.Default()}
}

// ProjectTopModule returns the top module to build for a project tree: the
// root file's `//!topmodule` override when present, mk<PackageName> otherwise.
func ProjectTopModule(tree *modtree.Module) string {
	if tree.TopModule != "" {
		return tree.TopModule
	}
	return "mk" + tree.Name
}

// Build compiles the full transitive file set of tree for topModule, placing
// the artifact under <projectRoot>/target/<topModule>/. The output directory
// is created if absent.
func (b *Builder) Build(ctx context.Context, tree *modtree.Module, topModule, projectRoot string) (*Artifact, error) {
	outDir := filepath.Join(projectRoot, TargetDirName, topModule)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir %s: %w", outDir, err)
	}

	files, err := absFiles(tree.Files())
	if err != nil {
		return nil, err
	}

	b.logger().Info("building", "top", topModule, "modules", tree.Count())

	inv, err := b.Toolchain.Compile(ctx, toolchain.CompileJob{
		Files:     files,
		TopModule: topModule,
		OutDir:    outDir,
	})
	if err != nil {
		return nil, fmt.Errorf("invoke %s: %w", b.Toolchain.Name(), err)
	}
	if !inv.Succeeded() {
		return nil, &BuildFailedError{
			TopModule: topModule,
			ExitCode:  inv.ExitCode,
			Output:    inv.CombinedOutput(),
		}
	}

	return &Artifact{
		TopModule:  topModule,
		OutputPath: filepath.Join(outDir, topModule+ArtifactExt),
	}, nil
}

// absFiles makes every path absolute: the toolchain runs with the artifact
// directory as its working directory, so relative source paths would break.
func absFiles(files []string) ([]string, error) {
	abs := make([]string, 0, len(files))
	for _, f := range files {
		a, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolve source path %s: %w", f, err)
		}
		abs = append(abs, a)
	}
	return abs, nil
}

func (b *Builder) logger() *log.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return log.Default()
}
