// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"bellows/internal/discovery"
	"bellows/internal/modtree"
	"bellows/internal/toolchain"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds one simulation process's wall-clock time.
const DefaultTimeout = 5 * time.Minute

// TargetDirName is the project subdirectory holding build artifacts.
// Defined locally to avoid coupling runner to the manifest package.
const TargetDirName = "target"

// Runner builds and executes test benches against a toolchain.
type Runner struct {
	// Toolchain compiles and runs simulations.
	Toolchain toolchain.Toolchain
	// Resolver resolves each bench's module tree. Nil means a default.
	Resolver *modtree.Resolver
	// Jobs bounds bench-level parallelism. Zero means DefaultJobs().
	Jobs int
	// Timeout bounds each simulation process. Zero means DefaultTimeout.
	Timeout time.Duration
	// Logger receives progress output. Nil means the package default.
	Logger *log.Logger
}

// New returns a Runner over the given toolchain with defaults.
func New(tc toolchain.Toolchain) *Runner {
	return &Runner{
		Toolchain: tc,
		Resolver:  modtree.NewResolver(),
	}
}

// DefaultJobs is the default bench-level parallelism: GOMAXPROCS capped at 4,
// since each job spawns a compiler process of its own.
func DefaultJobs() int {
	n := runtime.GOMAXPROCS(0)
	if n > 4 {
		return 4
	}
	if n < 1 {
		return 1
	}
	return n
}

// Run builds and executes every bench and returns the aggregated report.
// Results land at their bench's discovery position no matter how the worker
// pool schedules them, and one bench's failure never stops the others.
func (r *Runner) Run(ctx context.Context, projectRoot string, benches []discovery.TestBench) *Report {
	results := make([]Result, len(benches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs())

	for i, bench := range benches {
		g.Go(func() error {
			results[i] = r.runOne(gctx, projectRoot, bench)
			return nil
		})
	}
	// Workers never return errors; Wait is only a join point.
	_ = g.Wait()

	return &Report{Results: results}
}

// runOne takes one bench through resolve, compile, and simulate.
func (r *Runner) runOne(ctx context.Context, projectRoot string, bench discovery.TestBench) Result {
	start := time.Now()
	res := Result{Bench: bench}
	defer func() { res.Duration = time.Since(start) }()

	logger := r.logger().With("bench", bench.Name(), "kind", bench.Kind.String())

	files, err := r.benchFiles(bench)
	if err != nil {
		logger.Error("bench resolution failed", "err", err)
		res.Status = StatusError
		res.Reason = err.Error()
		return res
	}

	outDir := filepath.Join(projectRoot, TargetDirName, bench.Kind.String(), bench.Name())
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		res.Status = StatusError
		res.Reason = fmt.Sprintf("create artifact dir: %v", err)
		return res
	}

	exe, inv, err := r.Toolchain.CompileSim(ctx, toolchain.SimJob{
		Files:     files,
		TopModule: bench.TopModule,
		OutDir:    outDir,
	})
	if err != nil {
		logger.Error("bench build could not start", "err", err)
		res.Status = StatusError
		res.Reason = fmt.Sprintf("invoke %s: %v", r.Toolchain.Name(), err)
		return res
	}
	if !inv.Succeeded() {
		logger.Error("bench build failed", "exit", inv.ExitCode)
		res.Status = StatusError
		res.Reason = fmt.Sprintf("build failed with exit code %d", inv.ExitCode)
		res.Output = inv.CombinedOutput()
		return res
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()

	runInv, err := r.Toolchain.Run(runCtx, exe, outDir)
	if runInv != nil {
		res.Output = runInv.Output
	}
	if err != nil {
		res.Status = StatusError
		if errors.Is(err, context.DeadlineExceeded) {
			res.Reason = fmt.Sprintf("timed out after %s", r.timeout())
		} else {
			res.Reason = fmt.Sprintf("simulation could not run: %v", err)
		}
		logger.Error("bench errored", "reason", res.Reason)
		return res
	}

	res.Status = classifyOutput(runInv.Output)
	logger.Info("bench finished", "status", res.Status.String(), "exit", runInv.ExitCode)
	return res
}

// benchFiles resolves the bench's own module tree, and for a unit bench also
// the tree of the module it sits beside, so the module under test is always
// part of the compiled file set even when the bench does not redeclare it.
func (r *Runner) benchFiles(bench discovery.TestBench) ([]string, error) {
	tree, err := r.resolver().ResolveFile(bench.SourcePath)
	if err != nil {
		return nil, err
	}
	files := tree.Files()

	if bench.Kind == discovery.Unit && bench.ContainingModule != "" {
		modPath := filepath.Join(filepath.Dir(bench.SourcePath),
			bench.ContainingModule+r.resolver().Ext)
		modTree, err := r.resolver().ResolveFile(modPath)
		if err != nil {
			return nil, err
		}
		files = mergeFiles(files, modTree.Files())
	}

	return absFiles(files)
}

// mergeFiles appends extra files not already present, preserving order.
func mergeFiles(files, extra []string) []string {
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		seen[f] = true
	}
	for _, f := range extra {
		if !seen[f] {
			seen[f] = true
			files = append(files, f)
		}
	}
	return files
}

// absFiles makes every path absolute: the toolchain runs inside the bench's
// artifact directory.
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

func (r *Runner) jobs() int {
	if r.Jobs > 0 {
		return r.Jobs
	}
	return DefaultJobs()
}

func (r *Runner) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return DefaultTimeout
}

func (r *Runner) resolver() *modtree.Resolver {
	if r.Resolver != nil {
		return r.Resolver
	}
	return modtree.NewResolver()
}

func (r *Runner) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}
