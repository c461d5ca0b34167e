// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"strings"
)

type (
	// CompileJob describes one Verilog code-generation invocation.
	CompileJob struct {
		// Files is the full transitive source file set, root module first,
		// in resolution order. Ordering is passed through to the compiler
		// unchanged because it can be semantically significant.
		Files []string
		// TopModule is the synthesis entry point.
		TopModule string
		// OutDir is the artifact directory. It exists when the job runs.
		OutDir string
	}

	// SimJob describes one compile-and-link invocation producing a
	// simulation executable.
	SimJob struct {
		// Files is the full transitive source file set, bench root first.
		Files []string
		// TopModule is the simulation entry point.
		TopModule string
		// OutDir is the artifact directory, namespaced by top module so
		// concurrent jobs never collide.
		OutDir string
	}

	// Invocation is the captured outcome of one external process.
	Invocation struct {
		// Args is the argument vector that was executed, for diagnostics.
		Args []string
		// ExitCode is the process exit status.
		ExitCode int
		// Output is the captured standard output.
		Output string
		// ErrOutput is the captured standard error.
		ErrOutput string
	}

	// Toolchain is the capability interface over the external compiler.
	//
	// All methods return a non-nil error only for infrastructure failures:
	// the process could not be started, or the context expired. A process
	// that ran and exited non-zero yields a nil error and an Invocation
	// carrying the exit code; interpreting that is the caller's business.
	Toolchain interface {
		// Name identifies the toolchain for logs and error messages.
		Name() string
		// Available reports whether the toolchain can be invoked at all.
		Available() bool
		// Compile generates Verilog for the top module into job.OutDir.
		Compile(ctx context.Context, job CompileJob) (*Invocation, error)
		// CompileSim builds a simulation executable and returns its path.
		CompileSim(ctx context.Context, job SimJob) (string, *Invocation, error)
		// Run executes a simulation binary with fully captured output.
		Run(ctx context.Context, exePath, workDir string) (*Invocation, error)
	}
)

// Succeeded reports whether the process exited zero.
func (i *Invocation) Succeeded() bool { return i.ExitCode == 0 }

// CombinedOutput returns stdout followed by stderr, for diagnostics.
func (i *Invocation) CombinedOutput() string {
	if i.ErrOutput == "" {
		return i.Output
	}
	return strings.TrimRight(i.Output, "\n") + "\n" + i.ErrOutput
}
