// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"path/filepath"
	"sync"
	"time"
)

type (
	// Behavior scripts the Fake's responses for one top module.
	// The zero value is a clean compile and a silent, successful run.
	Behavior struct {
		// CompileExitCode is returned by Compile and CompileSim.
		CompileExitCode int
		// CompileOutput is the compiler's captured stderr.
		CompileOutput string
		// CompileErr simulates a compiler that cannot be started.
		CompileErr error
		// RunOutput is the simulation's captured stdout.
		RunOutput string
		// RunExitCode is the simulation's exit status.
		RunExitCode int
		// RunErr simulates a binary that cannot be started.
		RunErr error
		// RunDelay stalls Run until the context expires or the delay
		// elapses, for timeout tests.
		RunDelay time.Duration
	}

	// Fake is an in-memory Toolchain scripted per top-module name. It is
	// safe for concurrent use, matching the runner's worker pool.
	Fake struct {
		mu        sync.Mutex
		behaviors map[string]Behavior

		// CompileJobs records every Compile call in order.
		CompileJobs []CompileJob
		// SimJobs records every CompileSim call in order.
		SimJobs []SimJob
		// RunPaths records every Run call's executable path in order.
		RunPaths []string
	}
)

// NewFake returns an empty Fake; unscripted top modules behave as clean
// builds with successful, silent runs.
func NewFake() *Fake {
	return &Fake{behaviors: make(map[string]Behavior)}
}

// Script sets the behavior for one top module.
func (f *Fake) Script(topModule string, b Behavior) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.behaviors[topModule] = b
}

// Name implements Toolchain.
func (f *Fake) Name() string { return "fake" }

// Available implements Toolchain.
func (f *Fake) Available() bool { return true }

// Compile implements Toolchain.
func (f *Fake) Compile(_ context.Context, job CompileJob) (*Invocation, error) {
	f.mu.Lock()
	f.CompileJobs = append(f.CompileJobs, job)
	b := f.behaviors[job.TopModule]
	f.mu.Unlock()

	if b.CompileErr != nil {
		return nil, b.CompileErr
	}
	return &Invocation{ExitCode: b.CompileExitCode, ErrOutput: b.CompileOutput}, nil
}

// CompileSim implements Toolchain.
func (f *Fake) CompileSim(_ context.Context, job SimJob) (string, *Invocation, error) {
	f.mu.Lock()
	f.SimJobs = append(f.SimJobs, job)
	b := f.behaviors[job.TopModule]
	f.mu.Unlock()

	if b.CompileErr != nil {
		return "", nil, b.CompileErr
	}
	exe := filepath.Join(job.OutDir, job.TopModule)
	return exe, &Invocation{ExitCode: b.CompileExitCode, ErrOutput: b.CompileOutput}, nil
}

// Run implements Toolchain. The behavior is looked up by the executable's
// base name, which CompileSim sets to the top-module name.
func (f *Fake) Run(ctx context.Context, exePath, _ string) (*Invocation, error) {
	top := filepath.Base(exePath)

	f.mu.Lock()
	f.RunPaths = append(f.RunPaths, exePath)
	b := f.behaviors[top]
	f.mu.Unlock()

	if b.RunDelay > 0 {
		select {
		case <-ctx.Done():
			return &Invocation{Output: b.RunOutput}, ctx.Err()
		case <-time.After(b.RunDelay):
		}
	}
	if err := ctx.Err(); err != nil {
		return &Invocation{Output: b.RunOutput}, err
	}
	if b.RunErr != nil {
		return nil, b.RunErr
	}
	return &Invocation{Output: b.RunOutput, ExitCode: b.RunExitCode}, nil
}
