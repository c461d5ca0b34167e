// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// DefaultBscBinary is the compiler binary name looked up on PATH.
const DefaultBscBinary = "bsc"

// Bsc invokes the Bluespec compiler as an external process.
type Bsc struct {
	// Path overrides the compiler binary. Empty means DefaultBscBinary.
	Path string
	// Logger receives trace output. Nil means the package default logger.
	Logger *log.Logger
}

// NewBsc returns a Bsc toolchain using the given binary path, or the PATH
// default when path is empty.
func NewBsc(path string) *Bsc {
	return &Bsc{Path: path, Logger: log.Default()}
}

// Name implements Toolchain.
func (b *Bsc) Name() string { return "bsc" }

// Available reports whether the compiler binary can be found.
func (b *Bsc) Available() bool {
	_, err := exec.LookPath(b.binary())
	return err == nil
}

// Compile generates Verilog for job.TopModule into job.OutDir.
func (b *Bsc) Compile(ctx context.Context, job CompileJob) (*Invocation, error) {
	args := []string{
		"-verilog",
		"-u",
		"-g", job.TopModule,
		"-vdir", job.OutDir,
		"-bdir", job.OutDir,
		"-info-dir", job.OutDir,
	}
	args = append(args, job.Files...)
	return b.invoke(ctx, job.OutDir, b.binary(), args)
}

// CompileSim builds a simulation executable for job.TopModule and returns
// its path inside job.OutDir.
func (b *Bsc) CompileSim(ctx context.Context, job SimJob) (string, *Invocation, error) {
	exe := filepath.Join(job.OutDir, job.TopModule)
	args := []string{
		"-sim",
		"-u",
		"-e", job.TopModule,
		"-bdir", job.OutDir,
		"-simdir", job.OutDir,
		"-info-dir", job.OutDir,
		"-o", exe,
	}
	args = append(args, job.Files...)
	inv, err := b.invoke(ctx, job.OutDir, b.binary(), args)
	return exe, inv, err
}

// Run executes a simulation binary produced by CompileSim.
func (b *Bsc) Run(ctx context.Context, exePath, workDir string) (*Invocation, error) {
	return b.invoke(ctx, workDir, exePath, nil)
}

// invoke runs one external process with captured output. A non-zero exit is
// not an error; a process that could not start or was cut off by the context
// is.
func (b *Bsc) invoke(ctx context.Context, workDir, bin string, args []string) (*Invocation, error) {
	b.logger().Debug("invoking toolchain", "bin", bin, "args", args, "dir", workDir)

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	inv := &Invocation{Args: append([]string{bin}, args...)}

	err := cmd.Run()
	inv.Output = stdout.String()
	inv.ErrOutput = stderr.String()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return inv, ctxErr
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			inv.ExitCode = exitErr.ExitCode()
			return inv, nil
		}
		return inv, fmt.Errorf("start %s: %w", bin, err)
	}

	return inv, nil
}

func (b *Bsc) binary() string {
	if b.Path != "" {
		return b.Path
	}
	return DefaultBscBinary
}

func (b *Bsc) logger() *log.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return log.Default()
}
