// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"
	"testing"
	"time"

	"bellows/internal/discovery"
	"bellows/internal/runner"
)

func TestFormatResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result runner.Result
		wants  []string
	}{
		{
			name: "pass",
			result: runner.Result{
				Bench: discovery.TestBench{
					Kind:       discovery.Unit,
					SourcePath: "src/alu/alu_tb.bsv",
				},
				Status:   runner.StatusPass,
				Duration: 1200 * time.Millisecond,
			},
			wants: []string{"alu_tb", "unit", "1.2s"},
		},
		{
			name: "fail",
			result: runner.Result{
				Bench: discovery.TestBench{
					Kind:       discovery.Integration,
					SourcePath: "tests/full_tb.bsv",
				},
				Status: runner.StatusFail,
			},
			wants: []string{"full_tb", "integration"},
		},
		{
			name: "error",
			result: runner.Result{
				Bench: discovery.TestBench{
					Kind:       discovery.Integration,
					SourcePath: "tests/broken_tb.bsv",
				},
				Status: runner.StatusError,
				Reason: "build failed with exit code 1",
			},
			wants: []string{"broken_tb"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			line := formatResult(tt.result)
			for _, want := range tt.wants {
				if !strings.Contains(line, want) {
					t.Errorf("formatResult() = %q, missing %q", line, want)
				}
			}
		})
	}
}

func TestIndent(t *testing.T) {
	t.Parallel()

	got := indent("a\nb", "  ")
	if got != "  a\n  b" {
		t.Errorf("indent() = %q", got)
	}
}

func TestEffectiveJobsAndTimeout(t *testing.T) {
	// Not parallel: mutates package-level flag vars.
	origJobs, origTimeout := testJobs, testTimeout
	t.Cleanup(func() { testJobs, testTimeout = origJobs, origTimeout })

	testJobs = 3
	if got := effectiveJobs(); got != 3 {
		t.Errorf("effectiveJobs() = %d, want flag value 3", got)
	}

	testJobs = 0
	if got := effectiveJobs(); got < 0 {
		t.Errorf("effectiveJobs() = %d, want >= 0", got)
	}

	testTimeout = 42 * time.Second
	if got := effectiveTimeout(); got != 42*time.Second {
		t.Errorf("effectiveTimeout() = %v, want flag value 42s", got)
	}
}
