// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"strings"
	"time"

	"bellows/internal/discovery"
)

// PassMarker is the literal substring whose presence anywhere in a test
// process's captured stdout classifies the test as passed. It is both
// necessary and sufficient.
const PassMarker = ">>>PASS"

// Result statuses.
const (
	// StatusPass means the simulation ran and printed the pass marker.
	StatusPass Status = iota + 1
	// StatusFail means the simulation ran but its output lacks the marker.
	StatusFail
	// StatusError means the bench could not be built or started, or was
	// cut off by the timeout, before a determinable outcome.
	StatusError
)

type (
	// Status classifies one test bench outcome.
	Status int

	// Result is the outcome of one test bench.
	Result struct {
		// Bench is the test bench this result belongs to.
		Bench discovery.TestBench
		// Status is the classification.
		Status Status
		// Output is the simulation's captured stdout, when it ran.
		Output string
		// Reason explains StatusError results (build failure, timeout,
		// start failure).
		Reason string
		// Duration is the wall-clock time spent on the bench.
		Duration time.Duration
	}

	// Report is the ordered collection of results for one test run.
	// Order equals discovery order.
	Report struct {
		Results []Result
	}
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusFail:
		return "fail"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// classifyOutput applies the marker rule to captured simulation output.
func classifyOutput(output string) Status {
	if strings.Contains(output, PassMarker) {
		return StatusPass
	}
	return StatusFail
}

// Passed reports overall success: true iff every result is a pass.
func (r *Report) Passed() bool {
	for _, res := range r.Results {
		if res.Status != StatusPass {
			return false
		}
	}
	return true
}

// Counts returns the number of passed, failed, and errored benches.
func (r *Report) Counts() (passed, failed, errored int) {
	for _, res := range r.Results {
		switch res.Status {
		case StatusPass:
			passed++
		case StatusFail:
			failed++
		case StatusError:
			errored++
		}
	}
	return passed, failed, errored
}
