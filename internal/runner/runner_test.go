// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bellows/internal/discovery"
	"bellows/internal/modtree"
	"bellows/internal/toolchain"
)

func writeSource(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	return path
}

// discoverFixture resolves the fixture project and discovers its benches.
func discoverFixture(t *testing.T, root string) []discovery.TestBench {
	t.Helper()
	tree, err := modtree.NewResolver().Resolve(root, "Simple")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	benches, err := discovery.New().Discover(tree, root)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	return benches
}

func TestRun_MarkerBeatsExitCode(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeSource(t, root, "src/Simple.bsv", "module mkSimple(Simple);\nendmodule\n")
	writeSource(t, root, "src/Simple_tb.bsv", "//!topmodule mkSimple_tb\n")

	fake := toolchain.NewFake()
	fake.Script("mkSimple_tb", toolchain.Behavior{
		RunOutput:   "cycle 41\ncycle 42 >>>PASS\n$finish called",
		RunExitCode: 2,
	})

	report := New(fake).Run(context.Background(), root, discoverFixture(t, root))
	if len(report.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(report.Results))
	}
	if report.Results[0].Status != StatusPass {
		t.Errorf("marker present: expected pass, got %v (%s)",
			report.Results[0].Status, report.Results[0].Reason)
	}
	if !report.Passed() {
		t.Error("report should pass")
	}
}

func TestRun_CleanExitWithoutMarkerFails(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeSource(t, root, "src/Simple.bsv", "module mkSimple(Simple);\nendmodule\n")
	writeSource(t, root, "src/Simple_tb.bsv", "//!topmodule mkSimple_tb\n")

	fake := toolchain.NewFake()
	fake.Script("mkSimple_tb", toolchain.Behavior{
		RunOutput:   "simulation finished without assertion\n",
		RunExitCode: 0,
	})

	report := New(fake).Run(context.Background(), root, discoverFixture(t, root))
	if report.Results[0].Status != StatusFail {
		t.Errorf("no marker: expected fail, got %v", report.Results[0].Status)
	}
	if report.Passed() {
		t.Error("report should not pass")
	}
}

func TestRun_BuildFailureIsError(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeSource(t, root, "src/Simple.bsv", "module mkSimple(Simple);\nendmodule\n")
	writeSource(t, root, "src/Simple_tb.bsv", "//!topmodule mkSimple_tb\n")

	fake := toolchain.NewFake()
	fake.Script("mkSimple_tb", toolchain.Behavior{
		CompileExitCode: 1,
		CompileOutput:   "Error: unbound variable",
	})

	report := New(fake).Run(context.Background(), root, discoverFixture(t, root))
	res := report.Results[0]
	if res.Status != StatusError {
		t.Fatalf("expected error status, got %v", res.Status)
	}
	if !strings.Contains(res.Reason, "exit code 1") {
		t.Errorf("reason should carry exit code: %q", res.Reason)
	}
	if !strings.Contains(res.Output, "unbound variable") {
		t.Errorf("compiler output should be captured: %q", res.Output)
	}
}

func TestRun_StartFailureIsError(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeSource(t, root, "src/Simple.bsv", "module mkSimple(Simple);\nendmodule\n")
	writeSource(t, root, "src/Simple_tb.bsv", "//!topmodule mkSimple_tb\n")

	fake := toolchain.NewFake()
	fake.Script("mkSimple_tb", toolchain.Behavior{
		RunErr: errors.New("permission denied"),
	})

	report := New(fake).Run(context.Background(), root, discoverFixture(t, root))
	res := report.Results[0]
	if res.Status != StatusError {
		t.Fatalf("expected error status, got %v", res.Status)
	}
	if !strings.Contains(res.Reason, "permission denied") {
		t.Errorf("reason should carry cause: %q", res.Reason)
	}
}

func TestRun_TimeoutIsError(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeSource(t, root, "src/Simple.bsv", "module mkSimple(Simple);\nendmodule\n")
	writeSource(t, root, "src/Simple_tb.bsv", "//!topmodule mkSimple_tb\n")

	fake := toolchain.NewFake()
	fake.Script("mkSimple_tb", toolchain.Behavior{
		RunDelay:  10 * time.Second,
		RunOutput: "partial output before the hang\n",
	})

	r := New(fake)
	r.Timeout = 50 * time.Millisecond

	report := r.Run(context.Background(), root, discoverFixture(t, root))
	res := report.Results[0]
	if res.Status != StatusError {
		t.Fatalf("expected error status, got %v", res.Status)
	}
	if !strings.Contains(res.Reason, "timed out") {
		t.Errorf("reason should mention timeout: %q", res.Reason)
	}
}

func TestRun_OnePassOneFail_ReportOrderAndOutcome(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeSource(t, root, "src/Simple.bsv", "//!submodule alu\n")
	writeSource(t, root, "src/alu/alu.bsv", "module mkAlu(Alu);\nendmodule\n")
	writeSource(t, root, "src/alu/alu_tb.bsv", "//!topmodule mkAlu_tb\n")
	writeSource(t, root, "tests/full.bsv", "//!topmodule mkFull_tb\n")

	fake := toolchain.NewFake()
	fake.Script("mkAlu_tb", toolchain.Behavior{RunOutput: ">>>PASS\n"})
	fake.Script("mkFull_tb", toolchain.Behavior{RunOutput: "assertion failed at cycle 7\n"})

	report := New(fake).Run(context.Background(), root, discoverFixture(t, root))
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	// Discovery order: unit bench first, then integration.
	if report.Results[0].Bench.Name() != "alu_tb" || report.Results[1].Bench.Name() != "full" {
		t.Errorf("wrong report order: %s, %s",
			report.Results[0].Bench.Name(), report.Results[1].Bench.Name())
	}
	if report.Results[0].Status != StatusPass || report.Results[1].Status != StatusFail {
		t.Errorf("wrong statuses: %v, %v",
			report.Results[0].Status, report.Results[1].Status)
	}
	if report.Passed() {
		t.Error("report should not pass")
	}
	passed, failed, errored := report.Counts()
	if passed != 1 || failed != 1 || errored != 0 {
		t.Errorf("wrong counts: %d/%d/%d", passed, failed, errored)
	}
}

func TestRun_FailureDoesNotBlockOthers(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeSource(t, root, "src/Simple.bsv", "module mkSimple(Simple);\nendmodule\n")
	writeSource(t, root, "tests/a_broken.bsv", "//!topmodule mkBroken\n")
	writeSource(t, root, "tests/b_good.bsv", "//!topmodule mkGood\n")

	fake := toolchain.NewFake()
	fake.Script("mkBroken", toolchain.Behavior{CompileErr: errors.New("compiler missing")})
	fake.Script("mkGood", toolchain.Behavior{RunOutput: ">>>PASS\n"})

	r := New(fake)
	r.Jobs = 1 // serial, so the broken bench runs first

	report := r.Run(context.Background(), root, discoverFixture(t, root))
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	if report.Results[0].Status != StatusError {
		t.Errorf("expected first bench errored, got %v", report.Results[0].Status)
	}
	if report.Results[1].Status != StatusPass {
		t.Errorf("error must not block later benches, got %v", report.Results[1].Status)
	}
}

func TestRun_ParallelExecutionKeepsDiscoveryOrder(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeSource(t, root, "src/Simple.bsv", "module mkSimple(Simple);\nendmodule\n")

	var names []string
	for _, n := range []string{"t1", "t2", "t3", "t4", "t5", "t6"} {
		writeSource(t, root, "tests/"+n+".bsv", "//!topmodule mk_"+n+"\n")
		names = append(names, n)
	}

	fake := toolchain.NewFake()
	for i, n := range names {
		// Stagger delays so completion order differs from discovery order.
		fake.Script("mk_"+n, toolchain.Behavior{
			RunDelay:  time.Duration(len(names)-i) * 10 * time.Millisecond,
			RunOutput: ">>>PASS\n",
		})
	}

	r := New(fake)
	r.Jobs = 4

	report := r.Run(context.Background(), root, discoverFixture(t, root))
	if len(report.Results) != len(names) {
		t.Fatalf("expected %d results, got %d", len(names), len(report.Results))
	}
	for i, n := range names {
		if report.Results[i].Bench.Name() != n {
			t.Errorf("result %d is %s, want %s", i, report.Results[i].Bench.Name(), n)
		}
	}
	if !report.Passed() {
		t.Error("all benches passed, report should pass")
	}
}

func TestRun_UnitBenchIncludesModuleUnderTest(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeSource(t, root, "src/Simple.bsv", "//!submodule alu\n")
	writeSource(t, root, "src/alu/alu.bsv", "//!submodule adder\n")
	writeSource(t, root, "src/alu/adder/adder.bsv", "module mkAdder(Adder);\nendmodule\n")
	writeSource(t, root, "src/alu/alu_tb.bsv", "//!topmodule mkAlu_tb\n")

	fake := toolchain.NewFake()
	fake.Script("mkAlu_tb", toolchain.Behavior{RunOutput: ">>>PASS\n"})

	report := New(fake).Run(context.Background(), root, discoverFixture(t, root))
	if !report.Passed() {
		t.Fatalf("expected pass, got %+v", report.Results)
	}

	if len(fake.SimJobs) != 1 {
		t.Fatalf("expected 1 sim job, got %d", len(fake.SimJobs))
	}
	files := fake.SimJobs[0].Files
	var hasBench, hasModule, hasSub bool
	for _, f := range files {
		switch {
		case strings.HasSuffix(f, "alu_tb.bsv"):
			hasBench = true
		case strings.HasSuffix(f, string(filepath.Separator)+"alu.bsv"):
			hasModule = true
		case strings.HasSuffix(f, "adder.bsv"):
			hasSub = true
		}
	}
	if !hasBench || !hasModule || !hasSub {
		t.Errorf("file set incomplete: %v", files)
	}
	if !strings.HasSuffix(files[0], "alu_tb.bsv") {
		t.Errorf("bench must come first: %v", files)
	}
}

func TestRun_ArtifactDirsNamespacedPerBench(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeSource(t, root, "src/Simple.bsv", "//!submodule alu\n")
	writeSource(t, root, "src/alu/alu.bsv", "module mkAlu(Alu);\nendmodule\n")
	// Both benches use the conventional default top module.
	writeSource(t, root, "src/alu/alu_tb.bsv", "module mkTopModule(Empty);\nendmodule\n")
	writeSource(t, root, "tests/full.bsv", "module mkTopModule(Empty);\nendmodule\n")

	fake := toolchain.NewFake()
	fake.Script(modtree.DefaultTopModule, toolchain.Behavior{RunOutput: ">>>PASS\n"})

	report := New(fake).Run(context.Background(), root, discoverFixture(t, root))
	if !report.Passed() {
		t.Fatalf("expected pass, got %+v", report.Results)
	}

	if len(fake.SimJobs) != 2 {
		t.Fatalf("expected 2 sim jobs, got %d", len(fake.SimJobs))
	}
	if fake.SimJobs[0].OutDir == fake.SimJobs[1].OutDir {
		t.Errorf("artifact dirs must not collide: %s", fake.SimJobs[0].OutDir)
	}
}
