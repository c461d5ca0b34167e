// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bellows/internal/discovery"
	"bellows/internal/issue"
	"bellows/internal/runner"

	"github.com/spf13/cobra"
)

var (
	testJobs    int
	testTimeout time.Duration

	// testCmd builds and runs every discovered test bench
	testCmd = &cobra.Command{
		Use:   "test [path]",
		Args:  cobra.MaximumNArgs(1),
		Short: "Build and run every test bench in the project",
		Long: `Build and run every test bench in the project.

Two kinds of bench are discovered:
  - unit benches: '<module>_tb.bsv' files next to a module in the tree
  - integration benches: any file directly under tests/

Each bench is compiled to a simulation executable and run. A bench passes
when its output contains the '>>>PASS' marker; a clean exit without the
marker is a failure. Benches run concurrently up to the jobs limit.`,
		RunE: runTest,
	}
)

func init() {
	testCmd.Flags().IntVarP(&testJobs, "jobs", "j", 0, "max concurrently running benches (0 = auto)")
	testCmd.Flags().DurationVar(&testTimeout, "timeout", 0, "per-bench time budget (0 = config default)")
}

func runTest(cmd *cobra.Command, args []string) error {
	project, err := currentProject(optionalPathArg(args))
	if err != nil {
		return err
	}

	tc, err := activeToolchain()
	if err != nil {
		return err
	}

	tree, err := resolveProjectTree(project)
	if err != nil {
		return err
	}

	benches, err := discovery.New().Discover(tree, project.Root)
	if err != nil {
		return err
	}
	if len(benches) == 0 {
		fmt.Println(SubtitleStyle.Render("no test benches found"))
		return nil
	}

	r := runner.New(tc)
	r.Jobs = effectiveJobs()
	r.Timeout = effectiveTimeout()

	report := r.Run(cmd.Context(), project.Root, benches)
	renderReport(report)

	if anyTimedOut(report) {
		renderIssueCard(issue.TestBenchTimeoutId)
	}

	if !report.Passed() {
		return &ExitError{Code: 1, Err: errors.New("test benches failed")}
	}
	return nil
}

// effectiveJobs prefers the flag, then the config file, then the default.
func effectiveJobs() int {
	if testJobs > 0 {
		return testJobs
	}
	if cfg := loadedConfig(); cfg.Test.Jobs > 0 {
		return cfg.Test.Jobs
	}
	return 0 // runner picks its default
}

// effectiveTimeout prefers the flag, then the config file, then the default.
func effectiveTimeout() time.Duration {
	if testTimeout > 0 {
		return testTimeout
	}
	if cfg := loadedConfig(); cfg.Test.Timeout > 0 {
		return cfg.Test.Timeout
	}
	return 0 // runner picks its default
}

// anyTimedOut reports whether any bench was cut off by the timeout.
func anyTimedOut(report *runner.Report) bool {
	for _, res := range report.Results {
		if res.Status == runner.StatusError && strings.Contains(res.Reason, "timed out") {
			return true
		}
	}
	return false
}

// renderReport prints one line per bench plus a summary.
func renderReport(report *runner.Report) {
	for _, res := range report.Results {
		fmt.Println(formatResult(res))

		if res.Status == runner.StatusError && res.Reason != "" {
			fmt.Println(indent(ErrorStyle.Render(res.Reason), "    "))
		}
		// Show captured output for anything that didn't pass, and for
		// everything in verbose mode.
		if res.Output != "" && (verbose || res.Status != runner.StatusPass) {
			fmt.Println(indent(VerboseStyle.Render(strings.TrimRight(res.Output, "\n")), "    "))
		}
	}

	passed, failed, errored := report.Counts()
	fmt.Println()
	summary := fmt.Sprintf("%d passed, %d failed, %d errored", passed, failed, errored)
	if report.Passed() {
		fmt.Println(SuccessStyle.Render(summary))
	} else {
		fmt.Println(ErrorStyle.Render(summary))
	}
}

// formatResult renders one bench outcome line.
func formatResult(res runner.Result) string {
	var icon string
	switch res.Status {
	case runner.StatusPass:
		icon = SuccessStyle.Render("✓")
	case runner.StatusFail:
		icon = ErrorStyle.Render("✗")
	default:
		icon = WarningStyle.Render("!")
	}

	return fmt.Sprintf("%s %s %s %s",
		icon,
		res.Bench.Name(),
		SubtitleStyle.Render("("+res.Bench.Kind.String()+")"),
		VerboseStyle.Render(res.Duration.Round(time.Millisecond).String()),
	)
}

// indent prefixes every line of s.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
