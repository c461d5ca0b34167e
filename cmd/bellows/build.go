// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"bellows/internal/builder"
	"bellows/internal/issue"

	"github.com/spf13/cobra"
)

var (
	buildTop string

	// buildCmd compiles the project's module tree to Verilog
	buildCmd = &cobra.Command{
		Use:   "build [path]",
		Args:  cobra.MaximumNArgs(1),
		Short: "Compile the project's module tree to Verilog",
		Long: `Compile the project's module tree to Verilog.

The module tree is resolved from '//!submodule' directives starting at
src/<PackageName>.bsv. The synthesis entry point is the root module's
'//!topmodule' override when present, mk<PackageName> otherwise.

Artifacts land under target/<top-module>/.`,
		RunE: runBuild,
	}
)

func init() {
	buildCmd.Flags().StringVarP(&buildTop, "top", "t", "", "override the top module to synthesize")
}

func runBuild(cmd *cobra.Command, args []string) error {
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

	top := buildTop
	if top == "" {
		top = builder.ProjectTopModule(tree)
	}

	if verbose {
		fmt.Printf("%s resolved %d module(s), top module %s\n",
			VerboseStyle.Render("•"), tree.Count(), PathStyle.Render(top))
	}

	artifact, err := builder.New(tc).Build(cmd.Context(), tree, top, project.Root)
	if err != nil {
		var buildErr *builder.BuildFailedError
		if errors.As(err, &buildErr) {
			renderIssueCard(issue.BuildFailedId)
			fmt.Print(buildErr.Output)
			fmt.Printf("%s %s\n", ErrorStyle.Render("✗"), buildErr.Error())
			return &ExitError{Code: 1, Err: err}
		}
		return err
	}

	fmt.Printf("%s Built %s\n", SuccessStyle.Render("✓"), PathStyle.Render(artifact.OutputPath))

	return nil
}
