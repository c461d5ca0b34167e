// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// cleanCmd removes build artifacts
var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Args:  cobra.MaximumNArgs(1),
	Short: "Remove the project's target/ directory",
	Long: `Remove the project's target/ directory.

All build artifacts and compiled simulations are deleted. A missing
target/ directory is not an error.`,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	project, err := currentProject(optionalPathArg(args))
	if err != nil {
		return err
	}

	if err := project.Clean(); err != nil {
		return err
	}

	fmt.Printf("%s Removed %s\n", SuccessStyle.Render("✓"), PathStyle.Render(project.TargetDir()))
	return nil
}
