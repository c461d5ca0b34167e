// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"

	"bellows/internal/issue"
	"bellows/internal/manifest"
	"bellows/internal/modtree"
	"bellows/internal/toolchain"
)

// optionalPathArg returns the single optional positional path argument.
func optionalPathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// currentProject locates and loads the project containing start, or the
// working directory when start is empty.
func currentProject(start string) (*manifest.Project, error) {
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, issue.WrapWithOperation(err, "determine working directory")
		}
		start = cwd
	}

	project, err := manifest.LoadProject(start)
	if err != nil {
		if errors.Is(err, manifest.ErrManifestNotFound) {
			renderIssueCard(issue.ManifestNotFoundId)
			return nil, issue.NewErrorContext().
				WithOperation("locate project").
				WithResource(start).
				WithSuggestion("Run 'bellows init <name>' to create a new project").
				WithSuggestion("Or change into a directory containing a " + manifest.FileName).
				Wrap(err).
				BuildError()
		}
		renderIssueCard(issue.ManifestMalformedId)
		return nil, issue.NewErrorContext().
			WithOperation("load project manifest").
			WithSuggestion("Check the manifest for TOML syntax errors").
			WithSuggestion("Ensure package.name and package.version are set").
			Wrap(err).
			BuildError()
	}

	return project, nil
}

// activeToolchain builds the configured toolchain and verifies it is usable.
func activeToolchain() (toolchain.Toolchain, error) {
	tc := toolchain.NewBsc(string(loadedConfig().Toolchain.Bsc))
	if !tc.Available() {
		renderIssueCard(issue.CompilerNotFoundId)
		return nil, issue.NewErrorContext().
			WithOperation("locate the Bluespec compiler").
			WithResource(string(loadedConfig().Toolchain.Bsc)).
			WithSuggestion("Install bsc from https://github.com/B-Lang-org/bsc").
			WithSuggestion("Or set 'toolchain.bsc' in your bellows config to its full path").
			Wrap(errors.New("compiler binary not found")).
			BuildError()
	}
	return tc, nil
}

// resolveProjectTree resolves the module tree rooted at the project's package.
func resolveProjectTree(project *manifest.Project) (*modtree.Module, error) {
	tree, err := modtree.NewResolver().Resolve(project.Root, project.Name())
	if err != nil {
		if id, ok := resolutionIssueId(err); ok {
			renderIssueCard(id)
		}
		return nil, issue.NewErrorContext().
			WithOperation("resolve module tree").
			WithResource(project.Name()).
			WithSuggestion("Check '//!submodule' directives for typos").
			WithSuggestion("Every submodule declared in directory D must live at D/<name>/<name>.bsv").
			Wrap(err).
			BuildError()
	}
	return tree, nil
}
