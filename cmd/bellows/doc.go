// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for bellows.
//
// This package implements the Cobra command hierarchy for the bellows CLI:
// the root command plus subcommands for building a package, running its test
// benches, scaffolding a new project, and cleaning build artifacts.
package cmd
