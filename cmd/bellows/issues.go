// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"bellows/internal/issue"
	"bellows/internal/modtree"
)

// renderIssueCard prints the help card for id to stderr.
// Rendering failures are swallowed: the card is supplementary to the error itself.
func renderIssueCard(id issue.Id) {
	card := issue.Get(id)
	if card == nil {
		return
	}
	rendered, err := card.Render("dark")
	if err != nil {
		return
	}
	fmt.Fprint(os.Stderr, rendered)
}

// resolutionIssueId maps a module-tree resolution error to its help card.
// With multiple collected errors the first matching class wins.
func resolutionIssueId(err error) (issue.Id, bool) {
	switch {
	case errors.Is(err, modtree.ErrRootModuleNotFound):
		return issue.RootModuleNotFoundId, true
	case errors.Is(err, modtree.ErrCyclicModule):
		return issue.CyclicModuleId, true
	case errors.Is(err, modtree.ErrDuplicateModule):
		return issue.DuplicateModuleId, true
	case errors.Is(err, modtree.ErrSubmoduleNotFound):
		return issue.SubmoduleNotFoundId, true
	default:
		return 0, false
	}
}
