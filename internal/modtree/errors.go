// SPDX-License-Identifier: MPL-2.0

package modtree

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRootModuleNotFound is the sentinel error wrapped by RootModuleNotFoundError.
	ErrRootModuleNotFound = errors.New("root module not found")
	// ErrSubmoduleNotFound is the sentinel error wrapped by SubmoduleNotFoundError.
	ErrSubmoduleNotFound = errors.New("submodule not found")
	// ErrDuplicateModule is the sentinel error wrapped by DuplicateModuleError.
	ErrDuplicateModule = errors.New("duplicate module")
	// ErrCyclicModule is the sentinel error wrapped by CycleError.
	ErrCyclicModule = errors.New("cyclic module reference")
	// ErrMalformedDirective is the sentinel error wrapped by MalformedDirectiveError.
	ErrMalformedDirective = errors.New("malformed directive")
)

type (
	// RootModuleNotFoundError is returned when the package's root source file
	// (src/<package>.<ext>) does not exist. This is immediately fatal: no
	// further resolution is possible without a root.
	RootModuleNotFoundError struct {
		Package string
		Path    string
	}

	// SubmoduleNotFoundError is returned when a submodule directive names a
	// module whose expected source file does not exist. The branch is dead,
	// but sibling directives are still scanned so every missing submodule in
	// a file is reported in one pass.
	SubmoduleNotFoundError struct {
		// Parent is the identifier of the module declaring the submodule.
		Parent string
		// Name is the declared submodule identifier.
		Name string
		// Path is the source file path that was expected to exist.
		Path string
	}

	// DuplicateModuleError is returned when one identifier resolves to two
	// different source paths within the same tree.
	DuplicateModuleError struct {
		Name       string
		FirstPath  string
		SecondPath string
	}

	// CycleError is returned when submodule directives form a cycle. Chain
	// names the modules along the cycle, ending with the repeated one.
	CycleError struct {
		Chain []string
	}

	// MalformedDirectiveError is returned for a directive prefix with a
	// missing argument. It is collected, not fatal for the rest of the file.
	MalformedDirectiveError struct {
		File      string
		Line      int
		Directive string
	}

	// ResolutionError aggregates every structural error found during one
	// resolution pass. Individual errors are reachable through Unwrap for
	// errors.Is/errors.As.
	ResolutionError struct {
		Package string
		Errs    []error
	}
)

// Error implements the error interface.
func (e *RootModuleNotFoundError) Error() string {
	return fmt.Sprintf("root module for package %q not found at %s", e.Package, e.Path)
}

// Unwrap returns ErrRootModuleNotFound for errors.Is detection.
func (e *RootModuleNotFoundError) Unwrap() error { return ErrRootModuleNotFound }

// Error implements the error interface.
func (e *SubmoduleNotFoundError) Error() string {
	return fmt.Sprintf("submodule %q declared by %q not found at %s", e.Name, e.Parent, e.Path)
}

// Unwrap returns ErrSubmoduleNotFound for errors.Is detection.
func (e *SubmoduleNotFoundError) Unwrap() error { return ErrSubmoduleNotFound }

// Error implements the error interface.
func (e *DuplicateModuleError) Error() string {
	return fmt.Sprintf("module %q resolved to two different files: %s and %s",
		e.Name, e.FirstPath, e.SecondPath)
}

// Unwrap returns ErrDuplicateModule for errors.Is detection.
func (e *DuplicateModuleError) Unwrap() error { return ErrDuplicateModule }

// Error implements the error interface, naming the exact cycle.
func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic module reference: %s", strings.Join(e.Chain, " -> "))
}

// Unwrap returns ErrCyclicModule for errors.Is detection.
func (e *CycleError) Unwrap() error { return ErrCyclicModule }

// Error implements the error interface.
func (e *MalformedDirectiveError) Error() string {
	return fmt.Sprintf("%s:%d: %s directive is missing its argument", e.File, e.Line, e.Directive)
}

// Unwrap returns ErrMalformedDirective for errors.Is detection.
func (e *MalformedDirectiveError) Unwrap() error { return ErrMalformedDirective }

// Error implements the error interface, listing one collected error per line.
func (e *ResolutionError) Error() string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "resolving module tree for package %q: %d error(s)", e.Package, len(e.Errs))
	for _, err := range e.Errs {
		msg.WriteString("\n  ")
		msg.WriteString(err.Error())
	}
	return msg.String()
}

// Unwrap returns the collected errors for errors.Is/errors.As traversal.
func (e *ResolutionError) Unwrap() []error { return e.Errs }
