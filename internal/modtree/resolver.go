// SPDX-License-Identifier: MPL-2.0

package modtree

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultExt is the source file extension for BSV modules.
const DefaultExt = ".bsv"

// SourceDir is the project subdirectory holding the root module.
const SourceDir = "src"

type (
	// Resolver builds a Module tree by following submodule directives on disk.
	// Resolution is deterministic, synchronous, and side-effect free beyond
	// reading source files.
	Resolver struct {
		// Ext is the source extension including the dot. Empty means DefaultExt.
		Ext string
		// Logger receives trace output. Nil means the package default logger.
		Logger *log.Logger
	}

	// resolveState carries bookkeeping through one resolution pass.
	resolveState struct {
		// paths records the first resolved source path per identifier, for
		// duplicate detection across the whole tree.
		paths map[string]string
		// done holds fully resolved nodes so a module reachable through two
		// parents is resolved once and shared.
		done map[string]*Module
		// resolving is the set of source paths currently on the resolution
		// stack. A submodule directive landing on one of these is a cycle.
		resolving map[string]bool
		// resolvingNames is the identifier counterpart of resolving: a
		// directive naming a module that is an ancestor of the current file
		// is a cycle even when its expected path differs.
		resolvingNames map[string]bool
		// chain mirrors resolving in order, so cycle errors can name the
		// exact path through the tree.
		chain []string
		// errs collects every structural error found during the pass.
		errs []error
	}
)

// NewResolver returns a Resolver with default extension and logger.
func NewResolver() *Resolver {
	return &Resolver{Ext: DefaultExt, Logger: log.Default()}
}

// Resolve builds the module tree for a package rooted at
// <projectRoot>/src/<packageName><ext>.
//
// A missing root file is immediately fatal. All other structural errors
// (missing submodules, duplicates, cycles, malformed directives) are
// collected across the whole pass and returned together as a
// *ResolutionError, alongside the partial tree that was built.
func (r *Resolver) Resolve(projectRoot, packageName string) (*Module, error) {
	rootPath := filepath.Join(projectRoot, SourceDir, packageName+r.ext())

	if !isFile(rootPath) {
		return nil, &RootModuleNotFoundError{Package: packageName, Path: rootPath}
	}

	st := newResolveState()
	st.paths[packageName] = rootPath

	root := r.resolveModule(st, packageName, rootPath)

	if len(st.errs) > 0 {
		return root, &ResolutionError{Package: packageName, Errs: st.errs}
	}
	return root, nil
}

// ResolveFile builds a module tree using an arbitrary source file as its own
// root. Test-bench files are resolved this way: each bench is an independent
// build unit whose directives are followed starting from the bench file.
func (r *Resolver) ResolveFile(path string) (*Module, error) {
	name := moduleName(path)

	if !isFile(path) {
		return nil, &RootModuleNotFoundError{Package: name, Path: path}
	}

	st := newResolveState()
	st.paths[name] = path

	root := r.resolveModule(st, name, path)

	if len(st.errs) > 0 {
		return root, &ResolutionError{Package: name, Errs: st.errs}
	}
	return root, nil
}

func newResolveState() *resolveState {
	return &resolveState{
		paths:          make(map[string]string),
		done:           make(map[string]*Module),
		resolving:      make(map[string]bool),
		resolvingNames: make(map[string]bool),
	}
}

// resolveModule scans one source file and recurses into its submodules.
// The file at path is known to exist when this is called.
func (r *Resolver) resolveModule(st *resolveState, name, path string) *Module {
	r.logger().Debug("resolving module", "module", name, "path", path)

	st.resolving[path] = true
	st.resolvingNames[name] = true
	st.chain = append(st.chain, name)
	defer func() {
		delete(st.resolving, path)
		delete(st.resolvingNames, name)
		st.chain = st.chain[:len(st.chain)-1]
	}()

	mod := &Module{Name: name, Path: path}

	f, err := os.Open(path)
	if err != nil {
		st.errs = append(st.errs, fmt.Errorf("read module %q: %w", name, err))
		return mod
	}
	events, err := ScanDirectives(f)
	f.Close()
	if err != nil {
		st.errs = append(st.errs, fmt.Errorf("scan module %q: %w", name, err))
		return mod
	}

	dir := filepath.Dir(path)

	for _, ev := range events {
		switch ev.Kind {
		case Malformed:
			st.errs = append(st.errs, &MalformedDirectiveError{
				File:      path,
				Line:      ev.Line,
				Directive: ev.Directive,
			})

		case TopModuleOverride:
			if mod.TopModule != "" {
				r.logger().Warn("multiple topmodule directives, keeping first",
					"file", path, "line", ev.Line, "ignored", ev.Arg)
				continue
			}
			mod.TopModule = ev.Arg

		case SubmoduleDeclared:
			child := r.resolveSubmodule(st, mod, dir, ev.Arg)
			if child != nil {
				mod.Children = append(mod.Children, child)
			}
		}
	}

	st.done[name] = mod
	return mod
}

// resolveSubmodule handles one submodule directive. It returns nil when the
// directive is erroneous; the error has already been collected and sibling
// directives continue to be processed.
func (r *Resolver) resolveSubmodule(st *resolveState, parent *Module, dir, name string) *Module {
	childPath := filepath.Join(dir, name, name+r.ext())

	if st.resolvingNames[name] || st.resolving[childPath] {
		chain := append(append([]string{}, st.chain...), name)
		st.errs = append(st.errs, &CycleError{Chain: chain})
		return nil
	}

	if first, ok := st.paths[name]; ok && first != childPath {
		st.errs = append(st.errs, &DuplicateModuleError{
			Name:       name,
			FirstPath:  first,
			SecondPath: childPath,
		})
		return nil
	}

	if done, ok := st.done[name]; ok && done.Path == childPath {
		return done
	}

	if !isFile(childPath) {
		st.errs = append(st.errs, &SubmoduleNotFoundError{
			Parent: parent.Name,
			Name:   name,
			Path:   childPath,
		})
		return nil
	}

	st.paths[name] = childPath
	return r.resolveModule(st, name, childPath)
}

func (r *Resolver) ext() string {
	if r.Ext == "" {
		return DefaultExt
	}
	return r.Ext
}

func (r *Resolver) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}

// moduleName derives a module identifier from a source file path.
func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
