// SPDX-License-Identifier: MPL-2.0

// Package modtree resolves a project's module structure from comment
// directives embedded in BSV source files.
//
// A module is a single .bsv source file. A file declares its submodules with
// `//!submodule <name>` lines and may override its synthesis entry point with
// `//!topmodule <name>`. Resolution starts at src/<package>.bsv and follows
// submodule directives recursively, producing an ordered tree.
//
// File organization:
//   - directive.go: line-oriented directive scanner (pure, no filesystem)
//   - module.go: the resolved Module tree and traversal helpers
//   - resolver.go: filesystem resolution, cycle and duplicate detection
//   - errors.go: the resolution error taxonomy
package modtree
