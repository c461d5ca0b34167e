// SPDX-License-Identifier: MPL-2.0

package modtree

// DefaultTopModule is the conventional entry-point name used when a source
// file carries no `//!topmodule` override.
const DefaultTopModule = "mkTopModule"

// Module is one resolved source file in the module tree.
type Module struct {
	// Name is the module identifier (directory/file stem).
	Name string
	// Path is the resolved path to the module's source file.
	Path string
	// TopModule is the `//!topmodule` override, or empty when the file
	// carries none. Use EffectiveTopModule for the defaulted value.
	TopModule string
	// Children holds submodules in directive declaration order. Order is
	// preserved because compiler argument ordering can be semantically
	// significant for the external toolchain.
	Children []*Module
}

// EffectiveTopModule returns the top-module name to compile with:
// the file's override when present, DefaultTopModule otherwise.
func (m *Module) EffectiveTopModule() string {
	if m.TopModule != "" {
		return m.TopModule
	}
	return DefaultTopModule
}

// Walk visits m and every descendant in preorder (parent before children,
// children in declaration order). Shared submodules are visited once.
func (m *Module) Walk(visit func(*Module)) {
	seen := make(map[string]bool)
	m.walk(visit, seen)
}

func (m *Module) walk(visit func(*Module), seen map[string]bool) {
	if seen[m.Name] {
		return
	}
	seen[m.Name] = true
	visit(m)
	for _, c := range m.Children {
		c.walk(visit, seen)
	}
}

// Files returns every source file reachable from m, deduplicated by module
// identifier, in preorder. This is the file set handed to the compiler.
func (m *Module) Files() []string {
	var files []string
	m.Walk(func(mod *Module) {
		files = append(files, mod.Path)
	})
	return files
}

// Count returns the number of distinct modules reachable from m.
func (m *Module) Count() int {
	n := 0
	m.Walk(func(*Module) { n++ })
	return n
}
