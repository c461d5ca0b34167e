// SPDX-License-Identifier: MPL-2.0

// Package discovery finds and classifies test benches for a resolved module
// tree.
//
// Unit benches are siblings of the module they test, named with the _tb
// suffix (alu.bsv -> alu_tb.bsv). Integration benches are every file placed
// directly under the project's tests/ directory; each one is an independent
// build root with its own directives. The two groups are disjoint by
// directory, so no cross-deduplication is needed.
package discovery
