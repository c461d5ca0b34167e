// SPDX-License-Identifier: MPL-2.0

// Package builder turns a resolved module tree into a synthesizable Verilog
// artifact by driving the external toolchain once per top module.
package builder
