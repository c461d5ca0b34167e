// SPDX-License-Identifier: MPL-2.0

// Package toolchain abstracts the external Bluespec compiler/simulator.
//
// The build orchestrator and test runner only speak to the Toolchain
// interface, so they are testable against the in-memory Fake without a bsc
// installation. The Bsc implementation shells out to the real compiler with
// captured output; it never attaches child processes to the terminal because
// pass/fail classification scans the captured stream.
package toolchain
