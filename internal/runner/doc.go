// SPDX-License-Identifier: MPL-2.0

// Package runner builds and executes discovered test benches and aggregates
// their results into a report.
//
// Each bench is an isolated failure domain: it is resolved, compiled, and
// simulated independently, with its artifacts namespaced under target/ so
// benches can run with bounded parallelism. Pass/fail is decided solely by
// scanning the simulation's captured stdout for the PassMarker string; exit
// codes are never authoritative. The runner never aborts early, and report
// order always equals discovery order regardless of scheduling.
package runner
