// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// It defines error types that carry remediation steps, and a small registry of
// Markdown help cards rendered when a well-known failure class (missing
// manifest, missing compiler, ...) is reported to the user.
package issue
