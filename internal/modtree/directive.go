// SPDX-License-Identifier: MPL-2.0

package modtree

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// Directive prefixes recognized in BSV source comments.
const (
	// SubmodulePrefix declares a child module directory/name.
	SubmodulePrefix = "//!submodule"
	// TopModulePrefix overrides the default top-module name for the file.
	TopModulePrefix = "//!topmodule"
)

// Event kinds emitted by ScanDirectives.
const (
	// SubmoduleDeclared is a well-formed `//!submodule <name>` line.
	SubmoduleDeclared EventKind = iota + 1
	// TopModuleOverride is a well-formed `//!topmodule <name>` line.
	TopModuleOverride
	// Malformed is a directive prefix with no argument token.
	Malformed
)

type (
	// EventKind identifies the kind of a scanned directive event.
	EventKind int

	// Event is one directive occurrence found while scanning a source file.
	// Events are emitted in line order, which is significant: submodule
	// declaration order becomes child order in the resolved tree.
	Event struct {
		// Kind is the event kind.
		Kind EventKind
		// Arg is the whitespace-delimited identifier following the prefix.
		// Empty for Malformed events.
		Arg string
		// Directive is the matched prefix (SubmodulePrefix or TopModulePrefix).
		Directive string
		// Line is the 1-based line number of the directive.
		Line int
	}
)

// String returns a human-readable event kind name.
func (k EventKind) String() string {
	switch k {
	case SubmoduleDeclared:
		return "submodule"
	case TopModuleOverride:
		return "topmodule"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// ScanDirectives scans source text line by line and returns every directive
// event in order of appearance. A directive is matched by its fixed prefix
// followed by a whitespace-delimited argument; it may appear anywhere on the
// line, so ordinary code before the comment marker does not hide it. Lines
// without a directive prefix are ignored. A prefix with a missing argument
// yields a Malformed event rather than stopping the scan.
func ScanDirectives(r io.Reader) ([]Event, error) {
	var events []Event

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		for _, prefix := range []string{SubmodulePrefix, TopModulePrefix} {
			ev, ok := matchDirective(line, prefix, lineNo)
			if ok {
				events = append(events, ev)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// matchDirective checks one line for one directive prefix.
func matchDirective(line, prefix string, lineNo int) (Event, bool) {
	idx := strings.Index(line, prefix)
	if idx < 0 {
		return Event{}, false
	}

	rest := line[idx+len(prefix):]

	// The prefix must end at a token boundary: `//!submodules foo` is not a
	// submodule directive.
	if rest != "" && !unicode.IsSpace(rune(rest[0])) {
		return Event{}, false
	}

	kind := SubmoduleDeclared
	if prefix == TopModulePrefix {
		kind = TopModuleOverride
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return Event{Kind: Malformed, Directive: prefix, Line: lineNo}, true
	}

	return Event{Kind: kind, Arg: fields[0], Directive: prefix, Line: lineNo}, true
}
