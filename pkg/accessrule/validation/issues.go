//
//  Copyright © Courseflow Inc. All rights reserved.
//

// Package validation checks access-rule documents against document-level
// invariants and reports structured errors and warnings.
//
// Validation is a gate, not a filter: it never mutates the input, never
// panics, and always returns one [Result] per rule so that callers can
// present every problem at once.  Errors carry a structured [Path] (for
// example "dateControl.earlyDeadlines.0.date") so UIs can map them back to
// form fields.
package validation

import (
	"fmt"
	"strings"
)

// Path locates an issue within a rule as a sequence of field names and
// slice indices, e.g. Path{"dateControl", "earlyDeadlines", 0, "date"}.
// An empty Path denotes a document-level issue.
type Path []any

// String renders the path with dot separators: "dateControl.earlyDeadlines.0.date".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		parts[i] = fmt.Sprint(seg)
	}
	return strings.Join(parts, ".")
}

func (p Path) child(segments ...any) Path {
	next := make(Path, 0, len(p)+len(segments))
	next = append(next, p...)
	return append(next, segments...)
}

// Issue is a single validation finding at a specific location.
type Issue struct {
	Path    Path
	Message string
}

// String renders the issue as "path: message", or just the message for
// document-level issues.
func (i Issue) String() string {
	if len(i.Path) == 0 {
		return i.Message
	}
	return i.Path.String() + ": " + i.Message
}

// Result holds the findings for one rule.  Results are index-aligned with
// the input rule slice; index 0 is the conventional location for
// document-level issues such as a missing or duplicate assignment-level
// rule.
type Result struct {
	Errors   []Issue
	Warnings []Issue
}

// HasErrors reports whether the result contains any errors.
func (r Result) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r *Result) addError(path Path, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) addWarning(path Path, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

// Summarize flattens results into printable lines, prefixing each with its
// rule index.  Intended for CLI and log output.
func Summarize(results []Result) []string {
	var lines []string
	for i, result := range results {
		for _, issue := range result.Errors {
			lines = append(lines, fmt.Sprintf("rule %d: error: %s", i, issue))
		}
		for _, issue := range result.Warnings {
			lines = append(lines, fmt.Sprintf("rule %d: warning: %s", i, issue))
		}
	}
	return lines
}
