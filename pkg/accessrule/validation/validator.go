//
//  Copyright © Courseflow Inc. All rights reserved.
//

package validation

import (
	"github.com/courseflow/accessengine/pkg/accessrule"
)

// Validate checks a rule document and returns one [Result] per rule.
//
// For an empty document a single Result is still returned so that the
// missing-base error has somewhere to live.  Validate never mutates the
// input and never panics; evaluation of a document that fails validation
// is a caller bug.
func Validate(rules []accessrule.Rule) []Result {
	n := len(rules)
	if n == 0 {
		n = 1
	}
	results := make([]Result, n)

	validateBaseCount(rules, results)

	for i, rule := range rules {
		validateDates(rule, &results[i])
		validateCredits(rule, &results[i])
		warnPrairieTestPatterns(rule, &results[i])
	}

	if base, ok := findSingleBase(rules); ok {
		for i, rule := range rules {
			if rule.IsBase() {
				continue
			}
			warnRedundantOverrides(base, rule, &results[i])
		}
	}

	return results
}

// validateBaseCount enforces the exactly-one-base invariant, attaching
// document-level findings to index 0.
func validateBaseCount(rules []accessrule.Rule, results []Result) {
	count := 0
	for _, rule := range rules {
		if rule.IsBase() {
			count++
		}
	}

	switch {
	case count == 0:
		results[0].addError(nil, "No assignment-level rule found")
	case count > 1:
		results[0].addError(nil, "Found %d assignment-level rules", count)
	}
}

func findSingleBase(rules []accessrule.Rule) (accessrule.Rule, bool) {
	var base accessrule.Rule
	count := 0
	for _, rule := range rules {
		if rule.IsBase() {
			base = rule
			count++
		}
	}
	return base, count == 1
}

func checkInstant(result *Result, path Path, field accessrule.Overridable[accessrule.Instant]) {
	checkRawInstant(result, path, field.Enabled, field.Value)
}

func checkRawInstant(result *Result, path Path, enabled bool, value accessrule.Instant) {
	if value.Valid {
		return
	}
	if value.IsZero() {
		if enabled {
			result.addError(path, "date-time is required")
		}
		return
	}
	result.addError(path, "not a valid date-time: %q", value.String())
}

func checkDeadlines(result *Result, path Path, field accessrule.Overridable[[]accessrule.DeadlineEntry]) {
	if !field.Enabled {
		return
	}
	for i, entry := range field.Value {
		checkRawInstant(result, path.child(i, "date"), true, entry.Date)
	}
}

func validateDates(rule accessrule.Rule, result *Result) {
	dc := Path{"dateControl"}
	checkInstant(result, dc.child("releaseDate"), rule.DateControl.ReleaseDate)
	checkInstant(result, dc.child("dueDate"), rule.DateControl.DueDate)
	checkDeadlines(result, dc.child("earlyDeadlines"), rule.DateControl.EarlyDeadlines)
	checkDeadlines(result, dc.child("lateDeadlines"), rule.DateControl.LateDeadlines)

	ac := Path{"afterComplete"}
	if qv := rule.AfterComplete.QuestionVisibility; qv.Enabled {
		base := ac.child("questionVisibility")
		if !qv.Value.ShowAgainDate.IsZero() {
			checkRawInstant(result, base.child("showAgainDate"), true, qv.Value.ShowAgainDate)
		}
		if !qv.Value.HideAgainDate.IsZero() {
			checkRawInstant(result, base.child("hideAgainDate"), true, qv.Value.HideAgainDate)
		}
	}
	if sv := rule.AfterComplete.ScoreVisibility; sv.Enabled {
		if !sv.Value.ShowAgainDate.IsZero() {
			checkRawInstant(result, ac.child("scoreVisibility", "showAgainDate"), true, sv.Value.ShowAgainDate)
		}
	}
}

// validateCredits rejects negative credit.  Credit above 100 is valid
// bonus-credit configuration and is never clamped.
func validateCredits(rule accessrule.Rule, result *Result) {
	dc := Path{"dateControl"}

	checkDeadlineCredits := func(path Path, field accessrule.Overridable[[]accessrule.DeadlineEntry]) {
		if !field.Enabled {
			return
		}
		for i, entry := range field.Value {
			if entry.Credit < 0 {
				result.addError(path.child(i, "credit"), "credit must not be negative")
			}
		}
	}

	checkDeadlineCredits(dc.child("earlyDeadlines"), rule.DateControl.EarlyDeadlines)
	checkDeadlineCredits(dc.child("lateDeadlines"), rule.DateControl.LateDeadlines)

	if ald := rule.DateControl.AfterLastDeadline; ald.Enabled && ald.Value.Credit != nil && *ald.Value.Credit < 0 {
		result.addError(dc.child("afterLastDeadline", "credit"), "credit must not be negative")
	}
}

// warnPrairieTestPatterns flags valid-but-unusual PrairieTest combinations
// that no canonical configuration exercises.  These never block evaluation.
func warnPrairieTestPatterns(rule accessrule.Rule, result *Result) {
	if rule.PrairieTest == nil || !rule.PrairieTest.Enabled {
		return
	}

	if _, ok := rule.Target.(accessrule.IndividualsTarget); ok {
		result.addWarning(Path{"prairieTest"},
			"PrairieTest-linked rules targeting individuals are not covered by canonical configurations")
	}

	if len(rule.PrairieTest.Exams) == 0 {
		result.addWarning(Path{"prairieTest", "exams"}, "PrairieTest control enabled without linked exams")
	}
}

// warnRedundantOverrides flags override fields whose value is identical to
// the assignment-level rule, which usually indicates a stale edit.
func warnRedundantOverrides(base, rule accessrule.Rule, result *Result) {
	dc := Path{"dateControl"}

	if f, b := rule.DateControl.DurationMinutes, base.DateControl.DurationMinutes; f.Overridden && f.Enabled == b.Enabled && f.Value == b.Value {
		result.addWarning(dc.child("durationMinutes"), "override is identical to the assignment-level rule")
	}
	if f, b := rule.DateControl.Password, base.DateControl.Password; f.Overridden && f.Enabled == b.Enabled && f.Value == b.Value {
		result.addWarning(dc.child("password"), "override is identical to the assignment-level rule")
	}
	if f, b := rule.DateControl.ReleaseDate, base.DateControl.ReleaseDate; f.Overridden && f.Enabled == b.Enabled && f.Value.String() == b.Value.String() {
		result.addWarning(dc.child("releaseDate"), "override is identical to the assignment-level rule")
	}
	if f, b := rule.DateControl.DueDate, base.DateControl.DueDate; f.Overridden && f.Enabled == b.Enabled && f.Value.String() == b.Value.String() {
		result.addWarning(dc.child("dueDate"), "override is identical to the assignment-level rule")
	}
}
