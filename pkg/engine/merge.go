//
//  Copyright © Courseflow Inc. All rights reserved.
//

package engine

import (
	"github.com/mohae/deepcopy"

	"github.com/courseflow/accessengine/pkg/accessrule"
)

// EffectivePolicy is the fully merged, context-specific policy produced by
// [Resolve].  All override semantics have been resolved; consumers read the
// Enabled flags and values directly.
type EffectivePolicy struct {
	Blocked       bool
	DateControl   accessrule.DateControl
	AfterComplete accessrule.AfterComplete
	PrairieTest   *accessrule.PrairieTestControl
}

// Resolve merges the assignment-level rule with all matching override rules
// into one effective policy for the given context.
//
// The merge is an ordered scan with last-match-wins at field granularity:
// starting from the base rule's values, each override rule that matches the
// context replaces exactly the fields it explicitly sets (Overridden), in
// document order.  This lets one override extend a student's duration while
// a separate label-based override changes the password, without the two
// being merged manually into a single entry.
//
// BlockAccess is a pseudo-field: any matching rule that sets it blocks the
// policy outright.
//
// The rule document is never aliased; base values are deep-copied so that
// concurrent evaluations can share one document safely.
//
// Resolve panics if the document does not contain exactly one base rule.
// Documents must pass validation before evaluation; anything else is an
// upstream bug, and silently picking a base would make the access decision
// non-deterministic and unauditable.
func Resolve(rules []accessrule.Rule, ctx Context) EffectivePolicy {
	base := mustFindBase(rules)

	var policy EffectivePolicy
	if base.Enabled {
		policy.Blocked = base.BlockAccess
		policy.DateControl = deepcopy.Copy(base.DateControl).(accessrule.DateControl)
		policy.AfterComplete = deepcopy.Copy(base.AfterComplete).(accessrule.AfterComplete)
		if base.PrairieTest != nil {
			policy.PrairieTest = deepcopy.Copy(base.PrairieTest).(*accessrule.PrairieTestControl)
		}
	}

	for _, rule := range rules {
		if rule.IsBase() || !Matches(rule, ctx) {
			continue
		}

		if rule.BlockAccess {
			policy.Blocked = true
		}

		mergeDateControl(&policy.DateControl, rule.DateControl)
		mergeAfterComplete(&policy.AfterComplete, rule.AfterComplete)

		if rule.PrairieTest != nil {
			policy.PrairieTest = deepcopy.Copy(rule.PrairieTest).(*accessrule.PrairieTestControl)
		}
	}

	return policy
}

func mustFindBase(rules []accessrule.Rule) accessrule.Rule {
	var base accessrule.Rule
	count := 0
	for _, rule := range rules {
		if rule.IsBase() {
			base = rule
			count++
		}
	}
	if count != 1 {
		panic("access rule document does not contain exactly one assignment-level rule; evaluate only validated documents")
	}
	return base
}

// applyOverride replaces dst when the override explicitly sets the field.
// Values are deep-copied so the effective policy never aliases the source
// document.
func applyOverride[T any](dst *accessrule.Overridable[T], override accessrule.Overridable[T]) {
	if !override.Overridden {
		return
	}
	dst.Overridden = true
	dst.Enabled = override.Enabled
	dst.Value = deepcopy.Copy(override.Value).(T)
}

func mergeDateControl(dst *accessrule.DateControl, override accessrule.DateControl) {
	applyOverride(&dst.ReleaseDate, override.ReleaseDate)
	applyOverride(&dst.DueDate, override.DueDate)
	applyOverride(&dst.EarlyDeadlines, override.EarlyDeadlines)
	applyOverride(&dst.LateDeadlines, override.LateDeadlines)
	applyOverride(&dst.AfterLastDeadline, override.AfterLastDeadline)
	applyOverride(&dst.DurationMinutes, override.DurationMinutes)
	applyOverride(&dst.Password, override.Password)
}

func mergeAfterComplete(dst *accessrule.AfterComplete, override accessrule.AfterComplete) {
	applyOverride(&dst.QuestionVisibility, override.QuestionVisibility)
	applyOverride(&dst.ScoreVisibility, override.ScoreVisibility)
}
