//
//  Copyright © Courseflow Inc. All rights reserved.
//

// Package engine evaluates assessment access-control documents: given a
// rule document, a user context, and an instant, it decides whether access
// is permitted, what percentage of credit applies, and whether questions
// and score remain visible after completion.
//
// The engine is purely functional: every entry point takes immutable
// inputs and returns plain data with no shared mutable state, so
// concurrent evaluations against one [Engine] are safe without locks.
//
// # Quick Start
//
//	rules, err := parsers.Load("infra-exam.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	eng, err := engine.New(rules.Rules)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	access := eng.Access(engine.Context{UserID: "alice"}, time.Now())
//
// [New] validates the document and refuses to construct an engine over an
// invalid one; evaluation entry points panic on documents that bypass that
// gate, since silently picking among duplicate base rules would produce an
// unauditable access decision.
package engine

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/courseflow/accessengine/internal/logging"
	"github.com/courseflow/accessengine/pkg/accessrule"
	"github.com/courseflow/accessengine/pkg/accessrule/validation"
)

var logger = logging.GetLogger("engine")

// Options configures engine construction.
type Options struct {
	// StrictWarnings promotes validation warnings to construction errors.
	// Useful in CI, where an unusual configuration should fail the build
	// rather than ship.
	StrictWarnings bool
}

// OptionsFunc is a function that modifies Options.
type OptionsFunc func(*Options)

// WithStrictWarnings makes [New] reject documents that produce validation
// warnings, not just errors.
func WithStrictWarnings() OptionsFunc {
	return func(o *Options) {
		o.StrictWarnings = true
	}
}

// Engine answers point-in-time access queries for one rule document.
//
// An Engine is safe for concurrent use by multiple goroutines.  It holds
// no state between evaluations; replacing a hot-reloaded document means
// constructing a new Engine, never mutating an existing one.
type Engine struct {
	rules   []accessrule.Rule
	results []validation.Result
}

// New validates a rule document and constructs an engine over it.
//
// Validation findings remain available via [Engine.Validation] even on
// success, so callers can surface warnings.
func New(rules []accessrule.Rule, optionFuncs ...OptionsFunc) (*Engine, error) {
	opts := &Options{}
	for _, o := range optionFuncs {
		o(opts)
	}

	results := validation.Validate(rules)

	failed := false
	for _, result := range results {
		if result.HasErrors() || (opts.StrictWarnings && len(result.Warnings) > 0) {
			failed = true
			break
		}
	}
	if failed {
		return nil, errors.Errorf("rule document failed validation:\n%s",
			strings.Join(validation.Summarize(results), "\n"))
	}

	return &Engine{
		rules:   rules,
		results: results,
	}, nil
}

// Validation returns the validation results computed at construction,
// index-aligned with the rule document.
func (e *Engine) Validation() []validation.Result {
	return e.results
}

// ResolvePolicy merges the document into the effective policy for a
// context.
func (e *Engine) ResolvePolicy(ctx Context) EffectivePolicy {
	return Resolve(e.rules, ctx)
}

// Access computes the access state and applicable credit for a context at
// the given instant.
func (e *Engine) Access(ctx Context, now time.Time) Access {
	return Schedule(e.ResolvePolicy(ctx), now)
}

// Visibility computes question/score visibility for a context.  A nil
// completedAt means the user has not completed the assessment and yields
// full visibility.
func (e *Engine) Visibility(ctx Context, completedAt *time.Time, now time.Time) Visibility {
	return ResolveVisibility(e.ResolvePolicy(ctx), completedAt, now)
}

// Timeline renders the full chronological schedule for a context.
func (e *Engine) Timeline(ctx Context) []Row {
	return Timeline(e.ResolvePolicy(ctx))
}

// Decision is the combined evaluation output for one context and instant,
// shaped for direct serialization.
type Decision struct {
	State            string                         `json:"state"`
	CreditPercent    float64                        `json:"creditPercent"`
	Blocked          bool                           `json:"blocked"`
	QuestionsVisible bool                           `json:"questionsVisible"`
	ScoreVisible     bool                           `json:"scoreVisible"`
	DurationMinutes  *int                           `json:"durationMinutes,omitempty"`
	PasswordRequired bool                           `json:"passwordRequired"`
	PrairieTest      *accessrule.PrairieTestControl `json:"prairieTest,omitempty"`
}

// Decide evaluates access, credit, and visibility in one call.
//
// DurationMinutes is the resolved session bound; tracking session start
// times is the caller's concern.  PrairieTest is reported, not enforced:
// the exam-reservation system's own access window must be ANDed with this
// decision by the caller.
func (e *Engine) Decide(ctx Context, completedAt *time.Time, now time.Time) Decision {
	logger.Debugf("deciding access for user %q at %s", ctx.UserID, now)

	policy := e.ResolvePolicy(ctx)
	access := Schedule(policy, now)
	visibility := ResolveVisibility(policy, completedAt, now)

	decision := Decision{
		State:            access.State.String(),
		CreditPercent:    access.CreditPercent,
		Blocked:          policy.Blocked,
		QuestionsVisible: visibility.QuestionsVisible,
		ScoreVisible:     visibility.ScoreVisible,
		PasswordRequired: policy.DateControl.Password.Enabled,
		PrairieTest:      policy.PrairieTest,
	}
	if policy.DateControl.DurationMinutes.Enabled {
		minutes := policy.DateControl.DurationMinutes.Value
		decision.DurationMinutes = &minutes
	}

	return decision
}
