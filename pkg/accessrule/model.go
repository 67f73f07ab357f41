//
//  Copyright © Courseflow Inc. All rights reserved.
//

// Package accessrule provides types for representing parsed assessment
// access-control rules.
//
// Rule documents are defined in YAML files and loaded via the [parsers]
// package.  This package contains the typed model consumed by the
// [validation] package and the engine; it carries no behavior beyond
// construction helpers.
//
// # Key Types
//
//   - [Rule]: one policy document entry, base or override
//   - [Target]: closed sum over base/individuals/groups/labels targeting
//   - [Overridable]: a field value paired with its override/enable flags
//   - [DateControl]: release, deadlines, and credit tiers
//   - [AfterComplete]: question/score visibility after completion
//
// Rule documents are immutable inputs: they are constructed once by the
// parser and never mutated by the engine.  Callers that hot-reload
// documents must swap the whole slice, never mutate in place.
package accessrule

import "github.com/google/uuid"

// Target selects which evaluation contexts a rule applies to.  Exactly one
// of the concrete types [BaseTarget], [IndividualsTarget], [GroupsTarget],
// or [LabelsTarget] implements it, making "no two target kinds set at once"
// a type-level invariant.
type Target interface {
	// Kind returns the target discriminator: "base", "individuals",
	// "groups", or "labels".
	Kind() string
}

// BaseTarget marks the single assignment-level rule that supplies default
// values for every overridable field.
type BaseTarget struct{}

// Kind implements [Target].
func (BaseTarget) Kind() string { return "base" }

// IndividualsTarget selects specific users by ID.
type IndividualsTarget struct {
	UserIDs []string
}

// Kind implements [Target].
func (IndividualsTarget) Kind() string { return "individuals" }

// GroupsTarget selects users by membership in any of the listed groups.
type GroupsTarget struct {
	GroupIDs []string
}

// Kind implements [Target].
func (GroupsTarget) Kind() string { return "groups" }

// LabelsTarget selects users carrying any of the listed labels.
type LabelsTarget struct {
	Labels []string
}

// Kind implements [Target].
func (LabelsTarget) Kind() string { return "labels" }

// Overridable carries a field value together with its override semantics.
//
// Overridden means this rule explicitly sets the field, as opposed to
// inheriting it from the base.  Enabled means the feature the field
// represents is turned on.  A field can be overridden specifically to
// disable a feature (Overridden true, Enabled false), which is distinct
// from not mentioning the field at all.
type Overridable[T any] struct {
	Overridden bool
	Enabled    bool
	Value      T
}

// Set constructs an Overridable that explicitly enables a field with the
// given value.
func Set[T any](value T) Overridable[T] {
	return Overridable[T]{Overridden: true, Enabled: true, Value: value}
}

// Unset constructs an Overridable that explicitly disables a field.
func Unset[T any]() Overridable[T] {
	return Overridable[T]{Overridden: true}
}

// DeadlineEntry associates a credit percentage with a deadline instant.
// Credit above 100 denotes bonus credit and is explicitly permitted;
// negative credit is a validation error.
type DeadlineEntry struct {
	Date   Instant
	Credit float64
}

// AfterLastDeadline controls behavior once every configured deadline has
// passed.  A nil Credit means zero credit.
type AfterLastDeadline struct {
	AllowSubmissions bool
	Credit           *float64
}

// DateControl is the date/credit half of a rule.  Deadline sequences need
// not be sorted in the source document; the scheduler orders them by
// timestamp before use.
type DateControl struct {
	ReleaseDate       Overridable[Instant]
	DueDate           Overridable[Instant]
	EarlyDeadlines    Overridable[[]DeadlineEntry]
	LateDeadlines     Overridable[[]DeadlineEntry]
	AfterLastDeadline Overridable[AfterLastDeadline]
	DurationMinutes   Overridable[int]
	Password          Overridable[string]
}

// QuestionVisibility controls whether questions are hidden after a user
// completes the assessment, with an optional reveal window.
type QuestionVisibility struct {
	HideQuestions bool
	ShowAgainDate Instant
	HideAgainDate Instant
}

// ScoreVisibility controls whether the score is hidden after completion.
// Once revealed by ShowAgainDate, a score stays revealed.
type ScoreVisibility struct {
	HideScore     bool
	ShowAgainDate Instant
}

// AfterComplete is the after-completion visibility half of a rule.
type AfterComplete struct {
	QuestionVisibility Overridable[QuestionVisibility]
	ScoreVisibility    Overridable[ScoreVisibility]
}

// ExamLink ties a rule to one exam in the external exam-reservation system.
type ExamLink struct {
	ExamUUID uuid.UUID
	ReadOnly bool
}

// PrairieTestControl links a rule to exam-system access windows.  The
// engine resolves and reports this control; enforcement of the exam
// system's own window is the caller's responsibility.
type PrairieTestControl struct {
	Enabled bool
	Exams   []ExamLink
}

// Rule is one entry of an access-control document.  A document contains
// exactly one rule with a [BaseTarget] plus zero or more override rules.
//
// A disabled rule is inert: it never matches any context and its overrides
// are ignored.
type Rule struct {
	Target        Target
	Enabled       bool
	BlockAccess   bool
	DateControl   DateControl
	PrairieTest   *PrairieTestControl
	AfterComplete AfterComplete
}

// IsBase reports whether the rule is the assignment-level rule.
func (r Rule) IsBase() bool {
	_, ok := r.Target.(BaseTarget)
	return ok
}

// Document is one parsed access-rule document: an ordered rule list under a
// name.  Rule order is significant; the merge resolver scans overrides in
// document order.
type Document struct {
	Name  string
	Rules []Rule
}
