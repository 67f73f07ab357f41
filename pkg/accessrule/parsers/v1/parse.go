//
//  Copyright © Courseflow Inc. All rights reserved.
//

// Package v1 parses the accessengine.io/v1 AccessRuleSet YAML schema.
//
// Overridable fields distinguish three wire states: an absent key inherits
// from the assignment-level rule, an explicit null overrides the field to
// disabled, and a value overrides it to enabled.  Date-times are accepted
// with or without a seconds component; a missing seconds component is
// normalized to ":00" at parse time.  Malformed date-times do not fail the
// load — they are preserved for the structural validator, which reports
// them with a precise field path.
package v1

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/courseflow/accessengine/pkg/accessrule"
)

// override tracks the three wire states of an overridable field: absent,
// explicit null, or valued.  UnmarshalYAML only runs when the key is
// present, which is what distinguishes absent from null.
type override[T any] struct {
	present bool
	null    bool
	value   T
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *override[T]) UnmarshalYAML(node *yaml.Node) error {
	o.present = true
	if node.Tag == "!!null" {
		o.null = true
		return nil
	}
	return node.Decode(&o.value)
}

// DeadlineEntry is one deadline/credit pair in v1 format.
type DeadlineEntry struct {
	Date   string  `yaml:"date"`
	Credit float64 `yaml:"credit"`
}

// AfterLastDeadline is the post-deadline behavior in v1 format.
type AfterLastDeadline struct {
	AllowSubmissions bool     `yaml:"allowSubmissions"`
	Credit           *float64 `yaml:"credit"`
}

// DateControl is the date/credit section in v1 format.
type DateControl struct {
	ReleaseDate       override[string]            `yaml:"releaseDate"`
	DueDate           override[string]            `yaml:"dueDate"`
	EarlyDeadlines    override[[]DeadlineEntry]   `yaml:"earlyDeadlines"`
	LateDeadlines     override[[]DeadlineEntry]   `yaml:"lateDeadlines"`
	AfterLastDeadline override[AfterLastDeadline] `yaml:"afterLastDeadline"`
	DurationMinutes   override[int]               `yaml:"durationMinutes"`
	Password          override[string]            `yaml:"password"`
}

// QuestionVisibility is the question-visibility policy in v1 format.
type QuestionVisibility struct {
	HideQuestions bool   `yaml:"hideQuestions"`
	ShowAgainDate string `yaml:"showAgainDate"`
	HideAgainDate string `yaml:"hideAgainDate"`
}

// ScoreVisibility is the score-visibility policy in v1 format.
type ScoreVisibility struct {
	HideScore     bool   `yaml:"hideScore"`
	ShowAgainDate string `yaml:"showAgainDate"`
}

// AfterComplete is the after-completion section in v1 format.
type AfterComplete struct {
	QuestionVisibility override[QuestionVisibility] `yaml:"questionVisibility"`
	ScoreVisibility    override[ScoreVisibility]    `yaml:"scoreVisibility"`
}

// Exam links a rule to one exam reservation in v1 format.
type Exam struct {
	ExamUUID string `yaml:"examUuid"`
	ReadOnly bool   `yaml:"readOnly"`
}

// PrairieTest is the exam-system link section in v1 format.
type PrairieTest struct {
	Enabled bool   `yaml:"enabled"`
	Exams   []Exam `yaml:"exams"`
}

// appliesTo is the target discriminator: the scalar "base" or a mapping
// with exactly one of individuals/groups/labels.
type appliesTo struct {
	base        bool
	individuals []string
	groups      []string
	labels      []string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *appliesTo) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		if s != "base" {
			return fmt.Errorf("appliesTo: expected \"base\" or a target mapping, got %q", s)
		}
		a.base = true
		return nil
	}

	var target struct {
		Individuals []string `yaml:"individuals"`
		Groups      []string `yaml:"groups"`
		Labels      []string `yaml:"labels"`
	}
	if err := node.Decode(&target); err != nil {
		return err
	}

	set := 0
	if len(target.Individuals) > 0 {
		set++
	}
	if len(target.Groups) > 0 {
		set++
	}
	if len(target.Labels) > 0 {
		set++
	}
	if set != 1 {
		return fmt.Errorf("appliesTo: exactly one of individuals, groups, or labels must be set")
	}

	a.individuals = target.Individuals
	a.groups = target.Groups
	a.labels = target.Labels
	return nil
}

// Rule is one document entry in v1 format.  Enabled defaults to true when
// omitted.
type Rule struct {
	AppliesTo     appliesTo     `yaml:"appliesTo"`
	Enabled       *bool         `yaml:"enabled"`
	BlockAccess   bool          `yaml:"blockAccess"`
	DateControl   DateControl   `yaml:"dateControl"`
	PrairieTest   *PrairieTest  `yaml:"prairieTest"`
	AfterComplete AfterComplete `yaml:"afterComplete"`
}

// RuleSet represents the v1 YAML document structure.
type RuleSet struct {
	Metadata struct {
		Name string `yaml:"name"`
	} `yaml:"metadata"`
	Spec struct {
		Rules []Rule `yaml:"rules"`
	} `yaml:"spec"`
}

func exportTarget(a appliesTo) accessrule.Target {
	switch {
	case a.base:
		return accessrule.BaseTarget{}
	case len(a.individuals) > 0:
		return accessrule.IndividualsTarget{UserIDs: a.individuals}
	case len(a.groups) > 0:
		return accessrule.GroupsTarget{GroupIDs: a.groups}
	default:
		return accessrule.LabelsTarget{Labels: a.labels}
	}
}

// exportField maps the wire states onto override semantics: absent means
// not overridden, null means overridden-disabled, valued means
// overridden-enabled.
func exportField[W, M any](o override[W], convert func(W) M) accessrule.Overridable[M] {
	field := accessrule.Overridable[M]{
		Overridden: o.present,
		Enabled:    o.present && !o.null,
	}
	if field.Enabled {
		field.Value = convert(o.value)
	}
	return field
}

func exportInstant(o override[string]) accessrule.Overridable[accessrule.Instant] {
	return exportField(o, accessrule.ParseInstant)
}

func exportDeadlines(o override[[]DeadlineEntry]) accessrule.Overridable[[]accessrule.DeadlineEntry] {
	return exportField(o, func(entries []DeadlineEntry) []accessrule.DeadlineEntry {
		out := make([]accessrule.DeadlineEntry, 0, len(entries))
		for _, entry := range entries {
			out = append(out, accessrule.DeadlineEntry{
				Date:   accessrule.ParseInstant(entry.Date),
				Credit: entry.Credit,
			})
		}
		return out
	})
}

func exportDateControl(def DateControl) accessrule.DateControl {
	return accessrule.DateControl{
		ReleaseDate:    exportInstant(def.ReleaseDate),
		DueDate:        exportInstant(def.DueDate),
		EarlyDeadlines: exportDeadlines(def.EarlyDeadlines),
		LateDeadlines:  exportDeadlines(def.LateDeadlines),
		AfterLastDeadline: exportField(def.AfterLastDeadline, func(v AfterLastDeadline) accessrule.AfterLastDeadline {
			return accessrule.AfterLastDeadline{
				AllowSubmissions: v.AllowSubmissions,
				Credit:           v.Credit,
			}
		}),
		DurationMinutes: exportField(def.DurationMinutes, func(v int) int { return v }),
		Password:        exportField(def.Password, func(v string) string { return v }),
	}
}

func exportAfterComplete(def AfterComplete) accessrule.AfterComplete {
	return accessrule.AfterComplete{
		QuestionVisibility: exportField(def.QuestionVisibility, func(v QuestionVisibility) accessrule.QuestionVisibility {
			return accessrule.QuestionVisibility{
				HideQuestions: v.HideQuestions,
				ShowAgainDate: accessrule.ParseInstant(v.ShowAgainDate),
				HideAgainDate: accessrule.ParseInstant(v.HideAgainDate),
			}
		}),
		ScoreVisibility: exportField(def.ScoreVisibility, func(v ScoreVisibility) accessrule.ScoreVisibility {
			return accessrule.ScoreVisibility{
				HideScore:     v.HideScore,
				ShowAgainDate: accessrule.ParseInstant(v.ShowAgainDate),
			}
		}),
	}
}

func exportPrairieTest(def *PrairieTest) (*accessrule.PrairieTestControl, error) {
	if def == nil {
		return nil, nil
	}

	exams := make([]accessrule.ExamLink, 0, len(def.Exams))
	for i, exam := range def.Exams {
		id, err := uuid.Parse(exam.ExamUUID)
		if err != nil {
			return nil, errors.Wrapf(err, "exams[%d].examUuid", i)
		}
		exams = append(exams, accessrule.ExamLink{
			ExamUUID: id,
			ReadOnly: exam.ReadOnly,
		})
	}

	return &accessrule.PrairieTestControl{
		Enabled: def.Enabled,
		Exams:   exams,
	}, nil
}

func exportRule(def Rule) (*accessrule.Rule, error) {
	prairieTest, err := exportPrairieTest(def.PrairieTest)
	if err != nil {
		return nil, errors.Wrap(err, "prairieTest")
	}

	enabled := true
	if def.Enabled != nil {
		enabled = *def.Enabled
	}

	return &accessrule.Rule{
		Target:        exportTarget(def.AppliesTo),
		Enabled:       enabled,
		BlockAccess:   def.BlockAccess,
		DateControl:   exportDateControl(def.DateControl),
		PrairieTest:   prairieTest,
		AfterComplete: exportAfterComplete(def.AfterComplete),
	}, nil
}

// Parse parses a v1 AccessRuleSet document from raw YAML.
func Parse(data []byte) (*accessrule.Document, error) {
	var ruleset RuleSet
	if err := yaml.Unmarshal(data, &ruleset); err != nil {
		return nil, err
	}

	rules := make([]accessrule.Rule, 0, len(ruleset.Spec.Rules))
	for i, def := range ruleset.Spec.Rules {
		rule, err := exportRule(def)
		if err != nil {
			return nil, errors.Wrapf(err, "rules[%d]", i)
		}
		rules = append(rules, *rule)
	}

	return &accessrule.Document{
		Name:  ruleset.Metadata.Name,
		Rules: rules,
	}, nil
}
