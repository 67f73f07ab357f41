//
//  Copyright © Courseflow Inc. All rights reserved.
//

package validation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseflow/accessengine/pkg/accessrule"
)

func baseRule() accessrule.Rule {
	return accessrule.Rule{
		Target:  accessrule.BaseTarget{},
		Enabled: true,
		DateControl: accessrule.DateControl{
			ReleaseDate: accessrule.Set(accessrule.ParseInstant("2024-03-14T00:01")),
			DueDate:     accessrule.Set(accessrule.ParseInstant("2024-03-21T23:59")),
		},
	}
}

func TestValidateAcceptsCanonicalDocument(t *testing.T) {
	rules := []accessrule.Rule{
		baseRule(),
		{
			Target:  accessrule.IndividualsTarget{UserIDs: []string{"alice"}},
			Enabled: true,
			DateControl: accessrule.DateControl{
				DurationMinutes: accessrule.Set(90),
			},
		},
	}

	results := Validate(rules)
	require.Len(t, results, 2)
	for _, result := range results {
		assert.Empty(t, result.Errors)
		assert.Empty(t, result.Warnings)
	}
}

func TestValidateMissingBaseRule(t *testing.T) {
	rules := []accessrule.Rule{
		{Target: accessrule.GroupsTarget{GroupIDs: []string{"section-a"}}, Enabled: true},
	}

	results := Validate(rules)
	require.Len(t, results, 1)
	require.Len(t, results[0].Errors, 1)
	assert.Equal(t, "No assignment-level rule found", results[0].Errors[0].Message)
}

func TestValidateEmptyDocument(t *testing.T) {
	results := Validate(nil)
	require.Len(t, results, 1)
	require.True(t, results[0].HasErrors())
	assert.Contains(t, results[0].Errors[0].Message, "No assignment-level rule found")
}

func TestValidateDuplicateBaseRules(t *testing.T) {
	rules := []accessrule.Rule{baseRule(), baseRule(), baseRule()}

	results := Validate(rules)
	require.Len(t, results, 3)
	require.Len(t, results[0].Errors, 1)
	assert.Equal(t, "Found 3 assignment-level rules", results[0].Errors[0].Message)
	assert.Empty(t, results[1].Errors)
	assert.Empty(t, results[2].Errors)
}

func TestValidateMalformedDeadlineDatePath(t *testing.T) {
	rule := baseRule()
	rule.DateControl.EarlyDeadlines = accessrule.Set([]accessrule.DeadlineEntry{
		{Date: accessrule.ParseInstant("yesterday-ish"), Credit: 120},
	})

	results := Validate([]accessrule.Rule{rule})
	require.Len(t, results, 1)
	require.Len(t, results[0].Errors, 1)

	issue := results[0].Errors[0]
	assert.Equal(t, Path{"dateControl", "earlyDeadlines", 0, "date"}, issue.Path)
	assert.Equal(t, "dateControl.earlyDeadlines.0.date", issue.Path.String())
	assert.Contains(t, issue.Message, "yesterday-ish")
}

func TestValidateEnabledDateWithoutValue(t *testing.T) {
	rule := baseRule()
	rule.DateControl.DueDate = accessrule.Overridable[accessrule.Instant]{Overridden: true, Enabled: true}

	results := Validate([]accessrule.Rule{rule})
	require.Len(t, results[0].Errors, 1)
	assert.Equal(t, "dateControl.dueDate", results[0].Errors[0].Path.String())
}

func TestValidateNegativeCredit(t *testing.T) {
	rule := baseRule()
	rule.DateControl.LateDeadlines = accessrule.Set([]accessrule.DeadlineEntry{
		{Date: accessrule.ParseInstant("2024-03-23T23:59"), Credit: 80},
		{Date: accessrule.ParseInstant("2024-03-25T23:59"), Credit: -10},
	})

	results := Validate([]accessrule.Rule{rule})
	require.Len(t, results[0].Errors, 1)
	assert.Equal(t, "dateControl.lateDeadlines.1.credit", results[0].Errors[0].Path.String())
}

func TestValidateBonusCreditIsAllowed(t *testing.T) {
	rule := baseRule()
	rule.DateControl.EarlyDeadlines = accessrule.Set([]accessrule.DeadlineEntry{
		{Date: accessrule.ParseInstant("2024-03-17T23:59"), Credit: 120},
	})

	results := Validate([]accessrule.Rule{rule})
	assert.Empty(t, results[0].Errors)
}

func TestValidateAfterCompleteDates(t *testing.T) {
	rule := baseRule()
	rule.AfterComplete.QuestionVisibility = accessrule.Set(accessrule.QuestionVisibility{
		HideQuestions: true,
		ShowAgainDate: accessrule.ParseInstant("bogus"),
	})

	results := Validate([]accessrule.Rule{rule})
	require.Len(t, results[0].Errors, 1)
	assert.Equal(t, "afterComplete.questionVisibility.showAgainDate", results[0].Errors[0].Path.String())
}

func TestValidatePrairieTestIndividualWarning(t *testing.T) {
	rules := []accessrule.Rule{
		baseRule(),
		{
			Target:  accessrule.IndividualsTarget{UserIDs: []string{"bob"}},
			Enabled: true,
			PrairieTest: &accessrule.PrairieTestControl{
				Enabled: true,
				Exams:   []accessrule.ExamLink{{ExamUUID: uuid.New()}},
			},
		},
	}

	results := Validate(rules)
	assert.Empty(t, results[1].Errors)
	require.Len(t, results[1].Warnings, 1)
	assert.Equal(t, "prairieTest", results[1].Warnings[0].Path.String())
}

func TestValidatePrairieTestWithoutExamsWarning(t *testing.T) {
	rules := []accessrule.Rule{
		baseRule(),
		{
			Target:      accessrule.GroupsTarget{GroupIDs: []string{"exam-room"}},
			Enabled:     true,
			PrairieTest: &accessrule.PrairieTestControl{Enabled: true},
		},
	}

	results := Validate(rules)
	require.Len(t, results[1].Warnings, 1)
	assert.Equal(t, "prairieTest.exams", results[1].Warnings[0].Path.String())
}

func TestValidateRedundantOverrideWarning(t *testing.T) {
	base := baseRule()
	base.DateControl.DurationMinutes = accessrule.Set(60)

	rules := []accessrule.Rule{
		base,
		{
			Target:  accessrule.LabelsTarget{Labels: []string{"dsp"}},
			Enabled: true,
			DateControl: accessrule.DateControl{
				DurationMinutes: accessrule.Set(60),
			},
		},
	}

	results := Validate(rules)
	assert.Empty(t, results[1].Errors)
	require.Len(t, results[1].Warnings, 1)
	assert.Equal(t, "dateControl.durationMinutes", results[1].Warnings[0].Path.String())
}

func TestValidateDoesNotMutateInput(t *testing.T) {
	rules := []accessrule.Rule{baseRule()}
	before := rules[0]

	_ = Validate(rules)
	assert.Equal(t, before, rules[0])
}

func TestSummarize(t *testing.T) {
	results := Validate(nil)
	lines := Summarize(results)
	require.Len(t, lines, 1)
	assert.Equal(t, "rule 0: error: No assignment-level rule found", lines[0])
}
