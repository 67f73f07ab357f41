//
//  Copyright © Courseflow Inc. All rights reserved.
//

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/courseflow/accessengine/pkg/accessrule"
)

func hidingPolicy() EffectivePolicy {
	return EffectivePolicy{
		AfterComplete: accessrule.AfterComplete{
			QuestionVisibility: accessrule.Set(accessrule.QuestionVisibility{
				HideQuestions: true,
				ShowAgainDate: accessrule.ParseInstant("2024-04-01T00:00"),
				HideAgainDate: accessrule.ParseInstant("2024-04-08T00:00"),
			}),
			ScoreVisibility: accessrule.Set(accessrule.ScoreVisibility{
				HideScore:     true,
				ShowAgainDate: accessrule.ParseInstant("2024-03-25T00:00"),
			}),
		},
	}
}

func TestVisibilityBeforeCompletion(t *testing.T) {
	v := ResolveVisibility(hidingPolicy(), nil, at(t, "2024-03-20T12:00"))
	assert.True(t, v.QuestionsVisible)
	assert.True(t, v.ScoreVisible)
}

func TestVisibilityAfterCompletion(t *testing.T) {
	completed := at(t, "2024-03-20T12:00")

	tests := []struct {
		now       string
		questions bool
		score     bool
	}{
		{"2024-03-20T13:00", false, false}, // just completed, everything hidden
		{"2024-03-26T00:00", false, true},  // score show-again passed
		{"2024-04-03T00:00", true, true},   // question reveal window open
		{"2024-04-09T00:00", false, true},  // window closed, score stays revealed
	}
	for _, tc := range tests {
		v := ResolveVisibility(hidingPolicy(), &completed, at(t, tc.now))
		assert.Equal(t, tc.questions, v.QuestionsVisible, "questions at %s", tc.now)
		assert.Equal(t, tc.score, v.ScoreVisible, "score at %s", tc.now)
	}
}

func TestVisibilityHiddenForeverWithoutShowAgain(t *testing.T) {
	policy := EffectivePolicy{
		AfterComplete: accessrule.AfterComplete{
			QuestionVisibility: accessrule.Set(accessrule.QuestionVisibility{
				HideQuestions: true,
			}),
			ScoreVisibility: accessrule.Set(accessrule.ScoreVisibility{
				HideScore: true,
			}),
		},
	}

	completed := at(t, "2024-03-20T12:00")
	v := ResolveVisibility(policy, &completed, at(t, "2030-01-01T00:00"))
	assert.False(t, v.QuestionsVisible)
	assert.False(t, v.ScoreVisible)
}

func TestVisibilityNoHidingConfigured(t *testing.T) {
	completed := at(t, "2024-03-20T12:00")
	v := ResolveVisibility(EffectivePolicy{}, &completed, at(t, "2024-03-21T12:00"))
	assert.True(t, v.QuestionsVisible)
	assert.True(t, v.ScoreVisible)
}

func TestVisibilityRevealedWithoutHideAgain(t *testing.T) {
	policy := EffectivePolicy{
		AfterComplete: accessrule.AfterComplete{
			QuestionVisibility: accessrule.Set(accessrule.QuestionVisibility{
				HideQuestions: true,
				ShowAgainDate: accessrule.ParseInstant("2024-04-01T00:00"),
			}),
		},
	}

	completed := at(t, "2024-03-20T12:00")
	v := ResolveVisibility(policy, &completed, at(t, "2030-01-01T00:00"))
	assert.True(t, v.QuestionsVisible)
}
