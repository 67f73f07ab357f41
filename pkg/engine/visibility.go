//
//  Copyright © Courseflow Inc. All rights reserved.
//

package engine

import (
	"time"

	"github.com/courseflow/accessengine/pkg/accessrule"
)

// Visibility reports whether questions and score are currently visible to
// a user.
type Visibility struct {
	QuestionsVisible bool `json:"questionsVisible"`
	ScoreVisible     bool `json:"scoreVisible"`
}

// ResolveVisibility computes question/score visibility for an effective
// policy.  The resolver only has an opinion once the user has completed the
// assessment; a nil completedAt yields full visibility.
//
// Hidden questions can be revealed by a show-again date and re-hidden by a
// hide-again date.  A hidden score has only a show-again date: once
// revealed, it stays revealed.
func ResolveVisibility(policy EffectivePolicy, completedAt *time.Time, now time.Time) Visibility {
	v := Visibility{QuestionsVisible: true, ScoreVisible: true}
	if completedAt == nil {
		return v
	}

	if qv := policy.AfterComplete.QuestionVisibility; qv.Enabled && qv.Value.HideQuestions {
		v.QuestionsVisible = withinRevealWindow(qv.Value.ShowAgainDate, qv.Value.HideAgainDate, now)
	}

	if sv := policy.AfterComplete.ScoreVisibility; sv.Enabled && sv.Value.HideScore {
		v.ScoreVisible = revealed(sv.Value.ShowAgainDate, now)
	}

	return v
}

func revealed(showAgain accessrule.Instant, now time.Time) bool {
	return showAgain.Valid && !now.Before(showAgain.Time)
}

func withinRevealWindow(showAgain, hideAgain accessrule.Instant, now time.Time) bool {
	if !revealed(showAgain, now) {
		return false
	}
	return !hideAgain.Valid || now.Before(hideAgain.Time)
}
