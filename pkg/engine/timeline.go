//
//  Copyright © Courseflow Inc. All rights reserved.
//

package engine

import (
	"sort"
	"time"

	"github.com/courseflow/accessengine/pkg/accessrule"
)

// Row is one entry of the chronological schedule rendered by [Timeline].
//
// CreditPercent is the credit in effect from the row's instant forward
// (until the next row), so the rows form a step function: for any instant t
// strictly between two boundaries, the latest row at or before t carries
// the same credit that [Schedule] reports for t.
type Row struct {
	At            time.Time `json:"at"`
	Label         string    `json:"label"`
	CreditPercent float64   `json:"creditPercent"`
	Note          string    `json:"note"`
}

// Labels and visibility notes used in timeline rows.
const (
	labelQuestionsShown  = "Questions shown again"
	labelQuestionsHidden = "Questions hidden again"
	labelScoreShown      = "Score shown again"

	noteSubmissionsAllowed = "submissions allowed"
	noteSubmissionsClosed  = "submissions closed"
	noteQuestionsVisible   = "questions visible"
	noteQuestionsHidden    = "questions hidden"
	noteScoreVisible       = "score visible"
)

// Timeline renders an effective policy as a chronologically ordered event
// sequence: release, deadline boundaries, an after-last-deadline row when
// that behavior is configured, and question/score reveal boundaries.
//
// Timeline is a pure projection with no time-dependent branching.  It gives
// callers and tests a single artifact to assert chronology and credit
// against instead of re-deriving it ad hoc.  A blocked policy has no
// timeline.
func Timeline(policy EffectivePolicy) []Row {
	if policy.Blocked {
		return nil
	}

	dc := policy.DateControl
	events := deadlineEvents(dc)
	after := afterLastAccess(dc)

	// Credit in effect once event i has passed.
	creditAfter := func(i int) (float64, string) {
		if i+1 < len(events) {
			return events[i+1].credit, noteSubmissionsAllowed
		}
		if after.State == StateOpen {
			return after.CreditPercent, noteSubmissionsAllowed
		}
		return after.CreditPercent, noteSubmissionsClosed
	}

	// Credit in effect from an arbitrary instant, for rows that are not
	// deadline boundaries themselves.
	creditFrom := func(at time.Time) float64 {
		if len(events) == 0 {
			return 100
		}
		for _, ev := range events {
			if !ev.at.Before(at) {
				return ev.credit
			}
		}
		return after.CreditPercent
	}

	var rows []Row

	if dc.ReleaseDate.Enabled {
		credit := 100.0
		if len(events) > 0 {
			credit = events[0].credit
		}
		rows = append(rows, Row{
			At:            instantOrPanic(dc.ReleaseDate.Value, "release date"),
			Label:         labelReleased,
			CreditPercent: credit,
			Note:          noteSubmissionsAllowed,
		})
	}

	for i, ev := range events {
		credit, note := creditAfter(i)
		rows = append(rows, Row{
			At:            ev.at,
			Label:         ev.label,
			CreditPercent: credit,
			Note:          note,
		})
	}

	if dc.AfterLastDeadline.Enabled && len(events) > 0 {
		credit, note := creditAfter(len(events) - 1)
		rows = append(rows, Row{
			At:            events[len(events)-1].at,
			Label:         labelAfterLast,
			CreditPercent: credit,
			Note:          note,
		})
	}

	rows = append(rows, visibilityRows(policy.AfterComplete, creditFrom)...)

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].At.Before(rows[j].At)
	})

	return rows
}

func visibilityRows(ac accessrule.AfterComplete, creditFrom func(time.Time) float64) []Row {
	var rows []Row

	appendRow := func(instant accessrule.Instant, label, note string) {
		if !instant.Valid {
			return
		}
		rows = append(rows, Row{
			At:            instant.Time,
			Label:         label,
			CreditPercent: creditFrom(instant.Time),
			Note:          note,
		})
	}

	if qv := ac.QuestionVisibility; qv.Enabled && qv.Value.HideQuestions {
		appendRow(qv.Value.ShowAgainDate, labelQuestionsShown, noteQuestionsVisible)
		appendRow(qv.Value.HideAgainDate, labelQuestionsHidden, noteQuestionsHidden)
	}
	if sv := ac.ScoreVisibility; sv.Enabled && sv.Value.HideScore {
		appendRow(sv.Value.ShowAgainDate, labelScoreShown, noteScoreVisible)
	}

	return rows
}
