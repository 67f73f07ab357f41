//
//  Copyright © Courseflow Inc. All rights reserved.
//

package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/courseflow/accessengine/pkg/accessrule"
)

// State is the access state of an assessment at a point in time.
type State int

// Access states.
const (
	StateNotReleased State = iota
	StateOpen
	StateClosed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateNotReleased:
		return "not-released"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Access is the point-in-time scheduling decision.
type Access struct {
	State         State   `json:"state"`
	CreditPercent float64 `json:"creditPercent"`
}

// creditEvent is one deadline boundary with the credit earned by
// submitting at or before it.
type creditEvent struct {
	at     time.Time
	credit float64
	label  string
}

// Deadline row labels shared by the scheduler and the timeline generator.
const (
	labelEarlyDeadline = "Early deadline"
	labelDueDate       = "Due date"
	labelLateDeadline  = "Late deadline"
	labelReleased      = "Released"
	labelAfterLast     = "After last deadline"
)

func instantOrPanic(i accessrule.Instant, what string) time.Time {
	if !i.Valid {
		panic(fmt.Sprintf("effective policy carries an invalid %s %q; evaluate only validated documents", what, i.Raw))
	}
	return i.Time
}

// deadlineEvents builds the chronological deadline list: early deadlines,
// then the due date at credit 100, then late deadlines, sorted stably by
// timestamp.  Document order breaks ties; distinct deadlines at an
// identical instant are a configuration smell, not a case needing a
// numeric tie-break.
func deadlineEvents(dc accessrule.DateControl) []creditEvent {
	var events []creditEvent

	if dc.EarlyDeadlines.Enabled {
		for _, entry := range dc.EarlyDeadlines.Value {
			events = append(events, creditEvent{
				at:     instantOrPanic(entry.Date, "early deadline"),
				credit: entry.Credit,
				label:  labelEarlyDeadline,
			})
		}
	}

	if dc.DueDate.Enabled {
		events = append(events, creditEvent{
			at:     instantOrPanic(dc.DueDate.Value, "due date"),
			credit: 100,
			label:  labelDueDate,
		})
	}

	if dc.LateDeadlines.Enabled {
		for _, entry := range dc.LateDeadlines.Value {
			events = append(events, creditEvent{
				at:     instantOrPanic(entry.Date, "late deadline"),
				credit: entry.Credit,
				label:  labelLateDeadline,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].at.Before(events[j].at)
	})

	return events
}

// afterLastAccess resolves the state once every deadline has passed.
func afterLastAccess(dc accessrule.DateControl) Access {
	ald := dc.AfterLastDeadline
	if !ald.Enabled {
		return Access{State: StateClosed}
	}

	credit := 0.0
	if ald.Value.Credit != nil {
		credit = *ald.Value.Credit
	}

	state := StateClosed
	if ald.Value.AllowSubmissions {
		state = StateOpen
	}
	return Access{State: state, CreditPercent: credit}
}

// Schedule computes the access state and applicable credit for an effective
// policy at the given instant.
//
// Credit follows submit-by semantics: at any open instant the applicable
// credit is that of the earliest deadline not yet passed, so credit steps
// monotonically down (early → due → late) as deadlines fire.  Credit values
// are percentages and are never clamped; values above 100 are bonus credit.
func Schedule(policy EffectivePolicy, now time.Time) Access {
	if policy.Blocked {
		return Access{State: StateClosed}
	}

	dc := policy.DateControl
	if dc.ReleaseDate.Enabled && now.Before(instantOrPanic(dc.ReleaseDate.Value, "release date")) {
		return Access{State: StateNotReleased}
	}

	events := deadlineEvents(dc)
	if len(events) == 0 {
		// No deadlines configured: open indefinitely at full credit.
		return Access{State: StateOpen, CreditPercent: 100}
	}

	for _, ev := range events {
		if !now.After(ev.at) {
			return Access{State: StateOpen, CreditPercent: ev.credit}
		}
	}

	return afterLastAccess(dc)
}
