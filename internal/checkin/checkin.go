// Package checkin holds the arrival state machine as a pure transition
// function so the idempotent no-op branches are testable without storage.
package checkin

import "time"

type State string

const (
	STATE_NOT_ARRIVED = State("not_arrived")
	STATE_ARRIVED     = State("arrived")
)

type Action string

const (
	ACTION_CHECK_IN   = Action("check_in")
	ACTION_UNCHECK_IN = Action("uncheck_in")
)

// Outcome is the observable result of applying an action. AlreadyInState
// is true when the action was a no-op; repeated badge scans and repeated
// uncheck requests both report success this way instead of erroring.
type Outcome struct {
	State          State
	CheckedInAt    *time.Time
	AlreadyInState bool
}

// StateOf derives the state from the ledger's checked_in_at column.
func StateOf(checkedInAt *time.Time) State {
	if checkedInAt == nil {
		return STATE_NOT_ARRIVED
	}
	return STATE_ARRIVED
}

// Apply computes (currentState, action) -> (nextState, observable). A
// check-in on an already-arrived attendee keeps the original timestamp,
// never restamps it.
func Apply(checkedInAt *time.Time, action Action, now time.Time) Outcome {
	switch action {
	case ACTION_CHECK_IN:
		if checkedInAt != nil {
			return Outcome{
				State:          STATE_ARRIVED,
				CheckedInAt:    checkedInAt,
				AlreadyInState: true,
			}
		}
		return Outcome{
			State:       STATE_ARRIVED,
			CheckedInAt: &now,
		}
	case ACTION_UNCHECK_IN:
		if checkedInAt == nil {
			return Outcome{
				State:          STATE_NOT_ARRIVED,
				AlreadyInState: true,
			}
		}
		return Outcome{State: STATE_NOT_ARRIVED}
	}
	// unknown actions leave the state untouched
	return Outcome{
		State:          StateOf(checkedInAt),
		CheckedInAt:    checkedInAt,
		AlreadyInState: true,
	}
}
