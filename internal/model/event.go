package model

import (
	"time"

	"github.com/uptrace/bun"
)

// Event is created out-of-band by the operator; imported attendees attach
// to the event named by the EVENT_ID env.
type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID   string `bun:"id,pk"`       // required
	Name string `bun:"name,notnull"` // required

	// check-in window; kept in the schema but enforcement is bypassed by
	// policy, the window is only logged at check-in time
	StartCheckin *time.Time `bun:"start_checkin,nullzero"`
	EndCheckin   *time.Time `bun:"end_checkin,nullzero"`

	Attendees []*Attendee `bun:"rel:has-many,join:id=event_id"`
}
