package model

import (
	"time"

	"github.com/uptrace/bun"

	"seminar-checkin/internal/attendee"
)

// Attendee is the ledger's unit of record. TicketToken doubles as the
// import conflict key and the public check-in credential; it is assigned
// once at registration and never reissued.
type Attendee struct {
	bun.BaseModel `bun:"table:attendees"`

	ID          string `bun:"id,pk"`                        // required
	EventID     string `bun:"event_id,nullzero"`
	FullName    string `bun:"full_name,notnull"`            // required
	TicketToken string `bun:"ticket_token,notnull,unique"`  // required

	Phone            string `bun:"phone,nullzero"`
	Organization     string `bun:"organization,nullzero"`
	JobPosition      string `bun:"job_position,nullzero"`
	Province         string `bun:"province,nullzero"`
	// 0-9 are the reporting buckets (0 = central jurisdiction);
	// attendee.RegionUnassigned keeps the row out of regional reports
	Region           int    `bun:"region,notnull,default:-1"`
	HotelName        string `bun:"hotel_name,nullzero"`
	CoordinatorName  string `bun:"coordinator_name,nullzero"`
	CoordinatorPhone string `bun:"coordinator_phone,nullzero"`

	FoodType   attendee.FoodType `bun:"food_type,nullzero,type:varchar"`
	QRImageURL string            `bun:"qr_image_url,nullzero"`
	SlipURL    string            `bun:"slip_url,nullzero"`

	// null = not arrived; only the check-in state machine writes this
	CheckedInAt *time.Time `bun:"checked_in_at,nullzero"`
	CreatedAt   time.Time  `bun:"created_at,notnull"` // required

	Event *Event `bun:"rel:belongs-to,join:event_id=id"`
}
