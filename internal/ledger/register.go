package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"seminar-checkin/internal/attendee"
	"seminar-checkin/internal/model"
)

type Participant struct {
	FullName string
	Position string // "chief_judge" or "associate_judge"
	Phone    string
	FoodType attendee.FoodType
}

// Registration is one self-registration submission: shared court/venue
// details plus one ledger row per listed participant.
type Registration struct {
	EventID          string
	Organization     string
	Province         string
	Region           int
	HotelName        string
	CoordinatorName  string
	CoordinatorPhone string
	SlipURL          string
	Participants     []Participant
}

func jobTitle(position string) string {
	if position == "chief_judge" {
		return "ผู้พิพากษาหัวหน้าศาลฯ"
	}
	return "ผู้พิพากษาสมทบ"
}

// Register inserts one row per participant, each with a fresh ticket
// token. The shared slip URL (uploaded beforehand) is stamped on every
// row.
func (l *Ledger) Register(ctx context.Context, reg Registration) ([]model.Attendee, error) {
	if !attendee.IsValidRegion(reg.Region) {
		return nil, fmt.Errorf("%w: region must be 0-9", ErrValidation)
	}
	if reg.Organization == "" {
		return nil, fmt.Errorf("%w: organization is required", ErrValidation)
	}
	if reg.Province == "" {
		return nil, fmt.Errorf("%w: province is required", ErrValidation)
	}
	if len(reg.Participants) == 0 {
		return nil, fmt.Errorf("%w: at least one participant is required", ErrValidation)
	}
	if reg.Participants[0].FullName == "" {
		return nil, fmt.Errorf("%w: first participant needs a full name", ErrValidation)
	}

	now := time.Now()
	rows := make([]model.Attendee, 0, len(reg.Participants))
	for _, p := range reg.Participants {
		foodType := p.FoodType
		if foodType == attendee.FOOD_TYPE_NONE {
			foodType = attendee.FOOD_TYPE_NORMAL
		}
		rows = append(rows, model.Attendee{
			ID:               uuid.NewString(),
			EventID:          reg.EventID,
			FullName:         p.FullName,
			TicketToken:      uuid.NewString(),
			Phone:            p.Phone,
			Organization:     reg.Organization,
			JobPosition:      jobTitle(p.Position),
			Province:         reg.Province,
			Region:           reg.Region,
			HotelName:        reg.HotelName,
			CoordinatorName:  reg.CoordinatorName,
			CoordinatorPhone: reg.CoordinatorPhone,
			SlipURL:          reg.SlipURL,
			FoodType:         foodType,
			CreatedAt:        now,
		})
	}

	if _, err := l.db.NewInsert().
		Model(&rows).
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("Ledger.Register: %w", err)
	}
	return rows, nil
}
