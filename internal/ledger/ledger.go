// Package ledger owns the attendee record set: bulk import, registration,
// check-in state application, slip handling and administrative edits. The
// bun database is the sole synchronization point; there is no in-process
// locking between requests.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"seminar-checkin/internal/attendee"
	"seminar-checkin/internal/model"
)

type Ledger struct {
	db bun.IDB
}

func New(db bun.IDB) *Ledger {
	return &Ledger{db: db}
}

// GetByToken resolves the public check-in credential to a row.
func (l *Ledger) GetByToken(ctx context.Context, token string) (*model.Attendee, error) {
	attendeeModel := new(model.Attendee)
	if err := l.db.NewSelect().
		Model(attendeeModel).
		Where("ticket_token = ?", token).
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("Ledger.GetByToken: %w", err)
	}
	return attendeeModel, nil
}

func (l *Ledger) GetByID(ctx context.Context, id string) (*model.Attendee, error) {
	attendeeModel := new(model.Attendee)
	if err := l.db.NewSelect().
		Model(attendeeModel).
		Where("id = ?", id).
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("Ledger.GetByID: %w", err)
	}
	return attendeeModel, nil
}

// Import upserts canonical drafts keyed on ticket_token: a re-imported
// token overwrites every imported column of the prior row while the
// system-assigned id, slip, check-in state and creation time survive.
// An empty post-filter batch writes nothing and is rejected outright.
func (l *Ledger) Import(ctx context.Context, drafts []attendee.Draft, eventID string) (int, error) {
	if eventID == "" {
		return 0, ErrNoEvent
	}
	if len(drafts) == 0 {
		return 0, ErrEmptyImport
	}

	now := time.Now()
	rows := make([]model.Attendee, 0, len(drafts))
	for _, d := range drafts {
		rows = append(rows, model.Attendee{
			ID:               uuid.NewString(),
			EventID:          eventID,
			FullName:         d.FullName,
			TicketToken:      d.TicketToken,
			Phone:            d.Phone,
			Organization:     d.Organization,
			JobPosition:      d.JobPosition,
			Province:         d.Province,
			Region:           d.Region,
			HotelName:        d.HotelName,
			CoordinatorName:  d.CoordinatorName,
			CoordinatorPhone: d.CoordinatorPhone,
			QRImageURL:       d.QRImageURL,
			FoodType:         d.FoodType,
			CreatedAt:        now,
		})
	}

	if _, err := l.db.NewInsert().
		Model(&rows).
		On("CONFLICT (ticket_token) DO UPDATE").
		Set("event_id = EXCLUDED.event_id").
		Set("full_name = EXCLUDED.full_name").
		Set("phone = EXCLUDED.phone").
		Set("organization = EXCLUDED.organization").
		Set("job_position = EXCLUDED.job_position").
		Set("province = EXCLUDED.province").
		Set("region = EXCLUDED.region").
		Set("hotel_name = EXCLUDED.hotel_name").
		Set("coordinator_name = EXCLUDED.coordinator_name").
		Set("coordinator_phone = EXCLUDED.coordinator_phone").
		Set("qr_image_url = EXCLUDED.qr_image_url").
		Set("food_type = EXCLUDED.food_type").
		Exec(ctx); err != nil {
		return 0, fmt.Errorf("Ledger.Import: %w", err)
	}
	return len(rows), nil
}
