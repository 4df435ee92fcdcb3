package ledger

import (
	"context"
	"fmt"
	"time"

	"seminar-checkin/internal/attendee"
	"seminar-checkin/internal/model"
)

// UpdateFields is a partial administrative edit; nil pointers leave the
// column untouched. This path bypasses the check-in state machine on
// purpose and exists for correction tooling only.
type UpdateFields struct {
	EventID          *string
	FullName         *string
	Phone            *string
	Organization     *string
	JobPosition      *string
	Province         *string
	Region           *int
	TicketToken      *string
	QRImageURL       *string
	SlipURL          *string
	HotelName        *string
	CoordinatorName  *string
	CoordinatorPhone *string
	FoodType         *string
	CheckedInAt      *time.Time
	ClearCheckedInAt bool
}

func (l *Ledger) Update(ctx context.Context, id string, fields UpdateFields) error {
	if fields.Region != nil && !attendee.IsValidRegion(*fields.Region) {
		return fmt.Errorf("%w: region must be 0-9", ErrValidation)
	}
	if fields.FoodType != nil && !attendee.IsValidFoodType(*fields.FoodType) {
		return fmt.Errorf("%w: invalid food_type %q", ErrValidation, *fields.FoodType)
	}

	q := l.db.NewUpdate().Model((*model.Attendee)(nil)).Where("id = ?", id)
	touched := false
	set := func(column string, v any) {
		q = q.Set(column+" = ?", v)
		touched = true
	}

	if fields.EventID != nil {
		set("event_id", *fields.EventID)
	}
	if fields.FullName != nil {
		set("full_name", *fields.FullName)
	}
	if fields.Phone != nil {
		set("phone", *fields.Phone)
	}
	if fields.Organization != nil {
		set("organization", *fields.Organization)
	}
	if fields.JobPosition != nil {
		set("job_position", *fields.JobPosition)
	}
	if fields.Province != nil {
		set("province", *fields.Province)
	}
	if fields.Region != nil {
		set("region", *fields.Region)
	}
	if fields.TicketToken != nil {
		set("ticket_token", *fields.TicketToken)
	}
	if fields.QRImageURL != nil {
		set("qr_image_url", *fields.QRImageURL)
	}
	if fields.SlipURL != nil {
		set("slip_url", *fields.SlipURL)
	}
	if fields.HotelName != nil {
		set("hotel_name", *fields.HotelName)
	}
	if fields.CoordinatorName != nil {
		set("coordinator_name", *fields.CoordinatorName)
	}
	if fields.CoordinatorPhone != nil {
		set("coordinator_phone", *fields.CoordinatorPhone)
	}
	if fields.FoodType != nil {
		set("food_type", *fields.FoodType)
	}
	if fields.CheckedInAt != nil {
		set("checked_in_at", *fields.CheckedInAt)
	} else if fields.ClearCheckedInAt {
		q = q.Set("checked_in_at = NULL")
		touched = true
	}

	if !touched {
		return fmt.Errorf("%w: no updatable fields provided", ErrValidation)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("Ledger.Update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// AttachSlip stamps the payment-slip public URL on a row.
func (l *Ledger) AttachSlip(ctx context.Context, id, slipURL string) error {
	res, err := l.db.NewUpdate().
		Model((*model.Attendee)(nil)).
		Set("slip_url = ?", slipURL).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("Ledger.AttachSlip: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (l *Ledger) ClearSlip(ctx context.Context, id string) error {
	res, err := l.db.NewUpdate().
		Model((*model.Attendee)(nil)).
		Set("slip_url = NULL").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("Ledger.ClearSlip: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hard-deletes a row; there is no tombstone.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	res, err := l.db.NewDelete().
		Model((*model.Attendee)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("Ledger.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
