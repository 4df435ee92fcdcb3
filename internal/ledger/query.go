package ledger

import (
	"context"
	"fmt"

	"seminar-checkin/internal/model"
	"seminar-checkin/internal/report"
)

// List returns attendees for export, stably ordered by name then region
// so repeated exports of an unchanged ledger lay out identically. A nil
// region means the whole ledger.
func (l *Ledger) List(ctx context.Context, region *int) ([]model.Attendee, error) {
	attendeeModels := make([]model.Attendee, 0)
	q := l.db.NewSelect().
		Model(&attendeeModels).
		Order("full_name ASC", "region ASC")
	if region != nil {
		q = q.Where("region = ?", *region)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("Ledger.List: %w", err)
	}
	return attendeeModels, nil
}

// Snapshot is the projection the pivot aggregator consumes.
func (l *Ledger) Snapshot(ctx context.Context) ([]report.Row, error) {
	attendeeModels := make([]model.Attendee, 0)
	if err := l.db.NewSelect().
		Model(&attendeeModels).
		Column("region", "hotel_name", "food_type").
		Order("region ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("Ledger.Snapshot: %w", err)
	}

	rows := make([]report.Row, 0, len(attendeeModels))
	for _, a := range attendeeModels {
		rows = append(rows, report.Row{
			Region:   a.Region,
			Hotel:    a.HotelName,
			FoodType: a.FoodType,
		})
	}
	return rows, nil
}
