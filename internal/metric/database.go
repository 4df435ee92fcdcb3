package metric

import (
	"context"
	"time"

	"seminar-checkin/internal/model"
	"seminar-checkin/internal/utils"
)

func database(as *utils.AppState) (time.Duration, error) {
	start := time.Now()
	if _, err := as.BunDB.NewSelect().
		Model((*model.Attendee)(nil)).
		Where("ticket_token = ?", "").
		Exists(context.Background()); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}
