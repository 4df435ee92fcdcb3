package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"seminar-checkin/internal/attendee"
	"seminar-checkin/internal/checkin"
	"seminar-checkin/internal/model"
)

type CheckInResult struct {
	Attendee         model.Attendee
	CheckedInAt      time.Time
	AlreadyCheckedIn bool
}

type UncheckInResult struct {
	Attendee         model.Attendee
	AlreadyUnchecked bool
}

// CheckInByToken is the public check-in path. Repeated scans of the same
// badge succeed with the original timestamp. The food type captured at
// arrival is the only other field written; a blank capture records
// "normal".
func (l *Ledger) CheckInByToken(ctx context.Context, token string, food attendee.FoodType, now time.Time) (CheckInResult, error) {
	attendeeModel, err := l.GetByToken(ctx, token)
	if err != nil {
		return CheckInResult{}, err
	}

	// check-in window enforcement is bypassed by policy; log only
	if attendeeModel.EventID != "" {
		eventModel := new(model.Event)
		if err := l.db.NewSelect().
			Model(eventModel).
			Where("id = ?", attendeeModel.EventID).
			Scan(ctx); err != nil {
			slog.Warn("check-in: event lookup failed, continuing", "event_id", attendeeModel.EventID, "error", err)
		} else {
			slog.Debug("check-in window (not enforced)",
				"event_id", eventModel.ID,
				"start_checkin", eventModel.StartCheckin,
				"end_checkin", eventModel.EndCheckin)
		}
	}

	out := checkin.Apply(attendeeModel.CheckedInAt, checkin.ACTION_CHECK_IN, now)
	if out.AlreadyInState {
		return CheckInResult{
			Attendee:         *attendeeModel,
			CheckedInAt:      *out.CheckedInAt,
			AlreadyCheckedIn: true,
		}, nil
	}

	if food == attendee.FOOD_TYPE_NONE {
		food = attendee.FOOD_TYPE_NORMAL
	}
	if _, err := l.db.NewUpdate().
		Model((*model.Attendee)(nil)).
		Set("checked_in_at = ?", out.CheckedInAt).
		Set("food_type = ?", food).
		Where("id = ?", attendeeModel.ID).
		Exec(ctx); err != nil {
		return CheckInResult{}, fmt.Errorf("Ledger.CheckInByToken: %w", err)
	}

	attendeeModel.CheckedInAt = out.CheckedInAt
	attendeeModel.FoodType = food
	return CheckInResult{
		Attendee:    *attendeeModel,
		CheckedInAt: *out.CheckedInAt,
	}, nil
}

// ForceCheckIn is the operator path: same idempotent semantics as the
// public check-in, addressed by id and without touching the food type.
func (l *Ledger) ForceCheckIn(ctx context.Context, id string, now time.Time) (CheckInResult, error) {
	attendeeModel, err := l.GetByID(ctx, id)
	if err != nil {
		return CheckInResult{}, err
	}

	out := checkin.Apply(attendeeModel.CheckedInAt, checkin.ACTION_CHECK_IN, now)
	if out.AlreadyInState {
		return CheckInResult{
			Attendee:         *attendeeModel,
			CheckedInAt:      *out.CheckedInAt,
			AlreadyCheckedIn: true,
		}, nil
	}

	if _, err := l.db.NewUpdate().
		Model((*model.Attendee)(nil)).
		Set("checked_in_at = ?", out.CheckedInAt).
		Where("id = ?", attendeeModel.ID).
		Exec(ctx); err != nil {
		return CheckInResult{}, fmt.Errorf("Ledger.ForceCheckIn: %w", err)
	}

	attendeeModel.CheckedInAt = out.CheckedInAt
	return CheckInResult{
		Attendee:    *attendeeModel,
		CheckedInAt: *out.CheckedInAt,
	}, nil
}

// UncheckIn clears the arrival timestamp. Calling it while already not
// arrived reports success flagged as AlreadyUnchecked.
func (l *Ledger) UncheckIn(ctx context.Context, id string) (UncheckInResult, error) {
	attendeeModel, err := l.GetByID(ctx, id)
	if err != nil {
		return UncheckInResult{}, err
	}

	out := checkin.Apply(attendeeModel.CheckedInAt, checkin.ACTION_UNCHECK_IN, time.Now())
	if out.AlreadyInState {
		return UncheckInResult{
			Attendee:         *attendeeModel,
			AlreadyUnchecked: true,
		}, nil
	}

	if _, err := l.db.NewUpdate().
		Model((*model.Attendee)(nil)).
		Set("checked_in_at = NULL").
		Where("id = ?", attendeeModel.ID).
		Exec(ctx); err != nil {
		return UncheckInResult{}, fmt.Errorf("Ledger.UncheckIn: %w", err)
	}

	attendeeModel.CheckedInAt = nil
	return UncheckInResult{Attendee: *attendeeModel}, nil
}
