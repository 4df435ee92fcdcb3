package route

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"seminar-checkin/internal/attendee"
	"seminar-checkin/internal/ledger"
	"seminar-checkin/internal/metric"
	"seminar-checkin/internal/utils"
)

// Import ingests a spreadsheet: multipart "file" holding an xlsx whose
// first sheet has a header row. Rows without a name or ticket token are
// skipped and counted; surviving rows upsert by ticket token.
func Import(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("POST /api/admin/import", AdminMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "file is required")
			return
		}
		defer file.Close()

		workbook, err := excelize.OpenReader(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Can't read the workbook")
			return
		}
		defer workbook.Close()
		sheet, err := workbook.GetRows(workbook.GetSheetName(0))
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Can't read the first sheet")
			return
		}

		drafts, skipped := attendee.Canonicalize(attendee.RowsFromSheet(sheet))

		start := time.Now()
		count, err := as.Ledger.Import(r.Context(), drafts, as.Config.GetEventID())
		as.MetricChans.DatabaseWrite <- float64(time.Since(start).Microseconds())
		switch {
		case errors.Is(err, ledger.ErrNoEvent):
			writeMessage(w, http.StatusConflict, "No active event configured; set EVENT_ID before importing")
			return
		case errors.Is(err, ledger.ErrEmptyImport):
			writeMessage(w, http.StatusBadRequest, fmt.Sprintf("No importable rows (%d skipped)", skipped))
			return
		case err != nil:
			slog.Error("can't import attendees", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		metric.CountImportedRows(count)

		writeJSON(w, http.StatusOK, struct {
			AcceptedCount int    `json:"acceptedCount"`
			Skipped       int    `json:"skipped"`
			Message       string `json:"message"`
		}{
			AcceptedCount: count,
			Skipped:       skipped,
			Message:       fmt.Sprintf("Imported %d attendees, skipped %d rows", count, skipped),
		})
	}))
}

// ForceCheckIn toggles an attendee's arrival state by id, bypassing the
// ticket token path. "checkin" never touches the recorded food type.
func ForceCheckIn(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("POST /api/admin/force-checkin", AdminMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			AttendeeID string `json:"attendeeId"`
			Action     string `json:"action"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if strings.TrimSpace(body.AttendeeID) == "" {
			writeMessage(w, http.StatusBadRequest, "attendeeId is required")
			return
		}

		start := time.Now()
		var checkedInAt *time.Time
		var already bool
		var err error
		switch body.Action {
		case "checkin":
			var result ledger.CheckInResult
			result, err = as.Ledger.ForceCheckIn(r.Context(), body.AttendeeID, time.Now().In(as.Config.GetLocation()))
			if err == nil {
				checkedInAt = &result.CheckedInAt
				already = result.AlreadyCheckedIn
				metric.CountCheckIn(result.AlreadyCheckedIn)
			}
		case "uncheckin":
			var result ledger.UncheckInResult
			result, err = as.Ledger.UncheckIn(r.Context(), body.AttendeeID)
			if err == nil {
				already = result.AlreadyUnchecked
			}
		default:
			writeMessage(w, http.StatusBadRequest, "Invalid action")
			return
		}
		as.MetricChans.DatabaseWrite <- float64(time.Since(start).Microseconds())
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "Attendee not found")
			return
		case err != nil:
			slog.Error("can't force check-in", "attendeeID", body.AttendeeID, "action", body.Action, "error", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		resp := struct {
			Action         string `json:"action"`
			AlreadyInState bool   `json:"alreadyInState"`
			CheckedInAt    string `json:"checkedInAt,omitempty"`
		}{Action: body.Action, AlreadyInState: already}
		if checkedInAt != nil {
			resp.CheckedInAt = checkedInAt.Format(time.RFC3339)
		}
		writeJSON(w, http.StatusOK, resp)
	}))
}

// UpdateAttendee patches the fields present in the request body. An
// empty checked_in_at string clears the arrival timestamp.
func UpdateAttendee(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("POST /api/admin/update-attendee", AdminMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			AttendeeID       string  `json:"attendeeId"`
			FullName         *string `json:"full_name"`
			Phone            *string `json:"phone"`
			Organization     *string `json:"organization"`
			JobPosition      *string `json:"job_position"`
			Province         *string `json:"province"`
			Region           *int    `json:"region"`
			TicketToken      *string `json:"ticket_token"`
			QRImageURL       *string `json:"qr_image_url"`
			HotelName        *string `json:"hotel_name"`
			CoordinatorName  *string `json:"coordinator_name"`
			CoordinatorPhone *string `json:"coordinator_phone"`
			FoodType         *string `json:"food_type"`
			CheckedInAt      *string `json:"checked_in_at"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if strings.TrimSpace(body.AttendeeID) == "" {
			writeMessage(w, http.StatusBadRequest, "attendeeId is required")
			return
		}

		fields := ledger.UpdateFields{
			FullName:         body.FullName,
			Phone:            body.Phone,
			Organization:     body.Organization,
			JobPosition:      body.JobPosition,
			Province:         body.Province,
			Region:           body.Region,
			TicketToken:      body.TicketToken,
			QRImageURL:       body.QRImageURL,
			HotelName:        body.HotelName,
			CoordinatorName:  body.CoordinatorName,
			CoordinatorPhone: body.CoordinatorPhone,
			FoodType:         body.FoodType,
		}
		if body.CheckedInAt != nil {
			if *body.CheckedInAt == "" {
				fields.ClearCheckedInAt = true
			} else {
				ts, err := time.Parse(time.RFC3339, *body.CheckedInAt)
				if err != nil {
					writeMessage(w, http.StatusBadRequest, "checked_in_at must be RFC 3339")
					return
				}
				fields.CheckedInAt = &ts
			}
		}

		start := time.Now()
		err := as.Ledger.Update(r.Context(), body.AttendeeID, fields)
		as.MetricChans.DatabaseWrite <- float64(time.Since(start).Microseconds())
		switch {
		case errors.Is(err, ledger.ErrValidation):
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		case errors.Is(err, ledger.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "Attendee not found")
			return
		case err != nil:
			slog.Error("can't update attendee", "attendeeID", body.AttendeeID, "error", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeMessage(w, http.StatusOK, "Attendee updated")
	}))
}

// DeleteAttendee removes a row for good.
func DeleteAttendee(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("POST /api/admin/delete-attendee", AdminMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		id, ok := attendeeIDFromBody(w, r)
		if !ok {
			return
		}
		start := time.Now()
		err := as.Ledger.Delete(r.Context(), id)
		as.MetricChans.DatabaseWrite <- float64(time.Since(start).Microseconds())
		if !respondMutation(w, err, "can't delete attendee", id) {
			return
		}
		writeMessage(w, http.StatusOK, "Attendee deleted")
	}))
}

// ClearSlip detaches the stored payment slip from an attendee.
func ClearSlip(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("POST /api/admin/clear-slip", AdminMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		id, ok := attendeeIDFromBody(w, r)
		if !ok {
			return
		}
		start := time.Now()
		err := as.Ledger.ClearSlip(r.Context(), id)
		as.MetricChans.DatabaseWrite <- float64(time.Since(start).Microseconds())
		if !respondMutation(w, err, "can't clear slip", id) {
			return
		}
		writeMessage(w, http.StatusOK, "Slip cleared")
	}))
}

func attendeeIDFromBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body struct {
		AttendeeID string `json:"attendeeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return "", false
	}
	if strings.TrimSpace(body.AttendeeID) == "" {
		writeMessage(w, http.StatusBadRequest, "attendeeId is required")
		return "", false
	}
	return body.AttendeeID, true
}

func respondMutation(w http.ResponseWriter, err error, logMsg, attendeeID string) bool {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Attendee not found")
		return false
	case err != nil:
		slog.Error(logMsg, "attendeeID", attendeeID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return false
	}
	return true
}
