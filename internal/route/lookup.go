package route

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"seminar-checkin/internal/ledger"
	"seminar-checkin/internal/model"
	"seminar-checkin/internal/utils"
)

type attendeeResponse struct {
	ID           string `json:"id"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone,omitempty"`
	Organization string `json:"organization,omitempty"`
	JobPosition  string `json:"jobPosition,omitempty"`
	Province     string `json:"province,omitempty"`
	Region       int    `json:"region"`
	HotelName    string `json:"hotelName,omitempty"`
	FoodType     string `json:"foodType,omitempty"`
	SlipURL      string `json:"slipUrl,omitempty"`
	CheckedInAt  string `json:"checkedInAt,omitempty"`
}

func toAttendeeResponse(a model.Attendee) attendeeResponse {
	resp := attendeeResponse{
		ID:           a.ID,
		FullName:     a.FullName,
		Phone:        a.Phone,
		Organization: a.Organization,
		JobPosition:  a.JobPosition,
		Province:     a.Province,
		Region:       a.Region,
		HotelName:    a.HotelName,
		FoodType:     string(a.FoodType),
		SlipURL:      a.SlipURL,
	}
	if a.CheckedInAt != nil {
		resp.CheckedInAt = a.CheckedInAt.Format(time.RFC3339)
	}
	return resp
}

// Lookup previews an attendee by ticket token before the station
// confirms the check-in.
func Lookup(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("GET /api/attendee", func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.URL.Query().Get("token"))
		if token == "" {
			writeMessage(w, http.StatusBadRequest, "token is required")
			return
		}

		start := time.Now()
		attendeeModel, err := as.Ledger.GetByToken(r.Context(), token)
		as.MetricChans.DatabaseRead <- float64(time.Since(start).Microseconds())
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "Ticket not found")
			return
		case err != nil:
			slog.Error("can't look up attendee", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, toAttendeeResponse(*attendeeModel))
	})
}

// ListAttendees backs the admin table. ?region=N narrows the result.
func ListAttendees(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("GET /api/admin/attendees", AdminMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFromQuery(w, r)
		if !ok {
			return
		}
		attendees, ok := listAttendees(w, r, as, scope)
		if !ok {
			return
		}

		resp := make([]attendeeResponse, len(attendees))
		for i, a := range attendees {
			resp[i] = toAttendeeResponse(a)
		}
		writeJSON(w, http.StatusOK, struct {
			Count     int                `json:"count"`
			Attendees []attendeeResponse `json:"attendees"`
		}{Count: len(resp), Attendees: resp})
	}))
}
