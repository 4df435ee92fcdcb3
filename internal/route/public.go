package route

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"seminar-checkin/internal/attendee"
	"seminar-checkin/internal/blob"
	"seminar-checkin/internal/ledger"
	"seminar-checkin/internal/metric"
	"seminar-checkin/internal/utils"
)

const maxUploadBytes = 10 << 20

// CheckIn scans a badge. Repeated scans of the same token succeed and
// keep the first arrival timestamp.
func CheckIn(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("POST /api/checkin", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			TicketToken string `json:"ticket_token"`
			FoodType    string `json:"food_type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if strings.TrimSpace(body.TicketToken) == "" {
			writeMessage(w, http.StatusBadRequest, "ticket_token is required")
			return
		}

		start := time.Now()
		result, err := as.Ledger.CheckInByToken(
			r.Context(),
			strings.TrimSpace(body.TicketToken),
			attendee.NormalizeFoodType(body.FoodType),
			time.Now().In(as.Config.GetLocation()),
		)
		as.MetricChans.DatabaseWrite <- float64(time.Since(start).Microseconds())
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "Ticket not found")
			return
		case err != nil:
			slog.Error("can't check in", "token", body.TicketToken, "error", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		metric.CountCheckIn(result.AlreadyCheckedIn)

		writeJSON(w, http.StatusOK, struct {
			FullName         string `json:"fullName"`
			Organization     string `json:"organization"`
			Region           int    `json:"region"`
			FoodType         string `json:"foodType"`
			CheckedInAt      string `json:"checkedInAt"`
			AlreadyCheckedIn bool   `json:"alreadyCheckedIn"`
		}{
			FullName:         result.Attendee.FullName,
			Organization:     result.Attendee.Organization,
			Region:           result.Attendee.Region,
			FoodType:         string(result.Attendee.FoodType),
			CheckedInAt:      result.CheckedInAt.Format(time.RFC3339),
			AlreadyCheckedIn: result.AlreadyCheckedIn,
		})
	})
}

// Register takes a multipart self-registration form: shared court and
// venue fields, a participants JSON array and an optional payment slip.
func Register(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("POST /api/register", func(w http.ResponseWriter, r *http.Request) {
		if as.Config.GetEventID() == "" {
			writeMessage(w, http.StatusServiceUnavailable, "Registration is closed: no active event")
			return
		}
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}

		var participants []struct {
			FullName string `json:"fullName"`
			Position string `json:"position"`
			Phone    string `json:"phone"`
			FoodType string `json:"foodType"`
		}
		if raw := r.FormValue("participants"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &participants); err != nil {
				writeMessage(w, http.StatusBadRequest, "Invalid participants payload")
				return
			}
		}

		reg := ledger.Registration{
			EventID:          as.Config.GetEventID(),
			Organization:     r.FormValue("organization"),
			Province:         r.FormValue("province"),
			Region:           attendee.ParseRegion(r.FormValue("region")),
			HotelName:        r.FormValue("hotelName"),
			CoordinatorName:  r.FormValue("coordinatorName"),
			CoordinatorPhone: r.FormValue("coordinatorPhone"),
		}
		for _, p := range participants {
			reg.Participants = append(reg.Participants, ledger.Participant{
				FullName: p.FullName,
				Position: p.Position,
				Phone:    p.Phone,
				FoodType: attendee.NormalizeFoodType(p.FoodType),
			})
		}

		if url, ok := storeSlipUpload(r, as, uuid.NewString()); ok {
			reg.SlipURL = url
		}

		start := time.Now()
		created, err := as.Ledger.Register(r.Context(), reg)
		as.MetricChans.DatabaseWrite <- float64(time.Since(start).Microseconds())
		switch {
		case errors.Is(err, ledger.ErrValidation):
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			slog.Error("can't register", "organization", reg.Organization, "error", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		tokens := make([]string, len(created))
		for i, a := range created {
			tokens[i] = a.TicketToken
		}
		writeJSON(w, http.StatusCreated, struct {
			Registered   int      `json:"registered"`
			TicketTokens []string `json:"ticketTokens"`
		}{Registered: len(created), TicketTokens: tokens})
	})
}

// UploadSlip attaches a payment slip to an existing attendee.
func UploadSlip(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("POST /api/upload-slip", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		attendeeID := strings.TrimSpace(r.FormValue("attendeeId"))
		if attendeeID == "" {
			writeMessage(w, http.StatusBadRequest, "attendeeId is required")
			return
		}

		url, ok := storeSlipUpload(r, as, attendeeID)
		if !ok {
			writeMessage(w, http.StatusBadRequest, "slip file is required")
			return
		}

		start := time.Now()
		err := as.Ledger.AttachSlip(r.Context(), attendeeID, url)
		as.MetricChans.DatabaseWrite <- float64(time.Since(start).Microseconds())
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "Attendee not found")
			return
		case err != nil:
			slog.Error("can't attach slip", "attendeeID", attendeeID, "error", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, struct {
			SlipURL string `json:"slipUrl"`
		}{SlipURL: url})
	})
}

// storeSlipUpload reads the optional "slip" part and writes it to blob
// storage. Returns false when the part is absent.
func storeSlipUpload(r *http.Request, as *utils.AppState, ownerID string) (string, bool) {
	file, header, err := r.FormFile("slip")
	if err != nil {
		return "", false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		slog.Warn("can't read slip upload", "error", err)
		return "", false
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	path := blob.SlipPath(ownerID, ext, time.Now())
	url, err := as.Blob.Put(r.Context(), path, data, header.Header.Get("Content-Type"))
	if err != nil {
		slog.Warn("can't store slip upload", "path", path, "error", err)
		return "", false
	}
	return url, true
}
