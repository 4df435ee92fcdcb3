package route

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"seminar-checkin/internal/export"
	"seminar-checkin/internal/metric"
	"seminar-checkin/internal/model"
	"seminar-checkin/internal/report"
	"seminar-checkin/internal/utils"
)

const prefetchWorkers = 8

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportAttendees streams the full ledger workbook, one sheet per
// region, with slip and QR images embedded. ?region=N narrows it to a
// single sheet.
func ExportAttendees(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("GET /api/admin/export-attendees", AdminMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFromQuery(w, r)
		if !ok {
			return
		}

		attendees, ok := listAttendees(w, r, as, scope)
		if !ok {
			return
		}

		urls := make([]string, 0, len(attendees)*2)
		for _, a := range attendees {
			urls = append(urls, a.SlipURL, a.QRImageURL)
		}
		images := export.Prefetch(r.Context(), urls, prefetchWorkers, as.Blob.Fetch)

		data, filename, err := export.Attendees(attendees, scope, images, time.Now().In(as.Config.GetLocation()))
		if err != nil {
			slog.Error("can't build attendee workbook", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		metric.CountExport("attendees_xlsx")
		sendAttachment(w, data, filename, xlsxContentType)
	}))
}

// ExportHotelFoodSummary streams the hotel and food pivot workbook.
func ExportHotelFoodSummary(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("GET /api/admin/export-hotel-food-summary-xlsx", AdminMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rows, err := as.Ledger.Snapshot(r.Context())
		as.MetricChans.DatabaseRead <- float64(time.Since(start).Microseconds())
		if err != nil {
			slog.Error("can't snapshot the ledger", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		data, filename, err := export.HotelFoodSummary(
			report.BuildHotelPivot(rows),
			report.BuildFoodPivot(rows),
			rows,
			time.Now().In(as.Config.GetLocation()),
		)
		if err != nil {
			slog.Error("can't build summary workbook", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		metric.CountExport("hotel_food_summary_xlsx")
		sendAttachment(w, data, filename, xlsxContentType)
	}))
}

// ExportNamecards streams the badge PDF, six cards to an A4 page.
func ExportNamecards(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("GET /api/admin/export-namecards-pdf", AdminMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFromQuery(w, r)
		if !ok {
			return
		}

		attendees, ok := listAttendees(w, r, as, scope)
		if !ok {
			return
		}
		if len(attendees) == 0 {
			writeMessage(w, http.StatusNotFound, "No attendees in scope")
			return
		}

		urls := make([]string, 0, len(attendees))
		for _, a := range attendees {
			urls = append(urls, export.QRSourceURL(a))
		}
		qrImages := export.Prefetch(r.Context(), urls, prefetchWorkers, as.Blob.Fetch)

		fonts := export.BadgeFonts{
			Regular: filepath.Join(as.Config.GetFontDir(), "Sarabun-Regular.ttf"),
			Bold:    filepath.Join(as.Config.GetFontDir(), "Sarabun-Bold.ttf"),
		}
		data, filename, err := export.Namecards(attendees, scope, qrImages, fonts)
		if err != nil {
			slog.Error("can't build namecards", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		metric.CountExport("namecards_pdf")
		sendAttachment(w, data, filename, "application/pdf")
	}))
}

func scopeFromQuery(w http.ResponseWriter, r *http.Request) (export.Scope, bool) {
	raw := r.URL.Query().Get("region")
	if raw == "" || raw == "all" {
		return export.Scope{}, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > 9 {
		writeMessage(w, http.StatusBadRequest, "region must be 0-9 or \"all\"")
		return export.Scope{}, false
	}
	return export.Scope{Region: &n}, true
}

func listAttendees(w http.ResponseWriter, r *http.Request, as *utils.AppState, scope export.Scope) ([]model.Attendee, bool) {
	start := time.Now()
	attendees, err := as.Ledger.List(r.Context(), scope.Region)
	as.MetricChans.DatabaseRead <- float64(time.Since(start).Microseconds())
	if err != nil {
		slog.Error("can't list attendees", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	return attendees, true
}

func sendAttachment(w http.ResponseWriter, data []byte, filename, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
