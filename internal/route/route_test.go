package route_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/xuri/excelize/v2"

	"seminar-checkin/internal/attendee"
	"seminar-checkin/internal/blob"
	"seminar-checkin/internal/ledger"
	"seminar-checkin/internal/model"
	"seminar-checkin/internal/route"
	"seminar-checkin/internal/utils"
)

const testAdminKey = "test-admin-key"

func newTestServer(t *testing.T) (*http.ServeMux, *utils.AppState) {
	t.Helper()

	t.Setenv("ADMIN_API_KEY", testAdminKey)
	t.Setenv("BLOB_DIR", t.TempDir())
	t.Setenv("BLOB_PUBLIC_BASE_URL", "http://localhost:8080/blob")
	t.Setenv("TIMEZONE", "UTC")

	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// one pool connection so every caller sees the same in-memory db
	db.SetMaxOpenConns(1)
	bundb := bun.NewDB(db, sqlitedialect.New())
	if err := model.CreateSchema(bundb); err != nil {
		t.Fatal(err)
	}

	as := &utils.AppState{
		Config:      utils.NewConfig(),
		RawDB:       db,
		BunDB:       bundb,
		Ledger:      ledger.New(bundb),
		MetricChans: utils.NewMetric(),
	}
	as.Blob = &blob.FSStore{
		Dir:     as.Config.GetBlobDir(),
		BaseURL: as.Config.GetBlobPublicBaseURL(),
	}

	// drain the latency channels in place of the metric collectors
	go func() {
		for {
			select {
			case <-as.MetricChans.DatabaseRead:
			case <-as.MetricChans.DatabaseWrite:
			}
		}
	}()

	muxer := http.NewServeMux()
	route.CheckIn(muxer, as)
	route.Register(muxer, as)
	route.UploadSlip(muxer, as)
	route.Lookup(muxer, as)
	route.ListAttendees(muxer, as)
	route.Import(muxer, as)
	route.ForceCheckIn(muxer, as)
	route.UpdateAttendee(muxer, as)
	route.DeleteAttendee(muxer, as)
	route.ClearSlip(muxer, as)
	route.ExportAttendees(muxer, as)
	route.ExportHotelFoodSummary(muxer, as)
	route.ExportNamecards(muxer, as)
	return muxer, as
}

func seedAttendee(t *testing.T, as *utils.AppState, token string) model.Attendee {
	t.Helper()
	attendeeModel := model.Attendee{
		ID:          uuid.NewString(),
		FullName:    "สมชาย ใจดี",
		TicketToken: token,
		Region:      3,
	}
	if _, err := as.BunDB.NewInsert().Model(&attendeeModel).Exec(context.Background()); err != nil {
		t.Fatal(err)
	}
	return attendeeModel
}

func doJSON(t *testing.T, muxer *http.ServeMux, method, target, adminKey string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if adminKey != "" {
		req.Header.Set(route.AdminKeyHeader, adminKey)
	}
	w := httptest.NewRecorder()
	muxer.ServeHTTP(w, req)
	return w
}

func TestAdminMiddleware(t *testing.T) {
	muxer, _ := newTestServer(t)

	if w := doJSON(t, muxer, "GET", "/api/admin/attendees", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without key, got %d", w.Code)
	}
	if w := doJSON(t, muxer, "GET", "/api/admin/attendees", "wrong", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with wrong key, got %d", w.Code)
	}
	if w := doJSON(t, muxer, "GET", "/api/admin/attendees", testAdminKey, nil); w.Code != http.StatusOK {
		t.Errorf("expected 200 with valid key, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCheckInRoute(t *testing.T) {
	muxer, as := newTestServer(t)
	seedAttendee(t, as, "T1")

	body := map[string]string{"ticket_token": "T1", "food_type": "ฮาลาล"}
	w := doJSON(t, muxer, "POST", "/api/checkin", "", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var first struct {
		FoodType         string `json:"foodType"`
		CheckedInAt      string `json:"checkedInAt"`
		AlreadyCheckedIn bool   `json:"alreadyCheckedIn"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &first); err != nil {
		t.Fatal(err)
	}
	if first.AlreadyCheckedIn {
		t.Error("first scan must not report alreadyCheckedIn")
	}
	if first.FoodType != string(attendee.FOOD_TYPE_HALAL) {
		t.Errorf("expected halal food type, got %q", first.FoodType)
	}

	w = doJSON(t, muxer, "POST", "/api/checkin", "", body)
	var second struct {
		CheckedInAt      string `json:"checkedInAt"`
		AlreadyCheckedIn bool   `json:"alreadyCheckedIn"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &second); err != nil {
		t.Fatal(err)
	}
	if !second.AlreadyCheckedIn {
		t.Error("second scan must report alreadyCheckedIn")
	}
	if second.CheckedInAt != first.CheckedInAt {
		t.Errorf("repeat scan changed the timestamp: %q != %q", second.CheckedInAt, first.CheckedInAt)
	}

	if w := doJSON(t, muxer, "POST", "/api/checkin", "", map[string]string{"ticket_token": "nope"}); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown token, got %d", w.Code)
	}
	if w := doJSON(t, muxer, "POST", "/api/checkin", "", map[string]string{}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing token, got %d", w.Code)
	}
}

func TestLookupRoute(t *testing.T) {
	muxer, as := newTestServer(t)
	seedAttendee(t, as, "T1")

	w := doJSON(t, muxer, "GET", "/api/attendee?token=T1", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		FullName string `json:"fullName"`
		Region   int    `json:"region"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.FullName != "สมชาย ใจดี" || resp.Region != 3 {
		t.Errorf("unexpected lookup payload: %+v", resp)
	}

	if w := doJSON(t, muxer, "GET", "/api/attendee?token=nope", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestImportRoute(t *testing.T) {
	t.Setenv("EVENT_ID", "evt-1")
	muxer, as := newTestServer(t)

	eventModel := model.Event{ID: "evt-1", Name: "seminar"}
	if _, err := as.BunDB.NewInsert().Model(&eventModel).Exec(context.Background()); err != nil {
		t.Fatal(err)
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"ชื่อ-นามสกุล", "Token", "ประเภทอาหาร"},
		{"สมชาย", "T1", "ฮาลาล"},
		{"ไม่มีโทเคน", "", ""},
		{"สมหญิง", "T2", "มังสวิรัติ"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	workbook, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "attendees.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(workbook.Bytes()); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/api/admin/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(route.AdminKeyHeader, testAdminKey)
	w := httptest.NewRecorder()
	muxer.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		AcceptedCount int `json:"acceptedCount"`
		Skipped       int `json:"skipped"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.AcceptedCount != 2 || resp.Skipped != 1 {
		t.Errorf("expected 2 imported / 1 skipped, got %+v", resp)
	}

	if _, err := as.Ledger.GetByToken(context.Background(), "T2"); err != nil {
		t.Errorf("imported attendee not found: %v", err)
	}
}

func TestForceCheckInRoute(t *testing.T) {
	muxer, as := newTestServer(t)
	seeded := seedAttendee(t, as, "T1")

	w := doJSON(t, muxer, "POST", "/api/admin/force-checkin", testAdminKey,
		map[string]string{"attendeeId": seeded.ID, "action": "checkin"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, muxer, "POST", "/api/admin/force-checkin", testAdminKey,
		map[string]string{"attendeeId": seeded.ID, "action": "uncheckin"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	a, err := as.Ledger.GetByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatal(err)
	}
	if a.CheckedInAt != nil {
		t.Error("expected checked_in_at cleared after uncheckin")
	}

	w = doJSON(t, muxer, "POST", "/api/admin/force-checkin", testAdminKey,
		map[string]string{"attendeeId": seeded.ID, "action": "banana"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid action, got %d", w.Code)
	}
}

func TestUpdateAndDeleteRoutes(t *testing.T) {
	muxer, as := newTestServer(t)
	seeded := seedAttendee(t, as, "T1")

	w := doJSON(t, muxer, "POST", "/api/admin/update-attendee", testAdminKey,
		map[string]any{"attendeeId": seeded.ID, "hotel_name": "โรงแรม ก", "region": 5})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	a, err := as.Ledger.GetByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatal(err)
	}
	if a.HotelName != "โรงแรม ก" || a.Region != 5 {
		t.Errorf("update not applied: %+v", a)
	}

	w = doJSON(t, muxer, "POST", "/api/admin/update-attendee", testAdminKey,
		map[string]any{"attendeeId": seeded.ID, "region": 42})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for out-of-range region, got %d", w.Code)
	}

	w = doJSON(t, muxer, "POST", "/api/admin/delete-attendee", testAdminKey,
		map[string]string{"attendeeId": seeded.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, muxer, "POST", "/api/admin/delete-attendee", testAdminKey,
		map[string]string{"attendeeId": seeded.ID})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on double delete, got %d", w.Code)
	}
}

func TestRegisterRoute(t *testing.T) {
	t.Setenv("EVENT_ID", "evt-1")
	muxer, as := newTestServer(t)

	eventModel := model.Event{ID: "evt-1", Name: "seminar"}
	if _, err := as.BunDB.NewInsert().Model(&eventModel).Exec(context.Background()); err != nil {
		t.Fatal(err)
	}

	participants, err := json.Marshal([]map[string]string{
		{"fullName": "สมชาย ใจดี", "position": "chief_judge", "foodType": "มังสวิรัติ"},
		{"fullName": "สมหญิง รักดี", "position": "associate_judge"},
	})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("organization", "ศาลเยาวชนและครอบครัวจังหวัดเชียงใหม่")
	mw.WriteField("province", "เชียงใหม่")
	mw.WriteField("region", "5")
	mw.WriteField("hotelName", "โรงแรม ก")
	mw.WriteField("participants", string(participants))
	mw.Close()

	req := httptest.NewRequest("POST", "/api/register", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	muxer.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Registered   int      `json:"registered"`
		TicketTokens []string `json:"ticketTokens"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Registered != 2 || len(resp.TicketTokens) != 2 {
		t.Fatalf("expected 2 registrations, got %+v", resp)
	}

	a, err := as.Ledger.GetByToken(context.Background(), resp.TicketTokens[0])
	if err != nil {
		t.Fatal(err)
	}
	if a.JobPosition != "ผู้พิพากษาหัวหน้าศาลฯ" {
		t.Errorf("unexpected job position %q", a.JobPosition)
	}
	if a.Region != 5 {
		t.Errorf("expected region 5, got %d", a.Region)
	}
}

func TestExportRoutes(t *testing.T) {
	muxer, as := newTestServer(t)
	seedAttendee(t, as, "T1")

	w := doJSON(t, muxer, "GET", "/api/admin/export-hotel-food-summary-xlsx", testAdminKey, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "hotel_food_summary_") {
		t.Errorf("unexpected content disposition %q", cd)
	}
	if _, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes())); err != nil {
		t.Errorf("response is not a readable workbook: %v", err)
	}

	w = doJSON(t, muxer, "GET", "/api/admin/export-attendees?region=3", testAdminKey, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attendees-region-3-") {
		t.Errorf("unexpected content disposition %q", cd)
	}

	if w := doJSON(t, muxer, "GET", "/api/admin/export-attendees?region=12", testAdminKey, nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for out-of-range region, got %d", w.Code)
	}
	if w := doJSON(t, muxer, "GET", "/api/admin/export-namecards-pdf?region=7", testAdminKey, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for empty scope, got %d", w.Code)
	}
}
