package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"seminar-checkin/internal/attendee"
	"seminar-checkin/internal/model"
)

var attendeeHeaders = []interface{}{
	"Event ID", "ชื่อ-นามสกุล", "หน่วยงาน", "จังหวัด", "ภาค", "ตำแหน่ง",
	"เบอร์โทร", "ประเภทอาหาร", "ชื่อผู้ประสานงาน", "โรงแรม",
	"สถานะเช็กอิน", "เวลาเช็กอิน", "สลิป (รูป)", "QR (รูป)", "Token",
	"วันที่เพิ่มข้อมูล",
}

var attendeeColWidths = []float64{20, 30, 28, 18, 12, 24, 16, 18, 26, 24, 16, 22, 20, 20, 26, 22}

const (
	slipColumn = 13 // "สลิป (รูป)"
	qrColumn   = 14 // "QR (รูป)"
	imageRowHeight = 66
)

// imageExtension guesses the embed format from the URL; anything that is
// not png/jpeg is skipped rather than risking a corrupt workbook.
func imageExtension(url string) string {
	lower := strings.ToLower(url)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return ".png"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return ".jpg"
	default:
		return ""
	}
}

func sheetNameFor(region int) string {
	if attendee.IsValidRegion(region) {
		return fmt.Sprintf("ภาค %d", region)
	}
	return "ไม่ระบุภาค"
}

// Attendees renders the ledger rows into one worksheet per region bucket
// (or a single sheet for a region-scoped export), embedding slip and QR
// images where their bytes were prefetched. A missing image degrades its
// row only; the row's text cells are always written.
func Attendees(attendees []model.Attendee, scope Scope, images map[string][]byte, now time.Time) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, "", fmt.Errorf("export.Attendees: %w", err)
	}

	// bucket rows by sheet, preserving the caller's stable ordering
	type sheetRows struct {
		name string
		rows []model.Attendee
	}
	sheets := make([]sheetRows, 0, 11)
	sheetIndex := make(map[string]int)
	for _, a := range attendees {
		name := sheetNameFor(a.Region)
		if scope.Region != nil {
			name = sheetNameFor(*scope.Region)
		}
		i, ok := sheetIndex[name]
		if !ok {
			i = len(sheets)
			sheetIndex[name] = i
			sheets = append(sheets, sheetRows{name: name})
		}
		sheets[i].rows = append(sheets[i].rows, a)
	}
	if len(sheets) == 0 {
		sheets = append(sheets, sheetRows{name: sheetNameFor(func() int {
			if scope.Region != nil {
				return *scope.Region
			}
			return attendee.RegionUnassigned
		}())})
	}

	for si, sh := range sheets {
		if si == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sh.name); err != nil {
				return nil, "", fmt.Errorf("export.Attendees: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, "", fmt.Errorf("export.Attendees: %w", err)
		}

		if err := f.SetSheetRow(sh.name, "A1", &attendeeHeaders); err != nil {
			return nil, "", fmt.Errorf("export.Attendees: %w", err)
		}
		if err := f.SetCellStyle(sh.name, "A1", "P1", headerStyle); err != nil {
			return nil, "", fmt.Errorf("export.Attendees: %w", err)
		}
		if err := f.SetPanes(sh.name, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return nil, "", fmt.Errorf("export.Attendees: %w", err)
		}
		for col, width := range attendeeColWidths {
			name, _ := excelize.ColumnNumberToName(col + 1)
			if err := f.SetColWidth(sh.name, name, name, width); err != nil {
				return nil, "", fmt.Errorf("export.Attendees: %w", err)
			}
		}

		for i, a := range sh.rows {
			rowNum := i + 2
			writeAttendeeRow(f, sh.name, rowNum, a)
			embedRowImages(f, sh.name, rowNum, a, images)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("export.Attendees: %w", err)
	}
	return buf.Bytes(), AttendeesFilename(scope, now), nil
}

func writeAttendeeRow(f *excelize.File, sheet string, rowNum int, a model.Attendee) {
	regionCell := interface{}("")
	if attendee.IsValidRegion(a.Region) {
		regionCell = a.Region
	}
	status := "ยังไม่เช็กอิน"
	checkedInAt := ""
	if a.CheckedInAt != nil {
		status = "เช็กอินแล้ว"
		checkedInAt = a.CheckedInAt.Format(time.RFC3339)
	}
	row := []interface{}{
		a.EventID, a.FullName, a.Organization, a.Province, regionCell,
		a.JobPosition, a.Phone, a.FoodType.ThaiLabel(), a.CoordinatorName,
		a.HotelName, status, checkedInAt, "", "", a.TicketToken,
		a.CreatedAt.Format(time.RFC3339),
	}
	cell, _ := excelize.CoordinatesToCellName(1, rowNum)
	// SetSheetRow only fails on bad cell references, which are fixed here
	_ = f.SetSheetRow(sheet, cell, &row)
}

func embedRowImages(f *excelize.File, sheet string, rowNum int, a model.Attendee, images map[string][]byte) {
	embed := func(column int, url string) bool {
		ext := imageExtension(url)
		if ext == "" {
			return false
		}
		data, ok := images[url]
		if !ok {
			return false
		}
		cell, _ := excelize.CoordinatesToCellName(column, rowNum)
		if err := f.AddPictureFromBytes(sheet, cell, &excelize.Picture{
			Extension: ext,
			File:      data,
			Format:    &excelize.GraphicOptions{AutoFit: true},
		}); err != nil {
			return false
		}
		return true
	}

	embedded := false
	if a.SlipURL != "" && embed(slipColumn, a.SlipURL) {
		embedded = true
	}
	if a.QRImageURL != "" && embed(qrColumn, a.QRImageURL) {
		embedded = true
	}
	if embedded {
		_ = f.SetRowHeight(sheet, rowNum, imageRowHeight)
	}
}
