package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"seminar-checkin/internal/report"
)

// HotelFoodSummary renders the two pivots plus a raw projection sheet
// into one workbook.
func HotelFoodSummary(hotel, food report.Pivot, raw []report.Row, now time.Time) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), "Hotel Summary"); err != nil {
		return nil, "", fmt.Errorf("export.HotelFoodSummary: %w", err)
	}
	if err := writePivotSheet(f, "Hotel Summary", hotel); err != nil {
		return nil, "", fmt.Errorf("export.HotelFoodSummary: %w", err)
	}

	if _, err := f.NewSheet("Food Summary"); err != nil {
		return nil, "", fmt.Errorf("export.HotelFoodSummary: %w", err)
	}
	if err := writePivotSheet(f, "Food Summary", food); err != nil {
		return nil, "", fmt.Errorf("export.HotelFoodSummary: %w", err)
	}

	if _, err := f.NewSheet("Raw (Attendees)"); err != nil {
		return nil, "", fmt.Errorf("export.HotelFoodSummary: %w", err)
	}
	if err := writeRawSheet(f, "Raw (Attendees)", raw); err != nil {
		return nil, "", fmt.Errorf("export.HotelFoodSummary: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("export.HotelFoodSummary: %w", err)
	}
	return buf.Bytes(), SummaryFilename(now), nil
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
	}
}

func writePivotSheet(f *excelize.File, sheet string, p report.Pivot) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})
	if err != nil {
		return err
	}
	countStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return err
	}

	header := make([]interface{}, 0, len(p.ColLabels)+2)
	header = append(header, "ภาค")
	for _, col := range p.ColLabels {
		header = append(header, col)
	}
	header = append(header, "รวม")
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowHeight(sheet, 1, 22); err != nil {
		return err
	}

	for region, label := range p.RowLabels {
		row := make([]interface{}, 0, len(header))
		row = append(row, label)
		for _, n := range p.Cells[region] {
			row = append(row, n)
		}
		row = append(row, p.RowTotals[region])
		cell, _ := excelize.CoordinatesToCellName(1, region+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	totalRow := make([]interface{}, 0, len(header))
	totalRow = append(totalRow, "รวมทุกภาค")
	for _, n := range p.ColTotals {
		totalRow = append(totalRow, n)
	}
	totalRow = append(totalRow, p.GrandTotal)
	lastRow := len(p.RowLabels) + 2
	cell, _ := excelize.CoordinatesToCellName(1, lastRow)
	if err := f.SetSheetRow(sheet, cell, &totalRow); err != nil {
		return err
	}

	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A2", fmt.Sprintf("A%d", lastRow), labelStyle); err != nil {
		return err
	}
	secondCol, _ := excelize.ColumnNumberToName(2)
	if err := f.SetCellStyle(sheet, secondCol+"2", fmt.Sprintf("%s%d", lastCol, lastRow-1), countStyle); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, secondCol+fmt.Sprintf("%d", lastRow), fmt.Sprintf("%s%d", lastCol, lastRow), totalStyle); err != nil {
		return err
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	}); err != nil {
		return err
	}

	autosizeColumns(f, sheet, header, 50)
	return nil
}

func writeRawSheet(f *excelize.File, sheet string, raw []report.Row) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	header := []interface{}{"region", "hotel_name", "food_type"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "C1", headerStyle); err != nil {
		return err
	}
	for i, r := range raw {
		row := []interface{}{r.Region, report.NormalizeHotelName(r.Hotel), string(report.BucketFoodType(r.FoodType))}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	autosizeColumns(f, sheet, header, 40)
	return nil
}

// autosizeColumns widens each column to roughly its longest header text,
// capped at maxWidth. Cell contents below the header are counts or short
// labels, so the header is the practical maximum.
func autosizeColumns(f *excelize.File, sheet string, header []interface{}, maxWidth float64) {
	for i, h := range header {
		width := 10.0
		if s, ok := h.(string); ok {
			if w := float64(len([]rune(s)) + 2); w > width {
				width = w
			}
		}
		if width > maxWidth {
			width = maxWidth
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, name, name, width)
	}
}
