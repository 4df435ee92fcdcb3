package report_test

import (
	"testing"

	"seminar-checkin/internal/attendee"
	"seminar-checkin/internal/report"
)

func snapshot() []report.Row {
	return []report.Row{
		{Region: 0, Hotel: "โรงแรม ก", FoodType: attendee.FOOD_TYPE_NORMAL},
		{Region: 0, Hotel: "โรงแรม ก", FoodType: attendee.FOOD_TYPE_HALAL},
		{Region: 3, Hotel: "", FoodType: attendee.FOOD_TYPE_VEGETARIAN},
		{Region: 3, Hotel: "โรงแรม ข", FoodType: attendee.FOOD_TYPE_VEGAN},
		{Region: 9, Hotel: "โรงแรม ข", FoodType: attendee.FOOD_TYPE_NONE},
		// out of range, must be absent everywhere incl. grand totals
		{Region: 15, Hotel: "โรงแรม ก", FoodType: attendee.FOOD_TYPE_NORMAL},
		{Region: attendee.RegionUnassigned, Hotel: "โรงแรม ข", FoodType: attendee.FOOD_TYPE_HALAL},
	}
}

func TestHotelPivot(t *testing.T) {
	p := report.BuildHotelPivot(snapshot())

	if len(p.RowLabels) != 10 || len(p.Cells) != 10 {
		t.Fatalf("hotel pivot must have 10 region rows, got %d", len(p.Cells))
	}
	if p.GrandTotal != 5 {
		t.Errorf("grand total should count only region 0-9 rows, got %d", p.GrandTotal)
	}

	col := func(label string) int {
		for i, l := range p.ColLabels {
			if l == label {
				return i
			}
		}
		t.Fatalf("column %q not found in %v", label, p.ColLabels)
		return -1
	}

	if got := p.Cells[0][col("โรงแรม ก")]; got != 2 {
		t.Errorf("region 0 x โรงแรม ก should be 2, got %d", got)
	}
	if got := p.Cells[3][col(report.UnspecifiedHotelLabel)]; got != 1 {
		t.Errorf("blank hotel should bucket as %q, got %d", report.UnspecifiedHotelLabel, got)
	}
	if p.RowTotals[3] != 2 || p.RowTotals[9] != 1 {
		t.Errorf("unexpected row totals: %v", p.RowTotals)
	}

	sum := 0
	for _, ct := range p.ColTotals {
		sum += ct
	}
	if sum != p.GrandTotal {
		t.Errorf("column totals %d disagree with grand total %d", sum, p.GrandTotal)
	}
}

func TestFoodPivot(t *testing.T) {
	p := report.BuildFoodPivot(snapshot())

	if len(p.ColLabels) != 4 {
		t.Fatalf("food pivot has a fixed 4-bucket column set, got %d", len(p.ColLabels))
	}
	if p.GrandTotal != 5 {
		t.Errorf("grand total should count only region 0-9 rows, got %d", p.GrandTotal)
	}

	// vegan and blank both collapse into the unknown bucket
	if got := p.ColTotals[3]; got != 2 {
		t.Errorf("unknown bucket should hold vegan + blank = 2, got %d", got)
	}
	if got := p.Cells[0][2]; got != 1 {
		t.Errorf("region 0 halal should be 1, got %d", got)
	}
}

// hotel grand == food grand == count of rows with region in [0,9]
func TestPivotTotalConsistency(t *testing.T) {
	rows := snapshot()
	hotel := report.BuildHotelPivot(rows)
	food := report.BuildFoodPivot(rows)

	valid := 0
	for _, r := range rows {
		if attendee.IsValidRegion(r.Region) {
			valid++
		}
	}
	if hotel.GrandTotal != valid || food.GrandTotal != valid {
		t.Errorf("grand totals diverge: hotel=%d food=%d valid=%d",
			hotel.GrandTotal, food.GrandTotal, valid)
	}
}

func TestBucketFoodType(t *testing.T) {
	cases := map[attendee.FoodType]report.FoodBucket{
		attendee.FOOD_TYPE_NORMAL:         report.FOOD_BUCKET_NORMAL,
		attendee.FOOD_TYPE_VEGETARIAN:     report.FOOD_BUCKET_VEGETARIAN,
		attendee.FOOD_TYPE_HALAL:          report.FOOD_BUCKET_HALAL,
		attendee.FOOD_TYPE_NO_PORK:        report.FOOD_BUCKET_UNKNOWN,
		attendee.FOOD_TYPE_VEGAN:          report.FOOD_BUCKET_UNKNOWN,
		attendee.FOOD_TYPE_SEAFOOD_ALLERG: report.FOOD_BUCKET_UNKNOWN,
		attendee.FOOD_TYPE_OTHER:          report.FOOD_BUCKET_UNKNOWN,
		attendee.FOOD_TYPE_NONE:           report.FOOD_BUCKET_UNKNOWN,
	}
	for ft, want := range cases {
		if got := report.BucketFoodType(ft); got != want {
			t.Errorf("BucketFoodType(%q) = %q, want %q", ft, got, want)
		}
	}
}

func TestEmptySnapshot(t *testing.T) {
	hotel := report.BuildHotelPivot(nil)
	food := report.BuildFoodPivot(nil)
	if hotel.GrandTotal != 0 || food.GrandTotal != 0 {
		t.Error("empty snapshot should produce zero grand totals")
	}
	if len(hotel.Cells) != 10 || len(food.Cells) != 10 {
		t.Error("pivots keep their fixed 10-region shape even when empty")
	}
}
