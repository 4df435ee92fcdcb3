// Package report builds the region pivot tables from a ledger snapshot.
// No I/O happens here; rendering lives in internal/export.
package report

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"seminar-checkin/internal/attendee"
)

// Row is the snapshot projection the pivots consume.
type Row struct {
	Region   int
	Hotel    string
	FoodType attendee.FoodType
}

const UnspecifiedHotelLabel = "ไม่ระบุโรงแรม"

// NormalizeHotelName collapses blank hotel names onto a single label so
// they bucket together in the hotel pivot.
func NormalizeHotelName(name string) string {
	if v := strings.TrimSpace(name); v != "" {
		return v
	}
	return UnspecifiedHotelLabel
}

// the closed food enumeration collapsed onto the 4 reporting buckets
type FoodBucket string

const (
	FOOD_BUCKET_NORMAL     = FoodBucket("normal")
	FOOD_BUCKET_VEGETARIAN = FoodBucket("vegetarian")
	FOOD_BUCKET_HALAL      = FoodBucket("halal")
	FOOD_BUCKET_UNKNOWN    = FoodBucket("unknown")
)

var FoodBuckets = []FoodBucket{
	FOOD_BUCKET_NORMAL,
	FOOD_BUCKET_VEGETARIAN,
	FOOD_BUCKET_HALAL,
	FOOD_BUCKET_UNKNOWN,
}

func (b FoodBucket) ThaiLabel() string {
	switch b {
	case FOOD_BUCKET_NORMAL:
		return "ปกติ"
	case FOOD_BUCKET_VEGETARIAN:
		return "มังสวิรัติ"
	case FOOD_BUCKET_HALAL:
		return "ฮาลาล"
	default:
		return "ไม่ระบุ/อื่น ๆ"
	}
}

// BucketFoodType collapses a food type onto its reporting bucket. The
// low-volume dietary variants report as unknown together with blanks.
func BucketFoodType(ft attendee.FoodType) FoodBucket {
	switch ft {
	case attendee.FOOD_TYPE_NORMAL:
		return FOOD_BUCKET_NORMAL
	case attendee.FOOD_TYPE_VEGETARIAN:
		return FOOD_BUCKET_VEGETARIAN
	case attendee.FOOD_TYPE_HALAL:
		return FOOD_BUCKET_HALAL
	default:
		return FOOD_BUCKET_UNKNOWN
	}
}

const regionCount = 10

// Pivot is a fixed-shape two-axis count table: one row per region bucket
// 0-9 plus row/column/grand totals. Rows with a region outside [0,9] are
// excluded entirely, including from the grand total.
type Pivot struct {
	RowLabels  []string
	ColLabels  []string
	Cells      [][]int // [region][column]
	RowTotals  []int
	ColTotals  []int
	GrandTotal int
}

func newPivot(colLabels []string) Pivot {
	p := Pivot{
		RowLabels: make([]string, regionCount),
		ColLabels: colLabels,
		Cells:     make([][]int, regionCount),
		RowTotals: make([]int, regionCount),
		ColTotals: make([]int, len(colLabels)),
	}
	for region := 0; region < regionCount; region++ {
		p.RowLabels[region] = attendee.RegionLabel(region)
		p.Cells[region] = make([]int, len(colLabels))
	}
	return p
}

func (p *Pivot) add(region, col, n int) {
	p.Cells[region][col] += n
	p.RowTotals[region] += n
	p.ColTotals[col] += n
	p.GrandTotal += n
}

// BuildHotelPivot counts attendees per (region, hotel). Columns are the
// distinct normalized hotel names in Thai-collated order.
func BuildHotelPivot(rows []Row) Pivot {
	counts := make(map[int]map[string]int)
	hotelSet := make(map[string]struct{})
	for _, r := range rows {
		hotel := NormalizeHotelName(r.Hotel)
		hotelSet[hotel] = struct{}{}
		if !attendee.IsValidRegion(r.Region) {
			continue
		}
		if counts[r.Region] == nil {
			counts[r.Region] = make(map[string]int)
		}
		counts[r.Region][hotel]++
	}

	hotels := make([]string, 0, len(hotelSet))
	for h := range hotelSet {
		hotels = append(hotels, h)
	}
	collate.New(language.Thai).SortStrings(hotels)

	p := newPivot(hotels)
	for region, byHotel := range counts {
		for col, hotel := range hotels {
			if n := byHotel[hotel]; n > 0 {
				p.add(region, col, n)
			}
		}
	}
	return p
}

// BuildFoodPivot counts attendees per (region, food bucket) over the fixed
// 4-bucket column set.
func BuildFoodPivot(rows []Row) Pivot {
	labels := make([]string, len(FoodBuckets))
	index := make(map[FoodBucket]int, len(FoodBuckets))
	for i, b := range FoodBuckets {
		labels[i] = b.ThaiLabel()
		index[b] = i
	}

	p := newPivot(labels)
	for _, r := range rows {
		if !attendee.IsValidRegion(r.Region) {
			continue
		}
		p.add(r.Region, index[BucketFoodType(r.FoodType)], 1)
	}
	return p
}
