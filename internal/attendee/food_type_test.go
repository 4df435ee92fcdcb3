package attendee_test

import (
	"testing"

	"seminar-checkin/internal/attendee"
)

func TestNormalizeFoodType(t *testing.T) {
	cases := map[string]attendee.FoodType{
		"normal":       attendee.FOOD_TYPE_NORMAL,
		" อาหารทั่วไป ": attendee.FOOD_TYPE_NORMAL,
		"No Pork":      attendee.FOOD_TYPE_NO_PORK,
		"งดหมู":        attendee.FOOD_TYPE_NO_PORK,
		"มังสวิรัติ":   attendee.FOOD_TYPE_VEGETARIAN,
		"เจ":           attendee.FOOD_TYPE_VEGAN,
		"ฮาลาล":        attendee.FOOD_TYPE_HALAL,
		"seafood":      attendee.FOOD_TYPE_SEAFOOD_ALLERG,
		"อื่น ๆ":       attendee.FOOD_TYPE_OTHER,
		"":             attendee.FOOD_TYPE_NONE,
		"   ":          attendee.FOOD_TYPE_NONE,
	}
	for input, want := range cases {
		if got := attendee.NormalizeFoodType(input); got != want {
			t.Errorf("NormalizeFoodType(%q) = %q, want %q", input, got, want)
		}
	}
}

// any non-blank input must land inside the closed set, never pass through
func TestNormalizeFoodTypeClosure(t *testing.T) {
	for _, input := range []string{"banana", "ไก่ทอด", "NORMAL!!", "x", "123"} {
		got := attendee.NormalizeFoodType(input)
		if got != attendee.FOOD_TYPE_OTHER && !attendee.IsValidFoodType(string(got)) {
			t.Errorf("NormalizeFoodType(%q) = %q escaped the closed set", input, got)
		}
		if got == attendee.FOOD_TYPE_NONE {
			t.Errorf("NormalizeFoodType(%q) dropped non-blank input", input)
		}
	}
}

func TestIsValidFoodType(t *testing.T) {
	if !attendee.IsValidFoodType("halal") {
		t.Error("halal should be a valid food type")
	}
	if attendee.IsValidFoodType("banana") {
		t.Error("banana should not be a valid food type")
	}
	if attendee.IsValidFoodType("") {
		t.Error("empty string should not be a valid food type")
	}
}

func TestParseRegion(t *testing.T) {
	cases := map[string]int{
		"0":        0,
		"9":        9,
		" 5 ":      5,
		"กลาง":     0,
		"ส่วนกลาง": 0,
		"Central":  0,
		"10":       attendee.RegionUnassigned,
		"-1":       attendee.RegionUnassigned,
		"15":       attendee.RegionUnassigned,
		"abc":      attendee.RegionUnassigned,
		"":         attendee.RegionUnassigned,
	}
	for input, want := range cases {
		if got := attendee.ParseRegion(input); got != want {
			t.Errorf("ParseRegion(%q) = %d, want %d", input, got, want)
		}
	}
}
