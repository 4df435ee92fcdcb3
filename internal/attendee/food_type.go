package attendee

import "strings"

type FoodType string

const (
	FOOD_TYPE_NONE           = FoodType("")
	FOOD_TYPE_NORMAL         = FoodType("normal")
	FOOD_TYPE_NO_PORK        = FoodType("no_pork")
	FOOD_TYPE_VEGETARIAN     = FoodType("vegetarian")
	FOOD_TYPE_VEGAN          = FoodType("vegan")
	FOOD_TYPE_HALAL          = FoodType("halal")
	FOOD_TYPE_SEAFOOD_ALLERG = FoodType("seafood_allergy")
	FOOD_TYPE_OTHER          = FoodType("other")
)

// the persisted constraint set; FOOD_TYPE_NONE is "column is null", not a member
var AllFoodTypes = []FoodType{
	FOOD_TYPE_NORMAL,
	FOOD_TYPE_NO_PORK,
	FOOD_TYPE_VEGETARIAN,
	FOOD_TYPE_VEGAN,
	FOOD_TYPE_HALAL,
	FOOD_TYPE_SEAFOOD_ALLERG,
	FOOD_TYPE_OTHER,
}

var foodTypeSynonyms = map[string]FoodType{
	"normal":       FOOD_TYPE_NORMAL,
	"ทั่วไป":       FOOD_TYPE_NORMAL,
	"อาหารทั่วไป":  FOOD_TYPE_NORMAL,
	"no_pork":      FOOD_TYPE_NO_PORK,
	"no pork":      FOOD_TYPE_NO_PORK,
	"ไม่ทานหมู":    FOOD_TYPE_NO_PORK,
	"ไม่กินหมู":    FOOD_TYPE_NO_PORK,
	"งดหมู":        FOOD_TYPE_NO_PORK,
	"vegetarian":   FOOD_TYPE_VEGETARIAN,
	"มังสวิรัติ":   FOOD_TYPE_VEGETARIAN,
	"มังสะวิรัติ":  FOOD_TYPE_VEGETARIAN,
	"vegan":        FOOD_TYPE_VEGAN,
	"วีแกน":        FOOD_TYPE_VEGAN,
	"เจ":           FOOD_TYPE_VEGAN,
	"เจ / วีแกน":   FOOD_TYPE_VEGAN,
	"halal":        FOOD_TYPE_HALAL,
	"ฮาลาล":        FOOD_TYPE_HALAL,
	"seafood_allergy": FOOD_TYPE_SEAFOOD_ALLERG,
	"seafood":         FOOD_TYPE_SEAFOOD_ALLERG,
	"แพ้อาหารทะเล":    FOOD_TYPE_SEAFOOD_ALLERG,
	"other":           FOOD_TYPE_OTHER,
	"อื่น":            FOOD_TYPE_OTHER,
	"อื่น ๆ":          FOOD_TYPE_OTHER,
}

// NormalizeFoodType maps arbitrary spreadsheet/form input onto the closed
// food type set. Blank input stays FOOD_TYPE_NONE; anything non-blank that
// isn't a known synonym lands in FOOD_TYPE_OTHER so imports never clash
// with the column constraint. Unrecognized input falling into "other" is
// intentional, not a parse failure.
func NormalizeFoodType(raw string) FoodType {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return FOOD_TYPE_NONE
	}
	if ft, ok := foodTypeSynonyms[s]; ok {
		return ft
	}
	return FOOD_TYPE_OTHER
}

// IsValidFoodType reports whether s is one of the persisted enum members.
func IsValidFoodType(s string) bool {
	for _, ft := range AllFoodTypes {
		if string(ft) == s {
			return true
		}
	}
	return false
}

// ThaiLabel is the human-facing label used in exported workbooks.
func (ft FoodType) ThaiLabel() string {
	switch ft {
	case FOOD_TYPE_NORMAL:
		return "อาหารทั่วไป"
	case FOOD_TYPE_NO_PORK:
		return "ไม่ทานหมู"
	case FOOD_TYPE_VEGETARIAN:
		return "มังสวิรัติ"
	case FOOD_TYPE_VEGAN:
		return "เจ / วีแกน"
	case FOOD_TYPE_HALAL:
		return "ฮาลาล"
	case FOOD_TYPE_SEAFOOD_ALLERG:
		return "แพ้อาหารทะเล"
	default:
		return "ไม่ระบุ"
	}
}
