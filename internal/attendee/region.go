package attendee

import (
	"fmt"
	"strconv"
	"strings"
)

// RegionUnassigned marks rows whose region failed to parse or fell outside
// [0,9]; they are kept in the ledger but excluded from regional reports.
const RegionUnassigned = -1

// textual spellings of the central jurisdiction, all mapped to region 0
var centralRegionAliases = map[string]struct{}{
	"กลาง":                      {},
	"ส่วนกลาง":                  {},
	"ภาคกลาง":                   {},
	"central":                   {},
	"ศาลเยาวชนและครอบครัวกลาง":  {},
}

// ParseRegion turns raw spreadsheet/form input into a region bucket.
// Numeric strings 0-9 pass through, central-zone spellings become 0 and
// everything else becomes RegionUnassigned. Bad input is a reporting
// category here, never an error.
func ParseRegion(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return RegionUnassigned
	}
	if _, ok := centralRegionAliases[strings.ToLower(s)]; ok {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 9 {
		return RegionUnassigned
	}
	return n
}

// IsValidRegion reports whether n is one of the 10 regional buckets.
func IsValidRegion(n int) bool {
	return n >= 0 && n <= 9
}

// RegionLabel is the report row label for a region bucket.
func RegionLabel(n int) string {
	if n == 0 {
		return "ภาค 0 (ศาลเยาวชนและครอบครัวกลาง - กรุงเทพมหานคร)"
	}
	return fmt.Sprintf("ภาค %d", n)
}
