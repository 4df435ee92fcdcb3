// Package export renders the ledger into its two boundary outputs: xlsx
// workbooks and the printable badge PDF. All renderers are deterministic
// for a given input ordering; only filenames carry the export date.
package export

import (
	"fmt"
	"time"
)

// Scope selects either a single region bucket or the whole ledger.
type Scope struct {
	Region *int // nil = all regions
}

func (s Scope) label() string {
	if s.Region == nil {
		return "all"
	}
	return fmt.Sprintf("%d", *s.Region)
}

func AttendeesFilename(s Scope, now time.Time) string {
	return fmt.Sprintf("attendees-region-%s-%s.xlsx", s.label(), now.Format("2006-01-02"))
}

func SummaryFilename(now time.Time) string {
	return fmt.Sprintf("hotel_food_summary_%s.xlsx", now.Format("2006-01-02"))
}

func NamecardsFilename(s Scope) string {
	return fmt.Sprintf("namecards-region-%s.pdf", s.label())
}
