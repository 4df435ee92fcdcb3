package attendee

import "strings"

// RawRow is one spreadsheet row keyed by its (arbitrary, possibly Thai)
// header label. Values are the raw cell text.
type RawRow map[string]string

// Draft is a canonical attendee shape produced from a RawRow, ready for the
// ledger's upsert. Region is RegionUnassigned when absent or out of range,
// FoodType is FOOD_TYPE_NONE when the cell was blank.
type Draft struct {
	FullName         string
	TicketToken      string
	Phone            string
	Organization     string
	JobPosition      string
	Province         string
	Region           int
	HotelName        string
	CoordinatorName  string
	CoordinatorPhone string
	QRImageURL       string
	FoodType         FoodType
}

// per canonical field, the accepted header spellings in priority order;
// matching is case-insensitive on the trimmed header
var headerAliases = map[string][]string{
	"full_name":         {"full_name", "ชื่อ-นามสกุล", "ชื่อ-สกุล", "ชื่อ"},
	"ticket_token":      {"ticket_token", "token", "โทเคน"},
	"phone":             {"phone", "เบอร์โทร", "โทรศัพท์", "phone_number"},
	"organization":      {"organization", "หน่วยงาน", "หน่วยงาน/สังกัด", "องค์กร"},
	"job_position":      {"job_position", "ตำแหน่ง", "ตำแหน่งงาน"},
	"province":          {"province", "จังหวัด"},
	"region":            {"region", "สังกัดภาค", "ภาค", "ภาค (1-9)"},
	"hotel_name":        {"hotel_name", "โรงแรม", "ชื่อโรงแรม"},
	"coordinator_name":  {"coordinator_name", "ชื่อผู้ประสานงาน", "ผู้ประสานงาน"},
	"coordinator_phone": {"coordinator_phone", "เบอร์ผู้ประสานงาน"},
	"qr_image_url":      {"qr_image_url", "qr url", "qr_url"},
	"food_type":         {"food_type", "ประเภทอาหาร"},
}

func (r RawRow) lookup(field string) string {
	for _, alias := range headerAliases[field] {
		for header, value := range r {
			if strings.EqualFold(strings.TrimSpace(header), alias) {
				if v := strings.TrimSpace(value); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

// RowsFromSheet zips a sheet (header row first) into RawRows. Short data
// rows are padded, extra cells beyond the header are dropped.
func RowsFromSheet(sheet [][]string) []RawRow {
	if len(sheet) < 2 {
		return nil
	}
	header := sheet[0]
	rows := make([]RawRow, 0, len(sheet)-1)
	for _, cells := range sheet[1:] {
		row := make(RawRow, len(header))
		for i, label := range header {
			if strings.TrimSpace(label) == "" {
				continue
			}
			if i < len(cells) {
				row[label] = cells[i]
			} else {
				row[label] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Canonicalize maps raw rows onto attendee drafts. Rows missing either of
// the two mandatory fields (full name, ticket token) are dropped and
// counted, never surfaced as errors.
func Canonicalize(rows []RawRow) (drafts []Draft, skipped int) {
	drafts = make([]Draft, 0, len(rows))
	for _, row := range rows {
		fullName := row.lookup("full_name")
		ticketToken := row.lookup("ticket_token")
		if fullName == "" || ticketToken == "" {
			skipped++
			continue
		}
		drafts = append(drafts, Draft{
			FullName:         fullName,
			TicketToken:      ticketToken,
			Phone:            row.lookup("phone"),
			Organization:     row.lookup("organization"),
			JobPosition:      row.lookup("job_position"),
			Province:         row.lookup("province"),
			Region:           ParseRegion(row.lookup("region")),
			HotelName:        row.lookup("hotel_name"),
			CoordinatorName:  row.lookup("coordinator_name"),
			CoordinatorPhone: row.lookup("coordinator_phone"),
			QRImageURL:       row.lookup("qr_image_url"),
			FoodType:         NormalizeFoodType(row.lookup("food_type")),
		})
	}
	return drafts, skipped
}
