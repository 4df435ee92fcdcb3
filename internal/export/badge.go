package export

import (
	"fmt"
	"log/slog"

	"github.com/signintech/gopdf"

	"seminar-checkin/internal/attendee"
	"seminar-checkin/internal/model"
)

// 2 columns x 3 rows on A4
const (
	cardsPerRow    = 2
	cardsPerColumn = 3
	CardsPerPage   = cardsPerRow * cardsPerColumn

	cardMargin = 18.0
	qrSize     = 96.0
)

// BadgeFonts are TTF paths for the Thai-capable font pair embedded in the
// badge PDF.
type BadgeFonts struct {
	Regular string
	Bold    string
}

// PageCount is ceil(n / CardsPerPage).
func PageCount(n int) int {
	return (n + CardsPerPage - 1) / CardsPerPage
}

func cardOrigin(slot int, cardW, cardH float64) (x, y float64) {
	row := slot / cardsPerRow
	col := slot % cardsPerRow
	return float64(col) * cardW, float64(row) * cardH
}

// Namecards paginates attendees into the fixed badge grid. qrImages holds
// prefetched bytes keyed by QRSourceURL; a card whose QR is missing falls
// back to locally generated code, then to a textual placeholder. A bad QR
// never aborts the page.
func Namecards(attendees []model.Attendee, scope Scope, qrImages map[string][]byte, fonts BadgeFonts) ([]byte, string, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})

	if err := pdf.AddTTFFont("sarabun", fonts.Regular); err != nil {
		return nil, "", fmt.Errorf("export.Namecards: regular font: %w", err)
	}
	if err := pdf.AddTTFFont("sarabun-bold", fonts.Bold); err != nil {
		return nil, "", fmt.Errorf("export.Namecards: bold font: %w", err)
	}

	pageW := gopdf.PageSizeA4.W
	pageH := gopdf.PageSizeA4.H
	cardW := pageW / cardsPerRow
	cardH := pageH / cardsPerColumn

	pdf.AddPage()
	for i, a := range attendees {
		if i > 0 && i%CardsPerPage == 0 {
			pdf.AddPage()
		}
		x, y := cardOrigin(i%CardsPerPage, cardW, cardH)
		if err := drawCard(&pdf, a, x, y, cardW, cardH, qrImages); err != nil {
			return nil, "", fmt.Errorf("export.Namecards: %w", err)
		}
	}

	return pdf.GetBytesPdf(), NamecardsFilename(scope), nil
}

func drawCard(pdf *gopdf.GoPdf, a model.Attendee, x, y, cardW, cardH float64, qrImages map[string][]byte) error {
	pdf.SetStrokeColor(179, 179, 179)
	pdf.SetLineWidth(1)
	pdf.RectFromUpperLeftWithStyle(x+6, y+6, cardW-12, cardH-12, "D")

	textX := x + cardMargin
	textY := y + cardMargin

	line := func(font string, size float64, gray uint8, text string) error {
		if text == "" {
			return nil
		}
		if err := pdf.SetFont(font, "", size); err != nil {
			return err
		}
		pdf.SetTextColor(gray, gray, gray)
		pdf.SetXY(textX, textY)
		if err := pdf.Cell(nil, text); err != nil {
			return err
		}
		textY += size + 6
		return nil
	}

	if err := line("sarabun-bold", 18, 0, a.FullName); err != nil {
		return err
	}
	if err := line("sarabun", 12, 26, a.JobPosition); err != nil {
		return err
	}

	regionProvince := ""
	if attendee.IsValidRegion(a.Region) {
		regionProvince = fmt.Sprintf("ภาค %d", a.Region)
	}
	if a.Province != "" {
		if regionProvince != "" {
			regionProvince += " – "
		}
		regionProvince += "จังหวัด" + a.Province
	}
	if err := line("sarabun", 11, 64, regionProvince); err != nil {
		return err
	}
	if err := line("sarabun", 11, 51, a.Organization); err != nil {
		return err
	}
	if err := line("sarabun", 11, 51, a.Phone); err != nil {
		return err
	}

	return drawCardQR(pdf, a, x, y, cardW, cardH, qrImages)
}

func drawCardQR(pdf *gopdf.GoPdf, a model.Attendee, x, y, cardW, cardH float64, qrImages map[string][]byte) error {
	qrX := x + cardW/2 - qrSize/2
	qrY := y + cardH - cardMargin - qrSize - 10

	placeholder := func() error {
		if err := pdf.SetFont("sarabun", "", 12); err != nil {
			return err
		}
		pdf.SetTextColor(119, 119, 119)
		pdf.SetXY(qrX, qrY+qrSize/2)
		return pdf.Cell(nil, "QR: ไม่มี")
	}

	data, ok := qrImages[QRSourceURL(a)]
	if !ok && a.TicketToken != "" {
		generated, err := generateQR(a.TicketToken)
		if err != nil {
			slog.Warn("badge: local QR generation failed, using placeholder", "ticket_token", a.TicketToken, "error", err)
		} else {
			data = generated
			ok = true
		}
	}
	if !ok {
		return placeholder()
	}

	holder, err := gopdf.ImageHolderByBytes(data)
	if err != nil {
		slog.Warn("badge: QR bytes not embeddable, using placeholder", "error", err)
		return placeholder()
	}
	if err := pdf.ImageByHolder(holder, qrX, qrY, &gopdf.Rect{W: qrSize, H: qrSize}); err != nil {
		slog.Warn("badge: QR embed failed, using placeholder", "error", err)
		return placeholder()
	}
	return nil
}
