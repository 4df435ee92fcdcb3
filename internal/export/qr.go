package export

import (
	"net/url"

	qrcode "github.com/skip2/go-qrcode"

	"seminar-checkin/internal/model"
)

// QRSourceURL is the badge's QR resolution chain: a stored QR image wins,
// otherwise a deterministically constructed generation request encoding
// the ticket token. Empty means the attendee has no token at all.
func QRSourceURL(a model.Attendee) string {
	if a.QRImageURL != "" {
		return a.QRImageURL
	}
	if a.TicketToken == "" {
		return ""
	}
	return "https://api.qrserver.com/v1/create-qr-code/?size=500x500&data=" + url.QueryEscape(a.TicketToken)
}

// generateQR renders the token locally when the remote source was not
// fetchable; the card falls back to a textual placeholder if even this
// fails.
func generateQR(token string) ([]byte, error) {
	return qrcode.Encode(token, qrcode.Medium, 256)
}
