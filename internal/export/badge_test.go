package export

import (
	"testing"

	"seminar-checkin/internal/model"
)

func TestPageCount(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 6: 1, 7: 2, 12: 2, 13: 3, 100: 17}
	for n, want := range cases {
		if got := PageCount(n); got != want {
			t.Errorf("PageCount(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestCardOrigin(t *testing.T) {
	cardW, cardH := 100.0, 200.0
	cases := []struct {
		slot int
		x, y float64
	}{
		{0, 0, 0},
		{1, 100, 0},
		{2, 0, 200},
		{3, 100, 200},
		{4, 0, 400},
		{5, 100, 400},
	}
	for _, c := range cases {
		x, y := cardOrigin(c.slot, cardW, cardH)
		if x != c.x || y != c.y {
			t.Errorf("cardOrigin(%d) = (%v, %v), want (%v, %v)", c.slot, x, y, c.x, c.y)
		}
	}
}

func TestQRSourceURL(t *testing.T) {
	stored := model.Attendee{TicketToken: "T1", QRImageURL: "http://blob/qr/t1.png"}
	if got := QRSourceURL(stored); got != "http://blob/qr/t1.png" {
		t.Errorf("stored QR should win, got %q", got)
	}

	fallback := model.Attendee{TicketToken: "T 1/ä"}
	want := "https://api.qrserver.com/v1/create-qr-code/?size=500x500&data=T+1%2F%C3%A4"
	if got := QRSourceURL(fallback); got != want {
		t.Errorf("fallback URL = %q, want %q", got, want)
	}

	if got := QRSourceURL(model.Attendee{}); got != "" {
		t.Errorf("no token means no QR source, got %q", got)
	}
}

func TestImageExtension(t *testing.T) {
	cases := map[string]string{
		"http://x/a.PNG":   ".png",
		"http://x/a.jpg":   ".jpg",
		"http://x/a.JPEG":  ".jpg",
		"http://x/a.gif":   "",
		"http://x/no-ext":  "",
	}
	for url, want := range cases {
		if got := imageExtension(url); got != want {
			t.Errorf("imageExtension(%q) = %q, want %q", url, got, want)
		}
	}
}

// missing fonts are a hard failure, not a degraded export
func TestNamecardsMissingFonts(t *testing.T) {
	_, _, err := Namecards([]model.Attendee{{FullName: "a", TicketToken: "T1"}},
		Scope{}, nil, BadgeFonts{Regular: "/nonexistent/r.ttf", Bold: "/nonexistent/b.ttf"})
	if err == nil {
		t.Error("missing TTF files should fail the export")
	}
}
