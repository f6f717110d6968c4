package render

import (
	"net/url"
	"strconv"
	"strings"
)

// ShareURL is the public address of a card: {origin}/{id}.
func ShareURL(origin, cardID string) string {
	return strings.TrimRight(origin, "/") + "/" + url.PathEscape(cardID)
}

// VCardURL is where the save-contact button downloads the card's vCard.
func VCardURL(origin, cardID string) string {
	return strings.TrimRight(origin, "/") + "/api/public/cards/" + url.PathEscape(cardID) + "/vcard"
}

// QRImageURL builds a request to an external QR image service encoding the
// share URL. Colors are sent as bare hex; unknown colors fall back to black
// on white.
func QRImageURL(provider, shareURL string, size int, fg, bg string) string {
	q := url.Values{}
	q.Set("data", shareURL)
	q.Set("size", strconv.Itoa(size)+"x"+strconv.Itoa(size))
	q.Set("color", qrHex(fg, RGB{}))
	q.Set("bgcolor", qrHex(bg, white))

	sep := "?"
	if strings.Contains(provider, "?") {
		sep = "&"
	}
	return provider + sep + q.Encode()
}

func qrHex(s string, fallback RGB) string {
	c := ParseColor(s)
	if !c.Blendable() || c.A == 0 {
		return fallback.Hex()[1:]
	}
	return c.RGB.Hex()[1:]
}
