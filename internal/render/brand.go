package render

import "strings"

var brandColors = map[string]string{
	"facebook":   "#1877f2",
	"instagram":  "#e4405f",
	"twitter":    "#1da1f2",
	"x":          "#000000",
	"linkedin":   "#0a66c2",
	"youtube":    "#ff0000",
	"tiktok":     "#000000",
	"snapchat":   "#fffc00",
	"whatsapp":   "#25d366",
	"telegram":   "#26a5e4",
	"github":     "#181717",
	"pinterest":  "#bd081c",
	"threads":    "#000000",
	"discord":    "#5865f2",
	"behance":    "#1769ff",
	"dribbble":   "#ea4c89",
	"spotify":    "#1db954",
	"reddit":     "#ff4500",
	"twitch":     "#9146ff",
	"tumblr":     "#36465d",
	"medium":     "#000000",
	"vimeo":      "#1ab7ea",
	"soundcloud": "#ff5500",
	"messenger":  "#0084ff",
	"skype":      "#00aff0",
}

// BrandColor returns the canonical brand color for a social platform id.
func BrandColor(platformID string) (string, bool) {
	c, ok := brandColors[strings.ToLower(strings.TrimSpace(platformID))]
	return c, ok
}
