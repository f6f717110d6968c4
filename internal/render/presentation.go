package render

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"cardly/internal/models"
)

// Presentation is the page-level state a host applies when showing a card:
// CSS custom properties, the document title, favicon and meta tags.
type Presentation struct {
	CSSVariables  map[string]string `json:"cssVariables"`
	DocumentTitle string            `json:"documentTitle"`
	FaviconURL    string            `json:"faviconUrl,omitempty"`
	MetaTags      map[string]string `json:"metaTags"`
	Lang          string            `json:"lang"`
	Dir           string            `json:"dir"` // ltr, rtl
}

const metaDescriptionLimit = 160

func buildPresentation(card *models.Card, r Resolved, header HeaderGeometry, headerBg, shareURL, lang string) Presentation {
	px := func(v int) string { return strconv.Itoa(v) + "px" }

	p := Presentation{
		CSSVariables: map[string]string{
			"--card-accent":        r.AccentColor,
			"--card-name-color":    r.NameColor,
			"--card-title-color":   r.TitleColor,
			"--card-links-color":   r.LinksColor,
			"--card-links-bg":      CompositeOpacity(r.LinksBgColor, r.LinksBgOpacity),
			"--card-page-bg":       r.PageBgColor,
			"--card-bg":            CompositeOpacity(r.CardBgColor, r.CardBgOpacity),
			"--card-header-bg":     headerBg,
			"--card-header-height": px(header.Height),
			"--card-padding":       px(r.ContentPadding),
			"--card-spacing":       px(r.SectionSpacing),
			"--card-radius":        px(r.LinksItemRadius),
		},
		DocumentTitle: documentTitle(card),
		FaviconURL:    card.AvatarURL,
		Lang:          lang,
		Dir:           "ltr",
	}
	if lang == "ar" {
		p.Dir = "rtl"
	}

	p.MetaTags = map[string]string{
		"og:title":     p.DocumentTitle,
		"og:type":      "profile",
		"og:url":       shareURL,
		"twitter:card": "summary",
		"theme-color":  r.AccentColor,
	}
	if desc := truncateRunes(strings.TrimSpace(card.Bio), metaDescriptionLimit); desc != "" {
		p.MetaTags["og:description"] = desc
		p.MetaTags["description"] = desc
	}
	if card.AvatarURL != "" {
		p.MetaTags["og:image"] = card.AvatarURL
	}
	return p
}

func documentTitle(card *models.Card) string {
	name := strings.TrimSpace(card.Name)
	if name == "" {
		return card.ID
	}
	if title := strings.TrimSpace(card.Title); title != "" {
		return name + " | " + title
	}
	return name
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n-1])) + "…"
}
