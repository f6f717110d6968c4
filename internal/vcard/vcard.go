// Package vcard writes vCard 3.0 (RFC 2426) contact files for cards.
package vcard

import (
	"bytes"
	"strings"
	"unicode/utf8"

	govcard "github.com/emersion/go-vcard"

	"cardly/internal/models"
	"cardly/internal/render"
)

const ContentType = "text/vcard; charset=utf-8"

// maxLine is the longest line in octets before folding.
const maxLine = 75

// Build collects the contact details of card that are visible under vis.
// shareURL is added as the card's own URL.
func Build(card *models.Card, vis render.Sections, shareURL string) govcard.Card {
	c := make(govcard.Card)
	c.SetValue(govcard.FieldVersion, "3.0")

	name := text(card.Name)
	if name == "" {
		name = card.ID
	}
	c.SetValue(govcard.FieldName, structuredName(name))
	c.SetValue(govcard.FieldFormattedName, name)

	if vis.Company && text(card.Company) != "" {
		c.SetValue(govcard.FieldOrganization, strings.ReplaceAll(text(card.Company), ";", ","))
	}
	if vis.Title && text(card.Title) != "" {
		c.SetValue(govcard.FieldTitle, text(card.Title))
	}
	phone := text(card.Phone)
	if vis.Phone && phone != "" {
		c.Add(govcard.FieldTelephone, typed(phone, "CELL", "VOICE"))
	}
	if wa := text(card.WhatsApp); vis.WhatsApp && wa != "" && wa != phone {
		c.Add(govcard.FieldTelephone, typed(wa, "CELL"))
	}
	if vis.Emails {
		for _, e := range render.Emails(card) {
			c.Add(govcard.FieldEmail, typed(text(e), "INTERNET"))
		}
	}
	if vis.Websites {
		for _, u := range render.Websites(card) {
			c.AddValue(govcard.FieldURL, text(u))
		}
	}
	if vis.SocialLinks {
		for _, sl := range card.SocialLinks {
			if u := text(sl.URL); u != "" {
				c.Add("X-SOCIALPROFILE", typed(u, paramValue(sl.PlatformID)))
			}
		}
	}
	if bio := text(card.Bio); vis.Bio && bio != "" {
		c.SetValue(govcard.FieldNote, bio)
	}
	if vis.Avatar && text(card.AvatarURL) != "" {
		c.Add(govcard.FieldPhoto, &govcard.Field{
			Value:  text(card.AvatarURL),
			Params: govcard.Params{"VALUE": {"uri"}},
		})
	}
	if shareURL != "" {
		c.Add(govcard.FieldURL, typed(text(shareURL), "PROFILE"))
	}
	return c
}

// Encode renders Build's result as folded vCard text.
func Encode(card *models.Card, vis render.Sections, shareURL string) ([]byte, error) {
	var buf bytes.Buffer
	if err := govcard.NewEncoder(&buf).Encode(Build(card, vis, shareURL)); err != nil {
		return nil, err
	}

	var out strings.Builder
	for _, l := range strings.Split(strings.TrimSuffix(buf.String(), "\r\n"), "\r\n") {
		fold(&out, l)
	}
	return []byte(out.String()), nil
}

// Filename is a download name for the card's vCard.
func Filename(card *models.Card) string {
	return card.ID + ".vcf"
}

func typed(value string, types ...string) *govcard.Field {
	f := &govcard.Field{Value: value}
	if len(types) > 0 && types[0] != "" {
		f.Params = govcard.Params{govcard.ParamType: types}
	}
	return f
}

// text trims s and turns every line break into \n, the only one the
// encoder escapes.
func text(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// structuredName splits "First Middle Last" into N's family;given;additional.
func structuredName(full string) string {
	parts := strings.Fields(strings.ReplaceAll(full, ";", " "))
	switch len(parts) {
	case 0:
		return ";;;;"
	case 1:
		return parts[0] + ";;;;"
	}
	last := parts[len(parts)-1]
	first := parts[0]
	middle := strings.Join(parts[1:len(parts)-1], " ")
	return last + ";" + first + ";" + middle + ";;"
}

// paramValue keeps a parameter value to characters that cannot end the
// parameter or the line.
func paramValue(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', ':', ',', '"', '=', '\\', '\r', '\n':
			return -1
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

// fold writes one content line, folded at maxLine octets without splitting
// a UTF-8 sequence.
func fold(b *strings.Builder, s string) {
	limit := maxLine
	for len(s) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		b.WriteString(s[:cut])
		b.WriteString("\r\n ")
		s = s[cut:]
		limit = maxLine - 1
	}
	b.WriteString(s)
	b.WriteString("\r\n")
}
