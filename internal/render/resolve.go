package render

import "cardly/internal/models"

// Resolve returns the card value when set, else the template value, else the
// fallback.
func Resolve[T any](card, tpl *T, fallback T) T {
	if card != nil {
		return *card
	}
	if tpl != nil {
		return *tpl
	}
	return fallback
}

// ResolveVisibility decides whether a section is shown. A card flag always
// wins; otherwise the section is shown unless the template explicitly
// defaults it to false.
func ResolveVisibility(card, tplDefault *bool) bool {
	if card != nil {
		return *card
	}
	return tplDefault == nil || *tplDefault
}

// field describes how one Style attribute resolves.
type field[T comparable] struct {
	key         string
	ptr         func(*models.Style) **T
	set         func(*Resolved, T)
	fallback    T
	dark        T            // fallback on dark cards, zero = same as fallback
	derivedFrom string       // key of an earlier field whose resolved value is the fallback
	valid       func(T) bool // nil accepts anything
}

func (f field[T]) pick(s *models.Style) (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}
	p := *f.ptr(s)
	if p == nil {
		return zero, false
	}
	if f.valid != nil && !f.valid(*p) {
		return zero, false
	}
	return *p, true
}

func resolveFields[T comparable](fields []field[T], card, tpl *models.Style, dark bool, out *Resolved) {
	var zero T
	seen := make(map[string]T, len(fields))
	for _, f := range fields {
		v, ok := f.pick(card)
		if !ok {
			v, ok = f.pick(tpl)
		}
		if !ok {
			switch {
			case f.derivedFrom != "":
				v = seen[f.derivedFrom]
			case dark && f.dark != zero:
				v = f.dark
			default:
				v = f.fallback
			}
		}
		seen[f.key] = v
		f.set(out, v)
	}
}

// ResolveStyle folds a card's overrides over a template's defaults.
// tpl may be nil.
func ResolveStyle(card, tpl *models.Style, dark bool) Resolved {
	var r Resolved
	resolveFields(colorFields, card, tpl, dark, &r)
	resolveFields(intFields, card, tpl, dark, &r)
	resolveFields(enumFields, card, tpl, dark, &r)
	resolveFields(boolFields, card, tpl, dark, &r)
	return r
}

// Sections is the resolved on/off state of every optional section.
type Sections struct {
	Header        bool
	Avatar        bool
	Name          bool
	Title         bool
	Company       bool
	Bio           bool
	BodyFeature   bool
	Emails        bool
	Websites      bool
	Phone         bool
	WhatsApp      bool
	SaveContact   bool
	Membership    bool
	SpecialLinks  bool
	Location      bool
	SocialLinks   bool
	QR            bool
	GoldenFrame   bool
	VerifiedBadge bool
	Stars         bool
	ShareButton   bool
}

type visibilityField struct {
	ptr func(*models.Visibility) **bool
	set func(*Sections, bool)
}

var visibilityFields = []visibilityField{
	{func(v *models.Visibility) **bool { return &v.ShowHeader }, func(s *Sections, b bool) { s.Header = b }},
	{func(v *models.Visibility) **bool { return &v.ShowAvatar }, func(s *Sections, b bool) { s.Avatar = b }},
	{func(v *models.Visibility) **bool { return &v.ShowName }, func(s *Sections, b bool) { s.Name = b }},
	{func(v *models.Visibility) **bool { return &v.ShowTitle }, func(s *Sections, b bool) { s.Title = b }},
	{func(v *models.Visibility) **bool { return &v.ShowCompany }, func(s *Sections, b bool) { s.Company = b }},
	{func(v *models.Visibility) **bool { return &v.ShowBio }, func(s *Sections, b bool) { s.Bio = b }},
	{func(v *models.Visibility) **bool { return &v.ShowBodyFeature }, func(s *Sections, b bool) { s.BodyFeature = b }},
	{func(v *models.Visibility) **bool { return &v.ShowEmails }, func(s *Sections, b bool) { s.Emails = b }},
	{func(v *models.Visibility) **bool { return &v.ShowWebsites }, func(s *Sections, b bool) { s.Websites = b }},
	{func(v *models.Visibility) **bool { return &v.ShowPhone }, func(s *Sections, b bool) { s.Phone = b }},
	{func(v *models.Visibility) **bool { return &v.ShowWhatsApp }, func(s *Sections, b bool) { s.WhatsApp = b }},
	{func(v *models.Visibility) **bool { return &v.ShowSaveContact }, func(s *Sections, b bool) { s.SaveContact = b }},
	{func(v *models.Visibility) **bool { return &v.ShowMembership }, func(s *Sections, b bool) { s.Membership = b }},
	{func(v *models.Visibility) **bool { return &v.ShowSpecialLinks }, func(s *Sections, b bool) { s.SpecialLinks = b }},
	{func(v *models.Visibility) **bool { return &v.ShowLocation }, func(s *Sections, b bool) { s.Location = b }},
	{func(v *models.Visibility) **bool { return &v.ShowSocialLinks }, func(s *Sections, b bool) { s.SocialLinks = b }},
	{func(v *models.Visibility) **bool { return &v.ShowQR }, func(s *Sections, b bool) { s.QR = b }},
	{func(v *models.Visibility) **bool { return &v.ShowGoldenFrame }, func(s *Sections, b bool) { s.GoldenFrame = b }},
	{func(v *models.Visibility) **bool { return &v.ShowVerifiedBadge }, func(s *Sections, b bool) { s.VerifiedBadge = b }},
	{func(v *models.Visibility) **bool { return &v.ShowStars }, func(s *Sections, b bool) { s.Stars = b }},
	{func(v *models.Visibility) **bool { return &v.ShowShareButton }, func(s *Sections, b bool) { s.ShareButton = b }},
}

// ResolveSections resolves every visibility flag. tpl may be nil.
func ResolveSections(card, tpl *models.Visibility) Sections {
	var s Sections
	for _, f := range visibilityFields {
		var c, t *bool
		if card != nil {
			c = *f.ptr(card)
		}
		if tpl != nil {
			t = *f.ptr(tpl)
		}
		f.set(&s, ResolveVisibility(c, t))
	}
	return s
}
