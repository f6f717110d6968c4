package render

import "cardly/internal/models"

// Resolved is a Style with every attribute decided.
type Resolved struct {
	AccentColor             string `json:"accentColor"`
	NameColor               string `json:"nameColor"`
	TitleColor              string `json:"titleColor"`
	BioTextColor            string `json:"bioTextColor"`
	BioBgColor              string `json:"bioBgColor"`
	LinksColor              string `json:"linksColor"`
	LinksBgColor            string `json:"linksBgColor"`
	SocialIconsColor        string `json:"socialIconsColor"`
	SocialIconsBgColor      string `json:"socialIconsBgColor"`
	ContactButtonsColor     string `json:"contactButtonsColor"`
	ContactButtonsTextColor string `json:"contactButtonsTextColor"`
	BodyFeatureBgColor      string `json:"bodyFeatureBgColor"`
	BodyFeatureTextColor    string `json:"bodyFeatureTextColor"`
	LocationBgColor         string `json:"locationBgColor"`
	MembershipAccentColor   string `json:"membershipAccentColor"` // empty = progress gradient
	QRColor                 string `json:"qrColor"`
	QRBgColor               string `json:"qrBgColor"`
	PageBgColor             string `json:"pageBgColor"`
	CardBgColor             string `json:"cardBgColor"`

	BioBgOpacity   int `json:"bioBgOpacity"`
	LinksBgOpacity int `json:"linksBgOpacity"`
	CardBgOpacity  int `json:"cardBgOpacity"`

	HeaderHeight        int `json:"headerHeight"`
	AvatarSize          int `json:"avatarSize"`
	AvatarBorderWidth   int `json:"avatarBorderWidth"`
	AvatarOffsetY       int `json:"avatarOffsetY"`
	NameFontSize        int `json:"nameFontSize"`
	TitleFontSize       int `json:"titleFontSize"`
	ContentPadding      int `json:"contentPadding"`
	SectionSpacing      int `json:"sectionSpacing"`
	LinksItemRadius     int `json:"linksItemRadius"`
	ContactButtonRadius int `json:"contactButtonRadius"`
	SocialIconSize      int `json:"socialIconSize"`
	SocialIconsColumns  int `json:"socialIconsColumns"`
	SpecialLinksColumns int `json:"specialLinksColumns"`
	QRSize              int `json:"qrSize"`
	StarsCount          int `json:"starsCount"`

	AvatarShape       string `json:"avatarShape"`
	LinksVariant      string `json:"linksVariant"`
	SpecialLinkAspect string `json:"specialLinkAspect"`

	LinksShowText  bool `json:"linksShowText"`
	UseBrandColors bool `json:"useBrandColors"`
	GlassyLinks    bool `json:"glassyLinks"`
}

// Avatar shapes
const (
	AvatarCircle   = "circle"
	AvatarSquircle = "squircle"
	AvatarSquare   = "square"
	AvatarNone     = "none"
)

// Direct link variants
const (
	LinksList  = "list"
	LinksGrid  = "grid"
	LinksPills = "pills"
)

func nonNegative(v int) bool { return v >= 0 }

func between(lo, hi int) func(int) bool {
	return func(v int) bool { return v >= lo && v <= hi }
}

func oneOf(values ...string) func(string) bool {
	return func(v string) bool {
		for _, s := range values {
			if v == s {
				return true
			}
		}
		return false
	}
}

func nonEmpty(v string) bool { return v != "" }

var colorFields = []field[string]{
	{key: "accentColor", ptr: func(s *models.Style) **string { return &s.AccentColor }, set: func(r *Resolved, v string) { r.AccentColor = v }, fallback: "#2563eb", dark: "#60a5fa", valid: nonEmpty},
	{key: "nameColor", ptr: func(s *models.Style) **string { return &s.NameColor }, set: func(r *Resolved, v string) { r.NameColor = v }, fallback: "#0f172a", dark: "#f8fafc", valid: nonEmpty},
	{key: "titleColor", ptr: func(s *models.Style) **string { return &s.TitleColor }, set: func(r *Resolved, v string) { r.TitleColor = v }, derivedFrom: "nameColor", valid: nonEmpty},
	{key: "bioTextColor", ptr: func(s *models.Style) **string { return &s.BioTextColor }, set: func(r *Resolved, v string) { r.BioTextColor = v }, fallback: "#334155", dark: "#cbd5e1", valid: nonEmpty},
	{key: "bioBgColor", ptr: func(s *models.Style) **string { return &s.BioBgColor }, set: func(r *Resolved, v string) { r.BioBgColor = v }, fallback: "#f1f5f9", dark: "#1e293b", valid: nonEmpty},
	{key: "linksColor", ptr: func(s *models.Style) **string { return &s.LinksColor }, set: func(r *Resolved, v string) { r.LinksColor = v }, fallback: "#2563eb", dark: "#93c5fd", valid: nonEmpty},
	{key: "linksBgColor", ptr: func(s *models.Style) **string { return &s.LinksBgColor }, set: func(r *Resolved, v string) { r.LinksBgColor = v }, fallback: "#ffffff", dark: "#0f172a", valid: nonEmpty},
	{key: "socialIconsColor", ptr: func(s *models.Style) **string { return &s.SocialIconsColor }, set: func(r *Resolved, v string) { r.SocialIconsColor = v }, derivedFrom: "linksColor", valid: nonEmpty},
	{key: "socialIconsBgColor", ptr: func(s *models.Style) **string { return &s.SocialIconsBgColor }, set: func(r *Resolved, v string) { r.SocialIconsBgColor = v }, fallback: "transparent", valid: nonEmpty},
	{key: "contactButtonsColor", ptr: func(s *models.Style) **string { return &s.ContactButtonsColor }, set: func(r *Resolved, v string) { r.ContactButtonsColor = v }, derivedFrom: "accentColor", valid: nonEmpty},
	{key: "contactButtonsTextColor", ptr: func(s *models.Style) **string { return &s.ContactButtonsTextColor }, set: func(r *Resolved, v string) { r.ContactButtonsTextColor = v }, fallback: "#ffffff", valid: nonEmpty},
	{key: "bodyFeatureBgColor", ptr: func(s *models.Style) **string { return &s.BodyFeatureBgColor }, set: func(r *Resolved, v string) { r.BodyFeatureBgColor = v }, derivedFrom: "accentColor", valid: nonEmpty},
	{key: "bodyFeatureTextColor", ptr: func(s *models.Style) **string { return &s.BodyFeatureTextColor }, set: func(r *Resolved, v string) { r.BodyFeatureTextColor = v }, fallback: "#ffffff", valid: nonEmpty},
	{key: "locationBgColor", ptr: func(s *models.Style) **string { return &s.LocationBgColor }, set: func(r *Resolved, v string) { r.LocationBgColor = v }, derivedFrom: "linksBgColor", valid: nonEmpty},
	{key: "membershipAccentColor", ptr: func(s *models.Style) **string { return &s.MembershipAccentColor }, set: func(r *Resolved, v string) { r.MembershipAccentColor = v }, valid: nonEmpty},
	{key: "qrColor", ptr: func(s *models.Style) **string { return &s.QRColor }, set: func(r *Resolved, v string) { r.QRColor = v }, derivedFrom: "nameColor", valid: nonEmpty},
	{key: "qrBgColor", ptr: func(s *models.Style) **string { return &s.QRBgColor }, set: func(r *Resolved, v string) { r.QRBgColor = v }, fallback: "#ffffff", valid: nonEmpty},
	{key: "pageBgColor", ptr: func(s *models.Style) **string { return &s.PageBgColor }, set: func(r *Resolved, v string) { r.PageBgColor = v }, fallback: "#f8fafc", dark: "#020617", valid: nonEmpty},
	{key: "cardBgColor", ptr: func(s *models.Style) **string { return &s.CardBgColor }, set: func(r *Resolved, v string) { r.CardBgColor = v }, fallback: "#ffffff", dark: "#0f172a", valid: nonEmpty},
}

var intFields = []field[int]{
	{key: "bioBgOpacity", ptr: func(s *models.Style) **int { return &s.BioBgOpacity }, set: func(r *Resolved, v int) { r.BioBgOpacity = v }, fallback: 100, valid: between(0, 100)},
	{key: "linksBgOpacity", ptr: func(s *models.Style) **int { return &s.LinksBgOpacity }, set: func(r *Resolved, v int) { r.LinksBgOpacity = v }, fallback: 100, valid: between(0, 100)},
	{key: "cardBgOpacity", ptr: func(s *models.Style) **int { return &s.CardBgOpacity }, set: func(r *Resolved, v int) { r.CardBgOpacity = v }, fallback: 100, valid: between(0, 100)},
	{key: "headerHeight", ptr: func(s *models.Style) **int { return &s.HeaderHeight }, set: func(r *Resolved, v int) { r.HeaderHeight = v }, fallback: 180, valid: nonNegative},
	{key: "avatarSize", ptr: func(s *models.Style) **int { return &s.AvatarSize }, set: func(r *Resolved, v int) { r.AvatarSize = v }, fallback: 112, valid: nonNegative},
	{key: "avatarBorderWidth", ptr: func(s *models.Style) **int { return &s.AvatarBorderWidth }, set: func(r *Resolved, v int) { r.AvatarBorderWidth = v }, fallback: 4, valid: nonNegative},
	{key: "avatarOffsetY", ptr: func(s *models.Style) **int { return &s.AvatarOffsetY }, set: func(r *Resolved, v int) { r.AvatarOffsetY = v }, fallback: -56},
	{key: "nameFontSize", ptr: func(s *models.Style) **int { return &s.NameFontSize }, set: func(r *Resolved, v int) { r.NameFontSize = v }, fallback: 24, valid: nonNegative},
	{key: "titleFontSize", ptr: func(s *models.Style) **int { return &s.TitleFontSize }, set: func(r *Resolved, v int) { r.TitleFontSize = v }, fallback: 15, valid: nonNegative},
	{key: "contentPadding", ptr: func(s *models.Style) **int { return &s.ContentPadding }, set: func(r *Resolved, v int) { r.ContentPadding = v }, fallback: 20, valid: nonNegative},
	{key: "sectionSpacing", ptr: func(s *models.Style) **int { return &s.SectionSpacing }, set: func(r *Resolved, v int) { r.SectionSpacing = v }, fallback: 16, valid: nonNegative},
	{key: "linksItemRadius", ptr: func(s *models.Style) **int { return &s.LinksItemRadius }, set: func(r *Resolved, v int) { r.LinksItemRadius = v }, fallback: 12, valid: nonNegative},
	{key: "contactButtonRadius", ptr: func(s *models.Style) **int { return &s.ContactButtonRadius }, set: func(r *Resolved, v int) { r.ContactButtonRadius = v }, fallback: 12, valid: nonNegative},
	{key: "socialIconSize", ptr: func(s *models.Style) **int { return &s.SocialIconSize }, set: func(r *Resolved, v int) { r.SocialIconSize = v }, fallback: 44, valid: nonNegative},
	{key: "socialIconsColumns", ptr: func(s *models.Style) **int { return &s.SocialIconsColumns }, set: func(r *Resolved, v int) { r.SocialIconsColumns = v }, fallback: 4, valid: between(1, 8)},
	{key: "specialLinksColumns", ptr: func(s *models.Style) **int { return &s.SpecialLinksColumns }, set: func(r *Resolved, v int) { r.SpecialLinksColumns = v }, fallback: 2, valid: between(1, 4)},
	{key: "qrSize", ptr: func(s *models.Style) **int { return &s.QRSize }, set: func(r *Resolved, v int) { r.QRSize = v }, fallback: 160, valid: between(64, 1000)},
	{key: "starsCount", ptr: func(s *models.Style) **int { return &s.StarsCount }, set: func(r *Resolved, v int) { r.StarsCount = v }, fallback: 5, valid: between(0, 5)},
}

var enumFields = []field[string]{
	{key: "avatarShape", ptr: func(s *models.Style) **string { return &s.AvatarShape }, set: func(r *Resolved, v string) { r.AvatarShape = v }, fallback: AvatarCircle, valid: oneOf(AvatarCircle, AvatarSquircle, AvatarSquare, AvatarNone)},
	{key: "linksVariant", ptr: func(s *models.Style) **string { return &s.LinksVariant }, set: func(r *Resolved, v string) { r.LinksVariant = v }, fallback: LinksList, valid: oneOf(LinksList, LinksGrid, LinksPills)},
	{key: "specialLinkAspect", ptr: func(s *models.Style) **string { return &s.SpecialLinkAspect }, set: func(r *Resolved, v string) { r.SpecialLinkAspect = v }, fallback: "1:1", valid: oneOf("1:1", "16:9", "4:3", "3:4", "9:16")},
}

var boolFields = []field[bool]{
	{key: "linksShowText", ptr: func(s *models.Style) **bool { return &s.LinksShowText }, set: func(r *Resolved, v bool) { r.LinksShowText = v }, fallback: true},
	{key: "useBrandColors", ptr: func(s *models.Style) **bool { return &s.UseBrandColors }, set: func(r *Resolved, v bool) { r.UseBrandColors = v }},
	{key: "glassyLinks", ptr: func(s *models.Style) **bool { return &s.GlassyLinks }, set: func(r *Resolved, v bool) { r.GlassyLinks = v }},
}
