package render

import (
	"strings"
	"time"
	"unicode"

	"cardly/internal/models"
)

// DefaultQRProvider renders QR images from a URL.
const DefaultQRProvider = "https://api.qrserver.com/v1/create-qr-code/"

// Options carries the inputs to Compose that are not part of the card or
// its template.
type Options struct {
	Origin     string    // scheme://host the card is served from
	Lang       string    // "en" or "ar"
	Now        time.Time // zero means time.Now()
	QRProvider string    // empty means DefaultQRProvider
}

// Layout is a fully resolved card ready for a rendering surface.
type Layout struct {
	CardID              string         `json:"cardId"`
	Sections            []Section      `json:"sections"`
	Style               Resolved       `json:"style"`
	Visible             Sections       `json:"visible"`
	Header              HeaderGeometry `json:"header"`
	DesktopLayout       string         `json:"desktopLayout"`
	PageBackground      string         `json:"pageBackground"`
	CardBackground      string         `json:"cardBackground"`
	BodyMarginLeft      int            `json:"bodyMarginLeft"`  // percent, 0 = default
	BodyMarginRight     int            `json:"bodyMarginRight"` // percent, 0 = default
	ShareURL            string         `json:"shareUrl"`
	TemplateUnavailable bool           `json:"templateUnavailable"`
	Presentation        Presentation   `json:"presentation"`
}

// Has reports whether a section of the given kind was composed.
func (l *Layout) Has(kind SectionKind) bool {
	return l.Section(kind) != nil
}

// Section returns the composed section of the given kind, or nil.
func (l *Layout) Section(kind SectionKind) Section {
	for _, s := range l.Sections {
		if s.Kind() == kind {
			return s
		}
	}
	return nil
}

// EffectiveTemplate picks the template a card renders with: the live one,
// then the snapshot saved with the card. unavailable is true when the card
// references a template and neither is present.
func EffectiveTemplate(card *models.Card, live *models.Template) (tpl *models.Template, unavailable bool) {
	if live != nil {
		return live, false
	}
	if card.TemplateSnapshot != nil {
		return card.TemplateSnapshot, false
	}
	return nil, card.TemplateID != ""
}

// Compose resolves a card against its template. tpl may be nil. It is a pure
// function of its inputs and never fails; bad values fall back to defaults.
func Compose(card *models.Card, tpl *models.Template, opts Options) *Layout {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.QRProvider == "" {
		opts.QRProvider = DefaultQRProvider
	}
	if opts.Lang != "ar" {
		opts.Lang = "en"
	}

	var (
		tplStyle      *models.Style
		tplVisibility *models.Visibility
		headerType    string
		desktop       = models.LayoutFullWidthHeader
		pageStrategy  = models.PageBgSolid
	)
	if tpl != nil {
		tplStyle = &tpl.Style
		tplVisibility = &tpl.DefaultVisibility
		headerType = tpl.HeaderType
		if tpl.DesktopLayout == models.LayoutCenteredCard {
			desktop = models.LayoutCenteredCard
		}
		if tpl.PageBgStrategy == models.PageBgMirrorHeader {
			pageStrategy = models.PageBgMirrorHeader
		}
	}

	r := ResolveStyle(&card.Style, tplStyle, card.IsDark)
	vis := ResolveSections(&card.Visibility, tplVisibility)
	header := ResolveHeader(headerType, r.HeaderHeight)

	c := &composer{card: card, r: r, vis: vis, opts: opts}

	l := &Layout{
		CardID:          card.ID,
		Style:           r,
		Visible:         vis,
		Header:          header,
		DesktopLayout:   desktop,
		CardBackground:  CompositeOpacity(r.CardBgColor, r.CardBgOpacity),
		ShareURL:        ShareURL(opts.Origin, card.ID),
	}
	if vis.Header {
		l.BodyMarginLeft = header.BodyMarginLeft
		l.BodyMarginRight = header.BodyMarginRight
	}

	headerBg := headerBackground(card, r)
	l.PageBackground = r.PageBgColor
	if pageStrategy == models.PageBgMirrorHeader && vis.Header {
		l.PageBackground = headerBg
	}

	if vis.Header {
		l.Sections = append(l.Sections, &HeaderSection{
			Box:        Box{Type: SectionHeader, Radius: header.Radius},
			Geometry:   header,
			ThemeType:  themeType(card),
			Background: headerBg,
		})
	}

	for _, build := range []func() Section{
		c.avatar,
		c.name,
		c.title,
		c.bodyFeature,
		c.bio,
		c.links,
		c.contact,
		c.membership,
		c.specialLinks,
		c.location,
		c.social,
		c.qr,
	} {
		if s := build(); s != nil {
			l.Sections = append(l.Sections, s)
		}
	}

	l.Presentation = buildPresentation(card, r, header, headerBg, l.ShareURL, opts.Lang)
	return l
}

type composer struct {
	card *models.Card
	r    Resolved
	vis  Sections
	opts Options
}

func (c *composer) box(kind SectionKind) Box {
	return Box{Type: kind, MarginTop: c.r.SectionSpacing, Padding: c.r.ContentPadding}
}

func themeType(card *models.Card) string {
	switch card.ThemeType {
	case models.ThemeGradient, models.ThemeImage:
		return card.ThemeType
	}
	return models.ThemeColor
}

func headerBackground(card *models.Card, r Resolved) string {
	color := card.ThemeColor
	if color == "" {
		color = r.AccentColor
	}
	switch themeType(card) {
	case models.ThemeGradient:
		if card.ThemeGradient != "" {
			return card.ThemeGradient
		}
	case models.ThemeImage:
		if card.BackgroundImage != "" {
			return `url("` + card.BackgroundImage + `") center / cover no-repeat, ` + color
		}
	}
	return color
}

var avatarRadiusClasses = map[string]string{
	AvatarCircle:   "rounded-full",
	AvatarSquircle: "rounded-3xl",
	AvatarSquare:   "rounded-none",
}

func (c *composer) avatar() Section {
	if !c.vis.Avatar || c.r.AvatarShape == AvatarNone {
		return nil
	}
	if c.card.AvatarURL == "" && strings.TrimSpace(c.card.Name) == "" {
		return nil
	}
	b := c.box(SectionAvatar)
	b.Padding = 0
	// Pull the avatar up over the header only when there is a header.
	if c.vis.Header {
		b.MarginTop = c.r.AvatarOffsetY
	}
	s := &AvatarSection{
		Box:         b,
		ImageURL:    c.card.AvatarURL,
		Size:        c.r.AvatarSize,
		BorderWidth: c.r.AvatarBorderWidth,
		BorderColor: c.r.CardBgColor,
		Shape:       c.r.AvatarShape,
		RadiusClass: avatarRadiusClasses[c.r.AvatarShape],
	}
	if s.ImageURL == "" {
		s.Initials = initials(c.card.Name)
	}
	return s
}

func initials(name string) string {
	var out []rune
	for _, w := range strings.Fields(name) {
		for _, r := range w {
			out = append(out, unicode.ToUpper(r))
			break
		}
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

func (c *composer) name() Section {
	text := strings.TrimSpace(c.card.Name)
	if !c.vis.Name || text == "" {
		return nil
	}
	s := &NameSection{
		Box:         c.box(SectionName),
		Text:        text,
		Color:       c.r.NameColor,
		FontSize:    c.r.NameFontSize,
		GoldenFrame: c.vis.GoldenFrame,
		Verified:    c.vis.VerifiedBadge,
	}
	if c.vis.Stars {
		s.Stars = c.r.StarsCount
	}
	return s
}

func (c *composer) title() Section {
	s := &TitleSection{
		Box:      c.box(SectionTitle),
		Color:    c.r.TitleColor,
		FontSize: c.r.TitleFontSize,
	}
	if c.vis.Title {
		s.Title = strings.TrimSpace(c.card.Title)
	}
	if c.vis.Company {
		s.Company = strings.TrimSpace(c.card.Company)
	}
	if s.Title == "" && s.Company == "" {
		return nil
	}
	s.MarginTop = c.r.SectionSpacing / 4
	return s
}

func (c *composer) bodyFeature() Section {
	text := strings.TrimSpace(c.card.BodyFeatureText)
	if !c.vis.BodyFeature || (text == "" && c.card.BodyFeatureImageURL == "") {
		return nil
	}
	b := c.box(SectionBodyFeature)
	b.Radius = c.r.LinksItemRadius
	return &BodyFeatureSection{
		Box:        b,
		Text:       text,
		ImageURL:   c.card.BodyFeatureImageURL,
		Background: c.r.BodyFeatureBgColor,
		TextColor:  c.r.BodyFeatureTextColor,
	}
}

func (c *composer) bio() Section {
	text := strings.TrimSpace(c.card.Bio)
	if !c.vis.Bio || text == "" {
		return nil
	}
	b := c.box(SectionBio)
	b.Radius = c.r.LinksItemRadius
	return &BioSection{
		Box:        b,
		Text:       text,
		TextColor:  c.r.BioTextColor,
		Background: CompositeOpacity(c.r.BioBgColor, c.r.BioBgOpacity),
	}
}

// Emails returns the card's email list, seeded from the legacy single field
// when the list is empty. Blank entries are dropped.
func Emails(card *models.Card) []string {
	return seeded(card.Emails, card.Email)
}

// Websites is Emails for websites.
func Websites(card *models.Card) []string {
	return seeded(card.Websites, card.Website)
}

func seeded(list []string, legacy string) []string {
	src := list
	if len(src) == 0 && legacy != "" {
		src = []string{legacy}
	}
	var out []string
	for _, v := range src {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (c *composer) links() Section {
	var emails, websites []string
	if c.vis.Emails {
		emails = Emails(c.card)
	}
	if c.vis.Websites {
		websites = Websites(c.card)
	}
	if len(emails)+len(websites) == 0 {
		return nil
	}

	iconOnly := !c.r.LinksShowText
	shape, radius := ShapeRounded, c.r.LinksItemRadius
	switch {
	case iconOnly:
		shape, radius = ShapeCircle, fullRadius
	case c.r.LinksVariant == LinksPills:
		shape, radius = ShapePill, fullRadius
	}

	bg := CompositeOpacity(c.r.LinksBgColor, c.r.LinksBgOpacity)
	if c.r.GlassyLinks {
		bg = Glassy(c.r.LinksBgColor, c.r.LinksBgOpacity)
	}

	s := &LinksSection{
		Box:        c.box(SectionLinks),
		Variant:    c.r.LinksVariant,
		IconOnly:   iconOnly,
		Color:      c.r.LinksColor,
		Background: bg,
	}
	s.Radius = radius
	for _, e := range emails {
		s.Items = append(s.Items, LinkItem{Kind: LinkEmail, Label: e, Href: "mailto:" + e, Shape: shape, Radius: radius})
	}
	for _, w := range websites {
		s.Items = append(s.Items, LinkItem{Kind: LinkWebsite, Label: displayURL(w), Href: absoluteURL(w), Shape: shape, Radius: radius})
	}
	return s
}

func absoluteURL(u string) string {
	lower := strings.ToLower(u)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return u
	}
	return "https://" + u
}

func displayURL(u string) string {
	lower := strings.ToLower(u)
	for _, p := range []string{"https://", "http://"} {
		if strings.HasPrefix(lower, p) {
			u = u[len(p):]
			break
		}
	}
	u = strings.TrimPrefix(u, "www.")
	return strings.TrimSuffix(u, "/")
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func (c *composer) contact() Section {
	var buttons []ContactButton
	if phone := strings.TrimSpace(c.card.Phone); c.vis.Phone && phone != "" {
		buttons = append(buttons, ContactButton{Kind: ContactPhone, Label: phone, Href: "tel:" + strings.ReplaceAll(phone, " ", "")})
	}
	if wa := digits(c.card.WhatsApp); c.vis.WhatsApp && wa != "" {
		buttons = append(buttons, ContactButton{Kind: ContactWhatsApp, Label: strings.TrimSpace(c.card.WhatsApp), Href: "https://wa.me/" + wa})
	}
	if c.vis.SaveContact && c.card.ID != "" && strings.TrimSpace(c.card.Name) != "" {
		buttons = append(buttons, ContactButton{Kind: ContactSaveContact, Label: c.card.Name, Href: VCardURL(c.opts.Origin, c.card.ID)})
	}
	if len(buttons) == 0 {
		return nil
	}
	b := c.box(SectionContact)
	b.Radius = c.r.ContactButtonRadius
	return &ContactSection{
		Box:       b,
		Color:     c.r.ContactButtonsColor,
		TextColor: c.r.ContactButtonsTextColor,
		Buttons:   buttons,
	}
}

func (c *composer) membership() Section {
	if !c.vis.Membership {
		return nil
	}
	bar := Membership(ParseDate(c.card.MembershipStartDate), ParseDate(c.card.MembershipExpiryDate), c.opts.Now, c.r.MembershipAccentColor)
	if bar == nil {
		return nil
	}
	b := c.box(SectionMembership)
	b.Radius = fullRadius
	return &MembershipSection{Box: b, MembershipBar: *bar}
}

func (c *composer) specialLinks() Section {
	if !c.vis.SpecialLinks {
		return nil
	}
	var items []SpecialLinkItem
	for _, sl := range c.card.SpecialLinks {
		if sl.ImageURL == "" {
			continue
		}
		items = append(items, SpecialLinkItem{
			ID:       sl.ID,
			ImageURL: sl.ImageURL,
			LinkURL:  sl.LinkURL,
			Title:    localizedTitle(sl, c.opts.Lang),
		})
	}
	if len(items) == 0 {
		return nil
	}
	b := c.box(SectionSpecialLinks)
	b.Radius = c.r.LinksItemRadius
	return &SpecialLinksSection{
		Box:     b,
		Columns: c.r.SpecialLinksColumns,
		Aspect:  c.r.SpecialLinkAspect,
		Items:   items,
	}
}

func localizedTitle(sl models.SpecialLink, lang string) string {
	if lang == "ar" {
		if sl.TitleAr != "" {
			return sl.TitleAr
		}
		return sl.TitleEn
	}
	if sl.TitleEn != "" {
		return sl.TitleEn
	}
	return sl.TitleAr
}

func (c *composer) location() Section {
	u := strings.TrimSpace(c.card.LocationURL)
	if !c.vis.Location || u == "" {
		return nil
	}
	b := c.box(SectionLocation)
	b.Radius = c.r.LinksItemRadius
	return &LocationSection{
		Box:        b,
		URL:        u,
		Label:      strings.TrimSpace(c.card.LocationLabel),
		Color:      c.r.LinksColor,
		Background: CompositeOpacity(c.r.LocationBgColor, c.r.LinksBgOpacity),
	}
}

func (c *composer) social() Section {
	if !c.vis.SocialLinks {
		return nil
	}
	var icons []SocialIcon
	for _, sl := range c.card.SocialLinks {
		if strings.TrimSpace(sl.URL) == "" {
			continue
		}
		color := c.r.SocialIconsColor
		if c.r.UseBrandColors {
			if bc, ok := BrandColor(sl.PlatformID); ok {
				color = bc
			}
		}
		icons = append(icons, SocialIcon{
			PlatformID: sl.PlatformID,
			Platform:   sl.Platform,
			URL:        absoluteURL(strings.TrimSpace(sl.URL)),
			Color:      color,
		})
	}
	if len(icons) == 0 {
		return nil
	}
	b := c.box(SectionSocial)
	b.Radius = fullRadius
	return &SocialSection{
		Box:        b,
		Columns:    c.r.SocialIconsColumns,
		IconSize:   c.r.SocialIconSize,
		Background: c.r.SocialIconsBgColor,
		Icons:      icons,
	}
}

func (c *composer) qr() Section {
	if !c.vis.QR || c.card.ID == "" {
		return nil
	}
	share := ShareURL(c.opts.Origin, c.card.ID)
	b := c.box(SectionQR)
	b.Radius = c.r.LinksItemRadius
	return &QRSection{
		Box:         b,
		ShareURL:    share,
		ImageURL:    QRImageURL(c.opts.QRProvider, share, c.r.QRSize, c.r.QRColor, c.r.QRBgColor),
		Size:        c.r.QRSize,
		Color:       c.r.QRColor,
		BgColor:     c.r.QRBgColor,
		ShareButton: c.vis.ShareButton,
	}
}
