package render

// SectionKind names a visual block of a rendered card.
type SectionKind string

// Sections in canonical render order
const (
	SectionHeader       SectionKind = "header"
	SectionAvatar       SectionKind = "avatar"
	SectionName         SectionKind = "name"
	SectionTitle        SectionKind = "title"
	SectionBodyFeature  SectionKind = "bodyFeature"
	SectionBio          SectionKind = "bio"
	SectionLinks        SectionKind = "links"
	SectionContact      SectionKind = "contact"
	SectionMembership   SectionKind = "membership"
	SectionSpecialLinks SectionKind = "specialLinks"
	SectionLocation     SectionKind = "location"
	SectionSocial       SectionKind = "social"
	SectionQR           SectionKind = "qr"
)

// Section is one block of a Layout. The concrete type carries its content.
type Section interface {
	Kind() SectionKind
}

// Box is the geometry shared by every section.
type Box struct {
	Type      SectionKind `json:"kind"`
	MarginTop int         `json:"marginTop"`
	Padding   int         `json:"padding"`
	Radius    int         `json:"radius"`
}

func (b Box) Kind() SectionKind { return b.Type }

type HeaderSection struct {
	Box
	Geometry   HeaderGeometry `json:"geometry"`
	ThemeType  string         `json:"themeType"`
	Background string         `json:"background"` // CSS background value
}

type AvatarSection struct {
	Box
	ImageURL    string `json:"imageUrl,omitempty"`
	Initials    string `json:"initials,omitempty"`
	Size        int    `json:"size"`
	BorderWidth int    `json:"borderWidth"`
	BorderColor string `json:"borderColor"`
	Shape       string `json:"shape"`
	RadiusClass string `json:"radiusClass"`
}

// NameSection carries the display name and its purely decorative extras.
type NameSection struct {
	Box
	Text        string `json:"text"`
	Color       string `json:"color"`
	FontSize    int    `json:"fontSize"`
	GoldenFrame bool   `json:"goldenFrame"`
	Verified    bool   `json:"verified"`
	Stars       int    `json:"stars"`
}

type TitleSection struct {
	Box
	Title    string `json:"title,omitempty"`
	Company  string `json:"company,omitempty"`
	Color    string `json:"color"`
	FontSize int    `json:"fontSize"`
}

type BodyFeatureSection struct {
	Box
	Text       string `json:"text,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Background string `json:"background"`
	TextColor  string `json:"textColor"`
}

type BioSection struct {
	Box
	Text       string `json:"text"`
	TextColor  string `json:"textColor"`
	Background string `json:"background"`
}

// Link item kinds
const (
	LinkEmail   = "email"
	LinkWebsite = "website"
)

// Link item shapes
const (
	ShapeRounded = "rounded"
	ShapePill    = "pill"
	ShapeCircle  = "circle"
)

// fullRadius renders as a circle or pill
const fullRadius = 9999

type LinkItem struct {
	Kind   string `json:"kind"`
	Label  string `json:"label"`
	Href   string `json:"href"`
	Shape  string `json:"shape"`
	Radius int    `json:"radius"`
}

type LinksSection struct {
	Box
	Variant    string     `json:"variant"`
	IconOnly   bool       `json:"iconOnly"`
	Color      string     `json:"color"`
	Background string     `json:"background"`
	Items      []LinkItem `json:"items"`
}

// Contact button kinds
const (
	ContactPhone       = "phone"
	ContactWhatsApp    = "whatsapp"
	ContactSaveContact = "saveContact"
)

type ContactButton struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Href  string `json:"href"`
}

type ContactSection struct {
	Box
	Color     string          `json:"color"`
	TextColor string          `json:"textColor"`
	Buttons   []ContactButton `json:"buttons"`
}

type MembershipSection struct {
	Box
	MembershipBar
}

type SpecialLinkItem struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
	LinkURL  string `json:"linkUrl"`
	Title    string `json:"title"`
}

type SpecialLinksSection struct {
	Box
	Columns int               `json:"columns"`
	Aspect  string            `json:"aspect"`
	Items   []SpecialLinkItem `json:"items"`
}

type LocationSection struct {
	Box
	URL        string `json:"url"`
	Label      string `json:"label"`
	Color      string `json:"color"`
	Background string `json:"background"`
}

type SocialIcon struct {
	PlatformID string `json:"platformId"`
	Platform   string `json:"platform"`
	URL        string `json:"url"`
	Color      string `json:"color"`
}

type SocialSection struct {
	Box
	Columns    int          `json:"columns"`
	IconSize   int          `json:"iconSize"`
	Background string       `json:"background"`
	Icons      []SocialIcon `json:"icons"`
}

type QRSection struct {
	Box
	ShareURL    string `json:"shareUrl"`
	ImageURL    string `json:"imageUrl"`
	Size        int    `json:"size"`
	Color       string `json:"color"`
	BgColor     string `json:"bgColor"`
	ShareButton bool   `json:"shareButton"` // offer a share action for ShareURL
}
