package models

import "time"

// User is an account that owns cards. Admins also manage templates.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"displayName"`
	IsAdmin      bool      `json:"isAdmin"`
	IsLocked     bool      `json:"isLocked"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Session is a login session identified by an opaque token.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Theme types for the card header background
const (
	ThemeColor    = "color"
	ThemeGradient = "gradient"
	ThemeImage    = "image"
)

// SocialLink points at one of the owner's social profiles.
// PlatformID is a closed set (see render.BrandColor) used to pick the icon.
type SocialLink struct {
	PlatformID string `json:"platformId"`
	Platform   string `json:"platform"` // Display name
	URL        string `json:"url"`
}

// SpecialLink is an image tile linking somewhere (promotions, menus, ...).
type SpecialLink struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
	LinkURL  string `json:"linkUrl"`
	TitleAr  string `json:"titleAr"`
	TitleEn  string `json:"titleEn"`
}

// Card is one published profile: its content plus per-card visual overrides.
// Every pointer in the embedded Visibility and Style means "inherit from the
// template" when nil.
type Card struct {
	ID         string `json:"id"` // Public slug
	OwnerID    string `json:"ownerId"`
	TemplateID string `json:"templateId,omitempty"`

	Name      string `json:"name"`
	Title     string `json:"title"`
	Company   string `json:"company"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl"`

	// Legacy single-value fields, used only when the collections are empty
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`

	Emails   []string `json:"emails"`
	Websites []string `json:"websites"`
	Phone    string   `json:"phone"`
	WhatsApp string   `json:"whatsapp"`

	SocialLinks  []SocialLink  `json:"socialLinks"`
	SpecialLinks []SpecialLink `json:"specialLinks"`

	BodyFeatureText     string `json:"bodyFeatureText"`
	BodyFeatureImageURL string `json:"bodyFeatureImageUrl"`

	LocationURL   string `json:"locationUrl"`
	LocationLabel string `json:"locationLabel"`

	ThemeType       string `json:"themeType"` // color, gradient, image
	ThemeColor      string `json:"themeColor"`
	ThemeGradient   string `json:"themeGradient"`
	BackgroundImage string `json:"backgroundImage"`
	IsDark          bool   `json:"isDark"`

	MembershipStartDate  string `json:"membershipStartDate,omitempty"`  // ISO date
	MembershipExpiryDate string `json:"membershipExpiryDate,omitempty"` // ISO date

	Visibility
	Style

	// Copy of the template taken when the card was last saved. Used when the
	// live template has since been deleted.
	TemplateSnapshot *Template `json:"templateSnapshot,omitempty"`

	Views     int64     `json:"views"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Desktop layouts
const (
	LayoutFullWidthHeader = "full-width-header"
	LayoutCenteredCard    = "centered-card"
)

// Page background strategies
const (
	PageBgSolid        = "solid"
	PageBgMirrorHeader = "mirror-header"
)

// Template is an admin-authored bundle of defaults shared by many cards.
// The renderer only ever reads it.
type Template struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	HeaderType     string `json:"headerType"`     // classic, hero, side-left, ...
	DesktopLayout  string `json:"desktopLayout"`  // full-width-header, centered-card
	PageBgStrategy string `json:"pageBgStrategy"` // solid, mirror-header

	// Default for each card's show<Section> flag ("showXByDefault")
	DefaultVisibility Visibility `json:"defaultVisibility"`
	Style             Style      `json:"style"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
