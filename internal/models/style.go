package models

// Visibility holds one flag per optional card section.
// On a Card a nil flag inherits the template default; on a Template a nil
// default means "shown".
type Visibility struct {
	ShowHeader        *bool `json:"showHeader,omitempty"`
	ShowAvatar        *bool `json:"showAvatar,omitempty"`
	ShowName          *bool `json:"showName,omitempty"`
	ShowTitle         *bool `json:"showTitle,omitempty"`
	ShowCompany       *bool `json:"showCompany,omitempty"`
	ShowBio           *bool `json:"showBio,omitempty"`
	ShowBodyFeature   *bool `json:"showBodyFeature,omitempty"`
	ShowEmails        *bool `json:"showEmails,omitempty"`
	ShowWebsites      *bool `json:"showWebsites,omitempty"`
	ShowPhone         *bool `json:"showPhone,omitempty"`
	ShowWhatsApp      *bool `json:"showWhatsapp,omitempty"`
	ShowSaveContact   *bool `json:"showSaveContact,omitempty"`
	ShowMembership    *bool `json:"showMembership,omitempty"`
	ShowSpecialLinks  *bool `json:"showSpecialLinks,omitempty"`
	ShowLocation      *bool `json:"showLocation,omitempty"`
	ShowSocialLinks   *bool `json:"showSocialLinks,omitempty"`
	ShowQR            *bool `json:"showQr,omitempty"`
	ShowGoldenFrame   *bool `json:"showGoldenFrame,omitempty"`
	ShowVerifiedBadge *bool `json:"showVerifiedBadge,omitempty"`
	ShowStars         *bool `json:"showStars,omitempty"`
	ShowShareButton   *bool `json:"showShareButton,omitempty"`
}

// Style holds every overridable visual attribute. Colors are CSS color
// strings; sizes are pixels unless noted.
type Style struct {
	AccentColor             *string `json:"accentColor,omitempty"`
	NameColor               *string `json:"nameColor,omitempty"`
	TitleColor              *string `json:"titleColor,omitempty"`
	BioTextColor            *string `json:"bioTextColor,omitempty"`
	BioBgColor              *string `json:"bioBgColor,omitempty"`
	LinksColor              *string `json:"linksColor,omitempty"`
	LinksBgColor            *string `json:"linksBgColor,omitempty"`
	SocialIconsColor        *string `json:"socialIconsColor,omitempty"`
	SocialIconsBgColor      *string `json:"socialIconsBgColor,omitempty"`
	ContactButtonsColor     *string `json:"contactButtonsColor,omitempty"`
	ContactButtonsTextColor *string `json:"contactButtonsTextColor,omitempty"`
	BodyFeatureBgColor      *string `json:"bodyFeatureBgColor,omitempty"`
	BodyFeatureTextColor    *string `json:"bodyFeatureTextColor,omitempty"`
	LocationBgColor         *string `json:"locationBgColor,omitempty"`
	MembershipAccentColor   *string `json:"membershipAccentColor,omitempty"`
	QRColor                 *string `json:"qrColor,omitempty"`
	QRBgColor               *string `json:"qrBgColor,omitempty"`
	PageBgColor             *string `json:"pageBgColor,omitempty"`
	CardBgColor             *string `json:"cardBgColor,omitempty"`

	// Opacities in percent (0-100)
	BioBgOpacity   *int `json:"bioBgOpacity,omitempty"`
	LinksBgOpacity *int `json:"linksBgOpacity,omitempty"`
	CardBgOpacity  *int `json:"cardBgOpacity,omitempty"`

	HeaderHeight        *int `json:"headerHeight,omitempty"`
	AvatarSize          *int `json:"avatarSize,omitempty"`
	AvatarBorderWidth   *int `json:"avatarBorderWidth,omitempty"`
	AvatarOffsetY       *int `json:"avatarOffsetY,omitempty"`
	NameFontSize        *int `json:"nameFontSize,omitempty"`
	TitleFontSize       *int `json:"titleFontSize,omitempty"`
	ContentPadding      *int `json:"contentPadding,omitempty"`
	SectionSpacing      *int `json:"sectionSpacing,omitempty"`
	LinksItemRadius     *int `json:"linksItemRadius,omitempty"`
	ContactButtonRadius *int `json:"contactButtonRadius,omitempty"`
	SocialIconSize      *int `json:"socialIconSize,omitempty"`
	SocialIconsColumns  *int `json:"socialIconsColumns,omitempty"`
	SpecialLinksColumns *int `json:"specialLinksColumns,omitempty"`
	QRSize              *int `json:"qrSize,omitempty"`
	StarsCount          *int `json:"starsCount,omitempty"`

	AvatarShape       *string `json:"avatarShape,omitempty"`       // circle, squircle, square, none
	LinksVariant      *string `json:"linksVariant,omitempty"`      // list, grid, pills
	SpecialLinkAspect *string `json:"specialLinkAspect,omitempty"` // "1:1", "16:9", "4:3"

	LinksShowText  *bool `json:"linksShowText,omitempty"`
	UseBrandColors *bool `json:"useBrandColors,omitempty"`
	GlassyLinks    *bool `json:"glassyLinks,omitempty"`
}
