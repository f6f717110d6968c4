// Package slug normalises and validates public card ids.
package slug

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

// MaxLen is the longest id accepted.
const MaxLen = 64

// Status is the availability of an id for a given owner.
type Status string

const (
	Available Status = "available"
	Taken     Status = "taken"
	Invalid   Status = "invalid"
)

// ErrInvalid is returned by Validate for any malformed id.
var ErrInvalid = errors.New("invalid slug")

var (
	reSlug     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return reSlug.MatchString(fl.Field().String())
	})
	return v
}

type candidate struct {
	ID string `validate:"required,min=3,max=64,slug"`
}

// Normalize trims and lowercases an id typed by a user. It does not
// otherwise rewrite it; use Slugify for free text.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Validate reports whether s is an acceptable id as stored: lowercase
// letters, digits and single inner hyphens, 3 to 64 characters.
func Validate(s string) error {
	if err := validate.Struct(candidate{ID: s}); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &Error{Value: s, Rule: verrs[0].Tag()}
		}
		return ErrInvalid
	}
	return nil
}

// Error describes which rule an id failed.
type Error struct {
	Value string
	Rule  string // required, min, max, slug
}

func (e *Error) Error() string {
	switch e.Rule {
	case "required":
		return "slug is required"
	case "min":
		return "slug must be at least 3 characters"
	case "max":
		return "slug must be at most 64 characters"
	}
	return "slug may only contain lowercase letters, digits and hyphens"
}

func (e *Error) Unwrap() error { return ErrInvalid }

// Slugify turns free text such as a display name into an id candidate:
// diacritics stripped, runs of anything else collapsed to "-", trimmed to
// MaxLen. The result may still be too short to pass Validate.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		buf = append(buf, r)
	}
	s = string(buf)

	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if utf8.RuneCountInString(s) > MaxLen {
		s = strings.Trim(s[:MaxLen], "-")
	}
	return s
}
