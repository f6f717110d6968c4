package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+i*2] = digits[v>>4]
		b[2+i*2] = digits[v&0x0f]
	}
	return string(b)
}

// HexToRGB parses a 3 or 6 digit hex color, with or without the leading '#'.
// Anything else yields black.
func HexToRGB(hex string) RGB {
	rgb, ok := parseHex(hex)
	if !ok {
		return RGB{}
	}
	return rgb
}

func parseHex(s string) (RGB, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return RGB{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

// Lerp blends a towards b per channel. t is clamped to [0,1].
func Lerp(a, b RGB, t float64) RGB {
	t = clampFloat(t, 0, 1)
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return RGB{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}

// ColorKind tags how a Color was written.
type ColorKind int

const (
	ColorNone    ColorKind = iota // empty input
	ColorHex                      // #rgb / #rrggbb
	ColorRGBA                     // rgb(...) / rgba(...)
	ColorNamed                    // CSS color keyword
	ColorUnknown                  // anything else, passed through untouched
)

// Color is a parsed CSS color. Parse once with ParseColor and blend the
// parsed value; CSS renders it back.
type Color struct {
	Kind ColorKind
	RGB
	A   float64 // alpha in [0,1]
	Raw string  // original text for named and unknown colors
}

// ParseColor reads a CSS color string. It never fails: unrecognised input is
// kept verbatim with Kind ColorUnknown.
func ParseColor(s string) Color {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{Kind: ColorNone}
	}
	lower := strings.ToLower(s)

	if rgb, ok := parseHex(lower); ok {
		return Color{Kind: ColorHex, RGB: rgb, A: 1}
	}
	pc, err := csscolorparser.Parse(lower)
	if err != nil {
		return Color{Kind: ColorUnknown, Raw: s}
	}
	c := Color{
		RGB: RGB{R: channel(pc.R), G: channel(pc.G), B: channel(pc.B)},
		A:   roundAlpha(clampFloat(pc.A, 0, 1)),
	}
	switch {
	case isKeyword(lower):
		c.Kind = ColorNamed
		c.Raw = lower
	case strings.HasPrefix(lower, "#") && c.A >= 1:
		c.Kind = ColorHex
	default:
		c.Kind = ColorRGBA
	}
	return c
}

func channel(v float64) uint8 {
	return uint8(math.Round(clampFloat(v, 0, 1) * 255))
}

// isKeyword reports whether s is a bare CSS color name such as "rebeccapurple".
func isKeyword(s string) bool {
	hexOnly := true
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
		if r > 'f' {
			hexOnly = false
		}
	}
	return !hexOnly
}

// Blendable reports whether the color's channels are known.
func (c Color) Blendable() bool {
	return c.Kind == ColorHex || c.Kind == ColorRGBA || c.Kind == ColorNamed
}

// WithOpacity scales the alpha by percent, clamped to [0,100]. Unknown and
// empty colors are returned unchanged.
func (c Color) WithOpacity(percent int) Color {
	if !c.Blendable() {
		return c
	}
	p := clampFloat(float64(percent), 0, 100) / 100
	c.A = roundAlpha(c.A * p)
	if c.A < 1 {
		c.Kind = ColorRGBA
	}
	return c
}

// CSS renders the color for a style attribute.
func (c Color) CSS() string {
	switch c.Kind {
	case ColorNone:
		return ""
	case ColorHex:
		if c.A >= 1 {
			return c.RGB.Hex()
		}
	case ColorNamed:
		if c.A >= 1 || c.Raw == "transparent" {
			return c.Raw
		}
	case ColorUnknown:
		return c.Raw
	}
	return "rgba(" + strconv.Itoa(int(c.R)) + "," + strconv.Itoa(int(c.G)) + "," +
		strconv.Itoa(int(c.B)) + "," + strconv.FormatFloat(roundAlpha(c.A), 'f', -1, 64) + ")"
}

// CompositeOpacity applies an opacity percentage to a CSS color string.
func CompositeOpacity(base string, percent int) string {
	return ParseColor(base).WithOpacity(percent).CSS()
}

var white = RGB{R: 255, G: 255, B: 255}

// Glassy lightens a color towards white and makes it translucent. Used for
// frosted link tiles over image and gradient headers.
func Glassy(base string, percent int) string {
	c := ParseColor(base)
	if !c.Blendable() {
		return c.CSS()
	}
	c.RGB = Lerp(c.RGB, white, 0.2)
	c.Kind = ColorHex
	if c.A < 1 {
		c.Kind = ColorRGBA
	}
	return c.WithOpacity(percent).CSS()
}

func roundAlpha(a float64) float64 {
	return math.Round(a*1000) / 1000
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
