package render

import "testing"

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#ff8000", RGB{255, 128, 0}},
		{"ff8000", RGB{255, 128, 0}},
		{"#abc", RGB{0xaa, 0xbb, 0xcc}},
		{"ABC", RGB{0xaa, 0xbb, 0xcc}},
		{"", RGB{}},
		{"#abcd", RGB{}},
		{"#zzzzzz", RGB{}},
		{"not a color", RGB{}},
	}

	for _, tt := range tests {
		if got := HexToRGB(tt.in); got != tt.want {
			t.Errorf("HexToRGB(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorKinds(t *testing.T) {
	tests := []struct {
		in   string
		kind ColorKind
	}{
		{"", ColorNone},
		{"#123456", ColorHex},
		{"rgba(1, 2, 3, 0.5)", ColorRGBA},
		{"rgb(1,2,3)", ColorRGBA},
		{"White", ColorNamed},
		{"transparent", ColorNamed},
		{"rebeccapurple", ColorNamed},
		{"hsl(120, 100%, 25%)", ColorRGBA},
		{"#ff000080", ColorRGBA},
		{"notacolor", ColorUnknown},
		{"var(--brand)", ColorUnknown},
		{"rgba(1,2)", ColorUnknown},
		{"linear-gradient(red, blue)", ColorUnknown},
	}

	for _, tt := range tests {
		if got := ParseColor(tt.in).Kind; got != tt.kind {
			t.Errorf("ParseColor(%q).Kind = %d, want %d", tt.in, got, tt.kind)
		}
	}
}

func TestCompositeOpacity(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		percent int
		want    string
	}{
		{"hex half", "#ff0000", 50, "rgba(255,0,0,0.5)"},
		{"hex opaque keeps hex", "#FF0000", 100, "#ff0000"},
		{"short hex", "#f00", 25, "rgba(255,0,0,0.25)"},
		{"rgba multiplies alpha", "rgba(0,0,255,0.5)", 50, "rgba(0,0,255,0.25)"},
		{"rgba at full opacity", "rgba(0, 0, 255, 0.5)", 100, "rgba(0,0,255,0.5)"},
		{"named color blends", "white", 50, "rgba(255,255,255,0.5)"},
		{"named color opaque", "white", 100, "white"},
		{"extended named color", "lightblue", 50, "rgba(173,216,230,0.5)"},
		{"extended named color dark", "darkgreen", 50, "rgba(0,100,0,0.5)"},
		{"rebeccapurple", "RebeccaPurple", 50, "rgba(102,51,153,0.5)"},
		{"hsl", "hsl(0, 100%, 50%)", 50, "rgba(255,0,0,0.5)"},
		{"transparent keeps zero alpha", "transparent", 50, "rgba(0,0,0,0)"},
		{"clamped above", "#ff0000", 150, "#ff0000"},
		{"clamped below", "#ff0000", -10, "rgba(255,0,0,0)"},
		{"unknown passes through", "var(--x)", 50, "var(--x)"},
		{"empty stays empty", "", 50, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompositeOpacity(tt.base, tt.percent); got != tt.want {
				t.Errorf("CompositeOpacity(%q, %d) = %q, want %q", tt.base, tt.percent, got, tt.want)
			}
		})
	}
}

func TestGlassy(t *testing.T) {
	// #000000 lightened 20% towards white is 51,51,51
	if got := Glassy("#000000", 40); got != "rgba(51,51,51,0.4)" {
		t.Errorf("Expected rgba(51,51,51,0.4), got %s", got)
	}
	if got := Glassy("red", 100); got != "#ff3333" {
		t.Errorf("Named colors should lighten like hex, got %s", got)
	}
	if got := Glassy("#ff0000", 100); got != "#ff3333" {
		t.Errorf("Expected #ff3333, got %s", got)
	}
	if got := Glassy("transparent", 50); got != "rgba(51,51,51,0)" {
		t.Errorf("Expected transparent to keep zero alpha, got %s", got)
	}
	if got := Glassy("rgba(0,0,0,0.5)", 50); got != "rgba(51,51,51,0.25)" {
		t.Errorf("Expected incoming alpha to be kept, got %s", got)
	}
	if got := Glassy("var(--x)", 40); got != "var(--x)" {
		t.Errorf("Expected unknown color untouched, got %s", got)
	}
}

func TestLerp(t *testing.T) {
	a := RGB{0, 100, 200}
	b := RGB{100, 0, 200}

	if got := Lerp(a, b, 0); got != a {
		t.Errorf("t=0: got %+v", got)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("t=1: got %+v", got)
	}
	if got := Lerp(a, b, 0.5); got != (RGB{50, 50, 200}) {
		t.Errorf("t=0.5: got %+v", got)
	}
	if got := Lerp(a, b, 7); got != b {
		t.Errorf("t should clamp to 1, got %+v", got)
	}
}

func TestRGBHex(t *testing.T) {
	if got := (RGB{0xef, 0x44, 0x04}).Hex(); got != "#ef4404" {
		t.Errorf("Expected #ef4404, got %s", got)
	}
}

func TestBrandColor(t *testing.T) {
	if c, ok := BrandColor("Facebook"); !ok || c != "#1877f2" {
		t.Errorf("Expected facebook blue, got %q (%v)", c, ok)
	}
	if _, ok := BrandColor("myspace"); ok {
		t.Error("Unknown platform should have no brand color")
	}
}
