package render

// Header shapes
const (
	HeaderClassic     = "classic"
	HeaderOverlay     = "overlay"
	HeaderCurved      = "curved"
	HeaderWave        = "wave"
	HeaderDiagonal    = "diagonal"
	HeaderSplitLeft   = "split-left"
	HeaderSplitRight  = "split-right"
	HeaderSideLeft    = "side-left"
	HeaderSideRight   = "side-right"
	HeaderFloating    = "floating"
	HeaderGlassCard   = "glass-card"
	HeaderModernSplit = "modern-split"
	HeaderTopBar      = "top-bar"
	HeaderMinimal     = "minimal"
	HeaderHero        = "hero"
)

// HeaderGeometry is the concrete box for a header shape.
type HeaderGeometry struct {
	Shape       string `json:"shape"`
	Height      int    `json:"height"`
	FixedHeight bool   `json:"fixedHeight"` // shape dictates height, headerHeight ignored
	Width       string `json:"width"`
	ClipPath    string `json:"clipPath,omitempty"`
	Position    string `json:"position"` // relative, absolute
	Align       string `json:"align,omitempty"`
	Margin      int    `json:"margin"`
	Radius      int    `json:"radius"`
	Glass       bool   `json:"glass,omitempty"`
	Overlap     bool   `json:"overlap,omitempty"` // content starts on top of the header

	// Side margins forced on the content body, in percent. Zero means default.
	BodyMarginLeft  int `json:"bodyMarginLeft,omitempty"`
	BodyMarginRight int `json:"bodyMarginRight,omitempty"`
}

var headerShapes = map[string]HeaderGeometry{
	HeaderClassic:  {Width: "100%", Position: "relative"},
	HeaderOverlay:  {Width: "100%", Position: "absolute", Overlap: true},
	HeaderCurved:   {Width: "100%", Position: "relative", ClipPath: "ellipse(100% 100% at 50% 0%)"},
	HeaderWave:     {Width: "100%", Position: "relative", ClipPath: "polygon(0 0, 100% 0, 100% 85%, 75% 100%, 50% 85%, 25% 100%, 0 85%)"},
	HeaderDiagonal: {Width: "100%", Position: "relative", ClipPath: "polygon(0 0, 100% 0, 100% 75%, 0 100%)"},

	HeaderSplitLeft:  {Width: "50%", Position: "absolute", Align: "left"},
	HeaderSplitRight: {Width: "50%", Position: "absolute", Align: "right"},

	HeaderSideLeft:  {Width: "26%", Position: "absolute", Align: "left", BodyMarginLeft: 28, BodyMarginRight: 2},
	HeaderSideRight: {Width: "26%", Position: "absolute", Align: "right", BodyMarginLeft: 2, BodyMarginRight: 28},

	HeaderFloating:    {Width: "100%", Position: "relative", Margin: 16, Radius: 24},
	HeaderGlassCard:   {Width: "100%", Position: "relative", Margin: 12, Radius: 20, Glass: true},
	HeaderModernSplit: {Width: "100%", Position: "relative", ClipPath: "polygon(0 0, 100% 0, 100% 60%, 60% 100%, 0 100%)"},

	HeaderTopBar:  {Width: "100%", Position: "relative", Height: 64, FixedHeight: true},
	HeaderMinimal: {Width: "100%", Position: "relative", Height: 96, FixedHeight: true},
	HeaderHero:    {Width: "100%", Position: "relative", Height: 350, FixedHeight: true, Overlap: true},
}

// IsHeaderShape reports whether shape names a known header geometry.
func IsHeaderShape(shape string) bool {
	_, ok := headerShapes[shape]
	return ok
}

// ResolveHeader looks up the geometry of a header shape. Unknown shapes are
// treated as classic. Shapes with a fixed height ignore headerHeight.
func ResolveHeader(shape string, headerHeight int) HeaderGeometry {
	g, ok := headerShapes[shape]
	if !ok {
		shape = HeaderClassic
		g = headerShapes[HeaderClassic]
	}
	g.Shape = shape
	if !g.FixedHeight {
		g.Height = headerHeight
	}
	return g
}
