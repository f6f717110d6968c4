package render

import "testing"

func TestFixedHeightShapesIgnoreHeaderHeight(t *testing.T) {
	tests := []struct {
		shape string
		want  int
	}{
		{HeaderHero, 350},
		{HeaderTopBar, 64},
		{HeaderMinimal, 96},
	}

	for _, tt := range tests {
		g := ResolveHeader(tt.shape, 50)
		if g.Height != tt.want {
			t.Errorf("%s: expected height %d, got %d", tt.shape, tt.want, g.Height)
		}
		if !g.FixedHeight {
			t.Errorf("%s: expected fixed height", tt.shape)
		}
	}
}

func TestConfigurableHeightShapes(t *testing.T) {
	for _, shape := range []string{HeaderClassic, HeaderOverlay, HeaderCurved, HeaderWave, HeaderDiagonal,
		HeaderSplitLeft, HeaderSplitRight, HeaderSideLeft, HeaderSideRight, HeaderFloating,
		HeaderGlassCard, HeaderModernSplit} {
		if g := ResolveHeader(shape, 50); g.Height != 50 {
			t.Errorf("%s: expected configured height 50, got %d", shape, g.Height)
		}
	}
}

func TestSideHeadersForceBodyMargins(t *testing.T) {
	left := ResolveHeader(HeaderSideLeft, 180)
	if left.BodyMarginLeft != 28 || left.BodyMarginRight != 2 {
		t.Errorf("side-left: got margins %d/%d", left.BodyMarginLeft, left.BodyMarginRight)
	}

	right := ResolveHeader(HeaderSideRight, 180)
	if right.BodyMarginLeft != 2 || right.BodyMarginRight != 28 {
		t.Errorf("side-right: got margins %d/%d", right.BodyMarginLeft, right.BodyMarginRight)
	}

	if c := ResolveHeader(HeaderClassic, 180); c.BodyMarginLeft != 0 || c.BodyMarginRight != 0 {
		t.Error("classic header should not force body margins")
	}
}

func TestUnknownHeaderIsClassic(t *testing.T) {
	g := ResolveHeader("spiral", 120)
	if g.Shape != HeaderClassic {
		t.Errorf("Expected classic, got %s", g.Shape)
	}
	if g.Height != 120 {
		t.Errorf("Expected height 120, got %d", g.Height)
	}

	if g := ResolveHeader("", 120); g.Shape != HeaderClassic {
		t.Errorf("Empty shape should be classic, got %s", g.Shape)
	}
}

func TestHeaderTableIsNotMutated(t *testing.T) {
	ResolveHeader(HeaderCurved, 999)
	if headerShapes[HeaderCurved].Height != 0 {
		t.Error("ResolveHeader must not write into the shape table")
	}
}

func TestIsHeaderShape(t *testing.T) {
	for _, shape := range []string{HeaderClassic, HeaderHero, HeaderSideLeft, HeaderTopBar} {
		if !IsHeaderShape(shape) {
			t.Errorf("Expected %q to be a header shape", shape)
		}
	}
	for _, shape := range []string{"", "banner", "Classic"} {
		if IsHeaderShape(shape) {
			t.Errorf("Expected %q not to be a header shape", shape)
		}
	}
}
