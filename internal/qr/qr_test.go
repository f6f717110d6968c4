package qr

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func decode(t *testing.T, b []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	return img
}

func rgb(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func TestPNGSizeAndColors(t *testing.T) {
	b, err := PNG("https://cards.example/jane", 256, "#0f172a", "#fef3c7")
	if err != nil {
		t.Fatalf("PNG failed: %v", err)
	}
	img := decode(t, b)
	if img.Bounds().Dx() != 256 || img.Bounds().Dy() != 256 {
		t.Errorf("Expected 256x256, got %v", img.Bounds())
	}

	// The quiet zone around the code is background.
	if r, g, bl := rgb(img, 0, 0); r != 0xfe || g != 0xf3 || bl != 0xc7 {
		t.Errorf("Expected background at corner, got #%02x%02x%02x", r, g, bl)
	}

	foundFg := false
	for y := 0; y < 256 && !foundFg; y++ {
		for x := 0; x < 256; x++ {
			if r, g, bl := rgb(img, x, y); r == 0x0f && g == 0x17 && bl == 0x2a {
				foundFg = true
				break
			}
		}
	}
	if !foundFg {
		t.Error("Expected foreground modules")
	}
}

func TestPNGFallbackColors(t *testing.T) {
	b, err := PNG("x", 128, "linear-gradient(red, blue)", "transparent")
	if err != nil {
		t.Fatalf("PNG failed: %v", err)
	}
	if r, g, bl := rgb(decode(t, b), 0, 0); r != 0xff || g != 0xff || bl != 0xff {
		t.Errorf("Expected white background fallback, got #%02x%02x%02x", r, g, bl)
	}
}

func TestPNGClampsSize(t *testing.T) {
	b, _ := PNG("x", 10, "", "")
	if got := decode(t, b).Bounds().Dx(); got != MinSize {
		t.Errorf("Expected %d, got %d", MinSize, got)
	}
	b, _ = PNG("x", 5000, "", "")
	if got := decode(t, b).Bounds().Dx(); got != MaxSize {
		t.Errorf("Expected %d, got %d", MaxSize, got)
	}
}

func TestPNGEmpty(t *testing.T) {
	if _, err := PNG("", 128, "", ""); err != ErrEmpty {
		t.Errorf("Expected ErrEmpty, got %v", err)
	}
}
