// Package qr renders share-URL QR codes as PNG images.
package qr

import (
	"errors"
	"image/color"

	"cardly/internal/render"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	MinSize = 64
	MaxSize = 1000
)

// ErrEmpty is returned when there is nothing to encode.
var ErrEmpty = errors.New("qr: empty content")

// PNG encodes content as a size x size PNG. fg and bg are CSS colors as
// resolved for the card; anything that is not a solid color falls back to
// black on white. size is clamped to [MinSize, MaxSize].
func PNG(content string, size int, fg, bg string) ([]byte, error) {
	if content == "" {
		return nil, ErrEmpty
	}
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	q.ForegroundColor = solid(fg, color.Black)
	q.BackgroundColor = solid(bg, color.White)
	return q.PNG(clampSize(size))
}

func clampSize(size int) int {
	switch {
	case size < MinSize:
		return MinSize
	case size > MaxSize:
		return MaxSize
	}
	return size
}

func solid(css string, fallback color.Color) color.Color {
	c := render.ParseColor(css)
	if !c.Blendable() || c.A == 0 {
		return fallback
	}
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
