// Package thumbs handles card thumbnail bytes: validating stored PNG data
// and synthesizing placeholder images when none is usable. Rasterizing real
// document pages is the presentation layer's job; this package only
// guarantees that every card has displayable thumbnail bytes.
package thumbs

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

var (
	fillColor   = color.RGBA{R: 0xEC, G: 0xEC, B: 0xEC, A: 0xFF}
	borderColor = color.RGBA{R: 0xB0, G: 0xB0, B: 0xB0, A: 0xFF}
)

// IsDecodable reports whether data holds a decodable PNG image.
func IsDecodable(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	_, err := png.Decode(bytes.NewReader(data))
	return err == nil
}

// Placeholder renders a plain placeholder thumbnail of the given card size
// and returns it PNG-encoded. Dimensions are rounded to pixels and floored
// at 1x1 so corrupt sizes still yield an image.
func Placeholder(width, height float64) ([]byte, error) {
	w := int(width + 0.5)
	h := int(height + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(fillColor), image.Point{}, draw.Src)

	for x := 0; x < w; x++ {
		img.SetRGBA(x, 0, borderColor)
		img.SetRGBA(x, h-1, borderColor)
	}
	for y := 0; y < h; y++ {
		img.SetRGBA(0, y, borderColor)
		img.SetRGBA(w-1, y, borderColor)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}

// Ensure returns data unchanged when it is a decodable PNG, and otherwise a
// freshly synthesized placeholder of the given size.
func Ensure(data []byte, width, height float64) ([]byte, error) {
	if IsDecodable(data) {
		return data, nil
	}
	return Placeholder(width, height)
}
