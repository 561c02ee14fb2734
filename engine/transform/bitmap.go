package transform

import (
	"math/bits"

	"github.com/npillmayer/bdfe/core/glyph"
)

// RotateCCW returns b turned 90° counter-clockwise. A W×H bitmap becomes an
// H×W bitmap; the top right pixel moves to the top left.
func RotateCCW(b *glyph.Bitmap) *glyph.Bitmap {
	w, h := b.Width(), b.Height()
	r := glyph.NewBitmap(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if b.At(x, y) {
				r.Set(y, w-1-x, true)
			}
		}
	}
	return r
}

// RotateCW returns b turned 90° clockwise, the inverse of RotateCCW.
func RotateCW(b *glyph.Bitmap) *glyph.Bitmap {
	w, h := b.Width(), b.Height()
	r := glyph.NewBitmap(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if b.At(x, y) {
				r.Set(h-1-y, x, true)
			}
		}
	}
	return r
}

// Mirror returns b upside down: the top row becomes the bottom row.
func Mirror(b *glyph.Bitmap) *glyph.Bitmap {
	w, h := b.Width(), b.Height()
	m := glyph.NewBitmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if b.At(x, y) {
				m.Set(x, h-1-y, true)
			}
		}
	}
	return m
}

// Columns returns the vertical layout of b: b rotated counter-clockwise and
// read from the bottom row up. Row i of the result is column i of b, left to
// right, with the top pixel of b in the first position.
func Columns(b *glyph.Bitmap) *glyph.Bitmap {
	return Mirror(RotateCCW(b))
}

// Flip reverses the bit order within every byte of data, in place.
// Flip is its own inverse.
func Flip(data []byte) []byte {
	for i, b := range data {
		data[i] = bits.Reverse8(b)
	}
	return data
}

// Pad returns a copy of b with n blank rows added on top and the height
// extended to at least h rows.
func Pad(b *glyph.Bitmap, n, h int) *glyph.Bitmap {
	if n < 0 {
		n = 0
	}
	if h < b.Height()+n {
		h = b.Height() + n
	}
	p := glyph.NewBitmap(b.Width(), h)
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if b.At(x, y) {
				p.Set(x, y+n, true)
			}
		}
	}
	return p
}

// NormalHeight rounds h up to the next multiple of 8 pixels.
func NormalHeight(h int) int {
	return glyph.Pages(h) * 8
}
