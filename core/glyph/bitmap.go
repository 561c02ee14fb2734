package glyph

import (
	"strings"
)

// Bitmap is a W×H grid of pixels, each either set or clear.
// The zero value is an empty 0×0 bitmap.
type Bitmap struct {
	w, h int
	pix  []bool
}

// NewBitmap creates a bitmap of width w and height h with all pixels clear.
func NewBitmap(w, h int) *Bitmap {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Bitmap{w: w, h: h, pix: make([]bool, w*h)}
}

// Width returns the number of pixel columns.
func (b *Bitmap) Width() int { return b.w }

// Height returns the number of pixel rows.
func (b *Bitmap) Height() int { return b.h }

// At reports whether the pixel at column x, row y is set. Coordinates outside
// the grid are clear.
func (b *Bitmap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return false
	}
	return b.pix[y*b.w+x]
}

// Set sets or clears the pixel at column x, row y. Coordinates outside the
// grid are silently ignored.
func (b *Bitmap) Set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	b.pix[y*b.w+x] = on
}

// Count returns the number of set pixels.
func (b *Bitmap) Count() (n int) {
	for _, p := range b.pix {
		if p {
			n++
		}
	}
	return
}

// Equal reports whether b and other have the same size and pixels.
func (b *Bitmap) Equal(other *Bitmap) bool {
	if other == nil || b.w != other.w || b.h != other.h {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// Stride returns the number of bytes needed to store one row of b.
func (b *Bitmap) Stride() int {
	return (b.w + 7) / 8
}

// PackRows encodes b row by row. Each row occupies Stride() bytes, the most
// significant bit of the first byte being the leftmost pixel. Unused trailing
// bits are zero.
func (b *Bitmap) PackRows() []byte {
	stride := b.Stride()
	out := make([]byte, stride*b.h)
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			if b.pix[y*b.w+x] {
				out[y*stride+x/8] |= 0x80 >> uint(x%8)
			}
		}
	}
	return out
}

// UnpackRows is the inverse of PackRows. Missing trailing bytes in data are
// treated as zero, surplus bytes are ignored.
func UnpackRows(data []byte, w, h int) *Bitmap {
	b := NewBitmap(w, h)
	stride := b.Stride()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*stride + x/8
			if i < len(data) && data[i]&(0x80>>uint(x%8)) != 0 {
				b.pix[y*w+x] = true
			}
		}
	}
	return b
}

// String renders b as lines of '#' and '.', for debugging and test output.
func (b *Bitmap) String() string {
	var sb strings.Builder
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			if b.pix[y*b.w+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBitmap is the inverse of String: every line is a row, '#' or 'X' set a
// pixel, any other character clears it. Rows shorter than the longest row are
// padded with clear pixels.
func ParseBitmap(s string) *Bitmap {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	w := 0
	for _, l := range lines {
		if len(l) > w {
			w = len(l)
		}
	}
	b := NewBitmap(w, len(lines))
	for y, l := range lines {
		for x, c := range []byte(l) {
			b.Set(x, y, c == '#' || c == 'X')
		}
	}
	return b
}
