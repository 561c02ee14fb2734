/*
Package face makes converted glyph tables usable with golang.org/x/image/font.

A Face decodes every glyph of a table back to its upright pixels, so text may
be drawn with the encoded font exactly as a display controller would show it.
This is used for the display preview and for exporting glyph sheets as images.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package face

import (
	"image"
	"unicode/utf8"

	"github.com/npillmayer/bdfe/core/glyph"
	"github.com/npillmayer/bdfe/engine/transform"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'bdfe.face'.
func tracer() tracing.Trace {
	return tracing.Select("bdfe.face")
}

// Face is a fixed-width font.Face over a glyph table. The baseline is the
// bottom edge of the cell, i.e. ascent equals the cell height and descent is
// zero.
type Face struct {
	width, height int
	masks         map[rune]*image.Alpha
}

var _ font.Face = (*Face)(nil)

// New decodes all glyphs of table. Glyphs with codepoints outside of the
// Unicode range are left out.
func New(table *glyph.Table) *Face {
	f := &Face{
		width:  table.Width,
		height: table.Height,
		masks:  make(map[rune]*image.Alpha, table.Len()),
	}
	for _, g := range table.Glyphs {
		if g.Codepoint > utf8.MaxRune {
			tracer().Debugf("glyph %d has no rune", g.Codepoint)
			continue
		}
		f.masks[rune(g.Codepoint)] = mask(transform.Decode(g, table.Descriptor))
	}
	return f
}

func mask(bm *glyph.Bitmap) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, bm.Width(), bm.Height()))
	for y := 0; y < bm.Height(); y++ {
		for x := 0; x < bm.Width(); x++ {
			if bm.At(x, y) {
				m.Pix[m.PixOffset(x, y)] = 0xff
			}
		}
	}
	return m
}

// CellSize returns width and height of a glyph cell in pixels.
func (f *Face) CellSize() (int, int) {
	return f.width, f.height
}

// Has is true if the face contains a glyph for r.
func (f *Face) Has(r rune) bool {
	_, ok := f.masks[r]
	return ok
}

// Close is a no-op.
func (f *Face) Close() error { return nil }

// Glyph is part of the font.Face interface.
func (f *Face) Glyph(dot fixed.Point26_6, r rune) (
	dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	//
	m, ok := f.masks[r]
	if !ok {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	x, y := dot.X.Round(), dot.Y.Round()
	dr = image.Rect(x, y-f.height, x+f.width, y)
	return dr, m, image.Point{}, fixed.I(f.width), true
}

// GlyphBounds is part of the font.Face interface.
func (f *Face) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	if _, ok = f.masks[r]; !ok {
		return
	}
	bounds = fixed.R(0, -f.height, f.width, 0)
	return bounds, fixed.I(f.width), true
}

// GlyphAdvance is part of the font.Face interface.
func (f *Face) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	if _, ok = f.masks[r]; !ok {
		return
	}
	return fixed.I(f.width), true
}

// Kern is part of the font.Face interface. Cells never kern.
func (f *Face) Kern(r0, r1 rune) fixed.Int26_6 { return 0 }

// Metrics is part of the font.Face interface.
func (f *Face) Metrics() font.Metrics {
	return font.Metrics{
		Height: fixed.I(f.height),
		Ascent: fixed.I(f.height),
	}
}
