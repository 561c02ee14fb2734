package transform

import (
	"github.com/npillmayer/bdfe/core/bdf"
	"github.com/npillmayer/bdfe/core/glyph"
)

// Config selects the transformations applied to every glyph. The zero value
// normalizes heights to whole pages and does nothing else.
type Config struct {
	Native   bool // keep the cell height as declared
	Ascender int  // blank pixel rows to add on top of every glyph
	Rotate   bool // rotate glyphs 90° counter-clockwise
	Flip     bool // reverse bit order within bytes
	DropLast bool // leave off the last byte of every glyph
}

// Transformer converts raw glyphs of one font. It is stateless per glyph
// and may be used for glyphs in any order.
type Transformer struct {
	config Config
	cell   bdf.BBox
}

// New creates a transformer placing glyphs into cell, which is usually the
// font bounding box, and applying conf.
func New(conf Config, cell bdf.BBox) *Transformer {
	if conf.Ascender < 0 {
		conf.Ascender = 0
	}
	return &Transformer{config: conf, cell: cell}
}

// Height returns the pixel height of every transformed glyph, in the upright
// frame.
func (t *Transformer) Height() int {
	h := t.cell.H + t.config.Ascender
	if !t.config.Native {
		h = NormalHeight(h)
	}
	return h
}

// Width returns the pixel width of every transformed glyph, in the upright
// frame.
func (t *Transformer) Width() int {
	return t.cell.W
}

// Descriptor describes the encoding of glyphs produced by t.
func (t *Transformer) Descriptor() glyph.Descriptor {
	return glyph.Descriptor{
		Width:    t.Width(),
		Height:   t.Height(),
		Ascender: t.config.Ascender,
		Rotated:  t.config.Rotate,
		Flipped:  t.config.Flip,
		DropLast: t.config.DropLast,
	}
}

// Place draws raw into a blank bitmap of the cell's size. The glyph's bounding
// box offsets are interpreted relative to the cell's lower left corner;
// pixels outside of the cell are clipped.
func (t *Transformer) Place(raw *bdf.RawGlyph) *glyph.Bitmap {
	b := glyph.NewBitmap(t.cell.W, t.cell.H)
	left := raw.BBox.X - t.cell.X
	top := (t.cell.H + t.cell.Y) - (raw.BBox.Y + raw.BBox.H)
	if left != 0 || top != 0 {
		tracer().Debugf("glyph %d placed at %d,%d in cell %s", raw.Codepoint, left, top, t.cell)
	}
	for y := 0; y < raw.BBox.H; y++ {
		for x := 0; x < raw.BBox.W; x++ {
			if raw.At(x, y) {
				b.Set(left+x, top+y, true)
			}
		}
	}
	return b
}

// Upright returns the bitmap of raw after placement, ascender padding and
// height normalization, before it is rotated and encoded.
func (t *Transformer) Upright(raw *bdf.RawGlyph) *glyph.Bitmap {
	return Pad(t.Place(raw), t.config.Ascender, t.Height())
}

// Apply transforms a single raw glyph. Apply has no failure path: the scanner
// guarantees glyphs are at most 8 pixels wide.
func (t *Transformer) Apply(raw *bdf.RawGlyph) glyph.Glyph {
	bm := t.Upright(raw)
	if t.config.Rotate {
		// columns left to right, top pixel in the MSB; flipped this is the
		// page layout of SSD1306 style controllers
		bm = Columns(bm)
	}
	data := bm.PackRows()
	if t.config.Flip {
		Flip(data)
	}
	if t.config.DropLast && len(data) > 0 {
		data = data[:len(data)-1]
	}
	return glyph.Glyph{
		Codepoint: raw.Codepoint,
		Width:     t.Width(),
		Height:    t.Height(),
		Bytes:     data,
	}
}

// Table transforms all glyphs, which have to be ordered by codepoint, and
// collects them into a table.
func (t *Transformer) Table(raws []bdf.RawGlyph) *glyph.Table {
	glyphs := make([]glyph.Glyph, len(raws))
	for i := range raws {
		glyphs[i] = t.Apply(&raws[i])
	}
	table := glyph.NewTable(t.Descriptor(), glyphs)
	tracer().Infof("converted %d glyphs of %dx%d pixels, %d bytes each",
		table.Count, table.Width, table.Height, table.ByteCount)
	return table
}

// Decode recovers the upright bitmap of g, a glyph encoded as described by d.
// A byte removed by DropLast is restored as zero.
func Decode(g glyph.Glyph, d glyph.Descriptor) *glyph.Bitmap {
	data := make([]byte, len(g.Bytes), len(g.Bytes)+1)
	copy(data, g.Bytes)
	if d.DropLast {
		data = append(data, 0)
	}
	if d.Flipped {
		Flip(data)
	}
	if d.Rotated {
		return RotateCW(Mirror(glyph.UnpackRows(data, g.Height, g.Width)))
	}
	return glyph.UnpackRows(data, g.Width, g.Height)
}
