package glyph

import (
	"fmt"
	"sort"
)

// Glyph is the encoded bitmap of a single character.
type Glyph struct {
	Codepoint int64
	Width     int    // cell width in pixels, at most 8
	Height    int    // cell height in pixels, after ascender padding and normalization
	Bytes     []byte // encoded pixels, layout given by the table's Descriptor
}

// Pages returns the number of 8-pixel vertical bands of g.
func (g Glyph) Pages() int {
	return Pages(g.Height)
}

func (g Glyph) String() string {
	return fmt.Sprintf("glyph[%d %dx%d % X]", g.Codepoint, g.Width, g.Height, g.Bytes)
}

// Pages returns the number of 8-pixel pages needed for h pixel rows.
func Pages(h int) int {
	return (h + 7) / 8
}

// Descriptor tells consumers of a Table how the glyphs have been encoded.
//
// ByteCount is the number of bytes per glyph. Rotated glyphs take
// Width*Pages(Height) bytes. Row-major glyphs take one byte per pixel row,
// i.e. Height bytes, not Width*Pages(Height): a 6×8 cell needs 8 bytes, a
// native 8×7 cell 7. DropLast removes one byte from either.
type Descriptor struct {
	Width     int   // uniform cell width in pixels
	Height    int   // uniform cell height in pixels
	Count     int   // number of glyphs
	First     int64 // lowest codepoint contained
	Last      int64 // highest codepoint contained
	Ascender  int   // blank rows added on top of each glyph
	Rotated   bool  // column-major layout
	Flipped   bool  // bits reversed within every byte
	DropLast  bool  // last byte of every glyph removed
	ByteCount int   // bytes per glyph, see above
}

// Table is the ordered sequence of converted glyphs, ascending by codepoint
// and free of duplicates. A Table is not modified after conversion.
type Table struct {
	Descriptor
	Glyphs []Glyph
}

// NewTable creates a table from glyphs, which have to be sorted by codepoint.
// Count, First, Last and ByteCount of d are derived from glyphs.
func NewTable(d Descriptor, glyphs []Glyph) *Table {
	d.Count = len(glyphs)
	d.First, d.Last, d.ByteCount = 0, 0, 0
	if len(glyphs) > 0 {
		d.First = glyphs[0].Codepoint
		d.Last = glyphs[len(glyphs)-1].Codepoint
		d.ByteCount = len(glyphs[0].Bytes)
	}
	return &Table{Descriptor: d, Glyphs: glyphs}
}

// Len returns the number of glyphs in t.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Glyphs)
}

// Lookup finds the glyph for codepoint cp.
func (t *Table) Lookup(cp int64) (Glyph, bool) {
	if t == nil {
		return Glyph{}, false
	}
	i := sort.Search(len(t.Glyphs), func(i int) bool {
		return t.Glyphs[i].Codepoint >= cp
	})
	if i < len(t.Glyphs) && t.Glyphs[i].Codepoint == cp {
		return t.Glyphs[i], true
	}
	return Glyph{}, false
}

// Size returns the total number of bytes of all glyphs in t.
func (t *Table) Size() (n int) {
	for _, g := range t.Glyphs {
		n += len(g.Bytes)
	}
	return
}
