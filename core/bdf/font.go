package bdf

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// MaxWidth is the widest glyph supported, in pixels. Every bitmap row has to
// fit into a single byte.
const MaxWidth = 8

// BBox is a bounding box as declared by BBX or FONTBOUNDINGBOX: width, height,
// and the offset of the lower left corner from the glyph origin.
type BBox struct {
	W, H int
	X, Y int
}

func (b BBox) String() string {
	return fmt.Sprintf("%dx%d%+d%+d", b.W, b.H, b.X, b.Y)
}

// Empty is true for boxes without any pixels.
func (b BBox) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Union returns the smallest box containing both b and other. Empty boxes
// do not contribute.
func (b BBox) Union(other BBox) BBox {
	if b.Empty() {
		return other
	}
	if other.Empty() {
		return b
	}
	x0, y0 := min(b.X, other.X), min(b.Y, other.Y)
	x1, y1 := max(b.X+b.W, other.X+other.W), max(b.Y+b.H, other.Y+other.H)
	return BBox{W: x1 - x0, H: y1 - y0, X: x0, Y: y0}
}

// Header collects the font-wide information of a BDF source.
// It is not modified after Scan returns.
type Header struct {
	Version     string            // from STARTFONT
	Name        string            // from FONT
	Comments    []string          // COMMENT lines, in order
	PointSize   int               // SIZE
	ResolutionX int               // SIZE
	ResolutionY int               // SIZE
	BoundingBox BBox              // FONTBOUNDINGBOX
	HasBBox     bool              // FONTBOUNDINGBOX present
	Ascent      int               // FONT_ASCENT property
	Descent     int               // FONT_DESCENT property
	Properties  map[string]string // all properties, quotes removed
	Chars       int               // declared number of glyphs
}

// Property returns the value of the font property key.
func (h *Header) Property(key string) (string, bool) {
	if h == nil || h.Properties == nil {
		return "", false
	}
	v, ok := h.Properties[key]
	return v, ok
}

// RawGlyph is a glyph as declared in the source, before any transformation.
type RawGlyph struct {
	Name      string // STARTCHAR
	Codepoint int64  // ENCODING
	DWidth    int    // horizontal advance
	BBox      BBox   // BBX
	Rows      []byte // one byte per scan line, top to bottom, MSB is the leftmost pixel
	Line      int    // source line of STARTCHAR
}

// At reports whether the pixel at column x, row y of the glyph's own bounding
// box is set.
func (g *RawGlyph) At(x, y int) bool {
	if x < 0 || x >= g.BBox.W || y < 0 || y >= len(g.Rows) {
		return false
	}
	return g.Rows[y]&(0x80>>uint(x)) != 0
}

// Font is the result of scanning a BDF source: its header and its glyphs in
// source order.
type Font struct {
	Header Header
	Glyphs []RawGlyph
}

// BoundingBox returns the font bounding box, if declared, or else the union
// of all glyph boxes of the font.
func (f *Font) BoundingBox() BBox {
	if f.Header.HasBBox {
		return f.Header.BoundingBox
	}
	var box BBox
	for _, g := range f.Glyphs {
		box = box.Union(g.BBox)
	}
	return box
}

// text decodes header strings. BDF predates UTF-8 and many fonts carry
// ISO-8859-1 copyright notices and comments.
func text(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	if d, err := charmap.ISO8859_1.NewDecoder().String(s); err == nil {
		return d
	}
	return s
}
