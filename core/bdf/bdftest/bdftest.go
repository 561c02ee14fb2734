// Package bdftest generates BDF sources for tests.
package bdftest

import (
	"fmt"
	"strings"

	"github.com/npillmayer/bdfe/core/bdf"
)

// Glyph describes one glyph block to generate.
type Glyph struct {
	Codepoint int64
	BBox      bdf.BBox
	Rows      []byte
}

// Build renders a BDF source with font bounding box fbb and the given glyphs.
func Build(name string, fbb bdf.BBox, glyphs []Glyph) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "STARTFONT 2.1\n")
	fmt.Fprintf(&sb, "COMMENT generated for testing\n")
	fmt.Fprintf(&sb, "FONT %s\n", name)
	fmt.Fprintf(&sb, "SIZE %d 75 75\n", fbb.H)
	fmt.Fprintf(&sb, "FONTBOUNDINGBOX %d %d %d %d\n", fbb.W, fbb.H, fbb.X, fbb.Y)
	fmt.Fprintf(&sb, "STARTPROPERTIES 3\n")
	fmt.Fprintf(&sb, "FONT_ASCENT %d\n", fbb.H+fbb.Y)
	fmt.Fprintf(&sb, "FONT_DESCENT %d\n", -fbb.Y)
	fmt.Fprintf(&sb, "COPYRIGHT \"Public domain\"\n")
	fmt.Fprintf(&sb, "ENDPROPERTIES\n")
	fmt.Fprintf(&sb, "CHARS %d\n", len(glyphs))
	for _, g := range glyphs {
		fmt.Fprintf(&sb, "STARTCHAR U+%04X\n", g.Codepoint)
		fmt.Fprintf(&sb, "ENCODING %d\n", g.Codepoint)
		fmt.Fprintf(&sb, "SWIDTH 500 0\n")
		fmt.Fprintf(&sb, "DWIDTH %d 0\n", fbb.W)
		fmt.Fprintf(&sb, "BBX %d %d %d %d\n", g.BBox.W, g.BBox.H, g.BBox.X, g.BBox.Y)
		fmt.Fprintf(&sb, "BITMAP\n")
		for _, r := range g.Rows {
			fmt.Fprintf(&sb, "%02X\n", r)
		}
		fmt.Fprintf(&sb, "ENDCHAR\n")
	}
	fmt.Fprintf(&sb, "ENDFONT\n")
	return sb.String()
}

// Pattern returns h deterministic bitmap rows for codepoint cp, masked to
// width w. For w = 8, codepoints below 256 differ in their first row.
func Pattern(cp int64, w, h int) []byte {
	rows := make([]byte, h)
	mask := byte(0xFF << uint(8-w))
	for i := range rows {
		rows[i] = byte(cp*37+int64(i)*101+int64(i*i)) & mask
	}
	return rows
}

// Fixed generates a fixed cell font of w×h pixels (baseline offset y) with a
// glyph for every codepoint from first to last, each filling the whole cell.
func Fixed(w, h, y int, first, last int64) string {
	fbb := bdf.BBox{W: w, H: h, X: 0, Y: y}
	glyphs := make([]Glyph, 0, last-first+1)
	for cp := first; cp <= last; cp++ {
		glyphs = append(glyphs, Glyph{Codepoint: cp, BBox: fbb, Rows: Pattern(cp, w, h)})
	}
	return Build(fmt.Sprintf("-Test-Fixed-Medium-R-Normal--%d-%d-75-75-C-%d-ISO10646-1", h, h*10, w*10), fbb, glyphs)
}
