/*
Package transform re-encodes scanned glyph bitmaps for a display controller.

Every glyph is first placed into the font's character cell, using the bounding
box offsets declared in the BDF source. The cell is then transformed in a fixed
order:

   1. ascender   prepend blank pixel rows on top of the cell
   2. normalize  round the height up to a multiple of 8 pixels (unless native)
   3. rotate     turn the cell 90° counter-clockwise
   4. encode     pack the pixel rows into bytes, MSB first
   5. flip       reverse the bit order of every byte
   6. droplast   remove the last byte

Ascender padding is applied in the upright frame, i.e., before rotation, so
the blank rows always end up above the glyph as it is seen on screen.

Rotation and flip only move bits around. Decode undoes all steps for a glyph
of a converted table.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package transform

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bdfe.transform'.
func tracer() tracing.Trace {
	return tracing.Select("bdfe.transform")
}
