/*
Package bdf scans fonts in the Glyph Bitmap Distribution Format (BDF).

BDF is a line oriented text format. A font starts with a header of keyword
lines (FONT, SIZE, FONTBOUNDINGBOX, a block of properties), followed by one
block per glyph:

   STARTCHAR A
   ENCODING 65
   DWIDTH 8 0
   BBX 8 8 0 -1
   BITMAP
   18
   24
   ...
   ENDCHAR

Scan turns such a stream into a Header and an ordered list of RawGlyphs. It
checks syntax only: keywords it does not know are skipped. Only glyphs which are
at most 8 pixels wide are supported, as each bitmap row is kept in a single byte.

See https://adobe-type-tools.github.io/font-tech-notes/pdfs/5005.BDF_Spec.pdf

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package bdf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bdfe.bdf'.
func tracer() tracing.Trace {
	return tracing.Select("bdfe.bdf")
}
