/*
Package glyph holds the in-memory model of converted glyphs.

A Bitmap is an upright pixel grid. A Glyph is the encoded form of a bitmap,
ready to be emitted as bytes for a display controller. A Table is the ordered
collection of glyphs produced by one conversion run, together with a Descriptor
telling consumers how the bytes have been laid out.

Glyph bytes come in two layouts:

   row-major      one byte per pixel row, most significant bit is the leftmost pixel
   column-major   the glyph rotated counter-clockwise, one row of the rotated grid
                  after the other, ceil(height/8) bytes per row

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package glyph
