package face

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"unicode/utf8"

	"github.com/npillmayer/bdfe/core"
	"github.com/npillmayer/bdfe/core/glyph"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Sheet renders all glyphs of table into a grid of cols columns, lit pixels
// white on black, with one pixel of spacing between cells. The image is
// enlarged by scale using nearest neighbour sampling, so pixels stay sharp.
func Sheet(table *glyph.Table, cols, scale int) *image.Gray {
	if cols < 1 {
		cols = 16
	}
	if scale < 1 {
		scale = 1
	}
	f := New(table)
	cw, ch := f.width+1, f.height+1
	rows := (table.Len() + cols - 1) / cols
	img := image.NewGray(image.Rect(0, 0, cols*cw+1, rows*ch+1))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)
	d := font.Drawer{Dst: img, Src: image.White, Face: f}
	for i, g := range table.Glyphs {
		if g.Codepoint > utf8.MaxRune || !f.Has(rune(g.Codepoint)) {
			continue
		}
		col, row := i%cols, i/cols
		d.Dot = fixed.P(1+col*cw, 1+row*ch+f.height)
		d.DrawString(string(rune(g.Codepoint)))
	}
	tracer().Debugf("sheet of %d glyphs, %d×%d cells", table.Len(), cols, rows)
	if scale == 1 {
		return img
	}
	b := img.Bounds()
	big := image.NewGray(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(big, big.Bounds(), img, b, draw.Src, nil)
	return big
}

// WritePNG encodes img as PNG to w.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return core.WrapError(err, core.EINVALID, "cannot encode glyph sheet")
	}
	return nil
}

// Lit is true if the pixel of img at x,y is switched on.
func Lit(img image.Image, x, y int) bool {
	return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y > 0x7f
}
