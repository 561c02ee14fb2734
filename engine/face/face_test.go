package face

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/npillmayer/bdfe/core/bdf/bdftest"
	"github.com/npillmayer/bdfe/core/glyph"
	"github.com/npillmayer/bdfe/engine/convert"
	"github.com/npillmayer/bdfe/engine/transform"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

func convertFixed(t *testing.T, conf transform.Config) *convert.Result {
	opts := convert.DefaultOptions()
	opts.Transform = conf
	res, err := convert.Convert(strings.NewReader(bdftest.Fixed(6, 10, -2, 32, 126)), opts)
	require.NoError(t, err)
	return res
}

func TestFaceMatchesDecodedGlyphs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.face")
	defer teardown()
	//
	for _, conf := range []transform.Config{
		{}, {Rotate: true, Flip: true}, {Rotate: true, Flip: true, DropLast: true, Ascender: 2},
	} {
		res := convertFixed(t, conf)
		f := New(res.Table)
		w, h := f.CellSize()
		assert.Equal(t, 6, w)
		assert.Equal(t, 16, h)
		for _, g := range res.Table.Glyphs {
			dr, mask, maskp, adv, ok := f.Glyph(fixed.P(10, 20), rune(g.Codepoint))
			require.True(t, ok)
			assert.Equal(t, image.Rect(10, 4, 16, 20), dr)
			assert.Equal(t, fixed.I(6), adv)
			bm := transform.Decode(g, res.Table.Descriptor)
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					_, _, _, a := mask.At(maskp.X+x, maskp.Y+y).RGBA()
					assert.Equal(t, bm.At(x, y), a > 0, "glyph %d at %d,%d", g.Codepoint, x, y)
				}
			}
		}
	}
}

func TestFaceMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.face")
	defer teardown()
	//
	f := New(convertFixed(t, transform.Config{Native: true}).Table)
	m := f.Metrics()
	assert.Equal(t, fixed.I(10), m.Height)
	assert.Equal(t, fixed.I(10), m.Ascent)
	assert.Equal(t, fixed.Int26_6(0), m.Descent)
	_, ok := f.GlyphAdvance('A')
	assert.True(t, ok)
	_, _, ok = f.GlyphBounds('é')
	assert.False(t, ok)
	_, _, _, _, ok = f.Glyph(fixed.P(0, 0), 'é')
	assert.False(t, ok)
	assert.Equal(t, fixed.I(6*5), font.MeasureString(f, "Hello"))
	assert.NoError(t, f.Close())
}

func TestSheet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.face")
	defer teardown()
	//
	res := convertFixed(t, transform.Config{Rotate: true, Flip: true})
	img := Sheet(res.Table, 16, 1)
	// 95 glyphs in 16 columns need 6 rows of 7×17 pixel cells
	assert.Equal(t, image.Rect(0, 0, 16*7+1, 6*17+1), img.Bounds())
	a, _ := res.Table.Lookup('A')
	bm := transform.Decode(a, res.Table.Descriptor)
	ox, oy := 1+(65-32)%16*7, 1+(65-32)/16*17
	for y := 0; y < bm.Height(); y++ {
		for x := 0; x < bm.Width(); x++ {
			assert.Equal(t, bm.At(x, y), Lit(img, ox+x, oy+y), "pixel %d,%d", x, y)
		}
	}
	big := Sheet(res.Table, 16, 3)
	assert.Equal(t, img.Bounds().Dx()*3, big.Bounds().Dx())
	for y := 0; y < bm.Height(); y++ {
		for x := 0; x < bm.Width(); x++ {
			assert.Equal(t, bm.At(x, y), Lit(big, 3*(ox+x)+1, 3*(oy+y)+2))
		}
	}
}

func TestSheetSkipsCodepointsBeyondUnicode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.face")
	defer teardown()
	//
	full := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	tab := glyph.NewTable(glyph.Descriptor{Width: 8, Height: 8}, []glyph.Glyph{
		{Codepoint: 'A', Width: 8, Height: 8, Bytes: full},
		{Codepoint: 0x100000041, Width: 8, Height: 8, Bytes: make([]byte, 8)},
	})
	img := Sheet(tab, 2, 1)
	lit := func(ox int) (n int) {
		for y := 1; y < 9; y++ {
			for x := ox; x < ox+8; x++ {
				if Lit(img, x, y) {
					n++
				}
			}
		}
		return
	}
	assert.Equal(t, 64, lit(1))
	assert.Equal(t, 0, lit(10), "0x100000041 must not be drawn as 'A'")
}

func TestWritePNG(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.face")
	defer teardown()
	//
	res := convertFixed(t, transform.Config{})
	img := Sheet(res.Table, 10, 2)
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, img))
	back, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), back.Bounds())
	assert.Equal(t, Lit(img, 5, 5), Lit(back, 5, 5))
}
