package convert

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/bdfe/core"
	"github.com/npillmayer/bdfe/core/bdf"
	"github.com/npillmayer/bdfe/core/bdf/bdftest"
	"github.com/npillmayer/bdfe/core/glyph"
	"github.com/npillmayer/bdfe/engine/extract"
	"github.com/npillmayer/bdfe/engine/transform"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert8x8Default(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.convert")
	defer teardown()
	//
	src := bdftest.Fixed(8, 8, -1, 0, 255)
	res, err := Convert(strings.NewReader(src), DefaultOptions())
	require.NoError(t, err)
	table := res.Table
	assert.Equal(t, 95, table.Len())
	assert.Equal(t, int64(32), table.First)
	assert.Equal(t, int64(126), table.Last)
	assert.Equal(t, 8, table.ByteCount)
	assert.False(t, table.Rotated)
	for i, g := range table.Glyphs {
		cp := int64(32 + i)
		assert.Equal(t, cp, g.Codepoint)
		assert.Equal(t, bdftest.Pattern(cp, 8, 8), g.Bytes, "row-major bytes of glyph %d", cp)
	}
	assert.Equal(t, 7, res.Header.Ascent)
}

func TestConvertRotateFlipIsInvertible(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.convert")
	defer teardown()
	//
	src := bdftest.Fixed(8, 8, -1, 32, 126)
	plain, err := Convert(strings.NewReader(src), DefaultOptions())
	require.NoError(t, err)
	opts := DefaultOptions()
	opts.Transform = transform.Config{Rotate: true, Flip: true}
	turned, err := Convert(strings.NewReader(src), opts)
	require.NoError(t, err)
	require.Equal(t, plain.Table.Len(), turned.Table.Len())
	differ := 0
	for i, g := range turned.Table.Glyphs {
		assert.Len(t, g.Bytes, 8)
		orig := plain.Table.Glyphs[i]
		if string(orig.Bytes) != string(g.Bytes) {
			differ++
		}
		upright := transform.Decode(g, turned.Table.Descriptor)
		assert.Equal(t, orig.Bytes, upright.PackRows())
	}
	assert.Greater(t, differ, 90)
}

func TestConvertTallGlyphWithAscender(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.convert")
	defer teardown()
	//
	fbb := bdf.BBox{W: 8, H: 9, Y: -2}
	rows := []byte{0x18, 0x3C, 0x66, 0xC3, 0xFF, 0xC3, 0xC3, 0xC3, 0x81}
	src := bdftest.Build("tall", fbb, []bdftest.Glyph{{Codepoint: 65, BBox: fbb, Rows: rows}})
	opts := DefaultOptions()
	opts.Transform.Ascender = 1
	res, err := Convert(strings.NewReader(src), opts)
	require.NoError(t, err)
	require.Equal(t, 1, res.Table.Len())
	g := res.Table.Glyphs[0]
	assert.Equal(t, 16, g.Height)
	assert.Equal(t, 2, g.Pages())
	want := append(append([]byte{0}, rows...), 0, 0, 0, 0, 0, 0)
	assert.Equal(t, want, g.Bytes)
}

func TestConvertEmptySelection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.convert")
	defer teardown()
	//
	opts := DefaultOptions()
	opts.Subset = extract.NewSubset(200, 300)
	res, err := Convert(strings.NewReader(bdftest.Fixed(8, 8, -1, 32, 126)), opts)
	assert.True(t, errors.Is(err, core.ErrEmptySelection))
	require.NotNil(t, res)
	assert.Equal(t, 0, res.Table.Len())
	assert.Equal(t, 0, res.Table.Size())
}

func TestConvertMalformedHasNoResult(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.convert")
	defer teardown()
	//
	src := strings.Replace(bdftest.Fixed(8, 8, -1, 32, 126), "BBX 8 8 0 -1", "BBX 10 8 0 -1", 1)
	res, err := Convert(strings.NewReader(src), DefaultOptions())
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, core.ErrMalformedSource))
}

func TestConvertWithoutFontBoundingBox(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.convert")
	defer teardown()
	//
	src := strings.Replace(bdftest.Fixed(6, 8, -1, 65, 70), "FONTBOUNDINGBOX 6 8 0 -1\n", "", 1)
	res, err := Convert(strings.NewReader(src), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 6, res.Table.Width)
	assert.Equal(t, 8, res.Table.Height)
	assert.Equal(t, glyph.Pages(res.Table.Height), 1)
}
