package ssd1306

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/npillmayer/bdfe/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder keeps every transaction written to the bus.
type recorder struct {
	msgs [][]byte
	fail bool
}

func (r *recorder) Write(p []byte) (int, error) {
	if r.fail {
		return 0, errors.New("bus error")
	}
	r.msgs = append(r.msgs, append([]byte{}, p...))
	return len(p), nil
}

func TestFramebufferPageLayout(t *testing.T) {
	fb := NewFramebuffer()
	fb.SetLit(0, 0, true)
	fb.SetLit(5, 7, true)
	fb.SetLit(127, 63, true)
	fb.SetLit(128, 0, true) // clipped
	assert.Equal(t, byte(0x01), fb.Page(0)[0])
	assert.Equal(t, byte(0x80), fb.Page(0)[5])
	assert.Equal(t, byte(0x80), fb.Page(7)[127])
	assert.Equal(t, byte(0x80), fb.Bytes()[7*Width+127])
	assert.False(t, fb.Lit(-1, 0))
	fb.Set(10, 9, color.White)
	assert.Equal(t, byte(0x02), fb.Page(1)[10])
	assert.Equal(t, color.Gray{Y: 0xff}, fb.At(10, 9))
	fb.Set(10, 9, color.Gray{Y: 0x10})
	assert.False(t, fb.Lit(10, 9))
}

func TestFramebufferInvertAndLines(t *testing.T) {
	fb := NewFramebuffer()
	fb.HLine(0, 4, 3)
	fb.Invert(image.Rect(2, 0, 6, 8))
	assert.Equal(t, []byte{0x08, 0x08, 0xF7, 0xF7, 0xFF, 0xFF, 0x00}, fb.Page(0)[:7])
	fb.Fill(0xFF)
	assert.True(t, fb.Lit(100, 50))
	fb.Clear()
	assert.Equal(t, make([]byte, Width*Pages), fb.Bytes())
}

func TestInitSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.preview")
	defer teardown()
	//
	bus := &recorder{}
	_, err := New(bus, Normal)
	require.NoError(t, err)
	require.Len(t, bus.msgs, 16)
	assert.Equal(t, []byte{0x00, 0xAE}, bus.msgs[0])
	assert.Equal(t, []byte{0x00, 0x8D, 0x14}, bus.msgs[5])
	assert.Equal(t, []byte{0x00, 0xA1}, bus.msgs[7])
	assert.Equal(t, []byte{0x00, 0xC8}, bus.msgs[8])
	assert.Equal(t, []byte{0x00, 0xAF}, bus.msgs[15])
	//
	bus = &recorder{}
	_, err = New(bus, UpsideDown)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xA0}, bus.msgs[7])
	assert.Equal(t, []byte{0x00, 0xC0}, bus.msgs[8])
}

func TestFlush(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.preview")
	defer teardown()
	//
	bus := &recorder{}
	c := &Controller{bus: bus}
	fb := NewFramebuffer()
	fb.SetLit(1, 8, true)
	require.NoError(t, c.Flush(fb))
	require.Len(t, bus.msgs, 2+Width*Pages/ChunkSize)
	assert.Equal(t, []byte{0x00, 0x21, 0x00, 0x7F}, bus.msgs[0])
	assert.Equal(t, []byte{0x00, 0x22, 0x00, 0x07}, bus.msgs[1])
	var data bytes.Buffer
	for _, m := range bus.msgs[2:] {
		assert.Equal(t, ControlData, m[0])
		assert.LessOrEqual(t, len(m)-1, ChunkSize)
		data.Write(m[1:])
	}
	assert.Equal(t, fb.Bytes(), data.Bytes())
	assert.Equal(t, byte(0x01), data.Bytes()[Width+1])
}

func TestBusFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.preview")
	defer teardown()
	//
	_, err := New(&recorder{fail: true}, Normal)
	assert.True(t, errors.Is(err, core.ErrTransportUnavailable))
}
