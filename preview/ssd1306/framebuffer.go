package ssd1306

import (
	"image"
	"image/color"
	"image/draw"
)

// Display geometry of a 128×64 SSD1306 panel.
const (
	Width  = 128
	Height = 64
	Pages  = Height / 8
)

// Framebuffer mirrors the controller's display RAM. Pixels are organized in
// pages of 8 rows; every byte holds one column of a page, with the least
// significant bit as the topmost pixel.
//
// Framebuffer implements draw.Image, so it may be used as the destination of
// a font.Drawer. Colors with a luminance of at least 50% switch pixels on.
type Framebuffer struct {
	ram [Width * Pages]byte
}

var _ draw.Image = (*Framebuffer)(nil)

// NewFramebuffer returns a blank framebuffer.
func NewFramebuffer() *Framebuffer {
	return &Framebuffer{}
}

// ColorModel is part of the image.Image interface.
func (fb *Framebuffer) ColorModel() color.Model { return color.GrayModel }

// Bounds is part of the image.Image interface.
func (fb *Framebuffer) Bounds() image.Rectangle { return image.Rect(0, 0, Width, Height) }

// At is part of the image.Image interface.
func (fb *Framebuffer) At(x, y int) color.Color {
	if fb.Lit(x, y) {
		return color.Gray{Y: 0xff}
	}
	return color.Gray{}
}

// Set is part of the draw.Image interface.
func (fb *Framebuffer) Set(x, y int, c color.Color) {
	fb.SetLit(x, y, color.GrayModel.Convert(c).(color.Gray).Y >= 0x80)
}

// Lit is true if the pixel at x,y is switched on.
func (fb *Framebuffer) Lit(x, y int) bool {
	if !(image.Point{x, y}.In(fb.Bounds())) {
		return false
	}
	return fb.ram[y/8*Width+x]&(1<<uint(y%8)) != 0
}

// SetLit switches the pixel at x,y. Pixels outside the display are ignored.
func (fb *Framebuffer) SetLit(x, y int, on bool) {
	if !(image.Point{x, y}.In(fb.Bounds())) {
		return
	}
	if on {
		fb.ram[y/8*Width+x] |= 1 << uint(y%8)
	} else {
		fb.ram[y/8*Width+x] &^= 1 << uint(y%8)
	}
}

// Clear switches all pixels off.
func (fb *Framebuffer) Clear() {
	fb.Fill(0)
}

// Fill sets every byte of display RAM to pattern.
func (fb *Framebuffer) Fill(pattern byte) {
	for i := range fb.ram {
		fb.ram[i] = pattern
	}
}

// Invert toggles all pixels within r.
func (fb *Framebuffer) Invert(r image.Rectangle) {
	r = r.Intersect(fb.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			fb.SetLit(x, y, !fb.Lit(x, y))
		}
	}
}

// HLine switches on the pixels from x0 to x1 (exclusive) in row y.
func (fb *Framebuffer) HLine(x0, x1, y int) {
	for x := x0; x < x1; x++ {
		fb.SetLit(x, y, true)
	}
}

// Page returns the display RAM bytes of page p, one per column.
func (fb *Framebuffer) Page(p int) []byte {
	return fb.ram[p*Width : (p+1)*Width]
}

// Bytes returns the complete display RAM in transfer order.
func (fb *Framebuffer) Bytes() []byte {
	return fb.ram[:]
}
