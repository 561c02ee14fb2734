/*
Package preview shows a converted font on a 128×64 pixel OLED display.

The preview starts with a title page naming the font and its cell size, then
pages through all glyphs of the table, filling the display row by row. The
user advances with any key; 'q' ends the preview.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package preview

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"unicode/utf8"

	"github.com/npillmayer/bdfe/core"
	"github.com/npillmayer/bdfe/core/glyph"
	"github.com/npillmayer/bdfe/engine/face"
	"github.com/npillmayer/bdfe/preview/rterm"
	"github.com/npillmayer/bdfe/preview/ssd1306"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'bdfe.preview'.
func tracer() tracing.Trace {
	return tracing.Select("bdfe.preview")
}

// Prompt is shown whenever the preview waits for a key.
const Prompt = "Press any key to continue, 'q' to exit"

// Display receives complete frames.
type Display interface {
	Flush(fb *ssd1306.Framebuffer) error
}

// Options configure a preview run.
type Options struct {
	Title  string    // shown on the title page, usually the font file name
	Keys   io.Reader // key presses, usually a terminal in raw mode
	Prompt io.Writer // receives the prompt, may be nil
}

// Run shows table on disp. It returns nil if the user quits early.
func Run(disp Display, table *glyph.Table, opts Options) error {
	if table.Len() == 0 {
		return core.Error(core.EEMPTY, "no glyphs to show")
	}
	if table.Width < 1 || table.Height > ssd1306.Height || table.Width > ssd1306.Width {
		return core.Error(core.EINVALID, "glyphs of %dx%d pixels do not fit the display",
			table.Width, table.Height)
	}
	p := &previewer{
		disp: disp,
		fb:   ssd1306.NewFramebuffer(),
		face: face.New(table),
		opts: opts,
	}
	p.titlePage(table)
	if err := p.disp.Flush(p.fb); err != nil {
		return err
	}
	if quit, err := p.wait(); quit || err != nil {
		return err
	}
	glyphs := table.Glyphs
	for len(glyphs) > 0 {
		glyphs = p.glyphPage(glyphs)
		if err := p.disp.Flush(p.fb); err != nil {
			return err
		}
		if len(glyphs) == 0 {
			break
		}
		if quit, err := p.wait(); quit || err != nil {
			return err
		}
	}
	return nil
}

type previewer struct {
	disp Display
	fb   *ssd1306.Framebuffer
	face *face.Face
	opts Options
}

// wait prompts for a key and reports whether the user wants to quit.
func (p *previewer) wait() (bool, error) {
	if p.opts.Prompt != nil {
		// the terminal is in raw mode, so no newline translation
		fmt.Fprint(p.opts.Prompt, Prompt+"\r\n")
	}
	if p.opts.Keys == nil {
		return false, nil
	}
	k, err := rterm.ReadKey(p.opts.Keys)
	if err == io.EOF {
		return true, nil
	} else if err != nil {
		return true, core.WrapError(err, core.EINTERNAL, "cannot read key")
	}
	return k == 'q', nil
}

// titlePage shows the title in reverse video at the top and the cell size,
// over- and underlined, at the bottom of the display.
func (p *previewer) titlePage(table *glyph.Table) {
	p.fb.Clear()
	r := p.text(p.opts.Title, 0)
	p.fb.Invert(image.Rect(0, r.Min.Y, ssd1306.Width, r.Max.Y))
	banner := fmt.Sprintf("%dx%d", table.Width, table.Height)
	f := p.textFace(banner)
	top := ssd1306.Height - glyph.Pages((f.Metrics().Ascent + f.Metrics().Descent).Ceil())*8
	r = p.text(banner, top)
	p.fb.HLine(r.Min.X, r.Max.X, r.Min.Y)
	p.fb.HLine(r.Min.X, r.Max.X, r.Max.Y-1)
}

// text draws s horizontally centered with its top at y and returns the
// rectangle covered, rounded to whole pages.
func (p *previewer) text(s string, y int) image.Rectangle {
	f := p.textFace(s)
	m := f.Metrics()
	h := glyph.Pages((m.Ascent + m.Descent).Ceil()) * 8
	w := font.MeasureString(f, s).Ceil()
	x := (ssd1306.Width - w) / 2
	if x < 0 {
		x = 0
	}
	d := font.Drawer{Dst: p.fb, Src: image.White, Face: f, Dot: fixed.P(x, y+m.Ascent.Ceil())}
	d.DrawString(s)
	return image.Rect(x, y, x+w, y+h)
}

// textFace uses the converted font if it has glyphs for all of s.
func (p *previewer) textFace(s string) font.Face {
	for _, r := range s {
		if !p.face.Has(r) {
			return basicfont.Face7x13
		}
	}
	return p.face
}

// glyphPage fills the display with as many glyphs as fit and returns the
// glyphs left over.
func (p *previewer) glyphPage(glyphs []glyph.Glyph) []glyph.Glyph {
	p.fb.Clear()
	w, h := p.face.CellSize()
	pages := glyph.Pages(h)
	perRow := ssd1306.Width / w
	for line := 0; line+pages <= ssd1306.Pages; line += pages {
		for i := 0; i < perRow && len(glyphs) > 0; i++ {
			cp := glyphs[0].Codepoint
			glyphs = glyphs[1:]
			if cp > utf8.MaxRune {
				continue
			}
			dot := fixed.P(i*w, line*8+h)
			if dr, mask, mp, _, ok := p.face.Glyph(dot, rune(cp)); ok {
				draw.DrawMask(p.fb, dr, image.White, image.Point{}, mask, mp, draw.Over)
			}
		}
	}
	tracer().Debugf("glyph page drawn, %d glyphs left", len(glyphs))
	return glyphs
}
