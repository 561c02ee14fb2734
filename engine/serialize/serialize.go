/*
Package serialize writes converted glyph tables as C style byte arrays.

The output consists of hexadecimal byte literals, grouped by glyph, ready to
be pasted into a static array initializer. It may be preceded by a comment
block describing the font. Output depends only on the table, the font header
and the options.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package serialize

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/npillmayer/bdfe/core/bdf"
	"github.com/npillmayer/bdfe/core/glyph"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/unicode/runenames"
)

// tracer traces with key 'bdfe.serialize'.
func tracer() tracing.Trace {
	return tracing.Select("bdfe.serialize")
}

// Options select the output format. All flags may be combined.
type Options struct {
	Header  bool   // start with a comment block describing the font
	Verbose bool   // describe the converted glyphs in the header and name every glyph
	Line    bool   // one line per glyph instead of one line per byte
	Source  string // name of the BDF source, shown in the header
}

// Write emits table to w. Header fields are taken from hdr, which may be nil
// if no header is requested.
func Write(w io.Writer, hdr *bdf.Header, table *glyph.Table, opts Options) error {
	bw := bufio.NewWriter(w)
	if opts.Header {
		if hdr != nil {
			writeHeader(bw, hdr, opts)
		}
		// verbose information is part of the header
		if opts.Verbose {
			writeDescriptor(bw, table)
		}
		bw.WriteString("\n")
	}
	for _, g := range table.Glyphs {
		if opts.Line {
			writeLine(bw, g, opts)
		} else {
			writeColumn(bw, g, opts)
		}
	}
	if err := bw.Flush(); err != nil {
		tracer().Errorf("writing glyph table: %v", err)
		return err
	}
	tracer().Debugf("wrote %d glyphs", table.Len())
	return nil
}

func writeHeader(bw *bufio.Writer, hdr *bdf.Header, opts Options) {
	field := func(key, format string, v ...interface{}) {
		fmt.Fprintf(bw, "// %-10s %s\n", key+":", fmt.Sprintf(format, v...))
	}
	field("Font", "%s", hdr.Name)
	if opts.Source != "" {
		field("Source", "%s", opts.Source)
	}
	field("Size", "%dpt at %dx%d dpi", hdr.PointSize, hdr.ResolutionX, hdr.ResolutionY)
	if hdr.HasBBox {
		field("Bounds", "%s", hdr.BoundingBox)
	}
	field("Ascent", "%d", hdr.Ascent)
	field("Descent", "%d", hdr.Descent)
	if c, ok := hdr.Property("COPYRIGHT"); ok {
		field("Copyright", "%s", c)
	}
}

func writeDescriptor(bw *bufio.Writer, table *glyph.Table) {
	var layout []string
	if table.Rotated {
		layout = append(layout, "rotated")
	} else {
		layout = append(layout, "row-major")
	}
	if table.Flipped {
		layout = append(layout, "flipped")
	}
	if table.DropLast {
		layout = append(layout, "last byte dropped")
	}
	fmt.Fprintf(bw, "// %-10s %d\n", "Width:", table.Width)
	fmt.Fprintf(bw, "// %-10s %d (%d pages)\n", "Height:", table.Height, glyph.Pages(table.Height))
	fmt.Fprintf(bw, "// %-10s %d bytes per glyph, %s\n", "Encoding:", table.ByteCount, strings.Join(layout, ", "))
	if table.Count > 0 {
		fmt.Fprintf(bw, "// %-10s %d (%d-%d)\n", "Glyphs:", table.Count, table.First, table.Last)
	} else {
		fmt.Fprintf(bw, "// %-10s 0\n", "Glyphs:")
	}
}

// writeColumn emits a comment line naming the glyph, then one byte per line.
// In verbose mode every byte is followed by its bit pattern.
func writeColumn(bw *bufio.Writer, g glyph.Glyph, opts Options) {
	fmt.Fprintf(bw, "\t// %s\n", label(g.Codepoint, opts.Verbose))
	for _, b := range g.Bytes {
		if opts.Verbose {
			fmt.Fprintf(bw, "\t0x%02X, // %s\n", b, pattern(b))
		} else {
			fmt.Fprintf(bw, "\t0x%02X,\n", b)
		}
	}
}

// writeLine emits all bytes of a glyph on a single line.
func writeLine(bw *bufio.Writer, g glyph.Glyph, opts Options) {
	bw.WriteString("\t")
	for _, b := range g.Bytes {
		fmt.Fprintf(bw, "0x%02X,", b)
	}
	fmt.Fprintf(bw, " // %s\n", label(g.Codepoint, opts.Verbose))
}

func label(cp int64, verbose bool) string {
	s := fmt.Sprintf("%d", cp)
	if cp > unicode.MaxRune {
		return s
	}
	r := rune(cp)
	if unicode.IsPrint(r) && r != ' ' {
		s += fmt.Sprintf(" '%c'", r)
	}
	if verbose {
		if name := runenames.Name(r); name != "" {
			s += " " + name
		} else {
			s += fmt.Sprintf(" U+%04X", cp)
		}
	}
	return s
}

func pattern(b byte) string {
	var sb strings.Builder
	for m := byte(0x80); m != 0; m >>= 1 {
		if b&m != 0 {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
