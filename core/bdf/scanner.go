package bdf

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/bdfe/core"
)

// Scan reads a complete BDF source from r.
//
// Scan fails with an error matching core.ErrMalformedSource if the source is
// not a BDF font, if a glyph has no BITMAP section, if a bitmap row is not
// hexadecimal or rows are missing, or if a glyph (or the font bounding box)
// is wider than MaxWidth pixels. No partial result is returned in this case.
//
// Glyphs with an ENCODING of -1 and no alternative encoding are skipped.
func Scan(r io.Reader) (*Font, error) {
	s := &scanner{
		lines: bufio.NewScanner(r),
		font:  &Font{Header: Header{Properties: make(map[string]string)}},
	}
	for !s.done && s.lines.Scan() {
		s.line++
		if err := s.scanLine(s.lines.Text()); err != nil {
			tracer().Errorf(err.Error())
			return nil, err
		}
	}
	if err := s.lines.Err(); err != nil {
		return nil, core.WrapError(err, core.EMALFORMED, "cannot read BDF source after line %d", s.line)
	}
	if !s.started {
		return nil, core.Error(core.EMALFORMED, "not a BDF font: STARTFONT missing")
	}
	if s.glyph != nil {
		return nil, s.malformed("source ends inside glyph %q", s.glyph.Name)
	}
	if s.font.Header.Chars != s.declared {
		tracer().Infof("font declares %d glyphs, contains %d", s.font.Header.Chars, s.declared)
	}
	tracer().Debugf("scanned %d lines, %d encoded glyphs", s.line, len(s.font.Glyphs))
	return s.font, nil
}

type keywordFunc func(s *scanner, args string) error

// scanner holds the state while reading one BDF source.
type scanner struct {
	lines    *bufio.Scanner
	line     int       // current line number
	font     *Font     // result
	glyph    *RawGlyph // glyph currently read, nil outside STARTCHAR/ENDCHAR
	hasBBX   bool      // current glyph declared BBX
	started  bool      // STARTFONT seen
	inProps  bool      // between STARTPROPERTIES and ENDPROPERTIES
	inBitmap bool      // between BITMAP and ENDCHAR
	done     bool      // ENDFONT seen
	declared int       // number of STARTCHAR blocks
}

func (s *scanner) scanLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if s.inBitmap {
		switch keyword, _ := split(line); keyword {
		case "ENDCHAR":
			return s.endChar()
		case "STARTCHAR", "ENDFONT":
			return s.malformed("glyph %q not terminated by ENDCHAR", s.glyph.Name)
		}
		return s.bitmapRow(line)
	}
	keyword, args := split(line)
	if !s.started {
		if keyword != "STARTFONT" {
			return s.malformed("not a BDF font: expected STARTFONT, found %q", keyword)
		}
		s.started = true
		s.font.Header.Version = args
		return nil
	}
	if s.inProps {
		if keyword == "ENDPROPERTIES" {
			s.inProps = false
			return nil
		}
		return s.property(keyword, args)
	}
	keywords := fontKeywords
	if s.glyph != nil {
		keywords = glyphKeywords
	}
	if f, ok := keywords[keyword]; ok {
		return f(s, args)
	}
	tracer().Debugf("line %d: skipping %s", s.line, keyword)
	return nil
}

var fontKeywords = map[string]keywordFunc{
	"COMMENT": func(s *scanner, args string) error {
		s.font.Header.Comments = append(s.font.Header.Comments, text(args))
		return nil
	},
	"FONT": func(s *scanner, args string) error {
		s.font.Header.Name = text(args)
		return nil
	},
	"SIZE": func(s *scanner, args string) error {
		v, err := s.ints("SIZE", args, 3)
		if err != nil {
			return err
		}
		h := &s.font.Header
		h.PointSize, h.ResolutionX, h.ResolutionY = v[0], v[1], v[2]
		return nil
	},
	"FONTBOUNDINGBOX": func(s *scanner, args string) error {
		box, err := s.bbox("FONTBOUNDINGBOX", args)
		if err != nil {
			return err
		}
		if box.W > MaxWidth {
			return s.malformed("font bounding box is %d pixels wide, at most %d supported", box.W, MaxWidth)
		}
		s.font.Header.BoundingBox, s.font.Header.HasBBox = box, true
		return nil
	},
	"STARTPROPERTIES": func(s *scanner, args string) error {
		s.inProps = true
		return nil
	},
	"CHARS": func(s *scanner, args string) error {
		v, err := s.ints("CHARS", args, 1)
		if err != nil {
			return err
		}
		s.font.Header.Chars = v[0]
		return nil
	},
	"STARTCHAR": func(s *scanner, args string) error {
		s.declared++
		s.glyph = &RawGlyph{Name: text(args), Codepoint: -1, Line: s.line}
		s.hasBBX = false
		return nil
	},
	"ENDFONT": func(s *scanner, args string) error {
		s.done = true
		return nil
	},
}

var glyphKeywords = map[string]keywordFunc{
	"ENCODING": func(s *scanner, args string) error {
		v, err := s.ints("ENCODING", args, 1)
		if err != nil {
			return err
		}
		switch {
		case v[0] >= 0:
			s.glyph.Codepoint = int64(v[0])
		case len(strings.Fields(args)) > 1:
			alt, err := s.ints("ENCODING", args, 2)
			if err != nil {
				return err
			}
			s.glyph.Codepoint = int64(alt[1])
		}
		return nil
	},
	"DWIDTH": func(s *scanner, args string) error {
		v, err := s.ints("DWIDTH", args, 1)
		if err != nil {
			return err
		}
		s.glyph.DWidth = v[0]
		return nil
	},
	"BBX": func(s *scanner, args string) error {
		box, err := s.bbox("BBX", args)
		if err != nil {
			return err
		}
		if box.W > MaxWidth {
			return s.malformed("glyph %q is %d pixels wide, at most %d supported",
				s.glyph.Name, box.W, MaxWidth)
		}
		s.glyph.BBox, s.hasBBX = box, true
		return nil
	},
	"BITMAP": func(s *scanner, args string) error {
		if !s.hasBBX {
			if !s.font.Header.HasBBox {
				return s.malformed("glyph %q has neither BBX nor a font bounding box", s.glyph.Name)
			}
			tracer().Debugf("line %d: glyph %q without BBX, using font bounding box", s.line, s.glyph.Name)
			s.glyph.BBox = s.font.Header.BoundingBox
		}
		s.glyph.Rows = make([]byte, 0, s.glyph.BBox.H)
		s.inBitmap = true
		return nil
	},
	"ENDCHAR": func(s *scanner, args string) error {
		return s.malformed("glyph %q has no BITMAP section", s.glyph.Name)
	},
	"STARTCHAR": func(s *scanner, args string) error {
		return s.malformed("glyph %q not terminated by ENDCHAR", s.glyph.Name)
	},
	"ENDFONT": func(s *scanner, args string) error {
		return s.malformed("glyph %q not terminated by ENDCHAR", s.glyph.Name)
	},
}

// property stores a property line. String values are unquoted, doubled quotes
// inside them are reduced to one.
func (s *scanner) property(key, value string) error {
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		value = strings.ReplaceAll(value[1:len(value)-1], `""`, `"`)
	}
	value = text(value)
	s.font.Header.Properties[key] = value
	var err error
	switch key {
	case "FONT_ASCENT":
		s.font.Header.Ascent, err = strconv.Atoi(value)
	case "FONT_DESCENT":
		s.font.Header.Descent, err = strconv.Atoi(value)
	}
	if err != nil {
		return s.malformed("property %s is not an integer: %q", key, value)
	}
	return nil
}

// bitmapRow decodes one scan line of the current glyph. Rows are padded to
// whole bytes; as glyphs are at most 8 pixels wide, only the first byte
// carries pixels. Bits right of the glyph width are cleared.
func (s *scanner) bitmapRow(row string) error {
	g := s.glyph
	for _, c := range row {
		if !isHexDigit(c) {
			return s.malformed("glyph %q: bitmap row %q is not hexadecimal", g.Name, row)
		}
	}
	if len(g.Rows) >= g.BBox.H {
		return s.malformed("glyph %q: more than %d bitmap rows", g.Name, g.BBox.H)
	}
	if len(row) == 1 {
		row += "0"
	}
	v, _ := strconv.ParseUint(row[:2], 16, 8)
	mask := byte(0xFF << uint(MaxWidth-g.BBox.W))
	if g.BBox.W <= 0 {
		mask = 0
	}
	g.Rows = append(g.Rows, byte(v)&mask)
	return nil
}

func (s *scanner) endChar() error {
	g := s.glyph
	if len(g.Rows) < g.BBox.H {
		return s.malformed("glyph %q: %d bitmap rows, BBX declares %d", g.Name, len(g.Rows), g.BBox.H)
	}
	if g.Codepoint < 0 {
		tracer().Infof("line %d: skipping unencoded glyph %q", g.Line, g.Name)
	} else {
		s.font.Glyphs = append(s.font.Glyphs, *g)
	}
	s.glyph, s.inBitmap = nil, false
	return nil
}

func (s *scanner) bbox(keyword, args string) (BBox, error) {
	v, err := s.ints(keyword, args, 4)
	if err != nil {
		return BBox{}, err
	}
	if v[0] < 0 || v[1] < 0 {
		return BBox{}, s.malformed("%s with negative size: %s", keyword, args)
	}
	return BBox{W: v[0], H: v[1], X: v[2], Y: v[3]}, nil
}

// ints parses the first n whitespace separated integers of args.
func (s *scanner) ints(keyword, args string, n int) ([]int, error) {
	fields := strings.Fields(args)
	if len(fields) < n {
		return nil, s.malformed("%s needs %d arguments, has %d", keyword, n, len(fields))
	}
	v := make([]int, n)
	for i := 0; i < n; i++ {
		x, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, s.malformed("%s: %q is not an integer", keyword, fields[i])
		}
		v[i] = x
	}
	return v, nil
}

func (s *scanner) malformed(format string, v ...interface{}) error {
	return core.Error(core.EMALFORMED, "line %d: "+format, append([]interface{}{s.line}, v...)...)
}

// split separates the keyword of a line from its arguments.
func split(line string) (keyword, args string) {
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i], strings.TrimSpace(line[i+1:])
	}
	return line, ""
}

func isHexDigit(c rune) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
