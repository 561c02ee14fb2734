/*
Package extract selects the glyphs of a scanned font which are to be converted.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/bdfe/core"
	"github.com/npillmayer/bdfe/core/bdf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bdfe.extract'.
func tracer() tracing.Trace {
	return tracing.Select("bdfe.extract")
}

// Subset is an inclusive range of codepoints.
type Subset struct {
	Min, Max int64
}

// DefaultSubset selects the printable ASCII characters.
var DefaultSubset = Subset{Min: 32, Max: 126}

// All selects every codepoint a BDF font may declare.
var All = Subset{Min: 0, Max: 0xFFFFFFFF}

// NewSubset creates a subset from a to b. Bounds given in reverse order are
// swapped.
func NewSubset(a, b int64) Subset {
	if b < a {
		a, b = b, a
	}
	return Subset{Min: a, Max: b}
}

// ParseSubset reads a subset given as "min-max" or as a single codepoint.
// Bounds are decimal.
func ParseSubset(s string) (Subset, error) {
	lo, hi, found := strings.Cut(strings.TrimSpace(s), "-")
	a, err := strconv.ParseInt(lo, 10, 64)
	if err != nil || a < 0 {
		return Subset{}, core.Error(core.EINVALID, "invalid subset %q", s)
	}
	b := a
	if found {
		if b, err = strconv.ParseInt(hi, 10, 64); err != nil || b < 0 {
			return Subset{}, core.Error(core.EINVALID, "invalid subset %q", s)
		}
	}
	return NewSubset(a, b), nil
}

// Contains reports whether cp is part of the subset.
func (s Subset) Contains(cp int64) bool {
	return s.Min <= cp && cp <= s.Max
}

func (s Subset) String() string {
	return fmt.Sprintf("%d-%d", s.Min, s.Max)
}

// Select returns the glyphs of font with a codepoint in subset, ordered by
// ascending codepoint. If a codepoint is declared more than once, the last
// declaration wins.
//
// If no glyph is selected, Select returns an empty (non-nil) slice together
// with an error matching core.ErrEmptySelection. Callers decide whether this
// is fatal.
func Select(font *bdf.Font, subset Subset) ([]bdf.RawGlyph, error) {
	selected := treemap.NewWith(int64Comparator)
	for i := range font.Glyphs {
		g := &font.Glyphs[i]
		if !subset.Contains(g.Codepoint) {
			continue
		}
		if prev, found := selected.Get(g.Codepoint); found {
			tracer().Infof("glyph %d declared twice (line %d and line %d), using the latter",
				g.Codepoint, prev.(*bdf.RawGlyph).Line, g.Line)
		}
		selected.Put(g.Codepoint, g)
	}
	glyphs := make([]bdf.RawGlyph, 0, selected.Size())
	it := selected.Iterator()
	for it.Next() {
		glyphs = append(glyphs, *it.Value().(*bdf.RawGlyph))
	}
	tracer().Debugf("subset %s selects %d of %d glyphs", subset, len(glyphs), len(font.Glyphs))
	if len(glyphs) == 0 {
		return glyphs, core.Error(core.EEMPTY, "subset %s matches no glyphs", subset)
	}
	return glyphs, nil
}

func int64Comparator(a, b interface{}) int {
	x, y := a.(int64), b.(int64)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}
