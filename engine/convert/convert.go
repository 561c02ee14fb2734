/*
Package convert runs the conversion pipeline for one BDF source:
scanning, subset selection and glyph transformation.

The pipeline has no partial success: if the source is malformed, no table is
returned at all.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package convert

import (
	"errors"
	"io"

	"github.com/npillmayer/bdfe/core"
	"github.com/npillmayer/bdfe/core/bdf"
	"github.com/npillmayer/bdfe/core/glyph"
	"github.com/npillmayer/bdfe/engine/extract"
	"github.com/npillmayer/bdfe/engine/transform"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bdfe.convert'.
func tracer() tracing.Trace {
	return tracing.Select("bdfe.convert")
}

// Options configure a conversion run.
type Options struct {
	Subset    extract.Subset
	Transform transform.Config
}

// DefaultOptions selects printable ASCII and no transformations besides height
// normalization.
func DefaultOptions() Options {
	return Options{Subset: extract.DefaultSubset}
}

// Result is the outcome of a conversion run. Neither header nor table are
// modified after Convert returns.
type Result struct {
	Header *bdf.Header
	Table  *glyph.Table
}

// Convert reads a BDF source from r and converts the glyphs selected by opts.
//
// A malformed source yields an error matching core.ErrMalformedSource and a
// nil result. If the subset selects no glyphs, Convert returns a result with
// an empty table together with an error matching core.ErrEmptySelection.
func Convert(r io.Reader, opts Options) (*Result, error) {
	font, err := bdf.Scan(r)
	if err != nil {
		return nil, err
	}
	cell := font.BoundingBox()
	if cell.W > bdf.MaxWidth {
		return nil, core.Error(core.EMALFORMED, "glyph cell is %d pixels wide, at most %d supported",
			cell.W, bdf.MaxWidth)
	}
	tracer().Debugf("font %q, cell %s", font.Header.Name, cell)
	tr := transform.New(opts.Transform, cell)
	raws, err := extract.Select(font, opts.Subset)
	if err != nil {
		if errors.Is(err, core.ErrEmptySelection) {
			tracer().Infof("%s", core.UserMessage(err))
			return &Result{Header: &font.Header, Table: tr.Table(raws)}, err
		}
		return nil, err
	}
	return &Result{Header: &font.Header, Table: tr.Table(raws)}, nil
}
