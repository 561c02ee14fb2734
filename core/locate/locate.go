/*
Package locate finds BDF font files.

A font given on the command line is taken as a path first. If no such file
exists, it is searched for in the platform's font directories, the way
fontconfig-less systems do it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package locate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/bdfe/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bdfe.locate'.
func tracer() tracing.Trace {
	return tracing.Select("bdfe.locate")
}

// BDFDirs lists directories where distributions install BDF fonts. They are
// searched after the directories known to findfont.
var BDFDirs = []string{
	"/usr/share/fonts/X11/misc",
	"/usr/share/fonts/misc",
	"/usr/share/fonts/bdf",
	"/usr/local/share/fonts",
	"/opt/X11/share/fonts/misc",
}

// NotFound returns an application error for a missing font file.
func NotFound(name string) error {
	e := fmt.Errorf("resource missing: %v", name)
	return core.WrapError(e, core.EMISSING, "font not found: %s", name)
}

// Resolve returns the path of the BDF font name. name may be a path, or the
// file name of a font installed on the system. The extension ".bdf" may be
// left off.
func Resolve(name string) (string, error) {
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		return name, nil
	}
	base := filepath.Base(name)
	if !strings.EqualFold(filepath.Ext(base), ".bdf") {
		base += ".bdf"
	}
	if fpath, err := findfont.Find(base); err == nil && fpath != "" {
		tracer().Debugf("%s is a system font", fpath)
		return fpath, nil
	}
	for _, dir := range BDFDirs {
		fpath := filepath.Join(dir, base)
		if fi, err := os.Stat(fpath); err == nil && !fi.IsDir() {
			tracer().Debugf("found %s in %s", base, dir)
			return fpath, nil
		}
	}
	tracer().Infof("font %s not found", name)
	return "", NotFound(name)
}
