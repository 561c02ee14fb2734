/*
Command bdfe converts BDF bitmap fonts into C byte arrays for firmware.

	bdfe [options] <bdf file>

Glyphs are written to standard output, one hexadecimal byte literal per
line, ready to be included into a static array initializer. Options select
the glyphs to convert and adapt the byte layout to a display controller's
memory organization. Call bdfe with option 'help' for a list.

Optionally the converted font is shown on an SSD1306 OLED display attached
to I²C bus 1, or written to a PNG image.

Environment variables (also read from a file '.env'):

	BDFE_TRACE       trace level [Debug|Info|Error]
	BDFE_I2C_DEVICE  device node of the display's I²C bus

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/npillmayer/bdfe/core"
	"github.com/npillmayer/bdfe/core/glyph"
	"github.com/npillmayer/bdfe/core/locate"
	"github.com/npillmayer/bdfe/core/option"
	"github.com/npillmayer/bdfe/engine/convert"
	"github.com/npillmayer/bdfe/engine/face"
	"github.com/npillmayer/bdfe/engine/serialize"
	"github.com/npillmayer/bdfe/preview"
	"github.com/npillmayer/bdfe/preview/i2c"
	"github.com/npillmayer/bdfe/preview/rterm"
	"github.com/npillmayer/bdfe/preview/ssd1306"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'bdfe.cli'
func tracer() tracing.Trace {
	return tracing.Select("bdfe.cli")
}

// traceKeys are all trace keys of this module.
var traceKeys = []string{
	"bdfe.cli", "bdfe.core", "bdfe.bdf", "bdfe.extract", "bdfe.transform", "bdfe.convert",
	"bdfe.serialize", "bdfe.face", "bdfe.preview", "bdfe.locate",
}

// Glyph sheets have 16 glyphs per row, every pixel enlarged to 4×4.
const (
	sheetColumns = 16
	sheetScale   = 4
)

func main() {
	// a missing .env file is fine
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes a command line and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	d := newDiagnostics(stderr)
	if len(args) == 0 {
		usage(stdout)
		return -1
	}
	if k, _ := resolve(args[len(args)-1]); k != nil && k.long == "help" {
		usage(stdout)
		return 0
	}
	conf := newConfig()
	file := args[len(args)-1]
	err := conf.parse(args[:len(args)-1])
	for _, w := range conf.warnings {
		d.warning.Println(w)
	}
	if err != nil {
		d.failure.Println(core.UserMessage(err))
		return -1
	}
	if conf.help {
		usage(stdout)
		return 0
	}
	if err := setupTracing(conf.trace); err != nil {
		d.failure.Println(err.Error())
		return -1
	}
	out, err := convertFile(file, conf)
	if err != nil {
		if errors.Is(err, core.ErrEmptySelection) {
			d.failure.Printfln("no glyphs in subset %s", conf.conv.Subset)
		} else {
			d.failure.Println(core.UserMessage(err))
		}
		fmt.Fprintf(stderr, "Unable to convert '%s'\n", file)
		return -1
	}
	if _, err := stdout.Write(out.text); err != nil {
		tracer().Errorf("writing output: %v", err)
		return -1
	}
	_, err = conf.display.Match(option.Maybe{
		option.None: nil,
		option.Some: func(a interface{}) (interface{}, error) {
			addr := a.(option.Int64T).Unwrap()
			return nil, showOnDisplay(out.table, filepath.Base(out.path), addr, conf.updown, stderr)
		},
	})
	if err != nil {
		d.failure.Println(core.UserMessage(err))
		return -1
	}
	return 0
}

// output is the result of converting a font file.
type output struct {
	path  string       // resolved font file
	table *glyph.Table // converted glyphs
	text  []byte       // serialized table
}

// convertFile converts the font and renders all output, so that nothing is
// written if any step fails.
func convertFile(file string, conf *config) (*output, error) {
	path, err := locate.Resolve(file)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot open %s", path)
	}
	defer f.Close()
	res, err := convert.Convert(f, conf.conv)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	opts := conf.out
	opts.Source = filepath.Base(path)
	if err := serialize.Write(&buf, res.Header, res.Table, opts); err != nil {
		return nil, err
	}
	if conf.png != "" {
		if err := writeSheet(conf.png, res.Table); err != nil {
			return nil, err
		}
	}
	return &output{path: path, table: res.Table, text: buf.Bytes()}, nil
}

func writeSheet(name string, table *glyph.Table) error {
	out, err := os.Create(name)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create %s", name)
	}
	img := face.Sheet(table, sheetColumns, sheetScale)
	if err := face.WritePNG(out, img); err != nil {
		out.Close()
		return err
	}
	tracer().Infof("glyph sheet written to %s", name)
	return out.Close()
}

// showOnDisplay runs the display preview, reading keys from the terminal.
func showOnDisplay(table *glyph.Table, title string, addr int64, updown bool, stderr io.Writer) error {
	dev := os.Getenv("BDFE_I2C_DEVICE")
	if dev == "" {
		dev = i2c.DevicePath(i2c.DefaultBus)
	}
	bus, err := i2c.Open(dev, int(addr))
	if err != nil {
		fmt.Fprintf(stderr, "Unable to open i2c bus %s\n", dev)
		return err
	}
	defer bus.Close()
	orientation := ssd1306.Normal
	if updown {
		orientation = ssd1306.UpsideDown
	}
	display, err := ssd1306.New(bus, orientation)
	if err != nil {
		return err
	}
	restore, err := rterm.Raw(os.Stdin)
	if err != nil {
		return err
	}
	defer restore()
	return preview.Run(display, table, preview.Options{
		Title:  title,
		Keys:   os.Stdin,
		Prompt: stderr,
	})
}

// setupTracing configures the go-log adapter for all trace keys of bdfe.
func setupTracing(level tracing.TraceLevel) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = levelName(level)
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("error configuring tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

func levelName(level tracing.TraceLevel) string {
	switch level {
	case tracing.LevelDebug:
		return "Debug"
	case tracing.LevelInfo:
		return "Info"
	}
	return "Error"
}

// diagnostics are pterm printers writing to the diagnostic channel.
type diagnostics struct {
	warning, failure *pterm.PrefixPrinter
}

// We use pterm for moderately fancy output.
func newDiagnostics(w io.Writer) diagnostics {
	warning := pterm.Warning
	warning.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
	}
	e := pterm.Error
	e.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
	return diagnostics{
		warning: warning.WithWriter(w),
		failure: e.WithWriter(w),
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "%s [options] <bdf file>\n", filepath.Base(os.Args[0]))
	data := pterm.TableData{{"option", "short", "meaning"}}
	for _, k := range keywords {
		name := k.long
		if k.param != "" {
			name += " " + k.param
		}
		data = append(data, []string{name, k.short, k.help})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render(); err != nil {
		tracer().Errorf("usage: %v", err)
	}
}
