package main

import (
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/derekparker/trie"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/npillmayer/bdfe/core"
	"github.com/npillmayer/bdfe/core/option"
	"github.com/npillmayer/bdfe/engine/convert"
	"github.com/npillmayer/bdfe/engine/extract"
	"github.com/npillmayer/bdfe/engine/serialize"
	"github.com/npillmayer/bdfe/preview/i2c"
	"github.com/npillmayer/bdfe/preview/ssd1306"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// DefaultAddress is the I²C address of most SSD1306 modules.
const DefaultAddress = 0x3C

// MaxAscender is the largest ascender accepted, the height of a display.
const MaxAscender = ssd1306.Height

type argKind int

const (
	noArg       argKind = iota
	decimalArg          // optional, starts with a decimal digit
	hexArg              // optional, starts with a hexadecimal digit
	requiredArg         // mandatory, any word
)

// keyword is a command line option. Long forms may be abbreviated.
type keyword struct {
	long, short string
	arg         argKind
	param       string // name of the argument for the usage text
	help        string
	apply       func(c *config, arg string) error
}

// config collects everything the command line asks for.
type config struct {
	help     bool
	conv     convert.Options
	out      serialize.Options
	display  option.Int64T // I²C address, None if no preview requested
	updown   bool
	png      string
	trace    tracing.TraceLevel
	profiles []string // profiles applied so far
	warnings []string
}

func newConfig() *config {
	c := &config{
		conv:    convert.DefaultOptions(),
		display: option.Int64(),
		trace:   tracing.LevelError,
	}
	if level, ok := traceLevel(os.Getenv("BDFE_TRACE")); ok {
		c.trace = level
	}
	return c
}

// keywords is set up in init, as profiles parse options recursively.
var keywords []*keyword

// longNames holds the long forms of keywords for prefix search.
var longNames *trie.Trie

func init() {
	keywords = []*keyword{
		{long: "help", short: "-?", help: "print this help", apply: func(c *config, _ string) error {
			c.help = true
			return nil
		}},
		{long: "header", short: "-h", help: "print file header", apply: func(c *config, _ string) error {
			c.out.Header = true
			return nil
		}},
		{long: "verbose", short: "-v", help: "add extra info to the header", apply: func(c *config, _ string) error {
			c.out.Verbose = true
			return nil
		}},
		{long: "line", short: "-l", help: "one line per glyph", apply: func(c *config, _ string) error {
			c.out.Line = true
			return nil
		}},
		{long: "subset", short: "-s", arg: decimalArg, param: "a-b",
			help: "subset of glyphs to convert a to b, default 32-126",
			apply: func(c *config, arg string) (err error) {
				if arg != "" {
					c.conv.Subset, err = extract.ParseSubset(arg)
				}
				return
			}},
		{long: "all", help: "convert all glyphs, not just 32-126", apply: func(c *config, _ string) error {
			c.conv.Subset = extract.All
			return nil
		}},
		{long: "native", short: "-n", help: "do not adjust font height to 8 pixels", apply: func(c *config, _ string) error {
			c.conv.Transform.Native = true
			return nil
		}},
		{long: "ascender", short: "-a", arg: decimalArg, param: "H",
			help: "add extra ascender of H pixels per glyph",
			apply: func(c *config, arg string) error {
				if arg == "" {
					return nil
				}
				h, err := strconv.Atoi(arg)
				if err != nil || h < 0 {
					return core.Error(core.EINVALID, "ascender is not a pixel count: %s", arg)
				}
				if h > MaxAscender {
					return core.Error(core.EINVALID, "ascender of %d pixels exceeds %d", h, MaxAscender)
				}
				c.conv.Transform.Ascender = h
				return nil
			}},
		{long: "rotate", short: "-r", help: "rotate glyph bitmaps counter-clockwise", apply: func(c *config, _ string) error {
			c.conv.Transform.Rotate = true
			return nil
		}},
		{long: "flip", short: "-f", help: "reverse bit order (used with rotate)", apply: func(c *config, _ string) error {
			c.conv.Transform.Flip = true
			return nil
		}},
		{long: "droplast", help: "leave off the last byte of every glyph", apply: func(c *config, _ string) error {
			c.conv.Transform.DropLast = true
			return nil
		}},
		{long: "display", short: "-d", arg: hexArg, param: "A",
			help: "show converted font on SSD1306 display at hex address A (default 3C)",
			apply: func(c *config, arg string) error {
				// a bare 'display' keeps an address chosen before
				c.display = option.SomeInt64(c.display.OrElse(DefaultAddress))
				if arg == "" {
					return nil
				}
				hex := strings.TrimPrefix(strings.TrimPrefix(arg, "0x"), "0X")
				if a, err := strconv.ParseInt(hex, 16, 64); err == nil && i2c.ValidAddress(a) {
					c.display = option.SomeInt64(a)
				} else {
					c.warnings = append(c.warnings, "ignoring invalid display address "+arg)
				}
				return nil
			}},
		{long: "updown", short: "-u", help: "display orientation is upside down", apply: func(c *config, _ string) error {
			c.updown = true
			return nil
		}},
		{long: "png", arg: requiredArg, param: "file", help: "write all glyphs to a PNG image",
			apply: func(c *config, arg string) error {
				c.png = arg
				return nil
			}},
		{long: "profile", arg: requiredArg, param: "file", help: "read options from a YAML file",
			apply: func(c *config, arg string) error {
				return c.applyProfile(arg)
			}},
		{long: "trace", arg: requiredArg, param: "level", help: "trace level [Debug|Info|Error]",
			apply: func(c *config, arg string) error {
				level, ok := traceLevel(arg)
				if !ok {
					return core.Error(core.EINVALID, "unknown trace level: %s", arg)
				}
				c.trace = level
				return nil
			}},
	}

	longNames = trie.New()
	for _, k := range keywords {
		longNames.Add(k.long, k)
	}
}

// resolve finds the keyword for word: a short form, a long form, or a prefix
// of exactly one long form.
func resolve(word string) (*keyword, []string) {
	for _, k := range keywords {
		if word == k.long || (k.short != "" && word == k.short) {
			return k, nil
		}
	}
	if word == "" || strings.HasPrefix(word, "-") {
		return nil, suggest(word)
	}
	matches := longNames.PrefixSearch(word)
	if len(matches) == 1 {
		node, _ := longNames.Find(matches[0])
		return node.Meta().(*keyword), nil
	}
	if len(matches) > 1 {
		sort.Strings(matches)
		return nil, matches
	}
	return nil, suggest(word)
}

// suggest lists long forms close to an unknown word.
func suggest(word string) []string {
	word = strings.TrimLeft(word, "-")
	if word == "" {
		return nil
	}
	names := make([]string, len(keywords))
	for i, k := range keywords {
		names[i] = k.long
	}
	ranks := fuzzy.RankFindFold(word, names)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		s := make([]string, len(ranks))
		for i, r := range ranks {
			s[i] = r.Target
		}
		return s
	}
	var s []string
	for _, name := range names {
		if fuzzy.LevenshteinDistance(strings.ToLower(word), name) <= 2 {
			s = append(s, name)
		}
	}
	return s
}

// parse applies options in order. Optional arguments are only taken if they
// look like one; unknown words are skipped with a warning.
func (c *config) parse(opts []string) error {
	for i := 0; i < len(opts); i++ {
		k, alternatives := resolve(opts[i])
		if k == nil {
			w := "ignoring unknown option '" + opts[i] + "'"
			if len(alternatives) > 0 {
				w += ", did you mean " + strings.Join(alternatives, " or ") + "?"
			}
			c.warnings = append(c.warnings, w)
			continue
		}
		arg := ""
		if k.arg != noArg {
			next := ""
			if i+1 < len(opts) {
				next = opts[i+1]
			}
			if k.arg == requiredArg && next == "" {
				return core.Error(core.EINVALID, "option %s needs an argument", k.long)
			}
			if accepts(k.arg, next) {
				arg = next
				i++
			}
		}
		if err := k.apply(c, arg); err != nil {
			return err
		}
	}
	return nil
}

func accepts(kind argKind, word string) bool {
	if word == "" {
		return false
	}
	switch kind {
	case decimalArg:
		return unicode.IsDigit(rune(word[0]))
	case hexArg:
		// the whole word, or "flip" would be taken for an address
		hex := strings.TrimPrefix(strings.TrimPrefix(word, "0x"), "0X")
		return hex != "" && strings.Trim(hex, "0123456789abcdefABCDEF") == ""
	case requiredArg:
		return true
	}
	return false
}

// switchValue interprets a profile value given for a switch, or for an
// option whose argument may be left off.
func switchValue(v string) (on bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "on":
		return true, true
	case "false", "no", "off":
		return false, true
	}
	return false, false
}

// applyProfile reads a YAML file mapping long option names to values and
// applies the options at the current position of the command line. Switches
// take a boolean, all other options their argument.
func (c *config) applyProfile(path string) error {
	for _, p := range c.profiles {
		if p == path {
			return core.Error(core.EINVALID, "profile %s includes itself", path)
		}
	}
	c.profiles = append(c.profiles, path)
	defer func() { c.profiles = c.profiles[:len(c.profiles)-1] }()
	data, err := os.ReadFile(path)
	if err != nil {
		return core.WrapError(err, core.EMISSING, "cannot read profile %s", path)
	}
	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return core.WrapError(err, core.EINVALID, "profile %s is not a YAML mapping", path)
	}
	var opts []string
	for key := range values {
		if k, _ := resolve(key); k == nil || k.long != key {
			return core.Error(core.EINVALID, "profile %s: unknown option %q", path, key)
		}
	}
	for _, k := range keywords { // keep a stable order
		v, ok := values[k.long]
		if !ok {
			continue
		}
		on, isSwitch := switchValue(v)
		if k.arg == noArg && !isSwitch {
			return core.Error(core.EINVALID, "profile %s: %s needs true or false, not %q", path, k.long, v)
		}
		if isSwitch {
			if on {
				opts = append(opts, k.long)
			}
			continue
		}
		opts = append(opts, k.long)
		if v != "" {
			opts = append(opts, v)
		}
	}
	return c.parse(opts)
}

func traceLevel(s string) (tracing.TraceLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return tracing.LevelDebug, true
	case "info":
		return tracing.LevelInfo, true
	case "error":
		return tracing.LevelError, true
	}
	return tracing.LevelError, false
}
