package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/bdfe/core/bdf/bdftest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fontFile(t *testing.T, content string) string {
	p := filepath.Join(t.TempDir(), "fixed.bdf")
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	pterm.DisableStyling()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestConvertDefault(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.cli")
	defer teardown()
	//
	font := fontFile(t, bdftest.Fixed(8, 8, -1, 0, 255))
	code, out, _ := runCLI(t, font)
	require.Equal(t, 0, code)
	assert.Equal(t, 95*8, strings.Count(out, "0x"))
	assert.Equal(t, 95*9, strings.Count(out, "\n"))
	assert.True(t, strings.HasPrefix(out, "\t// 32\n"))
}

func TestConvertWithOptions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.cli")
	defer teardown()
	//
	font := fontFile(t, bdftest.Fixed(6, 12, -2, 32, 126))
	code, out, _ := runCLI(t, "header", "-l", "subset", "65-70", "-r", "-f", "droplast", font)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "// Source:    fixed.bdf\n")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	glyphLines := 0
	for _, l := range lines {
		if strings.HasPrefix(l, "\t0x") {
			glyphLines++
			// 6 columns of 2 pages, less the dropped byte
			assert.Equal(t, 11, strings.Count(l, "0x"), l)
		}
	}
	assert.Equal(t, 6, glyphLines)
}

func TestHelp(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.cli")
	defer teardown()
	//
	code, out, _ := runCLI(t, "help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "ascender H")
	assert.Contains(t, out, "droplast")
	code, out, _ = runCLI(t, "-?", "font.bdf")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "subset a-b")
	code, _, _ = runCLI(t)
	assert.Equal(t, -1, code)
}

func TestEmptySelectionFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.cli")
	defer teardown()
	//
	font := fontFile(t, bdftest.Fixed(8, 8, -1, 32, 126))
	code, out, errout := runCLI(t, "subset", "200-300", font)
	assert.Equal(t, -1, code)
	assert.Empty(t, out)
	assert.Contains(t, errout, "200-300")
	assert.Contains(t, errout, "Unable to convert '"+font+"'")
}

func TestMalformedFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.cli")
	defer teardown()
	//
	src := strings.Replace(bdftest.Fixed(8, 8, -1, 32, 126), "BITMAP", "BITMAP\nXY", 1)
	font := fontFile(t, src)
	code, out, errout := runCLI(t, font)
	assert.Equal(t, -1, code)
	assert.Empty(t, out)
	assert.Contains(t, errout, "not hexadecimal")
	assert.Contains(t, errout, "Unable to convert")
	//
	code, out, _ = runCLI(t, filepath.Join(t.TempDir(), "missing-bdfe-test-font.bdf"))
	assert.Equal(t, -1, code)
	assert.Empty(t, out)
}

func TestPNGExport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.cli")
	defer teardown()
	//
	font := fontFile(t, bdftest.Fixed(8, 8, -1, 32, 126))
	sheet := filepath.Join(t.TempDir(), "sheet.png")
	code, _, _ := runCLI(t, "png", sheet, font)
	require.Equal(t, 0, code)
	f, err := os.Open(sheet)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, (16*9+1)*sheetScale, img.Bounds().Dx())
}

func TestDisplayUnavailable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.cli")
	defer teardown()
	//
	t.Setenv("BDFE_I2C_DEVICE", filepath.Join(t.TempDir(), "i2c-1"))
	font := fontFile(t, bdftest.Fixed(8, 8, -1, 32, 126))
	code, out, errout := runCLI(t, "display", "3d", font)
	assert.Equal(t, -1, code)
	assert.Equal(t, 95*8, strings.Count(out, "0x"), "conversion output comes before the preview")
	assert.Contains(t, errout, "Unable to open i2c bus")
}

func TestWarningsGoToStderr(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.cli")
	defer teardown()
	//
	font := fontFile(t, bdftest.Fixed(8, 8, -1, 32, 126))
	code, out, errout := runCLI(t, "rotaet", font)
	assert.Equal(t, 0, code)
	assert.Contains(t, errout, "did you mean rotate")
	assert.NotContains(t, out, "rotate")
}
