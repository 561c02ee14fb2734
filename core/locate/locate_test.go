package locate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/bdfe/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.locate")
	defer teardown()
	//
	fpath := filepath.Join(t.TempDir(), "tiny.bdf")
	require.NoError(t, os.WriteFile(fpath, []byte("STARTFONT 2.1\n"), 0644))
	p, err := Resolve(fpath)
	require.NoError(t, err)
	assert.Equal(t, fpath, p)
}

func TestResolveInFontDirs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.locate")
	defer teardown()
	//
	dir := t.TempDir()
	name := "bdfe-locate-test-6x13"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".bdf"), []byte("STARTFONT 2.1\n"), 0644))
	saved := BDFDirs
	BDFDirs = []string{dir}
	defer func() { BDFDirs = saved }()
	p, err := Resolve(name)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, name+".bdf"), p)
}

func TestResolveMissing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bdfe.locate")
	defer teardown()
	//
	saved := BDFDirs
	BDFDirs = []string{t.TempDir()}
	defer func() { BDFDirs = saved }()
	_, err := Resolve("no-such-font-bdfe-test.bdf")
	require.Error(t, err)
	assert.Equal(t, core.EMISSING, core.Code(err))
	assert.Contains(t, core.UserMessage(err), "no-such-font-bdfe-test.bdf")
}
