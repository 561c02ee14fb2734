package rterm

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/npillmayer/bdfe/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadKey(t *testing.T) {
	r := strings.NewReader("xq")
	k, err := ReadKey(r)
	require.NoError(t, err)
	assert.Equal(t, byte('x'), k)
	k, _ = ReadKey(r)
	assert.Equal(t, byte('q'), k)
	_, err = ReadKey(r)
	assert.Equal(t, io.EOF, err)
}

func TestReadKeyFailure(t *testing.T) {
	_, err := ReadKey(iotest.ErrReader(errors.New("tty gone")))
	assert.Equal(t, core.EINTERNAL, core.Code(err))
	assert.Contains(t, err.Error(), "tty gone")
}

func TestRawOnPlainFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "keys")
	require.NoError(t, err)
	defer f.Close()
	restore, err := Raw(f)
	require.NoError(t, err)
	restore()
}
