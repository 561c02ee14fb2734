// Package rterm reads single key presses from a terminal.
package rterm

import (
	"io"
	"os"

	"github.com/npillmayer/bdfe/core"
	"golang.org/x/term"
)

// Raw puts the terminal f into raw mode and returns a function restoring the
// previous state. If f is not a terminal, nothing is changed and the restore
// function does nothing.
func Raw(f *os.File) (restore func(), err error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return func() {}, core.WrapError(err, core.EINTERNAL, "cannot switch terminal to raw mode")
	}
	return func() { term.Restore(fd, state) }, nil
}

// ReadKey blocks until one byte can be read from r. End of input is
// reported as io.EOF.
func ReadKey(r io.Reader) (byte, error) {
	var b [1]byte
	for {
		n, err := r.Read(b[:])
		if n == 1 {
			return b[0], nil
		}
		if err == io.EOF {
			return 0, err
		}
		if err != nil {
			return 0, core.ErrorWithCode(err, core.EINTERNAL)
		}
	}
}
