package um

import (
	"bufio"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// console is the I/O Port: byte-granular, synchronous
// input, with output flushed on every newline so interactive programs
// make visible progress. End-of-input is sticky — once Read reports
// io.EOF, every subsequent byte read also reports it.
type console struct {
	in       *bufio.Reader
	out      *bufio.Writer
	eof      bool
	rawFD    int
	rawState *term.State
}

// newConsole wires stdin/stdout into a console. If stdin is an
// interactive terminal, it is switched to raw mode so INPUT observes one
// byte per keystroke instead of a line-buffered one; restoreTerminal
// undoes this on the way out. Non-terminal stdin (a pipe, a redirected
// file, or anything under test) is left untouched.
func newConsole(in io.Reader, out io.Writer) *console {
	c := &console{
		in:  bufio.NewReader(in),
		out: bufio.NewWriter(out),
	}
	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		fd := int(f.Fd())
		if state, err := term.MakeRaw(fd); err == nil {
			c.rawFD = fd
			c.rawState = state
		}
	}
	return c
}

func (c *console) restoreTerminal() {
	if c.rawState != nil {
		_ = term.Restore(c.rawFD, c.rawState)
	}
}

// readByte returns the next input byte, or (0, true) once end-of-input
// has been reached.
func (c *console) readByte() (byte, bool, error) {
	if c.eof {
		return 0, true, nil
	}
	b, err := c.in.ReadByte()
	if err != nil {
		if err == io.EOF {
			c.eof = true
			return 0, true, nil
		}
		return 0, false, err
	}
	return b, false, nil
}

// writeByte emits a single byte and flushes immediately on a newline so
// output reaches the terminal/pipe without waiting for a full buffer.
func (c *console) writeByte(b byte) error {
	if err := c.out.WriteByte(b); err != nil {
		return err
	}
	if b == '\n' {
		return c.out.Flush()
	}
	return nil
}

func (c *console) flush() error {
	return c.out.Flush()
}
