package brainfuck

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/term"
)

// TerminalReader adapts an *os.File for use as program input. When the file
// is an interactive terminal, each read switches the terminal into raw mode
// so the , instruction receives one byte per keypress instead of waiting for
// a full line; the previous terminal state is restored after every read.
// Carriage returns are mapped to newlines (raw mode delivers Enter as \r)
// and Ctrl-D is reported as end of input. Typed bytes are echoed, matching
// what cooked-mode input would show.
//
// When the file is not a terminal (a pipe or a regular file), reads are
// plain buffered reads.
type TerminalReader struct {
	f     *os.File
	isTTY bool
	br    *bufio.Reader
	eof   bool
}

// NewTerminalReader wraps f for byte-at-a-time program input.
func NewTerminalReader(f *os.File) *TerminalReader {
	return &TerminalReader{
		f:     f,
		isTTY: term.IsTerminal(int(f.Fd())),
		br:    bufio.NewReader(f),
	}
}

// IsTerminal reports whether the underlying file is an interactive terminal.
func (tr *TerminalReader) IsTerminal() bool {
	return tr.isTTY
}

// Read fills p with at most one input byte.
func (tr *TerminalReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if tr.eof {
		return 0, io.EOF
	}
	if !tr.isTTY {
		c, err := tr.br.ReadByte()
		if err != nil {
			return 0, err
		}
		p[0] = c
		return 1, nil
	}

	c, err := tr.readRaw()
	if err != nil {
		return 0, err
	}
	p[0] = c
	return 1, nil
}

// readRaw reads a single byte with the terminal in raw mode, restoring the
// terminal state before returning.
func (tr *TerminalReader) readRaw() (byte, error) {
	fd := int(tr.f.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		// Raw mode unavailable (e.g. fd revoked); fall back to a plain read.
		c, rerr := tr.br.ReadByte()
		if rerr != nil {
			return 0, rerr
		}
		return c, nil
	}
	defer term.Restore(fd, oldState)

	var buf [1]byte
	n, err := tr.f.Read(buf[:])
	if err != nil || n == 0 {
		tr.eof = true
		return 0, io.EOF
	}

	c := buf[0]
	switch c {
	case 0x04: // Ctrl-D
		tr.eof = true
		return 0, io.EOF
	case '\r': // Enter arrives as CR in raw mode
		c = '\n'
	}

	// Echo what cooked mode would have shown
	if c == '\n' {
		_, _ = os.Stdout.Write([]byte("\r\n"))
	} else {
		_, _ = os.Stdout.Write([]byte{c})
	}
	return c, nil
}
