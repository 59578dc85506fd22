package brainfuck

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// SourceExtension is the required file name extension for source files,
// without the dot.
const SourceExtension = "bf"

// ErrUnmatchedBrackets is reported when a program's loop brackets do not
// balance. Use errors.Is to test for it.
var ErrUnmatchedBrackets = errors.New("unmatched brackets")

// ErrBadExtension is reported by RunFile when the file name does not carry
// the required extension.
var ErrBadExtension = errors.New("invalid file extension")

// CheckBrackets reads r to the end and verifies that every [ has a matching
// ] in proper nesting order, using a single signed counter. It fails as soon
// as a ] appears with no open [ before it, and at end of stream when any [
// is left open.
//
// CheckBrackets consumes the whole stream; the caller must rewind before
// parsing the same source.
func CheckBrackets(r io.Reader) error {
	br := bufio.NewReader(r)
	depth := 0
	offset := 0
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading source: %w", err)
		}
		switch c {
		case OpOpen:
			depth++
		case OpClose:
			depth--
			if depth < 0 {
				return fmt.Errorf("%w: unexpected ] at byte %d", ErrUnmatchedBrackets, offset)
			}
		}
		offset++
	}
	if depth != 0 {
		return fmt.Errorf("%w: %d unclosed [", ErrUnmatchedBrackets, depth)
	}
	return nil
}

// ValidExtension reports whether path names a source file: the text after
// the last dot in the base name must equal SourceExtension exactly, and the
// dot must not be the base name's first byte (a leading-dot file has no
// extension).
func ValidExtension(path string) bool {
	base := filepath.Base(path)
	dot := strings.LastIndexByte(base, '.')
	if dot <= 0 {
		return false
	}
	return base[dot+1:] == SourceExtension
}
