package brainfuck

import (
	"bufio"
	"fmt"
	"io"
)

// Program is the parsed instruction store: the instruction characters of a
// source text in order, with every comment byte removed. It is built once by
// Parse and never modified afterwards.
type Program struct {
	code []byte
}

// Parse consumes r from its current position to end of stream and returns
// the instruction store. Bytes that are not one of the eight instruction
// characters are skipped silently; that is the language's comment
// convention. Parse does not check bracket balance — see CheckBrackets.
func Parse(r io.Reader) (*Program, error) {
	br := bufio.NewReader(r)
	var code []byte
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading source: %w", err)
		}
		if IsInstruction(c) {
			code = append(code, c)
		}
	}
	return &Program{code: code}, nil
}

// ParseString parses a source string.
func ParseString(src string) *Program {
	code := make([]byte, 0, len(src))
	for i := 0; i < len(src); i++ {
		if IsInstruction(src[i]) {
			code = append(code, src[i])
		}
	}
	return &Program{code: code}
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.code)
}

// At returns the instruction at index i, or 0 when i is past the end. The
// zero byte doubles as the halt marker: no instruction character is ever 0.
func (p *Program) At(i int) byte {
	if i < 0 || i >= len(p.code) {
		return 0
	}
	return p.code[i]
}

// String returns the program's instructions as written.
func (p *Program) String() string {
	return string(p.code)
}

// matchForward returns the index of the ] matching the [ at ip, scanning
// forward with a depth counter. Returns -1 if no match exists (only possible
// for programs that skipped bracket validation).
func (p *Program) matchForward(ip int) int {
	depth := 1
	for i := ip + 1; i < len(p.code); i++ {
		switch p.code[i] {
		case OpOpen:
			depth++
		case OpClose:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// matchBackward returns the index of the [ matching the ] at ip, scanning
// backward with a depth counter. Returns -1 if no match exists.
func (p *Program) matchBackward(ip int) int {
	depth := 1
	for i := ip - 1; i >= 0; i-- {
		switch p.code[i] {
		case OpClose:
			depth++
		case OpOpen:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
