package brainfuck

import "fmt"

// The eight instruction characters of the language. Every other byte in a
// source file is a comment and is skipped by both the validator and the
// parser.
const (
	OpRight = '>' // move the data pointer one cell right
	OpLeft  = '<' // move the data pointer one cell left
	OpInc   = '+' // increment the current cell, wrapping modulo 256
	OpDec   = '-' // decrement the current cell, wrapping modulo 256
	OpOut   = '.' // write the current cell to output as one raw byte
	OpIn    = ',' // read one raw byte from input into the current cell
	OpOpen  = '[' // jump past the matching ] when the current cell is 0
	OpClose = ']' // jump back to the matching [ when the current cell is not 0
)

// IsInstruction reports whether c is one of the eight instruction characters.
func IsInstruction(c byte) bool {
	switch c {
	case OpRight, OpLeft, OpInc, OpDec, OpOut, OpIn, OpOpen, OpClose:
		return true
	}
	return false
}

// EOFMode selects what the input instruction does to the current cell when
// input is exhausted. The language itself leaves this implementation-defined.
type EOFMode int

const (
	// EOFNoChange leaves the current cell untouched on end of input.
	EOFNoChange EOFMode = iota
	// EOFZero sets the current cell to 0 on end of input.
	EOFZero
	// EOFAllBits sets the current cell to 255 on end of input.
	EOFAllBits
)

// ParseEOFMode converts a config/flag string into an EOFMode.
func ParseEOFMode(s string) (EOFMode, error) {
	switch s {
	case "nochange", "":
		return EOFNoChange, nil
	case "zero":
		return EOFZero, nil
	case "allbits":
		return EOFAllBits, nil
	}
	return EOFNoChange, fmt.Errorf("unknown eof mode %q (want nochange, zero or allbits)", s)
}

func (m EOFMode) String() string {
	switch m {
	case EOFZero:
		return "zero"
	case EOFAllBits:
		return "allbits"
	default:
		return "nochange"
	}
}

// Config holds interpreter configuration
type Config struct {
	Debug    bool    // enable debug logging
	Trace    bool    // log every executed instruction (exec category)
	EOFMode  EOFMode // input behavior at end of input
	MaxCells int     // tape cell limit, 0 means unbounded
}

// DefaultConfig returns the default interpreter configuration
func DefaultConfig() *Config {
	return &Config{
		Debug:    false,
		Trace:    false,
		EOFMode:  EOFNoChange,
		MaxCells: 0,
	}
}

// StepInfo describes one executed instruction, as delivered to a step
// function installed with SetStepFunc.
type StepInfo struct {
	Step uint64 // 0-based count of executed instructions
	IP   int    // instruction pointer before the instruction ran
	Op   byte   // the instruction character
	Pos  int    // data pointer offset from the tape origin, after the instruction
	Cell byte   // current cell value, after the instruction
}

// Result summarizes a completed run.
type Result struct {
	Steps uint64 // instructions executed
	Cells int    // tape cells allocated by the end of the run
}
