// Package brainfuck provides an interpreter for the Brainfuck esoteric
// language that can be embedded in Go applications.
//
// The language has eight single-character instructions operating on an
// unbounded byte tape; every other byte of a source file is a comment. The
// interpreter validates loop brackets up front, parses the source into an
// immutable instruction store, and executes it against a tape that grows on
// demand in either direction.
package brainfuck

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
)

// Interpreter is the main entry point, tying together configuration,
// logging, and execution.
type Interpreter struct {
	config   *Config
	logger   *Logger
	executor *Executor
}

// New creates a new interpreter. A nil config means DefaultConfig.
func New(config *Config) *Interpreter {
	if config == nil {
		config = DefaultConfig()
	}

	logger := NewLogger(config.Debug)
	if config.Debug {
		logger.EnableAllCategories()
	}
	if config.Trace {
		// Tracing routes through the exec category; it must work without -d
		logger.SetEnabled(true)
		logger.EnableCategory(CatExec)
	}

	executor := NewExecutor(logger)
	executor.SetEOFMode(config.EOFMode)
	executor.SetTrace(config.Trace)

	return &Interpreter{
		config:   config,
		logger:   logger,
		executor: executor,
	}
}

// Logger returns the interpreter's logger.
func (bf *Interpreter) Logger() *Logger {
	return bf.logger
}

// SetIO redirects program input and output. Defaults are stdin and stdout.
func (bf *Interpreter) SetIO(in io.Reader, out io.Writer) {
	bf.executor.SetIO(in, out)
}

// SetStepFunc installs a per-instruction hook on the underlying executor.
func (bf *Interpreter) SetStepFunc(fn func(StepInfo)) {
	bf.executor.SetStepFunc(fn)
}

// NewTape returns a fresh tape honoring the configured cell limit.
func (bf *Interpreter) NewTape() *Tape {
	return NewTape(bf.config.MaxCells)
}

// Run validates, parses, and executes src on a fresh tape.
func (bf *Interpreter) Run(src []byte) (Result, error) {
	return bf.RunContext(context.Background(), src)
}

// RunContext is Run with a cancelable context.
func (bf *Interpreter) RunContext(ctx context.Context, src []byte) (Result, error) {
	if err := CheckBrackets(bytes.NewReader(src)); err != nil {
		bf.logger.DebugCat(CatParse, "bracket validation failed: %v", err)
		return Result{}, err
	}
	prog, err := Parse(bytes.NewReader(src))
	if err != nil {
		return Result{}, err
	}
	bf.logger.DebugCat(CatParse, "parsed %d instructions", prog.Len())
	return bf.executor.Run(ctx, prog, bf.NewTape())
}

// RunReader validates, parses, and executes the source read from r on a
// fresh tape. The stream is buffered in memory so the bracket validator and
// the parser can each take their pass.
func (bf *Interpreter) RunReader(r io.Reader) (Result, error) {
	return bf.RunReaderContext(context.Background(), r)
}

// RunReaderContext is RunReader with a cancelable context.
func (bf *Interpreter) RunReaderContext(ctx context.Context, r io.Reader) (Result, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("reading source: %w", err)
	}
	return bf.RunContext(ctx, src)
}

// RunProgram executes an already-parsed program against tape. The tape keeps
// whatever state the program leaves behind, so callers can run several
// programs against one tape.
func (bf *Interpreter) RunProgram(ctx context.Context, prog *Program, tape *Tape) (Result, error) {
	return bf.executor.Run(ctx, prog, tape)
}

// RunFile validates path's extension, opens it, verifies bracket balance
// with a streaming pass, rewinds, parses, and executes on a fresh tape.
//
// Failures before execution are distinguishable with errors.Is:
// ErrBadExtension, ErrUnmatchedBrackets, or the wrapped open error.
func (bf *Interpreter) RunFile(path string) (Result, error) {
	return bf.RunFileContext(context.Background(), path)
}

// RunFileContext is RunFile with a cancelable context.
func (bf *Interpreter) RunFileContext(ctx context.Context, path string) (Result, error) {
	if !ValidExtension(path) {
		return Result{}, fmt.Errorf("%w: want a '%s' file, got %q", ErrBadExtension, SourceExtension, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	// The validator consumes the whole stream; rewind before parsing.
	if err := CheckBrackets(f); err != nil {
		bf.logger.DebugCat(CatParse, "bracket validation failed: %v", err)
		return Result{}, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return Result{}, fmt.Errorf("rewinding file: %w", err)
	}

	prog, err := Parse(f)
	if err != nil {
		return Result{}, err
	}
	bf.logger.DebugCat(CatParse, "parsed %d instructions from %s", prog.Len(), path)

	return bf.executor.Run(ctx, prog, bf.NewTape())
}
