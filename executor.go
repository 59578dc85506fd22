package brainfuck

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Executor walks a Program and dispatches each instruction against a Tape.
// Loop boundaries are matched by a linear scan over the instruction store on
// every crossing; there is no precomputed jump table.
type Executor struct {
	logger  *Logger
	in      io.Reader
	out     io.Writer
	eofMode EOFMode
	trace   bool
	stepFn  func(StepInfo)
}

// NewExecutor creates a new executor reading from stdin and writing to
// stdout.
func NewExecutor(logger *Logger) *Executor {
	return &Executor{
		logger: logger,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetIO redirects the , and . instructions. A nil reader means , always
// hits end of input; a nil writer discards output.
func (e *Executor) SetIO(in io.Reader, out io.Writer) {
	e.in = in
	e.out = out
}

// SetEOFMode sets what , does to the current cell at end of input.
func (e *Executor) SetEOFMode(mode EOFMode) {
	e.eofMode = mode
}

// SetTrace enables per-instruction trace logging (exec category).
func (e *Executor) SetTrace(trace bool) {
	e.trace = trace
}

// SetStepFunc installs a hook called after every executed instruction. A nil
// hook disables it.
func (e *Executor) SetStepFunc(fn func(StepInfo)) {
	e.stepFn = fn
}

// Run executes prog against tape from the current cursor position until the
// instruction pointer passes the last instruction. The tape is left as the
// program leaves it, so successive runs against the same tape accumulate
// state (the REPL relies on this).
//
// ctx is checked on loop-boundary crossings and input reads; a canceled
// context stops the run with ctx's error. A non-terminating program under
// context.Background() runs forever, as the language requires.
func (e *Executor) Run(ctx context.Context, prog *Program, tape *Tape) (Result, error) {
	var steps uint64
	ip := 0
	for ip < prog.Len() {
		at := ip
		op := prog.At(ip)
		switch op {
		case OpRight:
			if err := tape.Right(); err != nil {
				return Result{Steps: steps, Cells: tape.Len()}, e.growthError(err)
			}
		case OpLeft:
			if err := tape.Left(); err != nil {
				return Result{Steps: steps, Cells: tape.Len()}, e.growthError(err)
			}
		case OpInc:
			tape.Inc()
		case OpDec:
			tape.Dec()
		case OpOut:
			if e.out != nil {
				if _, err := e.out.Write([]byte{tape.Value()}); err != nil {
					return Result{Steps: steps, Cells: tape.Len()}, fmt.Errorf("writing output: %w", err)
				}
			}
		case OpIn:
			if err := ctx.Err(); err != nil {
				return Result{Steps: steps, Cells: tape.Len()}, err
			}
			e.readInput(tape)
		case OpOpen:
			if err := ctx.Err(); err != nil {
				return Result{Steps: steps, Cells: tape.Len()}, err
			}
			if tape.Value() == 0 {
				match := prog.matchForward(ip)
				if match < 0 {
					return Result{Steps: steps, Cells: tape.Len()}, fmt.Errorf("%w: [ at %d has no ]", ErrUnmatchedBrackets, ip)
				}
				ip = match
			}
		case OpClose:
			if err := ctx.Err(); err != nil {
				return Result{Steps: steps, Cells: tape.Len()}, err
			}
			if tape.Value() != 0 {
				match := prog.matchBackward(ip)
				if match < 0 {
					return Result{Steps: steps, Cells: tape.Len()}, fmt.Errorf("%w: ] at %d has no [", ErrUnmatchedBrackets, ip)
				}
				ip = match
			}
		}

		if e.trace {
			e.logger.TraceCat(CatExec, "step %d: %c at %d, cell[%d]=%d", steps, op, at, tape.Pos(), tape.Value())
		}
		if e.stepFn != nil {
			e.stepFn(StepInfo{Step: steps, IP: at, Op: op, Pos: tape.Pos(), Cell: tape.Value()})
		}
		steps++

		// The instruction pointer advances unconditionally, including after
		// a loop jump: the landed-on bracket is not re-executed.
		ip++
	}
	return Result{Steps: steps, Cells: tape.Len()}, nil
}

func (e *Executor) growthError(err error) error {
	e.logger.ErrorCat(CatTape, "tape growth failed: %v", err)
	return err
}

// readInput reads one byte into the current cell. At end of input (or any
// read failure) the cell is handled per the configured EOFMode.
func (e *Executor) readInput(tape *Tape) {
	if e.in != nil {
		var buf [1]byte
		if n, err := io.ReadFull(e.in, buf[:]); n == 1 {
			tape.SetValue(buf[0])
			return
		} else if err != io.EOF {
			e.logger.DebugCat(CatIO, "input read failed: %v", err)
		}
	}
	switch e.eofMode {
	case EOFZero:
		tape.SetValue(0)
	case EOFAllBits:
		tape.SetValue(0xFF)
	}
	// EOFNoChange: leave the cell alone
}
