package brainfuck

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// helloWorld is the classic program; it prints "Hello World!" and a newline.
const helloWorld = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."

// runSource executes src with the given input and returns the output, the
// final tape, and the run summary.
func runSource(t *testing.T, src, input string, eofMode EOFMode) (string, *Tape, Result) {
	t.Helper()

	ex := NewExecutor(NewLogger(false))
	var out bytes.Buffer
	ex.SetIO(strings.NewReader(input), &out)
	ex.SetEOFMode(eofMode)

	tape := NewTape(0)
	res, err := ex.Run(context.Background(), ParseString(src), tape)
	if err != nil {
		t.Fatalf("Run(%q) failed: %v", src, err)
	}
	return out.String(), tape, res
}

func TestHelloWorld(t *testing.T) {
	out, _, _ := runSource(t, helloWorld, "", EOFNoChange)

	if out != "Hello World!\n" {
		t.Errorf("Output %q, want %q", out, "Hello World!\n")
	}
}

func TestIncrementWraparound(t *testing.T) {
	_, tape, _ := runSource(t, strings.Repeat("+", 256), "", EOFNoChange)

	if tape.Value() != 0 {
		t.Errorf("Cell is %d after 256 increments, want 0", tape.Value())
	}
}

func TestDecrementWraparound(t *testing.T) {
	_, tape, _ := runSource(t, "-", "", EOFNoChange)

	if tape.Value() != 255 {
		t.Errorf("Cell is %d after decrementing a fresh cell, want 255", tape.Value())
	}
}

func TestLoopSkippedOnZeroCell(t *testing.T) {
	out, _, res := runSource(t, "[.]", "", EOFNoChange)

	if out != "" {
		t.Errorf("Skipped loop produced output %q, want none", out)
	}
	// the [ is the only instruction executed besides nothing inside
	if res.Steps != 1 {
		t.Errorf("Executed %d steps, want 1", res.Steps)
	}
}

func TestLoopTransfersValue(t *testing.T) {
	_, tape, _ := runSource(t, "+++[>+<-]", "", EOFNoChange)

	cells, origin, _ := tape.Snapshot()
	if cells[origin] != 0 {
		t.Errorf("Cell 0 is %d, want 0", cells[origin])
	}
	if cells[origin+1] != 3 {
		t.Errorf("Cell 1 is %d, want 3", cells[origin+1])
	}
}

func TestMoveLeftFromOrigin(t *testing.T) {
	_, tape, _ := runSource(t, "<", "", EOFNoChange)

	if tape.Value() != 0 {
		t.Errorf("New left cell reads %d, want 0", tape.Value())
	}
	if tape.Pos() != -1 {
		t.Errorf("Cursor at %d, want -1", tape.Pos())
	}
}

func TestInputByte(t *testing.T) {
	out, _, _ := runSource(t, ",.", "A", EOFNoChange)

	if out != "A" {
		t.Errorf("Output %q, want %q", out, "A")
	}
}

func TestInputAtEOF(t *testing.T) {
	cases := []struct {
		mode EOFMode
		want byte
	}{
		{EOFNoChange, 5},
		{EOFZero, 0},
		{EOFAllBits, 255},
	}
	for _, tc := range cases {
		_, tape, _ := runSource(t, "+++++,", "", tc.mode)
		if tape.Value() != tc.want {
			t.Errorf("EOFMode %v: cell is %d, want %d", tc.mode, tape.Value(), tc.want)
		}
	}
}

func TestOutputRaw(t *testing.T) {
	// 10 is a newline byte; output must be raw, not rendered
	out, _, _ := runSource(t, "++++++++++.", "", EOFNoChange)

	if out != "\n" {
		t.Errorf("Output %q, want a single newline byte", out)
	}
}

func TestStepFunc(t *testing.T) {
	ex := NewExecutor(NewLogger(false))
	ex.SetIO(nil, nil)

	var steps []StepInfo
	ex.SetStepFunc(func(info StepInfo) {
		steps = append(steps, info)
	})

	_, err := ex.Run(context.Background(), ParseString("+>+"), NewTape(0))
	if err != nil {
		t.Fatal(err)
	}

	if len(steps) != 3 {
		t.Fatalf("Step hook fired %d times, want 3", len(steps))
	}
	if steps[1].Op != OpRight || steps[1].Pos != 1 {
		t.Errorf("Step 1 = %+v, want Op '>' at pos 1", steps[1])
	}
	if steps[2].Cell != 1 {
		t.Errorf("Step 2 cell = %d, want 1", steps[2].Cell)
	}
}

func TestContextCancelsInfiniteLoop(t *testing.T) {
	ex := NewExecutor(NewLogger(false))
	ex.SetIO(nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := ex.Run(ctx, ParseString("+[]"), NewTape(0))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run returned %v, want context.DeadlineExceeded", err)
	}
}

func TestTapeLimitStopsRun(t *testing.T) {
	ex := NewExecutor(NewLogger(false))
	ex.SetIO(nil, nil)

	_, err := ex.Run(context.Background(), ParseString(">>>>"), NewTape(3))
	if !errors.Is(err, ErrTapeLimit) {
		t.Errorf("Run returned %v, want ErrTapeLimit", err)
	}
}

func TestRunAccumulatesOnSharedTape(t *testing.T) {
	ex := NewExecutor(NewLogger(false))
	ex.SetIO(nil, nil)
	tape := NewTape(0)

	if _, err := ex.Run(context.Background(), ParseString("+++"), tape); err != nil {
		t.Fatal(err)
	}
	if _, err := ex.Run(context.Background(), ParseString("--"), tape); err != nil {
		t.Fatal(err)
	}

	if tape.Value() != 1 {
		t.Errorf("Cell is %d after two runs, want 1", tape.Value())
	}
}

func TestNestedLoops(t *testing.T) {
	// 3*4 multiplication: cell 2 ends up 12
	_, tape, _ := runSource(t, "+++[>++++[>+<-]<-]", "", EOFNoChange)

	cells, origin, _ := tape.Snapshot()
	if got := cells[origin+2]; got != 12 {
		t.Errorf("Cell 2 is %d, want 12", got)
	}
}
