package brainfuck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const replHistoryFile = ".bf_history"

// REPLConfig configures the REPL behavior
type REPLConfig struct {
	Debug      bool
	EOFMode    EOFMode
	MaxCells   int
	Prompt     string
	ShowBanner bool
}

// REPL provides an interactive Read-Eval-Print Loop. Each entered line is a
// complete program executed against a persistent tape, so state accumulates
// across lines. Meta commands start with a colon: :dump prints the tape,
// :reset zeroes it, :quit exits.
type REPL struct {
	bf     *Interpreter
	config REPLConfig
	tape   *Tape
	out    io.Writer
	in     io.Reader
}

// NewREPL creates a new REPL instance
func NewREPL(config REPLConfig) *REPL {
	if config.Prompt == "" {
		config.Prompt = "bf> "
	}
	bf := New(&Config{
		Debug:    config.Debug,
		EOFMode:  config.EOFMode,
		MaxCells: config.MaxCells,
	})
	r := &REPL{
		bf:     bf,
		config: config,
		tape:   bf.NewTape(),
		out:    os.Stdout,
		in:     os.Stdin,
	}
	bf.SetIO(r.in, r.out)
	return r
}

// SetIO redirects the REPL's program input/output (used by tests).
func (r *REPL) SetIO(in io.Reader, out io.Writer) {
	r.in = in
	r.out = out
	r.bf.SetIO(in, out)
}

// Run starts the interactive loop and blocks until :quit or end of input.
func (r *REPL) Run() error {
	if r.config.ShowBanner {
		fmt.Fprintf(r.out, "brainfuck repl — :dump shows the tape, :reset clears it, :quit exits\n")
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, replHistoryFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(r.config.Prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(trimmed, ":") {
			if quit := r.metaCommand(trimmed); quit {
				return nil
			}
			continue
		}

		if err := r.Execute(trimmed); err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
	}
}

// Execute validates and runs one program against the persistent tape. A
// bracket error leaves the tape untouched.
func (r *REPL) Execute(src string) error {
	if err := CheckBrackets(strings.NewReader(src)); err != nil {
		return err
	}
	prog := ParseString(src)
	res, err := r.bf.RunProgram(context.Background(), prog, r.tape)
	if err != nil {
		return err
	}
	r.bf.Logger().DebugCat(CatExec, "ran %d steps, %d cells allocated", res.Steps, res.Cells)
	return nil
}

// metaCommand handles a :command line; returns true when the REPL should
// exit.
func (r *REPL) metaCommand(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q":
		return true
	case ":reset":
		r.tape.Reset()
		fmt.Fprintln(r.out, "tape reset")
	case ":dump":
		fmt.Fprintln(r.out, r.DumpTape())
	default:
		fmt.Fprintf(r.out, "unknown command %s (try :dump, :reset, :quit)\n", cmd)
	}
	return false
}

// DumpTape renders the allocated cells with the current cell marked.
func (r *REPL) DumpTape() string {
	cells, origin, cursor := r.tape.Snapshot()
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i == cursor {
			fmt.Fprintf(&b, "[%d]", c)
		} else {
			fmt.Fprintf(&b, "%d", c)
		}
	}
	fmt.Fprintf(&b, " (origin %d)", origin)
	return b.String()
}
