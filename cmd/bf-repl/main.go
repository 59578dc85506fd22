// bf-repl is an interactive Brainfuck session on a persistent tape.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tapevm/brainfuck"
)

func main() {
	debug := flag.Bool("d", false, "enable debug logging")
	eof := flag.String("eof", "", "end-of-input behavior for ',': nochange, zero or allbits")
	maxCells := flag.Int("max-cells", 0, "tape cell limit, 0 means unbounded")
	flag.Parse()

	eofMode, err := brainfuck.ParseEOFMode(*eof)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	repl := brainfuck.NewREPL(brainfuck.REPLConfig{
		Debug:      *debug,
		EOFMode:    eofMode,
		MaxCells:   *maxCells,
		ShowBanner: true,
	})
	if err := repl.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
