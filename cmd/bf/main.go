// bf runs a Brainfuck source file.
//
// Usage: bf [flags] <file.bf>
//
// The file must carry the .bf extension and have balanced loop brackets;
// anything else exits with status 1 before any program output. Defaults may
// be placed in a per-user config file (see loadFileConfig); flags win over
// the file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/tapevm/brainfuck"
)

var version = "dev" // set via -ldflags at build time

// fileConfig is the TOML shape of the per-user config file
type fileConfig struct {
	Debug    bool   `toml:"debug"`
	Trace    bool   `toml:"trace"`
	EOF      string `toml:"eof"`
	MaxCells int    `toml:"max_cells"`
}

// loadFileConfig reads <user-config-dir>/bf/bf.toml if it exists. A missing
// file is not an error; a malformed one is reported and ignored.
func loadFileConfig() fileConfig {
	var cfg fileConfig
	dir, err := os.UserConfigDir()
	if err != nil {
		return cfg
	}
	path := filepath.Join(dir, "bf", "bf.toml")
	if _, err := os.Stat(path); err != nil {
		return cfg
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring config file %s: %v\n", path, err)
		return fileConfig{}
	}
	return cfg
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fileCfg := loadFileConfig()

	fs := flag.NewFlagSet("bf", flag.ContinueOnError)
	usage := func() {
		fmt.Fprintf(os.Stderr, "Usage: bf [flags] <file.%s>\n", brainfuck.SourceExtension)
		fs.PrintDefaults()
	}
	fs.Usage = usage
	debug := fs.Bool("d", fileCfg.Debug, "enable debug logging")
	trace := fs.Bool("trace", fileCfg.Trace, "log every executed instruction")
	eof := fs.String("eof", fileCfg.EOF, "end-of-input behavior for ',': nochange, zero or allbits")
	maxCells := fs.Int("max-cells", fileCfg.MaxCells, "tape cell limit, 0 means unbounded")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if *showVersion {
		fmt.Println("bf", version)
		return 0
	}

	if fs.NArg() != 1 {
		usage()
		return 1
	}

	eofMode, err := brainfuck.ParseEOFMode(*eof)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	config := brainfuck.DefaultConfig()
	config.Debug = *debug
	config.Trace = *trace
	config.EOFMode = eofMode
	config.MaxCells = *maxCells

	bf := brainfuck.New(config)
	bf.SetIO(brainfuck.NewTerminalReader(os.Stdin), os.Stdout)

	if _, err := bf.RunFile(fs.Arg(0)); err != nil {
		switch {
		case errors.Is(err, brainfuck.ErrBadExtension):
			fmt.Fprintf(os.Stderr, "Invalid file extension. Please provide a '%s' file.\n", brainfuck.SourceExtension)
		case errors.Is(err, brainfuck.ErrUnmatchedBrackets):
			fmt.Fprintln(os.Stderr, "Error: Unmatched brackets")
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
