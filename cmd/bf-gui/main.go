// bf-gui - Brainfuck interpreter with a Fyne tape visualizer
// Runs a program while showing the tape, the data pointer, and the output.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tapevm/brainfuck"
)

// tapeWindow is how many cells around the data pointer are rendered
const tapeWindow = 16

// refreshEvery throttles tape-view updates; programs execute millions of
// steps per second and the UI cannot keep up with one refresh per step.
const refreshEvery = 50 * time.Millisecond

// GuiState holds the running program's state shared with the Fyne widgets
type GuiState struct {
	mu         sync.Mutex
	mainWindow fyne.Window
	tapeView   *widget.Label
	outputView *widget.Entry
	statusBar  *widget.Label
	runBtn     *widget.Button
	stopBtn    *widget.Button

	bf      *brainfuck.Interpreter
	prog    *brainfuck.Program
	tape    *brainfuck.Tape
	cancel  context.CancelFunc
	running bool

	output      strings.Builder
	lastRefresh time.Time
}

var guiState *GuiState

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: bf-gui <file.%s>\n", brainfuck.SourceExtension)
		os.Exit(1)
	}
	path := os.Args[1]

	if !brainfuck.ValidExtension(path) {
		fmt.Fprintf(os.Stderr, "Invalid file extension. Please provide a '%s' file.\n", brainfuck.SourceExtension)
		os.Exit(1)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading program: %v\n", err)
		os.Exit(1)
	}
	if err := brainfuck.CheckBrackets(strings.NewReader(string(src))); err != nil {
		fmt.Fprintln(os.Stderr, "Error: Unmatched brackets")
		os.Exit(1)
	}

	fyneApp := app.New()
	mainWindow := fyneApp.NewWindow("bf-gui — " + path)
	mainWindow.Resize(fyne.NewSize(640, 420))

	guiState = &GuiState{
		mainWindow: mainWindow,
		tapeView:   widget.NewLabel(""),
		outputView: widget.NewMultiLineEntry(),
		statusBar:  widget.NewLabel("ready"),
		bf:         brainfuck.New(brainfuck.DefaultConfig()),
		prog:       brainfuck.ParseString(string(src)),
	}
	guiState.tapeView.TextStyle = fyne.TextStyle{Monospace: true}
	guiState.outputView.Disable()

	guiState.runBtn = widget.NewButton("Run", func() { startRun() })
	guiState.stopBtn = widget.NewButton("Stop", func() { stopRun() })
	guiState.stopBtn.Disable()

	toolbar := container.NewHBox(guiState.runBtn, guiState.stopBtn)
	content := container.NewBorder(
		container.NewVBox(toolbar, guiState.tapeView),
		guiState.statusBar,
		nil, nil,
		container.NewVScroll(guiState.outputView),
	)
	mainWindow.SetContent(content)
	mainWindow.ShowAndRun()
}

// startRun launches the program on a fresh tape in a background goroutine
func startRun() {
	guiState.mu.Lock()
	if guiState.running {
		guiState.mu.Unlock()
		return
	}
	guiState.running = true
	guiState.output.Reset()
	ctx, cancel := context.WithCancel(context.Background())
	guiState.cancel = cancel
	guiState.mu.Unlock()

	guiState.runBtn.Disable()
	guiState.stopBtn.Enable()
	guiState.statusBar.SetText("running")
	guiState.outputView.SetText("")

	bf := guiState.bf
	bf.SetIO(nil, outputSink{})
	bf.SetStepFunc(onStep)
	guiState.tape = bf.NewTape()

	go func() {
		res, err := bf.RunProgram(ctx, guiState.prog, guiState.tape)

		guiState.mu.Lock()
		guiState.running = false
		text := guiState.output.String()
		guiState.mu.Unlock()

		fyne.Do(func() {
			guiState.outputView.SetText(text)
			guiState.runBtn.Enable()
			guiState.stopBtn.Disable()
			if err != nil {
				guiState.statusBar.SetText(fmt.Sprintf("stopped: %v", err))
			} else {
				guiState.statusBar.SetText(fmt.Sprintf("done: %d steps, %d cells", res.Steps, res.Cells))
			}
		})
	}()
}

// stopRun cancels the running program
func stopRun() {
	guiState.mu.Lock()
	if guiState.cancel != nil {
		guiState.cancel()
	}
	guiState.mu.Unlock()
}

// outputSink collects program output for the output view
type outputSink struct{}

func (outputSink) Write(p []byte) (int, error) {
	guiState.mu.Lock()
	guiState.output.Write(p)
	text := guiState.output.String()
	last := guiState.lastRefresh
	guiState.mu.Unlock()

	if time.Since(last) >= refreshEvery {
		markRefreshed()
		fyne.Do(func() {
			guiState.outputView.SetText(text)
		})
	}
	return len(p), nil
}

// onStep feeds the tape view, throttled to refreshEvery. It runs on the
// executor's goroutine, so reading the tape here is safe.
func onStep(info brainfuck.StepInfo) {
	guiState.mu.Lock()
	last := guiState.lastRefresh
	guiState.mu.Unlock()
	if time.Since(last) < refreshEvery {
		return
	}
	markRefreshed()

	cells, origin, cursor := guiState.tape.Snapshot()
	view := renderTape(info, cells, origin, cursor)
	fyne.Do(func() {
		guiState.tapeView.SetText(view)
	})
}

func markRefreshed() {
	guiState.mu.Lock()
	guiState.lastRefresh = time.Now()
	guiState.mu.Unlock()
}

// renderTape draws a window of allocated cells around the data pointer with
// the current cell bracketed
func renderTape(info brainfuck.StepInfo, cells []byte, origin, cursor int) string {
	lo := cursor - tapeWindow/2
	if lo < 0 {
		lo = 0
	}
	hi := lo + tapeWindow
	if hi > len(cells) {
		hi = len(cells)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "step %-10d ip %-6d offsets %d..%d\n", info.Step, info.IP, lo-origin, hi-1-origin)
	for i := lo; i < hi; i++ {
		if i == cursor {
			fmt.Fprintf(&b, "[%3d]", cells[i])
		} else {
			fmt.Fprintf(&b, " %3d ", cells[i])
		}
	}
	return b.String()
}
