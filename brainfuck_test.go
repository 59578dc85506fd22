package brainfuck

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunFile(t *testing.T) {
	path := writeSource(t, "hello.bf", helloWorld)

	bf := New(nil)
	var out bytes.Buffer
	bf.SetIO(nil, &out)

	res, err := bf.RunFile(path)
	if err != nil {
		t.Fatalf("RunFile failed: %v", err)
	}
	if out.String() != "Hello World!\n" {
		t.Errorf("Output %q, want %q", out.String(), "Hello World!\n")
	}
	if res.Steps == 0 {
		t.Error("Result reports zero steps")
	}
}

func TestRunFileBadExtension(t *testing.T) {
	path := writeSource(t, "hello.txt", "+++")

	_, err := New(nil).RunFile(path)
	if !errors.Is(err, ErrBadExtension) {
		t.Errorf("RunFile returned %v, want ErrBadExtension", err)
	}
}

func TestRunFileMissing(t *testing.T) {
	_, err := New(nil).RunFile(filepath.Join(t.TempDir(), "nope.bf"))
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("RunFile returned %v, want a wrapped os.ErrNotExist", err)
	}
}

func TestRunFileUnmatchedBrackets(t *testing.T) {
	path := writeSource(t, "bad.bf", "+++[")

	_, err := New(nil).RunFile(path)
	if !errors.Is(err, ErrUnmatchedBrackets) {
		t.Errorf("RunFile returned %v, want ErrUnmatchedBrackets", err)
	}
}

func TestRunValidatesBeforeExecuting(t *testing.T) {
	bf := New(nil)
	var out bytes.Buffer
	bf.SetIO(nil, &out)

	_, err := bf.Run([]byte(".]"))
	if !errors.Is(err, ErrUnmatchedBrackets) {
		t.Fatalf("Run returned %v, want ErrUnmatchedBrackets", err)
	}
	if out.Len() != 0 {
		t.Errorf("Rejected program produced output %q", out.String())
	}
}

func TestRunRespectsConfig(t *testing.T) {
	bf := New(&Config{EOFMode: EOFAllBits})
	var out bytes.Buffer
	bf.SetIO(nil, &out)

	if _, err := bf.Run([]byte(",.")); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 1 || out.Bytes()[0] != 255 {
		t.Errorf("Output %v, want the single byte 255", out.Bytes())
	}
}

func TestTraceWithoutDebug(t *testing.T) {
	bf := New(&Config{Trace: true})

	var logs bytes.Buffer
	bf.Logger().SetOutput(&logs, &logs)
	bf.SetIO(nil, nil)

	if _, err := bf.Run([]byte("+++.")); err != nil {
		t.Fatal(err)
	}

	if logs.Len() == 0 {
		t.Fatal("Trace enabled but nothing was logged")
	}
	if !strings.Contains(logs.String(), "[TRACE:exec]") {
		t.Errorf("Trace log %q lacks the exec trace prefix", logs.String())
	}
	if !strings.Contains(logs.String(), "step 3") {
		t.Errorf("Trace log %q lacks the final step line", logs.String())
	}
}

func TestRunReader(t *testing.T) {
	bf := New(nil)
	var out bytes.Buffer
	bf.SetIO(nil, &out)

	res, err := bf.RunReader(strings.NewReader(helloWorld))
	if err != nil {
		t.Fatalf("RunReader failed: %v", err)
	}
	if out.String() != "Hello World!\n" {
		t.Errorf("Output %q, want %q", out.String(), "Hello World!\n")
	}
	if res.Steps == 0 {
		t.Error("Result reports zero steps")
	}
}

func TestRunReaderUnmatchedBrackets(t *testing.T) {
	_, err := New(nil).RunReader(strings.NewReader("]["))
	if !errors.Is(err, ErrUnmatchedBrackets) {
		t.Errorf("RunReader returned %v, want ErrUnmatchedBrackets", err)
	}
}

func TestRunMaxCells(t *testing.T) {
	bf := New(&Config{MaxCells: 2})

	_, err := bf.Run([]byte(">>"))
	if !errors.Is(err, ErrTapeLimit) {
		t.Errorf("Run returned %v, want ErrTapeLimit", err)
	}
}
