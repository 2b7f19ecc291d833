package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// captureStdout redirects os.Stdout for the duration of fn and returns what
// was written, the same technique the teacher's CLI tests use to assert on
// printed output without reaching into cobra's command internals.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("io.Copy: %v", err)
	}
	return buf.String()
}

func resetRunFlags() {
	evalExpr = ""
	deviceSpec = ""
	outputPath = ""
	presetName = ""
	configPath = ""
	pageWidth = 0
	pageHeight = 0
	trace = false
}

func TestRunEvalSumGoesToBufferSilently(t *testing.T) {
	resetRunFlags()
	evalExpr = "1 2 add"

	out := captureStdout(t, func() {
		if err := runScript(nil, nil); err != nil {
			t.Fatalf("runScript: %v", err)
		}
	})
	if out != "" {
		t.Fatalf("got %q, want no stdout output for a plain eval run", out)
	}
}

func TestRunEvalWithTracePrintsSnapshot(t *testing.T) {
	resetRunFlags()
	evalExpr = "1 2 add"
	trace = true

	out := captureStdout(t, func() {
		if err := runScript(nil, nil); err != nil {
			t.Fatalf("runScript: %v", err)
		}
	})
	snaps.MatchSnapshot(t, out)
}

func TestRunMissingInputErrors(t *testing.T) {
	resetRunFlags()
	if err := runScript(nil, nil); err == nil {
		t.Fatal("expected an error when neither a file nor -e is given")
	}
}
