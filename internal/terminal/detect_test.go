package terminal

import (
	"bytes"
	"os"
	"testing"
)

func TestIsInteractive(t *testing.T) {
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })

	isTerminal = func(int) bool { return true }
	if !IsInteractive() {
		t.Fatal("expected interactive when both fds are terminals")
	}

	stdout := int(os.Stdout.Fd())
	isTerminal = func(fd int) bool { return fd != stdout }
	if IsInteractive() {
		t.Fatal("expected non-interactive when stdout is redirected")
	}
}

func TestIsTerminalWriter(t *testing.T) {
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })
	isTerminal = func(int) bool { return true }

	if IsTerminalWriter(&bytes.Buffer{}) {
		t.Fatal("a buffer is never a terminal")
	}
	if !IsTerminalWriter(os.Stderr) {
		t.Fatal("expected file writer to be checked with isTerminal")
	}
}
