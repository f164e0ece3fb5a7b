package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/conn-castle/nftdeploy/internal/testutil"
)

func TestMainVersion(t *testing.T) {
	var out bytes.Buffer
	if err := execute([]string{"nftdeploy", "--version"}, &out, &out); err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(out.String(), Version) {
		t.Fatalf("expected version output, got %q", out.String())
	}
}

func TestMainUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	err := execute([]string{"nftdeploy", "unknown"}, &out, &out)
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunMainSuccess(t *testing.T) {
	var out bytes.Buffer
	called := false
	runMain([]string{"nftdeploy", "--version"}, &out, &out, func(code int) {
		called = true
	})
	if called {
		t.Fatalf("unexpected exit")
	}
}

func TestRunMainError(t *testing.T) {
	var out bytes.Buffer
	code := 0
	runMain([]string{"nftdeploy", "unknown"}, &out, &out, func(exitCode int) {
		code = exitCode
	})
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out.String(), "Error: unknown command") {
		t.Fatalf("expected error output, got %q", out.String())
	}
}

func TestRunMainPropagatesChildExitCode(t *testing.T) {
	stub := testutil.WriteStubWithExit(t, t.TempDir(), "dfx", 7)
	childErr := exec.Command(stub).Run()
	var exitErr *exec.ExitError
	if !errors.As(childErr, &exitErr) {
		t.Fatalf("expected exit error from stub, got %v", childErr)
	}

	orig := executeFunc
	t.Cleanup(func() { executeFunc = orig })
	executeFunc = func([]string, io.Writer, io.Writer) error { return childErr }

	var out bytes.Buffer
	code := 0
	runMain([]string{"nftdeploy", "deploy"}, &out, &out, func(c int) { code = c })
	if code != 7 {
		t.Fatalf("expected exit code 7, got %d", code)
	}
}

func TestRunMainSilentExit(t *testing.T) {
	orig := executeFunc
	t.Cleanup(func() { executeFunc = orig })
	executeFunc = func([]string, io.Writer, io.Writer) error { return &SilentExitError{Code: 4} }

	var out bytes.Buffer
	code := 0
	runMain([]string{"nftdeploy"}, &out, &out, func(c int) { code = c })
	if code != 4 {
		t.Fatalf("expected exit code 4, got %d", code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestMainCallsExecute(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	os.Args = []string{"nftdeploy", "--version"}
	main()
}

func TestVersionString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	t.Cleanup(func() {
		Version, Commit, BuildDate = origVersion, origCommit, origDate
	})

	Version, Commit, BuildDate = "v1.2.0", "unknown", "unknown"
	if got := versionString(); got != "v1.2.0" {
		t.Fatalf("unexpected version %q", got)
	}

	Commit, BuildDate = "abc123", "2026-01-02"
	if got := versionString(); got != "v1.2.0 (commit abc123, built 2026-01-02)" {
		t.Fatalf("unexpected version %q", got)
	}
}

func TestExitCode(t *testing.T) {
	if got := exitCode(errors.New("boom")); got != 1 {
		t.Fatalf("expected 1 for plain error, got %d", got)
	}
	if got := exitCode(fmt.Errorf("wrapped: %w", &SilentExitError{Code: 5})); got != 5 {
		t.Fatalf("expected 5 for silent exit, got %d", got)
	}
}
