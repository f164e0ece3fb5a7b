package dfx

import (
	"context"
	"io"
	"os/exec"
)

// Process describes a single dfx invocation.
type Process struct {
	Path   string
	Args   []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// System abstracts process execution so the client can be tested without a real dfx.
type System interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, p Process) error
}

// RealSystem implements System with os/exec.
type RealSystem struct{}

// LookPath searches for an executable named file in the directories named by PATH.
func (RealSystem) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run starts the process and waits for it to exit. Cancelling ctx kills the child.
func (RealSystem) Run(ctx context.Context, p Process) error {
	cmd := exec.CommandContext(ctx, p.Path, p.Args...)
	cmd.Dir = p.Dir
	cmd.Stdin = p.Stdin
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr
	return cmd.Run()
}
