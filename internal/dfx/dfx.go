// Package dfx wraps the dfx command-line tool used to build, install and call canisters.
package dfx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/conn-castle/nftdeploy/internal/messages"
)

// EnvBinary overrides the dfx executable resolved from config.
const EnvBinary = "NFTDEPLOY_DFX"

// ResolveBinary returns the dfx executable to run: $NFTDEPLOY_DFX when set, else configured.
func ResolveBinary(configured string) string {
	if v := strings.TrimSpace(os.Getenv(EnvBinary)); v != "" {
		return v
	}
	return configured
}

// CommandError reports a failed dfx invocation. It unwraps to the underlying
// *exec.ExitError so callers can propagate the child's exit code.
type CommandError struct {
	Args []string
	Code int
	Err  error
}

func (e *CommandError) Error() string {
	joined := strings.Join(e.Args, " ")
	if e.Code > 0 {
		return fmt.Sprintf(messages.DFXCommandExitFmt, joined, e.Code)
	}
	return fmt.Sprintf(messages.DFXCommandFailedFmt, joined, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Options configures a Client.
type Options struct {
	// Dir is the working directory for every invocation (the dfx project root).
	Dir string
	// Stdin is forwarded to commands that may prompt (install). Nil leaves stdin closed.
	Stdin io.Reader
	// Stdout receives the echoed output of build, install and launch commands.
	Stdout io.Writer
	// Stderr receives dfx diagnostics for every command.
	Stderr io.Writer
	Logger *zap.Logger
}

// Client runs dfx subcommands. A Client is immutable; WithIdentity returns a copy.
type Client struct {
	sys      System
	path     string
	dir      string
	identity string
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	logger   *zap.Logger
}

// New resolves binary on PATH and returns a Client.
func New(sys System, binary string, opts Options) (*Client, error) {
	if sys == nil {
		return nil, errors.New(messages.DFXSystemRequired)
	}
	path, err := sys.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf(messages.DFXNotFoundFmt, binary, err, EnvBinary)
	}
	c := &Client{
		sys:    sys,
		path:   path,
		dir:    opts.Dir,
		stdin:  opts.Stdin,
		stdout: opts.Stdout,
		stderr: opts.Stderr,
		logger: opts.Logger,
	}
	if c.stdout == nil {
		c.stdout = io.Discard
	}
	if c.stderr == nil {
		c.stderr = io.Discard
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c, nil
}

// WithIdentity returns a copy of c that passes --identity name on every call.
func (c *Client) WithIdentity(name string) *Client {
	cp := *c
	cp.identity = name
	return &cp
}

// IdentityName returns the identity passed to dfx, or "" for the dfx default.
func (c *Client) IdentityName() string {
	return c.identity
}

// Build runs `dfx build <canister> --network <network>`.
func (c *Client) Build(ctx context.Context, canister string, network string) error {
	return c.exec(ctx, []string{"build", canister, "--network", network})
}

// InstallOptions describes a `dfx canister install` invocation.
type InstallOptions struct {
	Canister     string
	Network      string
	ArgumentFile string
	// Mode is passed as --mode; empty means auto.
	Mode string
	// Yes skips the dfx confirmation prompt for reinstalls.
	Yes        bool
	WithCycles string
}

// Install runs `dfx canister install`.
func (c *Client) Install(ctx context.Context, opts InstallOptions) error {
	mode := opts.Mode
	if mode == "" {
		mode = "auto"
	}
	args := []string{
		"canister", "install", opts.Canister,
		"--argument-file", opts.ArgumentFile,
		"--network", opts.Network,
		"--mode=" + mode,
	}
	if opts.Yes {
		args = append(args, "--yes")
	}
	if opts.WithCycles != "" {
		args = append(args, "--with-cycles="+opts.WithCycles)
	}
	return c.exec(ctx, args)
}

// CallOptions describes a `dfx canister call` invocation.
type CallOptions struct {
	Canister string
	Method   string
	Network  string
	// ArgumentFile holds candid text arguments; empty calls the method without arguments.
	ArgumentFile string
	Query        bool
}

// Call runs `dfx canister --network <network> call <canister> <method>` and returns
// the candid reply printed by dfx.
func (c *Client) Call(ctx context.Context, opts CallOptions) ([]byte, error) {
	args := []string{"canister", "--network", opts.Network, "call"}
	if opts.Query {
		args = append(args, "--query")
	}
	if opts.ArgumentFile != "" {
		args = append(args, "--argument-file", opts.ArgumentFile)
	}
	args = append(args, opts.Canister, opts.Method)
	return c.output(ctx, args)
}

// CanisterID resolves the id of a canister declared in dfx.json for network.
func (c *Client) CanisterID(ctx context.Context, canister string, network string) (string, error) {
	out, err := c.output(ctx, []string{"canister", "--network", network, "id", canister})
	if err != nil {
		return "", fmt.Errorf(messages.DFXCanisterIDFmt, canister, network, err)
	}
	id := strings.TrimSpace(string(out))
	if id == "" {
		return "", fmt.Errorf(messages.DFXCanisterIDFmt, canister, network, fmt.Errorf(messages.DFXEmptyOutputFmt, "canister id"))
	}
	return id, nil
}

// exec runs dfx with stdin forwarded and stdout echoed.
func (c *Client) exec(ctx context.Context, args []string) error {
	return c.run(ctx, args, c.stdin, c.stdout)
}

// output runs dfx and returns its stdout.
func (c *Client) output(ctx context.Context, args []string) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.run(ctx, args, nil, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Client) run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	full := args
	if c.identity != "" {
		full = append([]string{"--identity", c.identity}, args...)
	}
	start := time.Now()
	c.logger.Debug("dfx start", zap.Strings("args", full))
	err := c.sys.Run(ctx, Process{
		Path:   c.path,
		Args:   full,
		Dir:    c.dir,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: c.stderr,
	})
	c.logger.Debug("dfx done", zap.Strings("args", full), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
	if err == nil {
		return nil
	}
	cmdErr := &CommandError{Args: full, Err: err}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.Code = exitErr.ExitCode()
	}
	return cmdErr
}
