package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/conn-castle/nftdeploy/internal/dfx"
	"github.com/conn-castle/nftdeploy/internal/messages"
)

// Network names with special meaning.
const (
	NetworkLocal      = "local"
	NetworkTest       = "test"
	NetworkIC         = "ic"
	NetworkProduction = "production"
)

// Install modes passed to dfx canister install.
const (
	ModeAuto      = "auto"
	ModeInstall   = "install"
	ModeUpgrade   = "upgrade"
	ModeReinstall = "reinstall"
)

var validModes = map[string]struct{}{
	ModeAuto:      {},
	ModeInstall:   {},
	ModeUpgrade:   {},
	ModeReinstall: {},
}

// RunOptions carries the command-line inputs of a deploy.
type RunOptions struct {
	// Network defaults to local.
	Network string
	// Mode defaults to auto.
	Mode        string
	WithCycles  string
	Yes         bool
	SkipBuild   bool
	SkipLaunch  bool
	ProjectRoot string
}

// Run is the immutable configuration of one deploy. It is built once by NewRun and
// passed by value to every component.
type Run struct {
	ID string
	// Network is the network name as requested; DFXNetwork is what dfx is told.
	Network    string
	DFXNetwork string
	Canister   string
	// IsProduction reports whether Canister is the production canister.
	IsProduction   bool
	AssetsCanister string
	InitArgsFile   string
	AssetsDir      string
	Mode           string
	WithCycles     string
	Yes            bool
	SkipBuild      bool
	SkipLaunch     bool
	ProjectRoot    string
	ChunkSize      int
	RetryAttempts  int
	RetryDelay     time.Duration
	Identity       dfx.Identity
}

// NewRun resolves the network, canister, init args and install mode for a deploy.
func NewRun(cfg *Config, opts RunOptions) (Run, error) {
	network := opts.Network
	if network == "" {
		network = NetworkLocal
	}
	if strings.ContainsFunc(network, isSpace) {
		return Run{}, fmt.Errorf(messages.RunNetworkInvalidFmt, network)
	}

	mode := opts.Mode
	if mode == "" {
		mode = ModeAuto
	}
	if _, ok := validModes[mode]; !ok {
		return Run{}, fmt.Errorf(messages.RunModeInvalidFmt, opts.Mode)
	}

	if opts.WithCycles != "" {
		n, err := strconv.ParseUint(opts.WithCycles, 10, 64)
		if err != nil || n == 0 {
			return Run{}, fmt.Errorf(messages.RunWithCyclesFmt, opts.WithCycles)
		}
	}

	delay, err := cfg.Upload.Delay()
	if err != nil {
		return Run{}, fmt.Errorf(messages.ConfigRetryDelayInvalidFmt, "config", cfg.Upload.RetryDelay, err)
	}

	run := Run{
		ID:             uuid.NewString(),
		Network:        network,
		DFXNetwork:     NetworkIC,
		Canister:       cfg.Deploy.StagingCanister,
		AssetsCanister: cfg.Deploy.AssetsCanister,
		Mode:           mode,
		WithCycles:     opts.WithCycles,
		Yes:            opts.Yes,
		SkipBuild:      opts.SkipBuild,
		SkipLaunch:     opts.SkipLaunch,
		ProjectRoot:    opts.ProjectRoot,
		ChunkSize:      cfg.Upload.ChunkSize,
		RetryAttempts:  cfg.Upload.RetryAttempts,
		RetryDelay:     delay,
	}
	initArgs := cfg.Deploy.InitArgs
	if network == NetworkLocal || network == NetworkTest {
		run.DFXNetwork = NetworkLocal
		initArgs = cfg.Deploy.InitArgsLocal
	}
	if network == NetworkProduction {
		run.Canister = cfg.Deploy.ProductionCanister
		run.IsProduction = true
	}

	if run.InitArgsFile, err = ResolvePath(opts.ProjectRoot, initArgs); err != nil {
		return Run{}, err
	}
	if run.AssetsDir, err = ResolvePath(opts.ProjectRoot, cfg.Deploy.AssetsDir); err != nil {
		return Run{}, err
	}
	return run, nil
}

// WithIdentity returns a copy of r bound to id.
func (r Run) WithIdentity(id dfx.Identity) Run {
	r.Identity = id
	return r
}

// IsLocal reports whether the run targets the local replica.
func (r Run) IsLocal() bool {
	return r.DFXNetwork == NetworkLocal
}

// IsReinstall reports whether the install wipes canister state.
func (r Run) IsReinstall() bool {
	return r.Mode == ModeReinstall
}

// InitCapEnabled reports whether initCap runs: only for the production canister on ic.
func (r Run) InitCapEnabled() bool {
	return r.DFXNetwork == NetworkIC && r.IsProduction
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
