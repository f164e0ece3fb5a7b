// Package deploy builds and installs the NFT canister, uploads asset metadata and
// activates the canister.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/conn-castle/nftdeploy/internal/assets"
	"github.com/conn-castle/nftdeploy/internal/config"
	"github.com/conn-castle/nftdeploy/internal/dfx"
	"github.com/conn-castle/nftdeploy/internal/messages"
	"github.com/conn-castle/nftdeploy/internal/prompt"
	"github.com/conn-castle/nftdeploy/internal/upload"
)

// ErrReinstallDeclined is returned when the operator answers no to the reinstall prompt.
var ErrReinstallDeclined = errors.New(messages.DeployReinstallDeclined)

// CLI is the dfx surface the deployer drives. *dfx.Client implements it.
type CLI interface {
	Build(ctx context.Context, canister string, network string) error
	Install(ctx context.Context, opts dfx.InstallOptions) error
	CanisterID(ctx context.Context, canister string, network string) (string, error)
}

// Actor is the NFT canister as seen by the deployer. *canister.NFT implements it.
type Actor interface {
	upload.Actor
	Invoke(ctx context.Context, method string) error
}

// Options configures a Deployer.
type Options struct {
	Out    io.Writer
	Logger *zap.Logger
	// Confirmer is asked before a reinstall on a non-local network unless the run has Yes set.
	Confirmer prompt.Confirmer
}

// Deployer runs one deploy described by a config.Run.
type Deployer struct {
	run       config.Run
	cli       CLI
	actor     Actor
	out       io.Writer
	logger    *zap.Logger
	confirmer prompt.Confirmer
}

// New returns a Deployer for run.
func New(run config.Run, cli CLI, actor Actor, opts Options) *Deployer {
	d := &Deployer{
		run:       run,
		cli:       cli,
		actor:     actor,
		out:       opts.Out,
		logger:    opts.Logger,
		confirmer: opts.Confirmer,
	}
	if d.out == nil {
		d.out = io.Discard
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	d.logger = d.logger.With(zap.String("run_id", run.ID))
	return d
}

// plan is the validated input of the upload step.
type plan struct {
	index   *assets.Index
	entries []assets.Entry
	locator *assets.Locator
}

// Deploy runs the whole pipeline: validate, build, install, upload, launch.
// Nothing is built or called remotely until the asset directory validates.
func (d *Deployer) Deploy(ctx context.Context) error {
	d.printHeader()

	p, err := d.prepare(ctx)
	if err != nil {
		return err
	}

	if d.run.SkipBuild {
		_, _ = color.New(color.FgYellow).Fprintln(d.out, messages.DeploySkipBuild)
	} else {
		yes, err := d.confirmReinstall()
		if err != nil {
			return err
		}
		if err := d.install(ctx, yes); err != nil {
			return err
		}
	}

	uploader, err := upload.New(d.actor, p.locator, upload.Options{
		ChunkSize: d.run.ChunkSize,
		Retry:     upload.RetryPolicy{Attempts: d.run.RetryAttempts, Delay: d.run.RetryDelay},
		Out:       d.out,
		Logger:    d.logger,
	})
	if err != nil {
		return err
	}
	if _, err := uploader.Run(ctx, p.index.HasPlaceholder(), p.entries); err != nil {
		return err
	}

	if d.run.SkipLaunch {
		_, _ = color.New(color.FgYellow).Fprintln(d.out, messages.DeploySkipLaunch)
	} else if err := d.Launch(ctx); err != nil {
		return err
	}

	_, _ = color.New(color.FgGreen).Fprintln(d.out, messages.DeployDone)
	return nil
}

func (d *Deployer) printHeader() {
	yellow := color.New(color.FgYellow)
	if d.run.IsReinstall() {
		_, _ = yellow.Fprintln(d.out, messages.DeployReinstallMode)
	}
	_, _ = yellow.Fprintf(d.out, messages.DeployIdentityFmt+"\n", d.run.Identity.Name)
	_, _ = yellow.Fprintf(d.out, messages.DeployControllerFmt+"\n", d.run.Identity.Principal)
	_, _ = yellow.Fprintf(d.out, messages.DeployCanisterFmt+"\n", d.run.Canister)
	_, _ = yellow.Fprintf(d.out, messages.DeployNetworkFmt+"\n", d.run.DFXNetwork)
}

// prepare indexes the asset directory, loads metadata.json and checks that every entry
// has both files and that the assets canister id resolves.
func (d *Deployer) prepare(ctx context.Context) (plan, error) {
	_, _ = color.New(color.FgGreen).Fprintln(d.out, messages.DeployValidating)

	index, err := assets.ScanDir(d.run.AssetsDir)
	if err != nil {
		return plan{}, err
	}
	_, _ = fmt.Fprintf(d.out, messages.DeployFoundAssetsFmt+"\n", index.Len(), d.run.AssetsDir)

	entries, err := assets.LoadMetadata(filepath.Join(d.run.AssetsDir, assets.MetadataFile))
	if err != nil {
		return plan{}, err
	}
	if err := index.Validate(entries); err != nil {
		return plan{}, err
	}

	canisterID, err := d.cli.CanisterID(ctx, d.run.AssetsCanister, d.run.DFXNetwork)
	if err != nil {
		return plan{}, fmt.Errorf("%w: "+messages.DeployAssetsIDFailedFmt, assets.ErrMissingAsset, err)
	}
	_, _ = fmt.Fprintf(d.out, messages.DeployAssetsCanisterFmt+"\n", canisterID)
	d.logger.Debug("assets validated",
		zap.Int("files", index.Len()),
		zap.Int("entries", len(entries)),
		zap.String("assets_canister", canisterID))

	return plan{
		index:   index,
		entries: entries,
		locator: assets.NewLocator(index, canisterID, d.run.IsLocal()),
	}, nil
}

// confirmReinstall reports whether dfx should be passed --yes. Local reinstalls never
// prompt; elsewhere the operator must confirm or have passed --yes.
func (d *Deployer) confirmReinstall() (bool, error) {
	if !d.run.IsReinstall() {
		return d.run.Yes, nil
	}
	if d.run.IsLocal() || d.run.Yes {
		return true, nil
	}
	if d.confirmer == nil {
		return false, fmt.Errorf(messages.DeployReinstallNeedsYes, d.run.DFXNetwork)
	}
	ok, err := d.confirmer.Confirm(fmt.Sprintf(messages.DeployReinstallTitle, d.run.Canister, d.run.DFXNetwork))
	if err != nil {
		if errors.Is(err, prompt.ErrNotInteractive) {
			return false, fmt.Errorf(messages.DeployReinstallNeedsYes, d.run.DFXNetwork)
		}
		return false, err
	}
	if !ok {
		return false, ErrReinstallDeclined
	}
	return true, nil
}

func (d *Deployer) install(ctx context.Context, yes bool) error {
	_, _ = color.New(color.FgYellow).Fprintf(d.out, messages.DeployInitArgsFmt+"\n", d.run.InitArgsFile)

	_, _ = color.New(color.FgGreen).Fprintln(d.out, messages.DeployBuilding)
	if err := d.cli.Build(ctx, d.run.Canister, d.run.DFXNetwork); err != nil {
		return fmt.Errorf(messages.DeployBuildFailedFmt, d.run.Canister, err)
	}

	_, _ = color.New(color.FgGreen).Fprintln(d.out, messages.DeployInstalling)
	err := d.cli.Install(ctx, dfx.InstallOptions{
		Canister:     d.run.Canister,
		Network:      d.run.DFXNetwork,
		ArgumentFile: d.run.InitArgsFile,
		Mode:         d.run.Mode,
		Yes:          yes,
		WithCycles:   d.run.WithCycles,
	})
	if err != nil {
		return fmt.Errorf(messages.DeployInstallFailedFmt, d.run.Canister, err)
	}
	return nil
}
