package holders

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/conn-castle/nftdeploy/internal/canister"
	"github.com/conn-castle/nftdeploy/internal/messages"
)

// ErrFetch wraps any registry fetch failure.
var ErrFetch = errors.New("registry fetch failed")

// Source is a registry canister. *canister.Registry implements it.
type Source interface {
	Name() string
	CanisterID() string
	GetRegistry(ctx context.Context) ([]canister.Holding, error)
}

// Snapshot is one fetched registry.
type Snapshot struct {
	Name     string
	Holdings []canister.Holding
}

// Fetch reads every source. Results keep the order of sources even when fetched in
// parallel; any failure fails the whole fetch.
func Fetch(ctx context.Context, sources []Source, parallel bool, out io.Writer, logger *zap.Logger) ([]Snapshot, error) {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	green := color.New(color.FgGreen)
	snapshots := make([]Snapshot, len(sources))

	fetchOne := func(ctx context.Context, i int) error {
		src := sources[i]
		start := time.Now()
		rows, err := src.GetRegistry(ctx)
		if err != nil {
			return fmt.Errorf("%w: "+messages.HoldersFetchFailedFmt, ErrFetch, src.Name(), src.CanisterID(), err)
		}
		snapshots[i] = Snapshot{Name: src.Name(), Holdings: rows}
		logger.Debug("registry fetched",
			zap.String("registry", src.Name()),
			zap.Int("tokens", len(rows)),
			zap.Duration("took", time.Since(start)))
		return nil
	}

	if !parallel {
		for i, src := range sources {
			_, _ = green.Fprintf(out, messages.HoldersFetchingFmt+"\n", src.Name(), src.CanisterID())
			if err := fetchOne(ctx, i); err != nil {
				return nil, err
			}
			_, _ = fmt.Fprintf(out, messages.HoldersFetchedFmt+"\n", len(snapshots[i].Holdings), src.Name())
		}
		return snapshots, nil
	}

	for _, src := range sources {
		_, _ = green.Fprintf(out, messages.HoldersFetchingFmt+"\n", src.Name(), src.CanisterID())
	}
	g, gctx := errgroup.WithContext(ctx)
	for i := range sources {
		g.Go(func() error {
			return fetchOne(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, s := range snapshots {
		_, _ = fmt.Fprintf(out, messages.HoldersFetchedFmt+"\n", len(s.Holdings), s.Name)
	}
	return snapshots, nil
}
