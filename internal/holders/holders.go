// Package holders fetches three NFT registries and writes the combined holder lists.
package holders

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/conn-castle/nftdeploy/internal/messages"
)

// SourceCount is the number of registries an Aggregator combines.
const SourceCount = 3

// Outputs names the three artifact files, relative to the output directory.
type Outputs struct {
	Trilogy string
	First   string
	Union   string
}

// Options configures an Aggregator.
type Options struct {
	Strategy Strategy
	Parallel bool
	// DryRun prints a diff per artifact instead of writing.
	DryRun  bool
	OutDir  string
	Outputs Outputs
	Out     io.Writer
	Logger  *zap.Logger
}

// Aggregator runs one holder aggregation.
type Aggregator struct {
	sources []Source
	opts    Options
}

// New returns an Aggregator over exactly three sources. The first source feeds the
// unique-holder list, the second and third the union.
func New(sources []Source, opts Options) (*Aggregator, error) {
	if len(sources) != SourceCount {
		return nil, fmt.Errorf(messages.HoldersSourcesFmt, SourceCount, len(sources))
	}
	if opts.Strategy == "" {
		opts.Strategy = StrategyMin
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Aggregator{sources: sources, opts: opts}, nil
}

// Run fetches, aggregates and writes (or previews) the artifacts. A fetch failure
// returns before any file is touched.
func (a *Aggregator) Run(ctx context.Context) (Result, error) {
	snapshots, err := Fetch(ctx, a.sources, a.opts.Parallel, a.opts.Out, a.opts.Logger)
	if err != nil {
		return Result{}, err
	}
	first, second, third := Project(snapshots[0].Holdings), Project(snapshots[1].Holdings), Project(snapshots[2].Holdings)
	res := Aggregate(a.opts.Strategy, first, second, third)

	_, _ = fmt.Fprintf(a.opts.Out, messages.HoldersTrilogyCountFmt+"\n", len(res.Trilogy))
	_, _ = fmt.Fprintf(a.opts.Out, messages.HoldersFirstCountFmt+"\n", snapshots[0].Name, len(res.First))
	_, _ = fmt.Fprintf(a.opts.Out, messages.HoldersUnionCountFmt+"\n", snapshots[1].Name, snapshots[2].Name, len(res.Union))
	a.opts.Logger.Debug("holders aggregated",
		zap.String("strategy", string(a.opts.Strategy)),
		zap.Int("trilogy", len(res.Trilogy)),
		zap.Int("first", len(res.First)),
		zap.Int("union", len(res.Union)))

	artifacts := a.Artifacts(res)
	if a.opts.DryRun {
		return res, a.preview(artifacts)
	}
	return res, a.write(artifacts)
}

// Artifacts returns the files Run writes for res.
func (a *Aggregator) Artifacts(res Result) []Artifact {
	return []Artifact{
		{Path: filepath.Join(a.opts.OutDir, a.opts.Outputs.Trilogy), Content: Format(res.Trilogy)},
		{Path: filepath.Join(a.opts.OutDir, a.opts.Outputs.First), Content: Format(res.First)},
		{Path: filepath.Join(a.opts.OutDir, a.opts.Outputs.Union), Content: Format(res.Union)},
	}
}

func (a *Aggregator) write(artifacts []Artifact) error {
	if err := os.MkdirAll(a.opts.OutDir, 0o755); err != nil {
		return fmt.Errorf(messages.HoldersCreateOutDirFmt, a.opts.OutDir, err)
	}
	green := color.New(color.FgGreen)
	for _, art := range artifacts {
		if err := writeFileAtomic(art.Path, art.Content); err != nil {
			return err
		}
		_, _ = green.Fprintf(a.opts.Out, messages.HoldersWroteFmt+"\n", art.Path)
	}
	return nil
}

func (a *Aggregator) preview(artifacts []Artifact) error {
	yellow := color.New(color.FgYellow)
	for _, art := range artifacts {
		diff, _, err := art.Diff(DiffMaxLines)
		if err != nil {
			return err
		}
		if diff == "" {
			_, _ = fmt.Fprintf(a.opts.Out, messages.HoldersUnchangedFmt+"\n", art.Path)
			continue
		}
		_, _ = yellow.Fprintf(a.opts.Out, messages.HoldersDryRunHeaderFmt+"\n", art.Path)
		_, _ = fmt.Fprint(a.opts.Out, diff)
	}
	return nil
}
