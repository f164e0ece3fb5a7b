// Package upload pushes asset metadata to the NFT canister in bounded batches and
// verifies that every entry was accepted.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/conn-castle/nftdeploy/internal/assets"
	"github.com/conn-castle/nftdeploy/internal/canister"
	"github.com/conn-castle/nftdeploy/internal/messages"
)

// MaxChunkSize is the largest batch addAssets accepts in one call.
const MaxChunkSize = 1000

// Actor is the subset of the NFT canister the uploader calls.
type Actor interface {
	AddPlaceholder(ctx context.Context, record canister.AssetRecord) error
	AddAssets(ctx context.Context, records []canister.AssetRecord) error
}

// Locator resolves asset keys to URLs.
type Locator interface {
	URL(key string) (string, error)
}

// RetryPolicy bounds how often a failed chunk call is repeated.
// Attempts counts the first call; values below 1 mean 1.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// Options configures an Uploader.
type Options struct {
	// ChunkSize defaults to MaxChunkSize.
	ChunkSize int
	Retry     RetryPolicy
	Out       io.Writer
	Logger    *zap.Logger
}

// Result summarises a completed upload.
type Result struct {
	Placeholder bool
	Chunks      int
	Uploaded    int
}

// Uploader sends metadata chunks one at a time; the next chunk is only sent after the
// previous call returned.
type Uploader struct {
	actor     Actor
	locator   Locator
	chunkSize int
	retry     RetryPolicy
	out       io.Writer
	logger    *zap.Logger
	sleep     func(ctx context.Context, d time.Duration) error
}

// New returns an Uploader.
func New(actor Actor, locator Locator, opts Options) (*Uploader, error) {
	if actor == nil {
		return nil, errors.New(messages.UploadActorRequired)
	}
	if locator == nil {
		return nil, errors.New(messages.UploadLocatorRequired)
	}
	size := opts.ChunkSize
	if size == 0 {
		size = MaxChunkSize
	}
	if size < 1 || size > MaxChunkSize {
		return nil, fmt.Errorf(messages.UploadChunkSizeFmt, MaxChunkSize, size)
	}
	u := &Uploader{
		actor:     actor,
		locator:   locator,
		chunkSize: size,
		retry:     opts.Retry,
		out:       opts.Out,
		logger:    opts.Logger,
		sleep:     sleepContext,
	}
	if u.retry.Attempts < 1 {
		u.retry.Attempts = 1
	}
	if u.out == nil {
		u.out = io.Discard
	}
	if u.logger == nil {
		u.logger = zap.NewNop()
	}
	return u, nil
}

// Run uploads the placeholder when present, then every entry.
func (u *Uploader) Run(ctx context.Context, hasPlaceholder bool, entries []assets.Entry) (Result, error) {
	placed, err := u.UploadPlaceholder(ctx, hasPlaceholder)
	if err != nil {
		return Result{}, err
	}
	res, err := u.UploadMetadata(ctx, entries)
	res.Placeholder = placed
	return res, err
}

// UploadPlaceholder sends the placeholder record with its own addPlaceholder call.
// It reports whether a call was made.
func (u *Uploader) UploadPlaceholder(ctx context.Context, present bool) (bool, error) {
	if !present {
		_, _ = color.New(color.FgYellow).Fprintln(u.out, messages.UploadNoPlaceholder)
		return false, nil
	}
	_, _ = color.New(color.FgGreen).Fprintln(u.out, messages.UploadPlaceholder)
	url, err := u.locator.URL(assets.PlaceholderKey)
	if err != nil {
		return false, fmt.Errorf(messages.UploadPlaceholderFmt, err)
	}
	record := canister.AssetRecord{Name: assets.PlaceholderKey, PayloadURL: url}
	if err := u.actor.AddPlaceholder(ctx, record); err != nil {
		return false, fmt.Errorf(messages.UploadPlaceholderFmt, err)
	}
	return true, nil
}

// UploadMetadata sends entries in order, in chunks of at most the configured size.
//
// A missing asset aborts before the offending chunk is sent. A failed chunk call
// returns an *IncompleteError wrapping the remote error. Chunks already accepted stay
// on the canister either way.
func (u *Uploader) UploadMetadata(ctx context.Context, entries []assets.Entry) (Result, error) {
	green := color.New(color.FgGreen)
	_, _ = green.Fprintln(u.out, messages.UploadStarting)
	_, _ = green.Fprintf(u.out, messages.UploadFoundFmt+"\n", len(entries))

	pending := NewPendingSet(entries)
	chunks := assets.Chunk(entries, u.chunkSize)
	_, _ = fmt.Fprintf(u.out, messages.UploadChunksFmt+"\n", len(chunks))

	res := Result{Chunks: len(chunks)}
	for i, chunk := range chunks {
		records, err := u.records(chunk)
		if err != nil {
			return res, err
		}
		err = u.withRetry(ctx, i+1, func() error {
			return u.actor.AddAssets(ctx, records)
		})
		if err != nil {
			first, last := chunk[0].Index, chunk[len(chunk)-1].Index
			return res, &IncompleteError{
				Pending: pending.Indices(),
				Cause:   fmt.Errorf(messages.UploadChunkFailedFmt, i+1, first, last, err),
			}
		}
		pending.Confirm(chunk)
		res.Uploaded += len(chunk)
		_, _ = fmt.Fprintf(u.out, messages.UploadProgressFmt+"\n", res.Uploaded)
		u.logger.Info("chunk uploaded",
			zap.Int("chunk", i+1),
			zap.Int("size", len(chunk)),
			zap.Int("pending", pending.Len()))
	}

	if pending.Len() > 0 {
		return res, &IncompleteError{Pending: pending.Indices()}
	}
	_, _ = green.Fprintln(u.out, messages.UploadAllDone)
	return res, nil
}

// records builds the wire records of one chunk.
func (u *Uploader) records(chunk []assets.Entry) ([]canister.AssetRecord, error) {
	records := make([]canister.AssetRecord, len(chunk))
	for i, e := range chunk {
		payloadURL, err := u.locator.URL(assets.AssetKey(e.Index))
		if err != nil {
			return nil, err
		}
		thumbnailURL, err := u.locator.URL(assets.ThumbnailKey(e.Index))
		if err != nil {
			return nil, err
		}
		records[i] = canister.AssetRecord{
			Name:         assets.AssetKey(e.Index),
			Metadata:     e.Metadata,
			PayloadURL:   payloadURL,
			ThumbnailURL: thumbnailURL,
		}
	}
	return records, nil
}

func (u *Uploader) withRetry(ctx context.Context, chunk int, call func() error) error {
	for attempt := 1; ; attempt++ {
		err := call()
		if err == nil || attempt >= u.retry.Attempts || ctx.Err() != nil {
			return err
		}
		_, _ = color.New(color.FgYellow).Fprintf(u.out, messages.UploadRetryFmt+"\n", chunk, attempt, u.retry.Attempts, err, u.retry.Delay)
		if serr := u.sleep(ctx, u.retry.Delay); serr != nil {
			return errors.Join(err, serr)
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
