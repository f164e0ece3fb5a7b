package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/nftdeploy/internal/assets"
	"github.com/conn-castle/nftdeploy/internal/canister"
)

type fakeActor struct {
	placeholders []canister.AssetRecord
	batches      [][]canister.AssetRecord
	// failOn maps a 1-based addAssets call number to the error it returns.
	failOn map[int]error
	calls  int
}

func (f *fakeActor) AddPlaceholder(_ context.Context, record canister.AssetRecord) error {
	f.placeholders = append(f.placeholders, record)
	return nil
}

func (f *fakeActor) AddAssets(_ context.Context, records []canister.AssetRecord) error {
	f.calls++
	if err, ok := f.failOn[f.calls]; ok {
		return err
	}
	f.batches = append(f.batches, records)
	return nil
}

type mapLocator map[string]string

func (m mapLocator) URL(key string) (string, error) {
	url, ok := m[key]
	if !ok {
		return "", fmt.Errorf("%w: file '%s' not found", assets.ErrMissingAsset, key)
	}
	return url, nil
}

func fixture(n int) ([]assets.Entry, mapLocator) {
	entries := make([]assets.Entry, n)
	loc := mapLocator{assets.PlaceholderKey: "https://x/placeholder.mp4"}
	for i := range entries {
		entries[i] = assets.Entry{Index: i, Metadata: json.RawMessage(fmt.Sprintf(`{"n":%d}`, i))}
		loc[assets.AssetKey(i)] = fmt.Sprintf("https://x/%d.svg", i)
		loc[assets.ThumbnailKey(i)] = fmt.Sprintf("https://x/%d_thumbnail.png", i)
	}
	return entries, loc
}

func TestUploadMetadataChunksAndConfirmsEveryIndex(t *testing.T) {
	entries, loc := fixture(2500)
	actor := &fakeActor{}
	var out bytes.Buffer
	u, err := New(actor, loc, Options{Out: &out})
	require.NoError(t, err)

	res, err := u.UploadMetadata(context.Background(), entries)
	require.NoError(t, err)
	assert.Equal(t, Result{Chunks: 3, Uploaded: 2500}, res)

	require.Len(t, actor.batches, 3)
	assert.Len(t, actor.batches[0], 1000)
	assert.Len(t, actor.batches[1], 1000)
	assert.Len(t, actor.batches[2], 500)
	assert.Equal(t, "1000", actor.batches[1][0].Name)
	assert.Equal(t, "https://x/1000.svg", actor.batches[1][0].PayloadURL)
	assert.Equal(t, "https://x/1000_thumbnail.png", actor.batches[1][0].ThumbnailURL)
	assert.Equal(t, `{"n":1000}`, string(actor.batches[1][0].Metadata))

	text := out.String()
	assert.Contains(t, text, "Chunks: 3")
	assert.Contains(t, text, "Uploaded metadata: 1000")
	assert.Contains(t, text, "Uploaded metadata: 2500")
	assert.Contains(t, text, "All assets metadata uploaded")
}

func TestUploadMetadataEmpty(t *testing.T) {
	actor := &fakeActor{}
	u, err := New(actor, mapLocator{}, Options{})
	require.NoError(t, err)

	res, err := u.UploadMetadata(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Chunks)
	assert.Zero(t, actor.calls)
}

func TestUploadMetadataChunkFailureNamesPendingIndices(t *testing.T) {
	entries, loc := fixture(5)
	remote := errors.New("canister rejected")
	actor := &fakeActor{failOn: map[int]error{2: remote}}
	var out bytes.Buffer
	u, err := New(actor, loc, Options{ChunkSize: 2, Out: &out})
	require.NoError(t, err)

	res, err := u.UploadMetadata(context.Background(), entries)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrIncompleteUpload)
	require.ErrorIs(t, err, remote)

	var incomplete *IncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []int{2, 3, 4}, incomplete.Pending)
	assert.Contains(t, err.Error(), "failed to upload metadata for 2, 3, 4")
	assert.Contains(t, err.Error(), "upload chunk 2 (indices 2-3)")

	assert.Equal(t, 2, res.Uploaded)
	assert.Len(t, actor.batches, 1, "the chunk accepted before the failure stays accepted")
	assert.Equal(t, 2, actor.calls, "no chunk is sent after a failure")
	assert.NotContains(t, out.String(), "All assets metadata uploaded")
}

func TestUploadMetadataMissingAssetStopsBeforeSending(t *testing.T) {
	entries, loc := fixture(3)
	delete(loc, assets.ThumbnailKey(1))
	actor := &fakeActor{}
	u, err := New(actor, loc, Options{})
	require.NoError(t, err)

	_, err = u.UploadMetadata(context.Background(), entries)
	require.ErrorIs(t, err, assets.ErrMissingAsset)
	assert.Contains(t, err.Error(), "file '1_thumbnail' not found")
	assert.Zero(t, actor.calls)
}

func TestUploadMetadataRetriesWithinPolicy(t *testing.T) {
	entries, loc := fixture(3)
	actor := &fakeActor{failOn: map[int]error{1: errors.New("timeout")}}
	var out bytes.Buffer
	u, err := New(actor, loc, Options{Retry: RetryPolicy{Attempts: 2, Delay: time.Second}, Out: &out})
	require.NoError(t, err)
	var slept []time.Duration
	u.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	res, err := u.UploadMetadata(context.Background(), entries)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Uploaded)
	assert.Equal(t, 2, actor.calls)
	assert.Equal(t, []time.Duration{time.Second}, slept)
	assert.Contains(t, out.String(), "Chunk 1 failed (attempt 1/2)")
}

func TestUploadMetadataDefaultPolicyDoesNotRetry(t *testing.T) {
	entries, loc := fixture(3)
	actor := &fakeActor{failOn: map[int]error{1: errors.New("timeout")}}
	u, err := New(actor, loc, Options{})
	require.NoError(t, err)
	u.sleep = func(context.Context, time.Duration) error {
		t.Fatal("unexpected retry")
		return nil
	}

	_, err = u.UploadMetadata(context.Background(), entries)
	require.ErrorIs(t, err, ErrIncompleteUpload)
	assert.Equal(t, 1, actor.calls)
}

func TestUploadMetadataRepeatedRunIssuesSameCalls(t *testing.T) {
	entries, loc := fixture(1200)
	actor := &fakeActor{}
	u, err := New(actor, loc, Options{})
	require.NoError(t, err)

	_, err = u.UploadMetadata(context.Background(), entries)
	require.NoError(t, err)
	_, err = u.UploadMetadata(context.Background(), entries)
	require.NoError(t, err)
	require.Len(t, actor.batches, 4)
	assert.Equal(t, actor.batches[0], actor.batches[2])
	assert.Equal(t, actor.batches[1], actor.batches[3])
}

func TestRunSendsPlaceholderOnceBeforeChunks(t *testing.T) {
	entries, loc := fixture(2)
	actor := &fakeActor{}
	var out bytes.Buffer
	u, err := New(actor, loc, Options{Out: &out})
	require.NoError(t, err)

	res, err := u.Run(context.Background(), true, entries)
	require.NoError(t, err)
	assert.True(t, res.Placeholder)
	require.Len(t, actor.placeholders, 1)
	assert.Equal(t, canister.AssetRecord{Name: "placeholder", PayloadURL: "https://x/placeholder.mp4"}, actor.placeholders[0])
	assert.Contains(t, out.String(), "Uploading placeholder...")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("Uploading placeholder...")), bytes.Index(out.Bytes(), []byte("Chunks: 1")))
}

func TestRunWithoutPlaceholder(t *testing.T) {
	entries, loc := fixture(2)
	actor := &fakeActor{}
	var out bytes.Buffer
	u, err := New(actor, loc, Options{Out: &out})
	require.NoError(t, err)

	res, err := u.Run(context.Background(), false, entries)
	require.NoError(t, err)
	assert.False(t, res.Placeholder)
	assert.Empty(t, actor.placeholders)
	assert.Contains(t, out.String(), "No placeholder.")
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := New(nil, mapLocator{}, Options{})
	require.Error(t, err)
	_, err = New(&fakeActor{}, nil, Options{})
	require.Error(t, err)
	_, err = New(&fakeActor{}, mapLocator{}, Options{ChunkSize: MaxChunkSize + 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 1 and 1000")
	_, err = New(&fakeActor{}, mapLocator{}, Options{ChunkSize: -1})
	require.Error(t, err)
}

func TestSleepContextHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
	require.NoError(t, sleepContext(context.Background(), 0))
}

func TestPendingSet(t *testing.T) {
	p := NewPendingSet([]assets.Entry{{Index: 4}, {Index: 1}, {Index: 9}})
	assert.Equal(t, 3, p.Len())
	p.Confirm([]assets.Entry{{Index: 4}})
	assert.Equal(t, []int{1, 9}, p.Indices())
	assert.Equal(t, "failed to upload metadata for 1, 9", (&IncompleteError{Pending: p.Indices()}).Error())
}
