package upload

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/conn-castle/nftdeploy/internal/assets"
	"github.com/conn-castle/nftdeploy/internal/messages"
)

// ErrIncompleteUpload reports indices that were never confirmed by the canister.
var ErrIncompleteUpload = errors.New("incomplete upload")

// IncompleteError lists the indices still pending when an upload stopped. Cause is
// the remote error that stopped it, or nil when every chunk call returned but
// indices remained.
type IncompleteError struct {
	Pending []int
	Cause   error
}

func (e *IncompleteError) Error() string {
	msg := fmt.Sprintf(messages.UploadIncompleteFmt, joinIndices(e.Pending))
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Is matches ErrIncompleteUpload.
func (e *IncompleteError) Is(target error) bool {
	return target == ErrIncompleteUpload
}

func (e *IncompleteError) Unwrap() error {
	return e.Cause
}

func joinIndices(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ", ")
}

// PendingSet tracks indices not yet confirmed uploaded.
type PendingSet struct {
	indices map[int]struct{}
}

// NewPendingSet returns a set holding the index of every entry.
func NewPendingSet(entries []assets.Entry) *PendingSet {
	p := &PendingSet{indices: make(map[int]struct{}, len(entries))}
	for _, e := range entries {
		p.indices[e.Index] = struct{}{}
	}
	return p
}

// Confirm removes the entries' indices.
func (p *PendingSet) Confirm(entries []assets.Entry) {
	for _, e := range entries {
		delete(p.indices, e.Index)
	}
}

// Len returns the number of pending indices.
func (p *PendingSet) Len() int {
	return len(p.indices)
}

// Indices returns the pending indices in ascending order.
func (p *PendingSet) Indices() []int {
	out := make([]int, 0, len(p.indices))
	for idx := range p.indices {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}
