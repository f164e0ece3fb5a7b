package assets

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/conn-castle/nftdeploy/internal/messages"
)

// LocalReplicaHost serves canisters on the local dfx replica.
const LocalReplicaHost = "http://localhost:4943"

// URL returns where the assets canister serves file. Local replicas address the
// canister by query parameter; the IC uses the raw subdomain.
func URL(local bool, canisterID string, file string) string {
	escaped := (&url.URL{Path: file}).EscapedPath()
	if local {
		return fmt.Sprintf("%s/%s?canisterId=%s", LocalReplicaHost, escaped, url.QueryEscape(canisterID))
	}
	return fmt.Sprintf("https://%s.raw.icp0.io/%s", canisterID, escaped)
}

// Locator resolves asset keys to URLs served by the assets canister.
type Locator struct {
	index      *Index
	canisterID string
	local      bool
}

// NewLocator returns a Locator for files in index served by canisterID.
func NewLocator(index *Index, canisterID string, local bool) *Locator {
	return &Locator{index: index, canisterID: canisterID, local: local}
}

// URL returns the URL of the file indexed under key. It fails with ErrMissingAsset
// when the file is not indexed or the canister id is unknown.
func (l *Locator) URL(key string) (string, error) {
	file, ok := l.index.Lookup(key)
	if !ok {
		return "", fmt.Errorf(messages.AssetsMissingFmt, ErrMissingAsset, fmt.Sprintf(messages.AssetsFileNotFoundFmt, key))
	}
	if l.canisterID == "" {
		return "", fmt.Errorf("%w: %w", ErrMissingAsset, errors.New(messages.AssetsCanisterIDEmpty))
	}
	return URL(l.local, l.canisterID, file), nil
}
