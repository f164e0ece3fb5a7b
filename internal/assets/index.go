// Package assets indexes the asset directory and loads the metadata uploaded to the
// NFT canister.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/conn-castle/nftdeploy/internal/messages"
)

// PlaceholderKey is the basename of the optional placeholder asset.
const PlaceholderKey = "placeholder"

// MetadataFile is the metadata array inside the asset directory.
const MetadataFile = "metadata.json"

// ErrMissingAsset reports an asset file or assets canister id that cannot be resolved.
var ErrMissingAsset = errors.New("missing asset")

// Index maps logical asset keys (file basenames without extension) to file names.
// Keys shared by several files are ambiguous and resolve to nothing.
type Index struct {
	dir       string
	files     map[string]string
	ambiguous map[string][]string
	count     int
}

// ScanDir indexes the regular files directly inside dir. Files sharing a basename only
// fail a later Validate when their key is one a deploy needs.
func ScanDir(dir string) (*Index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf(messages.AssetsReadDirFmt, dir, err)
	}
	ix := &Index{dir: dir, files: make(map[string]string, len(entries)), ambiguous: map[string][]string{}}
	for _, entry := range entries {
		info, err := os.Lstat(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf(messages.AssetsStatFmt, entry.Name(), err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		name := entry.Name()
		key := strings.TrimSuffix(name, filepath.Ext(name))
		ix.count++
		if names, ok := ix.ambiguous[key]; ok {
			ix.ambiguous[key] = append(names, name)
			continue
		}
		if prev, ok := ix.files[key]; ok {
			delete(ix.files, key)
			ix.ambiguous[key] = []string{prev, name}
			continue
		}
		ix.files[key] = name
	}
	return ix, nil
}

// NewIndex builds an index from key to file name pairs.
func NewIndex(dir string, files map[string]string) *Index {
	copied := make(map[string]string, len(files))
	for k, v := range files {
		copied[k] = v
	}
	return &Index{dir: dir, files: copied, ambiguous: map[string][]string{}, count: len(copied)}
}

// Dir returns the indexed directory.
func (ix *Index) Dir() string {
	return ix.dir
}

// Len returns the number of regular files found.
func (ix *Index) Len() int {
	return ix.count
}

// Lookup returns the file name for key.
func (ix *Index) Lookup(key string) (string, bool) {
	name, ok := ix.files[key]
	return name, ok
}

// HasPlaceholder reports whether a placeholder asset exists.
func (ix *Index) HasPlaceholder() bool {
	_, ok := ix.files[PlaceholderKey]
	return ok
}

// AssetKey returns the lookup key of an entry's asset file.
func AssetKey(index int) string {
	return strconv.Itoa(index)
}

// ThumbnailKey returns the lookup key of an entry's thumbnail file.
func ThumbnailKey(index int) string {
	return strconv.Itoa(index) + "_thumbnail"
}

// Validate checks that every entry has exactly one asset and one thumbnail file and
// that the placeholder, when present, is unambiguous. A missing key wraps
// ErrMissingAsset and the error names every missing key.
func (ix *Index) Validate(entries []Entry) error {
	if err := ix.checkAmbiguous(PlaceholderKey); err != nil {
		return err
	}
	for _, e := range entries {
		for _, key := range []string{AssetKey(e.Index), ThumbnailKey(e.Index)} {
			if err := ix.checkAmbiguous(key); err != nil {
				return err
			}
		}
	}

	var missing []string
	for _, e := range entries {
		for _, key := range []string{AssetKey(e.Index), ThumbnailKey(e.Index)} {
			if _, ok := ix.files[key]; !ok {
				missing = append(missing, key)
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.SliceStable(missing, func(i, j int) bool { return lessKey(missing[i], missing[j]) })
	return fmt.Errorf(messages.AssetsMissingFmt, ErrMissingAsset, strings.Join(missing, ", "))
}

func (ix *Index) checkAmbiguous(key string) error {
	names, ok := ix.ambiguous[key]
	if !ok {
		return nil
	}
	return fmt.Errorf(messages.AssetsAmbiguousFmt, names[0], names[1], key)
}

// lessKey orders "2" < "2_thumbnail" < "10".
func lessKey(a string, b string) bool {
	an, _ := strconv.Atoi(strings.TrimSuffix(a, "_thumbnail"))
	bn, _ := strconv.Atoi(strings.TrimSuffix(b, "_thumbnail"))
	if an != bn {
		return an < bn
	}
	return a < b
}
