// Package root locates the dfx project a command runs in.
package root

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/conn-castle/nftdeploy/internal/messages"
)

// ProjectMarker is the file that marks a dfx project root.
const ProjectMarker = "dfx.json"

// FindProjectRoot searches upwards from start for a directory containing dfx.json.
func FindProjectRoot(start string) (string, bool, error) {
	if start == "" {
		return "", false, errors.New(messages.RootStartRequired)
	}
	dir := filepath.Clean(start)
	for {
		marker := filepath.Join(dir, ProjectMarker)
		info, err := os.Stat(marker)
		switch {
		case err == nil:
			if !info.Mode().IsRegular() {
				return "", false, fmt.Errorf(messages.RootMarkerNotFileFmt, marker)
			}
			return dir, true, nil
		case !errors.Is(err, os.ErrNotExist):
			return "", false, fmt.Errorf(messages.RootStatMarkerFmt, marker, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// ResolveProjectRoot returns the dfx project containing start, or start itself when
// there is none.
func ResolveProjectRoot(start string) (string, error) {
	dir, found, err := FindProjectRoot(start)
	if err != nil {
		return "", err
	}
	if !found {
		return filepath.Clean(start), nil
	}
	return dir, nil
}
