package holders

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/conn-castle/nftdeploy/internal/messages"
)

// DiffMaxLines caps a dry-run diff preview.
const DiffMaxLines = 200

// Format renders holders as quoted entries, each terminated by ";", one per line.
// An empty list renders as an empty file.
func Format(holders []string) string {
	if len(holders) == 0 {
		return ""
	}
	return `"` + strings.Join(holders, "\";\n\"") + `";`
}

// Artifact is one output file and its new content.
type Artifact struct {
	Path    string
	Content string
}

// writeFileAtomic replaces path with content via a temp file in the same directory.
func writeFileAtomic(path string, content string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf(messages.HoldersWriteFailedFmt, path, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpPath)
	}
	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf(messages.HoldersWriteFailedFmt, path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf(messages.HoldersWriteFailedFmt, path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf(messages.HoldersWriteFailedFmt, path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf(messages.HoldersWriteFailedFmt, path, err)
	}
	return nil
}

// readExisting returns the current content of path, or "" when it does not exist.
func readExisting(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf(messages.HoldersReadExistingFmt, path, err)
	}
	return string(data), nil
}

// Diff renders a unified diff from the file on disk to a's content, truncated to
// maxLines. An empty result means the file is unchanged.
func (a Artifact) Diff(maxLines int) (string, bool, error) {
	current, err := readExisting(a.Path)
	if err != nil {
		return "", false, err
	}
	if current == a.Content {
		return "", false, nil
	}
	name := filepath.Base(a.Path)
	diff := udiff.Unified(name+" (current)", name+" (new)", withNewline(current), withNewline(a.Content))
	if diff == "" {
		return "", false, nil
	}
	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = append(lines[:maxLines:maxLines], fmt.Sprintf("... (truncated to %d lines)", maxLines))
		return strings.Join(lines, "\n") + "\n", true, nil
	}
	return strings.Join(lines, "\n") + "\n", false, nil
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
