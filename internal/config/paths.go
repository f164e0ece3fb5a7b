package config

import (
	"fmt"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/nftdeploy/internal/messages"
)

// DefaultPath returns the config file location for a project root.
func DefaultPath(root string) string {
	return filepath.Join(root, FileName)
}

// ResolvePath expands a leading ~ and makes relative paths relative to root.
func ResolvePath(root string, path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandPathFmt, path, err)
	}
	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}
	return filepath.Join(root, expanded), nil
}
