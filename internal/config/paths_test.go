package config

import (
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func TestDefaultPath(t *testing.T) {
	root := t.TempDir()
	if got := DefaultPath(root); got != filepath.Join(root, "nftdeploy.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
}

func TestResolvePath(t *testing.T) {
	root := t.TempDir()

	got, err := ResolvePath(root, "assets")
	if err != nil {
		t.Fatalf("ResolvePath error: %v", err)
	}
	if got != filepath.Join(root, "assets") {
		t.Fatalf("unexpected relative resolution: %s", got)
	}

	abs := filepath.Join(root, "elsewhere", "..", "abs")
	got, err = ResolvePath("/ignored", abs)
	if err != nil {
		t.Fatalf("ResolvePath error: %v", err)
	}
	if got != filepath.Join(root, "abs") {
		t.Fatalf("unexpected absolute resolution: %s", got)
	}

	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err = ResolvePath(root, "~/nft/assets")
	if err != nil {
		t.Fatalf("ResolvePath error: %v", err)
	}
	if got != filepath.Join(home, "nft", "assets") {
		t.Fatalf("unexpected home expansion: %s", got)
	}
}
