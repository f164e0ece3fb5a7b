package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/nftdeploy/internal/dfx"
)

func TestNewRunNetworkMapping(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		network      string
		dfxNetwork   string
		canister     string
		initArgs     string
		initCap      bool
		isProduction bool
	}{
		{"", "local", "staging", "initArgs.local.did", false, false},
		{"local", "local", "staging", "initArgs.local.did", false, false},
		{"test", "local", "staging", "initArgs.local.did", false, false},
		{"ic", "ic", "staging", "initArgs.did", false, false},
		{"staging", "ic", "staging", "initArgs.did", false, false},
		{"production", "ic", "production", "initArgs.did", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.network, func(t *testing.T) {
			run, err := NewRun(Defaults(), RunOptions{Network: tt.network, ProjectRoot: root})
			require.NoError(t, err)
			assert.Equal(t, tt.dfxNetwork, run.DFXNetwork)
			assert.Equal(t, tt.canister, run.Canister)
			assert.Equal(t, filepath.Join(root, tt.initArgs), run.InitArgsFile)
			assert.Equal(t, tt.initCap, run.InitCapEnabled())
			assert.Equal(t, tt.isProduction, run.IsProduction)
			assert.Equal(t, tt.dfxNetwork == "local", run.IsLocal())
		})
	}
}

func TestNewRunDefaults(t *testing.T) {
	cfg := Defaults()
	cfg.Upload.RetryAttempts = 2
	cfg.Upload.RetryDelay = "1500ms"

	run, err := NewRun(cfg, RunOptions{ProjectRoot: "/work"})
	require.NoError(t, err)
	assert.Equal(t, "local", run.Network)
	assert.Equal(t, ModeAuto, run.Mode)
	assert.False(t, run.IsReinstall())
	assert.Equal(t, filepath.Join("/work", "assets"), run.AssetsDir)
	assert.Equal(t, "assets", run.AssetsCanister)
	assert.Equal(t, 1000, run.ChunkSize)
	assert.Equal(t, 2, run.RetryAttempts)
	assert.Equal(t, 1500*time.Millisecond, run.RetryDelay)
	assert.NotEmpty(t, run.ID)

	other, err := NewRun(cfg, RunOptions{ProjectRoot: "/work"})
	require.NoError(t, err)
	assert.NotEqual(t, run.ID, other.ID)
}

func TestNewRunModesAndCycles(t *testing.T) {
	run, err := NewRun(Defaults(), RunOptions{Mode: "reinstall", WithCycles: "2000000000000", Yes: true})
	require.NoError(t, err)
	assert.True(t, run.IsReinstall())
	assert.Equal(t, "2000000000000", run.WithCycles)
	assert.True(t, run.Yes)

	for _, mode := range []string{"install", "upgrade", "auto"} {
		run, err := NewRun(Defaults(), RunOptions{Mode: mode})
		require.NoError(t, err)
		assert.Equal(t, mode, run.Mode)
	}

	_, err = NewRun(Defaults(), RunOptions{Mode: "wipe"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid --mode "wipe"`)

	for _, cycles := range []string{"0", "-5", "lots"} {
		_, err = NewRun(Defaults(), RunOptions{WithCycles: cycles})
		require.Error(t, err, cycles)
		assert.Contains(t, err.Error(), "must be a positive integer")
	}

	_, err = NewRun(Defaults(), RunOptions{Network: "my net"})
	require.Error(t, err)
}

func TestRunWithIdentityCopies(t *testing.T) {
	run, err := NewRun(Defaults(), RunOptions{})
	require.NoError(t, err)

	bound := run.WithIdentity(dfx.Identity{Name: "deployer", Principal: "2vxsx-fae"})
	assert.Equal(t, "deployer", bound.Identity.Name)
	assert.Empty(t, run.Identity.Name)
}
