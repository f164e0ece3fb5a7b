package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/conn-castle/nftdeploy/internal/messages"
)

var validIntersections = map[string]struct{}{
	IntersectionMin:        {},
	IntersectionMembership: {},
}

// Validate ensures the config is complete and consistent. Defaults must already be applied.
func (c *Config) Validate(path string) error {
	if strings.TrimSpace(c.DFX.Binary) == "" {
		return fmt.Errorf(messages.ConfigDFXBinaryRequiredFmt, path)
	}
	if err := c.Deploy.validate(path); err != nil {
		return err
	}
	if err := c.Upload.validate(path); err != nil {
		return err
	}
	return c.Holders.validate(path)
}

func (d DeployConfig) validate(path string) error {
	if strings.TrimSpace(d.AssetsDir) == "" {
		return fmt.Errorf(messages.ConfigAssetsDirRequiredFmt, path)
	}
	canisters := []struct {
		key   string
		value string
	}{
		{"production_canister", d.ProductionCanister},
		{"staging_canister", d.StagingCanister},
		{"assets_canister", d.AssetsCanister},
		{"init_args_local", d.InitArgsLocal},
		{"init_args", d.InitArgs},
	}
	for _, c := range canisters {
		if strings.TrimSpace(c.value) == "" {
			return fmt.Errorf(messages.ConfigCanisterRequiredFmt, path, c.key)
		}
	}
	if d.ProductionCanister == d.StagingCanister {
		return fmt.Errorf(messages.ConfigCanistersDistinctFmt, path, d.ProductionCanister)
	}
	return nil
}

func (u UploadConfig) validate(path string) error {
	if u.ChunkSize < 1 || u.ChunkSize > MaxChunkSize {
		return fmt.Errorf(messages.ConfigChunkSizeRangeFmt, path, MaxChunkSize, u.ChunkSize)
	}
	if u.RetryAttempts < 1 {
		return fmt.Errorf(messages.ConfigRetryAttemptsFmt, path, u.RetryAttempts)
	}
	delay, err := time.ParseDuration(u.RetryDelay)
	if err != nil {
		return fmt.Errorf(messages.ConfigRetryDelayInvalidFmt, path, u.RetryDelay, err)
	}
	if delay < 0 {
		return fmt.Errorf(messages.ConfigRetryDelayNegativeFmt, path, delay)
	}
	return nil
}

func (h HoldersConfig) validate(path string) error {
	if strings.TrimSpace(h.Network) == "" {
		return fmt.Errorf(messages.ConfigHoldersNetworkRequiredFmt, path)
	}
	if _, ok := validIntersections[h.Intersection]; !ok {
		return fmt.Errorf(messages.ConfigIntersectionInvalidFmt, path, h.Intersection)
	}
	if len(h.Registries) != RegistryCount {
		return fmt.Errorf(messages.ConfigRegistryCountFmt, path, RegistryCount, len(h.Registries))
	}
	seen := make(map[string]int, len(h.Registries))
	for i, r := range h.Registries {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf(messages.ConfigRegistryNameRequiredFmt, path, i)
		}
		if strings.TrimSpace(r.CanisterID) == "" {
			return fmt.Errorf(messages.ConfigRegistryIDRequiredFmt, path, i)
		}
		if first, ok := seen[r.Name]; ok {
			return fmt.Errorf(messages.ConfigRegistryDuplicateFmt, path, i, r.Name, first)
		}
		seen[r.Name] = i
	}

	outputs := []struct {
		key   string
		value string
	}{
		{"trilogy", h.Outputs.Trilogy},
		{"first", h.Outputs.First},
		{"union", h.Outputs.Union},
	}
	written := make(map[string]string, len(outputs))
	for _, o := range outputs {
		if strings.TrimSpace(o.value) == "" {
			return fmt.Errorf(messages.ConfigOutputRequiredFmt, path, o.key)
		}
		if other, ok := written[o.value]; ok {
			return fmt.Errorf(messages.ConfigOutputsDistinctFmt, path, other, o.key, o.value)
		}
		written[o.value] = o.key
	}
	return nil
}
