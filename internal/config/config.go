// Package config loads nftdeploy.toml and resolves the immutable per-run settings.
package config

import "time"

// FileName is the project config file looked up in the project root.
const FileName = "nftdeploy.toml"

// Intersection strategies accepted by holders.intersection.
const (
	IntersectionMin        = "min"
	IntersectionMembership = "membership"
)

// RegistryCount is the number of registries the holder aggregator combines.
const RegistryCount = 3

// MaxChunkSize mirrors the canister's addAssets batch limit.
const MaxChunkSize = 1000

// Config is the decoded nftdeploy.toml.
type Config struct {
	DFX     DFXConfig     `toml:"dfx"`
	Deploy  DeployConfig  `toml:"deploy"`
	Upload  UploadConfig  `toml:"upload"`
	Holders HoldersConfig `toml:"holders"`
}

// DFXConfig locates the dfx executable.
type DFXConfig struct {
	Binary string `toml:"binary"`
}

// DeployConfig names the canisters and files the deployer works with.
type DeployConfig struct {
	AssetsDir          string `toml:"assets_dir"`
	ProductionCanister string `toml:"production_canister"`
	StagingCanister    string `toml:"staging_canister"`
	AssetsCanister     string `toml:"assets_canister"`
	InitArgsLocal      string `toml:"init_args_local"`
	InitArgs           string `toml:"init_args"`
}

// UploadConfig tunes the metadata uploader.
type UploadConfig struct {
	ChunkSize     int    `toml:"chunk_size"`
	RetryAttempts int    `toml:"retry_attempts"`
	RetryDelay    string `toml:"retry_delay"`
}

// Delay returns RetryDelay as a duration. Validate rejects unparsable values, so a
// validated config never yields an error here.
func (u UploadConfig) Delay() (time.Duration, error) {
	if u.RetryDelay == "" {
		return 0, nil
	}
	return time.ParseDuration(u.RetryDelay)
}

// HoldersConfig configures the holder aggregator.
type HoldersConfig struct {
	Network      string           `toml:"network"`
	OutDir       string           `toml:"out_dir"`
	Intersection string           `toml:"intersection"`
	Registries   []RegistryConfig `toml:"registries"`
	Outputs      OutputsConfig    `toml:"outputs"`
}

// RegistryConfig is one registry canister. Order matters: the first registry feeds the
// unique-holder list, the other two the union.
type RegistryConfig struct {
	Name       string `toml:"name"`
	CanisterID string `toml:"canister_id"`
}

// OutputsConfig names the three holder artifacts.
type OutputsConfig struct {
	Trilogy string `toml:"trilogy"`
	First   string `toml:"first"`
	Union   string `toml:"union"`
}

// Defaults returns the built-in configuration used when no config file exists.
func Defaults() *Config {
	return &Config{
		DFX: DFXConfig{Binary: "dfx"},
		Deploy: DeployConfig{
			AssetsDir:          "assets",
			ProductionCanister: "production",
			StagingCanister:    "staging",
			AssetsCanister:     "assets",
			InitArgsLocal:      "initArgs.local.did",
			InitArgs:           "initArgs.did",
		},
		Upload: UploadConfig{
			ChunkSize:     MaxChunkSize,
			RetryAttempts: 1,
			RetryDelay:    "0s",
		},
		Holders: HoldersConfig{
			Network:      "ic",
			OutDir:       ".",
			Intersection: IntersectionMin,
			Registries: []RegistryConfig{
				{Name: "btc-flower", CanisterID: "pk6rk-6aaaa-aaaae-qaazq-cai"},
				{Name: "eth-flower", CanisterID: "dhiaa-ryaaa-aaaae-qabva-cai"},
				{Name: "icp-flower", CanisterID: "4ggk4-mqaaa-aaaae-qad6q-cai"},
			},
			Outputs: OutputsConfig{
				Trilogy: "holders-trilogy.txt",
				First:   "holders-btc-flower.txt",
				Union:   "holders-icp-eth-flower.txt",
			},
		},
	}
}

// applyDefaults fills every unset field from Defaults.
func (c *Config) applyDefaults() {
	d := Defaults()
	setDefault(&c.DFX.Binary, d.DFX.Binary)

	setDefault(&c.Deploy.AssetsDir, d.Deploy.AssetsDir)
	setDefault(&c.Deploy.ProductionCanister, d.Deploy.ProductionCanister)
	setDefault(&c.Deploy.StagingCanister, d.Deploy.StagingCanister)
	setDefault(&c.Deploy.AssetsCanister, d.Deploy.AssetsCanister)
	setDefault(&c.Deploy.InitArgsLocal, d.Deploy.InitArgsLocal)
	setDefault(&c.Deploy.InitArgs, d.Deploy.InitArgs)

	if c.Upload.ChunkSize == 0 {
		c.Upload.ChunkSize = d.Upload.ChunkSize
	}
	if c.Upload.RetryAttempts == 0 {
		c.Upload.RetryAttempts = d.Upload.RetryAttempts
	}
	setDefault(&c.Upload.RetryDelay, d.Upload.RetryDelay)

	setDefault(&c.Holders.Network, d.Holders.Network)
	setDefault(&c.Holders.OutDir, d.Holders.OutDir)
	setDefault(&c.Holders.Intersection, d.Holders.Intersection)
	if len(c.Holders.Registries) == 0 {
		c.Holders.Registries = d.Holders.Registries
	}
	setDefault(&c.Holders.Outputs.Trilogy, d.Holders.Outputs.Trilogy)
	setDefault(&c.Holders.Outputs.First, d.Holders.Outputs.First)
	setDefault(&c.Holders.Outputs.Union, d.Holders.Outputs.Union)
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
