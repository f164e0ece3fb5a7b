package messages

// Config messages for configuration loading, validation and run setup.
const (
	// ConfigReadFileFmt formats config file read errors.
	ConfigReadFileFmt         = "read config file %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "%s contains unrecognized keys: %v"
	ConfigValidationGuidance  = "(fix nftdeploy.toml or remove the offending keys)"
	ConfigExpandPathFmt       = "expand path %q: %w"

	ConfigDFXBinaryRequiredFmt      = "%s: dfx.binary must not be empty"
	ConfigAssetsDirRequiredFmt      = "%s: deploy.assets_dir must not be empty"
	ConfigCanisterRequiredFmt       = "%s: deploy.%s must not be empty"
	ConfigCanistersDistinctFmt      = "%s: deploy.production_canister and deploy.staging_canister must differ (both %q)"
	ConfigChunkSizeRangeFmt         = "%s: upload.chunk_size must be between 1 and %d, got %d"
	ConfigRetryAttemptsFmt          = "%s: upload.retry_attempts must be at least 1, got %d"
	ConfigRetryDelayInvalidFmt      = "%s: upload.retry_delay %q is not a valid duration: %v"
	ConfigRetryDelayNegativeFmt     = "%s: upload.retry_delay must not be negative, got %s"
	ConfigHoldersNetworkRequiredFmt = "%s: holders.network must not be empty"
	ConfigIntersectionInvalidFmt    = "%s: holders.intersection must be min or membership, got %q"
	ConfigRegistryCountFmt          = "%s: holders.registries must list exactly %d registries, got %d"
	ConfigRegistryNameRequiredFmt   = "%s: holders.registries[%d].name is required"
	ConfigRegistryIDRequiredFmt     = "%s: holders.registries[%d].canister_id is required"
	ConfigRegistryDuplicateFmt      = "%s: holders.registries[%d].name %q duplicates holders.registries[%d].name"
	ConfigOutputRequiredFmt         = "%s: holders.outputs.%s is required"
	ConfigOutputsDistinctFmt        = "%s: holders.outputs.%s and holders.outputs.%s both write %q"

	RunModeInvalidFmt    = "invalid --mode %q (expected auto, install, upgrade or reinstall)"
	RunWithCyclesFmt     = "invalid --with-cycles %q: must be a positive integer"
	RunNetworkInvalidFmt = "invalid network %q: must not contain whitespace"
)
