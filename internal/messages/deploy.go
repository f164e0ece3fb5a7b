package messages

// Deploy messages for the deployer pipeline and the metadata uploader.
const (
	// DeployReinstallMode announces a reinstall run.
	DeployReinstallMode     = "REINSTALL MODE"
	DeployIdentityFmt       = "Identity: %s"
	DeployControllerFmt     = "Controller: %s"
	DeployCanisterFmt       = "Canister: %s"
	DeployNetworkFmt        = "Network: %s"
	DeployInitArgsFmt       = "Using init args from %s"
	DeployBuilding          = "Building nft canister..."
	DeployInstalling        = "Installing nft canister..."
	DeploySkipBuild         = "Skipping build and install"
	DeploySkipLaunch        = "Skipping launch"
	DeployReinstallTitle    = "Reinstall %s on %s? All canister state will be wiped."
	DeployReinstallNeedsYes = "reinstall on %s requires confirmation; re-run with --yes"
	DeployReinstallDeclined = "reinstall declined"
	DeployDone              = "Deploy finished"
	DeployBuildFailedFmt    = "build %s: %w"
	DeployInstallFailedFmt  = "install %s: %w"
	DeployIdentityFailedFmt = "load identity: %w"
	DeployAssetsIDFailedFmt = "resolve assets canister id: %w"

	DeployValidating        = "Validating assets..."
	DeployFoundAssetsFmt    = "Found %d asset files in %s"
	DeployAssetsCanisterFmt = "Assets canister: %s"

	UploadPlaceholder     = "Uploading placeholder..."
	UploadNoPlaceholder   = "No placeholder."
	UploadStarting        = "Uploading assets metadata..."
	UploadFoundFmt        = "Found %d assets metadata..."
	UploadChunksFmt       = "Chunks: %d"
	UploadProgressFmt     = "Uploaded metadata: %d"
	UploadRetryFmt        = "Chunk %d failed (attempt %d/%d): %v; retrying in %s"
	UploadAllDone         = "All assets metadata uploaded"
	UploadChunkFailedFmt  = "upload chunk %d (indices %d-%d): %w"
	UploadPlaceholderFmt  = "upload placeholder: %w"
	UploadChunkSizeFmt    = "chunk size must be between 1 and %d, got %d"
	UploadIncompleteFmt   = "failed to upload metadata for %s"
	UploadActorRequired   = "upload actor is required"
	UploadLocatorRequired = "asset locator is required"

	AssetsReadDirFmt       = "read assets dir %s: %w"
	AssetsStatFmt          = "stat %s: %w"
	AssetsAmbiguousFmt     = "assets %q and %q share the basename %q"
	AssetsMissingFmt       = "%w: %s"
	AssetsFileNotFoundFmt  = "file '%s' not found"
	AssetsCanisterIDEmpty  = "assets canister id not found"
	AssetsReadMetadataFmt  = "read metadata %s: %w"
	AssetsParseMetadataFmt = "parse metadata %s: %w"
	AssetsCompactEntryFmt  = "metadata entry %d: %w"
	AssetsMetadataNotArray = "expected a JSON array"

	LaunchStarting      = "Launching..."
	LaunchInitCap       = "initiating CAP ..."
	LaunchSkipCap       = "skip CAP init for local network or staging canister"
	LaunchInitMint      = "initiating mint ..."
	LaunchShuffle       = "shuffle Tokens For Sale ..."
	LaunchAirdrop       = "airdrop tokens ..."
	LaunchEnableSale    = "enable sale ..."
	LaunchCallFailedFmt = "launch step %s: %w"
)
