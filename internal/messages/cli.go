package messages

// CLI messages for user-facing commands and flags.
const (
	// RootUse is the CLI command name.
	RootUse   = "nftdeploy"
	RootShort = "Deploy the NFT canister and aggregate registry holders"
	RootLong  = "nftdeploy drives dfx to build, install and launch the NFT canister, uploads asset metadata in\nbatches, and computes holder lists from on-chain registries."

	RootFlagConfig     = "Path to the config file (default: <project>/nftdeploy.toml)"
	RootFlagProjectDir = "Project directory holding the assets and init argument files (default: nearest directory with dfx.json, else the current directory)"
	RootFlagVerbose    = "Emit debug logs to stderr"
	RootFlagNoColor    = "Disable colored output"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// DeployUse is the deploy command usage.
	DeployUse   = "deploy [network]"
	DeployShort = "Build, install, upload metadata and launch the NFT canister"
	DeployLong  = "Build and install the NFT canister with dfx, upload asset metadata in batches of up to 1000\nrecords, then run the launch calls (initCap, initMint, shuffleTokensForSale, airdropTokens,\nenableSale).\n\nnetwork is local, test, production or any other name; local and test deploy to the local\nreplica, everything else deploys to ic. production targets the production canister."

	DeployFlagMode       = "Install mode: auto, install, upgrade or reinstall"
	DeployFlagWithCycles = "Cycles to attach when installing (forwarded to dfx as --with-cycles)"
	DeployFlagYes        = "Confirm a reinstall on a non-local network without prompting"
	DeployFlagSkipBuild  = "Skip dfx build and install; upload metadata and launch only"
	DeployFlagSkipLaunch = "Skip the launch calls after uploading metadata"
	DeployTooManyArgsFmt = "deploy accepts at most one network argument, got %d"

	// HoldersUse is the holders command usage.
	HoldersUse   = "holders"
	HoldersShort = "Fetch registries and write holder lists"
	HoldersLong  = "Fetch the three configured registries with getRegistry and write:\n  - the unique holders of the first registry\n  - the union of the second and third registries' holders\n  - the holders present in all three registries\n\nEach file lists one quoted address per line, separated by \";\"."

	HoldersFlagIntersection = "Intersection rule: min (count per address is the minimum across registries) or membership (present in all three)"
	HoldersFlagParallel     = "Fetch the registries concurrently"
	HoldersFlagDryRun       = "Print a diff against the existing files instead of writing them"
	HoldersFlagOutDir       = "Directory for the holder files (default from config)"
	HoldersFlagNetwork      = "dfx network hosting the registries (default from config)"

	// ErrorPrefixFmt formats fatal errors printed by the CLI.
	ErrorPrefixFmt = "Error: %v"
	GetwdFailedFmt = "resolve working directory: %w"

	// RootStartRequired indicates project root discovery was given no start directory.
	RootStartRequired    = "project root search requires a start directory"
	RootMarkerNotFileFmt = "%s exists but is not a regular file"
	RootStatMarkerFmt    = "stat %s: %w"
)
