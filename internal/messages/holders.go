package messages

// Holders messages for registry fetching and artifact writing.
const (
	// HoldersFetchingFmt announces a registry fetch.
	HoldersFetchingFmt     = "Fetching %s (%s)..."
	HoldersFetchedFmt      = "Fetched %d tokens from %s"
	HoldersFetchFailedFmt  = "fetch registry %s (%s): %w"
	HoldersSourcesFmt      = "expected %d registries, got %d"
	HoldersStrategyFmt     = "unknown intersection strategy %q (expected min or membership)"
	HoldersTrilogyCountFmt = "trilogy holders %d"
	HoldersFirstCountFmt   = "%s holders %d"
	HoldersUnionCountFmt   = "%s and %s holders %d"
	HoldersWroteFmt        = "Wrote %s"
	HoldersUnchangedFmt    = "%s is unchanged"
	HoldersDryRunHeaderFmt = "--- dry run: %s"
	HoldersWriteFailedFmt  = "write %s: %w"
	HoldersReadExistingFmt = "read existing %s: %w"
	HoldersCreateOutDirFmt = "create output dir %s: %w"
)
