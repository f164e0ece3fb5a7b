package messages

// System messages for the dfx wrapper, locking and terminal interaction.
const (
	// DFXSystemRequired indicates the dfx client was built without a System.
	DFXSystemRequired       = "dfx system is required"
	DFXNotFoundFmt          = "dfx executable %q not found: %w (install the IC SDK or set %s)"
	DFXCommandFailedFmt     = "dfx %s: %v"
	DFXCommandExitFmt       = "dfx %s: exit status %d"
	DFXEmptyOutputFmt       = "dfx %s returned no output"
	DFXIdentityEmpty        = "dfx identity whoami returned an empty identity name"
	DFXIdentityExportFmt    = "export identity %s: %w"
	DFXIdentityNotPEMFmt    = "identity %s: exported key is not a PEM private key"
	DFXIdentityPrincipalFmt = "resolve principal for identity %s: %w"
	DFXCanisterIDFmt        = "resolve canister id for %s on %s: %w"

	CandidWriteArgsFmt        = "write candid arguments for %s: %w"
	CandidRegistryMalformed   = "registry reply is not a candid vec"
	CandidRegistryEntryFmt    = "registry entry %d: token id %q: %w"
	CandidRegistryLeftover    = "registry reply contains entries that are not (nat32, text) records"
	CanisterCallFailedFmt     = "call %s.%s: %w"
	CanisterDecodeRegistryFmt = "decode getRegistry reply from %s: %w"

	LockOpenFmt    = "open lock %s: %w"
	LockFmt        = "lock %s: %w"
	LockTimeoutFmt = "another nftdeploy run holds the lock (waited %s)"

	PromptRequiresTerminal = "confirmation requires an interactive terminal; re-run with --yes to skip the prompt"
	PromptAborted          = "aborted by user"
)
