package messages

// Dependency installer messages.
const (
	// DepsMissingFmt formats a dependency that cannot be found anywhere.
	DepsMissingFmt                 = "Missing dependency: %s. Install it and retry."
	DepsHomebrewGuidance           = "Homebrew (brew). Install from https://brew.sh and retry"
	DepsStillUnavailableFmt        = "Installed %s, but %s is still unavailable."
	DepsRuntimeStillUnavailableFmt = "Installed %s, but command is still unavailable in PATH."
)
