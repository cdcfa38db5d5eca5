package messages

// Terminal script runner messages.
const (
	ScriptUnknownActionFmt         = "unknown script action %q (expected install, update, or uninstall)"
	ScriptMissingFmt               = "%w: Script not found: %s"
	ScriptStatFmt                  = "check script %s: %w"
	ScriptOsascriptFailedFmt       = "Failed to open script in Terminal (exit %d)."
	ScriptOsascriptFailedDetailFmt = "Failed to open script in Terminal (exit %d): %s"
)
