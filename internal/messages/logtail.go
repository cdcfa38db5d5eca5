package messages

// Log tail messages.
const (
	LogtailOpenFmt  = "open log %s: %w"
	LogtailReadFmt  = "read log %s: %w"
	LogtailWatchFmt = "watch %s: %w"
)
