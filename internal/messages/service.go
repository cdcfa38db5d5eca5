package messages

// Service controller messages.
const (
	ServiceDescriptorMissingFmt = "LaunchAgent plist not found: %s"
	ServiceDescriptorStatFmt    = "check LaunchAgent plist %s: %v"
	ServiceCommandFailedFmt     = "launchctl command failed: %s"
	ServiceExitCodeFmt          = "exit %d"
)
