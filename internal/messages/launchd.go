package messages

// Service descriptor messages.
const (
	LaunchdEncodeFmt    = "encode launchd descriptor: %w"
	LaunchdDecodeFmt    = "decode launchd descriptor: %w"
	LaunchdReadFmt      = "read launchd descriptor %s: %w"
	LaunchdCreateDirFmt = "create directory %s: %v"
	LaunchdWriteFmt     = "write launchd descriptor %s: %v"
	LaunchdRemoveFmt    = "remove launchd descriptor %s: %v"

	LaunchdLabelMismatchFmt      = "label is %q, expected %q"
	LaunchdProgramMissing        = "ProgramArguments is empty"
	LaunchdProgramNotAbsoluteFmt = "program %q is not an absolute path"
	LaunchdProgramMissingFmt     = "program %s does not exist"
	LaunchdWorkingDirMismatchFmt = "working directory is %q, expected %q"
	LaunchdRestartPolicyOff      = "RunAtLoad and KeepAlive must both be true"
	LaunchdPathMissing           = "EnvironmentVariables.PATH does not include system paths"
)
