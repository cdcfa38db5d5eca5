package messages

// System messages for internal operations.
const (
	// ShellLaunchFailedFmt formats process start failures.
	ShellLaunchFailedFmt  = "could not launch %s: %v"
	ShellWaitFailedFmt    = "could not wait for %s: %v"
	ShellCommandFailedFmt = "Command failed: %s"

	// PathsResolveHomeFmt formats home directory lookup failures.
	PathsResolveHomeFmt = "resolve home directory: %w"

	// FsutilCreateTempFmt formats atomic write temp file failures.
	FsutilCreateTempFmt = "create temp file for %s: %w"
	FsutilWriteTempFmt  = "write temp file for %s: %w"
	FsutilSyncTempFmt   = "sync temp file for %s: %w"
	FsutilCloseTempFmt  = "close temp file for %s: %w"
	FsutilChmodTempFmt  = "chmod temp file for %s: %w"
	FsutilRenameTempFmt = "move temp file into place at %s: %w"

	// EnvfileLineErrorFmt formats envfile line errors.
	EnvfileLineErrorFmt      = "line %d: %w"
	EnvfileReadFailedFmt     = "failed to read env content: %w"
	EnvfileExpectedKeyValue  = "expected KEY=VALUE"
	EnvfileInvalidKeyFmt     = "line %d: invalid key %q"
	EnvfileMultilineValueFmt = "value for %s spans multiple lines; env files cannot represent it"

	// LockOpenFmt formats lock file open failures.
	LockOpenFmt      = "open lock %s: %w"
	LockAcquireFmt   = "lock %s: %w"
	LockTimeoutFmt   = "another lethectl command is running; timed out waiting for lock after %s"
	LockCreateDirFmt = "create lock directory %s: %w"
)
