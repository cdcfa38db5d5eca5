package messages

// Repository provisioner messages.
const (
	RepoCreateParentFmt = "create %s: %v"
)
