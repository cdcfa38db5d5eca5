package messages

// Env writer messages.
const (
	AgentEnvCreateDirFmt = "create directory %s: %v"
	AgentEnvRenderFmt    = "render %s: %v"
	AgentEnvWriteFmt     = "write %s: %v"
	AgentEnvRemoveFmt    = "remove existing %s: %v"
	AgentEnvLinkFmt      = "link %s: %v"
	AgentEnvReadFmt      = "read %s: %w"
	AgentEnvParseFmt     = "parse %s: %w"
)
