package messages

// Config messages for install configuration loading and validation.
const (
	// ConfigMissingFileFmt formats missing config file errors.
	ConfigMissingFileFmt      = "missing config file %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "%s: unrecognized config keys: %w"

	ConfigProviderInvalidFmt      = "unknown provider %q (expected openrouter, anthropic, or openai)"
	ConfigAuthModeInvalidFmt      = "unknown auth mode %q (expected api-key or subscription-token)"
	ConfigProviderRequiredFmt     = "%s: provider must be one of openrouter, anthropic, openai"
	ConfigAuthModeFieldInvalidFmt = "%s: anthropic_auth_mode must be api-key or subscription-token"
	ConfigCredentialRequiredFmt   = "%s: %s is required"
	ConfigFieldRequiredFmt        = "%s: %s is required"
	ConfigFieldMultilineFmt       = "%s: %s must be a single line"

	ConfigCredentialLabelAPIKeyFmt    = "%s API key"
	ConfigCredentialLabelSubscription = "Claude subscription token"
)
