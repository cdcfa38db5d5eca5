package config

import "strings"

// credentialKeys is the lookup order for a previously saved credential.
var credentialKeys = []string{
	"OPENROUTER_API_KEY",
	"ANTHROPIC_API_KEY",
	"ANTHROPIC_AUTH_TOKEN",
	"OPENAI_API_KEY",
}

// DefaultsFromEnv builds a prefill configuration from an existing agent env file.
// Unknown or missing keys fall back to OpenRouter defaults. The result is not validated.
func DefaultsFromEnv(env map[string]string) InstallConfiguration {
	cfg := InstallConfiguration{Provider: ProviderOpenRouter}
	if raw := strings.TrimSpace(env["LLM_PROVIDER"]); raw != "" {
		if p, err := ParseProvider(raw); err == nil {
			cfg.Provider = p
		}
	}

	cfg.Model = env["LLM_MODEL"]
	cfg.AuxModel = env["LLM_MODEL_AUX"]
	cfg.APIBase = env["LLM_API_BASE"]
	cfg.TelegramBotToken = env["TELEGRAM_BOT_TOKEN"]
	cfg.TelegramUserID = env["TELEGRAM_ALLOWED_USER_IDS"]

	cfg.AnthropicAuthMode = AuthModeSubscriptionToken
	if _, ok := env["ANTHROPIC_API_KEY"]; ok {
		cfg.AnthropicAuthMode = AuthModeAPIKey
	}
	for _, key := range credentialKeys {
		if value, ok := env[key]; ok {
			cfg.APIKey = value
			break
		}
	}

	if cfg.Model == "" {
		cfg.Model = cfg.Provider.DefaultModel()
	}
	if cfg.AuxModel == "" {
		cfg.AuxModel = cfg.Provider.DefaultAuxModel()
	}
	return cfg
}
