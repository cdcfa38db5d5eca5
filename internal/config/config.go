// Package config holds the install configuration record and its loaders.
package config

import (
	"fmt"
	"strings"

	"github.com/conn-castle/lethe-installer/internal/messages"
)

// InstallConfiguration is the validated input to an install run.
type InstallConfiguration struct {
	Provider Provider `toml:"provider"`
	// AnthropicAuthMode applies only when Provider is anthropic. Empty means subscription-token.
	AnthropicAuthMode AuthMode `toml:"anthropic_auth_mode"`
	Model             string   `toml:"model"`
	AuxModel          string   `toml:"aux_model"`
	APIBase           string   `toml:"api_base"`
	APIKey            string   `toml:"api_key"`
	TelegramBotToken  string   `toml:"telegram_bot_token"`
	TelegramUserID    string   `toml:"telegram_user_id"`
}

// AuthEnvName is the environment variable the credential is persisted under.
func (c InstallConfiguration) AuthEnvName() string {
	switch c.Provider {
	case ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		if c.AnthropicAuthMode == AuthModeAPIKey {
			return "ANTHROPIC_API_KEY"
		}
		return "ANTHROPIC_AUTH_TOKEN"
	default:
		return ""
	}
}

// UsesFixedModels reports whether the models are implied by the auth mode.
func (c InstallConfiguration) UsesFixedModels() bool {
	return c.Provider == ProviderAnthropic && c.AnthropicAuthMode != AuthModeAPIKey
}

// WithDefaults fills empty models from provider defaults and pins the
// subscription models when the auth mode implies them.
func (c InstallConfiguration) WithDefaults() InstallConfiguration {
	if c.Provider == ProviderAnthropic && c.AnthropicAuthMode == "" {
		c.AnthropicAuthMode = AuthModeSubscriptionToken
	}
	if c.UsesFixedModels() {
		c.Model = SubscriptionModel
		c.AuxModel = SubscriptionAuxModel
		return c
	}
	if strings.TrimSpace(c.Model) == "" {
		c.Model = c.Provider.DefaultModel()
	}
	if strings.TrimSpace(c.AuxModel) == "" {
		c.AuxModel = c.Provider.DefaultAuxModel()
	}
	return c
}

// Validate ensures c is complete and representable in the env file format.
// source names the origin of c in error messages.
func (c InstallConfiguration) Validate(source string) error {
	if !c.Provider.Valid() {
		return fmt.Errorf(messages.ConfigProviderRequiredFmt, source)
	}
	if c.Provider == ProviderAnthropic {
		switch c.AnthropicAuthMode {
		case "", AuthModeAPIKey, AuthModeSubscriptionToken:
		default:
			return fmt.Errorf(messages.ConfigAuthModeFieldInvalidFmt, source)
		}
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf(messages.ConfigCredentialRequiredFmt, source, c.Provider.CredentialLabel(c.AnthropicAuthMode))
	}
	if !c.UsesFixedModels() {
		if strings.TrimSpace(c.Model) == "" {
			return fmt.Errorf(messages.ConfigFieldRequiredFmt, source, "model")
		}
		if strings.TrimSpace(c.AuxModel) == "" {
			return fmt.Errorf(messages.ConfigFieldRequiredFmt, source, "aux_model")
		}
	}
	if strings.TrimSpace(c.TelegramBotToken) == "" {
		return fmt.Errorf(messages.ConfigFieldRequiredFmt, source, "telegram_bot_token")
	}
	if strings.TrimSpace(c.TelegramUserID) == "" {
		return fmt.Errorf(messages.ConfigFieldRequiredFmt, source, "telegram_user_id")
	}
	for _, field := range []struct {
		name  string
		value string
	}{
		{"model", c.Model},
		{"aux_model", c.AuxModel},
		{"api_base", c.APIBase},
		{"api_key", c.APIKey},
		{"telegram_bot_token", c.TelegramBotToken},
		{"telegram_user_id", c.TelegramUserID},
	} {
		if strings.ContainsAny(field.value, "\r\n") {
			return fmt.Errorf(messages.ConfigFieldMultilineFmt, source, field.name)
		}
	}
	return nil
}
