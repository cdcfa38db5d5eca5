package config

import (
	"fmt"
	"strings"

	"github.com/conn-castle/lethe-installer/internal/messages"
)

// Provider identifies the LLM backend the agent talks to.
type Provider string

// Supported providers.
const (
	ProviderOpenRouter Provider = "openrouter"
	ProviderAnthropic  Provider = "anthropic"
	ProviderOpenAI     Provider = "openai"
)

// AuthMode selects how Anthropic credentials are presented. Other providers ignore it.
type AuthMode string

// Anthropic auth modes.
const (
	AuthModeAPIKey            AuthMode = "api-key"
	AuthModeSubscriptionToken AuthMode = "subscription-token"
)

// Fixed models used when Anthropic runs on a subscription token.
const (
	SubscriptionModel    = "claude-opus-4-6"
	SubscriptionAuxModel = "claude-haiku-4-5-20251001"
)

type providerInfo struct {
	displayName string
	model       string
	auxModel    string
}

var providerCatalog = map[Provider]providerInfo{
	ProviderOpenRouter: {
		displayName: "OpenRouter",
		model:       "openrouter/moonshotai/kimi-k2.5-0127",
		auxModel:    "openrouter/google/gemini-3-flash-preview",
	},
	ProviderAnthropic: {
		displayName: "Anthropic",
		model:       "claude-opus-4-6",
		auxModel:    "claude-haiku-4-5-20251001",
	},
	ProviderOpenAI: {
		displayName: "OpenAI",
		model:       "gpt-5.2",
		auxModel:    "gpt-5.2-mini",
	},
}

// Providers returns every supported provider in display order.
func Providers() []Provider {
	return []Provider{ProviderOpenRouter, ProviderAnthropic, ProviderOpenAI}
}

// ParseProvider maps a case-insensitive provider id to a Provider.
func ParseProvider(value string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := providerCatalog[p]; !ok {
		return "", fmt.Errorf(messages.ConfigProviderInvalidFmt, value)
	}
	return p, nil
}

// ParseAuthMode maps an auth mode id to an AuthMode.
func ParseAuthMode(value string) (AuthMode, error) {
	switch AuthMode(strings.ToLower(strings.TrimSpace(value))) {
	case AuthModeAPIKey:
		return AuthModeAPIKey, nil
	case AuthModeSubscriptionToken:
		return AuthModeSubscriptionToken, nil
	default:
		return "", fmt.Errorf(messages.ConfigAuthModeInvalidFmt, value)
	}
}

// Valid reports whether p is a supported provider.
func (p Provider) Valid() bool {
	_, ok := providerCatalog[p]
	return ok
}

// DisplayName is the human-readable provider name.
func (p Provider) DisplayName() string {
	if info, ok := providerCatalog[p]; ok {
		return info.displayName
	}
	return string(p)
}

// DefaultModel is the primary model suggested for p.
func (p Provider) DefaultModel() string {
	return providerCatalog[p].model
}

// DefaultAuxModel is the auxiliary model suggested for p.
func (p Provider) DefaultAuxModel() string {
	return providerCatalog[p].auxModel
}

// CredentialLabel names the secret the user must supply for p and mode.
func (p Provider) CredentialLabel(mode AuthMode) string {
	if p == ProviderAnthropic && mode != AuthModeAPIKey {
		return messages.ConfigCredentialLabelSubscription
	}
	return fmt.Sprintf(messages.ConfigCredentialLabelAPIKeyFmt, p.DisplayName())
}
