package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/lethe-installer/internal/messages"
)

// ErrConfigValidation wraps validation failures, as opposed to TOML syntax or
// filesystem errors. Match with errors.Is.
var ErrConfigValidation = errors.New("config validation failed")

// Environment variables that override secrets from the config file.
const (
	EnvAPIKey           = "LETHE_API_KEY"
	EnvTelegramBotToken = "LETHE_TELEGRAM_BOT_TOKEN"
)

// LookupEnvFunc returns the value and presence of an environment variable.
type LookupEnvFunc func(key string) (string, bool)

// LoadInstallConfig reads an install TOML file, applies env overrides and
// defaults, and validates the result.
func LoadInstallConfig(path string, lookupEnv LookupEnvFunc) (InstallConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return InstallConfiguration{}, fmt.Errorf(messages.ConfigMissingFileFmt, path, err)
	}
	return ParseInstallConfig(data, path, lookupEnv)
}

// ParseInstallConfig parses install TOML data. source is used in error messages.
// lookupEnv may be nil to skip env overrides.
func ParseInstallConfig(data []byte, source string, lookupEnv LookupEnvFunc) (InstallConfiguration, error) {
	var cfg InstallConfiguration
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return InstallConfiguration{}, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return InstallConfiguration{}, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt, ErrConfigValidation, source, err)
	}

	if cfg.Provider != "" {
		provider, err := ParseProvider(string(cfg.Provider))
		if err != nil {
			return InstallConfiguration{}, fmt.Errorf("%w: %s: %w", ErrConfigValidation, source, err)
		}
		cfg.Provider = provider
	}
	if lookupEnv != nil {
		cfg = applyEnvOverrides(cfg, lookupEnv)
	}
	cfg = cfg.WithDefaults()

	if err := cfg.Validate(source); err != nil {
		return InstallConfiguration{}, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	return cfg, nil
}

// decodeStrict re-decodes the TOML data rejecting unknown keys.
func decodeStrict(data []byte) error {
	var cfg InstallConfiguration
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}

func applyEnvOverrides(cfg InstallConfiguration, lookupEnv LookupEnvFunc) InstallConfiguration {
	if value, ok := lookupEnv(EnvAPIKey); ok && strings.TrimSpace(value) != "" {
		cfg.APIKey = strings.TrimSpace(value)
	}
	if value, ok := lookupEnv(EnvTelegramBotToken); ok && strings.TrimSpace(value) != "" {
		cfg.TelegramBotToken = strings.TrimSpace(value)
	}
	return cfg
}
