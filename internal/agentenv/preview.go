package agentenv

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/conn-castle/lethe-installer/internal/config"
	"github.com/conn-castle/lethe-installer/internal/envfile"
	"github.com/conn-castle/lethe-installer/internal/messages"
)

// secretKeys hold credentials whose values are masked in previews.
var secretKeys = map[string]struct{}{
	"TELEGRAM_BOT_TOKEN":   {},
	"OPENROUTER_API_KEY":   {},
	"OPENAI_API_KEY":       {},
	"ANTHROPIC_API_KEY":    {},
	"ANTHROPIC_AUTH_TOKEN": {},
}

// Preview is a unified diff between the current and the would-be env file.
type Preview struct {
	UnifiedDiff string
	// Changed reports whether any KEY=VALUE pair differs. Comment-only changes
	// such as the generation timestamp do not count.
	Changed bool
}

// Preview renders cfg and diffs it against the current config file without
// writing anything. Secret values are masked in the diff.
func (w *Writer) Preview(cfg config.InstallConfiguration) (Preview, error) {
	path := w.paths.ConfigFile()
	current, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Preview{}, fmt.Errorf(messages.AgentEnvReadFmt, path, err)
	}
	next, err := w.Render(cfg)
	if err != nil {
		return Preview{}, err
	}

	currentEnv, err := envfile.Parse(string(current))
	if err != nil {
		return Preview{}, fmt.Errorf(messages.AgentEnvParseFmt, path, err)
	}
	nextEnv, err := envfile.Parse(next)
	if err != nil {
		return Preview{}, err
	}

	diff := udiff.Unified(path+" (current)", path+" (new)", maskSecrets(string(current)), maskSecrets(next))
	return Preview{
		UnifiedDiff: diff,
		Changed:     !maps.Equal(currentEnv, nextEnv),
	}, nil
}

// maskSecrets replaces secret values with a short fingerprint.
func maskSecrets(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if _, secret := secretKeys[strings.TrimSpace(key)]; secret {
			lines[i] = key + "=" + Mask(value)
		}
	}
	return strings.Join(lines, "\n")
}

// Mask hides all but the last four characters of value.
func Mask(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return "****" + value[len(value)-4:]
}
