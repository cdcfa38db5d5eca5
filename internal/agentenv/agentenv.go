// Package agentenv renders the install configuration into the agent's env file.
package agentenv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/conn-castle/lethe-installer/internal/config"
	"github.com/conn-castle/lethe-installer/internal/envfile"
	"github.com/conn-castle/lethe-installer/internal/faults"
	"github.com/conn-castle/lethe-installer/internal/logger"
	"github.com/conn-castle/lethe-installer/internal/messages"
	"github.com/conn-castle/lethe-installer/internal/paths"
)

// GeneratedTimeLayout formats the generation timestamp in the file header.
const GeneratedTimeLayout = "2006-01-02 15:04:05 -0700"

// Writer persists the env file into the config directory and links it into
// the install directory.
type Writer struct {
	paths paths.Paths
	sys   System
	now   func() time.Time
}

// NewWriter returns a Writer for p using the real filesystem and clock.
func NewWriter(p paths.Paths) *Writer {
	return &Writer{paths: p, sys: RealSystem{}, now: time.Now}
}

// WithSystem replaces the filesystem used by w.
func (w *Writer) WithSystem(sys System) *Writer {
	w.sys = sys
	return w
}

// WithClock replaces the clock used for the header timestamp.
func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now
	return w
}

// Lines returns the ordered env file lines for cfg.
func Lines(cfg config.InstallConfiguration, p paths.Paths, generated time.Time) []envfile.Line {
	return []envfile.Line{
		envfile.Comment("Lethe Configuration"),
		envfile.Comment("Generated by lethectl on " + generated.Format(GeneratedTimeLayout)),
		envfile.Blank(),
		envfile.Comment("Telegram"),
		envfile.Entry("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken),
		envfile.Entry("TELEGRAM_ALLOWED_USER_IDS", cfg.TelegramUserID),
		envfile.Blank(),
		envfile.Comment("LLM"),
		envfile.Entry("LLM_PROVIDER", string(cfg.Provider)),
		envfile.Entry("LLM_MODEL", cfg.Model),
		envfile.Entry("LLM_MODEL_AUX", cfg.AuxModel),
		envfile.Entry("LLM_API_BASE", cfg.APIBase),
		envfile.Entry(cfg.AuthEnvName(), cfg.APIKey),
		envfile.Blank(),
		envfile.Comment("Paths"),
		envfile.Entry("WORKSPACE_DIR", p.WorkspaceDir()),
		envfile.Entry("MEMORY_DIR", p.MemoryDir()),
		envfile.Blank(),
		envfile.Entry("HEARTBEAT_ENABLED", "true"),
		envfile.Entry("HIPPOCAMPUS_ENABLED", "true"),
	}
}

// Render returns the env file content for cfg.
func (w *Writer) Render(cfg config.InstallConfiguration) (string, error) {
	return envfile.Render(Lines(cfg, w.paths, w.now()))
}

// Write renders cfg to the config file and links it into the install directory.
// It returns the config file path.
func (w *Writer) Write(cfg config.InstallConfiguration) (string, error) {
	path, err := w.WriteConfig(cfg)
	if err != nil {
		return "", err
	}
	if err := w.Link(); err != nil {
		return "", err
	}
	return path, nil
}

// WriteConfig renders cfg to the config file only, creating the config and
// workspace directories.
func (w *Writer) WriteConfig(cfg config.InstallConfiguration) (string, error) {
	for _, dir := range []string{w.paths.ConfigDir(), w.paths.WorkspaceDir()} {
		if err := w.sys.MkdirAll(dir, 0o755); err != nil {
			return "", installFailed(messages.AgentEnvCreateDirFmt, dir, err)
		}
	}

	content, err := w.Render(cfg)
	if err != nil {
		return "", installFailed(messages.AgentEnvRenderFmt, w.paths.ConfigFile(), err)
	}
	path := w.paths.ConfigFile()
	if err := w.sys.WriteFileAtomic(path, []byte(content), 0o600); err != nil {
		return "", installFailed(messages.AgentEnvWriteFmt, path, err)
	}
	logger.WithComponent("agentenv").Info().Str("path", path).Str("provider", string(cfg.Provider)).Msg("Wrote env file")
	return path, nil
}

// Link replaces the install directory's env file with a symlink to the config file.
func (w *Writer) Link() error {
	link := w.paths.InstallEnvFile()
	if _, err := w.sys.Lstat(link); err == nil {
		if err := w.sys.RemoveAll(link); err != nil {
			return installFailed(messages.AgentEnvRemoveFmt, link, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return installFailed(messages.AgentEnvRemoveFmt, link, err)
	}
	if err := w.sys.Symlink(w.paths.ConfigFile(), link); err != nil {
		return installFailed(messages.AgentEnvLinkFmt, link, err)
	}
	return nil
}

// ReadExisting parses the current config file. A missing file yields an empty map.
func ReadExisting(p paths.Paths) (map[string]string, error) {
	data, err := os.ReadFile(p.ConfigFile())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf(messages.AgentEnvReadFmt, p.ConfigFile(), err)
	}
	env, err := envfile.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf(messages.AgentEnvParseFmt, p.ConfigFile(), err)
	}
	return env, nil
}

func installFailed(format string, path string, err error) error {
	return faults.Wrap(faults.ErrInstallFailed, fmt.Sprintf(format, path, err), err)
}
