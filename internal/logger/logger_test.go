package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lethectl.log")
	if err := Init(DefaultConfig(path)); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	log := WithComponent("installer")
	log.Info().Str("step", "clone").Msg("Step finished")
	if err := Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	for _, want := range []string{`"component":"installer"`, `"step":"clone"`, "Step finished"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in log, got %s", want, content)
		}
	}
}

func TestInitRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lethectl.log")
	cfg := DefaultConfig(path)
	cfg.Level = "warn"
	if err := Init(cfg); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	log := WithComponent("shell")
	log.Debug().Msg("hidden")
	log.Warn().Msg("visible")
	_ = Close()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") {
		t.Fatalf("debug line should be filtered: %s", data)
	}
	if !strings.Contains(string(data), "visible") {
		t.Fatalf("warn line missing: %s", data)
	}
}

func TestConsoleMirror(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: "debug", Console: true, Stderr: &buf}); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	log := WithComponent("probe")
	log.Debug().Msg("probing launchctl")

	if !strings.Contains(buf.String(), "probing launchctl") {
		t.Fatalf("expected console output, got %q", buf.String())
	}
}

func TestWithComponentChains(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: "info", Console: true, Stderr: &buf}); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	WithComponent("repo").Info().Str("dir", "/tmp/lethe").Msg("Cloning checkout")

	if !strings.Contains(buf.String(), "Cloning checkout") || !strings.Contains(buf.String(), "repo") {
		t.Fatalf("expected component line, got %q", buf.String())
	}
}

func TestUninitializedLoggerIsSilent(t *testing.T) {
	_ = Close()
	log := WithComponent("noop")
	log.Info().Msg("nowhere")
}
