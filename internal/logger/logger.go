// Package logger provides structured logging with file rotation support.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds the logger configuration.
type Config struct {
	Level      string
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	// Console mirrors log lines to Stderr in human-readable form.
	Console bool
	Stderr  io.Writer
}

// DefaultConfig returns defaults for the CLI log file at path.
func DefaultConfig(path string) Config {
	return Config{
		Level:      "info",
		FilePath:   path,
		MaxSizeMB:  5,
		MaxBackups: 3,
		MaxAgeDays: 30,
		Compress:   true,
	}
}

var (
	mu             sync.RWMutex
	globalLogger   = zerolog.Nop()
	prevFileWriter io.Closer
)

// Init initializes the global logger with the given configuration.
// Calling Init again replaces the previous writers.
func Init(cfg Config) error {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	mu.Lock()
	defer mu.Unlock()

	if prevFileWriter != nil {
		_ = prevFileWriter.Close()
		prevFileWriter = nil
	}

	var writers []io.Writer
	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return err
		}
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		prevFileWriter = fileWriter
		writers = append(writers, fileWriter)
	}
	if cfg.Console {
		out := cfg.Stderr
		if out == nil {
			out = os.Stderr
		}
		writers = append(writers, zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen})
	}

	switch len(writers) {
	case 0:
		globalLogger = zerolog.Nop()
	case 1:
		globalLogger = zerolog.New(writers[0]).Level(level).With().Timestamp().Logger()
	default:
		globalLogger = zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	}
	return nil
}

// Close flushes and releases the log file, leaving a no-op logger in place.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	globalLogger = zerolog.Nop()
	if prevFileWriter == nil {
		return nil
	}
	err := prevFileWriter.Close()
	prevFileWriter = nil
	return err
}

// Logger returns the global logger instance.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// WithComponent returns a logger with component field. The pointer lets
// callers chain Info/Debug directly on the result.
func WithComponent(component string) *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := globalLogger.With().Str("component", component).Logger()
	return &l
}
