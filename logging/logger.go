// Package logging builds the structured slog logger used by the service and
// the CLI, with optional size-based file rotation.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes log output.
type Config struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=json text"`

	// File enables rotation through lumberjack; empty logs to stdout only.
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size" validate:"gte=0"`    // MB
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"` // files
	MaxAge     int    `mapstructure:"max_age" validate:"gte=0"`     // days
	Compress   bool   `mapstructure:"compress"`

	// Stdout also writes to stdout when File is set.
	Stdout bool `mapstructure:"stdout"`
}

// ParseLevel maps debug|info|warn|error to a slog level; anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger for cfg. The returned closer releases the rotating
// file and is a no-op when logging to stdout only.
func New(cfg Config) (*slog.Logger, io.Closer) {
	var (
		w      io.Writer = os.Stdout
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		closer = fileWriter
		w = fileWriter
		if cfg.Stdout {
			w = io.MultiWriter(os.Stdout, fileWriter)
		}
	}
	return NewWithWriter(cfg, w), closer
}

// NewWithWriter builds the handler on an arbitrary writer.
func NewWithWriter(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "timestamp"
			}
			return a
		},
	}

	var h slog.Handler
	if cfg.Format == "text" {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With(slog.String("service", "tspcompare"))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
