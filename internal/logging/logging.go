package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/alexanderramin/backplan/internal/config"
)

// Closer releases the file sink, if any.
type Closer func() error

// New builds the root logger for cfg. Console output goes to stderr so that
// --json command output on stdout stays machine readable. When cfg.File is
// set, JSON lines are also written to a rotating file.
func New(cfg config.LogConfig) (zerolog.Logger, Closer, error) {
	return newLogger(cfg, os.Stderr, isatty.IsTerminal(os.Stderr.Fd()))
}

func newLogger(cfg config.LogConfig, out io.Writer, terminal bool) (zerolog.Logger, Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), noop, fmt.Errorf("parsing log level: %w", err)
	}

	console := out
	if cfg.Format == "console" || (cfg.Format == "auto" && terminal) {
		console = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: !terminal}
	}

	writer := console
	closer := noop
	if cfg.File != "" {
		if dir := filepath.Dir(cfg.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return zerolog.Nop(), noop, fmt.Errorf("creating log directory: %w", err)
			}
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
		writer = zerolog.MultiLevelWriter(console, lj)
		closer = lj.Close
	}

	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}

// Component returns a child logger tagged with the component field.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

func noop() error { return nil }
