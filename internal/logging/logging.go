// Package logging configures the zerolog logger used across the launcher
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Options controls where and how much is logged
type Options struct {
	File    string // empty: no file sink
	Level   string // zerolog level name, default info
	Console io.Writer
	// ConsoleLevel is the minimum level echoed to Console
	ConsoleLevel zerolog.Level
}

// Setup builds a logger writing everything at Level to File and errors to
// Console. The returned closer releases the log file.
func Setup(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return zerolog.Nop(), closer, errors.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, errors.Errorf("failed to open log file: %w", err)
		}
		closer = f
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        f,
			NoColor:    true,
			TimeFormat: time.DateTime,
		})
	}

	if opts.Console != nil {
		writers = append(writers, &zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: time.DateTime}},
			Level:  opts.ConsoleLevel,
		})
	}

	if len(writers) == 0 {
		return zerolog.Nop(), closer, nil
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Str("logger", "launcher").
		Logger()
	return logger, closer, nil
}

// ParseLevel parses a level name; empty means info
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel, errors.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
