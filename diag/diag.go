package diag

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	ErrInvalidLevel  = errors.New("invalid log level")
	ErrInvalidFormat = errors.New("invalid log format")
)

// Config selects how diagnostic events are written.
type Config struct {
	Level  string // Level is one of debug, info, warn, or error. Defaults to info.
	Format string // Format is either [FormatText] or [FormatJSON] for console output. Defaults to [FormatText].
	File   string // File is an optional path that JSON events are appended to, in addition to the console.
}

// Logging is the process-wide logging set up by [Init].
type Logging struct {
	Logger *slog.Logger
	level  *slog.LevelVar
	file   *os.File
}

// Init sets up logging to console, and to the log file if one is configured.
// The resulting logger is installed with [slog.SetDefault].
//
// This should be called once, early in main.
// [Logging.Close] should be called before exiting to close the log file.
func Init(cfg Config, console io.Writer) (*Logging, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	l := &Logging{level: new(slog.LevelVar)}
	l.level.Set(level)
	opts := &slog.HandlerOptions{
		Level:     l.level,
		AddSource: level <= slog.LevelDebug,
	}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", FormatText:
		handler = slog.NewTextHandler(console, opts)
	case FormatJSON:
		handler = slog.NewJSONHandler(console, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, cfg.Format)
	}

	if len(cfg.File) > 0 {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0700); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = f
		handler = MergeHandlers(handler, slog.NewJSONHandler(f, opts))
	}

	l.Logger = slog.New(NewDedupeHandler(handler))
	slog.SetDefault(l.Logger)
	return l, nil
}

// ParseLevel converts a level name to a [slog.Level], ignoring case.
// An empty string is [slog.LevelInfo].
func ParseLevel(name string) (slog.Level, error) {
	name = strings.TrimSpace(name)
	if len(name) == 0 {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return level, fmt.Errorf("%w: %s", ErrInvalidLevel, name)
	}
	return level, nil
}

// SetLevel changes the level of the running logger.
func (l *Logging) SetLevel(name string) error {
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}
	l.level.Set(level)
	return nil
}

// Level returns the current minimum level.
func (l *Logging) Level() slog.Level {
	return l.level.Level()
}

// Close closes the log file, if any.
func (l *Logging) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
