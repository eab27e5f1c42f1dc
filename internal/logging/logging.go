// Package logging holds the process-wide structured logger.
//
// The logger is configured once at startup with Init. Code that logs
// before Init (tests, library use) gets an INFO-level text logger on
// stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Level represents logging verbosity.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Config holds logger configuration.
type Config struct {
	Level      Level
	Format     string // "json" or "text"
	OutputPath string // empty for stderr
}

var (
	mu      sync.RWMutex
	logger  *slog.Logger
	logFile *os.File
)

// ParseLevel converts a flag value such as "debug" into a Level.
func ParseLevel(s string) (Level, error) {
	switch lvl := Level(strings.ToUpper(strings.TrimSpace(s))); lvl {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return lvl, nil
	default:
		return "", fmt.Errorf("unknown log level %q", s)
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init configures the global logger. Calling Init again replaces the
// previous logger and closes its file, if any.
func Init(cfg Config) error {
	var w io.Writer = os.Stderr
	var file *os.File

	if cfg.OutputPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.OutputPath), 0o750); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w = f
		file = f
	}

	l := newLogger(w, cfg)

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		if err != nil {
			if file != nil {
				file.Close()
			}
			return fmt.Errorf("close previous log file: %w", err)
		}
	}
	logger = l
	logFile = file
	return nil
}

// New builds a logger writing to w without touching the global one.
func New(w io.Writer, cfg Config) *slog.Logger {
	return newLogger(w, cfg)
}

func newLogger(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level.slogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// GetLogger returns the global logger.
func GetLogger() *slog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = newLogger(os.Stderr, Config{Level: LevelInfo})
	}
	return logger
}

// WithComponent returns a logger tagged with a subsystem name.
//
//	log := logging.WithComponent("web")
//	log.Info("listening", "port", 8080)
func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}

// Close releases the log file opened by Init and resets the logger.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	logger = nil
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
