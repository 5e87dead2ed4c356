// Package logger holds the application-wide logrus logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger. It is usable before Init and writes to stderr.
var Log = logrus.New()

// Options configures Init.
type Options struct {
	Level  string    // logrus level name, "info" when empty or unknown
	Format string    // "json" or "text"
	Output io.Writer // defaults to stderr
}

// Init configures Log. Call it once at startup, before any session starts.
func Init(opts Options) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(opts.Format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: opts.Output != nil && opts.Output != os.Stderr,
		})
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	Log.SetOutput(out)
}

// OpenFile opens path for appending log lines, creating parent directories.
// The terminal UI owns stdout, so interactive runs log here instead.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
