// Package util provides logging setup, data paths and small generic helpers.
package util

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogging sends the standard logger to a rotating file at path. The
// terminal belongs to the TUI, so nothing is written to stderr once this runs.
// An empty path leaves the standard logger untouched.
func SetupLogging(path string) (io.Closer, error) {
	if path == "" {
		return io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28,
	}
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return w, nil
}

// NewLogger returns a logger sharing the standard logger's output with prefix.
func NewLogger(prefix string) *log.Logger {
	return log.New(log.Writer(), prefix, log.Flags())
}

// LogError logs an error with context if it is non-nil.
func LogError(logger *log.Logger, context string, err error) {
	if err == nil {
		return
	}
	if logger == nil {
		log.Printf("%s: %v", context, err)
		return
	}
	logger.Printf("%s: %v", context, err)
}
