// Package logger builds the slog logger shared by hostmon components.
// The dashboard owns stdout, so records go to a file or are dropped.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/Dicklesworthstone/hostmon/internal/errors"
)

// Levels accepted by ParseLevel.
var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel maps a config string onto a slog level.
func ParseLevel(s string) (slog.Level, bool) {
	l, ok := levels[strings.ToLower(strings.TrimSpace(s))]
	return l, ok
}

// New returns a text logger writing to w at the given level. Unknown levels
// fall back to info.
func New(w io.Writer, level string) *slog.Logger {
	l, ok := ParseLevel(level)
	if !ok {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

// Open builds a logger appending to path on fs. An empty path yields a
// discarding logger. The returned closer must be called on shutdown.
func Open(fs afero.Fs, path, level string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return Discard(), nopCloser{}, nil
	}
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot open log file "+path,
			"Check the path in --log-file or HOSTMON_LOG_FILE")
	}
	return New(f, level), f, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
