// Package settings persists the two display toggles to a two-line file:
//
//	bars|percent
//	Enable|Disable
package settings

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	"github.com/Dicklesworthstone/hostmon/internal/errors"
	hmlog "github.com/Dicklesworthstone/hostmon/internal/logger"
)

// File tokens.
const (
	tokenBars    = "bars"
	tokenPercent = "percent"
	tokenEnable  = "Enable"
	tokenDisable = "Disable"
)

// Display holds the user-facing display preferences.
type Display struct {
	BarsMode     bool // progress bars instead of percent numbers
	DebugEnabled bool // include the timestamp in the debug log
}

// Default returns the settings used when nothing is persisted.
func Default() Display {
	return Display{BarsMode: true, DebugEnabled: false}
}

// ModeLabel is "bars" or "percent".
func (d Display) ModeLabel() string {
	if d.BarsMode {
		return tokenBars
	}
	return tokenPercent
}

// DebugLabel is "Enable" or "Disable".
func (d Display) DebugLabel() string {
	if d.DebugEnabled {
		return tokenEnable
	}
	return tokenDisable
}

// Marshal encodes d in the file format.
func (d Display) Marshal() []byte {
	return []byte(d.ModeLabel() + "\n" + d.DebugLabel() + "\n")
}

// Parse decodes the file format. A missing or unrecognised line keeps the
// default for that toggle.
func Parse(data []byte) Display {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	line := func(i int) string {
		if i < len(lines) {
			return strings.TrimSpace(lines[i])
		}
		return ""
	}
	d := Default()
	switch line(0) {
	case tokenBars:
		d.BarsMode = true
	case tokenPercent:
		d.BarsMode = false
	}
	switch line(1) {
	case tokenEnable:
		d.DebugEnabled = true
	case tokenDisable:
		d.DebugEnabled = false
	}
	return d
}

// Store reads and writes Display values at a fixed path.
type Store struct {
	fs     afero.Fs
	path   string
	logger *slog.Logger
}

// NewStore returns a store backed by fs. A nil logger discards output.
func NewStore(fs afero.Fs, path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = hmlog.Discard()
	}
	return &Store{fs: fs, path: path, logger: logger}
}

// Path returns the settings file location.
func (s *Store) Path() string { return s.path }

// Load returns the persisted settings, or Default when the file is absent,
// unreadable or empty.
func (s *Store) Load() Display {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		s.logger.Debug("settings unavailable, using defaults", "path", s.path, "err", err)
		return Default()
	}
	if len(bytes.TrimSpace(data)) == 0 {
		s.logger.Debug("settings file empty, using defaults", "path", s.path)
		return Default()
	}
	return Parse(data)
}

// Save writes d to the settings file, replacing previous content.
func (s *Store) Save(d Display) error {
	if err := afero.WriteFile(s.fs, s.path, d.Marshal(), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrSettings,
			fmt.Sprintf("Failed to save settings to %s", s.path),
			"Check that the directory exists and is writable, or pass --settings-file")
	}
	s.logger.Info("settings saved", "path", s.path, "mode", d.ModeLabel(), "debug", d.DebugLabel())
	return nil
}
