package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/hostmon/internal/errors"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("hostmon", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, "settings.txt", cfg.SettingsFile)
	assert.Equal(t, "debug_log.txt", cfg.DebugLogFile)
	assert.Equal(t, "auto", cfg.Color)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.AllDisks)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadUnsetFlagsKeepDefaults(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromDefaultFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, DefaultFile, []byte(`
interval: 2s
settings_file: /tmp/hostmon-settings.txt
color: never
all_disks: true
`), 0o644))

	cfg, err := Load(fs, newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Interval)
	assert.Equal(t, "/tmp/hostmon-settings.txt", cfg.SettingsFile)
	assert.Equal(t, "never", cfg.Color)
	assert.True(t, cfg.AllDisks)
	assert.Equal(t, "debug_log.txt", cfg.DebugLogFile)
}

func TestLoadExplicitFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "conf/mon.yaml", []byte("log_level: debug\n"), 0o644))

	cfg, err := Load(fs, newFlags(t, "--config", "conf/mon.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), newFlags(t, "--config", "nope.yaml"))
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadPrecedence(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, DefaultFile, []byte("interval: 2s\ncolor: never\nlog_level: warn\n"), 0o644))
	t.Setenv("HOSTMON_INTERVAL", "3s")
	t.Setenv("HOSTMON_COLOR", "always")

	cfg, err := Load(fs, newFlags(t, "--interval", "500ms"))
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, cfg.Interval, "flag beats env")
	assert.Equal(t, "always", cfg.Color, "env beats file")
	assert.Equal(t, "warn", cfg.LogLevel, "file beats default")
}

func TestLoadEnvOnly(t *testing.T) {
	t.Setenv("HOSTMON_SETTINGS_FILE", "elsewhere.txt")
	t.Setenv("HOSTMON_ALL_DISKS", "true")

	cfg, err := Load(afero.NewMemMapFs(), nil)
	require.NoError(t, err)
	assert.Equal(t, "elsewhere.txt", cfg.SettingsFile)
	assert.True(t, cfg.AllDisks)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero interval", []string{"--interval", "0s"}},
		{"negative interval", []string{"--interval", "-1s"}},
		{"unknown color", []string{"--color", "rainbow"}},
		{"unknown level", []string{"--log-level", "loud"}},
		{"empty settings path", []string{"--settings-file", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(afero.NewMemMapFs(), newFlags(t, tt.args...))
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}
}

func TestValidateAcceptsLevelCase(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "DEBUG"
	assert.NoError(t, cfg.Validate())
}
