package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Dicklesworthstone/hostmon/internal/errors"
)

const (
	// EnvPrefix prefixes every environment override, e.g. HOSTMON_INTERVAL.
	EnvPrefix = "HOSTMON"
	// DefaultFile is read from the working directory when --config is not given.
	DefaultFile = "hostmon.yaml"
)

// Config carries runtime options for hostmon.
type Config struct {
	Interval     time.Duration `mapstructure:"interval"`
	SettingsFile string        `mapstructure:"settings_file"`
	DebugLogFile string        `mapstructure:"debug_log_file"`
	Color        string        `mapstructure:"color"`
	LogFile      string        `mapstructure:"log_file"`
	LogLevel     string        `mapstructure:"log_level"`
	AllDisks     bool          `mapstructure:"all_disks"`
}

func Default() Config {
	return Config{
		Interval:     time.Second,
		SettingsFile: "settings.txt",
		DebugLogFile: "debug_log.txt",
		Color:        "auto",
		LogFile:      "",
		LogLevel:     "info",
		AllDisks:     false,
	}
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"interval":      "interval",
	"settings-file": "settings_file",
	"debug-log":     "debug_log_file",
	"color":         "color",
	"log-file":      "log_file",
	"log-level":     "log_level",
	"all-disks":     "all_disks",
}

// RegisterFlags adds the persistent flags every command shares.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("config", "", "path to a YAML config file (default ./"+DefaultFile+" if present)")
	fs.Duration("interval", d.Interval, "sampling interval")
	fs.String("settings-file", d.SettingsFile, "where display settings are persisted")
	fs.String("debug-log", d.DebugLogFile, "where the debug log is written")
	fs.String("color", d.Color, "color output: auto|always|never")
	fs.String("log-file", d.LogFile, "diagnostic log file (empty disables logging)")
	fs.String("log-level", d.LogLevel, "diagnostic log level: debug|info|warn|error")
	fs.Bool("all-disks", d.AllDisks, "include virtual and pseudo filesystems")
}

// Load resolves the config. Precedence: flags set on the command line, then
// HOSTMON_* environment variables, then the YAML file, then defaults.
// flags may be nil.
func Load(fs afero.Fs, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetFs(fs)

	d := Default()
	v.SetDefault("interval", d.Interval)
	v.SetDefault("settings_file", d.SettingsFile)
	v.SetDefault("debug_log_file", d.DebugLogFile)
	v.SetDefault("color", d.Color)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("all_disks", d.AllDisks)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	path := ""
	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, errors.WrapWithCode(err, errors.ErrConfig,
						"Failed to bind flag --"+name, "")
				}
			}
		}
		if f := flags.Lookup("config"); f != nil {
			path = f.Value.String()
		}
	}

	if path == "" {
		if ok, _ := afero.Exists(fs, DefaultFile); ok {
			path = DefaultFile
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file "+path,
				"Check the file exists and is valid YAML")
		}
	}

	cfg := d
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+describeSource(path))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the rest of the program cannot work with.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid interval %s", c.Interval),
			"Use a positive duration such as 1s or 500ms")
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid color mode %q", c.Color),
			"Use one of: auto, always, never")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid log level %q", c.LogLevel),
			"Use one of: debug, info, warn, error")
	}
	if c.SettingsFile == "" {
		return errors.New(errors.ErrConfig,
			"Settings file path is empty",
			"Pass --settings-file or remove the empty override")
	}
	return nil
}

func describeSource(path string) string {
	if path == "" {
		return "flags and " + EnvPrefix + "_* environment variables"
	}
	return path
}
