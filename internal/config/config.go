// Package config loads touchstate settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/roach88/touchstate/internal/touch"
)

// EnvConfigPath names the environment variable that points at a config file.
const EnvConfigPath = "TOUCHSTATE_CONFIG"

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Reducer  ReducerConfig  `mapstructure:"reducer"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ReducerConfig holds the default reducer policy for replays.
type ReducerConfig struct {
	OrphanMove          string `mapstructure:"orphan_move"`
	LegacyPressTracking bool   `mapstructure:"legacy_press_tracking"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Options converts the reducer settings into reducer options.
func (r ReducerConfig) Options() ([]touch.Option, error) {
	policy, err := touch.ParseOrphanMovePolicy(r.OrphanMove)
	if err != nil {
		return nil, fmt.Errorf("reducer.orphan_move: %w", err)
	}
	opts := []touch.Option{touch.WithOrphanMovePolicy(policy)}
	if r.LegacyPressTracking {
		opts = append(opts, touch.WithLegacyPressTracking())
	}
	return opts, nil
}

// SlogLevel parses the configured level (debug, info, warn, error).
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// DefaultDatabasePath returns ~/.local/share/touchstate/touchstate.db.
func DefaultDatabasePath() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "touchstate", "touchstate.db")
}

// Load reads configuration from file and env. Env var overrides use prefix
// TOUCHSTATE_ (TOUCHSTATE_DATABASE_PATH, TOUCHSTATE_REDUCER_ORPHAN_MOVE, ...).
//
// path selects the config file; when empty, $TOUCHSTATE_CONFIG is used, and
// failing that ~/.config/touchstate/config.yaml. An explicitly named file
// must exist; the default one is optional.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", DefaultDatabasePath())
	v.SetDefault("reducer.orphan_move", touch.OrphanMoveFail.String())
	v.SetDefault("reducer.legacy_press_tracking", false)
	v.SetDefault("log.level", "info")

	v.SetConfigType("yaml")

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "touchstate"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TOUCHSTATE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if _, err := c.Reducer.Options(); err != nil {
		return Config{}, err
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return Config{}, err
	}

	return c, nil
}
