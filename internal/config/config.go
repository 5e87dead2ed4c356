// Package config handles user settings for arcade: the config directory,
// the optional .env file and the viper-backed settings struct.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/maxwellsmart84/portfolio-2025/internal/game"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. ARCADE_TICK.
const EnvPrefix = "ARCADE"

// Settings holds everything the commands read from flags, env and config.yaml.
type Settings struct {
	ConfigDir    string        `mapstructure:"config_dir"`
	Level        string        `mapstructure:"level"`  // level file, empty for the built-in one
	Assets       string        `mapstructure:"assets"` // sprite directory, empty for the built-in set
	Tick         time.Duration `mapstructure:"tick"`
	TypeInterval time.Duration `mapstructure:"type_interval"`
	HoldTimeout  time.Duration `mapstructure:"hold_timeout"` // synthesized key release in the terminal
	Particles    int           `mapstructure:"particles"`    // overrides the level's particle count when > 0
	Seed         uint64        `mapstructure:"seed"`
	DB           string        `mapstructure:"db"`
	LogLevel     string        `mapstructure:"log_level"`
	LogFormat    string        `mapstructure:"log_format"`
	Addr         string        `mapstructure:"addr"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("tick", game.DefaultTick)
	v.SetDefault("type_interval", game.DefaultTypeInterval)
	v.SetDefault("hold_timeout", game.DefaultHoldTimeout)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("addr", "localhost:8080")
}

// Load reads config.yaml from the config directory if present and decodes
// all settings from v.
func Load(v *viper.Viper) (Settings, error) {
	if dir := v.GetString("config_dir"); dir != "" {
		v.SetConfigFile(filepath.Join(dir, "config.yaml"))
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	if s.DB == "" && s.ConfigDir != "" {
		s.DB = filepath.Join(s.ConfigDir, "scores.db")
	}
	return s, nil
}

// LogFile returns the path the TUI writes its log to.
func (s Settings) LogFile() string {
	return filepath.Join(s.ConfigDir, "arcade.log")
}

// SessionOptions converts the timing settings for game.NewSession.
func (s Settings) SessionOptions() game.Options {
	return game.Options{Tick: s.Tick, Seed: s.Seed}
}

// LoadDotEnv loads .env files into the process environment. Missing files
// are skipped; variables already set are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "arcade"), nil
}

// EnsureConfigDir creates dir, or the default directory when dir is empty.
func EnsureConfigDir(dir string) (string, error) {
	if dir == "" {
		var err error
		if dir, err = GetConfigDir(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating config dir: %w", err)
	}
	return dir, nil
}
