// Package cmd contains all CLI commands for arcade.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/maxwellsmart84/portfolio-2025/internal/config"
	"github.com/maxwellsmart84/portfolio-2025/internal/game"
	"github.com/maxwellsmart84/portfolio-2025/internal/level"
	"github.com/maxwellsmart84/portfolio-2025/internal/logger"
	"github.com/maxwellsmart84/portfolio-2025/internal/scores"
	"github.com/maxwellsmart84/portfolio-2025/internal/tui"
	"github.com/maxwellsmart84/portfolio-2025/internal/tui/views"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "A tiny platformer about a developer's career",
	Long: `arcade is a side-scrolling platformer for the terminal. Walk and
jump across the rooftops, collect every coin and read the story each one
unlocks. Collect them all for a celebration.

Running 'arcade' without arguments starts the game.

Settings come from flags, ARCADE_* environment variables (a .env file in
the working directory is loaded first) and config.yaml in the config
directory.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game (the default when no command is given)",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.AddCommand(playCmd)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/arcade)")
	flags.String("level", "", "level file (.yaml, .yml or .toml)")
	flags.String("assets", "", "sprite directory containing sprites.yaml")
	flags.Duration("tick", game.DefaultTick, "physics step")
	flags.Duration("type-interval", game.DefaultTypeInterval, "typewriter reveal interval")
	flags.Duration("hold-timeout", game.DefaultHoldTimeout, "release a key after this long without a repeat (terminal only)")
	flags.Int("particles", 0, "celebration particle count (0 keeps the level's)")
	flags.Uint64("seed", 0, "random seed for the celebration (0 picks one)")
	flags.String("db", "", "run history database (default is <config>/scores.db)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text or json")

	for key, flag := range map[string]string{
		"level":         "level",
		"assets":        "assets",
		"tick":          "tick",
		"type_interval": "type-interval",
		"hold_timeout":  "hold-timeout",
		"particles":     "particles",
		"seed":          "seed",
		"db":            "db",
		"log_level":     "log-level",
		"log_format":    "log-format",
	} {
		viper.BindPFlag(key, flags.Lookup(flag))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}

	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	config.SetDefaults(viper.GetViper())
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()
}

// loadSettings decodes settings and makes sure the config directory exists.
func loadSettings() (config.Settings, error) {
	s, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Settings{}, err
	}
	if _, err := config.EnsureConfigDir(s.ConfigDir); err != nil {
		return config.Settings{}, err
	}
	return s, nil
}

// setupLogging points the logger at w, or at the log file in the config
// directory when w is nil. The returned func closes the file.
func setupLogging(s config.Settings, w io.Writer) (func(), error) {
	closer := func() {}
	if w == nil {
		f, err := logger.OpenFile(s.LogFile())
		if err != nil {
			return nil, err
		}
		w = f
		closer = func() { f.Close() }
	}
	logger.Init(logger.Options{Level: s.LogLevel, Format: s.LogFormat, Output: w})
	return closer, nil
}

// newSession loads the configured level and starts a session on it.
func newSession(s config.Settings) (*game.Session, error) {
	lvl, err := level.LoadOrDefault(s.Level)
	if err != nil {
		return nil, err
	}
	if s.Particles > 0 {
		lvl.Tuning.Particles = s.Particles
	}
	return game.NewSession(lvl, s.SessionOptions())
}

func openStore(s config.Settings) (*scores.Store, error) {
	if err := os.MkdirAll(filepath.Dir(s.DB), 0755); err != nil {
		return nil, fmt.Errorf("creating database dir: %w", err)
	}
	return scores.Open(s.DB)
}

// runPlay launches the TUI.
func runPlay(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(s, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	session, err := newSession(s)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Play: views.PlayOptions{
			TypeInterval: s.TypeInterval,
			HoldTimeout:  s.HoldTimeout,
			SpriteDir:    s.Assets,
		},
	}
	store, err := openStore(s)
	if err != nil {
		logger.Log.WithError(err).Warn("run history disabled")
	} else {
		defer store.Close()
		opts.Play.Recorder = store
		opts.Scores = store
	}

	p := tea.NewProgram(
		tui.NewApp(session, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
