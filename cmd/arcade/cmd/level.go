package cmd

import (
	"fmt"

	"github.com/maxwellsmart84/portfolio-2025/internal/game"
	"github.com/maxwellsmart84/portfolio-2025/internal/level"
	"github.com/spf13/cobra"
)

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Inspect and author level files",
	Long: `Tools for level files. A level file may be YAML or TOML and only needs
the sections it changes; everything else falls back to the built-in level.`,
}

var levelCheckCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate level files",
	Long: `Load each file and report whether it is playable: it needs at least one
platform, one coin, exactly one dialogue beat per coin and sane tuning.

Example:
  arcade level check mylevel.yaml
  arcade level check levels/*.toml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLevelCheck,
}

var levelDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the built-in level as a starting point",
	Long: `Print the built-in level, or the one given with --level, in YAML or TOML.

Example:
  arcade level dump > mylevel.yaml
  arcade level dump --format toml > mylevel.toml`,
	Args: cobra.NoArgs,
	RunE: runLevelDump,
}

func init() {
	rootCmd.AddCommand(levelCmd)
	levelCmd.AddCommand(levelCheckCmd)
	levelCmd.AddCommand(levelDumpCmd)
	levelDumpCmd.Flags().String("format", "yaml", "output format: yaml or toml")
}

func runLevelCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		lvl, err := level.Load(path)
		if err != nil {
			fmt.Fprintf(out, "✗ %v\n", err)
			failed++
			continue
		}
		fmt.Fprintf(out, "✓ %s: %q, %d platforms, %d coins\n", path, lvl.Name, len(lvl.Platforms), len(lvl.Coins))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d level files are invalid", failed, len(args))
	}
	return nil
}

func runLevelDump(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	s, err := loadSettings()
	if err != nil {
		return err
	}

	lvl := game.DefaultLevel()
	if s.Level != "" {
		if lvl, err = level.Load(s.Level); err != nil {
			return err
		}
	}

	data, err := level.Encode(lvl, level.Format(format))
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
