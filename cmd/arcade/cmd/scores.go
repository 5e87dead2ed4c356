package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/maxwellsmart84/portfolio-2025/internal/level"
	"github.com/spf13/cobra"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best finished runs",
	Long: `List finished runs from the run history, best score first and
fastest first among equal scores.

Example:
  arcade scores
  arcade scores --limit 3
  arcade scores --all`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	rootCmd.AddCommand(scoresCmd)
	scoresCmd.Flags().Int("limit", 10, "number of runs to show")
	scoresCmd.Flags().Bool("all", false, "include every level, not just the configured one")
}

func runScores(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	all, _ := cmd.Flags().GetBool("all")

	s, err := loadSettings()
	if err != nil {
		return err
	}
	if _, err := setupLogging(s, os.Stderr); err != nil {
		return err
	}

	var name string
	if !all {
		lvl, err := level.LoadOrDefault(s.Level)
		if err != nil {
			return err
		}
		name = lvl.Name
	}

	store, err := openStore(s)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Best(cmd.Context(), name, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No finished runs yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tLEVEL\tSCORE\tCOINS\tTIME\tFINISHED")
	for i, r := range runs {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d/%d\t%s\t%s\n",
			i+1, r.Level, r.Score, r.Coins, r.Total,
			r.Duration.Round(10*time.Millisecond),
			r.FinishedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
