package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/maxwellsmart84/portfolio-2025/internal/game"
	"github.com/maxwellsmart84/portfolio-2025/internal/scores"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play the level headlessly with the autopilot",
	Long: `Run a session without a terminal UI. The autopilot walks and jumps
toward the nearest coin and skips through each dialogue, stopping once the
celebration starts or after --max-ticks physics steps.

Useful for checking that a custom level can be finished.

Example:
  arcade simulate
  arcade simulate --level mylevel.toml --max-ticks 20000
  arcade simulate --record`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().Int("max-ticks", 10000, "give up after this many physics steps")
	simulateCmd.Flags().Bool("record", false, "save a finished run to the run history")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	maxTicks, _ := cmd.Flags().GetInt("max-ticks")
	record, _ := cmd.Flags().GetBool("record")

	s, err := loadSettings()
	if err != nil {
		return err
	}
	if _, err := setupLogging(s, os.Stderr); err != nil {
		return err
	}

	session, err := newSession(s)
	if err != nil {
		return err
	}

	snap := game.Simulate(session, maxTicks)
	played := time.Duration(snap.Tick) * session.TickDuration()
	finished := snap.Phase == game.PhaseCelebrating.String()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Level:     %s\n", session.Level().Name)
	fmt.Fprintf(out, "Ticks:     %d (%s of game time)\n", snap.Tick, played.Round(time.Millisecond))
	fmt.Fprintf(out, "Coins:     %d/%d\n", snap.Collected, snap.Total)
	fmt.Fprintf(out, "Score:     %d\n", snap.Score)
	fmt.Fprintf(out, "Finished:  %v\n", finished)

	if !finished {
		return fmt.Errorf("autopilot did not finish within %d ticks", maxTicks)
	}
	if !record {
		return nil
	}

	store, err := openStore(s)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Record(context.Background(), scores.Run{
		Level:    session.Level().Name,
		Score:    snap.Score,
		Coins:    snap.Collected,
		Total:    snap.Total,
		Ticks:    snap.Tick,
		Duration: played,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Recorded:  run #%d\n", run.ID)
	return nil
}
