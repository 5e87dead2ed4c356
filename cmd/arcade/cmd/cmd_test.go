package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maxwellsmart84/portfolio-2025/internal/game"
	"github.com/maxwellsmart84/portfolio-2025/internal/level"
	"github.com/maxwellsmart84/portfolio-2025/internal/logger"
	"github.com/maxwellsmart84/portfolio-2025/internal/scores"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Options{Level: "error", Output: io.Discard})
	os.Exit(m.Run())
}

func TestFinishedRunsRecordsOncePerCelebration(t *testing.T) {
	store, err := scores.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	observe := finishedRuns(ctx, store, "rooftops", game.DefaultTick)

	celebrating := game.PhaseCelebrating.String()
	inactive := game.PhaseInactive.String()
	frames := []game.Snapshot{
		{Tick: 10, Phase: inactive, Collected: 5, Total: 6, Score: 500},
		{Tick: 11, Phase: celebrating, Collected: 6, Total: 6, Score: 600},
		{Tick: 12, Phase: celebrating, Collected: 6, Total: 6, Score: 600},
		{Tick: 0, Phase: inactive},
		{Tick: 40, Phase: celebrating, Collected: 6, Total: 6, Score: 600},
	}
	for _, snap := range frames {
		observe(snap)
	}

	n, err := store.Count(ctx, "rooftops")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("recorded %d runs, want 2", n)
	}

	best, err := store.Best(ctx, "rooftops", 1)
	if err != nil {
		t.Fatal(err)
	}
	if best[0].Ticks != 11 || best[0].Duration != 11*game.DefaultTick {
		t.Errorf("best run = %+v, want the 11 tick run", best[0])
	}
}

func TestLevelCheck(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	if err := level.Save(good, game.DefaultLevel()); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("platforms = []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		args    []string
		wantErr bool
		want    string
	}{
		{"valid", []string{good}, false, `"rooftops", 5 platforms, 6 coins`},
		{"invalid", []string{good, bad}, true, "✗"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			levelCheckCmd.SetOut(&out)
			err := runLevelCheck(levelCheckCmd, tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output %q does not contain %q", out.String(), tt.want)
			}
		})
	}
}
