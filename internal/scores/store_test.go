package scores

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sub", "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndBest(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	finished := time.UnixMilli(1_700_000_000_000)
	runs := []Run{
		{Level: "rooftops", Score: 600, Coins: 6, Total: 6, Ticks: 900, Duration: 15 * time.Second, FinishedAt: finished},
		{Level: "rooftops", Score: 600, Coins: 6, Total: 6, Ticks: 700, Duration: 12 * time.Second, FinishedAt: finished},
		{Level: "rooftops", Score: 300, Coins: 3, Total: 6, Ticks: 400, Duration: 7 * time.Second, FinishedAt: finished},
		{Level: "tiny", Score: 100, Coins: 1, Total: 1, Ticks: 50, Duration: time.Second, FinishedAt: finished},
	}
	for _, r := range runs {
		got, err := s.Record(ctx, r)
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
		if got.ID == 0 {
			t.Error("Record did not assign an id")
		}
	}

	best, err := s.Best(ctx, "rooftops", 2)
	if err != nil {
		t.Fatalf("Best: %v", err)
	}
	if len(best) != 2 {
		t.Fatalf("got %d runs, want 2", len(best))
	}
	if best[0].Ticks != 700 || best[1].Ticks != 900 {
		t.Errorf("tie not broken by ticks: %d then %d", best[0].Ticks, best[1].Ticks)
	}
	if best[0].Duration != 12*time.Second || !best[0].FinishedAt.Equal(finished) {
		t.Errorf("round-tripped run = %+v", best[0])
	}

	all, err := s.Best(ctx, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Errorf("all levels = %d runs, want 4", len(all))
	}

	tests := []struct {
		level string
		want  int
	}{
		{"", 4},
		{"rooftops", 3},
		{"tiny", 1},
		{"missing", 0},
	}
	for _, tt := range tests {
		n, err := s.Count(ctx, tt.level)
		if err != nil {
			t.Fatal(err)
		}
		if n != tt.want {
			t.Errorf("Count(%q) = %d, want %d", tt.level, n, tt.want)
		}
	}
}

func TestRecordStampsFinishTime(t *testing.T) {
	s := openTestStore(t)
	before := time.Now().Add(-time.Second)
	r, err := s.Record(context.Background(), Run{Level: "rooftops", Score: 100, Coins: 1, Total: 6})
	if err != nil {
		t.Fatal(err)
	}
	if r.FinishedAt.Before(before) {
		t.Errorf("finished at %v, want now", r.FinishedAt)
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Record(context.Background(), Run{Level: "rooftops", Score: 600}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	n, err := s.Count(context.Background(), "")
	if err != nil || n != 1 {
		t.Errorf("after reopen count = %d, err = %v", n, err)
	}
}
