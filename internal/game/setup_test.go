package game

import (
	"io"
	"os"
	"testing"

	"github.com/maxwellsmart84/portfolio-2025/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Options{Level: "error", Output: io.Discard})
	os.Exit(m.Run())
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(DefaultLevel(), Options{Seed: 42})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

// collectAt teleports the character onto a coin and runs one tick.
func collectAt(t *testing.T, s *Session, coin int) {
	t.Helper()
	s.character.Pos = s.level.Coins[coin]
	s.character.Vel = Vec{}
	res := s.Tick()
	for _, c := range res.Collected {
		if c == coin {
			return
		}
	}
	t.Fatalf("coin %d not collected at %v (collected %v)", coin, s.level.Coins[coin], res.Collected)
}
