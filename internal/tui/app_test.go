package tui

import (
	"io"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/maxwellsmart84/portfolio-2025/internal/game"
	"github.com/maxwellsmart84/portfolio-2025/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Options{Level: "error", Output: io.Discard})
	os.Exit(m.Run())
}

func newTestApp(t *testing.T) AppModel {
	t.Helper()
	s, err := game.NewSession(game.DefaultLevel(), game.Options{Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	m, _ := NewApp(s, Options{}).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(AppModel)
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppSwitchViews(t *testing.T) {
	m := newTestApp(t)

	tests := []struct {
		key  string
		want ViewType
	}{
		{"2", ViewScores},
		{"1", ViewPlay},
	}
	for _, tt := range tests {
		next, _ := m.Update(keyPress(tt.key))
		m = next.(AppModel)
		if m.CurrentView() != tt.want {
			t.Errorf("after %q view = %v, want %v", tt.key, m.CurrentView(), tt.want)
		}
	}
}

func TestAppGameKeysReachPlayView(t *testing.T) {
	m := newTestApp(t)
	next, _ := m.Update(keyPress("d"))
	m = next.(AppModel)
	if !m.Play().Started() {
		t.Fatal("first key did not start the game")
	}
	next, _ = m.Update(keyPress("d"))
	m = next.(AppModel)
	if got := m.Play().Session().Controls(); got != game.ControlRight {
		t.Errorf("controls = %v, want right", got)
	}
}

func TestAppQuitClosesPlay(t *testing.T) {
	m := newTestApp(t)
	next, cmd := m.Update(keyPress("q"))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command is not tea.Quit")
	}
	if !next.(AppModel).Play().Closed() {
		t.Error("play view still running after quit")
	}
}

func TestAppHelpOverlay(t *testing.T) {
	m := newTestApp(t)
	next, _ := m.Update(keyPress("?"))
	m = next.(AppModel)
	if !m.showHelp {
		t.Fatal("help not shown")
	}
	if m.View() == "" {
		t.Error("empty help view")
	}
	next, _ = m.Update(keyPress("d"))
	m = next.(AppModel)
	if m.showHelp || m.Play().Started() {
		t.Error("closing key should only dismiss the help")
	}
}
