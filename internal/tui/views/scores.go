package views

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/maxwellsmart84/portfolio-2025/internal/scores"
)

var (
	scoresTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ff6b6b")).
				MarginBottom(1)

	scoresEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Italic(true)
)

// Lister reads the best runs. *scores.Store implements it.
type Lister interface {
	Best(ctx context.Context, level string, limit int) ([]scores.Run, error)
}

type scoresLoadedMsg struct {
	runs []scores.Run
	err  error
}

// ScoresModel lists the best recorded runs.
type ScoresModel struct {
	store  Lister
	level  string
	limit  int
	table  table.Model
	runs   []scores.Run
	err    error
	width  int
	height int
}

// NewScoresModel lists the best runs of level from store. A nil store
// shows an empty list.
func NewScoresModel(store Lister, level string) ScoresModel {
	t := table.New(
		table.WithColumns(scoreColumns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	return ScoresModel{store: store, level: level, limit: 20, table: t}
}

func scoreColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Score", Width: 7},
		{Title: "Coins", Width: 7},
		{Title: "Ticks", Width: 7},
		{Title: "Time", Width: 8},
		{Title: "Finished", Width: 16},
	}
}

// Refresh reloads the runs.
func (m ScoresModel) Refresh() tea.Cmd {
	store, level, limit := m.store, m.level, m.limit
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		runs, err := store.Best(ctx, level, limit)
		return scoresLoadedMsg{runs: runs, err: err}
	}
}

// SetSize sets the content area size.
func (m *ScoresModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if height > 6 {
		m.table.SetHeight(height - 4)
	}
}

// Update handles messages.
func (m ScoresModel) Update(msg tea.Msg) (ScoresModel, tea.Cmd) {
	switch msg := msg.(type) {
	case scoresLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.runs = msg.runs
			m.table.SetRows(scoreRows(msg.runs))
		}
		return m, nil
	case RunRecordedMsg:
		if msg.Err == nil {
			return m, m.Refresh()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func scoreRows(runs []scores.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Score),
			fmt.Sprintf("%d/%d", r.Coins, r.Total),
			strconv.FormatUint(r.Ticks, 10),
			r.Duration.Round(100 * time.Millisecond).String(),
			r.FinishedAt.Format("2006-01-02 15:04"),
		}
	}
	return rows
}

// View renders the table.
func (m ScoresModel) View() string {
	title := scoresTitleStyle.Render("Best runs")
	if m.level != "" {
		title = scoresTitleStyle.Render("Best runs: " + m.level)
	}
	switch {
	case m.err != nil:
		return title + "\n" + playErrorStyle.Render(m.err.Error())
	case m.store == nil:
		return title + "\n" + scoresEmptyStyle.Render("Run history is disabled.")
	case len(m.runs) == 0:
		return title + "\n" + scoresEmptyStyle.Render("No finished runs yet. Collect every coin to set one.")
	}
	return title + "\n" + m.table.View()
}
