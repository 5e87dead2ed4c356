package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/maxwellsmart84/portfolio-2025/internal/game"
	"github.com/maxwellsmart84/portfolio-2025/internal/tui/views"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewPlay ViewType = iota
	ViewScores
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	View     ViewType
	Shortcut string
}

// ViewSwitchMsg requests a view change
type ViewSwitchMsg struct {
	View ViewType
}

// Options wires the app to its collaborators.
type Options struct {
	Play   views.PlayOptions
	Scores views.Lister // nil disables the history view
}

// AppModel is the main TUI model
type AppModel struct {
	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	// Sub-models (views)
	playView   views.PlayModel
	scoresView views.ScoresModel

	// Help overlay
	help     help.Model
	showHelp bool
}

// NewApp creates the TUI around session.
func NewApp(session *game.Session, opts Options) AppModel {
	menuItems := []MenuItem{
		{Label: "Play", View: ViewPlay, Shortcut: "1"},
		{Label: "Best runs", View: ViewScores, Shortcut: "2"},
	}

	return AppModel{
		sidebarWidth: 18,
		currentView:  ViewPlay,
		menuItems:    menuItems,

		playView:   views.NewPlayModel(session, opts.Play),
		scoresView: views.NewScoresModel(opts.Scores, session.Level().Name),
		help:       help.New(),
	}
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.playView.Init(), m.scoresView.Refresh())
}

// quit stops the play view's clocks before exiting.
func (m AppModel) quit() (tea.Model, tea.Cmd) {
	m.playView.Close()
	return m, tea.Quit
}

func (m *AppModel) switchTo(v ViewType) {
	m.currentView = v
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
			break
		}
	}
	m.sidebarActive = false
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}

		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return m.quit()
		case key.Matches(msg, keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, keys.Play):
			m.switchTo(ViewPlay)
			return m, nil
		case key.Matches(msg, keys.Scores):
			m.switchTo(ViewScores)
			return m, m.scoresView.Refresh()
		case key.Matches(msg, keys.Sidebar):
			m.sidebarActive = !m.sidebarActive
			return m, nil
		case msg.String() == "esc":
			if m.sidebarActive {
				return m.quit()
			}
			m.sidebarActive = true
			return m, nil
		}

		// Sidebar navigation when active
		if m.sidebarActive {
			switch {
			case key.Matches(msg, keys.Down):
				if m.selectedMenu < len(m.menuItems)-1 {
					m.selectedMenu++
				}
			case key.Matches(msg, keys.Up):
				if m.selectedMenu > 0 {
					m.selectedMenu--
				}
			case key.Matches(msg, keys.Select):
				m.switchTo(m.menuItems[m.selectedMenu].View)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width

		contentWidth := m.width - m.sidebarWidth - 4
		contentHeight := m.height - 2

		m.playView.SetSize(contentWidth, contentHeight)
		m.playView.SetOrigin(m.sidebarWidth + sidebarEdge + contentPadX)
		m.scoresView.SetSize(contentWidth, contentHeight)
		return m, nil

	case ViewSwitchMsg:
		m.switchTo(msg.View)
		return m, nil

	case views.RunRecordedMsg:
		var playCmd, scoresCmd tea.Cmd
		m.playView, playCmd = m.playView.Update(msg)
		m.scoresView, scoresCmd = m.scoresView.Update(msg)
		return m, tea.Batch(playCmd, scoresCmd)

	case tea.MouseMsg:
		if m.currentView != ViewPlay || m.sidebarActive {
			return m, nil
		}
	}

	// Input goes to the active view; clocks and loads always reach the play view.
	var cmd tea.Cmd
	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		if m.currentView == ViewPlay {
			m.playView, cmd = m.playView.Update(msg)
		} else {
			m.scoresView, cmd = m.scoresView.Update(msg)
		}
		cmds = append(cmds, cmd)
	default:
		m.playView, cmd = m.playView.Update(msg)
		cmds = append(cmds, cmd)
		m.scoresView, cmd = m.scoresView.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var content string
	switch m.currentView {
	case ViewPlay:
		content = m.playView.View()
	case ViewScores:
		content = m.scoresView.View()
	}

	contentWidth := m.width - m.sidebarWidth - 4
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainContent)
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	items = append(items, SidebarTitleStyle.Render(" ARCADE "))
	items = append(items, "")

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Label

		var style lipgloss.Style
		if i == m.selectedMenu {
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			} else {
				style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
		} else {
			style = SidebarItemStyle
		}

		items = append(items, style.Render(label))
	}

	usedHeight := len(items) + 4
	if m.height > usedHeight {
		for i := 0; i < m.height-usedHeight-2; i++ {
			items = append(items, "")
		}
	}

	items = append(items, SidebarHelpStyle.Render(m.help.ShortHelpView(keys.ShortHelp())))

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	h := m.help
	h.ShowAll = true
	text := HelpTitleStyle.Render("arcade") + "\n" +
		h.View(keys) + "\n\n" +
		"Click the left or right half of the play area to walk,\n" +
		"double-click to jump, click to continue dialogue.\n\n" +
		HelpFooterStyle.Render("Press any key to close")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, HelpBoxStyle.Render(text))
}

// Play returns the play view.
func (m AppModel) Play() views.PlayModel { return m.playView }

// CurrentView returns the active view.
func (m AppModel) CurrentView() ViewType { return m.currentView }
