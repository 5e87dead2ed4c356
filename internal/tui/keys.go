package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Play     key.Binding
	Scores   key.Binding
	Sidebar  key.Binding
	Help     key.Binding
	Quit     key.Binding
	Move     key.Binding
	Jump     key.Binding
	Continue key.Binding
	Reset    key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
}

var keys = keyMap{
	Play:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "play")),
	Scores:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "best runs")),
	Sidebar:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "toggle sidebar focus")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "show this help")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	Move:     key.NewBinding(key.WithKeys("left", "right", "a", "d"), key.WithHelp("←/→ a/d", "move")),
	Jump:     key.NewBinding(key.WithKeys("up", "w", " "), key.WithHelp("↑ w space", "jump")),
	Continue: key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter e", "continue dialogue")),
	Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
	Up:       key.NewBinding(key.WithKeys("k", "up")),
	Down:     key.NewBinding(key.WithKeys("j", "down")),
	Select:   key.NewBinding(key.WithKeys("enter", "l", "right")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Scores, k.Sidebar, k.Help, k.Quit},
		{k.Move, k.Jump, k.Continue, k.Reset},
	}
}
