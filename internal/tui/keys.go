package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Tab     key.Binding
	Toggle  key.Binding
	Start   key.Binding
	Save    key.Binding
	Filter  key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
	Escape  key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "projects")),
	Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "steps")),
	Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Toggle:  key.NewBinding(key.WithKeys("x", " ", "enter"), key.WithHelp("x/space", "toggle step")),
	Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start project")),
	Save:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save progress")),
	Filter:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Refresh: key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "reload")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

type keyHelp struct {
	key  string
	desc string
}

func helpFor(b key.Binding) keyHelp {
	h := b.Help()
	return keyHelp{key: h.Key, desc: h.Desc}
}
