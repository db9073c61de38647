package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	PgUp   key.Binding
	PgDown key.Binding
	New    key.Binding
	Toggle key.Binding
	Delete key.Binding
	Focus  key.Binding
	Quit   key.Binding

	Save   key.Binding
	Cancel key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PgUp:   key.NewBinding(key.WithKeys("pgup", "left"), key.WithHelp("pgup", "prev page")),
		PgDown: key.NewBinding(key.WithKeys("pgdown", "right"), key.WithHelp("pgdn", "next page")),
		New:    key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "new item")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "check")),
		Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Focus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Save:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// listHelp and formHelp implement help.KeyMap for each focus.
type listHelp struct{ k keyMap }

func (h listHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.New, h.k.Toggle, h.k.Delete, h.k.Focus, h.k.Quit}
}

func (h listHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{{h.k.Up, h.k.Down, h.k.PgUp, h.k.PgDown}, h.ShortHelp()}
}

type formHelp struct{ k keyMap }

func (h formHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Save, h.k.Cancel, h.k.Focus}
}

func (h formHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }
