package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	New       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Switch    key.Binding
	Generate  key.Binding
	Export    key.Binding
	Import    key.Binding
	Quit      key.Binding
	UpDown    key.Binding
	Highlight key.Binding
	Move      key.Binding
	Filter    key.Binding
	Owner     key.Binding
	Save      key.Binding
	Cancel    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Delete:    key.NewBinding(key.WithKeys("backspace", "x"), key.WithHelp("x", "delete")),
		Switch:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		Generate:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate map")),
		Export:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Import:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		UpDown:    key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "select")),
		Highlight: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "highlight")),
		Move:      key.NewBinding(key.WithKeys("enter", "m"), key.WithHelp("enter", "move highlighted")),
		Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Owner:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "assign owner")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save region")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.New, k.Edit, k.Delete, k.Switch, k.Generate, k.Export, k.Import, k.Quit}
}

func (k keyMap) editorHelp() []key.Binding {
	return []key.Binding{k.Switch, k.Highlight, k.Move, k.Filter, k.Owner, k.Save, k.Cancel}
}
