package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings for the diagnostics TUI.
// It implements the help.KeyMap interface for bubbles/help integration.
type keyMap struct {
	Quit       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Tab1       key.Binding
	Tab2       key.Binding
	Tab3       key.Binding
	Tab4       key.Binding
	Pause      key.Binding
	ClearLog   key.Binding
	Filter     key.Binding
	Context    key.Binding
	Autoscroll key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Help       key.Binding
}

// ShortHelp returns the compact set of keybindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.NextTab, k.Pause, k.Quit}
}

// FullHelp returns the expanded keybinding groups shown when help is
// toggled.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Tab1, k.Tab2, k.Tab3, k.Tab4},
		{k.Pause, k.ClearLog, k.Filter, k.Context, k.Autoscroll},
		{k.ScrollUp, k.ScrollDown, k.Help, k.Quit},
	}
}

// keys holds the default key bindings used by the application.
var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	NextTab:    key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next tab")),
	PrevTab:    key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "prev tab")),
	Tab1:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "frame")),
	Tab2:       key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "memory")),
	Tab3:       key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "console")),
	Tab4:       key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "system")),
	Pause:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause console")),
	ClearLog:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear console")),
	Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Context:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle context")),
	Autoscroll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "autoscroll")),
	ScrollUp:   key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "scroll up")),
	ScrollDown: key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/dn", "scroll down")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}
