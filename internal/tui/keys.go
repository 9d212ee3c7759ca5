package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the protocol TUI.
type KeyMap struct {
	// Tabs.
	TabDashboard key.Binding
	TabList      key.Binding
	TabNew       key.Binding
	TabAssist    key.Binding
	NextTab      key.Binding

	// List navigation and row actions.
	Up      key.Binding
	Down    key.Binding
	Search  key.Binding
	Sign    key.Binding
	Deliver key.Binding
	Cancel  key.Binding

	// Form and prompt editing.
	NextField  key.Binding
	PrevField  key.Binding
	ToggleType key.Binding
	Submit     key.Binding
	Confirm    key.Binding
	Back       key.Binding

	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	TabDashboard: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "painel"),
	),
	TabList: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "protocolos"),
	),
	TabNew: key.NewBinding(
		key.WithKeys("3", "n"),
		key.WithHelp("3/n", "novo"),
	),
	TabAssist: key.NewBinding(
		key.WithKeys("4", "i"),
		key.WithHelp("4/i", "assistente"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next tab"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Sign: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sign"),
	),
	Deliver: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "deliver"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "cancel"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("Tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("S-Tab", "prev field"),
	),
	ToggleType: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("C-t", "físico/digital"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "save"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "confirm"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}
