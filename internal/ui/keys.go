package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application. Handlers dispatch
// with key.Matches.
type keyMap struct {
	// Global
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Back       key.Binding
	SignOut    key.Binding

	// Forms
	NextField key.Binding
	PrevField key.Binding
	Confirm   key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Wardrobe actions
	CycleFilter   key.Binding
	FlipFrequency key.Binding
	FlipCreated   key.Binding
	Select        key.Binding
	ManageSelect  key.Binding
	Delete        key.Binding
	MarkAvailable key.Binding
	Build         key.Binding
	Refresh       key.Binding

	// Outfit actions
	UseOutfit      key.Binding
	NewSuggestions key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit from anywhere"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "Cycle theme"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to home"),
		),
		SignOut: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Sign out (home)"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open / confirm"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		CycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle availability filter"),
		),
		FlipFrequency: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Flip frequency sort"),
		),
		FlipCreated: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Flip date sort"),
		),
		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Pick item for an outfit"),
		),
		ManageSelect: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Select item for manage"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete selected"),
		),
		MarkAvailable: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Mark selected available"),
		),
		Build: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Build outfit from picks"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh wardrobe"),
		),

		UseOutfit: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Wear the highlighted outfit"),
		),
		NewSuggestions: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New suggestions"),
		),
	}
}

// helpSections groups the bindings for the help overlay. The overlay and
// FullHelp both read from here.
func (k keyMap) helpSections() []helpSection {
	return []helpSection{
		{
			title: "Navigation",
			keys:  []key.Binding{k.Down, k.Up, k.Top, k.Bottom, k.Confirm, k.Back},
		},
		{
			title: "Wardrobe",
			keys: []key.Binding{
				k.Select, k.ManageSelect, k.Delete, k.MarkAvailable,
				k.CycleFilter, k.FlipFrequency, k.FlipCreated, k.Refresh, k.Build,
			},
		},
		{
			title: "Outfits",
			keys:  []key.Binding{k.UseOutfit, k.NewSuggestions},
		},
		{
			title: "General",
			keys:  []key.Binding{k.CycleTheme, k.SignOut, k.Help, k.Quit, k.ForceQuit},
		},
	}
}

type helpSection struct {
	title string
	keys  []key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	sections := k.helpSections()
	rows := make([][]key.Binding, 0, len(sections))
	for _, section := range sections {
		rows = append(rows, section.keys)
	}
	return rows
}
