package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type homeEntry struct {
	label string
	desc  string
	view  View
}

type homeState struct {
	cursor int
}

func newHomeState() homeState {
	return homeState{}
}

func homeEntries() []homeEntry {
	return []homeEntry{
		{"Wardrobe", "Browse, filter, and manage your clothing", ViewWardrobe},
		{"Outfit Suggestions", "Get outfits for today's weather", ViewSuggest},
		{"Build an Outfit", "Build around pieces you pick", ViewBuild},
		{"Add Clothing", "Upload a new clothing item", ViewUpload},
		{"Weather", "Check the weather for a city", ViewWeather},
		{"Profile", "View and edit your profile", ViewProfile},
	}
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := homeEntries()

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.home.cursor < len(entries)-1 {
			m.home.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.home.cursor > 0 {
			m.home.cursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.home.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.home.cursor = len(entries) - 1

	case key.Matches(msg, m.keys.Confirm):
		return m.openView(entries[m.home.cursor].view)

	case key.Matches(msg, m.keys.SignOut):
		m.resetToLogin("")
		return m, nil
	}

	return m, nil
}

// openView navigates to a destination, kicking off whatever fetch the screen
// needs on entry.
func (m Model) openView(view View) (tea.Model, tea.Cmd) {
	m.currentView = view
	switch view {
	case ViewWardrobe:
		m.wardrobe = newWardrobeState()
		if !m.snapshot.Loaded {
			return m, refreshWardrobeCmd(m.ctx, m.client)
		}
	case ViewSuggest:
		m.outfits = newOutfitState()
		m.outfits.build = false
		m.outfits.prefill(m.userPrefs.Weather)
	case ViewBuild:
		m.outfits = newOutfitState()
		m.outfits.build = true
		m.outfits.baseIDs = m.wardrobe.selection.IDs()
		m.outfits.prefill(m.userPrefs.Weather)
	case ViewUpload:
		m.upload = newUploadState()
	case ViewProfile:
		m.profile = newProfileState()
		m.startPending("Loading profile...")
		return m, loadProfileCmd(m.ctx, m.client)
	case ViewWeather:
		m.weather = newWeatherState(m.userPrefs.Weather)
	}
	return m, nil
}

func (m Model) renderHome() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Title.Render("What are we dressing for today?"))
	b.WriteString("\n\n")

	for i, entry := range homeEntries() {
		label := entry.label
		if i == m.home.cursor {
			b.WriteString(styles.Selected.Render(" " + label + " "))
		} else {
			b.WriteString(styles.Text.Render(" " + label + " "))
		}
		b.WriteString("  ")
		b.WriteString(styles.FaintText.Render(entry.desc))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("enter open · x sign out · q quit"))

	return styles.Box.Render(b.String())
}
