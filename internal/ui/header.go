package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the top bar: app name, current screen, and the
// wardrobe mirror status.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	logo := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Bold(true).
		Render("DRIP ADVISOR")

	title := styles.AccentText.Render(m.screenTitle())

	var status string
	switch {
	case m.session == nil || !m.session.Active():
		status = styles.MutedText.Render("signed out")
	case m.snapshot.IsOffline():
		status = styles.StatusStyle("offline").Render("OFFLINE")
	case m.snapshot.Loaded:
		status = styles.MutedText.Render(fmt.Sprintf("%d items", len(m.snapshot.Items)))
	default:
		status = styles.MutedText.Render("loading wardrobe")
	}

	hint := styles.FaintText.Render("? help")

	left := logo + "  " + title
	right := status + "  " + hint

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) screenTitle() string {
	switch m.currentView {
	case ViewLogin:
		return "Sign In"
	case ViewRegister:
		return "Create Account"
	case ViewHome:
		return "Home"
	case ViewWardrobe:
		return "Wardrobe"
	case ViewUpload:
		return "Add Clothing"
	case ViewSuggest:
		return "Outfit Suggestions"
	case ViewBuild:
		return "Build an Outfit"
	case ViewProfile:
		return "Profile"
	case ViewWeather:
		return "Weather"
	default:
		return ""
	}
}
