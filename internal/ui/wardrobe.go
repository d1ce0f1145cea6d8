package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohithprakash15/dripadvisor/internal/advisor"
	"github.com/rohithprakash15/dripadvisor/internal/wardrobe"
)

type wardrobeState struct {
	filter    wardrobe.Filter
	sortSpec  wardrobe.SortSpec
	selection *wardrobe.Selection
	cursor    int
	info      string
}

func newWardrobeState() wardrobeState {
	return wardrobeState{
		sortSpec:  wardrobe.DefaultSort(),
		selection: wardrobe.NewSelection(),
	}
}

// visibleItems returns the wardrobe as currently filtered and sorted.
func (m Model) visibleItems() []advisor.ClothingItem {
	return wardrobe.Apply(m.snapshot.Items, m.wardrobe.filter, m.wardrobe.sortSpec)
}

func (m *Model) clampWardrobeCursor() {
	count := len(m.visibleItems())
	if count == 0 {
		m.wardrobe.cursor = 0
		return
	}
	if m.wardrobe.cursor >= count {
		m.wardrobe.cursor = count - 1
	}
}

func (m Model) handleWardrobeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.visibleItems()

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.wardrobe.cursor < len(items)-1 {
			m.wardrobe.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.wardrobe.cursor > 0 {
			m.wardrobe.cursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.wardrobe.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		if len(items) > 0 {
			m.wardrobe.cursor = len(items) - 1
		}

	case key.Matches(msg, m.keys.CycleFilter):
		m.wardrobe.filter = m.wardrobe.filter.Next()
		m.clampWardrobeCursor()

	case key.Matches(msg, m.keys.FlipFrequency):
		m.wardrobe.sortSpec.FrequencyDesc = !m.wardrobe.sortSpec.FrequencyDesc
	case key.Matches(msg, m.keys.FlipCreated):
		m.wardrobe.sortSpec.CreatedDesc = !m.wardrobe.sortSpec.CreatedDesc

	case key.Matches(msg, m.keys.Select):
		// Pick as outfit base item
		if m.wardrobe.cursor < len(items) {
			item := items[m.wardrobe.cursor]
			if !m.wardrobe.selection.ToggleTap(item) {
				m.wardrobe.info = fmt.Sprintf("%q is unavailable and can't go in an outfit.", item.Description)
			} else {
				m.wardrobe.info = ""
			}
		}

	case key.Matches(msg, m.keys.ManageSelect):
		if m.wardrobe.cursor < len(items) {
			m.wardrobe.selection.ToggleManage(items[m.wardrobe.cursor])
			m.wardrobe.info = ""
		}

	case key.Matches(msg, m.keys.Delete):
		if m.wardrobe.selection.Mode() == wardrobe.ModeManage && m.wardrobe.selection.Count() > 0 {
			ids := m.wardrobe.selection.IDs()
			m.startPending("Deleting items...")
			return m, deleteItemsCmd(m.ctx, m.client, ids)
		}
		m.wardrobe.info = "Select items with 'm' first."

	case key.Matches(msg, m.keys.MarkAvailable):
		if m.wardrobe.selection.Mode() == wardrobe.ModeManage && m.wardrobe.selection.Count() > 0 {
			ids := m.wardrobe.selection.IDs()
			m.startPending("Marking items available...")
			return m, markAvailableCmd(m.ctx, m.client, ids)
		}
		m.wardrobe.info = "Select items with 'm' first."

	case key.Matches(msg, m.keys.Build):
		// Build an outfit around the tapped items
		return m.openView(ViewBuild)

	case key.Matches(msg, m.keys.Refresh):
		m.startPending("Refreshing wardrobe...")
		return m, refreshWardrobeCmd(m.ctx, m.client)
	}

	return m, nil
}

func deleteItemsCmd(ctx context.Context, client *advisor.Client, ids []string) tea.Cmd {
	return func() tea.Msg {
		if err := client.DeleteClothingItems(ctx, ids); err != nil {
			return wardrobeActionMsg{err: err}
		}
		return wardrobeActionMsg{info: fmt.Sprintf("Deleted %d item(s).", len(ids))}
	}
}

func markAvailableCmd(ctx context.Context, client *advisor.Client, ids []string) tea.Cmd {
	return func() tea.Msg {
		if err := client.MarkAvailable(ctx, ids); err != nil {
			return wardrobeActionMsg{err: err}
		}
		return wardrobeActionMsg{info: fmt.Sprintf("Marked %d item(s) available.", len(ids))}
	}
}

func (m Model) handleWardrobeAction(msg wardrobeActionMsg) (tea.Model, tea.Cmd) {
	m.stopPending()

	if msg.err != nil {
		if m.sessionLost(msg.err) {
			return m, nil
		}
		m.alert = errorText(msg.err)
		return m, nil
	}

	m.wardrobe.info = msg.info
	m.wardrobe.selection.Clear()
	return m, refreshWardrobeCmd(m.ctx, m.client)
}

func (m Model) renderWardrobe() string {
	styles := m.theme.Styles()
	items := m.visibleItems()

	var b strings.Builder

	sortDir := func(desc bool) string {
		if desc {
			return "↓"
		}
		return "↑"
	}
	b.WriteString(styles.MutedText.Render(fmt.Sprintf(
		"Filter: %s | Sort: worn %s, added %s",
		m.wardrobe.filter.Label(),
		sortDir(m.wardrobe.sortSpec.FrequencyDesc),
		sortDir(m.wardrobe.sortSpec.CreatedDesc),
	)))
	b.WriteString("\n\n")

	if len(items) == 0 {
		b.WriteString(styles.FaintText.Render("No clothing items found"))
		b.WriteString("\n")
	}

	for i, item := range items {
		status := "unavailable"
		if item.Available {
			status = "available"
		}
		badge := styles.StatusStyle(status).Render(status)

		marker := "  "
		if m.wardrobe.selection.Selected(item.ID) {
			if m.wardrobe.selection.Mode() == wardrobe.ModeManage {
				marker = styles.WarningText.Render("◆ ")
			} else {
				marker = styles.AccentText.Render("● ")
			}
		}

		line := fmt.Sprintf("%s  worn %d×", item.Description, int(item.Frequency))
		if i == m.wardrobe.cursor {
			line = styles.Selected.Render(line)
		} else {
			line = styles.Text.Render(line)
		}

		b.WriteString(marker)
		b.WriteString(badge)
		b.WriteString(" ")
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.wardrobe.selection.Mode() {
	case wardrobe.ModeTap:
		b.WriteString(styles.AccentText.Render(fmt.Sprintf("%d item(s) picked for an outfit. Press 'b' to build.", m.wardrobe.selection.Count())))
		b.WriteString("\n")
	case wardrobe.ModeManage:
		b.WriteString(styles.WarningText.Render(fmt.Sprintf("%d item(s) selected. 'd' delete | 'a' mark available", m.wardrobe.selection.Count())))
		b.WriteString("\n")
	}

	if m.wardrobe.info != "" {
		b.WriteString(styles.InfoText.Render(m.wardrobe.info))
		b.WriteString("\n")
	}
	if m.snapshot.LastError != nil {
		b.WriteString(styles.DangerText.Render("Last refresh failed: " + errorText(m.snapshot.LastError)))
		b.WriteString("\n")
	}

	b.WriteString(styles.FaintText.Render("space pick | m manage | f filter | s/S sort | r refresh | esc home"))

	return styles.Box.Render(b.String())
}
