package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohithprakash15/dripadvisor/internal/advisor"
	"github.com/rohithprakash15/dripadvisor/internal/prefs"
)

// maxSuggestions caps how many outfits are shown per generation.
const maxSuggestions = 3

const (
	outfitFieldWeather = iota
	outfitFieldTemperature
	outfitFieldDay
	outfitFieldSubmit
)

type outfitState struct {
	build   bool
	baseIDs []string

	inputs []textinput.Model
	focus  int
	errMsg string

	// Result browsing
	outfits  []advisor.Outfit
	cursor   int
	browsing bool
	info     string
}

func newOutfitState() outfitState {
	weather := textinput.New()
	weather.Placeholder = "weather description, e.g. light rain"
	weather.CharLimit = 200
	weather.Focus()

	temperature := textinput.New()
	temperature.Placeholder = "temperature in °C"
	temperature.CharLimit = 8

	day := textinput.New()
	day.Placeholder = "plans for the day (optional)"
	day.CharLimit = 200

	return outfitState{inputs: []textinput.Model{weather, temperature, day}}
}

// prefill seeds the weather fields from the cached weather lookup so a fresh
// city fetch is not required for every suggestion.
func (s *outfitState) prefill(cache prefs.WeatherCache) {
	if cache.Empty() {
		return
	}
	s.inputs[outfitFieldWeather].SetValue(cache.Description)
	s.inputs[outfitFieldTemperature].SetValue(strconv.FormatFloat(cache.Temperature, 'f', -1, 64))
}

func (s outfitState) typing() bool {
	return !s.browsing && s.focus < outfitFieldSubmit
}

func (m Model) handleOutfitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.outfits.browsing {
		return m.handleOutfitBrowseKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.gotoHome()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.outfits.focus = (m.outfits.focus + 1) % (outfitFieldSubmit + 1)
		m.syncOutfitFocus()
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.outfits.focus--
		if m.outfits.focus < 0 {
			m.outfits.focus = outfitFieldSubmit
		}
		m.syncOutfitFocus()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m.submitOutfits()
	}

	if m.outfits.focus < len(m.outfits.inputs) {
		var cmd tea.Cmd
		m.outfits.inputs[m.outfits.focus], cmd = m.outfits.inputs[m.outfits.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) syncOutfitFocus() {
	for i := range m.outfits.inputs {
		if i == m.outfits.focus {
			m.outfits.inputs[i].Focus()
		} else {
			m.outfits.inputs[i].Blur()
		}
	}
}

// submitOutfits validates the weather inputs locally; an empty weather
// description never reaches the network.
func (m Model) submitOutfits() (tea.Model, tea.Cmd) {
	weather := strings.TrimSpace(m.outfits.inputs[outfitFieldWeather].Value())
	tempRaw := strings.TrimSpace(m.outfits.inputs[outfitFieldTemperature].Value())
	day := strings.TrimSpace(m.outfits.inputs[outfitFieldDay].Value())

	if weather == "" {
		m.outfits.errMsg = "Please describe the weather first."
		return m, nil
	}
	temp, err := strconv.ParseFloat(tempRaw, 64)
	if err != nil {
		m.outfits.errMsg = "Enter the temperature as a number."
		return m, nil
	}
	if m.outfits.build && len(m.outfits.baseIDs) == 0 {
		m.outfits.errMsg = "Pick base items in the wardrobe first (space selects)."
		return m, nil
	}

	m.outfits.errMsg = ""
	if m.outfits.build {
		m.startPending("Building outfits around your picks...")
		req := advisor.BuildRequest{
			WeatherDescription: weather,
			Temperature:        temp,
			DayDescription:     day,
			BaseItemIDs:        m.outfits.baseIDs,
		}
		return m, buildOutfitsCmd(m.ctx, m.client, req)
	}

	m.startPending("Generating outfit suggestions...")
	req := advisor.GenerateRequest{
		WeatherDescription: weather,
		Temperature:        temp,
		DayDescription:     day,
	}
	return m, generateOutfitsCmd(m.ctx, m.client, req)
}

func generateOutfitsCmd(ctx context.Context, client *advisor.Client, req advisor.GenerateRequest) tea.Cmd {
	return func() tea.Msg {
		outfits, err := client.GenerateOutfits(ctx, req)
		return outfitsMsg{outfits: outfits, err: err}
	}
}

func buildOutfitsCmd(ctx context.Context, client *advisor.Client, req advisor.BuildRequest) tea.Cmd {
	return func() tea.Msg {
		outfits, err := client.BuildOutfits(ctx, req)
		return outfitsMsg{outfits: outfits, err: err}
	}
}

func (m Model) handleOutfits(msg outfitsMsg) (tea.Model, tea.Cmd) {
	m.stopPending()

	if msg.err != nil {
		if m.sessionLost(msg.err) {
			return m, nil
		}
		m.outfits.errMsg = errorText(msg.err)
		return m, nil
	}

	outfits := msg.outfits
	if len(outfits) > maxSuggestions {
		outfits = outfits[:maxSuggestions]
	}
	m.outfits.outfits = outfits
	m.outfits.cursor = 0
	m.outfits.browsing = true
	m.outfits.info = ""
	return m, nil
}

func (m Model) handleOutfitBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.outfits.cursor < len(m.outfits.outfits)-1 {
			m.outfits.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.outfits.cursor > 0 {
			m.outfits.cursor--
		}

	case key.Matches(msg, m.keys.NewSuggestions):
		// Back to the form for another round
		m.outfits.browsing = false
		m.outfits.outfits = nil
		m.outfits.info = ""
		m.outfits.focus = outfitFieldWeather
		m.syncOutfitFocus()

	case key.Matches(msg, m.keys.UseOutfit), key.Matches(msg, m.keys.Confirm):
		if m.outfits.cursor >= len(m.outfits.outfits) {
			return m, nil
		}
		outfit := m.outfits.outfits[m.outfits.cursor]
		if outfit.IsUsed {
			// Wearing an outfit is one-way; no second call, no undo
			m.outfits.info = "You're already wearing this one today."
			return m, nil
		}
		m.startPending("Marking outfit as worn...")
		return m, useOutfitCmd(m.ctx, m.client, outfit.ID)
	}
	return m, nil
}

func useOutfitCmd(ctx context.Context, client *advisor.Client, id string) tea.Cmd {
	return func() tea.Msg {
		err := client.UseOutfit(ctx, id)
		return outfitUsedMsg{id: id, err: err}
	}
}

func (m Model) handleOutfitUsed(msg outfitUsedMsg) (tea.Model, tea.Cmd) {
	m.stopPending()

	if msg.err != nil {
		if m.sessionLost(msg.err) {
			return m, nil
		}
		m.alert = errorText(msg.err)
		return m, nil
	}

	for i := range m.outfits.outfits {
		if m.outfits.outfits[i].ID == msg.id {
			m.outfits.outfits[i].IsUsed = true
		}
	}
	m.outfits.info = "Enjoy your outfit! The pieces are set aside while they're worn."
	// Item availability changed server-side; pick it up right away
	return m, refreshWardrobeCmd(m.ctx, m.client)
}

func (m Model) renderOutfits() string {
	if m.outfits.browsing {
		return m.renderOutfitList()
	}
	return m.renderOutfitForm()
}

func (m Model) renderOutfitForm() string {
	styles := m.theme.Styles()

	title := "What's the weather like?"
	if m.outfits.build {
		title = fmt.Sprintf("Building around %d picked item(s)", len(m.outfits.baseIDs))
	}

	labels := []string{"Weather", "Temperature (°C)", "Plans for the day"}

	var b strings.Builder
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n\n")
	for i, label := range labels {
		b.WriteString(styles.MutedText.Render(label))
		b.WriteString("\n")
		b.WriteString(m.outfits.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderAction(styles, "Suggest Outfits", m.outfits.focus == outfitFieldSubmit))

	if m.outfits.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.DangerText.Render(m.outfits.errMsg))
	}

	box := styles.Box
	if m.outfits.typing() {
		box = styles.FocusBox
	}
	return box.Render(b.String())
}

func (m Model) renderOutfitList() string {
	styles := m.theme.Styles()

	var b strings.Builder

	if len(m.outfits.outfits) == 0 {
		b.WriteString(styles.FaintText.Render("No outfits came back. Press 'n' to try different weather."))
		return styles.Box.Render(b.String())
	}

	for i, outfit := range m.outfits.outfits {
		name := outfit.Name
		if name == "" {
			name = fmt.Sprintf("Outfit %d", i+1)
		}

		header := styles.Title.Render(name)
		if outfit.IsUsed {
			header += " " + styles.StatusStyle("used").Render("worn")
		} else {
			header += " " + styles.StatusStyle("fresh").Render("fresh")
		}
		if i == m.outfits.cursor {
			header = styles.Selected.Render("▸ ") + header
		} else {
			header = "  " + header
		}
		b.WriteString(header)
		b.WriteString("\n")

		b.WriteString("  ")
		b.WriteString(styles.Text.Render(outfit.Description))
		b.WriteString("\n")
		if outfit.StylingTips != "" {
			b.WriteString("  ")
			b.WriteString(styles.InfoText.Render("Tip: " + outfit.StylingTips))
			b.WriteString("\n")
		}
		if len(outfit.ClothingItems) > 0 {
			pieces := make([]string, 0, len(outfit.ClothingItems))
			for _, item := range outfit.ClothingItems {
				pieces = append(pieces, item.Description)
			}
			b.WriteString("  ")
			b.WriteString(styles.MutedText.Render(strings.Join(pieces, ", ")))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.outfits.info != "" {
		b.WriteString(styles.SuccessText.Render(m.outfits.info))
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("u wear it | n new suggestions | esc home"))

	return styles.Box.Render(b.String())
}
