package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohithprakash15/dripadvisor/internal/advisor"
	"github.com/rohithprakash15/dripadvisor/internal/prefs"
)

const (
	weatherFieldCity = iota
	weatherFieldFetch
)

type weatherState struct {
	input  textinput.Model
	focus  int
	cache  prefs.WeatherCache
	errMsg string
}

func newWeatherState(cache prefs.WeatherCache) weatherState {
	input := textinput.New()
	input.Placeholder = "city name"
	input.CharLimit = 80
	input.Focus()
	if cache.City != "" {
		input.SetValue(cache.City)
	}
	return weatherState{input: input, cache: cache}
}

func (s weatherState) typing() bool {
	return s.focus < weatherFieldFetch
}

func (m Model) handleWeatherKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.gotoHome()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.weather.focus = (m.weather.focus + 1) % (weatherFieldFetch + 1)
		m.syncWeatherFocus()
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.weather.focus--
		if m.weather.focus < 0 {
			m.weather.focus = weatherFieldFetch
		}
		m.syncWeatherFocus()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		city := strings.TrimSpace(m.weather.input.Value())
		if city == "" {
			m.weather.errMsg = "Enter a city name."
			return m, nil
		}
		m.weather.errMsg = ""
		m.startPending("Fetching weather...")
		return m, fetchWeatherCmd(m.ctx, m.client, city)
	}

	if m.weather.typing() {
		var cmd tea.Cmd
		m.weather.input, cmd = m.weather.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) syncWeatherFocus() {
	if m.weather.focus == weatherFieldCity {
		m.weather.input.Focus()
	} else {
		m.weather.input.Blur()
	}
}

func fetchWeatherCmd(ctx context.Context, client *advisor.Client, city string) tea.Cmd {
	return func() tea.Msg {
		weather, err := client.CityWeather(ctx, city)
		return weatherMsg{city: city, weather: weather, err: err}
	}
}

// handleWeather lands a weather lookup and caches it so outfit forms can be
// prefilled on later visits, even across restarts.
func (m Model) handleWeather(msg weatherMsg) (tea.Model, tea.Cmd) {
	m.stopPending()

	if msg.err != nil {
		if m.sessionLost(msg.err) {
			return m, nil
		}
		m.weather.errMsg = errorText(msg.err)
		return m, nil
	}

	cache := prefs.WeatherCache{
		City:        msg.city,
		Description: msg.weather.Description,
		Temperature: msg.weather.Temperature,
		FetchedAt:   time.Now().Format(time.RFC3339),
	}
	m.weather.cache = cache
	m.userPrefs.Weather = cache
	if m.prefsPath != "" {
		_ = prefs.Save(m.prefsPath, m.userPrefs)
	}
	return m, nil
}

func (m Model) renderWeather() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Title.Render("Check the weather"))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("City"))
	b.WriteString("\n")
	b.WriteString(m.weather.input.View())
	b.WriteString("\n\n")
	b.WriteString(renderAction(styles, "Fetch Weather", m.weather.focus == weatherFieldFetch))
	b.WriteString("\n")

	if !m.weather.cache.Empty() {
		b.WriteString("\n")
		b.WriteString(styles.Text.Render(fmt.Sprintf(
			"%s: %s, %.0f°C", m.weather.cache.City, m.weather.cache.Description, m.weather.cache.Temperature)))
		b.WriteString("\n")
		if age := m.weather.cache.Age(time.Now()); age > 0 {
			b.WriteString(styles.StatusStyle("cached").Render(fmt.Sprintf("fetched %s ago", humanizeDuration(age))))
			b.WriteString("\n")
		}
	}

	if m.weather.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(m.weather.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("enter fetch | esc home"))

	box := styles.Box
	if m.weather.typing() {
		box = styles.FocusBox
	}
	return box.Render(b.String())
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
}
