package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohithprakash15/dripadvisor/internal/advisor"
)

const (
	profileFieldName = iota
	profileFieldGender
	profileFieldDOB
	profileFieldPreferences
	profileFieldSubmit
)

type profileState struct {
	loaded bool
	email  string

	inputs []textinput.Model
	focus  int
	errMsg string
	info   string
}

func newProfileState() profileState {
	name := textinput.New()
	name.Placeholder = "full name"
	name.CharLimit = 120
	name.Focus()

	gender := textinput.New()
	gender.Placeholder = "gender"
	gender.CharLimit = 40

	dob := textinput.New()
	dob.Placeholder = "YYYY-MM-DD"
	dob.CharLimit = 10

	preferences := textinput.New()
	preferences.Placeholder = "style preferences, comma separated"
	preferences.CharLimit = 300

	return profileState{inputs: []textinput.Model{name, gender, dob, preferences}}
}

func (s profileState) typing() bool {
	return s.loaded && s.focus < profileFieldSubmit
}

func loadProfileCmd(ctx context.Context, client *advisor.Client) tea.Cmd {
	return func() tea.Msg {
		profile, err := client.Profile(ctx)
		return profileMsg{profile: profile, err: err}
	}
}

func (m Model) handleProfileLoaded(msg profileMsg) (tea.Model, tea.Cmd) {
	m.stopPending()

	if msg.err != nil {
		if m.sessionLost(msg.err) {
			return m, nil
		}
		m.profile.errMsg = errorText(msg.err)
		return m, nil
	}

	m.profile.loaded = true
	m.profile.email = msg.profile.Email
	m.profile.inputs[profileFieldName].SetValue(msg.profile.Name)
	m.profile.inputs[profileFieldGender].SetValue(msg.profile.Gender)
	m.profile.inputs[profileFieldDOB].SetValue(msg.profile.DOB)
	m.profile.inputs[profileFieldPreferences].SetValue(strings.Join(msg.profile.Preferences, ", "))
	return m, nil
}

func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.profile.loaded {
		// Load failed; allow retry or bail out
		switch {
		case key.Matches(msg, m.keys.Refresh), key.Matches(msg, m.keys.Confirm):
			m.startPending("Loading profile...")
			return m, loadProfileCmd(m.ctx, m.client)
		case key.Matches(msg, m.keys.Back):
			m.gotoHome()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.gotoHome()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.profile.focus = (m.profile.focus + 1) % (profileFieldSubmit + 1)
		m.syncProfileFocus()
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.profile.focus--
		if m.profile.focus < 0 {
			m.profile.focus = profileFieldSubmit
		}
		m.syncProfileFocus()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m.submitProfile()
	}

	if m.profile.focus < len(m.profile.inputs) {
		var cmd tea.Cmd
		m.profile.inputs[m.profile.focus], cmd = m.profile.inputs[m.profile.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) syncProfileFocus() {
	for i := range m.profile.inputs {
		if i == m.profile.focus {
			m.profile.inputs[i].Focus()
		} else {
			m.profile.inputs[i].Blur()
		}
	}
}

func (m Model) submitProfile() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.profile.inputs[profileFieldName].Value())
	gender := strings.TrimSpace(m.profile.inputs[profileFieldGender].Value())
	dob := strings.TrimSpace(m.profile.inputs[profileFieldDOB].Value())
	prefsRaw := m.profile.inputs[profileFieldPreferences].Value()

	if name == "" {
		m.profile.errMsg = "Name can't be empty."
		return m, nil
	}
	if dob != "" {
		if _, err := time.Parse("2006-01-02", dob); err != nil {
			m.profile.errMsg = "Enter date of birth as YYYY-MM-DD."
			return m, nil
		}
	}

	preferences := splitPreferences(prefsRaw)

	m.profile.errMsg = ""
	m.profile.info = ""
	m.startPending("Saving profile...")
	update := advisor.ProfileUpdate{
		Name:        name,
		Gender:      gender,
		DOB:         dob,
		Preferences: preferences,
	}
	return m, saveProfileCmd(m.ctx, m.client, update)
}

// saveProfileCmd writes the profile and pushes the preference list in the
// same round so the stylist sees the new tastes immediately.
func saveProfileCmd(ctx context.Context, client *advisor.Client, update advisor.ProfileUpdate) tea.Cmd {
	return func() tea.Msg {
		message, err := client.UpdateProfile(ctx, update)
		if err != nil {
			return profileSavedMsg{err: err}
		}
		if err := client.SetPreferences(ctx, update.Preferences); err != nil {
			return profileSavedMsg{err: err}
		}
		return profileSavedMsg{message: message}
	}
}

func (m Model) handleProfileSaved(msg profileSavedMsg) (tea.Model, tea.Cmd) {
	m.stopPending()

	if msg.err != nil {
		if m.sessionLost(msg.err) {
			return m, nil
		}
		m.profile.errMsg = errorText(msg.err)
		return m, nil
	}

	m.profile.info = msg.message
	if m.profile.info == "" {
		m.profile.info = "Profile updated."
	}
	return m, nil
}

func splitPreferences(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (m Model) renderProfile() string {
	styles := m.theme.Styles()

	var b strings.Builder

	if !m.profile.loaded {
		if m.profile.errMsg != "" {
			b.WriteString(styles.DangerText.Render(m.profile.errMsg))
			b.WriteString("\n\n")
			b.WriteString(styles.FaintText.Render("r retry | esc home"))
		} else {
			b.WriteString(styles.MutedText.Render("Loading profile..."))
		}
		return styles.Box.Render(b.String())
	}

	b.WriteString(styles.Title.Render("Your profile"))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Email"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(m.profile.email))
	b.WriteString("\n\n")

	labels := []string{"Name", "Gender", "Date of Birth", "Style Preferences"}
	for i, label := range labels {
		b.WriteString(styles.MutedText.Render(label))
		b.WriteString("\n")
		b.WriteString(m.profile.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderAction(styles, "Save", m.profile.focus == profileFieldSubmit))

	if m.profile.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.DangerText.Render(m.profile.errMsg))
	}
	if m.profile.info != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.SuccessText.Render(m.profile.info))
	}

	box := styles.Box
	if m.profile.typing() {
		box = styles.FocusBox
	}
	return box.Render(b.String())
}
