package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohithprakash15/dripadvisor/internal/advisor"
)

// Login screen focus positions. The last two are the action rows.
const (
	loginFieldEmail = iota
	loginFieldPassword
	loginFieldSubmit
	loginFieldRegister
)

type loginState struct {
	inputs []textinput.Model
	focus  int
	errMsg string
}

func newLoginState() loginState {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginState{inputs: []textinput.Model{email, password}}
}

func (s loginState) typing() bool {
	return s.focus < loginFieldSubmit
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextField):
		m.login.focus = (m.login.focus + 1) % (loginFieldRegister + 1)
		m.syncLoginFocus()
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.login.focus--
		if m.login.focus < 0 {
			m.login.focus = loginFieldRegister
		}
		m.syncLoginFocus()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		switch m.login.focus {
		case loginFieldRegister:
			m.currentView = ViewRegister
			m.register = newRegisterState()
			return m, nil
		default:
			return m.submitLogin()
		}
	}

	// Everything else belongs to the focused field
	if m.login.focus < len(m.login.inputs) {
		var cmd tea.Cmd
		m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) syncLoginFocus() {
	for i := range m.login.inputs {
		if i == m.login.focus {
			m.login.inputs[i].Focus()
		} else {
			m.login.inputs[i].Blur()
		}
	}
}

// submitLogin validates locally before any network call.
func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(m.login.inputs[loginFieldEmail].Value())
	password := m.login.inputs[loginFieldPassword].Value()

	if email == "" || password == "" {
		m.login.errMsg = "Please enter both email and password."
		return m, nil
	}

	m.login.errMsg = ""
	m.startPending("Signing in...")
	return m, loginCmd(m.ctx, m.client, email, password)
}

func loginCmd(ctx context.Context, client *advisor.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Login(ctx, email, password)
		if err != nil {
			return authResultMsg{err: err}
		}
		return authResultMsg{token: resp.AccessToken}
	}
}

// handleAuthResult lands a login or signup response. On success the token is
// persisted and the wardrobe fetch starts immediately.
func (m Model) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	m.stopPending()

	if msg.err != nil {
		text := errorText(msg.err)
		if m.currentView == ViewRegister {
			m.register.errMsg = text
		} else {
			m.login.errMsg = text
		}
		return m, nil
	}

	if m.session != nil {
		if err := m.session.Set(msg.token); err != nil {
			m.log.Warn().Err(err).Msg("session persist failed")
		}
	}
	m.login = newLoginState()
	m.register = newRegisterState()
	m.currentView = ViewHome
	return m, refreshWardrobeCmd(m.ctx, m.client)
}

func (m Model) renderLogin() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Title.Render("Sign in to your wardrobe"))
	b.WriteString("\n\n")

	b.WriteString(styles.MutedText.Render("Email"))
	b.WriteString("\n")
	b.WriteString(m.login.inputs[loginFieldEmail].View())
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Password"))
	b.WriteString("\n")
	b.WriteString(m.login.inputs[loginFieldPassword].View())
	b.WriteString("\n\n")

	b.WriteString(renderAction(styles, "Sign In", m.login.focus == loginFieldSubmit))
	b.WriteString("  ")
	b.WriteString(renderAction(styles, "Create Account", m.login.focus == loginFieldRegister))

	if m.login.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.DangerText.Render(m.login.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render(m.config.BaseURL))

	box := styles.Box
	if m.login.typing() {
		box = styles.FocusBox
	}
	return box.Render(b.String())
}

// renderAction renders a focusable action row.
func renderAction(styles Styles, label string, focused bool) string {
	if focused {
		return styles.Selected.Render("[ " + label + " ]")
	}
	return styles.MutedText.Render("[ " + label + " ]")
}
