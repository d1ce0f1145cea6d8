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
	registerFieldName = iota
	registerFieldEmail
	registerFieldMobile
	registerFieldPassword
	registerFieldConfirm
	registerFieldGender
	registerFieldDOB
	registerFieldSubmit
	registerFieldBack
)

type registerState struct {
	inputs []textinput.Model
	focus  int
	errMsg string
}

func newRegisterState() registerState {
	name := textinput.New()
	name.Placeholder = "full name"
	name.CharLimit = 120
	name.Focus()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 120

	mobile := textinput.New()
	mobile.Placeholder = "mobile number"
	mobile.CharLimit = 20

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	confirm := textinput.New()
	confirm.Placeholder = "confirm password"
	confirm.CharLimit = 120
	confirm.EchoMode = textinput.EchoPassword
	confirm.EchoCharacter = '•'

	gender := textinput.New()
	gender.Placeholder = "gender"
	gender.CharLimit = 40

	dob := textinput.New()
	dob.Placeholder = "YYYY-MM-DD"
	dob.CharLimit = 10

	return registerState{inputs: []textinput.Model{name, email, mobile, password, confirm, gender, dob}}
}

func (s registerState) typing() bool {
	return s.focus < registerFieldSubmit
}

func (m Model) handleRegisterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.currentView = ViewLogin
		m.login = newLoginState()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.register.focus = (m.register.focus + 1) % (registerFieldBack + 1)
		m.syncRegisterFocus()
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.register.focus--
		if m.register.focus < 0 {
			m.register.focus = registerFieldBack
		}
		m.syncRegisterFocus()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		switch m.register.focus {
		case registerFieldBack:
			m.currentView = ViewLogin
			m.login = newLoginState()
			return m, nil
		default:
			return m.submitRegister()
		}
	}

	if m.register.focus < len(m.register.inputs) {
		var cmd tea.Cmd
		m.register.inputs[m.register.focus], cmd = m.register.inputs[m.register.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) syncRegisterFocus() {
	for i := range m.register.inputs {
		if i == m.register.focus {
			m.register.inputs[i].Focus()
		} else {
			m.register.inputs[i].Blur()
		}
	}
}

// submitRegister validates every field locally before the signup call.
func (m Model) submitRegister() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.register.inputs[registerFieldName].Value())
	email := strings.TrimSpace(m.register.inputs[registerFieldEmail].Value())
	mobile := strings.TrimSpace(m.register.inputs[registerFieldMobile].Value())
	password := m.register.inputs[registerFieldPassword].Value()
	confirm := m.register.inputs[registerFieldConfirm].Value()
	gender := strings.TrimSpace(m.register.inputs[registerFieldGender].Value())
	dob := strings.TrimSpace(m.register.inputs[registerFieldDOB].Value())

	switch {
	case name == "" || email == "" || mobile == "" || password == "" || confirm == "" || gender == "" || dob == "":
		m.register.errMsg = "Please fill in every field."
		return m, nil
	case password != confirm:
		m.register.errMsg = "Passwords do not match."
		return m, nil
	}
	if _, err := time.Parse("2006-01-02", dob); err != nil {
		m.register.errMsg = "Enter date of birth as YYYY-MM-DD."
		return m, nil
	}

	m.register.errMsg = ""
	m.startPending("Creating your account...")
	// The signup payload does not carry the mobile number; the backend has no
	// field for it yet.
	req := advisor.SignupRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Gender:   gender,
		DOB:      dob,
	}
	return m, signupCmd(m.ctx, m.client, req)
}

func signupCmd(ctx context.Context, client *advisor.Client, req advisor.SignupRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Signup(ctx, req)
		if err != nil {
			return authResultMsg{err: err}
		}
		return authResultMsg{token: resp.AccessToken}
	}
}

func (m Model) renderRegister() string {
	styles := m.theme.Styles()

	labels := []string{"Name", "Email", "Mobile", "Password", "Confirm Password", "Gender", "Date of Birth"}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Create your account"))
	b.WriteString("\n\n")

	for i, label := range labels {
		b.WriteString(styles.MutedText.Render(label))
		b.WriteString("\n")
		b.WriteString(m.register.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(renderAction(styles, "Sign Up", m.register.focus == registerFieldSubmit))
	b.WriteString("  ")
	b.WriteString(renderAction(styles, "Back to Sign In", m.register.focus == registerFieldBack))

	if m.register.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.DangerText.Render(m.register.errMsg))
	}

	box := styles.Box
	if m.register.typing() {
		box = styles.FocusBox
	}
	return box.Render(b.String())
}
