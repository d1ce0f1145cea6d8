// Package ui provides the Bubble Tea TUI for the drip advisor client.
package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rohithprakash15/dripadvisor/internal/advisor"
	"github.com/rohithprakash15/dripadvisor/internal/config"
	"github.com/rohithprakash15/dripadvisor/internal/prefs"
	"github.com/rohithprakash15/dripadvisor/internal/session"
	"github.com/rohithprakash15/dripadvisor/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewLogin View = iota
	ViewRegister
	ViewHome
	ViewWardrobe
	ViewUpload
	ViewSuggest
	ViewBuild
	ViewProfile
	ViewWeather
)

// uiTick drives spinner animation and store polling. Independent of the
// background wardrobe refresh cadence.
const uiTick = 500 * time.Millisecond

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    *advisor.Client
	Session   *session.Store
	Store     *state.Store
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Log       zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    *advisor.Client
	session   *session.Store
	store     *state.Store
	config    config.Config
	prefsPath string
	log       zerolog.Logger

	// UI state
	theme       Theme
	keys        keyMap
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	alert       string

	// Data state
	snapshot  state.Snapshot
	userPrefs prefs.Prefs

	// In-flight request indicator
	pending pendingState

	// Per-screen state
	login    loginState
	register registerState
	wardrobe wardrobeState
	upload   uploadState
	outfits  outfitState
	profile  profileState
	weather  weatherState
	home     homeState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	themeName := opts.Prefs.Theme
	if themeName == "" {
		themeName = "Nightfox"
	}

	startView := ViewLogin
	if opts.Session != nil && opts.Session.Active() {
		startView = ViewHome
	}

	m := Model{
		ctx:         ctx,
		client:      opts.Client,
		session:     opts.Session,
		store:       opts.Store,
		config:      opts.Config,
		prefsPath:   prefsPath,
		log:         opts.Log,
		theme:       GetTheme(themeName),
		keys:        DefaultKeyMap(),
		currentView: startView,
		userPrefs:   opts.Prefs,
	}
	m.login = newLoginState()
	m.register = newRegisterState()
	m.wardrobe = newWardrobeState()
	m.upload = newUploadState()
	m.outfits = newOutfitState()
	m.profile = newProfileState()
	m.weather = newWeatherState(opts.Prefs.Weather)
	m.home = newHomeState()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		// The background refresher reports errors through the store; a
		// rejected token must land on the login screen, not count as offline
		if m.snapshot.LastError != nil && m.sessionLost(m.snapshot.LastError) {
			return m, nil
		}
		m.wardrobe.selection.Prune(m.snapshot.Items)
		m.clampWardrobeCursor()
		return m, nil

	case authResultMsg:
		return m.handleAuthResult(msg)

	case wardrobeRefreshedMsg:
		m.stopPending()
		if m.store != nil {
			m.store.Update(msg.items, msg.err)
		}
		if msg.err != nil && m.sessionLost(msg.err) {
			return m, nil
		}
		return m, fetchSnapshotCmd(m.store)

	case wardrobeActionMsg:
		return m.handleWardrobeAction(msg)

	case uploadResultMsg:
		return m.handleUploadResult(msg)

	case outfitsMsg:
		return m.handleOutfits(msg)

	case outfitUsedMsg:
		return m.handleOutfitUsed(msg)

	case profileMsg:
		return m.handleProfileLoaded(msg)

	case profileSavedMsg:
		return m.handleProfileSaved(msg)

	case weatherMsg:
		return m.handleWeather(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}
	if m.alert != "" {
		return m.renderAlert()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes the help overlay
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// Alert modal swallows input until dismissed
	if m.alert != "" {
		if key.Matches(msg, m.keys.Confirm) || key.Matches(msg, m.keys.Back) || msg.String() == " " {
			m.alert = ""
		}
		return m, nil
	}

	// While a request is in flight only quit gets through; everything else
	// waits for the result
	if m.pending.active {
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.userPrefs.Theme = m.theme.Name
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, m.userPrefs)
		}
		return m, nil
	}

	// Global keys that must not fire while a text field has focus
	if !m.typing() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			switch m.currentView {
			case ViewHome, ViewLogin, ViewRegister:
				return m, tea.Quit
			default:
				m.gotoHome()
			}
			return m, nil

		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			if m.currentView != ViewHome && m.currentView != ViewLogin && m.currentView != ViewRegister {
				m.gotoHome()
			}
			return m, nil
		}
	}

	switch m.currentView {
	case ViewLogin:
		return m.handleLoginKey(msg)
	case ViewRegister:
		return m.handleRegisterKey(msg)
	case ViewHome:
		return m.handleHomeKey(msg)
	case ViewWardrobe:
		return m.handleWardrobeKey(msg)
	case ViewUpload:
		return m.handleUploadKey(msg)
	case ViewSuggest, ViewBuild:
		return m.handleOutfitKey(msg)
	case ViewProfile:
		return m.handleProfileKey(msg)
	case ViewWeather:
		return m.handleWeatherKey(msg)
	}

	return m, nil
}

// handleTick processes the UI tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd()}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

// typing reports whether the current view has a focused text input, in which
// case printable keys belong to the field rather than to shortcuts.
func (m Model) typing() bool {
	switch m.currentView {
	case ViewLogin:
		return m.login.typing()
	case ViewRegister:
		return m.register.typing()
	case ViewUpload:
		return m.upload.typing()
	case ViewSuggest, ViewBuild:
		return m.outfits.typing()
	case ViewProfile:
		return m.profile.typing()
	case ViewWeather:
		return m.weather.typing()
	}
	return false
}

// gotoHome returns to the home menu, dropping transient screen state that
// should not survive navigation.
func (m *Model) gotoHome() {
	m.currentView = ViewHome
	m.login = newLoginState()
	m.register = newRegisterState()
}

// resetToLogin tears the session down and lands on the sign-in screen. Used
// for sign-out and for expired sessions detected on any screen.
func (m *Model) resetToLogin(message string) {
	if m.session != nil {
		_ = m.session.Clear()
	}
	if m.store != nil {
		m.store.Reset()
	}
	m.snapshot = state.Snapshot{}
	m.pending = pendingState{}
	m.login = newLoginState()
	m.register = newRegisterState()
	m.wardrobe = newWardrobeState()
	m.upload = newUploadState()
	m.outfits = newOutfitState()
	m.profile = newProfileState()
	m.weather = newWeatherState(m.userPrefs.Weather)
	m.home = newHomeState()
	m.currentView = ViewLogin
	m.alert = message
}

// sessionLost routes expired-session errors to the login screen. Returns
// true when the error was consumed.
func (m *Model) sessionLost(err error) bool {
	if !errors.Is(err, advisor.ErrSessionExpired) {
		return false
	}
	m.resetToLogin("Your session has expired. Please sign in again.")
	return true
}

// errorText renders an API error for on-screen display.
func errorText(err error) string {
	var apiErr *advisor.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderContent())

	if m.pending.active {
		b.WriteString("\n")
		b.WriteString(m.renderPending())
	}

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogin:
		return m.renderLogin()
	case ViewRegister:
		return m.renderRegister()
	case ViewHome:
		return m.renderHome()
	case ViewWardrobe:
		return m.renderWardrobe()
	case ViewUpload:
		return m.renderUpload()
	case ViewSuggest, ViewBuild:
		return m.renderOutfits()
	case ViewProfile:
		return m.renderProfile()
	case ViewWeather:
		return m.renderWeather()
	default:
		return ""
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type authResultMsg struct {
	token string
	err   error
}

type wardrobeRefreshedMsg struct {
	items []advisor.ClothingItem
	err   error
}

type wardrobeActionMsg struct {
	info string
	err  error
}

type uploadResultMsg struct {
	message string
	err     error
}

type outfitsMsg struct {
	outfits []advisor.Outfit
	err     error
}

type outfitUsedMsg struct {
	id  string
	err error
}

type profileMsg struct {
	profile *advisor.UserProfile
	err     error
}

type profileSavedMsg struct {
	message string
	err     error
}

type weatherMsg struct {
	city    string
	weather *advisor.Weather
	err     error
}

// Commands

func tickCmd() tea.Cmd {
	return tea.Tick(uiTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func refreshWardrobeCmd(ctx context.Context, client *advisor.Client) tea.Cmd {
	return func() tea.Msg {
		items, err := client.Wardrobe(ctx)
		return wardrobeRefreshedMsg{items: items, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
