package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rohithprakash15/dripadvisor/internal/advisor"
	"github.com/rohithprakash15/dripadvisor/internal/config"
	"github.com/rohithprakash15/dripadvisor/internal/debuglog"
	"github.com/rohithprakash15/dripadvisor/internal/prefs"
	"github.com/rohithprakash15/dripadvisor/internal/session"
	"github.com/rohithprakash15/dripadvisor/internal/state"
	"github.com/rohithprakash15/dripadvisor/internal/ui"
)

// Options configure the drip advisor application.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses default ~/.config/dripadvisor/prefs.toml
	SessionPath  string // empty uses default ~/.config/dripadvisor/session.toml
	RefreshEvery int    // seconds; zero uses the configured default
}

// Run boots the drip advisor TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := debuglog.Open(cfg.DebugLogPath())
	if err != nil {
		logger = zerolog.Nop()
	}
	defer closeLog()

	sess, err := session.Open(opts.SessionPath)
	if err != nil {
		logger.Warn().Err(err).Msg("session restore failed, starting signed out")
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := advisor.NewClient(cfg.BaseURL, sess, logger)
	if err != nil {
		return fmt.Errorf("init advisor client: %w", err)
	}
	if cfg.TimeoutSeconds > 0 {
		client.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)
	}

	store := &state.Store{}

	interval := defaultRefreshInterval
	if cfg.RefreshSeconds > 0 {
		interval = time.Duration(cfg.RefreshSeconds) * time.Second
	}
	if opts.RefreshEvery > 0 {
		interval = time.Duration(opts.RefreshEvery) * time.Second
	}

	// Start background wardrobe refresher
	StartRefresher(ctx, store, client, sess, interval, logger)

	// Populate the store before the UI starts when a session is active
	if sess.Active() {
		refresh(ctx, store, client)
	}

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Session:   sess,
		Store:     store,
		Config:    cfg,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		Log:       logger,
	}
	return ui.Run(uiOpts)
}
