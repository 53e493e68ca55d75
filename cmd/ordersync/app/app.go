// Package app provides the application context and dependency management
// for the ordersync CLI. It centralizes configuration, logging, and the
// portal client so commands receive their dependencies instead of building
// them ad hoc.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/caretide/ordersync/internal/portal"
	"github.com/caretide/ordersync/internal/transport"
	"github.com/caretide/ordersync/pkg/errors"
	"github.com/caretide/ordersync/pkg/reconciler"
)

// App represents the ordersync application with all its dependencies.
// It provides a centralized place for configuration, logging, and the
// portal client, following the dependency injection pattern.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Portal client (lazy-initialized, singleton)
	mu     sync.RWMutex
	portal reconciler.Portal
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration loaded from the environment
// that can be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	// Initialize logger
	logger := NewLogger(config)
	app.logger = &logger

	// Apply any custom options
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Quiet reports whether minimal console output was requested.
func (a *App) Quiet() bool {
	return a.config.Quiet
}

// InputFile returns the configured order spreadsheet path.
func (a *App) InputFile() string {
	return a.config.InputFile
}

// OutputDir returns the directory where run reports are written.
func (a *App) OutputDir() string {
	return a.config.OutputDir
}

// Portal returns the portal client, creating it lazily if needed.
// This is thread-safe and ensures only one client is created.
func (a *App) Portal() (reconciler.Portal, error) {
	a.mu.RLock()
	if a.portal != nil {
		p := a.portal
		a.mu.RUnlock()
		return p, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.portal != nil {
		return a.portal, nil
	}

	if a.config.PortalBaseURL == "" {
		return nil, errors.NewConfigError("portal", "portal_base_url is not set (PORTAL_BASE_URL env, .env, or config file)", nil)
	}

	auth := transport.ForStyle(a.config.AuthStyle())
	a.portal = portal.NewClient(a.config.PortalBaseURL, auth, a.config.PortalAPIKey, a.buildPortalOptions()...)
	return a.portal, nil
}

// Reconciler returns a reconciler wired to the portal client and the
// configured known order fields. Additional options are applied on top of
// the app defaults, so callers can layer per-run settings such as dry-run.
func (a *App) Reconciler(opts ...reconciler.Option) (reconciler.Reconciler, error) {
	client, err := a.Portal()
	if err != nil {
		return nil, err
	}

	fields, err := a.config.KnownFields()
	if err != nil {
		return nil, err
	}

	base := []reconciler.Option{
		reconciler.WithPortal(client),
		reconciler.WithKnownFields(fields),
	}
	return reconciler.New(append(base, opts...)...)
}

// Shutdown performs graceful shutdown of the application.
// The portal client holds no connections beyond the standard HTTP client
// pool, so this only reports cache state for diagnostics.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.RLock()
	p := a.portal
	a.mu.RUnlock()

	if client, ok := p.(*portal.Client); ok {
		if n := client.CachedPatients(); n > 0 {
			a.logger.Debug().Int("cached_patients", n).Msg("Discarding patient cache on shutdown")
		}
	}

	return nil
}

// buildPortalOptions constructs portal client options from the app configuration.
func (a *App) buildPortalOptions() []portal.Option {
	var opts []portal.Option

	if a.config.CachePatients {
		opts = append(opts, portal.WithPatientCache(a.config.PatientCacheTTL))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithPortal sets a custom portal client (useful for testing).
func WithPortal(p reconciler.Portal) Option {
	return func(a *App) error {
		a.portal = p
		return nil
	}
}
