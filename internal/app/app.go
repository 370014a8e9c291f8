// Package app provides the application context for projctl.
// It allows dependency injection for testing.
package app

import (
	"fmt"
	"log/slog"

	"github.com/firefly-engineering/projctl/internal/audit"
	"github.com/firefly-engineering/projctl/internal/config"
	"github.com/firefly-engineering/projctl/internal/errors"
	"github.com/firefly-engineering/projctl/internal/logging"
	"github.com/firefly-engineering/projctl/internal/service"
	"github.com/firefly-engineering/projctl/internal/store"
	"github.com/firefly-engineering/projctl/internal/system"
)

// App holds the application dependencies
type App struct {
	// Paths holds the configured paths
	Paths *config.Paths

	// Config is the loaded user configuration
	Config *config.Config

	// Store is the project registry
	Store *store.Store

	// Executor runs editor and create commands
	Executor system.CommandExecutor

	// FS is the filesystem used to validate project paths
	FS system.FileSystem

	// Logger is the application logger
	Logger *slog.Logger

	// Service is the project service built from the above
	Service *service.Service

	ownsStore bool
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithConfig sets a custom config instead of loading one from ConfigDir
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithStore sets an already opened store
func WithStore(st *store.Store) Option {
	return func(a *App) {
		a.Store = st
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(e system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = e
	}
}

// WithFileSystem sets a custom filesystem
func WithFileSystem(fs system.FileSystem) Option {
	return func(a *App) {
		a.FS = fs
	}
}

// WithLogger sets the application logger
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// New creates a new App with the given options. The config is loaded from
// Paths.ConfigDir and the store opened at the configured database path
// unless they were provided.
func New(opts ...Option) (*App, error) {
	app := &App{
		Paths:    config.DefaultPaths(),
		Executor: system.DefaultExecutor(),
		FS:       system.DefaultFS(),
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.Logger == nil {
		app.Logger = logging.Logger
	}

	if app.Config == nil {
		cfg, err := config.Load(app.Paths.ConfigDir)
		if err != nil {
			return nil, errors.ConfigError("failed to load config", err)
		}
		app.Config = cfg
	}

	if app.Store == nil {
		dbPath := app.Config.DatabasePath(app.Paths)
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, errors.StoreError("open", fmt.Errorf("%s: %w", dbPath, err))
		}
		app.Store = st
		app.ownsStore = true
	}

	app.Logger.Debug("app initialised",
		"config_dir", app.Paths.ConfigDir,
		"database", app.Store.Path(),
		"brand", app.Config.Brand,
	)

	app.Service = service.New(app.Store, app.Config,
		service.WithExecutor(app.Executor),
		service.WithFileSystem(app.FS),
		service.WithAudit(audit.NewLogger(app.Paths.StateDir)),
		service.WithLogger(app.Logger.With("component", "service")),
	)

	return app, nil
}

// Close releases the store if New opened it.
func (a *App) Close() error {
	if a.ownsStore && a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// Default is the application instance used by commands. It is built on
// first use because building it opens the store.
var Default *App

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault closes and drops the default application instance
func ResetDefault() {
	if Default != nil {
		_ = Default.Close()
	}
	Default = nil
}
