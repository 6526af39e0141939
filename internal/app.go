// Package internal provides the App struct that wires all components of
// jobnav together and initializes the CLI layer.
package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/laporte-eng/jobnav/internal/cli"
	"github.com/laporte-eng/jobnav/internal/core"
	"github.com/laporte-eng/jobnav/internal/integration"
	"github.com/laporte-eng/jobnav/internal/observability"
	"github.com/laporte-eng/jobnav/pkg/models"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// App holds all service dependencies for jobnav.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *models.GlobalConfig

	// File system the share is read through.
	FS afero.Fs

	// Core services
	Resolver core.PathResolver
	Opener   integration.Opener
	Launcher *integration.Launcher

	// Observability
	Logger   zerolog.Logger
	EventLog observability.EventLog
	Notifier observability.Notifier
}

// Option customizes NewApp.
type Option func(*appOptions)

type appOptions struct {
	fs     afero.Fs
	stderr io.Writer
	opener integration.Opener
}

// WithFs replaces the operating system file system.
func WithFs(fsys afero.Fs) Option {
	return func(o *appOptions) { o.fs = fsys }
}

// WithStderr sets where diagnostics and terminal notifications are written.
func WithStderr(w io.Writer) Option {
	return func(o *appOptions) { o.stderr = w }
}

// WithOpener replaces the system opener.
func WithOpener(opener integration.Opener) Option {
	return func(o *appOptions) { o.opener = opener }
}

// NewApp creates and wires all application components. basePath is where
// .jobnav.yaml is looked up first and where the event log lives by default.
func NewApp(basePath string, opts ...Option) (*App, error) {
	o := appOptions{fs: afero.NewOsFs(), stderr: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	app := &App{BasePath: basePath, FS: o.fs}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	globalCfg, err := app.ConfigMgr.LoadGlobalConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	app.Config = globalCfg

	level, err := zerolog.ParseLevel(strings.ToLower(globalCfg.Log.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	app.Logger = zerolog.New(zerolog.ConsoleWriter{Out: o.stderr, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()

	// --- Observability ---
	app.EventLog, err = observability.NewJSONLEventLog(globalCfg.Log.File, observability.RotateConfig{
		MaxSizeMB:  globalCfg.Log.MaxSizeMB,
		MaxBackups: globalCfg.Log.MaxBackups,
		MaxAgeDays: globalCfg.Log.MaxAgeDays,
		MinLevel:   globalCfg.Log.EventLevel,
	})
	if err != nil {
		// Non-fatal: run without history if the log can't be created.
		app.Logger.Warn().Err(err).Str("path", globalCfg.Log.File).Msg("event log disabled")
		app.EventLog = nil
	}

	notifiers := observability.MultiNotifier{observability.NewTerminalNotifier(o.stderr)}
	if url := globalCfg.Notifications.Slack.WebhookURL; url != "" {
		notifiers = append(notifiers, observability.NewSlackNotifier(url))
	}
	app.Notifier = notifiers

	// --- Core services ---
	app.Resolver = core.NewPathResolver(app.FS, globalCfg.Roots, core.WithLogger(app.Logger))
	app.Opener = o.opener
	if app.Opener == nil {
		app.Opener = integration.NewSystemOpener(app.FS)
	}

	launcherOpts := []integration.LauncherOption{integration.WithLauncherLogger(app.Logger)}
	if app.EventLog != nil {
		launcherOpts = append(launcherOpts, integration.WithEventLog(app.EventLog))
	}
	app.Launcher = integration.NewLauncher(app.Resolver, app.Opener, app.Notifier, launcherOpts...)

	// --- Wire CLI ---
	cli.BasePath = basePath
	cli.FS = app.FS
	cli.ConfigMgr = app.ConfigMgr
	cli.Config = app.Config
	cli.Resolver = app.Resolver
	cli.Launcher = app.Launcher
	cli.EventLog = app.EventLog

	return app, nil
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the jobnav base directory. It checks the
// JOBNAV_HOME env var, then walks up from the working directory looking for
// a .jobnav.yaml, then falls back to the working directory.
func ResolveBasePath() string {
	if home := os.Getenv("JOBNAV_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	cwd := dir
	for {
		if _, err := os.Stat(filepath.Join(dir, core.ConfigFileName+".yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return cwd
}
