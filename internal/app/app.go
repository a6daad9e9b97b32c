package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/checkoff/internal/api"
	"github.com/five82/checkoff/internal/config"
	"github.com/five82/checkoff/internal/prefs"
	"github.com/five82/checkoff/internal/syncer"
	"github.com/five82/checkoff/internal/ui"
)

// Options configure checkoff.
type Options struct {
	ConfigPath string
	BaseURL    string        // overrides config and environment when set
	PrefsPath  string        // empty uses default ~/.config/checkoff/prefs.toml
	PollEvery  time.Duration // zero disables background refresh
	Version    string
}

// StartupError reports configuration that prevents checkoff from starting.
// Nothing has touched the network when it is returned.
type StartupError struct {
	Err error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("startup: %v", e.Err)
}

func (e *StartupError) Unwrap() error { return e.Err }

// Env is the wired core shared by the TUI and the command line.
type Env struct {
	Config     config.Config
	Client     *api.Client
	Controller *syncer.Controller
}

// Setup loads and validates configuration and builds the controller.
// Failures are returned as *StartupError.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &StartupError{Err: fmt.Errorf("load config: %w", err)}
	}
	cfg.OverrideBaseURL(opts.BaseURL)
	if err := cfg.Validate(); err != nil {
		return nil, &StartupError{Err: err}
	}

	client, err := api.NewClient(cfg.BaseURL, api.Options{
		Timeout:   cfg.RequestTimeout,
		UserAgent: userAgent(opts.Version),
	})
	if err != nil {
		return nil, &StartupError{Err: fmt.Errorf("init api client: %w", err)}
	}

	log.Printf("checkoff configured base_url=%s config=%s timeout=%s", client.BaseURL(), cfg.Path, cfg.RequestTimeout)

	return &Env{
		Config:     cfg,
		Client:     client,
		Controller: syncer.New(client, nil, nil),
	}, nil
}

// Run boots the TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	// Keep startup diagnostics off the terminal the TUI is about to take over.
	log.SetOutput(io.Discard)

	env, err := Setup(opts)
	if err != nil {
		return err
	}

	logFile, err := openLog(env.Config.LogFile)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	log.Printf("tui starting base_url=%s poll=%s", env.Client.BaseURL(), opts.PollEvery)

	userPrefs := prefs.Load(opts.PrefsPath)

	StartPoller(ctx, env.Controller, opts.PollEvery)

	return ui.Run(ui.Options{
		Context:    ctx,
		Controller: env.Controller,
		Prefs:      userPrefs,
		PrefsPath:  opts.PrefsPath,
		Endpoint:   env.Client.BaseURL(),
	})
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return tea.LogToFile(path, "checkoff ")
}

func userAgent(version string) string {
	if version == "" {
		return api.DefaultUserAgent
	}
	return "checkoff/" + version
}
