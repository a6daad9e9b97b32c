package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/five82/checkoff/internal/config"
)

func isolate(t *testing.T) {
	t.Helper()
	homedir.DisableCache = true
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvBaseURL, "")
}

func TestSetup_MissingBaseURLIsStartupError(t *testing.T) {
	isolate(t)

	_, err := Setup(Options{ConfigPath: filepath.Join(t.TempDir(), "none.toml")})
	var startupErr *StartupError
	if !errors.As(err, &startupErr) {
		t.Fatalf("Setup error = %v, want *StartupError", err)
	}
	if !errors.Is(err, config.ErrMissingBaseURL) {
		t.Fatalf("Setup error = %v, want it to wrap ErrMissingBaseURL", err)
	}
}

func TestSetup_InvalidBaseURLIsStartupError(t *testing.T) {
	isolate(t)

	_, err := Setup(Options{ConfigPath: filepath.Join(t.TempDir(), "none.toml"), BaseURL: "not a url"})
	var startupErr *StartupError
	if !errors.As(err, &startupErr) {
		t.Fatalf("Setup error = %v, want *StartupError", err)
	}
}

func TestSetup_WiresClientFromConfig(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base_url = "http://127.0.0.1:5000/api/todos/"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	env, err := Setup(Options{ConfigPath: path, Version: "1.2.3"})
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	if got := env.Client.BaseURL(); got != "http://127.0.0.1:5000/api/todos" {
		t.Fatalf("BaseURL = %q, want normalized config value", got)
	}
	if env.Controller == nil || env.Controller.Store() == nil {
		t.Fatal("Setup returned no controller")
	}
}

type countingRefresher struct {
	calls chan struct{}
}

func (c *countingRefresher) Refresh(ctx context.Context) error {
	c.calls <- struct{}{}
	return errors.New("offline")
}

func TestStartPoller_RefreshesUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &countingRefresher{calls: make(chan struct{}, 16)}

	StartPoller(ctx, r, 5*time.Millisecond)

	for i := 0; i < 2; i++ {
		select {
		case <-r.calls:
		case <-time.After(2 * time.Second):
			t.Fatalf("poller made %d refreshes, want at least 2", i)
		}
	}
	cancel()
}

func TestStartPoller_DisabledForZeroInterval(t *testing.T) {
	r := &countingRefresher{calls: make(chan struct{}, 1)}
	StartPoller(context.Background(), r, 0)

	select {
	case <-r.calls:
		t.Fatal("poller refreshed with zero interval")
	case <-time.After(30 * time.Millisecond):
	}
}
