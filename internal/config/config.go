package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything checkoff needs at startup.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration // zero disables the per-request timeout
	LogFile        string
	Path           string // resolved config file path, set even when the file is missing
}

// EnvBaseURL overrides api_base_url from the config file.
const EnvBaseURL = "CHECKOFF_API_BASE_URL"

const (
	defaultConfigPath = "~/.config/checkoff/config.toml"
	defaultLogFile    = "~/.local/state/checkoff/checkoff.log"
)

// ErrMissingBaseURL is returned by Validate when no layer supplied a base URL.
var ErrMissingBaseURL = errors.New("api base url is not configured")

// Load reads the config file, falling back to defaults when it is missing,
// then applies environment overrides. Call Validate before use.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{LogFile: mustExpand(defaultLogFile), Path: resolved}

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg.applyEnv()
		return cfg, nil
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBaseURL     string `toml:"api_base_url"`
		RequestTimeout string `toml:"request_timeout"`
		LogFile        string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(raw.APIBaseURL)

	if timeout := strings.TrimSpace(raw.RequestTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout: %w", err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("request_timeout must not be negative")
		}
		cfg.RequestTimeout = d
	}

	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}

	cfg.applyEnv()
	return cfg, nil
}

// OverrideBaseURL applies a command line base URL; blank values are ignored.
func (c *Config) OverrideBaseURL(baseURL string) {
	if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
		c.BaseURL = trimmed
	}
}

// Validate reports configuration that makes startup impossible.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("%w: set api_base_url in %s or %s", ErrMissingBaseURL, c.Path, EnvBaseURL)
	}
	return nil
}

func (c *Config) applyEnv() {
	if env := strings.TrimSpace(os.Getenv(EnvBaseURL)); env != "" {
		c.BaseURL = env
	}
}

// DefaultPath returns the unexpanded default config location.
func DefaultPath() string {
	return defaultConfigPath
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	expanded, err := homedir.Expand(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Abs(expanded)
}
