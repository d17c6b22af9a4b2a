package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	reliefhub "github.com/sagiphub/reliefhub-go"
)

const (
	// DefaultConfigDir is the directory name for reliefctl configuration.
	DefaultConfigDir = ".reliefctl"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
)

// Config holds the CLI configuration. Precedence is environment over config
// file over defaults; RELIEFHUB_* variables override file values.
type Config struct {
	BaseURL       string        `yaml:"base_url" envconfig:"BASE_URL"`
	HTTPTimeout   time.Duration `yaml:"http_timeout" envconfig:"HTTP_TIMEOUT"`
	PollInterval  time.Duration `yaml:"poll_interval" envconfig:"POLL_INTERVAL"`
	SweepInterval time.Duration `yaml:"sweep_interval" envconfig:"SWEEP_INTERVAL"`
	PageSize      int           `yaml:"page_size" envconfig:"PAGE_SIZE"`
	LedgerPath    string        `yaml:"ledger_path" envconfig:"LEDGER_PATH"`
	LedgerDB      string        `yaml:"ledger_db" envconfig:"LEDGER_DB"`

	// Viewport scopes the watch command's polling. Nil means the whole
	// Philippine service area.
	Viewport *reliefhub.Viewport `yaml:"viewport" ignored:"true"`
}

// Default returns a Config with default values.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		BaseURL:       "http://localhost/relief-hub/public",
		HTTPTimeout:   30 * time.Second,
		PollInterval:  15 * time.Second,
		SweepInterval: 60 * time.Second,
		PageSize:      50,
		LedgerPath:    filepath.Join(home, DefaultConfigDir, "my_requests.json"),
	}
}

// Load reads the config file at path (or the default location when path is
// empty) and applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults + env only.
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	if err := envconfig.Process("reliefhub", cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

// Options expands the config into client options.
func (c *Config) Options() []reliefhub.Option {
	opts := []reliefhub.Option{
		reliefhub.WithHTTPTimeout(c.HTTPTimeout),
		reliefhub.WithPollInterval(c.PollInterval),
		reliefhub.WithSweepInterval(c.SweepInterval),
		reliefhub.WithPageSize(c.PageSize),
	}
	switch {
	case c.LedgerDB != "":
		opts = append(opts, reliefhub.WithLedgerDB(c.LedgerDB))
	case c.LedgerPath != "":
		opts = append(opts, reliefhub.WithLedgerFile(c.LedgerPath))
	}
	return opts
}
