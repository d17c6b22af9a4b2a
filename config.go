package reliefhub

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the env-derived client configuration. Every field maps to a
// RELIEFHUB_* environment variable.
type Config struct {
	BaseURL       string        `envconfig:"BASE_URL" default:"http://localhost/relief-hub/public"`
	HTTPTimeout   time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	PollInterval  time.Duration `envconfig:"POLL_INTERVAL" default:"15s"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"60s"`
	PageSize      int           `envconfig:"PAGE_SIZE" default:"50"`

	// LedgerPath points at the JSON ledger file. LedgerDB points at a
	// SQLite database instead; it wins when both are set. Empty means no
	// ledger (read-only client).
	LedgerPath string `envconfig:"LEDGER_PATH"`
	LedgerDB   string `envconfig:"LEDGER_DB"`
}

// ConfigFromEnv reads RELIEFHUB_* variables into a Config.
func ConfigFromEnv() (Config, error) {
	var c Config
	if err := envconfig.Process("reliefhub", &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// options expands the config into the equivalent functional options.
func (c Config) options() []Option {
	opts := []Option{}
	if c.HTTPTimeout > 0 {
		opts = append(opts, WithHTTPTimeout(c.HTTPTimeout))
	}
	if c.PollInterval > 0 {
		opts = append(opts, WithPollInterval(c.PollInterval))
	}
	if c.SweepInterval > 0 {
		opts = append(opts, WithSweepInterval(c.SweepInterval))
	}
	if c.PageSize > 0 {
		opts = append(opts, WithPageSize(c.PageSize))
	}
	switch {
	case c.LedgerDB != "":
		opts = append(opts, WithLedgerDB(c.LedgerDB))
	case c.LedgerPath != "":
		opts = append(opts, WithLedgerFile(c.LedgerPath))
	}
	return opts
}
