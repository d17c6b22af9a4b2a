package reliefhub

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sagiphub/reliefhub-go/internal/ledger"
)

// Option configures a Client during construction in New.
// Options must be deterministic and side-effect free.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net that bounds the total time spent on a single HTTP
// request. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true. Do not enable this option in production
// environments; dumps may include request bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		return nil
	}
}

// WithLogger routes the SDK's structured logs to the given logger.
// The default is a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// WithLedgerFile backs the ownership ledger with a JSON file at path.
// Missing or corrupted content loads as an empty ledger.
func WithLedgerFile(path string) Option {
	return func(c *Client) error {
		if path == "" {
			return fmt.Errorf("ledger file path must not be empty")
		}
		led, err := ledger.New(ledger.NewFileStore(path))
		if err != nil {
			return fmt.Errorf("open ledger file: %w", err)
		}
		c.ledger = led
		return nil
	}
}

// WithLedgerDB backs the ownership ledger with a SQLite database at dbPath.
// The database handle is released by Client.Close.
func WithLedgerDB(dbPath string) Option {
	return func(c *Client) error {
		if dbPath == "" {
			return fmt.Errorf("ledger db path must not be empty")
		}
		store, err := ledger.NewSQLiteStore(dbPath)
		if err != nil {
			return err
		}
		led, err := ledger.New(store)
		if err != nil {
			store.Close()
			return err
		}
		c.ledger = led
		c.ledgerStore = store
		return nil
	}
}

// WithPollInterval sets the default cadence for pollers created by this
// client. The value must be greater than zero.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("poll interval must be > 0")
		}
		c.pollInterval = d
		return nil
	}
}

// WithSweepInterval sets the default cadence for sweepers created by this
// client. The value must be greater than zero.
func WithSweepInterval(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("sweep interval must be > 0")
		}
		c.sweepInterval = d
		return nil
	}
}

// WithPageSize sets the default page size for snapshot fetches.
func WithPageSize(n int) Option {
	return func(c *Client) error {
		if n <= 0 {
			return fmt.Errorf("page size must be > 0")
		}
		c.pageSize = n
		return nil
	}
}
