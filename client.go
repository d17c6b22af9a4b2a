// Package reliefhub is the client SDK for the SagipHub disaster-relief
// request API. It keeps a locally held set of help requests consistent with
// the remote store under a polling transport, and manages the per-user
// ownership ledger that authorizes withdrawals.
package reliefhub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/sagiphub/reliefhub-go/internal/api"
	"github.com/sagiphub/reliefhub-go/internal/ledger"
	"github.com/sagiphub/reliefhub-go/internal/poller"
	"github.com/sagiphub/reliefhub-go/internal/sweeper"
	"github.com/sagiphub/reliefhub-go/internal/types"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to one relief backend. The zero value is not usable; use New.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger

	ledger      *ledger.Ledger
	ledgerStore io.Closer // non-nil when the store needs closing (sqlite)

	pollInterval  time.Duration
	sweepInterval time.Duration
	pageSize      int

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the given backend base URL.
// Additional options can be provided via functional arguments.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		panic("baseURL cannot be empty")
	}

	c := &Client{
		baseURL:       baseURL,
		http:          &http.Client{Timeout: 30 * time.Second},
		logger:        zerolog.Nop(),
		pollInterval:  poller.DefaultInterval,
		sweepInterval: sweeper.DefaultInterval,
		pageSize:      poller.DefaultPageSize,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}
	return c
}

// NewFromConfig constructs a Client from an env-derived Config, prepending
// the config's options to any extras.
func NewFromConfig(cfg Config, opts ...Option) *Client {
	return New(cfg.BaseURL, append(cfg.options(), opts...)...)
}

// Close releases resources held by the client (a sqlite-backed ledger's
// database handle). Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.ledgerStore != nil {
		return c.ledgerStore.Close()
	}
	return nil
}

// --------------------------------------------------------------------
// Request operations - delegated to internal/api
// --------------------------------------------------------------------

// ListRequests fetches one snapshot: a page of requests, optionally scoped
// to a bounding box. Unusable records are dropped rather than failing the
// batch.
func (c *Client) ListRequests(ctx context.Context, params ListParams) ([]Request, error) {
	reqs, dropped, err := api.ListRequests(ctx, c.http, c.baseURL, params)
	if err != nil {
		return nil, err
	}
	requestsFetchedTotal.Add(float64(len(reqs)))
	if dropped > 0 {
		recordsDroppedTotal.Add(float64(dropped))
		c.logger.Debug().Int("dropped", dropped).Msg("dropped unusable records from batch")
	}
	return reqs, nil
}

// GetRequest fetches a single request. A missing identifier is reported as
// ErrNotFound.
func (c *Client) GetRequest(ctx context.Context, publicID string) (*Request, error) {
	return api.GetRequest(ctx, c.http, c.baseURL, publicID)
}

// Health probes the backend health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	return api.Health(ctx, c.http, c.baseURL)
}

// SubmitRequest creates a new help request. On success the returned edit
// credential is recorded in the ownership ledger, when one is configured.
// If the create succeeded but the ledger write failed, the created request
// is returned together with the error so the caller can still show the
// credential to the user.
func (c *Client) SubmitRequest(ctx context.Context, payload CreateRequestPayload) (*CreatedRequest, error) {
	created, err := api.CreateRequest(ctx, c.http, c.baseURL, payload)
	if err != nil {
		return nil, err
	}
	if c.ledger != nil && created.EditToken != "" {
		rec := OwnedRequest{ID: created.Request.ID, EditToken: created.EditToken}
		if err := c.ledger.Upsert(rec); err != nil {
			return created, fmt.Errorf("request created but ledger write failed: %w", err)
		}
	}
	return created, nil
}

// Withdraw transitions an owned request to withdrawn using the credential
// held in the ledger. The ledger entry is removed synchronously on success,
// without waiting for the next sweep.
func (c *Client) Withdraw(ctx context.Context, publicID string) error {
	if c.ledger == nil {
		return ErrNoLedger
	}
	rec, ok := c.ledger.Get(publicID)
	if !ok {
		return ErrNotOwned
	}
	return c.WithdrawWith(ctx, rec.ID, rec.EditToken)
}

// WithdrawWith transitions a request to withdrawn with an explicit
// credential (for users arriving via a manage link rather than the ledger).
// Identifier and credential are validated locally before any network call;
// on failure the ledger is left untouched and the backend's reason is
// surfaced verbatim when available.
func (c *Client) WithdrawWith(ctx context.Context, publicID, editToken string) error {
	if err := api.WithdrawRequest(ctx, c.http, c.baseURL, publicID, editToken); err != nil {
		return err
	}
	if c.ledger != nil {
		if _, err := c.ledger.Remove(publicID); err != nil {
			return fmt.Errorf("request withdrawn but ledger update failed: %w", err)
		}
	}
	return nil
}

// ResolveOwned loads a request for a detail/manage view. Unlike the
// background sweep, a not-found answer here is a strong deletion signal:
// the ledger entry is pruned before ErrNotFound is returned.
func (c *Client) ResolveOwned(ctx context.Context, publicID string) (*Request, error) {
	req, err := c.GetRequest(ctx, publicID)
	if errors.Is(err, types.ErrNotFound) && c.ledger != nil {
		if _, rmErr := c.ledger.Remove(publicID); rmErr != nil {
			c.logger.Warn().Err(rmErr).Str("public_id", publicID).Msg("failed to prune ledger entry for missing request")
		}
	}
	return req, err
}

// Owned lists the ownership ledger, ordered by identifier. It returns nil
// when no ledger is configured.
func (c *Client) Owned() []OwnedRequest {
	if c.ledger == nil {
		return nil
	}
	return c.ledger.List()
}

// --------------------------------------------------------------------
// Background loops
// --------------------------------------------------------------------

// WatchConfig configures a poller created by NewPoller. Zero values inherit
// the client's defaults.
type WatchConfig struct {
	Interval time.Duration
	PageSize int
	Viewport *Viewport
	OnUpdate func(view []Request)
}

// NewPoller builds a viewport-scoped poller feeding off this client. The
// caller owns its lifetime: Start it with the view and Stop it on teardown.
func (c *Client) NewPoller(cfg WatchConfig) (*Poller, error) {
	interval := cfg.Interval
	if interval <= 0 {
		interval = c.pollInterval
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = c.pageSize
	}
	return poller.New(poller.Config{
		Fetch: func(ctx context.Context, params ListParams) ([]Request, error) {
			return c.ListRequests(ctx, params)
		},
		Interval: interval,
		PageSize: pageSize,
		Viewport: cfg.Viewport,
		OnUpdate: cfg.OnUpdate,
		Logger:   c.logger,
	})
}

// SweepConfig configures a sweeper created by NewSweeper.
type SweepConfig struct {
	Interval time.Duration
	OnEvict  func(Eviction)
}

// NewSweeper builds a liveness sweeper over this client's ownership ledger.
func (c *Client) NewSweeper(cfg SweepConfig) (*Sweeper, error) {
	if c.ledger == nil {
		return nil, ErrNoLedger
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = c.sweepInterval
	}
	return sweeper.New(sweeper.Config{
		Ledger:   c.ledger,
		Get:      c.GetRequest,
		Interval: interval,
		OnEvict:  cfg.OnEvict,
		Logger:   c.logger,
	})
}
