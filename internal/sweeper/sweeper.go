// Package sweeper periodically re-checks every ownership record against the
// backend and prunes the ones whose request has reached a terminal status.
package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/sagiphub/reliefhub-go/internal/ledger"
	"github.com/sagiphub/reliefhub-go/internal/types"
)

// DefaultInterval is the sweep cadence, independent of the poll cadence.
const DefaultInterval = 60 * time.Second

// GetFunc fetches a single request by identifier.
type GetFunc func(ctx context.Context, id string) (*types.Request, error)

// Eviction describes one ownership record removed by a sweep.
type Eviction struct {
	ID     string
	Status types.Status
}

// Config configures a Sweeper.
type Config struct {
	Ledger *ledger.Ledger
	Get    GetFunc

	// Interval between sweeps. Defaults to DefaultInterval.
	Interval time.Duration

	// OnEvict, when set, is called once per evicted record on the sweeper
	// goroutine. Views use it to notify the user and navigate away from a
	// now-dead managed request.
	OnEvict func(Eviction)

	Logger zerolog.Logger
}

// Sweeper runs one sweep immediately on Start and then one per interval.
// Per record, a sweep is fail-open: only a successful fetch that reports a
// terminal status removes the record. A transport failure, or even a
// not-found answer, retains it: during a background sweep the client cannot
// tell "gone" from "unreachable" confidently enough to destroy the user's
// only proof of ownership.
type Sweeper struct {
	cfg Config

	cancel  context.CancelFunc
	done    chan struct{}
	started uint32
	stopped uint32
}

// New validates cfg and returns an idle Sweeper.
func New(cfg Config) (*Sweeper, error) {
	if cfg.Ledger == nil {
		return nil, fmt.Errorf("sweeper: Ledger is required")
	}
	if cfg.Get == nil {
		return nil, fmt.Errorf("sweeper: Get is required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &Sweeper{cfg: cfg, done: make(chan struct{})}, nil
}

// Start launches the sweep loop. Start may be called once.
func (s *Sweeper) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapUint32(&s.started, 0, 1) {
		return fmt.Errorf("sweeper: already started")
	}
	ctx, s.cancel = context.WithCancel(ctx)
	go s.run(ctx)
	return nil
}

// Stop cancels the loop and any in-flight fetch, then waits for it to exit.
// Safe to call multiple times.
func (s *Sweeper) Stop() {
	if atomic.LoadUint32(&s.started) == 0 {
		return
	}
	if !atomic.CompareAndSwapUint32(&s.stopped, 0, 1) {
		return
	}
	s.cancel()
	<-s.done
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep validates every ledger record once and returns how many were
// evicted. It is also safe to call directly for a one-shot sweep.
func (s *Sweeper) Sweep(ctx context.Context) int {
	evicted := 0
	for _, rec := range s.cfg.Ledger.List() {
		if ctx.Err() != nil {
			return evicted
		}
		req, err := s.cfg.Get(ctx, rec.ID)
		switch {
		case errors.Is(err, types.ErrNotFound):
			// Ambiguous during a background sweep: retain.
			sweepChecksTotal.WithLabelValues("not_found").Inc()
			s.cfg.Logger.Debug().Str("public_id", rec.ID).Msg("sweep: request not found, retaining record")
		case err != nil:
			sweepChecksTotal.WithLabelValues("error").Inc()
			s.cfg.Logger.Debug().Err(err).Str("public_id", rec.ID).Msg("sweep check failed, retaining record")
		case req.Status.Terminal():
			if _, rmErr := s.cfg.Ledger.Remove(rec.ID); rmErr != nil {
				sweepChecksTotal.WithLabelValues("error").Inc()
				s.cfg.Logger.Warn().Err(rmErr).Str("public_id", rec.ID).Msg("sweep eviction failed to persist")
				continue
			}
			evicted++
			sweepChecksTotal.WithLabelValues("evicted").Inc()
			s.cfg.Logger.Info().Str("public_id", rec.ID).Str("status", string(req.Status)).Msg("owned request reached terminal status, evicted")
			if s.cfg.OnEvict != nil {
				s.cfg.OnEvict(Eviction{ID: rec.ID, Status: req.Status})
			}
		default:
			sweepChecksTotal.WithLabelValues("active").Inc()
		}
	}
	sweepsTotal.Inc()
	return evicted
}
