// Package poller owns the fetch/merge cadence that keeps the local snapshot
// set consistent with the remote request store.
package poller

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/sagiphub/reliefhub-go/internal/snapshot"
	"github.com/sagiphub/reliefhub-go/internal/types"
)

// DefaultInterval is the wall-clock polling cadence.
const DefaultInterval = 15 * time.Second

// DefaultPageSize is the page size of each snapshot fetch.
const DefaultPageSize = 50

// FetchFunc issues one parameterized list query against the backend.
type FetchFunc func(ctx context.Context, params types.ListParams) ([]types.Request, error)

// Config configures a Poller.
type Config struct {
	// Fetch is required.
	Fetch FetchFunc

	// Interval between scheduled cycles. Defaults to DefaultInterval.
	Interval time.Duration

	// PageSize of each fetch. Defaults to DefaultPageSize.
	PageSize int

	// Viewport is the initial bounding-box scope. Nil polls unscoped.
	Viewport *types.Viewport

	// OnUpdate, when set, receives the full display-ordered view after
	// every successful merge. It runs on the poller goroutine and must not
	// block for long.
	OnUpdate func(view []types.Request)

	Logger zerolog.Logger
}

// Poller runs fetch-and-merge cycles on a fixed interval and on demand when
// the viewport changes. All cycles execute sequentially on one goroutine, so
// at most one fetch is ever in flight and merges can never race each other.
//
// A Poller is constructed, started and stopped alongside the view that needs
// it; Stop cancels the interval and any in-flight fetch so no merge lands
// after teardown.
type Poller struct {
	cfg Config

	mu       sync.Mutex
	set      *snapshot.Set
	viewport *types.Viewport

	kick    chan struct{} // coalesces on-demand triggers while a cycle runs
	cancel  context.CancelFunc
	done    chan struct{}
	started uint32
	stopped uint32
}

// New validates cfg and returns an idle Poller holding an empty set.
func New(cfg Config) (*Poller, error) {
	if cfg.Fetch == nil {
		return nil, fmt.Errorf("poller: Fetch is required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	return &Poller{
		cfg:      cfg,
		set:      snapshot.New(),
		viewport: cfg.Viewport,
		kick:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Start launches the polling loop: one immediate cycle, then one per
// interval, plus one per viewport change. Start may be called once.
func (p *Poller) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapUint32(&p.started, 0, 1) {
		return fmt.Errorf("poller: already started")
	}
	ctx, p.cancel = context.WithCancel(ctx)
	go p.run(ctx)
	return nil
}

// Stop cancels the interval timer and any in-flight fetch, then waits for
// the loop to exit. Safe to call multiple times.
func (p *Poller) Stop() {
	if atomic.LoadUint32(&p.started) == 0 {
		return
	}
	if !atomic.CompareAndSwapUint32(&p.stopped, 0, 1) {
		return
	}
	p.cancel()
	<-p.done
}

// SetViewport re-scopes the poller to a new bounding box and triggers an
// immediate cycle. If a cycle is already running the trigger coalesces into
// a single follow-up.
func (p *Poller) SetViewport(v types.Viewport) {
	p.mu.Lock()
	p.viewport = &v
	p.mu.Unlock()
	p.Kick()
}

// Kick requests an immediate out-of-band cycle.
func (p *Poller) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Snapshot returns the current display-ordered view.
func (p *Poller) Snapshot() []types.Request {
	p.mu.Lock()
	set := p.set
	p.mu.Unlock()
	return set.Ordered()
}

// Get looks up one request in the current set.
func (p *Poller) Get(id string) (types.Request, bool) {
	p.mu.Lock()
	set := p.set
	p.mu.Unlock()
	return set.Get(id)
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	p.cycle(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.cycle(ctx)
		case <-p.kick:
			p.cycle(ctx)
		}
	}
}

// cycle runs one fetch-and-merge. Failures are logged and counted, never
// fatal: the ticker keeps running and the next cycle retries.
func (p *Poller) cycle(ctx context.Context) {
	p.mu.Lock()
	vp := p.viewport
	p.mu.Unlock()

	params := types.ListParams{Page: 1, PerPage: p.cfg.PageSize, Viewport: vp}
	incoming, err := p.cfg.Fetch(ctx, params)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		cyclesTotal.WithLabelValues("error").Inc()
		p.cfg.Logger.Warn().Err(err).Msg("poll cycle failed")
		return
	}
	// A response that raced teardown is discarded, not merged.
	if ctx.Err() != nil {
		return
	}

	p.mu.Lock()
	p.set = p.set.Merge(incoming)
	set := p.set
	p.mu.Unlock()

	cyclesTotal.WithLabelValues("ok").Inc()
	snapshotSize.Set(float64(set.Len()))
	p.cfg.Logger.Debug().Int("fetched", len(incoming)).Int("held", set.Len()).Msg("poll cycle merged")

	if p.cfg.OnUpdate != nil {
		p.cfg.OnUpdate(set.Ordered())
	}
}
