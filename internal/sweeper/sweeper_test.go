package sweeper

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagiphub/reliefhub-go/internal/ledger"
	"github.com/sagiphub/reliefhub-go/internal/types"
)

func newLedger(t *testing.T, recs ...types.OwnedRequest) *ledger.Ledger {
	t.Helper()
	led, err := ledger.New(ledger.NewFileStore(filepath.Join(t.TempDir(), "my_requests.json")))
	require.NoError(t, err)
	for _, rec := range recs {
		require.NoError(t, led.Upsert(rec))
	}
	return led
}

func statusGet(statuses map[string]types.Status) GetFunc {
	return func(ctx context.Context, id string) (*types.Request, error) {
		st, ok := statuses[id]
		if !ok {
			return nil, types.ErrNotFound
		}
		return &types.Request{ID: id, Status: st}, nil
	}
}

func TestSweep_EvictsTerminalRetainsActive(t *testing.T) {
	t.Parallel()
	led := newLedger(t,
		types.OwnedRequest{ID: "active", EditToken: "t1"},
		types.OwnedRequest{ID: "done", EditToken: "t2"},
		types.OwnedRequest{ID: "pulled", EditToken: "t3"},
	)

	var evictions []Eviction
	s, err := New(Config{
		Ledger: led,
		Get: statusGet(map[string]types.Status{
			"active": types.StatusInProgress,
			"done":   types.StatusCompleted,
			"pulled": types.StatusWithdrawn,
		}),
		OnEvict: func(e Eviction) { evictions = append(evictions, e) },
	})
	require.NoError(t, err)

	evicted := s.Sweep(context.Background())
	assert.Equal(t, 2, evicted)
	assert.Equal(t, 1, led.Len())
	_, ok := led.Get("active")
	assert.True(t, ok)

	require.Len(t, evictions, 2)
	byID := map[string]types.Status{}
	for _, e := range evictions {
		byID[e.ID] = e.Status
	}
	assert.Equal(t, types.StatusCompleted, byID["done"])
	assert.Equal(t, types.StatusWithdrawn, byID["pulled"])
}

func TestSweep_RetainsOnTransportError(t *testing.T) {
	t.Parallel()
	led := newLedger(t, types.OwnedRequest{ID: "r1", EditToken: "t1"})

	s, err := New(Config{
		Ledger: led,
		Get: func(ctx context.Context, id string) (*types.Request, error) {
			return nil, errors.New("connection refused")
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, s.Sweep(context.Background()))
	assert.Equal(t, 1, led.Len(), "an unreachable backend must never cost the user a record")
}

func TestSweep_RetainsOnNotFound(t *testing.T) {
	t.Parallel()
	led := newLedger(t, types.OwnedRequest{ID: "r1", EditToken: "t1"})

	s, err := New(Config{Ledger: led, Get: statusGet(nil)})
	require.NoError(t, err)

	assert.Equal(t, 0, s.Sweep(context.Background()))
	assert.Equal(t, 1, led.Len())
}

func TestSweep_StopsOnCancelledContext(t *testing.T) {
	t.Parallel()
	led := newLedger(t,
		types.OwnedRequest{ID: "a", EditToken: "t1"},
		types.OwnedRequest{ID: "b", EditToken: "t2"},
	)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	s, err := New(Config{
		Ledger: led,
		Get: func(ctx context.Context, id string) (*types.Request, error) {
			calls++
			cancel()
			return &types.Request{ID: id, Status: types.StatusCompleted}, nil
		},
	})
	require.NoError(t, err)

	s.Sweep(ctx)
	assert.Equal(t, 1, calls, "remaining records are skipped once the context is done")
}

func TestSweeper_RunsImmediatelyOnStart(t *testing.T) {
	t.Parallel()
	led := newLedger(t, types.OwnedRequest{ID: "done", EditToken: "t1"})

	fetched := make(chan struct{}, 1)
	s, err := New(Config{
		Ledger:   led,
		Interval: time.Hour,
		Get: func(ctx context.Context, id string) (*types.Request, error) {
			select {
			case fetched <- struct{}{}:
			default:
			}
			return &types.Request{ID: id, Status: types.StatusResolved}, nil
		},
	})
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	select {
	case <-fetched:
	case <-time.After(2 * time.Second):
		t.Fatal("first sweep did not run immediately")
	}
	require.Eventually(t, func() bool { return led.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestSweeper_StopIsIdempotent(t *testing.T) {
	t.Parallel()
	led := newLedger(t)
	s, err := New(Config{Ledger: led, Get: statusGet(nil), Interval: time.Hour})
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	s.Stop()
	s.Stop()
}
