// Package ledger is the durable, client-local registry of requests this
// user created: identifier plus private edit credential, keyed by
// identifier. It is the only proof of ownership; there is no server-side
// account to recover it from.
package ledger

import (
	"sort"
	"sync"

	"github.com/sagiphub/reliefhub-go/internal/types"
)

// Store persists the registry as a unit. Load must treat missing or
// corrupted storage as an empty registry, never as a failure.
type Store interface {
	Load() ([]types.OwnedRequest, error)
	Save([]types.OwnedRequest) error
}

// Ledger serializes access to the registry. The poller and the sweeper tick
// on independent cadences, so every mutation happens under the lock and is
// written through to the store as a whole.
type Ledger struct {
	mu      sync.Mutex
	store   Store
	records map[string]types.OwnedRequest
}

// New loads the registry from store.
func New(store Store) (*Ledger, error) {
	recs, err := store.Load()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]types.OwnedRequest, len(recs))
	for _, r := range recs {
		if r.ID == "" {
			continue
		}
		byID[r.ID] = r
	}
	return &Ledger{store: store, records: byID}, nil
}

// List returns all owned records, ordered by identifier.
func (l *Ledger) List() []types.OwnedRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]types.OwnedRequest, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get looks up the record for an identifier.
func (l *Ledger) Get(id string) (types.OwnedRequest, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.records[id]
	return r, ok
}

// Len returns the number of owned records.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Upsert inserts or replaces the record for rec.ID and writes the registry
// through to the store.
func (l *Ledger) Upsert(rec types.OwnedRequest) error {
	if err := types.ValidateCredentials(rec.ID, rec.EditToken); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records[rec.ID] = rec
	return l.store.Save(l.snapshotLocked())
}

// Remove deletes the record for id, reporting whether it existed. The
// registry is written through even on a no-op removal so the store converges
// with memory.
func (l *Ledger) Remove(id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, existed := l.records[id]
	delete(l.records, id)
	return existed, l.store.Save(l.snapshotLocked())
}

func (l *Ledger) snapshotLocked() []types.OwnedRequest {
	out := make([]types.OwnedRequest, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
