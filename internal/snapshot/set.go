// Package snapshot holds the locally reconciled view of the remote request
// set and the merge rule that keeps it consistent under partial fetches.
package snapshot

import (
	"sort"

	"github.com/sagiphub/reliefhub-go/internal/types"
)

// Set is an immutable mapping from request identifier to Request. The
// identifier is the merge key everywhere: two requests with the same ID are
// the same logical entity. Merge returns a new Set rather than mutating, so
// interleaved timer callbacks can never observe a torn intermediate state.
type Set struct {
	byID map[string]types.Request
}

// New returns an empty set.
func New() *Set {
	return &Set{byID: map[string]types.Request{}}
}

// Merge folds an incoming batch into the set by identifier and returns the
// result. Incoming records win on conflict (they are strictly newer than
// whatever a previous poll saw). Records present locally but absent from the
// batch are retained, never deleted: a batch is only a page or bounding-box
// slice of the remote set, so absence is not a deletion signal.
//
// Merge is idempotent, and commutative across batches up to which record
// wins a same-identifier conflict (arrival order decides; the wire format
// carries no update-time to compare).
func (s *Set) Merge(incoming []types.Request) *Set {
	next := make(map[string]types.Request, len(s.byID)+len(incoming))
	for id, r := range s.byID {
		next[id] = r
	}
	for _, r := range incoming {
		if r.ID == "" {
			continue
		}
		next[r.ID] = r
	}
	return &Set{byID: next}
}

// Len returns the number of distinct requests held.
func (s *Set) Len() int {
	return len(s.byID)
}

// Get looks up a request by identifier.
func (s *Set) Get(id string) (types.Request, bool) {
	r, ok := s.byID[id]
	return r, ok
}

// Ordered returns the display order: createdAt descending, identifier as a
// deterministic tie-break. The order is recomputed from scratch on every
// call, not maintained incrementally.
func (s *Set) Ordered() []types.Request {
	out := make([]types.Request, 0, len(s.byID))
	for _, r := range s.byID {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
