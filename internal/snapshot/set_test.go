package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagiphub/reliefhub-go/internal/types"
)

func req(id string, createdAt time.Time) types.Request {
	return types.Request{ID: id, Title: "request " + id, CreatedAt: createdAt, Status: types.StatusPending}
}

func ids(reqs []types.Request) []string {
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.ID
	}
	return out
}

func TestMerge_InsertAndOverwrite(t *testing.T) {
	t.Parallel()
	t0 := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	s := New().Merge([]types.Request{req("a", t0)})
	require.Equal(t, 1, s.Len())

	updated := req("a", t0)
	updated.Status = types.StatusInProgress
	s = s.Merge([]types.Request{updated})

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, types.StatusInProgress, got.Status, "incoming must win on conflict")
	assert.Equal(t, 1, s.Len())
}

func TestMerge_RetainsEntriesAbsentFromIncoming(t *testing.T) {
	t.Parallel()
	t0 := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	// Initial page: R1(t=10), R2(t=5).
	s := New().Merge([]types.Request{
		req("r1", t0.Add(10*time.Second)),
		req("r2", t0.Add(5*time.Second)),
	})
	assert.Equal(t, []string{"r1", "r2"}, ids(s.Ordered()))

	// A narrower bounding-box fetch returns only R3(t=20); R1 and R2 just
	// scrolled out of view and must survive.
	s = s.Merge([]types.Request{req("r3", t0.Add(20 * time.Second))})
	assert.Equal(t, []string{"r3", "r1", "r2"}, ids(s.Ordered()))
}

func TestMerge_Idempotent(t *testing.T) {
	t.Parallel()
	t0 := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	batch := []types.Request{req("a", t0), req("b", t0.Add(time.Minute))}

	once := New().Merge(batch)
	twice := once.Merge(batch)

	assert.Equal(t, once.Len(), twice.Len())
	assert.Equal(t, ids(once.Ordered()), ids(twice.Ordered()))
}

func TestMerge_CommutativeAcrossDisjointBatches(t *testing.T) {
	t.Parallel()
	t0 := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	batchA := []types.Request{req("a", t0.Add(time.Second))}
	batchB := []types.Request{req("b", t0.Add(2 * time.Second))}

	ab := New().Merge(batchA).Merge(batchB)
	ba := New().Merge(batchB).Merge(batchA)

	assert.Equal(t, ids(ab.Ordered()), ids(ba.Ordered()))
}

func TestMerge_DoesNotMutateReceiver(t *testing.T) {
	t.Parallel()
	t0 := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	base := New().Merge([]types.Request{req("a", t0)})

	_ = base.Merge([]types.Request{req("b", t0)})
	assert.Equal(t, 1, base.Len(), "merge must return a new set")
}

func TestMerge_SkipsEmptyIdentifiers(t *testing.T) {
	t.Parallel()
	s := New().Merge([]types.Request{{ID: ""}})
	assert.Equal(t, 0, s.Len())
}

func TestOrdered_CreatedAtDescending(t *testing.T) {
	t.Parallel()
	t0 := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	s := New().Merge([]types.Request{
		req("old", t0),
		req("new", t0.Add(time.Hour)),
		req("mid", t0.Add(time.Minute)),
	})

	ordered := s.Ordered()
	require.Len(t, ordered, 3)
	for i := 1; i < len(ordered); i++ {
		assert.False(t, ordered[i].CreatedAt.After(ordered[i-1].CreatedAt),
			"ordering must be non-increasing in createdAt")
	}
	assert.Equal(t, []string{"new", "mid", "old"}, ids(ordered))
}

func TestOrdered_TieBreaksDeterministically(t *testing.T) {
	t.Parallel()
	t0 := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	s := New().Merge([]types.Request{req("b", t0), req("a", t0)})
	assert.Equal(t, []string{"a", "b"}, ids(s.Ordered()))
}
