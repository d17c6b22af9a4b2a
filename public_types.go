package reliefhub

import (
	"github.com/sagiphub/reliefhub-go/internal/poller"
	"github.com/sagiphub/reliefhub-go/internal/sweeper"
	"github.com/sagiphub/reliefhub-go/internal/types"
)

// Public type aliases so SDK consumers can import only the reliefhub package.
type (
	// Domain entities
	Request      = types.Request
	OwnedRequest = types.OwnedRequest
	Status       = types.Status
	Urgency      = types.Urgency
	Viewport     = types.Viewport

	// Requests
	CreateRequestPayload = types.CreateRequestPayload
	ListParams           = types.ListParams

	// Responses
	CreatedRequest = types.CreatedRequest
	HealthResponse = types.HealthResponse

	// Background loops
	Poller   = poller.Poller
	Sweeper  = sweeper.Sweeper
	Eviction = sweeper.Eviction
)

// Status values reported by the backend.
const (
	StatusPending    = types.StatusPending
	StatusInProgress = types.StatusInProgress
	StatusCompleted  = types.StatusCompleted
	StatusResolved   = types.StatusResolved
	StatusCancelled  = types.StatusCancelled
	StatusWithdrawn  = types.StatusWithdrawn
	StatusUrgent     = types.StatusUrgent
)

// Urgency values, ordered critical > high > medium > low.
const (
	UrgencyCritical = types.UrgencyCritical
	UrgencyHigh     = types.UrgencyHigh
	UrgencyMedium   = types.UrgencyMedium
	UrgencyLow      = types.UrgencyLow
)

// PhilippinesViewport covers the whole service area; it is the default
// bounding box for viewport-scoped polling.
var PhilippinesViewport = types.PhilippinesViewport
