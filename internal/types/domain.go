package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// Status is the lifecycle state of a help request as reported by the backend.
// An absent status means pending.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusResolved   Status = "resolved"
	StatusCancelled  Status = "cancelled"
	StatusWithdrawn  Status = "withdrawn"
	StatusUrgent     Status = "urgent"
)

// Terminal reports whether the request is inactive and can no longer be
// managed by its owner.
func (s Status) Terminal() bool {
	switch s {
	case StatusWithdrawn, StatusCancelled, StatusCompleted, StatusResolved:
		return true
	}
	return false
}

// Urgency is the declared severity of a help request.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

// Rank orders urgencies by severity: critical > high > medium > low.
// Unknown values rank below low.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 3
	case UrgencyHigh:
		return 2
	case UrgencyMedium:
		return 1
	case UrgencyLow:
		return 0
	}
	return -1
}

// Request represents a single help request.
type Request struct {
	ID             string    `json:"public_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	ContactNumber  string    `json:"contact_number"`
	RequestType    string    `json:"request_type"`
	Urgency        Urgency   `json:"urgency"`
	PeopleAffected int       `json:"people_affected"`
	CreatedAt      time.Time `json:"created_at"`
	Status         Status    `json:"status"`
}

// OwnedRequest pairs a request identifier with the private credential that
// authorizes edits. It is the only proof of ownership the client holds;
// losing it permanently loses the ability to manage the request.
type OwnedRequest struct {
	ID        string `json:"public_id"`
	EditToken string `json:"edit_token"`
}

// Viewport is a geographic bounding box in west/south/east/north order.
type Viewport struct {
	West  float64 `json:"west" yaml:"west"`
	South float64 `json:"south" yaml:"south"`
	East  float64 `json:"east" yaml:"east"`
	North float64 `json:"north" yaml:"north"`
}

// PhilippinesViewport covers the whole service area and is the default scope
// for viewport-bound polling.
var PhilippinesViewport = Viewport{West: 116.0, South: 4.0, East: 127.0, North: 21.5}
