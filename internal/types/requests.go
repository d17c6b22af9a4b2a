package types

import (
	"net/url"
	"strconv"
	"strings"
)

// ------------------------------
// Request Payloads & Query Params
// ------------------------------

// CreateRequestPayload holds the fields for a new help request.
type CreateRequestPayload struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	ContactNumber  string  `json:"contact_number"`
	RequestType    string  `json:"request_type"`
	Urgency        Urgency `json:"urgency"`
	PeopleAffected int     `json:"people_affected"`
}

// WithdrawPayload carries the edit credential for a withdraw call.
type WithdrawPayload struct {
	EditToken string `json:"edit_token"`
}

// ListParams parameterize one list query: pagination plus an optional
// bounding box. A nil Viewport means an unscoped query.
type ListParams struct {
	Page     int
	PerPage  int
	Viewport *Viewport
}

// Encode renders the query string ("" when all params are zero).
func (p ListParams) Encode() string {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Viewport != nil {
		parts := []string{
			strconv.FormatFloat(p.Viewport.West, 'f', -1, 64),
			strconv.FormatFloat(p.Viewport.South, 'f', -1, 64),
			strconv.FormatFloat(p.Viewport.East, 'f', -1, 64),
			strconv.FormatFloat(p.Viewport.North, 'f', -1, 64),
		}
		q.Set("bbox", strings.Join(parts, ","))
	}
	return q.Encode()
}
