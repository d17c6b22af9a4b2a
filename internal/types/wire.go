package types

import (
	"bytes"
	"strconv"
	"strings"
	"time"
)

// ------------------------------
// Wire Format
// ------------------------------

// The backend is loose about numeric types: latitude, longitude and
// people_affected may arrive as JSON numbers or as quoted strings. The Flex*
// types absorb either shape without failing the surrounding decode, so one
// malformed record can never poison a whole batch. Records that stay invalid
// after coercion are dropped during normalization.

// FlexFloat is a float64 that unmarshals from a number, a numeric string,
// or null. Valid is false when no usable value was present.
type FlexFloat struct {
	Value float64
	Valid bool
}

// UnmarshalJSON never returns an error; garbage leaves the value invalid.
func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := flexScalar(b)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	f.Value = v
	f.Valid = true
	return nil
}

// FlexInt is an int that unmarshals from a number, a numeric string, or null.
type FlexInt struct {
	Value int
	Valid bool
}

// UnmarshalJSON never returns an error; garbage leaves the value invalid.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := flexScalar(b)
	if s == "" {
		return nil
	}
	// Accept "3.0" style integers as well.
	if v, err := strconv.Atoi(s); err == nil {
		f.Value = v
		f.Valid = true
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		f.Value = int(v)
		f.Valid = true
	}
	return nil
}

// flexScalar strips quotes and surrounding space from a raw JSON scalar and
// returns "" for null or empty input.
func flexScalar(b []byte) string {
	s := strings.TrimSpace(string(bytes.Trim(bytes.TrimSpace(b), `"`)))
	if s == "" || s == "null" {
		return ""
	}
	return s
}

// wireTimeLayouts are the timestamp shapes observed from the backend.
var wireTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseWireTime returns the zero time when no layout matches.
func parseWireTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range wireTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// WireRequest mirrors one request record exactly as the backend sends it.
type WireRequest struct {
	PublicID       string    `json:"public_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Latitude       FlexFloat `json:"latitude"`
	Longitude      FlexFloat `json:"longitude"`
	ContactNumber  string    `json:"contact_number"`
	RequestType    string    `json:"request_type"`
	Urgency        string    `json:"urgency"`
	PeopleAffected FlexInt   `json:"people_affected"`
	CreatedAt      string    `json:"created_at"`
	Status         string    `json:"status"`
}

// Normalize converts a wire record into a domain Request. ok is false when
// the record is unusable (no identifier or no numeric coordinates) and must
// be dropped from the batch.
func (w WireRequest) Normalize() (Request, bool) {
	if w.PublicID == "" || !w.Latitude.Valid || !w.Longitude.Valid {
		return Request{}, false
	}
	status := Status(strings.ToLower(strings.TrimSpace(w.Status)))
	if status == "" {
		status = StatusPending
	}
	return Request{
		ID:             w.PublicID,
		Title:          w.Title,
		Description:    w.Description,
		Latitude:       w.Latitude.Value,
		Longitude:      w.Longitude.Value,
		ContactNumber:  w.ContactNumber,
		RequestType:    w.RequestType,
		Urgency:        Urgency(strings.ToLower(strings.TrimSpace(w.Urgency))),
		PeopleAffected: w.PeopleAffected.Value,
		CreatedAt:      parseWireTime(w.CreatedAt),
		Status:         status,
	}, true
}

// NormalizeAll converts a wire batch, dropping unusable records. dropped
// reports how many were discarded.
func NormalizeAll(ws []WireRequest) (reqs []Request, dropped int) {
	reqs = make([]Request, 0, len(ws))
	for _, w := range ws {
		r, ok := w.Normalize()
		if !ok {
			dropped++
			continue
		}
		reqs = append(reqs, r)
	}
	return reqs, dropped
}
