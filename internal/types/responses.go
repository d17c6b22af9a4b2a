package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ------------------------------
// Response Types
// ------------------------------

// ListResponse is the envelope form of the list endpoint. The endpoint may
// also answer with a bare array; DecodeList accepts both.
type ListResponse struct {
	Data    []WireRequest `json:"data"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
	Total   int           `json:"total"`
}

// DecodeList normalizes either response shape of the list endpoint into a
// wire batch.
func DecodeList(body []byte) ([]WireRequest, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var ws []WireRequest
		if err := json.Unmarshal(trimmed, &ws); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return ws, nil
	}
	var env ListResponse
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode list envelope: %w", err)
	}
	return env.Data, nil
}

// CreateResponse is the backend's answer to a successful create: the stored
// request plus the private edit credential.
type CreateResponse struct {
	Request   WireRequest `json:"request"`
	EditToken string      `json:"edit_token"`
}

// CreatedRequest is the normalized create result handed to callers.
type CreatedRequest struct {
	Request   Request
	EditToken string
}

// WithdrawResponse mirrors the withdraw endpoint's success indicator.
type WithdrawResponse struct {
	Success bool `json:"success"`
}

// HealthResponse mirrors the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
