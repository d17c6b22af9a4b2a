package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	errs "github.com/sagiphub/reliefhub-go/internal/errors"
	"github.com/sagiphub/reliefhub-go/internal/types"
)

// ListRequests fetches one snapshot of help requests: a page, optionally
// scoped to a bounding box. Both the bare-array and the envelope response
// shapes are accepted. dropped counts records discarded during
// normalization.
func ListRequests(ctx context.Context, httpClient *http.Client, baseURL string, params types.ListParams) (reqs []types.Request, dropped int, err error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	u := baseURL + "/requests"
	if qs := params.Encode(); qs != "" {
		u += "?" + qs
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	status, body, err := doJSON(httpClient, httpReq, "list requests")
	if err != nil {
		return nil, 0, err
	}
	if status != http.StatusOK {
		return nil, 0, errs.NewHTTPError(status, string(body), "list requests")
	}
	ws, err := types.DecodeList(body)
	if err != nil {
		return nil, 0, err
	}
	reqs, dropped = types.NormalizeAll(ws)
	return reqs, dropped, nil
}

// GetRequest fetches a single request by identifier. A missing identifier
// is reported as types.ErrNotFound; transport failures come back as
// recoverable classified errors so callers can tell "gone" from
// "unreachable".
func GetRequest(ctx context.Context, httpClient *http.Client, baseURL, publicID string) (*types.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(publicID, "public_id"); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/requests/%s", baseURL, url.PathEscape(publicID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	status, body, err := doJSON(httpClient, httpReq, "get request")
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusOK:
	case status == http.StatusNotFound || status == http.StatusGone:
		return nil, types.ErrNotFound
	default:
		return nil, errs.NewHTTPError(status, string(body), "get request")
	}
	var w types.WireRequest
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	r, ok := w.Normalize()
	if !ok {
		return nil, fmt.Errorf("decode request: unusable record for %q", publicID)
	}
	return &r, nil
}

// CreateRequest submits a new help request and returns the stored request
// plus its private edit credential. A client-generated Idempotency-Key
// header makes the backoff retry safe against duplicate creation.
func CreateRequest(ctx context.Context, httpClient *http.Client, baseURL string, payload types.CreateRequestPayload) (*types.CreatedRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	idempotencyKey := uuid.NewString()

	var created *types.CreatedRequest
	op := func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/requests", bytes.NewReader(raw))
		if err != nil {
			return err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Idempotency-Key", idempotencyKey)

		status, body, err := doJSON(httpClient, httpReq, "create request")
		if err != nil {
			return err
		}
		if status != http.StatusOK && status != http.StatusCreated {
			if errs.StatusRecoverable(status) {
				return errs.NewHTTPError(status, string(body), "create request")
			}
			return errs.ParseAPIError(status, body)
		}
		var cr types.CreateResponse
		if err := json.Unmarshal(body, &cr); err != nil {
			return fmt.Errorf("decode create response: %w", err)
		}
		req, ok := cr.Request.Normalize()
		if !ok {
			return fmt.Errorf("decode create response: unusable request record")
		}
		created = &types.CreatedRequest{Request: req, EditToken: cr.EditToken}
		return nil
	}
	if err := withRetry(ctx, op); err != nil {
		return nil, err
	}
	return created, nil
}

// WithdrawRequest transitions a request to withdrawn using the owner's edit
// credential. Both identifier and credential are validated locally before
// any network call. Failure bodies are preserved verbatim in an APIError.
func WithdrawRequest(ctx context.Context, httpClient *http.Client, baseURL, publicID, editToken string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateCredentials(publicID, editToken); err != nil {
		return err
	}
	raw, err := json.Marshal(types.WithdrawPayload{EditToken: editToken})
	if err != nil {
		return err
	}
	u := fmt.Sprintf("%s/requests/%s/withdraw", baseURL, url.PathEscape(publicID))

	op := func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(raw))
		if err != nil {
			return err
		}
		httpReq.Header.Set("Content-Type", "application/json")

		status, body, err := doJSON(httpClient, httpReq, "withdraw request")
		if err != nil {
			return err
		}
		if status < 200 || status > 299 {
			if errs.StatusRecoverable(status) {
				return errs.NewHTTPError(status, string(body), "withdraw request")
			}
			return errs.ParseAPIError(status, body)
		}
		return nil
	}
	return withRetry(ctx, op)
}

// Health probes the backend's health endpoint.
func Health(ctx context.Context, httpClient *http.Client, baseURL string) (*types.HealthResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return nil, err
	}
	status, body, err := doJSON(httpClient, httpReq, "health")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, errs.NewHTTPError(status, string(body), "health")
	}
	var hr types.HealthResponse
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &hr); err != nil {
			return nil, fmt.Errorf("decode health response: %w", err)
		}
	}
	return &hr, nil
}
