package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	errs "github.com/sagiphub/reliefhub-go/internal/errors"
	"github.com/sagiphub/reliefhub-go/internal/types"
)

func TestListRequests_BareArray(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/requests" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"public_id":"a","latitude":"14.5","longitude":121,"created_at":"2024-07-01T10:00:00Z"}]`))
	}))
	defer srv.Close()

	reqs, dropped, err := ListRequests(context.Background(), srv.Client(), srv.URL, types.ListParams{})
	if err != nil || dropped != 0 || len(reqs) != 1 {
		t.Fatalf("got reqs=%+v dropped=%d err=%v", reqs, dropped, err)
	}
	if reqs[0].Latitude != 14.5 {
		t.Fatalf("latitude not coerced: %+v", reqs[0])
	}
}

func TestListRequests_EnvelopeAndParams(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("per_page") != "25" || q.Get("bbox") != "120,14,121,15" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":  []map[string]any{{"public_id": "b", "latitude": 14.2, "longitude": 120.5}},
			"page":  2,
			"total": 1,
		})
	}))
	defer srv.Close()

	params := types.ListParams{Page: 2, PerPage: 25, Viewport: &types.Viewport{West: 120, South: 14, East: 121, North: 15}}
	reqs, _, err := ListRequests(context.Background(), srv.Client(), srv.URL, params)
	if err != nil || len(reqs) != 1 || reqs[0].ID != "b" {
		t.Fatalf("got %+v err=%v", reqs, err)
	}
}

func TestListRequests_DropsUnusableRecords(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"public_id":"ok","latitude":1,"longitude":2},
			{"public_id":"broken","latitude":"x","longitude":2}
		]`))
	}))
	defer srv.Close()

	reqs, dropped, err := ListRequests(context.Background(), srv.Client(), srv.URL, types.ListParams{})
	if err != nil || len(reqs) != 1 || dropped != 1 {
		t.Fatalf("got reqs=%d dropped=%d err=%v", len(reqs), dropped, err)
	}
}

func TestListRequests_NetworkErrorIsRecoverable(t *testing.T) {
	t.Parallel()
	hc := &http.Client{Transport: &errRT{}}
	_, _, err := ListRequests(context.Background(), hc, "http://example.com", types.ListParams{})
	if err == nil || !errs.IsRecoverable(err) {
		t.Fatalf("expected recoverable network error, got %v", err)
	}
}

func TestGetRequest_NotFound(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := GetRequest(context.Background(), srv.Client(), srv.URL, "missing")
	if !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetRequest_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/requests/r1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"public_id":"r1","latitude":14,"longitude":121,"status":"in_progress"}`))
	}))
	defer srv.Close()

	req, err := GetRequest(context.Background(), srv.Client(), srv.URL, "r1")
	if err != nil || req.ID != "r1" || req.Status != types.StatusInProgress {
		t.Fatalf("got %+v err=%v", req, err)
	}
}

func TestGetRequest_EmptyID(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	if _, err := GetRequest(context.Background(), srv.Client(), srv.URL, " "); err == nil {
		t.Fatal("expected validation error for empty id")
	}
}

func TestCreateRequest_SuccessWithIdempotencyKey(t *testing.T) {
	t.Parallel()
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"request":{"public_id":"new-1","latitude":14,"longitude":121},"edit_token":"tok-1"}`))
	}))
	defer srv.Close()

	created, err := CreateRequest(context.Background(), srv.Client(), srv.URL, validPayload())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Request.ID != "new-1" || created.EditToken != "tok-1" {
		t.Fatalf("got %+v", created)
	}
	if gotKey == "" {
		t.Fatal("expected an Idempotency-Key header")
	}
}

func TestCreateRequest_RetriesServerErrors(t *testing.T) {
	t.Parallel()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"request":{"public_id":"new-2","latitude":14,"longitude":121},"edit_token":"tok-2"}`))
	}))
	defer srv.Close()

	created, err := CreateRequest(context.Background(), srv.Client(), srv.URL, validPayload())
	if err != nil || created.Request.ID != "new-2" {
		t.Fatalf("got %+v err=%v", created, err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("expected 2 calls, got %d", n)
	}
}

func TestCreateRequest_LocalValidationSkipsNetwork(t *testing.T) {
	t.Parallel()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	if _, err := CreateRequest(context.Background(), srv.Client(), srv.URL, types.CreateRequestPayload{}); err == nil {
		t.Fatal("expected validation error")
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatal("validation failure must not reach the network")
	}
}

func TestWithdrawRequest_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/requests/r1/withdraw" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var p types.WithdrawPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		if p.EditToken != "tok-1" {
			t.Errorf("unexpected token %q", p.EditToken)
		}
		_ = json.NewEncoder(w).Encode(types.WithdrawResponse{Success: true})
	}))
	defer srv.Close()

	if err := WithdrawRequest(context.Background(), srv.Client(), srv.URL, "r1", "tok-1"); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
}

func TestWithdrawRequest_EmptyCredentialSkipsNetwork(t *testing.T) {
	t.Parallel()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	if err := WithdrawRequest(context.Background(), srv.Client(), srv.URL, "r1", ""); err == nil {
		t.Fatal("expected validation error")
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatal("validation failure must not reach the network")
	}
}

func TestWithdrawRequest_CredentialMismatchSurfacesServerMessage(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"invalid edit token","path":"/requests/r1/withdraw"}`))
	}))
	defer srv.Close()

	err := WithdrawRequest(context.Background(), srv.Client(), srv.URL, "r1", "wrong")
	var apiErr *errs.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "invalid edit token" || apiErr.Status != http.StatusForbidden {
		t.Fatalf("server message not preserved: %+v", apiErr)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(types.HealthResponse{Status: "ok"})
	}))
	defer srv.Close()

	hr, err := Health(context.Background(), srv.Client(), srv.URL)
	if err != nil || hr.Status != "ok" {
		t.Fatalf("got %+v err=%v", hr, err)
	}
}

func validPayload() types.CreateRequestPayload {
	return types.CreateRequestPayload{
		Title:          "Trapped on roof",
		Description:    "Water rising",
		Latitude:       14.6,
		Longitude:      121.0,
		ContactNumber:  "09171234567",
		RequestType:    "rescue",
		Urgency:        types.UrgencyCritical,
		PeopleAffected: 3,
	}
}
