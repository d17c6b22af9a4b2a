// Package api implements one function per HTTP operation of the relief
// backend. Functions take the http.Client and base URL explicitly so they
// stay trivially testable against httptest servers.
package api

import (
	"io"
	"net/http"

	errs "github.com/sagiphub/reliefhub-go/internal/errors"
)

// maxBodyBytes bounds how much of a response we are willing to buffer.
const maxBodyBytes = 8 << 20

// doJSON issues req and returns the status code plus the buffered body.
// Transport-level failures come back as recoverable classified errors.
func doJSON(httpClient *http.Client, req *http.Request, operation string) (int, []byte, error) {
	req.Header.Set("Accept", "application/json")
	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, nil, errs.NewNetworkError(operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, errs.NewNetworkError(operation, err)
	}
	return resp.StatusCode, body, nil
}
