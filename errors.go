package reliefhub

import (
	"errors"

	errs "github.com/sagiphub/reliefhub-go/internal/errors"
	"github.com/sagiphub/reliefhub-go/internal/types"
)

// ErrNotFound is returned when the backend has no request for an identifier.
// Re-exported so callers compare against a single symbol.
var ErrNotFound = types.ErrNotFound

// ErrNotOwned is returned by Withdraw when the ownership ledger holds no
// credential for the identifier.
var ErrNotOwned = errors.New("request is not in the ownership ledger")

// ErrNoLedger is returned by ledger-dependent operations when the client was
// constructed without a ledger option.
var ErrNoLedger = errors.New("no ownership ledger configured")

// APIError carries the backend's verbatim error message for user-facing
// failures such as a credential mismatch on withdraw.
type APIError = errs.APIError

// IsNotFound reports whether err means the request does not exist remotely.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// AsAPIError extracts the backend's error body from err, if present.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
