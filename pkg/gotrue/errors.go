package gotrue

import (
	"errors"
	"fmt"
	"net/http"
)

// ============================================================================
// Domain Error Taxonomy
// ============================================================================

// The closed set of domain errors surfaced by Client operations. Every
// gateway failure is classified exactly once into one of these; callers
// branch with errors.Is. The mapping is deliberately coarse: per operation
// only one or two HTTP statuses are distinguished and everything else
// collapses into ErrInternal.
var (
	// ErrAlreadyRegistered reports that the identifier already has an account.
	ErrAlreadyRegistered = errors.New("gotrue: identifier is already registered")

	// ErrInvalidCredentials reports a rejected identifier/password pair.
	ErrInvalidCredentials = errors.New("gotrue: invalid credentials")

	// ErrAccountNotFound reports that no account matches the identifier.
	ErrAccountNotFound = errors.New("gotrue: account not found")

	// ErrInvalidToken reports a rejected OTP or verification token.
	ErrInvalidToken = errors.New("gotrue: invalid verification token")

	// ErrNotAuthenticated reports an operation that requires a session when
	// none is held, or a session adoption attempt with an empty token.
	ErrNotAuthenticated = errors.New("gotrue: not authenticated")

	// ErrMissingRefreshToken reports a refresh attempt on a session that was
	// granted without a refresh token.
	ErrMissingRefreshToken = errors.New("gotrue: session has no refresh token")

	// ErrInternal is the catch-all for every other transport or server failure.
	ErrInternal = errors.New("gotrue: internal error")
)

// ============================================================================
// Transport Error
// ============================================================================

// APIError is a structured transport failure returned by the gateway. It
// carries the HTTP status code of the response; the Client classifies on the
// status code alone and never inspects failure bodies.
type APIError struct {
	// StatusCode is the HTTP status code of the failed response
	StatusCode int

	// Message is the service-provided error description, if any
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gotrue: HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("gotrue: HTTP %d: %s", e.StatusCode, e.Message)
}

// httpStatus extracts the HTTP status code from a gateway failure. ok is
// false for network-level errors that never produced a response.
func httpStatus(err error) (code int, ok bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	return 0, false
}

// classify maps a gateway failure onto the domain taxonomy: mapped when the
// failure is a structured HTTP error with the given status, ErrInternal for
// everything else.
func classify(err error, status int, mapped error) error {
	if code, ok := httpStatus(err); ok && code == status {
		return mapped
	}
	return ErrInternal
}
