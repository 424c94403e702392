package services

import (
	"errors"
	"fmt"

	"github.com/desertthunder/spotlite/internal/shared"
)

// APIError is a failed API outcome tagged with its kind.
//
// Kind is one of the shared sentinels (ErrDuplicateAccount, ErrInvalidCredentials,
// ErrRegistrationFailed, ErrLoginFailed, ErrCatalogFetchFailed, ErrNetwork) so
// callers branch with [errors.Is] instead of inspecting status codes.
type APIError struct {
	Kind       error
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Kind.Error()
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	return msg
}

func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newAPIError(kind error, resp *APIResponse) *APIError {
	return &APIError{Kind: kind, StatusCode: resp.Status(), Message: resp.Message()}
}

func networkError(err error) *APIError {
	return &APIError{Kind: shared.ErrNetwork, Message: err.Error(), Err: err}
}

// Describe turns any error from this package into the notification shown to the user.
func Describe(err error) string {
	var apiErr *APIError
	errors.As(err, &apiErr)

	detail := func(fallback string) string {
		if apiErr != nil && apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}

	switch {
	case err == nil:
		return ""
	case errors.Is(err, shared.ErrDuplicateAccount):
		return "User with email already exists."
	case errors.Is(err, shared.ErrInvalidCredentials):
		return "Invalid Credentials. Please try again"
	case errors.Is(err, shared.ErrLoginFailed):
		return "Error logging into account"
	case errors.Is(err, shared.ErrRegistrationFailed):
		return "Registration failed: " + detail("unexpected response")
	case errors.Is(err, shared.ErrCatalogFetchFailed):
		return "Could not load events: " + detail("unexpected response")
	case errors.Is(err, shared.ErrNetwork):
		return "Network error: the EventSpotLite API could not be reached. It may take up to 50 seconds to wake up."
	default:
		return err.Error()
	}
}
