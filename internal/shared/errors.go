package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Form validation errors; surfaced as inline hints, never sent to the API
	ErrValidation = fmt.Errorf("validation failed")

	// Authentication errors
	ErrDuplicateAccount    = fmt.Errorf("account already exists")
	ErrInvalidCredentials  = fmt.Errorf("invalid credentials")
	ErrRegistrationFailed  = fmt.Errorf("registration failed")
	ErrLoginFailed         = fmt.Errorf("login failed")
	ErrNotAuthenticated    = fmt.Errorf("not authenticated")
	ErrInvalidSessionToken = fmt.Errorf("invalid session token")

	// Catalog errors
	ErrCatalogFetchFailed = fmt.Errorf("catalog fetch failed")
	ErrEventNotFound      = fmt.Errorf("event not found")

	// Transport errors
	ErrNetwork = fmt.Errorf("network error")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
