// package services implements clients for the EventSpotLite HTTP API
//
// Auth (register, login) and the event catalog
package services

import (
	"context"

	"github.com/desertthunder/spotlite/internal/models"
	"golang.org/x/oauth2"
)

// Authenticator issues the account requests of the auth endpoints.
type Authenticator interface {
	// Register creates an account. Returns nil only when the API answers 201.
	Register(ctx context.Context, credentials models.Credentials) error

	// Login exchanges email and password for a token pair and the user's profile.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// EventLister fetches the full event catalog.
type EventLister interface {
	ListEvents(ctx context.Context) (models.EventCollection, error)
}

// SessionWriter is the part of the session store the login flow writes to.
type SessionWriter interface {
	SetSession(tokens models.Tokens, user models.User) error
}

// TokenProvider supplies the bearer token for authenticated requests.
type TokenProvider interface {
	TokenSource() oauth2.TokenSource
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	User models.User `json:"user"`
	models.Tokens
}
