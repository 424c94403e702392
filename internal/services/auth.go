package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotlite/internal/models"
	"github.com/desertthunder/spotlite/internal/shared"
)

const (
	registerPath = "auth/register"
	loginPath    = "auth/login"
)

// AuthClient implements [Authenticator] against the auth endpoints.
type AuthClient struct {
	api    *APIService
	logger *log.Logger
}

// NewAuthClient creates an auth client sharing api's transport.
func NewAuthClient(api *APIService) *AuthClient {
	return &AuthClient{api: api, logger: api.logger}
}

type registerRequest struct {
	Name     string      `json:"name"`
	Contact  string      `json:"contact"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register submits the registration form. Validation is the caller's job.
func (c *AuthClient) Register(ctx context.Context, creds models.Credentials) error {
	resp, err := c.api.Post(ctx, registerPath, registerRequest{
		Name:     creds.Name,
		Contact:  creds.Contact,
		Email:    creds.Email,
		Password: creds.Password,
		Role:     creds.Role,
	})
	if err != nil {
		return err
	}

	switch resp.Status() {
	case http.StatusCreated:
		c.logger.Info("account registered", "email", creds.Email, "role", creds.Role)
		return nil
	case http.StatusConflict:
		return newAPIError(shared.ErrDuplicateAccount, resp)
	default:
		return newAPIError(shared.ErrRegistrationFailed, resp)
	}
}

// Login authenticates with email and password.
//
// A 200 whose data lacks either token is treated as [shared.ErrLoginFailed].
func (c *AuthClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	resp, err := c.api.Post(ctx, loginPath, loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	switch resp.Status() {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, newAPIError(shared.ErrInvalidCredentials, resp)
	default:
		return nil, newAPIError(shared.ErrLoginFailed, resp)
	}

	var result LoginResult
	if err := resp.Decode(&result); err != nil {
		apiErr := newAPIError(shared.ErrLoginFailed, resp)
		apiErr.Err = err
		return nil, apiErr
	}
	if !result.Tokens.Complete() {
		apiErr := newAPIError(shared.ErrLoginFailed, resp)
		apiErr.Err = fmt.Errorf("%w: response is missing a token", shared.ErrInvalidSessionToken)
		return nil, apiErr
	}

	c.logger.Info("logged in", "email", result.User.Email)
	return &result, nil
}

// SignIn logs in and, on success only, replaces the session in store.
func SignIn(ctx context.Context, auth Authenticator, store SessionWriter, email, password string) (*LoginResult, error) {
	result, err := auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := store.SetSession(result.Tokens, result.User); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return result, nil
}
