package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/desertthunder/spotlite/internal/models"
	"github.com/desertthunder/spotlite/internal/services"
	"github.com/desertthunder/spotlite/internal/session"
	"github.com/desertthunder/spotlite/internal/shared"
	"github.com/desertthunder/spotlite/internal/ui"
	"github.com/desertthunder/spotlite/internal/validation"
	"github.com/urfave/cli/v3"
)

// runForm runs an interactive form. A cancelled form reports ok == false.
func (r *Runner) runForm(ctx context.Context, form *huh.Form) (ok bool, err error) {
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			r.writePlain("Cancelled\n")
			return false, nil
		}
		return false, fmt.Errorf("form failed: %w", err)
	}
	return true, nil
}

// AuthRegister validates the signup form and submits it when every rule passes.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	role, err := models.ParseRole(cmd.String("role"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	if cmd.Bool("organizer") {
		role = models.RoleEventOrganizer
	}

	creds := models.Credentials{
		Name:     cmd.String("name"),
		Email:    strings.TrimSpace(cmd.String("email")),
		Contact:  strings.TrimSpace(cmd.String("contact")),
		Password: cmd.String("password"),
		Role:     role,
	}

	if cmd.Bool("interactive") {
		if ok, err := r.runForm(ctx, ui.SignupForm(&creds)); !ok {
			return err
		}
	}

	report := validation.CheckRegistration(creds)
	if !report.Valid() {
		for _, hint := range report.Hints() {
			r.writePlain("  • %s\n", hint)
		}
		return report.Err()
	}

	r.logger.Debug("submitting registration", "email", creds.Email, "role", creds.Role)
	if err := r.auth.Register(ctx, creds); err != nil {
		return r.notify("register", err)
	}

	return r.writePlain("✓ Signup Successful\n")
}

// AuthLogin signs in and stores the returned session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := strings.TrimSpace(cmd.String("email"))
	password := cmd.String("password")

	if cmd.Bool("interactive") {
		if ok, err := r.runForm(ctx, ui.LoginForm(&email, &password)); !ok {
			return err
		}
		email = strings.TrimSpace(email)
	}
	if email == "" || password == "" {
		return fmt.Errorf("%w: --email and --password are required", shared.ErrMissingArgument)
	}

	result, err := services.SignIn(ctx, r.auth, r.store, email, password)
	if err != nil {
		return r.notify("login", err)
	}

	r.logger.Info("logged in", "email", result.User.Email)
	return r.writePlain("✓ Logged in as %s\n", result.User.Role)
}

// AuthLogout removes the stored session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return r.writePlain("✓ Logged out\n")
}

type authStatus struct {
	Authenticated bool         `json:"authenticated"`
	User          *models.User `json:"user,omitempty"`
	Subject       string       `json:"subject,omitempty"`
	Issuer        string       `json:"issuer,omitempty"`
	IssuedAt      *time.Time   `json:"issuedAt,omitempty"`
	ExpiresAt     *time.Time   `json:"expiresAt,omitempty"`
	Expired       bool         `json:"expired"`
}

// AuthStatus shows the stored user and what can be read from the access token.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	sess, ok := r.store.Session()
	status := authStatus{Authenticated: ok}
	if ok {
		status.User = &sess.User
		if info, err := session.InspectToken(sess.AccessToken); err != nil {
			r.logger.Debug("access token is not a JWT", "error", err)
		} else {
			status.Subject = info.Subject
			status.Issuer = info.Issuer
			if !info.IssuedAt.IsZero() {
				status.IssuedAt = &info.IssuedAt
			}
			if !info.ExpiresAt.IsZero() {
				status.ExpiresAt = &info.ExpiresAt
			}
			status.Expired = info.Expired(time.Now())
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, cmd.Bool("pretty"))
	}

	if !status.Authenticated {
		return r.writePlain("✗ Not logged in\n")
	}

	r.writePlainHeader("Session")
	if status.User.Name != "" {
		r.writePlain("User: %s <%s>\n", status.User.Name, status.User.Email)
	} else {
		r.writePlain("User: %s\n", status.User.Email)
	}
	r.writePlain("Role: %s\n", status.User.Role)
	if status.Subject != "" {
		r.writePlain("Subject: %s\n", status.Subject)
	}
	if status.ExpiresAt != nil {
		state := "valid"
		if status.Expired {
			state = "expired"
		}
		r.writePlain("Token expires: %s (%s)\n", status.ExpiresAt.Local().Format(time.RFC1123), state)
	}
	return nil
}

// AuthImport stores the session tokens found in a browser "Copy as cURL" command.
func (r *Runner) AuthImport(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}

	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}

	var curlHeaders *shared.CurlHeaders
	var err error

	if curlFile != "" {
		curlHeaders, err = shared.ParseCurlFile(curlFile)
		if err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}
		r.logger.Info("parsed cURL from file", "file", curlFile)
	} else {
		curlHeaders, err = shared.ParseCurlCommand(curlCmd)
		if err != nil {
			return fmt.Errorf("failed to parse cURL command: %w", err)
		}
		r.logger.Info("parsed cURL command")
	}

	access, refresh := curlHeaders.SessionTokens()
	tokens := models.Tokens{AccessToken: access, RefreshToken: refresh}
	if !tokens.Complete() {
		return fmt.Errorf("%w: cURL command carries no %s/%s pair",
			shared.ErrInvalidSessionToken, shared.AccessTokenCookie, shared.RefreshTokenCookie)
	}

	role, err := models.ParseRole(cmd.String("role"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	user := models.User{Email: strings.TrimSpace(cmd.String("email")), Role: role}

	if err := r.store.SetSession(tokens, user); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return r.writePlain("✓ Session imported\n")
}
