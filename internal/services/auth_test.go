package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/spotlite/internal/models"
	"github.com/desertthunder/spotlite/internal/session"
	"github.com/desertthunder/spotlite/internal/shared"
	tu "github.com/desertthunder/spotlite/internal/testing"
)

func validCredentials() models.Credentials {
	return models.Credentials{
		Name:     "Asha",
		Email:    "asha@example.com",
		Contact:  "9876543210",
		Password: "Passw0rd!",
		Role:     models.RoleUser,
	}
}

func TestAuthClient(t *testing.T) {
	t.Run("Register", func(t *testing.T) {
		t.Run("Created", func(t *testing.T) {
			api := tu.NewAPIServer(t)
			client := NewAuthClient(NewAPIService(api.BaseURL(), nil))

			if err := client.Register(context.Background(), validCredentials()); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			req := api.LastRequest()
			if req.URL.Path != "/api/v1/auth/register" {
				t.Errorf("unexpected path %s", req.URL.Path)
			}
			if _, ok := api.Accounts["asha@example.com"]; !ok {
				t.Error("expected account to be recorded")
			}
			if api.Accounts["asha@example.com"].Role != models.RoleUser {
				t.Errorf("expected role to be sent, got %q", api.Accounts["asha@example.com"].Role)
			}
		})

		t.Run("Duplicate Account", func(t *testing.T) {
			api := tu.NewAPIServer(t)
			client := NewAuthClient(NewAPIService(api.BaseURL(), nil))

			if err := client.Register(context.Background(), validCredentials()); err != nil {
				t.Fatalf("first register failed: %v", err)
			}
			err := client.Register(context.Background(), validCredentials())
			if !errors.Is(err, shared.ErrDuplicateAccount) {
				t.Fatalf("expected ErrDuplicateAccount, got %v", err)
			}
			if got := Describe(err); got != "User with email already exists." {
				t.Errorf("unexpected notification %q", got)
			}
		})

		t.Run("Other Status Carries Server Message", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tu.Envelope(w, http.StatusBadRequest, nil, "contact already used")
			}))
			defer server.Close()

			err := NewAuthClient(NewAPIService(server.URL, nil)).Register(context.Background(), validCredentials())
			if !errors.Is(err, shared.ErrRegistrationFailed) {
				t.Fatalf("expected ErrRegistrationFailed, got %v", err)
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatal("expected *APIError")
			}
			if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "contact already used" {
				t.Errorf("unexpected error fields %+v", apiErr)
			}
		})

		t.Run("200 Is Not Success", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tu.Envelope(w, http.StatusOK, nil, "")
			}))
			defer server.Close()

			err := NewAuthClient(NewAPIService(server.URL, nil)).Register(context.Background(), validCredentials())
			if !errors.Is(err, shared.ErrRegistrationFailed) {
				t.Errorf("expected ErrRegistrationFailed, got %v", err)
			}
		})

		t.Run("Network Failure", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			url := server.URL
			server.Close()

			err := NewAuthClient(NewAPIService(url, nil)).Register(context.Background(), validCredentials())
			if !errors.Is(err, shared.ErrNetwork) {
				t.Errorf("expected ErrNetwork, got %v", err)
			}
		})
	})

	t.Run("Login", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			api := tu.NewAPIServer(t)
			client := NewAuthClient(NewAPIService(api.BaseURL(), nil))
			if err := client.Register(context.Background(), validCredentials()); err != nil {
				t.Fatalf("register failed: %v", err)
			}

			result, err := client.Login(context.Background(), "asha@example.com", "Passw0rd!")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result.AccessToken != "access-asha@example.com" || result.RefreshToken != "refresh-asha@example.com" {
				t.Errorf("unexpected tokens %+v", result.Tokens)
			}
			if result.User.Name != "Asha" || result.User.Role != models.RoleUser {
				t.Errorf("unexpected user %+v", result.User)
			}
		})

		t.Run("Invalid Credentials", func(t *testing.T) {
			api := tu.NewAPIServer(t)
			client := NewAuthClient(NewAPIService(api.BaseURL(), nil))

			_, err := client.Login(context.Background(), "nobody@example.com", "whatever1!")
			if !errors.Is(err, shared.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
			if got := Describe(err); got != "Invalid Credentials. Please try again" {
				t.Errorf("unexpected notification %q", got)
			}
		})

		t.Run("Other Status", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tu.Envelope(w, http.StatusInternalServerError, nil, "boom")
			}))
			defer server.Close()

			_, err := NewAuthClient(NewAPIService(server.URL, nil)).Login(context.Background(), "a@b.co", "x")
			if !errors.Is(err, shared.ErrLoginFailed) {
				t.Fatalf("expected ErrLoginFailed, got %v", err)
			}
			if got := Describe(err); got != "Error logging into account" {
				t.Errorf("unexpected notification %q", got)
			}
		})

		t.Run("Missing Token", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tu.Envelope(w, http.StatusOK, map[string]string{"accessToken": "only"}, "")
			}))
			defer server.Close()

			_, err := NewAuthClient(NewAPIService(server.URL, nil)).Login(context.Background(), "a@b.co", "x")
			if !errors.Is(err, shared.ErrLoginFailed) {
				t.Errorf("expected ErrLoginFailed, got %v", err)
			}
			if !errors.Is(err, shared.ErrInvalidSessionToken) {
				t.Errorf("expected wrapped ErrInvalidSessionToken, got %v", err)
			}
		})

		t.Run("Sends Email And Password", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var body map[string]string
				json.NewDecoder(r.Body).Decode(&body)
				if body["email"] != "a@b.co" || body["password"] != "pw" {
					t.Errorf("unexpected body %v", body)
				}
				tu.Envelope(w, http.StatusUnauthorized, nil, "")
			}))
			defer server.Close()

			NewAuthClient(NewAPIService(server.URL, nil)).Login(context.Background(), "a@b.co", "pw")
		})
	})
}

func TestSignIn(t *testing.T) {
	t.Run("Populates Store On Success", func(t *testing.T) {
		api := tu.NewAPIServer(t)
		client := NewAuthClient(NewAPIService(api.BaseURL(), nil))
		if err := client.Register(context.Background(), validCredentials()); err != nil {
			t.Fatalf("register failed: %v", err)
		}

		store := session.NewStore(session.NewMemoryStorage())
		if _, err := SignIn(context.Background(), client, store, "asha@example.com", "Passw0rd!"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		sess, ok := store.Session()
		if !ok {
			t.Fatal("expected session to be stored")
		}
		if sess.AccessToken != "access-asha@example.com" || sess.User.Email != "asha@example.com" {
			t.Errorf("unexpected session %+v", sess)
		}
	})

	t.Run("Leaves Store Untouched On Failure", func(t *testing.T) {
		api := tu.NewAPIServer(t)
		client := NewAuthClient(NewAPIService(api.BaseURL(), nil))

		store := session.NewStore(session.NewMemoryStorage())
		previous := models.Tokens{AccessToken: "old-a", RefreshToken: "old-r"}
		if err := store.SetSession(previous, models.User{Email: "old@example.com"}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		_, err := SignIn(context.Background(), client, store, "asha@example.com", "wrong")
		if !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}

		sess, ok := store.Session()
		if !ok || sess.Tokens != previous {
			t.Errorf("expected previous session to remain, got %+v", sess)
		}
	})
}
