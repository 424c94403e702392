package ui

import (
	"strings"
	"testing"

	"github.com/desertthunder/spotlite/internal/models"
)

func TestForms(t *testing.T) {
	t.Run("SignupForm defaults role to User", func(t *testing.T) {
		creds := models.Credentials{Name: "Asha"}
		if form := SignupForm(&creds); form == nil {
			t.Fatal("expected a form")
		}
		if creds.Role != models.RoleUser {
			t.Errorf("expected User role, got %q", creds.Role)
		}
	})

	t.Run("SignupForm keeps a chosen role", func(t *testing.T) {
		creds := models.Credentials{Role: models.RoleEventOrganizer}
		SignupForm(&creds)
		if creds.Role != models.RoleEventOrganizer {
			t.Errorf("expected organizer role to be kept, got %q", creds.Role)
		}
	})

	t.Run("LoginForm renders both fields", func(t *testing.T) {
		email, password := "asha@example.com", ""
		form := LoginForm(&email, &password)
		form.Init()

		view := form.View()
		for _, want := range []string{"Email", "Password"} {
			if !strings.Contains(view, want) {
				t.Errorf("expected %q in form view", want)
			}
		}
	})
}
