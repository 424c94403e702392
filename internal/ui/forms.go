package ui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/spotlite/internal/models"
	"github.com/desertthunder/spotlite/internal/validation"
)

// formTheme matches the huh forms to [styles].
func formTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = styles.title
	t.Group.Description = styles.help

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.title.GetForeground())
	t.Focused.Title = styles.title.MarginBottom(0)
	t.Focused.Description = styles.help
	t.Focused.ErrorIndicator = styles.err.SetString(" *")
	t.Focused.ErrorMessage = styles.err.Bold(false)
	t.Focused.SelectSelector = styles.ok.SetString("> ")
	t.Focused.SelectedOption = styles.ok

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = styles.filter
	t.Blurred.SelectSelector = lipgloss.NewStyle().SetString("  ")

	return t
}

// SignupForm edits creds in place.
//
// Fields validate while they are edited, so hints show next to the field and
// the form cannot be submitted until every rule passes.
func SignupForm(creds *models.Credentials) *huh.Form {
	if creds.Role == "" {
		creds.Role = models.RoleUser
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&creds.Name).
				Validate(validation.ValidateName),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&creds.Email).
				Validate(validation.ValidateEmail),
			huh.NewInput().
				Title("Contact").
				Description("10 digit phone number").
				CharLimit(10).
				Value(&creds.Contact).
				Validate(validation.ValidateContact),
			huh.NewInput().
				Title("Password").
				Description("8+ characters with an uppercase letter, a number and a special character").
				EchoMode(huh.EchoModePassword).
				Value(&creds.Password).
				Validate(validation.ValidatePassword),
			huh.NewSelect[models.Role]().
				Title("Account type").
				Options(
					huh.NewOption("User", models.RoleUser),
					huh.NewOption("Event Organizer", models.RoleEventOrganizer),
				).
				Value(&creds.Role),
		).Title("Sign up"),
	).WithTheme(formTheme())
}

// LoginForm edits email and password in place.
func LoginForm(email, password *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(email).
				Validate(validation.ValidateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(password),
		).Title("Log in"),
	).WithTheme(formTheme())
}
