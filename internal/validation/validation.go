// Package validation implements the registration form rules.
//
// Every rule is a pure, total function over the raw form strings: empty input
// is simply invalid and nothing panics. Failures are reported as hints for the
// form, never sent to the API.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/desertthunder/spotlite/internal/models"
	"github.com/desertthunder/spotlite/internal/shared"
)

// MinPasswordLength is the shortest accepted password, counted in characters.
const MinPasswordLength = 8

// SpecialChars is the punctuation set that satisfies the special character rule.
const SpecialChars = `!@#$%^&*(),.?":{}|<>`

// Hints shown next to invalid fields.
const (
	HintName    = "Name is required"
	HintEmail   = "Invalid email"
	HintContact = "Contact must be 10 digits"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*@[a-zA-Z0-9-]+\.[a-zA-Z]{2,}$`)
	contactRegex = regexp.MustCompile(`^[0-9]{10}$`)
)

// IsValidEmail reports whether s has the shape localpart@domain.tld.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsValidContact reports whether s is exactly ten ASCII digits.
func IsValidContact(s string) bool {
	return contactRegex.MatchString(s)
}

// PasswordStrength holds the four independent password conditions.
type PasswordStrength struct {
	HasUpperCase   bool `json:"hasUpperCase"`
	HasMinLength   bool `json:"hasMinLength"`
	HasNumber      bool `json:"hasNumber"`
	HasSpecialChar bool `json:"hasSpecialChar"`
}

// ComputePasswordStrength derives a [PasswordStrength] from the current password.
func ComputePasswordStrength(s string) PasswordStrength {
	return PasswordStrength{
		HasUpperCase:   strings.ContainsFunc(s, func(r rune) bool { return r >= 'A' && r <= 'Z' }),
		HasMinLength:   utf8.RuneCountInString(s) >= MinPasswordLength,
		HasNumber:      strings.ContainsFunc(s, func(r rune) bool { return r >= '0' && r <= '9' }),
		HasSpecialChar: strings.ContainsAny(s, SpecialChars),
	}
}

// Valid reports whether all four conditions hold.
func (p PasswordStrength) Valid() bool {
	return p.HasUpperCase && p.HasMinLength && p.HasNumber && p.HasSpecialChar
}

// Condition pairs a password rule with its hint text.
type Condition struct {
	Hint string
	Met  bool
}

// Conditions lists the rules in display order.
func (p PasswordStrength) Conditions() []Condition {
	return []Condition{
		{Hint: "At least one uppercase letter", Met: p.HasUpperCase},
		{Hint: fmt.Sprintf("Minimum %d characters", MinPasswordLength), Met: p.HasMinLength},
		{Hint: "At least one number", Met: p.HasNumber},
		{Hint: "At least one special character", Met: p.HasSpecialChar},
	}
}

// Report collects the inline hints for a registration form.
type Report struct {
	Name     string
	Email    string
	Contact  string
	Password []string
}

// Valid reports whether the form may be submitted.
func (r Report) Valid() bool {
	return r.Name == "" && r.Email == "" && r.Contact == "" && len(r.Password) == 0
}

// Hints returns every hint in form order.
func (r Report) Hints() []string {
	var hints []string
	for _, h := range []string{r.Name, r.Email, r.Contact} {
		if h != "" {
			hints = append(hints, h)
		}
	}
	return append(hints, r.Password...)
}

// Err returns nil for a valid report, or an error wrapping [shared.ErrValidation].
func (r Report) Err() error {
	if r.Valid() {
		return nil
	}
	return fmt.Errorf("%w: %s", shared.ErrValidation, strings.Join(r.Hints(), "; "))
}

// CheckRegistration applies every registration rule to c.
func CheckRegistration(c models.Credentials) Report {
	var r Report
	if strings.TrimSpace(c.Name) == "" {
		r.Name = HintName
	}
	if !IsValidEmail(c.Email) {
		r.Email = HintEmail
	}
	if !IsValidContact(c.Contact) {
		r.Contact = HintContact
	}
	r.Password = PasswordHints(c.Password)
	return r
}

// PasswordHints returns the hint of every unmet password condition.
func PasswordHints(s string) []string {
	var hints []string
	for _, cond := range ComputePasswordStrength(s).Conditions() {
		if !cond.Met {
			hints = append(hints, cond.Hint)
		}
	}
	return hints
}

// ValidateName returns the name hint as an error, for field-level validation.
func ValidateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New(HintName)
	}
	return nil
}

func ValidateEmail(s string) error {
	if !IsValidEmail(s) {
		return errors.New(HintEmail)
	}
	return nil
}

func ValidateContact(s string) error {
	if !IsValidContact(s) {
		return errors.New(HintContact)
	}
	return nil
}

// ValidatePassword joins every unmet condition into one error.
func ValidatePassword(s string) error {
	if hints := PasswordHints(s); len(hints) > 0 {
		return errors.New(strings.Join(hints, ", "))
	}
	return nil
}
