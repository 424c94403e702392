package models

import (
	"fmt"
	"strings"
)

// Role is the account type chosen at registration.
type Role string

const (
	RoleUser           Role = "User"
	RoleEventOrganizer Role = "Event Organizer"
)

// ParseRole accepts the wire values as well as the shorthand "organizer", case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "user":
		return RoleUser, nil
	case "event organizer", "organizer", "event-organizer":
		return RoleEventOrganizer, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Credentials holds registration or login form values.
type Credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// User is the profile returned by the login endpoint.
type User struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Role    Role   `json:"role"`
}
