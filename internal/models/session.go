package models

// Tokens is the opaque bearer credential pair issued on login.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Complete reports whether both tokens are present.
func (t Tokens) Complete() bool {
	return t.AccessToken != "" && t.RefreshToken != ""
}

// Session is an authenticated login: tokens plus the user they belong to.
type Session struct {
	Tokens
	User User `json:"user"`
}
