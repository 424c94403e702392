package session

import (
	"fmt"
	"time"

	"github.com/desertthunder/spotlite/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what can be read from a JWT access token without its signing key.
type TokenInfo struct {
	Subject   string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry before now.
//
// Informational only; the API decides whether a token is still accepted.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// InspectToken decodes the registered claims of a JWT without verifying its signature.
//
// Tokens are opaque to the client, so a non-JWT token yields [shared.ErrInvalidSessionToken].
func InspectToken(token string) (TokenInfo, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}, fmt.Errorf("%w: %v", shared.ErrInvalidSessionToken, err)
	}

	info := TokenInfo{Subject: claims.Subject, Issuer: claims.Issuer}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
