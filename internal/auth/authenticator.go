package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "portfolio/internal/errors"
)

const (
	// CookieName is the cookie carrying the token set at login.
	CookieName = "authToken"
	// ContextKey is where the authenticated claims are stored on the echo context.
	ContextKey = "claims"
)

var (
	// ErrNoToken is returned when the request carries no token at all.
	ErrNoToken = fmt.Errorf("no auth token: %w", apperrors.ErrUnauthenticated)
	// ErrInvalidToken is returned for any token the codec rejects.
	ErrInvalidToken = fmt.Errorf("invalid auth token: %w", apperrors.ErrUnauthenticated)
)

// TokenDecoder verifies a raw token string.
type TokenDecoder interface {
	Decode(token string) (*Claims, error)
}

// Authenticator resolves the caller identity of an HTTP request.
type Authenticator struct {
	decoder TokenDecoder
}

// NewAuthenticator creates an authenticator backed by decoder.
func NewAuthenticator(decoder TokenDecoder) *Authenticator {
	return &Authenticator{decoder: decoder}
}

// Authenticate returns the claims of the request token. No store lookup is made.
func (a *Authenticator) Authenticate(r *http.Request) (*Claims, error) {
	raw := TokenFromRequest(r)
	if raw == "" {
		return nil, ErrNoToken
	}
	claims, err := a.decoder.Decode(raw)
	if err != nil {
		var rejected *RejectedError
		if errors.As(err, &rejected) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidToken, rejected.Reason)
		}
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TokenFromRequest reads the token from the auth cookie, falling back to a Bearer header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
