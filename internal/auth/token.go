package auth

import (
	"crypto/hmac"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"portfolio/internal/model"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 7 * 24 * time.Hour

// ErrEmptySecret is returned when the codec is built without a signing secret.
var ErrEmptySecret = errors.New("token signing secret is empty")

// Reason classifies why a token was rejected.
type Reason string

const (
	ReasonBadSignature Reason = "bad_signature"
	ReasonExpired      Reason = "expired"
	ReasonMalformed    Reason = "malformed"
)

// RejectedError is returned by Decode for any token that must not be trusted.
type RejectedError struct {
	Reason Reason
	Err    error
}

func (e *RejectedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token rejected (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("token rejected (%s)", e.Reason)
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

// Claims is the identity carried inside a token.
type Claims struct {
	UserID   string     `json:"userId"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256 tokens with a single shared secret.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// Option configures a TokenCodec.
type Option func(*TokenCodec)

// WithClock overrides the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *TokenCodec) {
		c.now = now
	}
}

// NewTokenCodec creates a codec. An empty secret is refused.
func NewTokenCodec(secret []byte, ttl time.Duration, opts ...Option) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	c := &TokenCodec{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    time.Now,
		// Expiry is checked against the injected clock below.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue signs the given identity with exp = now + ttl.
func (c *TokenCodec) Issue(claims Claims) (string, error) {
	now := c.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of token and returns its claims.
// Every failure is a *RejectedError. The signature is checked over the raw
// segments before anything is parsed, so any changed byte is BadSignature.
func (c *TokenCodec) Decode(token string) (*Claims, error) {
	if err := c.verify(token); err != nil {
		return nil, err
	}

	claims := &Claims{}
	_, err := c.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}

	if claims.ExpiresAt == nil {
		return nil, &RejectedError{Reason: ReasonMalformed, Err: errors.New("missing exp claim")}
	}
	if !c.now().Before(claims.ExpiresAt.Time) {
		return nil, &RejectedError{Reason: ReasonExpired}
	}
	if claims.UserID == "" {
		return nil, &RejectedError{Reason: ReasonMalformed, Err: errors.New("missing userId claim")}
	}
	return claims, nil
}

// verify recomputes the HS256 signature of the first two segments and
// compares it to the third as encoded text. jwt's own decoder ignores the
// trailing bits of the last base64 character, so several strings would
// otherwise pass for one signature.
func (c *TokenCodec) verify(token string) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return &RejectedError{Reason: ReasonMalformed, Err: jwt.ErrTokenMalformed}
	}

	expected, err := jwt.SigningMethodHS256.Sign(parts[0]+"."+parts[1], c.secret)
	if err != nil {
		return &RejectedError{Reason: ReasonBadSignature, Err: err}
	}
	if !hmac.Equal([]byte(parts[2]), []byte(expected)) {
		return &RejectedError{Reason: ReasonBadSignature, Err: jwt.ErrSignatureInvalid}
	}
	return nil
}

func classify(err error) error {
	var vErr *jwt.ValidationError
	if errors.As(err, &vErr) {
		switch {
		case vErr.Errors&jwt.ValidationErrorMalformed != 0:
			return &RejectedError{Reason: ReasonMalformed, Err: err}
		case vErr.Errors&(jwt.ValidationErrorSignatureInvalid|jwt.ValidationErrorUnverifiable) != 0:
			return &RejectedError{Reason: ReasonBadSignature, Err: err}
		}
	}
	return &RejectedError{Reason: ReasonMalformed, Err: err}
}
