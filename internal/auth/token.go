// Package auth issues and verifies admin bearer tokens and hashes admin passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	// ErrEmptySecret is returned when a token issuer is built without a signing secret.
	ErrEmptySecret = errors.New("token signing secret is empty")
	// ErrInvalidToken is returned for tokens that are malformed, forged, expired or carry a bad subject.
	ErrInvalidToken = errors.New("invalid token")
)

// Tokens signs and verifies HS256 bearer tokens whose subject is the admin id.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens creates a token issuer. ttl is the lifetime of issued tokens.
func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock returns a copy of the issuer that reads time from now.
func (t *Tokens) WithClock(now func() time.Time) *Tokens {
	clone := *t
	clone.now = now
	return &clone
}

// Issue returns a signed token for the admin.
func (t *Tokens) Issue(adminID uuid.UUID) (string, error) {
	issuedAt := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   adminID.String(),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(t.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the token and returns the admin id it was issued for.
func (t *Tokens) Parse(token string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	// Claims are checked here so that exp follows the issuer clock.
	if claims.ExpiresAt == nil || !t.now().Before(claims.ExpiresAt.Time) {
		return uuid.Nil, fmt.Errorf("%w: token is expired", ErrInvalidToken)
	}

	adminID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject: %w", ErrInvalidToken, err)
	}
	return adminID, nil
}
