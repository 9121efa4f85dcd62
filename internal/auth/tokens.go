// Package auth issues and verifies the HS256 bearer tokens that identify callers.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/thenoetrevino/kanban/internal/models"
)

// DefaultTTL is how long issued tokens stay valid
const DefaultTTL = 30 * 24 * time.Hour

// clockSkew is tolerated on exp, nbf and iat
const clockSkew = time.Minute

// Tokens signs and verifies caller tokens with a shared secret.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser

	now func() time.Time
}

// NewTokens creates a token manager. A non-positive ttl falls back to DefaultTTL.
func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		// Time claims are checked in Verify against the injectable clock.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
		now:    time.Now,
	}, nil
}

// Issue returns a signed token whose subject is userID.
func (t *Tokens) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("user id must not be empty")
	}
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and time claims and returns the subject.
// Every failure wraps models.ErrUnauthenticated.
func (t *Tokens) Verify(token string) (string, error) {
	parsed, err := t.parser.Parse(token, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrUnauthenticated, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("%w: invalid claims", models.ErrUnauthenticated)
	}

	now := t.now()
	if !claims.VerifyExpiresAt(now.Add(-clockSkew).Unix(), true) {
		return "", fmt.Errorf("%w: token expired", models.ErrUnauthenticated)
	}
	if !claims.VerifyNotBefore(now.Add(clockSkew).Unix(), false) {
		return "", fmt.Errorf("%w: token not valid yet", models.ErrUnauthenticated)
	}
	if !claims.VerifyIssuedAt(now.Add(clockSkew).Unix(), false) {
		return "", fmt.Errorf("%w: token used before issued", models.ErrUnauthenticated)
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("%w: missing sub", models.ErrUnauthenticated)
	}
	return sub, nil
}
