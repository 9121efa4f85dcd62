package auth

import (
	"fmt"
	"strings"

	"github.com/thenoetrevino/kanban/internal/models"
)

var (
	ErrMissingAuthorization = fmt.Errorf("%w: missing authorization header", models.ErrUnauthenticated)
	ErrBadAuthorization     = fmt.Errorf("%w: bad auth header", models.ErrUnauthenticated)
)

const bearerPrefix = "Bearer "

// BearerToken extracts the compact JWT from an Authorization header value.
func BearerToken(raw string) (string, error) {
	trimmed := strings.Trim(raw, " ")
	if trimmed == "" {
		return "", ErrMissingAuthorization
	}
	if len(trimmed) <= len(bearerPrefix) || !strings.HasPrefix(trimmed, bearerPrefix) {
		return "", ErrBadAuthorization
	}
	token := trimmed[len(bearerPrefix):]
	if strings.Count(token, ".") != 2 {
		return "", ErrBadAuthorization
	}
	return token, nil
}
