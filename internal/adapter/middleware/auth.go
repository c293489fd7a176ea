package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"familyledger/internal/domain/user"

	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// Resolver turns a session token into the caller it belongs to.
type Resolver interface {
	Resolve(ctx context.Context, token string) (user.Principal, error)
}

func SetPrincipal(c echo.Context, p user.Principal) { c.Set(principalKey, p) }

func PrincipalFrom(c echo.Context) (user.Principal, bool) {
	p, ok := c.Get(principalKey).(user.Principal)
	return p, ok
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header, or "".
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get(echo.HeaderAuthorization))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// RequireAuth rejects requests without a live session and stores the caller
// in the echo context for handlers and later middleware.
func RequireAuth(resolver Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := BearerToken(c.Request())
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			p, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, user.ErrUnauthenticated) {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired session"})
				}
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "session store unavailable"})
			}
			SetPrincipal(c, p)
			return next(c)
		}
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		}
		if !p.IsAdmin() {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "admin role required"})
		}
		return next(c)
	}
}
