package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"task-manager/internal/auth"
)

const (
	ctxPrincipal = "principal"
	ctxClaims    = "claims"
)

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

// requireBearer rejects requests without a valid bearer token and stores
// the token subject as the request principal.
func requireBearer(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, raw, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return c.NoContent(http.StatusUnauthorized)
			}
			claims, err := verifier.Verify(strings.TrimSpace(raw))
			if err != nil {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer error="invalid_token"`)
				return c.NoContent(http.StatusUnauthorized)
			}
			c.Set(ctxClaims, claims)
			c.Set(ctxPrincipal, claims.Subject)
			return next(c)
		}
	}
}

// requireRole rejects principals that lack the role.
func requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ctxClaims).(*auth.Claims)
			if !ok {
				return c.NoContent(http.StatusUnauthorized)
			}
			if !claims.HasRole(role) {
				return c.NoContent(http.StatusForbidden)
			}
			return next(c)
		}
	}
}

func principal(c echo.Context) string {
	name, _ := c.Get(ctxPrincipal).(string)
	return name
}
