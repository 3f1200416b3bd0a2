// Package middleware holds the echo middleware shared by all route groups.
package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stylemate/marketplace-api/internal/access"
	"github.com/stylemate/marketplace-api/internal/errs"
)

// PrincipalResolver turns a raw bearer token into the authenticated caller.
type PrincipalResolver interface {
	Resolve(ctx context.Context, raw string) (access.Principal, error)
}

// BearerToken returns the token from "Authorization: Bearer <token>" or "".
func BearerToken(c echo.Context) string {
	auth := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
	if len(auth) < 7 || !strings.EqualFold(auth[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(auth[7:])
}

// Authenticate resolves the bearer token and binds the principal and the raw
// token to the request context. Any failure aborts the request.
func Authenticate(r PrincipalResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := BearerToken(c)
			if raw == "" {
				return errs.Unauthorized("no authorization token provided")
			}
			p, err := r.Resolve(c.Request().Context(), raw)
			if err != nil {
				return err
			}
			bind(c, p, raw)
			return next(c)
		}
	}
}

// OptionalAuth binds a principal when a bearer token is sent and lets
// anonymous requests through. A token that is sent must still be valid.
func OptionalAuth(r PrincipalResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := BearerToken(c)
			if raw == "" {
				return next(c)
			}
			p, err := r.Resolve(c.Request().Context(), raw)
			if err != nil {
				return err
			}
			bind(c, p, raw)
			return next(c)
		}
	}
}

func bind(c echo.Context, p access.Principal, raw string) {
	ctx := access.WithToken(access.WithPrincipal(c.Request().Context(), p), raw)
	c.SetRequest(c.Request().WithContext(ctx))
}
