package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/stylemate/marketplace-api/internal/access"
	"github.com/stylemate/marketplace-api/internal/errs"
	"github.com/stylemate/marketplace-api/internal/model"
)

// RequireRole rejects callers whose role is not in roles. It must run after
// Authenticate.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := access.PrincipalFrom(c.Request().Context())
			if !ok {
				return errs.Unauthorized("no authorization token provided")
			}
			if err := access.RequireRole(p, roles...); err != nil {
				return err
			}
			return next(c)
		}
	}
}
