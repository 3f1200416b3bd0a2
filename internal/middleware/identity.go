package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/stylemate/marketplace-api/internal/access"
)

// userID is the authenticated account id, or "anon".
func userID(c echo.Context) string {
	if p, ok := access.PrincipalFrom(c.Request().Context()); ok && p.ID != "" {
		return p.ID
	}
	return "anon"
}
