package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stylemate/marketplace-api/internal/access"
	"github.com/stylemate/marketplace-api/internal/errs"
	"github.com/stylemate/marketplace-api/internal/service"
)

// AuthHandler serves /auth and /admin.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	if auth == nil {
		panic("nil auth service passed to NewAuthHandler")
	}
	return &AuthHandler{Auth: auth}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req service.RegisterInput
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.Auth.Register(ctx, req)
	if err != nil {
		return err
	}
	body := echo.Map{"message": res.Message, "user": res.Account}
	if res.Token != nil {
		body["token"] = res.Token.Token
		body["expiresAt"] = res.Token.ExpiresAt
	}
	return c.JSON(http.StatusCreated, body)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":   "Login successful",
		"token":     res.Token.Token,
		"expiresAt": res.Token.ExpiresAt,
		"user":      res.Account,
	})
}

// Logout revokes the exact token the request was authenticated with.
func (h *AuthHandler) Logout(c echo.Context) error {
	raw, ok := access.TokenFrom(c.Request().Context())
	if !ok {
		return errs.BadRequest("no authorization token provided")
	}
	if err := h.Auth.Logout(c.Request().Context(), raw); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

func (h *AuthHandler) Profile(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	acc, err := h.Auth.Profile(ctx, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Profile retrieved", "user": acc})
}

func (h *AuthHandler) Pending(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	users, err := h.Auth.ListPending(ctx, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Pending users retrieved", "count": len(users), "users": users})
}

func (h *AuthHandler) Approve(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	acc, err := h.Auth.Approve(ctx, actor(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User approved successfully", "user": acc})
}
