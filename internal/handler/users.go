package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stylemate/marketplace-api/internal/model"
	"github.com/stylemate/marketplace-api/internal/service"
)

// UserHandler serves /users and the public /partners directory.
type UserHandler struct {
	Users  *service.UserService
	Paging Paging
}

func NewUserHandler(users *service.UserService, p Paging) *UserHandler {
	return &UserHandler{Users: users, Paging: p}
}

// Profile returns the caller's own account.
func (h *UserHandler) Profile(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	acc, err := h.Users.Get(ctx, actor(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User retrieved", "user": acc})
}

func (h *UserHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	acc, err := h.Users.Get(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User retrieved", "user": acc})
}

func (h *UserHandler) List(c echo.Context) error {
	f := model.AccountFilter{Email: c.QueryParam("email"), Role: model.Role(c.QueryParam("role"))}
	ctx, cancel := reqCtx(c)
	defer cancel()
	page, err := h.Users.List(ctx, actor(c), f, listQuery(c, h.Paging))
	if err != nil {
		return err
	}
	return paged(c, "Users retrieved", page)
}

func (h *UserHandler) Create(c echo.Context) error {
	var req service.RegisterInput
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	acc, err := h.Users.Create(ctx, actor(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "User created", "user": acc})
}

func (h *UserHandler) Update(c echo.Context) error {
	var req service.UserPatch
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	acc, err := h.Users.Update(ctx, actor(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User updated", "user": acc})
}

func (h *UserHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Users.Delete(ctx, actor(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted"})
}

// Partners is the public directory of approved partner accounts.
func (h *UserHandler) Partners(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	partners, err := h.Users.ApprovedPartners(ctx)
	if err != nil {
		return err
	}
	if partners == nil {
		partners = []model.Account{}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Partners retrieved", "count": len(partners), "partners": partners})
}
