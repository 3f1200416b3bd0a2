package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stylemate/marketplace-api/internal/model"
	"github.com/stylemate/marketplace-api/internal/service"
)

type OccasionHandler struct {
	Occasions *service.OccasionService
	Paging    Paging
}

func NewOccasionHandler(occasions *service.OccasionService, p Paging) *OccasionHandler {
	return &OccasionHandler{Occasions: occasions, Paging: p}
}

func (h *OccasionHandler) List(c echo.Context) error {
	f := model.OccasionFilter{UserID: c.QueryParam("user"), Type: c.QueryParam("type")}
	ctx, cancel := reqCtx(c)
	defer cancel()
	page, err := h.Occasions.List(ctx, actor(c), f, listQuery(c, h.Paging))
	if err != nil {
		return err
	}
	return paged(c, "Occasions retrieved", page)
}

func (h *OccasionHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	o, err := h.Occasions.Get(ctx, actor(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Occasion retrieved", "occasion": o})
}

func (h *OccasionHandler) Create(c echo.Context) error {
	var req service.OccasionInput
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	o, err := h.Occasions.Create(ctx, actor(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Occasion created", "occasion": o})
}

func (h *OccasionHandler) Update(c echo.Context) error {
	var req service.OccasionPatch
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	o, err := h.Occasions.Update(ctx, actor(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Occasion updated", "occasion": o})
}

func (h *OccasionHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Occasions.Delete(ctx, actor(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Occasion deleted successfully"})
}
