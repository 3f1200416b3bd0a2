package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stylemate/marketplace-api/internal/model"
	"github.com/stylemate/marketplace-api/internal/service"
)

// ProfileHandler serves /partner and /styler.
type ProfileHandler struct {
	Partners *service.PartnerService
	Stylers  *service.StylerService
	Paging   Paging
}

func NewProfileHandler(partners *service.PartnerService, stylers *service.StylerService, p Paging) *ProfileHandler {
	return &ProfileHandler{Partners: partners, Stylers: stylers, Paging: p}
}

func (h *ProfileHandler) ListPartners(c echo.Context) error {
	f := model.PartnerFilter{OwnerID: c.QueryParam("ownerId"), Name: c.QueryParam("name")}
	ctx, cancel := reqCtx(c)
	defer cancel()
	page, err := h.Partners.List(ctx, actor(c), f, listQuery(c, h.Paging))
	if err != nil {
		return err
	}
	return paged(c, "Partners retrieved", page)
}

func (h *ProfileHandler) GetPartner(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	p, err := h.Partners.Get(ctx, actor(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Partner retrieved", "partner": p})
}

func (h *ProfileHandler) CreatePartner(c echo.Context) error {
	var req service.PartnerInput
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	p, err := h.Partners.Create(ctx, actor(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Partner created", "partner": p})
}

func (h *ProfileHandler) UpdatePartner(c echo.Context) error {
	var req service.PartnerPatch
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	p, err := h.Partners.Update(ctx, actor(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Partner updated", "partner": p})
}

func (h *ProfileHandler) DeletePartner(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Partners.Delete(ctx, actor(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Partner deleted"})
}

func (h *ProfileHandler) ListStylers(c echo.Context) error {
	f := model.StylerFilter{
		Name:    c.QueryParam("name"),
		Country: c.QueryParam("country"),
		Gender:  model.Gender(c.QueryParam("gender")),
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	page, err := h.Stylers.List(ctx, actor(c), f, listQuery(c, h.Paging))
	if err != nil {
		return err
	}
	return paged(c, "Stylers retrieved", page)
}

func (h *ProfileHandler) GetStyler(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	p, err := h.Stylers.Get(ctx, actor(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Styler retrieved", "styler": p})
}

func (h *ProfileHandler) CreateStyler(c echo.Context) error {
	var req service.StylerInput
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	p, err := h.Stylers.Create(ctx, actor(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Styler created", "styler": p})
}

func (h *ProfileHandler) UpdateStyler(c echo.Context) error {
	var req service.StylerPatch
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	p, err := h.Stylers.Update(ctx, actor(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Styler updated", "styler": p})
}

func (h *ProfileHandler) DeleteStyler(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Stylers.Delete(ctx, actor(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Styler deleted"})
}
