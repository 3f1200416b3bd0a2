package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stylemate/marketplace-api/internal/model"
	"github.com/stylemate/marketplace-api/internal/service"
)

// ClothHandler serves one cloth collection: /partnerclothes or
// /stylerclothes.
type ClothHandler struct {
	Clothes *service.ClothService
	Paging  Paging
}

func NewClothHandler(clothes *service.ClothService, p Paging) *ClothHandler {
	return &ClothHandler{Clothes: clothes, Paging: p}
}

func (h *ClothHandler) filter(c echo.Context) (model.ClothFilter, error) {
	f := model.ClothFilter{
		Search:     c.QueryParam("search"),
		Category:   c.QueryParam("category"),
		Color:      c.QueryParam("color"),
		OwnerID:    c.QueryParam("ownerId"),
		Visibility: model.Visibility(c.QueryParam("visibility")),
	}
	var err error
	if f.MinPrice, err = floatQuery(c, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = floatQuery(c, "maxPrice"); err != nil {
		return f, err
	}
	return f, nil
}

func (h *ClothHandler) Public(c echo.Context) error {
	f, err := h.filter(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	page, err := h.Clothes.ListPublic(ctx, f, listQuery(c, h.Paging))
	if err != nil {
		return err
	}
	return paged(c, "Clothes retrieved", page)
}

func (h *ClothHandler) Suggestions(c echo.Context) error {
	f, err := h.filter(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	page, err := h.Clothes.Suggestions(ctx, actor(c), f, listQuery(c, h.Paging))
	if err != nil {
		return err
	}
	return paged(c, "Suggestions retrieved", page)
}

func (h *ClothHandler) Mine(c echo.Context) error {
	f, err := h.filter(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	page, err := h.Clothes.ListMine(ctx, actor(c), f, listQuery(c, h.Paging))
	if err != nil {
		return err
	}
	return paged(c, "Clothes retrieved", page)
}

// List is the owner-scoped listing. Admins may pass ownerId; everyone else
// sees their own items.
func (h *ClothHandler) List(c echo.Context) error {
	f, err := h.filter(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	page, err := h.Clothes.List(ctx, actor(c), f, listQuery(c, h.Paging))
	if err != nil {
		return err
	}
	return paged(c, "Clothes retrieved", page)
}

func (h *ClothHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	cloth, err := h.Clothes.Get(ctx, optionalActor(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Cloth retrieved", "cloth": cloth})
}

func (h *ClothHandler) Create(c echo.Context) error {
	var req service.ClothInput
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	cloth, err := h.Clothes.Create(ctx, actor(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Cloth created", "cloth": cloth})
}

func (h *ClothHandler) Update(c echo.Context) error {
	var req service.ClothPatch
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	cloth, err := h.Clothes.Update(ctx, actor(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Cloth updated", "cloth": cloth})
}

func (h *ClothHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Clothes.Delete(ctx, actor(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Cloth deleted"})
}
