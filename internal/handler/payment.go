package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stylemate/marketplace-api/internal/model"
	"github.com/stylemate/marketplace-api/internal/service"
)

type PaymentHandler struct {
	Payments *service.PaymentService
	Paging   Paging
}

func NewPaymentHandler(payments *service.PaymentService, p Paging) *PaymentHandler {
	return &PaymentHandler{Payments: payments, Paging: p}
}

func (h *PaymentHandler) List(c echo.Context) error {
	f := model.PaymentFilter{UserID: c.QueryParam("user"), Status: model.PaymentStatus(c.QueryParam("status"))}
	ctx, cancel := reqCtx(c)
	defer cancel()
	page, err := h.Payments.List(ctx, actor(c), f, listQuery(c, h.Paging))
	if err != nil {
		return err
	}
	return paged(c, "Payments retrieved", page)
}

func (h *PaymentHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	p, err := h.Payments.Get(ctx, actor(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Payment retrieved", "payment": p})
}

func (h *PaymentHandler) Create(c echo.Context) error {
	var req service.PaymentInput
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	p, err := h.Payments.Create(ctx, actor(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Payment created", "payment": p})
}

func (h *PaymentHandler) Update(c echo.Context) error {
	var req service.PaymentPatch
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	p, err := h.Payments.Update(ctx, actor(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Payment updated", "payment": p})
}

func (h *PaymentHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Payments.Delete(ctx, actor(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Payment deleted successfully"})
}
