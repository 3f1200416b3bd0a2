// Package handler exposes the HTTP handlers. Handlers bind and shape
// requests and responses; every decision is made by the service layer.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/stylemate/marketplace-api/internal/access"
	"github.com/stylemate/marketplace-api/internal/errs"
	"github.com/stylemate/marketplace-api/internal/model"
)

// requestTimeout bounds the storage work of a single request.
const requestTimeout = 5 * time.Second

// Paging holds the limits applied to list endpoints.
type Paging struct {
	Default int
	Max     int
}

// ErrorHandler renders every error as {"error": "..."} with the status the
// error taxonomy assigns. Internal failures are logged and hidden.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, msg := errs.HTTPStatus(err), errs.Message(err)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			msg = fmt.Sprint(he.Message)
			if he.Internal != nil && status >= http.StatusInternalServerError {
				err = he.Internal
			}
		}
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("route", c.Path()),
				zap.Error(err))
			msg = errs.ErrInternal.Error()
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, echo.Map{"error": msg})
		}
		if err != nil {
			log.Warn("write error response", zap.Error(err))
		}
	}
}

type pagedResponse[T any] struct {
	Message string `json:"message"`
	model.Paged[T]
}

func paged[T any](c echo.Context, msg string, p model.Paged[T]) error {
	return c.JSON(http.StatusOK, pagedResponse[T]{Message: msg, Paged: p})
}

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

func bind(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return errs.BadRequest("invalid request body")
	}
	return nil
}

// actor is the authenticated caller. Routes that reach a handler without
// one get the zero Principal, which no role or ownership check accepts.
func actor(c echo.Context) access.Principal {
	p, _ := access.PrincipalFrom(c.Request().Context())
	return p
}

// optionalActor is nil for anonymous requests.
func optionalActor(c echo.Context) *access.Principal {
	if p, ok := access.PrincipalFrom(c.Request().Context()); ok {
		return &p
	}
	return nil
}

func listQuery(c echo.Context, p Paging) model.ListQuery {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return model.NewListQuery(page, limit, p.Default, p.Max, model.ParseSort(c.QueryParam("sort")))
}

// floatQuery parses an optional numeric filter.
func floatQuery(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errs.Validation(name + ": must be a number")
	}
	return &v, nil
}
