// Package errs contains the error taxonomy shared by repositories, services
// and HTTP handlers.
package errs

import (
	"errors"
	"net/http"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("resource conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrInvalidID    = errors.New("invalid id format")
	ErrBadRequest   = errors.New("bad request")
	ErrInternal     = errors.New("internal server error")

	// Token-level failures. All of them are Unauthorized at the HTTP edge.
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token has been revoked")
)

// Error pairs a taxonomy sentinel with the message shown to the client.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }

func New(kind error, msg string) error { return &Error{Kind: kind, Msg: msg} }

func Validation(msg string) error   { return New(ErrValidation, msg) }
func Conflict(msg string) error     { return New(ErrConflict, msg) }
func Unauthorized(msg string) error { return New(ErrUnauthorized, msg) }
func Forbidden(msg string) error    { return New(ErrForbidden, msg) }
func NotFound(msg string) error     { return New(ErrNotFound, msg) }
func BadRequest(msg string) error   { return New(ErrBadRequest, msg) }

// AlreadyExists builds the Conflict reported for a uniqueness violation on field.
func AlreadyExists(field string) error { return Conflict(field + " already exists") }

// HTTPStatus maps an error from any layer to a response status.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrBadRequest), errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenInvalid), errors.Is(err, ErrTokenRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing text for err. Anything outside the
// taxonomy collapses to the generic internal message.
func Message(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return ErrInternal.Error()
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	for _, s := range []error{ErrTokenRevoked, ErrTokenExpired, ErrTokenInvalid, ErrInvalidID} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return err.Error()
}
