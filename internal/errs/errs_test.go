package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", Validation("email: cannot be blank."), http.StatusBadRequest},
		{"invalid id", fmt.Errorf("get cloth: %w", ErrInvalidID), http.StatusBadRequest},
		{"bad request", BadRequest("user is already approved"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("invalid email or password"), http.StatusUnauthorized},
		{"revoked", ErrTokenRevoked, http.StatusUnauthorized},
		{"expired wrapped", fmt.Errorf("verify: %w", ErrTokenExpired), http.StatusUnauthorized},
		{"forbidden", Forbidden("access denied"), http.StatusForbidden},
		{"not found", NotFound("user not found"), http.StatusNotFound},
		{"conflict", AlreadyExists("email"), http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "email already exists", Message(fmt.Errorf("create: %w", AlreadyExists("email"))))
	assert.Equal(t, "token has been revoked", Message(fmt.Errorf("resolve: %w", ErrTokenRevoked)))
	assert.Equal(t, "invalid id format", Message(fmt.Errorf("parse: %w", ErrInvalidID)))
	assert.Equal(t, "internal server error", Message(errors.New("dial tcp: connection refused")))
	assert.True(t, errors.Is(Forbidden("x"), ErrForbidden))
}
