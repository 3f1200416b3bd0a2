package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/stylemate/marketplace-api/internal/access"
	"github.com/stylemate/marketplace-api/internal/config"
	"github.com/stylemate/marketplace-api/internal/errs"
	"github.com/stylemate/marketplace-api/internal/model"
)

type stubResolver struct {
	byToken map[string]access.Principal
}

func (s stubResolver) Resolve(_ context.Context, raw string) (access.Principal, error) {
	if p, ok := s.byToken[raw]; ok {
		return p, nil
	}
	return access.Principal{}, errs.ErrTokenInvalid
}

var styler = access.Principal{ID: "u-1", Email: "ann@example.com", Role: model.RoleStyler, Approved: true}

func newCtx(method, target, token string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func echoPrincipal(c echo.Context) error {
	p, ok := access.PrincipalFrom(c.Request().Context())
	if !ok {
		return c.String(http.StatusOK, "anonymous")
	}
	return c.String(http.StatusOK, p.ID)
}

func TestBearerToken(t *testing.T) {
	for header, want := range map[string]string{
		"Bearer abc":  "abc",
		"bearer  abc": "abc",
		"Basic abc":   "",
		"Bearer":      "",
		"":            "",
	} {
		c, _ := newCtx(http.MethodGet, "/", "")
		c.Request().Header.Set(echo.HeaderAuthorization, header)
		assert.Equal(t, want, BearerToken(c), header)
	}
}

func TestAuthenticate(t *testing.T) {
	mw := Authenticate(stubResolver{byToken: map[string]access.Principal{"good": styler}})

	c, rec := newCtx(http.MethodGet, "/", "good")
	require.NoError(t, mw(func(c echo.Context) error {
		raw, ok := access.TokenFrom(c.Request().Context())
		require.True(t, ok)
		assert.Equal(t, "good", raw)
		return echoPrincipal(c)
	})(c))
	assert.Equal(t, "u-1", rec.Body.String())

	c, _ = newCtx(http.MethodGet, "/", "")
	err := mw(echoPrincipal)(c)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Equal(t, "no authorization token provided", errs.Message(err))

	c, _ = newCtx(http.MethodGet, "/", "bad")
	assert.ErrorIs(t, mw(echoPrincipal)(c), errs.ErrTokenInvalid)
}

func TestOptionalAuth(t *testing.T) {
	mw := OptionalAuth(stubResolver{byToken: map[string]access.Principal{"good": styler}})

	c, rec := newCtx(http.MethodGet, "/", "")
	require.NoError(t, mw(echoPrincipal)(c))
	assert.Equal(t, "anonymous", rec.Body.String())

	c, rec = newCtx(http.MethodGet, "/", "good")
	require.NoError(t, mw(echoPrincipal)(c))
	assert.Equal(t, "u-1", rec.Body.String())

	c, _ = newCtx(http.MethodGet, "/", "bad")
	assert.Error(t, mw(echoPrincipal)(c))
}

func TestRequireRole(t *testing.T) {
	chain := Authenticate(stubResolver{byToken: map[string]access.Principal{"good": styler}})(
		RequireRole(model.RoleAdmin, model.RolePartner)(echoPrincipal))

	c, _ := newCtx(http.MethodGet, "/", "good")
	err := chain(c)
	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, "access denied. required role: admin or partner", errs.Message(err))

	chain = Authenticate(stubResolver{byToken: map[string]access.Principal{"good": styler}})(
		RequireRole(model.RoleStyler)(echoPrincipal))
	c, rec := newCtx(http.MethodGet, "/", "good")
	require.NoError(t, chain(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, _ = newCtx(http.MethodGet, "/", "")
	assert.ErrorIs(t, RequireRole(model.RoleStyler)(echoPrincipal)(c), errs.ErrUnauthorized)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	mw := RequestLogger(zap.New(core))

	c, rec := newCtx(http.MethodGet, "/things", "")
	c.Echo().HTTPErrorHandler = func(err error, c echo.Context) {
		_ = c.JSON(errs.HTTPStatus(err), echo.Map{"error": errs.Message(err)})
	}
	require.NoError(t, mw(func(echo.Context) error { return errs.NotFound("thing not found") })(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(http.StatusNotFound), fields["status"])
	assert.Equal(t, "anon", fields["user_id"])
}

func TestRecover(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	c, _ := newCtx(http.MethodGet, "/", "")

	err := Recover(zap.New(core))(func(echo.Context) error { panic("boom") })(c)
	require.ErrorIs(t, err, errs.ErrInternal)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

type mapStore struct {
	data map[string][]byte
	sets int
}

func (m *mapStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, errors.New("miss")
	}
	return v, nil
}

func (m *mapStore) Set(_ context.Context, key string, val []byte, _ time.Duration) error {
	m.sets++
	m.data[key] = val
	return nil
}

func TestCache_HitAfterMiss(t *testing.T) {
	store := &mapStore{data: map[string][]byte{}}
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{http.MethodGet: true}, Prefix: "cache", TTL: time.Minute}
	mw := newCache(cfg, store, zap.NewNop())
	calls := 0
	h := mw(func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"n": 1})
	})

	c, rec := newCtx(http.MethodGet, "/partnerclothes/public?page=1", "")
	require.NoError(t, h(c))
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	c, rec = newCtx(http.MethodGet, "/partnerclothes/public?page=1", "")
	require.NoError(t, h(c))
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())
	assert.Equal(t, 1, calls)

	c, _ = newCtx(http.MethodGet, "/partnerclothes/public?page=2", "")
	require.NoError(t, h(c))
	assert.Equal(t, 2, calls)

	c, rec = newCtx(http.MethodGet, "/partnerclothes/public?page=1", "tok")
	require.NoError(t, h(c))
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Equal(t, 3, calls)
}

func TestCache_SkipsErrorsAndLargeBodies(t *testing.T) {
	store := &mapStore{data: map[string][]byte{}}
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{http.MethodGet: true}, Prefix: "cache", MaxBodyBytes: 4}

	c, _ := newCtx(http.MethodGet, "/x", "")
	require.NoError(t, newCache(cfg, store, zap.NewNop())(func(c echo.Context) error {
		return c.String(http.StatusOK, "too long for the cache")
	})(c))

	c, _ = newCtx(http.MethodGet, "/y", "")
	require.NoError(t, newCache(cfg, store, zap.NewNop())(func(c echo.Context) error {
		return c.String(http.StatusNotFound, "no")
	})(c))

	assert.Zero(t, store.sets)
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{}`))
	require.NoError(t, err)

	status, got, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, `{}`, string(body))

	_, _, _, ok = decodePayload([]byte{0, 1})
	assert.False(t, ok)
}

func TestRateKey(t *testing.T) {
	c, _ := newCtx(http.MethodPost, "/auth/login", "")
	c.SetPath("/auth/login")
	c.Request().RemoteAddr = "10.0.0.7:5555"

	assert.Equal(t, "rl:ip:10.0.0.7", rateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip"}, c))
	assert.Equal(t, "rl:ip:10.0.0.7:user:anon:route:POST /auth/login",
		rateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_user_route"}, c))
}

func TestNewTokenBucket_DisabledPassesThrough(t *testing.T) {
	c, rec := newCtx(http.MethodPost, "/auth/login", "")
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil, zap.NewNop())
	require.NoError(t, mw(echoPrincipal)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}
