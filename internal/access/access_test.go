package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylemate/marketplace-api/internal/errs"
	"github.com/stylemate/marketplace-api/internal/model"
	"github.com/stylemate/marketplace-api/internal/revocation"
	"github.com/stylemate/marketplace-api/internal/utils"
)

type fakeAccounts struct {
	byID map[string]model.Account
	err  error
}

var _ AccountLookup = (*fakeAccounts)(nil)

func (f *fakeAccounts) GetByID(_ context.Context, id string) (model.Account, error) {
	if f.err != nil {
		return model.Account{}, f.err
	}
	a, ok := f.byID[id]
	if !ok {
		return model.Account{}, errs.NotFound("user not found")
	}
	return a, nil
}

func setup(t *testing.T) (*Resolver, *utils.TokenCodec, *revocation.Registry, *fakeAccounts) {
	t.Helper()
	codec := utils.NewTokenCodec("secret", time.Hour)
	reg := revocation.New()
	accounts := &fakeAccounts{byID: map[string]model.Account{
		"ok":      {ID: "ok", Email: "ok@example.com", Role: model.RoleStyler, IsApproved: true},
		"pending": {ID: "pending", Email: "p@example.com", Role: model.RolePartner},
	}}
	return NewResolver(codec, reg, accounts), codec, reg, accounts
}

func TestResolver_StateMachine(t *testing.T) {
	t.Parallel()
	r, codec, reg, _ := setup(t)
	ctx := context.Background()

	issue := func(sub string) string {
		tok, err := codec.Issue(sub)
		require.NoError(t, err)
		return tok.Token
	}

	_, err := r.Resolve(ctx, "")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	_, err = r.Resolve(ctx, "garbage")
	assert.ErrorIs(t, err, errs.ErrTokenInvalid)

	revoked := issue("ok")
	reg.Blacklist(revoked, time.Now().Add(time.Hour))
	_, err = r.Resolve(ctx, revoked)
	assert.ErrorIs(t, err, errs.ErrTokenRevoked)

	_, err = r.Resolve(ctx, issue("ghost"))
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	_, err = r.Resolve(ctx, issue("pending"))
	assert.ErrorIs(t, err, errs.ErrForbidden)

	p, err := r.Resolve(ctx, issue("ok"))
	require.NoError(t, err)
	assert.Equal(t, Principal{ID: "ok", Email: "ok@example.com", Role: model.RoleStyler, Approved: true}, p)
}

func TestResolver_ExpiredToken(t *testing.T) {
	t.Parallel()
	_, _, reg, accounts := setup(t)
	past := time.Now().Add(-2 * time.Hour)
	old := utils.NewTokenCodec("secret", time.Hour, utils.WithTokenClock(func() time.Time { return past }))
	tok, err := old.Issue("ok")
	require.NoError(t, err)

	r := NewResolver(utils.NewTokenCodec("secret", time.Hour), reg, accounts)
	_, err = r.Resolve(context.Background(), tok.Token)
	assert.ErrorIs(t, err, errs.ErrTokenExpired)
}

func TestResolver_LookupFailureIsInternal(t *testing.T) {
	t.Parallel()
	r, codec, _, accounts := setup(t)
	accounts.err = errors.New("db down")
	tok, err := codec.Issue("ok")
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), tok.Token)
	require.Error(t, err)
	assert.Equal(t, 500, errs.HTTPStatus(err))
}

func TestOwnership(t *testing.T) {
	t.Parallel()
	owner := Principal{ID: "u1", Role: model.RoleStyler}
	other := Principal{ID: "u2", Role: model.RolePartner}
	admin := Principal{ID: "a1", Role: model.RoleAdmin}
	unknown := Principal{ID: "u1", Role: model.Role("guest")}

	assert.True(t, CanAccess(owner, "u1"))
	assert.True(t, CanAccess(admin, "u1"))
	assert.False(t, CanAccess(other, "u1"))
	assert.False(t, CanAccess(unknown, "u1"))
	assert.False(t, CanAccess(owner, ""))

	assert.NoError(t, AuthorizeOwner(admin, "u1"))
	assert.ErrorIs(t, AuthorizeOwner(other, "u1"), errs.ErrForbidden)

	assert.Equal(t, "u2", ScopeOwner(other, "u1"))
	assert.Equal(t, "u1", ScopeOwner(admin, "u1"))
	assert.Equal(t, "", ScopeOwner(admin, ""))
}

func TestRequireRole(t *testing.T) {
	t.Parallel()
	p := Principal{ID: "u1", Role: model.RoleStyler}
	assert.NoError(t, RequireRole(p, model.RoleStyler, model.RoleAdmin))
	err := RequireRole(p, model.RolePartner, model.RoleAdmin)
	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, "access denied. required role: partner or admin", err.Error())
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, ok := PrincipalFrom(ctx)
	assert.False(t, ok)

	p := Principal{ID: "u1", Role: model.RoleAdmin}
	ctx = WithToken(WithPrincipal(ctx, p), "raw")
	got, ok := PrincipalFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, p, got)
	tok, ok := TokenFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "raw", tok)
}
