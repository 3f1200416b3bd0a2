// Package access decides who a request is and what it may touch.
package access

import (
	"context"
	"strings"

	"github.com/stylemate/marketplace-api/internal/errs"
	"github.com/stylemate/marketplace-api/internal/model"
)

// Principal is the authenticated caller. It is built once per request by the
// Resolver and passed by value.
type Principal struct {
	ID       string
	Email    string
	Role     model.Role
	Approved bool
}

// PrincipalOf builds the principal for an account.
func PrincipalOf(a model.Account) Principal {
	return Principal{ID: a.ID, Email: a.Email, Role: a.Role, Approved: a.IsApproved}
}

func (p Principal) IsAdmin() bool { return p.Role == model.RoleAdmin }

type ctxKey string

const (
	principalKey ctxKey = "sm.principal"
	tokenKey     ctxKey = "sm.token"
)

// WithPrincipal stores the authenticated principal in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom fetches the principal stored by WithPrincipal.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// WithToken keeps the raw bearer token so logout can revoke exactly it.
func WithToken(ctx context.Context, raw string) context.Context {
	return context.WithValue(ctx, tokenKey, raw)
}

func TokenFrom(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey).(string)
	return t, ok && t != ""
}

// HasRole reports whether p holds one of roles.
func HasRole(p Principal, roles ...model.Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// RequireRole fails with Forbidden unless p holds one of roles.
func RequireRole(p Principal, roles ...model.Role) error {
	if HasRole(p, roles...) {
		return nil
	}
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return errs.Forbidden("access denied. required role: " + strings.Join(names, " or "))
}

// CanAccess is the ownership rule: admins always pass, everybody else only
// for resources they own.
func CanAccess(p Principal, ownerID string) bool {
	switch p.Role {
	case model.RoleAdmin:
		return true
	case model.RoleStyler, model.RolePartner:
		return ownerID != "" && p.ID == ownerID
	}
	return false
}

// AuthorizeOwner is CanAccess as an error.
func AuthorizeOwner(p Principal, ownerID string) error {
	if CanAccess(p, ownerID) {
		return nil
	}
	return errs.Forbidden("access denied")
}

// ScopeOwner returns the owner filter for an owner-scoped listing. Admins
// may narrow by requested (or see everything); everyone else sees their own.
func ScopeOwner(p Principal, requested string) string {
	if p.IsAdmin() {
		return requested
	}
	return p.ID
}
