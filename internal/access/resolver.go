package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/stylemate/marketplace-api/internal/errs"
	"github.com/stylemate/marketplace-api/internal/model"
	"github.com/stylemate/marketplace-api/internal/utils"
)

type TokenVerifier interface {
	Verify(raw string) (utils.TokenClaims, error)
}

type RevocationChecker interface {
	IsRevoked(token string) bool
}

type AccountLookup interface {
	GetByID(ctx context.Context, id string) (model.Account, error)
}

// Resolver turns a raw bearer token into a Principal.
type Resolver struct {
	tokens   TokenVerifier
	revoked  RevocationChecker
	accounts AccountLookup
}

func NewResolver(tokens TokenVerifier, revoked RevocationChecker, accounts AccountLookup) *Resolver {
	return &Resolver{tokens: tokens, revoked: revoked, accounts: accounts}
}

// Resolve checks, in order: revocation, signature and expiry, account
// existence, approval. The first three fail Unauthorized, the last Forbidden.
func (r *Resolver) Resolve(ctx context.Context, raw string) (Principal, error) {
	if raw == "" {
		return Principal{}, errs.Unauthorized("no authorization token provided")
	}
	if r.revoked.IsRevoked(raw) {
		return Principal{}, errs.ErrTokenRevoked
	}
	claims, err := r.tokens.Verify(raw)
	if err != nil {
		return Principal{}, err
	}
	acc, err := r.accounts.GetByID(ctx, claims.Subject)
	if errors.Is(err, errs.ErrNotFound) {
		return Principal{}, errs.Unauthorized("user not found")
	}
	if err != nil {
		return Principal{}, fmt.Errorf("resolve account: %w", err)
	}
	if !acc.IsApproved {
		return Principal{}, errs.Forbidden("account pending approval. please wait for admin approval")
	}
	return PrincipalOf(acc), nil
}
