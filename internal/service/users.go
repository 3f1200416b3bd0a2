package service

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/stylemate/marketplace-api/internal/access"
	"github.com/stylemate/marketplace-api/internal/model"
	"github.com/stylemate/marketplace-api/internal/repository"
)

// UserPatch updates credentials only. Role and approval are not editable.
type UserPatch struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (p UserPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&p.Password, validation.NilOrNotEmpty, passwordBytes),
	)
}

// UserService is the administrative account directory plus the public
// partner listing.
type UserService struct {
	accounts repository.AccountRepository
	hasher   CredentialHasher
	auth     *AuthService
}

func NewUserService(accounts repository.AccountRepository, hasher CredentialHasher, auth *AuthService) *UserService {
	return &UserService{accounts: accounts, hasher: hasher, auth: auth}
}

func (s *UserService) Create(ctx context.Context, actor access.Principal, in RegisterInput) (model.Account, error) {
	return s.auth.CreateAccount(ctx, actor, in)
}

// Get returns any account by id. Credentials are redacted by the model.
func (s *UserService) Get(ctx context.Context, id string) (model.Account, error) {
	if err := checkID(id); err != nil {
		return model.Account{}, err
	}
	return s.accounts.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, actor access.Principal, f model.AccountFilter, q model.ListQuery) (model.Paged[model.Account], error) {
	if err := access.RequireRole(actor, model.RoleAdmin); err != nil {
		return model.Paged[model.Account]{}, err
	}
	items, total, err := s.accounts.List(ctx, f, q)
	if err != nil {
		return model.Paged[model.Account]{}, err
	}
	return model.NewPaged(items, total, q), nil
}

func (s *UserService) Update(ctx context.Context, actor access.Principal, id string, patch UserPatch) (model.Account, error) {
	if err := access.RequireRole(actor, model.RoleAdmin); err != nil {
		return model.Account{}, err
	}
	if err := checkID(id); err != nil {
		return model.Account{}, err
	}
	if err := validationError(patch.Validate()); err != nil {
		return model.Account{}, err
	}
	acc, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return model.Account{}, err
	}
	if patch.Email != nil {
		acc.Email = model.NormalizeEmail(*patch.Email)
	}
	if patch.Password != nil {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return model.Account{}, fmt.Errorf("hash password: %w", err)
		}
		acc.PasswordHash = hash
	}
	if err := s.accounts.UpdateCredentials(ctx, &acc); err != nil {
		return model.Account{}, err
	}
	return acc, nil
}

func (s *UserService) Delete(ctx context.Context, actor access.Principal, id string) error {
	if err := access.RequireRole(actor, model.RoleAdmin); err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}
	return s.accounts.Delete(ctx, id)
}

// ApprovedPartners backs the public partner directory.
func (s *UserService) ApprovedPartners(ctx context.Context) ([]model.Account, error) {
	return s.accounts.ListApprovedPartners(ctx)
}
