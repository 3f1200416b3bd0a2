package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"go.uber.org/zap"

	"github.com/stylemate/marketplace-api/internal/access"
	"github.com/stylemate/marketplace-api/internal/errs"
	"github.com/stylemate/marketplace-api/internal/model"
	"github.com/stylemate/marketplace-api/internal/queue"
	"github.com/stylemate/marketplace-api/internal/repository"
	"github.com/stylemate/marketplace-api/internal/utils"
)

// CredentialHasher is the one-way credential transform.
type CredentialHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// TokenIssuer issues session tokens and reads them back without verification
// for revocation bookkeeping.
type TokenIssuer interface {
	Issue(subject string) (utils.SessionToken, error)
	DecodeUnsafe(raw string) (utils.TokenClaims, bool)
}

type Revoker interface {
	Blacklist(token string, expiry time.Time)
}

const (
	msgInvalidCredentials = "invalid email or password"
	msgPendingApproval    = "account pending approval. please wait for admin approval"
)

type RegisterInput struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

func (r RegisterInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, passwordBytes),
		validation.Field(&r.Role, validation.Required, validation.In(model.RoleStyler, model.RolePartner, model.RoleAdmin)),
	)
}

type RegisterResult struct {
	Account model.Account
	Token   *utils.SessionToken
	Message string
}

type LoginResult struct {
	Account model.Account
	Token   utils.SessionToken
}

// AuthService owns registration, login, logout and account approval. It is
// the only component that changes approval state or issues and revokes
// tokens.
type AuthService struct {
	accounts repository.AccountRepository
	hasher   CredentialHasher
	tokens   TokenIssuer
	revoked  Revoker
	events   EventPublisher
	log      *zap.Logger
}

func NewAuthService(accounts repository.AccountRepository, hasher CredentialHasher, tokens TokenIssuer,
	revoked Revoker, events EventPublisher, log *zap.Logger) *AuthService {
	return &AuthService{accounts: accounts, hasher: hasher, tokens: tokens, revoked: revoked, events: events, log: log}
}

// Register creates an account under the approval policy and, when the
// account comes out approved, issues its first token.
//
// The first-admin check counts approved admins and then inserts. The two
// steps are not atomic, so concurrent first-admin registrations can all be
// auto-approved. This is a known race and is left as is.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	acc, err := s.createAccount(ctx, in, "")
	if err != nil {
		return RegisterResult{}, err
	}
	if !acc.IsApproved {
		return RegisterResult{Account: acc, Message: "User registered successfully. Waiting for admin approval."}, nil
	}

	tok, err := s.tokens.Issue(acc.ID)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("issue token: %w", err)
	}
	msg := "Styler registered successfully. You can now log in."
	if acc.Role == model.RoleAdmin {
		msg = "Admin registered and approved successfully. You can now log in."
	}
	return RegisterResult{Account: acc, Token: &tok, Message: msg}, nil
}

// CreateAccount is the administrative path: same approval policy as Register
// but no token is issued.
func (s *AuthService) CreateAccount(ctx context.Context, actor access.Principal, in RegisterInput) (model.Account, error) {
	if err := access.RequireRole(actor, model.RoleAdmin); err != nil {
		return model.Account{}, err
	}
	return s.createAccount(ctx, in, actor.ID)
}

func (s *AuthService) createAccount(ctx context.Context, in RegisterInput, actorID string) (model.Account, error) {
	in.Email = model.NormalizeEmail(in.Email)
	if err := validationError(in.Validate()); err != nil {
		return model.Account{}, err
	}

	approved, err := s.initialApproval(ctx, in.Role)
	if err != nil {
		return model.Account{}, err
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return model.Account{}, fmt.Errorf("hash password: %w", err)
	}
	acc := model.Account{Email: in.Email, PasswordHash: hash, Role: in.Role, IsApproved: approved}
	if err := s.accounts.Create(ctx, &acc); err != nil {
		return model.Account{}, err
	}

	s.log.Info("account registered",
		zap.String("account_id", acc.ID), zap.String("role", string(acc.Role)), zap.Bool("approved", acc.IsApproved))
	publish(ctx, s.events, s.log, queue.AccountEvent{
		Type:       queue.EventAccountRegistered,
		AccountID:  acc.ID,
		Email:      acc.Email,
		Role:       string(acc.Role),
		Approved:   acc.IsApproved,
		ActorID:    actorID,
		OccurredAt: acc.CreatedAt,
	})
	return acc, nil
}

// initialApproval: stylers always, the first admin only, partners never.
func (s *AuthService) initialApproval(ctx context.Context, role model.Role) (bool, error) {
	switch role {
	case model.RoleStyler:
		return true, nil
	case model.RoleAdmin:
		n, err := s.accounts.CountApprovedAdmins(ctx)
		if err != nil {
			return false, fmt.Errorf("count admins: %w", err)
		}
		return n == 0, nil
	case model.RolePartner:
		return false, nil
	}
	return false, errs.Validation("role: must be a valid value.")
}

// Login verifies credentials. Unknown email and wrong password produce the
// same error; the approval check runs only after the password matched.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = model.NormalizeEmail(email)
	if email == "" || password == "" {
		return LoginResult{}, errs.Validation("email and password are required")
	}
	acc, err := s.accounts.GetByEmail(ctx, email)
	if errors.Is(err, errs.ErrNotFound) {
		return LoginResult{}, errs.Unauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("load account: %w", err)
	}
	if !s.hasher.Verify(password, acc.PasswordHash) {
		return LoginResult{}, errs.Unauthorized(msgInvalidCredentials)
	}
	if !acc.IsApproved {
		return LoginResult{}, errs.Forbidden(msgPendingApproval)
	}
	tok, err := s.tokens.Issue(acc.ID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	return LoginResult{Account: acc, Token: tok}, nil
}

// Logout revokes raw until its own expiry. The expiry is read without
// verifying the signature so revocation works even for tokens other checks
// would reject. Revoking twice is a no-op.
func (s *AuthService) Logout(_ context.Context, raw string) error {
	if raw == "" {
		return errs.BadRequest("no authorization token provided")
	}
	var exp time.Time
	if claims, ok := s.tokens.DecodeUnsafe(raw); ok {
		exp = claims.ExpiresAt
	}
	s.revoked.Blacklist(raw, exp)
	return nil
}

// Approve flips a pending partner or admin to approved. One-way.
func (s *AuthService) Approve(ctx context.Context, actor access.Principal, id string) (model.Account, error) {
	if err := access.RequireRole(actor, model.RoleAdmin); err != nil {
		return model.Account{}, err
	}
	if err := checkID(id); err != nil {
		return model.Account{}, err
	}
	acc, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return model.Account{}, err
	}
	switch {
	case acc.Role == model.RoleStyler:
		return model.Account{}, errs.BadRequest("stylers are automatically approved and don't require manual approval")
	case acc.IsApproved:
		return model.Account{}, errs.BadRequest("user is already approved")
	}
	if err := s.accounts.Approve(ctx, id); err != nil {
		return model.Account{}, err
	}
	acc.IsApproved = true

	s.log.Info("account approved", zap.String("account_id", acc.ID), zap.String("approved_by", actor.ID))
	publish(ctx, s.events, s.log, queue.AccountEvent{
		Type:       queue.EventAccountApproved,
		AccountID:  acc.ID,
		Email:      acc.Email,
		Role:       string(acc.Role),
		Approved:   true,
		ActorID:    actor.ID,
		OccurredAt: time.Now().UTC(),
	})
	return acc, nil
}

// ListPending returns partners and admins awaiting approval, newest first.
func (s *AuthService) ListPending(ctx context.Context, actor access.Principal) ([]model.Account, error) {
	if err := access.RequireRole(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	return s.accounts.ListPending(ctx)
}

// Profile returns the caller's own account.
func (s *AuthService) Profile(ctx context.Context, actor access.Principal) (model.Account, error) {
	return s.accounts.GetByID(ctx, actor.ID)
}
