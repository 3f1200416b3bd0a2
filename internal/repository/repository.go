package repository

import (
	"context"

	"github.com/stylemate/marketplace-api/internal/model"
)

// AccountRepository is the account directory. Email is unique; Create
// reports a duplicate as errs.ErrConflict.
type AccountRepository interface {
	Create(ctx context.Context, a *model.Account) error
	GetByID(ctx context.Context, id string) (model.Account, error)
	GetByEmail(ctx context.Context, email string) (model.Account, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]model.Account, error)
	CountApprovedAdmins(ctx context.Context) (int, error)
	ListPending(ctx context.Context) ([]model.Account, error)
	ListApprovedPartners(ctx context.Context) ([]model.Account, error)
	List(ctx context.Context, f model.AccountFilter, q model.ListQuery) ([]model.Account, int, error)
	// Approve flips is_approved from false to true. It reports
	// errs.ErrBadRequest when the account is already approved.
	Approve(ctx context.Context, id string) error
	UpdateCredentials(ctx context.Context, a *model.Account) error
	Delete(ctx context.Context, id string) error
}

type ClothRepository interface {
	Create(ctx context.Context, c *model.Cloth) error
	GetByID(ctx context.Context, id string) (model.Cloth, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Cloth, error)
	List(ctx context.Context, f model.ClothFilter, q model.ListQuery) ([]model.Cloth, int, error)
	Update(ctx context.Context, c *model.Cloth) error
	Delete(ctx context.Context, id string) error
}

type OccasionRepository interface {
	Create(ctx context.Context, o *model.Occasion) error
	GetByID(ctx context.Context, id string) (model.Occasion, error)
	List(ctx context.Context, f model.OccasionFilter, q model.ListQuery) ([]model.Occasion, int, error)
	Update(ctx context.Context, o *model.Occasion) error
	Delete(ctx context.Context, id string) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	GetByID(ctx context.Context, id string) (model.Payment, error)
	List(ctx context.Context, f model.PaymentFilter, q model.ListQuery) ([]model.Payment, int, error)
	Update(ctx context.Context, p *model.Payment) error
	Delete(ctx context.Context, id string) error
}

type PartnerProfileRepository interface {
	Create(ctx context.Context, p *model.PartnerProfile) error
	GetByID(ctx context.Context, id string) (model.PartnerProfile, error)
	List(ctx context.Context, f model.PartnerFilter, q model.ListQuery) ([]model.PartnerProfile, int, error)
	Update(ctx context.Context, p *model.PartnerProfile) error
	Delete(ctx context.Context, id string) error
}

type StylerProfileRepository interface {
	Create(ctx context.Context, p *model.StylerProfile) error
	GetByID(ctx context.Context, id string) (model.StylerProfile, error)
	List(ctx context.Context, f model.StylerFilter, q model.ListQuery) ([]model.StylerProfile, int, error)
	Update(ctx context.Context, p *model.StylerProfile) error
	Delete(ctx context.Context, id string) error
}
