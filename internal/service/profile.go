package service

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/stylemate/marketplace-api/internal/access"
	"github.com/stylemate/marketplace-api/internal/model"
	"github.com/stylemate/marketplace-api/internal/repository"
)

type PartnerInput struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Location       string  `json:"location"`
	PartnershipFee float64 `json:"partnershipFee"`
}

type PartnerPatch struct {
	Name           *string  `json:"name"`
	Email          *string  `json:"email"`
	Phone          *string  `json:"phone"`
	Location       *string  `json:"location"`
	PartnershipFee *float64 `json:"partnershipFee"`
}

func validatePartner(p model.PartnerProfile) error {
	return validationError(validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Phone, validation.Length(0, 64)),
		validation.Field(&p.PartnershipFee, validation.Min(0.0)),
	))
}

// PartnerService manages partner business profiles. A profile belongs to
// the partner account that created it.
type PartnerService struct {
	repo repository.PartnerProfileRepository
}

func NewPartnerService(repo repository.PartnerProfileRepository) *PartnerService {
	return &PartnerService{repo: repo}
}

func (s *PartnerService) List(ctx context.Context, actor access.Principal, f model.PartnerFilter, q model.ListQuery) (model.Paged[model.PartnerProfile], error) {
	if err := access.RequireRole(actor, model.RoleAdmin, model.RolePartner); err != nil {
		return model.Paged[model.PartnerProfile]{}, err
	}
	f.OwnerID = access.ScopeOwner(actor, f.OwnerID)
	items, total, err := s.repo.List(ctx, f, q)
	if err != nil {
		return model.Paged[model.PartnerProfile]{}, err
	}
	return model.NewPaged(items, total, q), nil
}

func (s *PartnerService) Get(ctx context.Context, actor access.Principal, id string) (model.PartnerProfile, error) {
	return s.owned(ctx, actor, id)
}

func (s *PartnerService) Create(ctx context.Context, actor access.Principal, in PartnerInput) (model.PartnerProfile, error) {
	if err := access.RequireRole(actor, model.RolePartner); err != nil {
		return model.PartnerProfile{}, err
	}
	p := model.PartnerProfile{
		OwnerID:        actor.ID,
		Name:           strings.TrimSpace(in.Name),
		Email:          model.NormalizeEmail(in.Email),
		Phone:          strings.TrimSpace(in.Phone),
		Location:       in.Location,
		PartnershipFee: in.PartnershipFee,
		IsApproved:     actor.Approved,
	}
	if err := validatePartner(p); err != nil {
		return model.PartnerProfile{}, err
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return model.PartnerProfile{}, err
	}
	return p, nil
}

func (s *PartnerService) Update(ctx context.Context, actor access.Principal, id string, patch PartnerPatch) (model.PartnerProfile, error) {
	p, err := s.owned(ctx, actor, id)
	if err != nil {
		return model.PartnerProfile{}, err
	}
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		p.Email = model.NormalizeEmail(*patch.Email)
	}
	if patch.Phone != nil {
		p.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.PartnershipFee != nil {
		p.PartnershipFee = *patch.PartnershipFee
	}
	if err := validatePartner(p); err != nil {
		return model.PartnerProfile{}, err
	}
	if err := s.repo.Update(ctx, &p); err != nil {
		return model.PartnerProfile{}, err
	}
	return p, nil
}

func (s *PartnerService) Delete(ctx context.Context, actor access.Principal, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *PartnerService) owned(ctx context.Context, actor access.Principal, id string) (model.PartnerProfile, error) {
	if err := checkID(id); err != nil {
		return model.PartnerProfile{}, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.PartnerProfile{}, err
	}
	if err := access.AuthorizeOwner(actor, p.OwnerID); err != nil {
		return model.PartnerProfile{}, err
	}
	return p, nil
}

type StylerInput struct {
	Name     string         `json:"name"`
	Bio      string         `json:"bio"`
	Gender   model.Gender   `json:"gender"`
	Age      *int           `json:"age"`
	Country  string         `json:"country"`
	SkinTone model.SkinTone `json:"skinTone"`
}

type StylerPatch struct {
	Name     *string         `json:"name"`
	Bio      *string         `json:"bio"`
	Gender   *model.Gender   `json:"gender"`
	Age      *int            `json:"age"`
	Country  *string         `json:"country"`
	SkinTone *model.SkinTone `json:"skinTone"`
}

func validateStyler(p model.StylerProfile) error {
	return validationError(validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.Gender, validation.Required, validation.In(model.Genders...)),
		validation.Field(&p.Age, validation.Min(0), validation.Max(150)),
		validation.Field(&p.SkinTone, validation.In(model.SkinTones...)),
	))
}

// StylerService manages styler personal profiles.
type StylerService struct {
	repo repository.StylerProfileRepository
}

func NewStylerService(repo repository.StylerProfileRepository) *StylerService {
	return &StylerService{repo: repo}
}

// List is the admin directory of styler profiles.
func (s *StylerService) List(ctx context.Context, actor access.Principal, f model.StylerFilter, q model.ListQuery) (model.Paged[model.StylerProfile], error) {
	if err := access.RequireRole(actor, model.RoleAdmin); err != nil {
		return model.Paged[model.StylerProfile]{}, err
	}
	items, total, err := s.repo.List(ctx, f, q)
	if err != nil {
		return model.Paged[model.StylerProfile]{}, err
	}
	return model.NewPaged(items, total, q), nil
}

func (s *StylerService) Get(ctx context.Context, actor access.Principal, id string) (model.StylerProfile, error) {
	return s.owned(ctx, actor, id)
}

func (s *StylerService) Create(ctx context.Context, actor access.Principal, in StylerInput) (model.StylerProfile, error) {
	if err := access.RequireRole(actor, model.RoleStyler); err != nil {
		return model.StylerProfile{}, err
	}
	p := model.StylerProfile{
		OwnerID:  actor.ID,
		Name:     strings.TrimSpace(in.Name),
		Bio:      strings.TrimSpace(in.Bio),
		Gender:   in.Gender,
		Age:      in.Age,
		Country:  strings.TrimSpace(in.Country),
		SkinTone: in.SkinTone,
	}
	if p.Gender == "" {
		p.Gender = model.GenderOther
	}
	if err := validateStyler(p); err != nil {
		return model.StylerProfile{}, err
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return model.StylerProfile{}, err
	}
	return p, nil
}

func (s *StylerService) Update(ctx context.Context, actor access.Principal, id string, patch StylerPatch) (model.StylerProfile, error) {
	p, err := s.owned(ctx, actor, id)
	if err != nil {
		return model.StylerProfile{}, err
	}
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Bio != nil {
		p.Bio = strings.TrimSpace(*patch.Bio)
	}
	if patch.Gender != nil {
		p.Gender = *patch.Gender
	}
	if patch.Age != nil {
		p.Age = patch.Age
	}
	if patch.Country != nil {
		p.Country = strings.TrimSpace(*patch.Country)
	}
	if patch.SkinTone != nil {
		p.SkinTone = *patch.SkinTone
	}
	if err := validateStyler(p); err != nil {
		return model.StylerProfile{}, err
	}
	if err := s.repo.Update(ctx, &p); err != nil {
		return model.StylerProfile{}, err
	}
	return p, nil
}

func (s *StylerService) Delete(ctx context.Context, actor access.Principal, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *StylerService) owned(ctx context.Context, actor access.Principal, id string) (model.StylerProfile, error) {
	if err := checkID(id); err != nil {
		return model.StylerProfile{}, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.StylerProfile{}, err
	}
	if err := access.AuthorizeOwner(actor, p.OwnerID); err != nil {
		return model.StylerProfile{}, err
	}
	return p, nil
}
