package service

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/stylemate/marketplace-api/internal/access"
	"github.com/stylemate/marketplace-api/internal/errs"
	"github.com/stylemate/marketplace-api/internal/model"
	"github.com/stylemate/marketplace-api/internal/repository"
)

type ClothInput struct {
	Name       string           `json:"name"`
	Image      string           `json:"image"`
	Color      string           `json:"color"`
	Category   string           `json:"category"`
	Price      *float64         `json:"price"`
	Visibility model.Visibility `json:"visibility"`
}

type ClothPatch struct {
	Name       *string           `json:"name"`
	Image      *string           `json:"image"`
	Color      *string           `json:"color"`
	Category   *string           `json:"category"`
	Price      *float64          `json:"price"`
	Visibility *model.Visibility `json:"visibility"`
}

func validateCloth(c model.Cloth) error {
	return validationError(validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&c.Color, validation.Required, validation.Length(1, 64)),
		validation.Field(&c.Category, validation.Required, validation.Length(1, 64)),
		validation.Field(&c.Price, validation.Min(0.0)),
		validation.Field(&c.Visibility, validation.Required, validation.In(model.VisibilityPublic, model.VisibilityPrivate)),
	))
}

// ClothService serves one cloth collection. Partner clothes are a public
// catalogue where only private items are owner-gated; styler clothes are a
// personal wardrobe where every read is owner-gated.
type ClothService struct {
	repo        repository.ClothRepository
	accounts    repository.AccountRepository
	ownerRole   model.Role
	ownerType   model.OwnerType
	defaultVis  model.Visibility
	ownerScoped bool
}

func NewPartnerClothService(repo repository.ClothRepository, accounts repository.AccountRepository) *ClothService {
	return &ClothService{
		repo:       repo,
		accounts:   accounts,
		ownerRole:  model.RolePartner,
		ownerType:  model.OwnerPartner,
		defaultVis: model.VisibilityPublic,
	}
}

func NewStylerClothService(repo repository.ClothRepository, accounts repository.AccountRepository) *ClothService {
	return &ClothService{
		repo:        repo,
		accounts:    accounts,
		ownerRole:   model.RoleStyler,
		ownerType:   model.OwnerStyler,
		defaultVis:  model.VisibilityPrivate,
		ownerScoped: true,
	}
}

// ListPublic lists public items only, with owners populated.
func (s *ClothService) ListPublic(ctx context.Context, f model.ClothFilter, q model.ListQuery) (model.Paged[model.Cloth], error) {
	f.Visibility = model.VisibilityPublic
	return s.list(ctx, f, q)
}

// Suggestions is the public catalogue as offered to stylers.
func (s *ClothService) Suggestions(ctx context.Context, actor access.Principal, f model.ClothFilter, q model.ListQuery) (model.Paged[model.Cloth], error) {
	if err := access.RequireRole(actor, model.RoleStyler); err != nil {
		return model.Paged[model.Cloth]{}, err
	}
	return s.ListPublic(ctx, f, q)
}

// ListMine lists the caller's own items regardless of visibility.
func (s *ClothService) ListMine(ctx context.Context, actor access.Principal, f model.ClothFilter, q model.ListQuery) (model.Paged[model.Cloth], error) {
	f.OwnerID = actor.ID
	return s.list(ctx, f, q)
}

// List is the owner-scoped listing: admins see everything (optionally by
// owner), everybody else only their own items.
func (s *ClothService) List(ctx context.Context, actor access.Principal, f model.ClothFilter, q model.ListQuery) (model.Paged[model.Cloth], error) {
	f.OwnerID = access.ScopeOwner(actor, f.OwnerID)
	return s.list(ctx, f, q)
}

func (s *ClothService) list(ctx context.Context, f model.ClothFilter, q model.ListQuery) (model.Paged[model.Cloth], error) {
	items, total, err := s.repo.List(ctx, f, q)
	if err != nil {
		return model.Paged[model.Cloth]{}, err
	}
	if err := s.populate(ctx, items); err != nil {
		return model.Paged[model.Cloth]{}, err
	}
	return model.NewPaged(items, total, q), nil
}

// Get returns one item. actor is nil for anonymous callers, which can only
// see public catalogue items.
func (s *ClothService) Get(ctx context.Context, actor *access.Principal, id string) (model.Cloth, error) {
	if err := checkID(id); err != nil {
		return model.Cloth{}, err
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Cloth{}, err
	}
	if s.ownerScoped || c.Visibility == model.VisibilityPrivate {
		if actor == nil {
			return model.Cloth{}, errs.Unauthorized("authentication required")
		}
		if err := access.AuthorizeOwner(*actor, c.OwnerID); err != nil {
			return model.Cloth{}, err
		}
	}
	items := []model.Cloth{c}
	if err := s.populate(ctx, items); err != nil {
		return model.Cloth{}, err
	}
	return items[0], nil
}

func (s *ClothService) Create(ctx context.Context, actor access.Principal, in ClothInput) (model.Cloth, error) {
	if err := access.RequireRole(actor, s.ownerRole); err != nil {
		return model.Cloth{}, err
	}
	c := model.Cloth{
		Name:       strings.TrimSpace(in.Name),
		Image:      strings.TrimSpace(in.Image),
		Color:      strings.TrimSpace(in.Color),
		Category:   strings.TrimSpace(in.Category),
		OwnerType:  s.ownerType,
		OwnerID:    actor.ID,
		Visibility: in.Visibility,
	}
	if in.Price != nil {
		c.Price = *in.Price
	}
	if c.Image == "" {
		c.Image = model.DefaultClothImage
	}
	if c.Visibility == "" {
		c.Visibility = s.defaultVis
	}
	if err := validateCloth(c); err != nil {
		return model.Cloth{}, err
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return model.Cloth{}, err
	}
	return c, nil
}

// Update applies a partial merge and re-runs validation. Owner fields are
// never taken from the patch.
func (s *ClothService) Update(ctx context.Context, actor access.Principal, id string, p ClothPatch) (model.Cloth, error) {
	c, err := s.owned(ctx, actor, id)
	if err != nil {
		return model.Cloth{}, err
	}
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Image != nil {
		c.Image = strings.TrimSpace(*p.Image)
		if c.Image == "" {
			c.Image = model.DefaultClothImage
		}
	}
	if p.Color != nil {
		c.Color = strings.TrimSpace(*p.Color)
	}
	if p.Category != nil {
		c.Category = strings.TrimSpace(*p.Category)
	}
	if p.Price != nil {
		c.Price = *p.Price
	}
	if p.Visibility != nil {
		c.Visibility = *p.Visibility
	}
	if err := validateCloth(c); err != nil {
		return model.Cloth{}, err
	}
	if err := s.repo.Update(ctx, &c); err != nil {
		return model.Cloth{}, err
	}
	return c, nil
}

func (s *ClothService) Delete(ctx context.Context, actor access.Principal, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *ClothService) owned(ctx context.Context, actor access.Principal, id string) (model.Cloth, error) {
	if err := checkID(id); err != nil {
		return model.Cloth{}, err
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Cloth{}, err
	}
	if err := access.AuthorizeOwner(actor, c.OwnerID); err != nil {
		return model.Cloth{}, err
	}
	return c, nil
}

func (s *ClothService) populate(ctx context.Context, items []model.Cloth) error {
	ids := make([]string, len(items))
	for i, c := range items {
		ids[i] = c.OwnerID
	}
	owners, err := summaries(ctx, s.accounts, ids)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].Owner = owners[items[i].OwnerID]
	}
	return nil
}
