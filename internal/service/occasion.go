package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/stylemate/marketplace-api/internal/access"
	"github.com/stylemate/marketplace-api/internal/errs"
	"github.com/stylemate/marketplace-api/internal/model"
	"github.com/stylemate/marketplace-api/internal/repository"
)

type OccasionInput struct {
	Title       string     `json:"title"`
	Type        string     `json:"type"`
	Date        *time.Time `json:"date"`
	Location    string     `json:"location"`
	DressCode   string     `json:"dressCode"`
	Notes       string     `json:"notes"`
	ClothesList []string   `json:"clothesList"`
}

type OccasionPatch struct {
	Title       *string    `json:"title"`
	Type        *string    `json:"type"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location"`
	DressCode   *string    `json:"dressCode"`
	Notes       *string    `json:"notes"`
	ClothesList *[]string  `json:"clothesList"`
}

func validateOccasion(o model.Occasion) error {
	return validationError(validation.ValidateStruct(&o,
		validation.Field(&o.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&o.Type, validation.Required, validation.Length(1, 64)),
		validation.Field(&o.Date, validation.Required),
	))
}

// OccasionService manages occasions. Every occasion belongs to the styler
// who created it and references clothes from that styler's wardrobe.
type OccasionService struct {
	repo     repository.OccasionRepository
	clothes  repository.ClothRepository
	accounts repository.AccountRepository
}

func NewOccasionService(repo repository.OccasionRepository, stylerClothes repository.ClothRepository,
	accounts repository.AccountRepository) *OccasionService {
	return &OccasionService{repo: repo, clothes: stylerClothes, accounts: accounts}
}

func (s *OccasionService) List(ctx context.Context, actor access.Principal, f model.OccasionFilter, q model.ListQuery) (model.Paged[model.Occasion], error) {
	f.UserID = access.ScopeOwner(actor, f.UserID)
	items, total, err := s.repo.List(ctx, f, q)
	if err != nil {
		return model.Paged[model.Occasion]{}, err
	}
	if err := s.populate(ctx, items); err != nil {
		return model.Paged[model.Occasion]{}, err
	}
	return model.NewPaged(items, total, q), nil
}

func (s *OccasionService) Get(ctx context.Context, actor access.Principal, id string) (model.Occasion, error) {
	o, err := s.owned(ctx, actor, id)
	if err != nil {
		return model.Occasion{}, err
	}
	items := []model.Occasion{o}
	if err := s.populate(ctx, items); err != nil {
		return model.Occasion{}, err
	}
	return items[0], nil
}

func (s *OccasionService) Create(ctx context.Context, actor access.Principal, in OccasionInput) (model.Occasion, error) {
	if err := access.RequireRole(actor, model.RoleStyler); err != nil {
		return model.Occasion{}, err
	}
	o := model.Occasion{
		UserID:      actor.ID,
		Title:       strings.TrimSpace(in.Title),
		Type:        strings.TrimSpace(in.Type),
		Location:    in.Location,
		DressCode:   in.DressCode,
		Notes:       in.Notes,
		ClothesList: dedupe(in.ClothesList),
	}
	if in.Date != nil {
		o.Date = in.Date.UTC()
	}
	if o.Type == "" {
		o.Type = model.DefaultOccasionType
	}
	if err := s.check(ctx, o); err != nil {
		return model.Occasion{}, err
	}
	if err := s.repo.Create(ctx, &o); err != nil {
		return model.Occasion{}, err
	}
	return s.Get(ctx, actor, o.ID)
}

func (s *OccasionService) Update(ctx context.Context, actor access.Principal, id string, p OccasionPatch) (model.Occasion, error) {
	o, err := s.owned(ctx, actor, id)
	if err != nil {
		return model.Occasion{}, err
	}
	if p.Title != nil {
		o.Title = strings.TrimSpace(*p.Title)
	}
	if p.Type != nil {
		o.Type = strings.TrimSpace(*p.Type)
	}
	if p.Date != nil {
		o.Date = p.Date.UTC()
	}
	if p.Location != nil {
		o.Location = *p.Location
	}
	if p.DressCode != nil {
		o.DressCode = *p.DressCode
	}
	if p.Notes != nil {
		o.Notes = *p.Notes
	}
	if p.ClothesList != nil {
		o.ClothesList = dedupe(*p.ClothesList)
	}
	if err := s.check(ctx, o); err != nil {
		return model.Occasion{}, err
	}
	if err := s.repo.Update(ctx, &o); err != nil {
		return model.Occasion{}, err
	}
	return s.Get(ctx, actor, o.ID)
}

func (s *OccasionService) Delete(ctx context.Context, actor access.Principal, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// check validates fields and that every referenced cloth belongs to the
// occasion owner.
func (s *OccasionService) check(ctx context.Context, o model.Occasion) error {
	if err := validateOccasion(o); err != nil {
		return err
	}
	if len(o.ClothesList) == 0 {
		return nil
	}
	for _, id := range o.ClothesList {
		if _, err := uuid.Parse(id); err != nil {
			return errs.Validation("clothesList: invalid id " + strconv.Quote(id))
		}
	}
	found, err := s.clothes.GetByIDs(ctx, o.ClothesList)
	if err != nil {
		return err
	}
	if len(found) != len(o.ClothesList) {
		return errs.Validation("clothesList: contains unknown clothes")
	}
	for _, c := range found {
		if c.OwnerID != o.UserID {
			return errs.Validation("clothesList: clothes must belong to the occasion owner")
		}
	}
	return nil
}

func (s *OccasionService) owned(ctx context.Context, actor access.Principal, id string) (model.Occasion, error) {
	if err := checkID(id); err != nil {
		return model.Occasion{}, err
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Occasion{}, err
	}
	if err := access.AuthorizeOwner(actor, o.UserID); err != nil {
		return model.Occasion{}, err
	}
	return o, nil
}

// populate expands the owner and the clothes list of each occasion.
func (s *OccasionService) populate(ctx context.Context, items []model.Occasion) error {
	userIDs := make([]string, 0, len(items))
	var clothIDs []string
	for _, o := range items {
		userIDs = append(userIDs, o.UserID)
		clothIDs = append(clothIDs, o.ClothesList...)
	}
	owners, err := summaries(ctx, s.accounts, userIDs)
	if err != nil {
		return err
	}
	clothes, err := s.clothes.GetByIDs(ctx, dedupe(clothIDs))
	if err != nil {
		return err
	}
	byID := make(map[string]model.Cloth, len(clothes))
	for _, c := range clothes {
		byID[c.ID] = c
	}
	for i := range items {
		items[i].User = owners[items[i].UserID]
		items[i].Clothes = make([]model.Cloth, 0, len(items[i].ClothesList))
		for _, cid := range items[i].ClothesList {
			if c, ok := byID[cid]; ok {
				items[i].Clothes = append(items[i].Clothes, c)
			}
		}
	}
	return nil
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
