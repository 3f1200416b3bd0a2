package service

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/stylemate/marketplace-api/internal/access"
	"github.com/stylemate/marketplace-api/internal/model"
	"github.com/stylemate/marketplace-api/internal/repository"
)

type PaymentInput struct {
	Amount      float64             `json:"amount"`
	Currency    string              `json:"currency"`
	Method      model.PaymentMethod `json:"method"`
	Status      model.PaymentStatus `json:"status"`
	Description string              `json:"description"`
}

type PaymentPatch struct {
	Amount      *float64             `json:"amount"`
	Currency    *string              `json:"currency"`
	Method      *model.PaymentMethod `json:"method"`
	Status      *model.PaymentStatus `json:"status"`
	Description *string              `json:"description"`
}

func validatePayment(p model.Payment) error {
	return validationError(validation.ValidateStruct(&p,
		validation.Field(&p.Amount, validation.Required, validation.Min(0.0)),
		validation.Field(&p.Currency, validation.Required, validation.Length(3, 3)),
		validation.Field(&p.Method, validation.Required, validation.In(model.PaymentMethods...)),
		validation.Field(&p.Status, validation.Required, validation.In(model.PaymentStatuses...)),
		validation.Field(&p.Description, validation.Length(0, 1024)),
	))
}

// PaymentService records payments. It is bookkeeping only; no gateway is
// contacted.
type PaymentService struct {
	repo     repository.PaymentRepository
	accounts repository.AccountRepository
}

func NewPaymentService(repo repository.PaymentRepository, accounts repository.AccountRepository) *PaymentService {
	return &PaymentService{repo: repo, accounts: accounts}
}

func (s *PaymentService) List(ctx context.Context, actor access.Principal, f model.PaymentFilter, q model.ListQuery) (model.Paged[model.Payment], error) {
	f.UserID = access.ScopeOwner(actor, f.UserID)
	items, total, err := s.repo.List(ctx, f, q)
	if err != nil {
		return model.Paged[model.Payment]{}, err
	}
	if err := s.populate(ctx, items); err != nil {
		return model.Paged[model.Payment]{}, err
	}
	return model.NewPaged(items, total, q), nil
}

func (s *PaymentService) Get(ctx context.Context, actor access.Principal, id string) (model.Payment, error) {
	p, err := s.owned(ctx, actor, id)
	if err != nil {
		return model.Payment{}, err
	}
	items := []model.Payment{p}
	if err := s.populate(ctx, items); err != nil {
		return model.Payment{}, err
	}
	return items[0], nil
}

func (s *PaymentService) Create(ctx context.Context, actor access.Principal, in PaymentInput) (model.Payment, error) {
	if err := access.RequireRole(actor, model.RoleStyler, model.RolePartner); err != nil {
		return model.Payment{}, err
	}
	p := model.Payment{
		UserID:      actor.ID,
		Amount:      in.Amount,
		Currency:    strings.ToUpper(strings.TrimSpace(in.Currency)),
		Method:      in.Method,
		Status:      in.Status,
		Description: in.Description,
	}
	if p.Currency == "" {
		p.Currency = model.DefaultCurrency
	}
	if p.Method == "" {
		p.Method = model.MethodCard
	}
	if p.Status == "" {
		p.Status = model.StatusPending
	}
	if err := validatePayment(p); err != nil {
		return model.Payment{}, err
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

func (s *PaymentService) Update(ctx context.Context, actor access.Principal, id string, patch PaymentPatch) (model.Payment, error) {
	p, err := s.owned(ctx, actor, id)
	if err != nil {
		return model.Payment{}, err
	}
	if patch.Amount != nil {
		p.Amount = *patch.Amount
	}
	if patch.Currency != nil {
		p.Currency = strings.ToUpper(strings.TrimSpace(*patch.Currency))
	}
	if patch.Method != nil {
		p.Method = *patch.Method
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if err := validatePayment(p); err != nil {
		return model.Payment{}, err
	}
	if err := s.repo.Update(ctx, &p); err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

func (s *PaymentService) Delete(ctx context.Context, actor access.Principal, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *PaymentService) owned(ctx context.Context, actor access.Principal, id string) (model.Payment, error) {
	if err := checkID(id); err != nil {
		return model.Payment{}, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Payment{}, err
	}
	if err := access.AuthorizeOwner(actor, p.UserID); err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

func (s *PaymentService) populate(ctx context.Context, items []model.Payment) error {
	ids := make([]string, len(items))
	for i, p := range items {
		ids[i] = p.UserID
	}
	owners, err := summaries(ctx, s.accounts, ids)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].User = owners[items[i].UserID]
	}
	return nil
}
