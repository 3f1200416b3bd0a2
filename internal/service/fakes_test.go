package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stylemate/marketplace-api/internal/errs"
	"github.com/stylemate/marketplace-api/internal/model"
	"github.com/stylemate/marketplace-api/internal/queue"
	"github.com/stylemate/marketplace-api/internal/repository"
)

type fakeAccounts struct {
	byID map[string]model.Account
}

var _ repository.AccountRepository = (*fakeAccounts)(nil)

func newFakeAccounts() *fakeAccounts { return &fakeAccounts{byID: map[string]model.Account{}} }

func (f *fakeAccounts) Create(_ context.Context, a *model.Account) error {
	for _, x := range f.byID {
		if x.Email == a.Email {
			return errs.AlreadyExists("email")
		}
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now().UTC()
	f.byID[a.ID] = *a
	return nil
}

func (f *fakeAccounts) GetByID(_ context.Context, id string) (model.Account, error) {
	a, ok := f.byID[id]
	if !ok {
		return model.Account{}, errs.NotFound("user not found")
	}
	return a, nil
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (model.Account, error) {
	for _, a := range f.byID {
		if a.Email == email {
			return a, nil
		}
	}
	return model.Account{}, errs.NotFound("user not found")
}

func (f *fakeAccounts) GetByIDs(_ context.Context, ids []string) (map[string]model.Account, error) {
	out := map[string]model.Account{}
	for _, id := range ids {
		if a, ok := f.byID[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (f *fakeAccounts) CountApprovedAdmins(context.Context) (int, error) {
	n := 0
	for _, a := range f.byID {
		if a.Role == model.RoleAdmin && a.IsApproved {
			n++
		}
	}
	return n, nil
}

func (f *fakeAccounts) ListPending(context.Context) ([]model.Account, error) {
	var out []model.Account
	for _, a := range f.byID {
		if !a.IsApproved && a.Role != model.RoleStyler {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAccounts) ListApprovedPartners(context.Context) ([]model.Account, error) {
	var out []model.Account
	for _, a := range f.byID {
		if a.IsApproved && a.Role == model.RolePartner {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAccounts) List(_ context.Context, flt model.AccountFilter, _ model.ListQuery) ([]model.Account, int, error) {
	var out []model.Account
	for _, a := range f.byID {
		if flt.Role != "" && a.Role != flt.Role {
			continue
		}
		out = append(out, a)
	}
	return out, len(out), nil
}

func (f *fakeAccounts) Approve(_ context.Context, id string) error {
	a, ok := f.byID[id]
	if !ok {
		return errs.NotFound("user not found")
	}
	if a.IsApproved {
		return errs.BadRequest("user is already approved")
	}
	a.IsApproved = true
	f.byID[id] = a
	return nil
}

func (f *fakeAccounts) UpdateCredentials(_ context.Context, a *model.Account) error {
	if _, ok := f.byID[a.ID]; !ok {
		return errs.NotFound("user not found")
	}
	f.byID[a.ID] = *a
	return nil
}

func (f *fakeAccounts) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return errs.NotFound("user not found")
	}
	delete(f.byID, id)
	return nil
}

type fakeClothes struct {
	byID map[string]model.Cloth
}

var _ repository.ClothRepository = (*fakeClothes)(nil)

func newFakeClothes() *fakeClothes { return &fakeClothes{byID: map[string]model.Cloth{}} }

func (f *fakeClothes) Create(_ context.Context, c *model.Cloth) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	f.byID[c.ID] = *c
	return nil
}

func (f *fakeClothes) GetByID(_ context.Context, id string) (model.Cloth, error) {
	c, ok := f.byID[id]
	if !ok {
		return model.Cloth{}, errs.NotFound("cloth not found")
	}
	return c, nil
}

func (f *fakeClothes) GetByIDs(_ context.Context, ids []string) ([]model.Cloth, error) {
	out := []model.Cloth{}
	for _, id := range ids {
		if c, ok := f.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClothes) List(_ context.Context, flt model.ClothFilter, _ model.ListQuery) ([]model.Cloth, int, error) {
	out := []model.Cloth{}
	for _, c := range f.byID {
		if flt.OwnerID != "" && c.OwnerID != flt.OwnerID {
			continue
		}
		if flt.Visibility != "" && c.Visibility != flt.Visibility {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (f *fakeClothes) Update(_ context.Context, c *model.Cloth) error {
	if _, ok := f.byID[c.ID]; !ok {
		return errs.NotFound("cloth not found")
	}
	f.byID[c.ID] = *c
	return nil
}

func (f *fakeClothes) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return errs.NotFound("cloth not found")
	}
	delete(f.byID, id)
	return nil
}

type fakeOccasions struct {
	byID map[string]model.Occasion
}

var _ repository.OccasionRepository = (*fakeOccasions)(nil)

func newFakeOccasions() *fakeOccasions { return &fakeOccasions{byID: map[string]model.Occasion{}} }

func (f *fakeOccasions) Create(_ context.Context, o *model.Occasion) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	f.byID[o.ID] = *o
	return nil
}

func (f *fakeOccasions) GetByID(_ context.Context, id string) (model.Occasion, error) {
	o, ok := f.byID[id]
	if !ok {
		return model.Occasion{}, errs.NotFound("occasion not found")
	}
	return o, nil
}

func (f *fakeOccasions) List(_ context.Context, flt model.OccasionFilter, _ model.ListQuery) ([]model.Occasion, int, error) {
	out := []model.Occasion{}
	for _, o := range f.byID {
		if flt.UserID != "" && o.UserID != flt.UserID {
			continue
		}
		out = append(out, o)
	}
	return out, len(out), nil
}

func (f *fakeOccasions) Update(_ context.Context, o *model.Occasion) error {
	if _, ok := f.byID[o.ID]; !ok {
		return errs.NotFound("occasion not found")
	}
	f.byID[o.ID] = *o
	return nil
}

func (f *fakeOccasions) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return errs.NotFound("occasion not found")
	}
	delete(f.byID, id)
	return nil
}

type fakePayments struct {
	byID map[string]model.Payment
}

var _ repository.PaymentRepository = (*fakePayments)(nil)

func newFakePayments() *fakePayments { return &fakePayments{byID: map[string]model.Payment{}} }

func (f *fakePayments) Create(_ context.Context, p *model.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	f.byID[p.ID] = *p
	return nil
}

func (f *fakePayments) GetByID(_ context.Context, id string) (model.Payment, error) {
	p, ok := f.byID[id]
	if !ok {
		return model.Payment{}, errs.NotFound("payment not found")
	}
	return p, nil
}

func (f *fakePayments) List(_ context.Context, flt model.PaymentFilter, _ model.ListQuery) ([]model.Payment, int, error) {
	out := []model.Payment{}
	for _, p := range f.byID {
		if flt.UserID != "" && p.UserID != flt.UserID {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (f *fakePayments) Update(_ context.Context, p *model.Payment) error {
	if _, ok := f.byID[p.ID]; !ok {
		return errs.NotFound("payment not found")
	}
	f.byID[p.ID] = *p
	return nil
}

func (f *fakePayments) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return errs.NotFound("payment not found")
	}
	delete(f.byID, id)
	return nil
}

type fakePartners struct {
	byID map[string]model.PartnerProfile
}

var _ repository.PartnerProfileRepository = (*fakePartners)(nil)

func (f *fakePartners) Create(_ context.Context, p *model.PartnerProfile) error {
	for _, x := range f.byID {
		if x.Email == p.Email {
			return errs.AlreadyExists("email")
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	f.byID[p.ID] = *p
	return nil
}

func (f *fakePartners) GetByID(_ context.Context, id string) (model.PartnerProfile, error) {
	p, ok := f.byID[id]
	if !ok {
		return model.PartnerProfile{}, errs.NotFound("partner not found")
	}
	return p, nil
}

func (f *fakePartners) List(_ context.Context, flt model.PartnerFilter, _ model.ListQuery) ([]model.PartnerProfile, int, error) {
	out := []model.PartnerProfile{}
	for _, p := range f.byID {
		if flt.OwnerID != "" && p.OwnerID != flt.OwnerID {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (f *fakePartners) Update(_ context.Context, p *model.PartnerProfile) error {
	f.byID[p.ID] = *p
	return nil
}

func (f *fakePartners) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

type fakeStylers struct {
	byID map[string]model.StylerProfile
}

var _ repository.StylerProfileRepository = (*fakeStylers)(nil)

func (f *fakeStylers) Create(_ context.Context, p *model.StylerProfile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	f.byID[p.ID] = *p
	return nil
}

func (f *fakeStylers) GetByID(_ context.Context, id string) (model.StylerProfile, error) {
	p, ok := f.byID[id]
	if !ok {
		return model.StylerProfile{}, errs.NotFound("styler not found")
	}
	return p, nil
}

func (f *fakeStylers) List(context.Context, model.StylerFilter, model.ListQuery) ([]model.StylerProfile, int, error) {
	out := []model.StylerProfile{}
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (f *fakeStylers) Update(_ context.Context, p *model.StylerProfile) error {
	f.byID[p.ID] = *p
	return nil
}

func (f *fakeStylers) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.AccountEvent
}

func (p *recordingPublisher) PublishAccountEvent(_ context.Context, ev queue.AccountEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}
