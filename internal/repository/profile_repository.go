package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/stylemate/marketplace-api/internal/model"
)

const partnerCols = "id, owner_id, name, email, phone, location, partnership_fee, is_approved, created_at"

var partnerSort = map[string]string{
	"createdAt":      "created_at",
	"name":           "name",
	"partnershipFee": "partnership_fee",
}

type PartnerProfileRepo struct{ DB *sql.DB }

func NewPartnerProfileRepo(db *sql.DB) *PartnerProfileRepo { return &PartnerProfileRepo{DB: db} }

var _ PartnerProfileRepository = (*PartnerProfileRepo)(nil)

func scanPartner(s rowScanner) (model.PartnerProfile, error) {
	var p model.PartnerProfile
	err := s.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Email, &p.Phone, &p.Location, &p.PartnershipFee, &p.IsApproved, &p.CreatedAt)
	return p, err
}

func (r *PartnerProfileRepo) Create(ctx context.Context, p *model.PartnerProfile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Email = model.NormalizeEmail(p.Email)
	p.CreatedAt = time.Now().UTC()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO partner_profiles ("+partnerCols+") VALUES (?,?,?,?,?,?,?,?,?)",
		p.ID, p.OwnerID, p.Name, p.Email, p.Phone, p.Location, p.PartnershipFee, p.IsApproved, p.CreatedAt)
	return translate(err, "partner", "email")
}

func (r *PartnerProfileRepo) GetByID(ctx context.Context, id string) (model.PartnerProfile, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+partnerCols+" FROM partner_profiles WHERE id = ? LIMIT 1", id)
	p, err := scanPartner(row)
	return p, translate(err, "partner", "")
}

func (r *PartnerProfileRepo) List(ctx context.Context, f model.PartnerFilter, q model.ListQuery) ([]model.PartnerProfile, int, error) {
	var w where
	w.eq("owner_id", f.OwnerID)
	w.like([]string{"name"}, f.Name)

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM partner_profiles WHERE "+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+partnerCols+" FROM partner_profiles WHERE "+w.sql()+
			" ORDER BY "+orderBy(q.Sort, partnerSort, "created_at DESC")+" LIMIT ? OFFSET ?",
		append(w.args, q.Limit, q.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]model.PartnerProfile, 0, q.Limit)
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *PartnerProfileRepo) Update(ctx context.Context, p *model.PartnerProfile) error {
	p.Email = model.NormalizeEmail(p.Email)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE partner_profiles SET name = ?, email = ?, phone = ?, location = ?, partnership_fee = ? WHERE id = ?",
		p.Name, p.Email, p.Phone, p.Location, p.PartnershipFee, p.ID)
	if err != nil {
		return translate(err, "partner", "email")
	}
	return affected(res, "partner")
}

func (r *PartnerProfileRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM partner_profiles WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affected(res, "partner")
}

const stylerCols = "id, owner_id, name, bio, gender, age, country, skin_tone, created_at, updated_at"

var stylerSort = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
	"age":       "age",
	"country":   "country",
}

type StylerProfileRepo struct{ DB *sql.DB }

func NewStylerProfileRepo(db *sql.DB) *StylerProfileRepo { return &StylerProfileRepo{DB: db} }

var _ StylerProfileRepository = (*StylerProfileRepo)(nil)

func scanStyler(s rowScanner) (model.StylerProfile, error) {
	var p model.StylerProfile
	var gender, tone string
	var age sql.NullInt64
	err := s.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Bio, &gender, &age, &p.Country, &tone, &p.CreatedAt, &p.UpdatedAt)
	p.Gender, p.SkinTone = model.Gender(gender), model.SkinTone(tone)
	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	return p, err
}

func nullAge(age *int) sql.NullInt64 {
	if age == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*age), Valid: true}
}

func (r *StylerProfileRepo) Create(ctx context.Context, p *model.StylerProfile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO styler_profiles ("+stylerCols+") VALUES (?,?,?,?,?,?,?,?,?,?)",
		p.ID, p.OwnerID, p.Name, p.Bio, string(p.Gender), nullAge(p.Age), p.Country, string(p.SkinTone), p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *StylerProfileRepo) GetByID(ctx context.Context, id string) (model.StylerProfile, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+stylerCols+" FROM styler_profiles WHERE id = ? LIMIT 1", id)
	p, err := scanStyler(row)
	return p, translate(err, "styler", "")
}

func (r *StylerProfileRepo) List(ctx context.Context, f model.StylerFilter, q model.ListQuery) ([]model.StylerProfile, int, error) {
	var w where
	w.eq("owner_id", f.OwnerID)
	w.like([]string{"name"}, f.Name)
	w.eq("country", f.Country)
	w.eq("gender", string(f.Gender))

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM styler_profiles WHERE "+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+stylerCols+" FROM styler_profiles WHERE "+w.sql()+
			" ORDER BY "+orderBy(q.Sort, stylerSort, "created_at DESC")+" LIMIT ? OFFSET ?",
		append(w.args, q.Limit, q.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]model.StylerProfile, 0, q.Limit)
	for rows.Next() {
		p, err := scanStyler(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *StylerProfileRepo) Update(ctx context.Context, p *model.StylerProfile) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		"UPDATE styler_profiles SET name = ?, bio = ?, gender = ?, age = ?, country = ?, skin_tone = ?, updated_at = ? WHERE id = ?",
		p.Name, p.Bio, string(p.Gender), nullAge(p.Age), p.Country, string(p.SkinTone), p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	return affected(res, "styler")
}

func (r *StylerProfileRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM styler_profiles WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affected(res, "styler")
}
