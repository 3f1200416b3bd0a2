package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/stylemate/marketplace-api/internal/model"
)

const clothCols = "id, name, image, color, category, price, owner_type, owner_id, visibility, created_at, updated_at"

var clothSort = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"price":     "price",
	"color":     "color",
	"category":  "category",
}

// ClothRepo stores clothes in one of two tables with identical layout:
// partner_clothes (catalogue) or styler_clothes (personal wardrobe).
type ClothRepo struct {
	DB    *sql.DB
	table string
	what  string
}

func NewPartnerClothRepo(db *sql.DB) *ClothRepo {
	return &ClothRepo{DB: db, table: "partner_clothes", what: "cloth"}
}

func NewStylerClothRepo(db *sql.DB) *ClothRepo {
	return &ClothRepo{DB: db, table: "styler_clothes", what: "cloth"}
}

var _ ClothRepository = (*ClothRepo)(nil)

func scanCloth(s rowScanner) (model.Cloth, error) {
	var c model.Cloth
	var ownerType, vis string
	err := s.Scan(&c.ID, &c.Name, &c.Image, &c.Color, &c.Category, &c.Price,
		&ownerType, &c.OwnerID, &vis, &c.CreatedAt, &c.UpdatedAt)
	c.OwnerType, c.Visibility = model.OwnerType(ownerType), model.Visibility(vis)
	return c, err
}

func (r *ClothRepo) Create(ctx context.Context, c *model.Cloth) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO "+r.table+" ("+clothCols+") VALUES (?,?,?,?,?,?,?,?,?,?,?)",
		c.ID, c.Name, c.Image, c.Color, c.Category, c.Price,
		string(c.OwnerType), c.OwnerID, string(c.Visibility), c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *ClothRepo) GetByID(ctx context.Context, id string) (model.Cloth, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+clothCols+" FROM "+r.table+" WHERE id = ? LIMIT 1", id)
	c, err := scanCloth(row)
	return c, translate(err, r.what, "")
}

// GetByIDs returns the clothes matching ids in the order of ids. Unknown ids
// are skipped.
func (r *ClothRepo) GetByIDs(ctx context.Context, ids []string) ([]model.Cloth, error) {
	if len(ids) == 0 {
		return []model.Cloth{}, nil
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+clothCols+" FROM "+r.table+" WHERE id IN ("+placeholders(len(ids))+")", stringArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	byID := make(map[string]model.Cloth, len(ids))
	for rows.Next() {
		c, err := scanCloth(rows)
		if err != nil {
			return nil, err
		}
		byID[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := make([]model.Cloth, 0, len(byID))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *ClothRepo) List(ctx context.Context, f model.ClothFilter, q model.ListQuery) ([]model.Cloth, int, error) {
	var w where
	w.like([]string{"name", "color", "category"}, f.Search)
	w.eq("category", f.Category)
	if f.Color != "" {
		w.like([]string{"color"}, f.Color)
	}
	if f.MinPrice != nil {
		w.add("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		w.add("price <= ?", *f.MaxPrice)
	}
	w.eq("owner_id", f.OwnerID)
	w.eq("visibility", string(f.Visibility))

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+r.table+" WHERE "+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+clothCols+" FROM "+r.table+" WHERE "+w.sql()+
			" ORDER BY "+orderBy(q.Sort, clothSort, "created_at DESC")+" LIMIT ? OFFSET ?",
		append(w.args, q.Limit, q.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]model.Cloth, 0, q.Limit)
	for rows.Next() {
		c, err := scanCloth(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

// Update writes the mutable fields. Owner and owner type are fixed at creation.
func (r *ClothRepo) Update(ctx context.Context, c *model.Cloth) error {
	c.UpdatedAt = time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		"UPDATE "+r.table+" SET name = ?, image = ?, color = ?, category = ?, price = ?, visibility = ?, updated_at = ? WHERE id = ?",
		c.Name, c.Image, c.Color, c.Category, c.Price, string(c.Visibility), c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	return affected(res, r.what)
}

func (r *ClothRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM "+r.table+" WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affected(res, r.what)
}
