package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/stylemate/marketplace-api/internal/model"
)

const occasionCols = "id, user_id, title, type, date, location, dress_code, notes, created_at"

var occasionSort = map[string]string{
	"date":      "date",
	"createdAt": "created_at",
	"title":     "title",
	"type":      "type",
}

// OccasionRepo keeps occasions and their ordered clothes list. The list
// lives in occasion_clothes and is rewritten as a whole on update.
type OccasionRepo struct{ DB *sql.DB }

func NewOccasionRepo(db *sql.DB) *OccasionRepo { return &OccasionRepo{DB: db} }

var _ OccasionRepository = (*OccasionRepo)(nil)

func scanOccasion(s rowScanner) (model.Occasion, error) {
	var o model.Occasion
	err := s.Scan(&o.ID, &o.UserID, &o.Title, &o.Type, &o.Date, &o.Location, &o.DressCode, &o.Notes, &o.CreatedAt)
	o.ClothesList = []string{}
	return o, err
}

func (r *OccasionRepo) Create(ctx context.Context, o *model.Occasion) (err error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	o.CreatedAt = time.Now().UTC()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		"INSERT INTO occasions ("+occasionCols+") VALUES (?,?,?,?,?,?,?,?,?)",
		o.ID, o.UserID, o.Title, o.Type, o.Date, o.Location, o.DressCode, o.Notes, o.CreatedAt); err != nil {
		return err
	}
	return insertOccasionClothes(ctx, tx, o.ID, o.ClothesList)
}

func insertOccasionClothes(ctx context.Context, tx *sql.Tx, occasionID string, clothIDs []string) error {
	for i, cid := range clothIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO occasion_clothes (occasion_id, cloth_id, position) VALUES (?,?,?)",
			occasionID, cid, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *OccasionRepo) GetByID(ctx context.Context, id string) (model.Occasion, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+occasionCols+" FROM occasions WHERE id = ? LIMIT 1", id)
	o, err := scanOccasion(row)
	if err != nil {
		return o, translate(err, "occasion", "")
	}
	lists, err := r.clothesFor(ctx, []string{o.ID})
	if err != nil {
		return o, err
	}
	if l, ok := lists[o.ID]; ok {
		o.ClothesList = l
	}
	return o, nil
}

func (r *OccasionRepo) List(ctx context.Context, f model.OccasionFilter, q model.ListQuery) ([]model.Occasion, int, error) {
	var w where
	w.eq("user_id", f.UserID)
	w.eq("type", f.Type)

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM occasions WHERE "+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+occasionCols+" FROM occasions WHERE "+w.sql()+
			" ORDER BY "+orderBy(q.Sort, occasionSort, "date DESC")+" LIMIT ? OFFSET ?",
		append(w.args, q.Limit, q.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Occasion, 0, q.Limit)
	ids := make([]string, 0, q.Limit)
	for rows.Next() {
		o, err := scanOccasion(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	lists, err := r.clothesFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range out {
		if l, ok := lists[out[i].ID]; ok {
			out[i].ClothesList = l
		}
	}
	return out, total, nil
}

func (r *OccasionRepo) Update(ctx context.Context, o *model.Occasion) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"UPDATE occasions SET title = ?, type = ?, date = ?, location = ?, dress_code = ?, notes = ? WHERE id = ?",
		o.Title, o.Type, o.Date, o.Location, o.DressCode, o.Notes, o.ID)
	if err != nil {
		return err
	}
	if err = affected(res, "occasion"); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM occasion_clothes WHERE occasion_id = ?", o.ID); err != nil {
		return err
	}
	return insertOccasionClothes(ctx, tx, o.ID, o.ClothesList)
}

// Delete removes the occasion; occasion_clothes rows cascade.
func (r *OccasionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM occasions WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affected(res, "occasion")
}

func (r *OccasionRepo) clothesFor(ctx context.Context, occasionIDs []string) (map[string][]string, error) {
	out := make(map[string][]string, len(occasionIDs))
	if len(occasionIDs) == 0 {
		return out, nil
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT occasion_id, cloth_id FROM occasion_clothes WHERE occasion_id IN ("+
			placeholders(len(occasionIDs))+") ORDER BY occasion_id, position",
		stringArgs(occasionIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var oid, cid string
		if err := rows.Scan(&oid, &cid); err != nil {
			return nil, err
		}
		out[oid] = append(out[oid], cid)
	}
	return out, rows.Err()
}
