package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/stylemate/marketplace-api/internal/model"
)

const paymentCols = "id, user_id, amount, currency, method, status, description, created_at, updated_at"

var paymentSort = map[string]string{
	"createdAt": "created_at",
	"amount":    "amount",
	"status":    "status",
}

type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

var _ PaymentRepository = (*PaymentRepo)(nil)

func scanPayment(s rowScanner) (model.Payment, error) {
	var p model.Payment
	var method, status string
	err := s.Scan(&p.ID, &p.UserID, &p.Amount, &p.Currency, &method, &status, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	p.Method, p.Status = model.PaymentMethod(method), model.PaymentStatus(status)
	return p, err
}

func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO payments ("+paymentCols+") VALUES (?,?,?,?,?,?,?,?,?)",
		p.ID, p.UserID, p.Amount, p.Currency, string(p.Method), string(p.Status), p.Description, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (model.Payment, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+paymentCols+" FROM payments WHERE id = ? LIMIT 1", id)
	p, err := scanPayment(row)
	return p, translate(err, "payment", "")
}

func (r *PaymentRepo) List(ctx context.Context, f model.PaymentFilter, q model.ListQuery) ([]model.Payment, int, error) {
	var w where
	w.eq("user_id", f.UserID)
	w.eq("status", string(f.Status))

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM payments WHERE "+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+paymentCols+" FROM payments WHERE "+w.sql()+
			" ORDER BY "+orderBy(q.Sort, paymentSort, "created_at DESC")+" LIMIT ? OFFSET ?",
		append(w.args, q.Limit, q.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]model.Payment, 0, q.Limit)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *PaymentRepo) Update(ctx context.Context, p *model.Payment) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		"UPDATE payments SET amount = ?, currency = ?, method = ?, status = ?, description = ?, updated_at = ? WHERE id = ?",
		p.Amount, p.Currency, string(p.Method), string(p.Status), p.Description, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	return affected(res, "payment")
}

func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affected(res, "payment")
}
