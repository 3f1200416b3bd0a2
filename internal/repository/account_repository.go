package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/stylemate/marketplace-api/internal/errs"
	"github.com/stylemate/marketplace-api/internal/model"
)

const accountCols = "id, email, password_hash, role, is_approved, created_at, updated_at"

var accountSort = map[string]string{
	"createdAt": "created_at",
	"email":     "email",
	"role":      "role",
}

type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

var _ AccountRepository = (*AccountRepo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(s rowScanner) (model.Account, error) {
	var a model.Account
	var role string
	err := s.Scan(&a.ID, &a.Email, &a.PasswordHash, &role, &a.IsApproved, &a.CreatedAt, &a.UpdatedAt)
	a.Role = model.Role(role)
	return a, err
}

// Create inserts the account. ID and timestamps are filled when empty and
// the email is normalized.
func (r *AccountRepo) Create(ctx context.Context, a *model.Account) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	a.Email = model.NormalizeEmail(a.Email)
	a.CreatedAt, a.UpdatedAt = now, now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO accounts ("+accountCols+") VALUES (?,?,?,?,?,?,?)",
		a.ID, a.Email, a.PasswordHash, string(a.Role), a.IsApproved, a.CreatedAt, a.UpdatedAt)
	return translate(err, "user", "email")
}

// GetByEmail fetches an account by normalized email.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+accountCols+" FROM accounts WHERE email = ? LIMIT 1", model.NormalizeEmail(email))
	a, err := scanAccount(row)
	return a, translate(err, "user", "")
}

func (r *AccountRepo) GetByID(ctx context.Context, id string) (model.Account, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+accountCols+" FROM accounts WHERE id = ? LIMIT 1", id)
	a, err := scanAccount(row)
	return a, translate(err, "user", "")
}

// GetByIDs loads the accounts referenced by ids, keyed by id. Missing ids are
// simply absent from the map.
func (r *AccountRepo) GetByIDs(ctx context.Context, ids []string) (map[string]model.Account, error) {
	out := make(map[string]model.Account, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+accountCols+" FROM accounts WHERE id IN ("+placeholders(len(ids))+")", stringArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out[a.ID] = a
	}
	return out, rows.Err()
}

func (r *AccountRepo) CountApprovedAdmins(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM accounts WHERE role = ? AND is_approved = 1", string(model.RoleAdmin)).Scan(&n)
	return n, err
}

// ListPending returns unapproved partners and admins, newest first.
func (r *AccountRepo) ListPending(ctx context.Context) ([]model.Account, error) {
	return r.query(ctx,
		"SELECT "+accountCols+" FROM accounts WHERE is_approved = 0 AND role IN (?, ?) ORDER BY created_at DESC, id DESC",
		string(model.RolePartner), string(model.RoleAdmin))
}

// ListApprovedPartners backs the public partner directory.
func (r *AccountRepo) ListApprovedPartners(ctx context.Context) ([]model.Account, error) {
	return r.query(ctx,
		"SELECT "+accountCols+" FROM accounts WHERE is_approved = 1 AND role = ? ORDER BY created_at DESC, id DESC",
		string(model.RolePartner))
}

func (r *AccountRepo) List(ctx context.Context, f model.AccountFilter, q model.ListQuery) ([]model.Account, int, error) {
	var w where
	if f.Email != "" {
		w.like([]string{"email"}, f.Email)
	}
	w.eq("role", string(f.Role))

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts WHERE "+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	items, err := r.query(ctx,
		"SELECT "+accountCols+" FROM accounts WHERE "+w.sql()+
			" ORDER BY "+orderBy(q.Sort, accountSort, "created_at DESC")+" LIMIT ? OFFSET ?",
		append(w.args, q.Limit, q.Offset())...)
	return items, total, err
}

// Approve only touches rows still pending, which keeps the transition one-way
// even when two admins approve the same account at once.
func (r *AccountRepo) Approve(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE accounts SET is_approved = 1, updated_at = ? WHERE id = ? AND is_approved = 0",
		time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return errs.BadRequest("user is already approved")
	}
	return nil
}

// UpdateCredentials persists email and password hash. Role and approval are
// never written here.
func (r *AccountRepo) UpdateCredentials(ctx context.Context, a *model.Account) error {
	a.Email = model.NormalizeEmail(a.Email)
	a.UpdatedAt = time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		"UPDATE accounts SET email = ?, password_hash = ?, updated_at = ? WHERE id = ?",
		a.Email, a.PasswordHash, a.UpdatedAt, a.ID)
	if err != nil {
		return translate(err, "user", "email")
	}
	return affected(res, "user")
}

func (r *AccountRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM accounts WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affected(res, "user")
}

func (r *AccountRepo) query(ctx context.Context, q string, args ...any) ([]model.Account, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
