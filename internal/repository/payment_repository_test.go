package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylemate/marketplace-api/internal/errs"
	"github.com/stylemate/marketplace-api/internal/model"
)

var paymentColumns = []string{"id", "user_id", "amount", "currency", "method", "status", "description", "created_at", "updated_at"}

func TestPaymentRepo_Create(t *testing.T) {
	t.Parallel()
	db, mock := newMock(t)
	repo := NewPaymentRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments")).
		WithArgs(sqlmock.AnyArg(), "u-1", 49.5, "USD", "card", "pending", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	p := &model.Payment{UserID: "u-1", Amount: 49.5, Currency: "USD", Method: model.MethodCard, Status: model.StatusPending}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestPaymentRepo_ListScopedByUserAndStatus(t *testing.T) {
	t.Parallel()
	db, mock := newMock(t)
	repo := NewPaymentRepo(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM payments WHERE user_id = ? AND status = ?")).
		WithArgs("u-1", "completed").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY amount ASC, id DESC LIMIT ? OFFSET ?")).
		WithArgs("u-1", "completed", 2, 2).
		WillReturnRows(sqlmock.NewRows(paymentColumns).
			AddRow("p-3", "u-1", 10.0, "USD", "paypal", "completed", "tip", now, now))

	q := model.NewListQuery(2, 2, model.DefaultPageLimit, model.MaxPageLimit, model.ParseSort("amount:asc"))
	items, total, err := repo.List(context.Background(), model.PaymentFilter{UserID: "u-1", Status: model.StatusCompleted}, q)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 1)
	assert.Equal(t, model.MethodPayPal, items[0].Method)
}

func TestPaymentRepo_MissingRows(t *testing.T) {
	t.Parallel()
	db, mock := newMock(t)
	repo := NewPaymentRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE id = ?")).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(paymentColumns))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM payments WHERE id = ?")).
		WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), "nope"), errs.ErrNotFound)
}
