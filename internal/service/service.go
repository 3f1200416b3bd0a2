// Package service holds the application logic between HTTP handlers and
// repositories. Every method that touches an owned resource takes the
// caller's access.Principal explicitly.
package service

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stylemate/marketplace-api/internal/errs"
	"github.com/stylemate/marketplace-api/internal/model"
	"github.com/stylemate/marketplace-api/internal/queue"
	"github.com/stylemate/marketplace-api/internal/repository"
)

// EventPublisher delivers account lifecycle events.
type EventPublisher interface {
	PublishAccountEvent(ctx context.Context, ev queue.AccountEvent) error
}

// checkID rejects identifiers that cannot exist before touching storage.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errs.ErrInvalidID
	}
	return nil
}

// validationError turns ozzo field errors into a single ValidationError.
func validationError(err error) error {
	if err == nil {
		return nil
	}
	var ie validation.InternalError
	if errors.As(err, &ie) {
		return ie
	}
	return errs.Validation(err.Error())
}

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// passwordBytes caps a password at maxPasswordBytes. Length counts runes,
// bcrypt counts bytes.
var passwordBytes = validation.By(func(v any) error {
	v, _ = validation.Indirect(v)
	if s, _ := v.(string); len(s) > maxPasswordBytes {
		return errors.New("must be at most 72 bytes long")
	}
	return nil
})

// summaries loads the redacted owner view for every id in ids.
func summaries(ctx context.Context, accounts repository.AccountRepository, ids []string) (map[string]*model.AccountSummary, error) {
	seen := make(map[string]struct{}, len(ids))
	uniq := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}
	found, err := accounts.GetByIDs(ctx, uniq)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*model.AccountSummary, len(found))
	for id, a := range found {
		out[id] = a.Summary()
	}
	return out, nil
}

func publish(ctx context.Context, events EventPublisher, log *zap.Logger, ev queue.AccountEvent) {
	if events == nil {
		return
	}
	if err := events.PublishAccountEvent(ctx, ev); err != nil {
		log.Warn("publish account event", zap.String("type", ev.Type), zap.String("account_id", ev.AccountID), zap.Error(err))
	}
}
