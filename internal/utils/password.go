package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/stylemate/marketplace-api/internal/errs"
)

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", errs.Validation("password: must be at most 72 bytes long")
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Hasher binds a bcrypt cost to the one-way credential transform.
type Hasher struct {
	Cost int
}

func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Hasher{Cost: cost}
}

func (h Hasher) Hash(plain string) (string, error) { return HashPassword(plain, h.Cost) }

func (h Hasher) Verify(plain, hash string) bool { return VerifyPassword(hash, plain) }
