package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylemate/marketplace-api/internal/errs"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time { return f.t }

func TestTokenCodec_IssueVerify(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec := NewTokenCodec("secret", 0, WithTokenClock(clk.Now))
	require.Equal(t, DefaultTokenTTL, codec.TTL())

	tok, err := codec.Issue("acc-1")
	require.NoError(t, err)
	assert.Equal(t, clk.t.Add(DefaultTokenTTL), tok.ExpiresAt)

	claims, err := codec.Verify(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.Subject)
	assert.True(t, claims.ExpiresAt.Equal(tok.ExpiresAt))

	other, err := codec.Issue("acc-1")
	require.NoError(t, err)
	assert.NotEqual(t, tok.Token, other.Token)
}

func TestTokenCodec_Verify_Expired(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec := NewTokenCodec("secret", time.Hour, WithTokenClock(clk.Now))
	tok, err := codec.Issue("acc-1")
	require.NoError(t, err)

	clk.t = clk.t.Add(2 * time.Hour)
	_, err = codec.Verify(tok.Token)
	assert.ErrorIs(t, err, errs.ErrTokenExpired)
}

func TestTokenCodec_Verify_Invalid(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec("secret", time.Hour)
	foreign := NewTokenCodec("other-secret", time.Hour)
	tok, err := foreign.Issue("acc-1")
	require.NoError(t, err)

	_, err = codec.Verify(tok.Token)
	assert.ErrorIs(t, err, errs.ErrTokenInvalid)

	_, err = codec.Verify("not-a-jwt")
	assert.ErrorIs(t, err, errs.ErrTokenInvalid)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "acc-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = codec.Verify(none)
	assert.ErrorIs(t, err, errs.ErrTokenInvalid)
}

func TestTokenCodec_DecodeUnsafe(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	issuer := NewTokenCodec("other-secret", time.Hour, WithTokenClock(clk.Now))
	tok, err := issuer.Issue("acc-9")
	require.NoError(t, err)

	// Signature from a different key and a clock far in the future do not matter.
	reader := NewTokenCodec("secret", time.Hour, WithTokenClock(func() time.Time { return clk.t.Add(48 * time.Hour) }))
	claims, ok := reader.DecodeUnsafe(tok.Token)
	require.True(t, ok)
	assert.Equal(t, "acc-9", claims.Subject)
	assert.True(t, claims.ExpiresAt.Equal(tok.ExpiresAt))

	_, ok = reader.DecodeUnsafe("garbage")
	assert.False(t, ok)
}
