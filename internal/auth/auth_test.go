package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/RajatSinghRajawat/maanvibackend/internal/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewTokens_EmptySecret(t *testing.T) {
	t.Parallel()

	tokens, err := auth.NewTokens("", time.Hour)

	require.ErrorIs(t, err, auth.ErrEmptySecret)
	assert.Nil(t, tokens)
}

func TestTokens(t *testing.T) {
	t.Parallel()
	adminID := uuid.New()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		tokens, err := auth.NewTokens("test-secret", 30*24*time.Hour)
		require.NoError(t, err)

		token, err := tokens.Issue(adminID)
		require.NoError(t, err)

		got, err := tokens.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, adminID, got)
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		issuer, err := auth.NewTokens("secret-a", time.Hour)
		require.NoError(t, err)
		verifier, err := auth.NewTokens("secret-b", time.Hour)
		require.NoError(t, err)

		token, err := issuer.Issue(adminID)
		require.NoError(t, err)

		_, err = verifier.Parse(token)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		tokens, err := auth.NewTokens("test-secret", time.Hour)
		require.NoError(t, err)
		past := tokens.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })

		token, err := past.Issue(adminID)
		require.NoError(t, err)

		_, err = tokens.Parse(token)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("fixed clock in the past", func(t *testing.T) {
		t.Parallel()
		tokens, err := auth.NewTokens("test-secret", time.Hour)
		require.NoError(t, err)
		issuedAt := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
		fixed := tokens.WithClock(func() time.Time { return issuedAt })

		token, err := fixed.Issue(adminID)
		require.NoError(t, err)

		got, err := fixed.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, adminID, got)

		later := tokens.WithClock(func() time.Time { return issuedAt.Add(time.Hour) })
		_, err = later.Parse(token)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()
		tokens, err := auth.NewTokens("test-secret", time.Hour)
		require.NoError(t, err)

		_, err = tokens.Parse("not.a.token")
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestPasswords(t *testing.T) {
	t.Parallel()
	passwords := auth.NewPasswords(bcrypt.MinCost)

	hash, err := passwords.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	ok, err := passwords.Matches(hash, "s3cret!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = passwords.Matches(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = passwords.Matches("not-a-hash", "s3cret!")
	require.Error(t, err)

	_, err = passwords.Hash(strings.Repeat("x", auth.MaxPasswordBytes+1))
	require.ErrorIs(t, err, auth.ErrPasswordTooLong)

	_, err = passwords.Hash(strings.Repeat("x", auth.MaxPasswordBytes))
	require.NoError(t, err)
}
