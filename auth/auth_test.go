package auth

import (
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestIssuer(t *testing.T) {
	user := &storage.User{ID: 7, Username: "max_leader", Role: storage.RoleLeader}

	t.Run("Happy path - issue then parse", func(t *testing.T) {
		i := NewIssuer("secret", time.Hour)
		token, err := i.Issue(user)
		require.NoError(t, err)

		claims, err := i.Parse(token)
		require.NoError(t, err)
		id, err := claims.UserID()
		require.NoError(t, err)
		assert.Equal(t, 7, id)
		assert.Equal(t, storage.RoleLeader, claims.Role)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("Unhappy path - wrong secret", func(t *testing.T) {
		token, err := NewIssuer("secret", time.Hour).Issue(user)
		require.NoError(t, err)
		_, err = NewIssuer("other", time.Hour).Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Unhappy path - expired token", func(t *testing.T) {
		i := NewIssuer("secret", time.Minute)
		i.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, err := i.Issue(user)
		require.NoError(t, err)

		_, err = NewIssuer("secret", time.Minute).Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Unhappy path - garbage", func(t *testing.T) {
		_, err := NewIssuer("secret", 0).Parse("user_1_12345")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)
	assert.True(t, CheckPassword(hash, "admin123"))
	assert.False(t, CheckPassword(hash, "admin124"))
}
