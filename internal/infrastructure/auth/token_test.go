package auth

import (
	"testing"
	"time"

	"github.com/hilthontt/roomly/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	user := &domain.User{ID: "u1", DisplayName: "mod", Role: domain.RoleModerator}
	token, err := m.Issue(user)
	require.NoError(t, err)

	caller, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, &domain.Caller{ID: "u1", Role: domain.RoleModerator}, caller)
}

func TestTokenManager_Rejects(t *testing.T) {
	m, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	token, err := m.Issue(&domain.User{ID: "u1", Role: domain.RoleBasic})
	require.NoError(t, err)

	t.Run("other secret", func(t *testing.T) {
		other, err := NewTokenManager("other", time.Hour)
		require.NoError(t, err)

		_, err = other.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { m.now = time.Now }()

		_, err := m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestIssue_RequiresUser(t *testing.T) {
	m, err := NewTokenManager("secret", 0)
	require.NoError(t, err)

	_, err = m.Issue(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
