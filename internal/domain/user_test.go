package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("  Alice_01 ", "")
	require.NoError(t, err)

	assert.Equal(t, "alice_01", u.DisplayName)
	assert.Equal(t, RoleBasic, u.Role)
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.IsModerator())
}

func TestNewUser_Moderator(t *testing.T) {
	u, err := NewUser("mod", RoleModerator)
	require.NoError(t, err)
	assert.True(t, u.IsModerator())
}

func TestNewUser_Invalid(t *testing.T) {
	for _, name := range []string{"", "a", "has space", "-dash", "way_too_long_for_a_display_name_really"} {
		_, err := NewUser(name, RoleBasic)
		assert.Error(t, err, name)
	}
}
