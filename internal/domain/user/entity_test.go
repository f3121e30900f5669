package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewUser(t *testing.T) {
	t.Run("creates member with lowercased email", func(t *testing.T) {
		u, err := NewUser("Alice@Example.COM", "Alice", "pw123", bcrypt.MinCost)
		require.NoError(t, err)

		assert.Equal(t, "alice@example.com", u.Email())
		assert.Equal(t, "Alice", u.Name())
		assert.Equal(t, RoleMember, u.Role())
		assert.False(t, u.IsAdmin())
		assert.NotEmpty(t, u.ID())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		cases := []struct {
			name     string
			email    string
			username string
			password string
			want     error
		}{
			{"missing email", "", "Alice", "pw123", ErrEmailRequired},
			{"bad email", "not-an-email", "Alice", "pw123", ErrEmailInvalid},
			{"missing name", "a@b.com", "", "pw123", ErrNameRequired},
			{"short name", "a@b.com", "A", "pw123", ErrNameTooShort},
			{"missing password", "a@b.com", "Alice", "", ErrPasswordRequired},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := NewUser(tc.email, tc.username, tc.password, bcrypt.MinCost)
				assert.ErrorIs(t, err, tc.want)
			})
		}
	})
}

func TestCheckPassword(t *testing.T) {
	u, err := NewUser("a@b.com", "Alice", "pw123", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, u.CheckPassword("pw123"))
	assert.Error(t, u.CheckPassword("wrong"))
	assert.NotEqual(t, "pw123", u.PasswordHash())
}

func TestUpdatePassword(t *testing.T) {
	u, err := NewUser("a@b.com", "Alice", "old-password", bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, u.UpdatePassword("new-password", bcrypt.MinCost))
	assert.Error(t, u.CheckPassword("old-password"))
	assert.NoError(t, u.CheckPassword("new-password"))

	assert.ErrorIs(t, u.UpdatePassword("", bcrypt.MinCost), ErrPasswordRequired)
}

func TestPromote(t *testing.T) {
	u, err := NewUser("a@b.com", "Alice", "pw123", bcrypt.MinCost)
	require.NoError(t, err)

	u.Promote()
	assert.Equal(t, RoleAdmin, u.Role())
	assert.True(t, u.IsAdmin())
}

func TestRecordLogin(t *testing.T) {
	u, err := NewUser("a@b.com", "Alice", "pw123", bcrypt.MinCost)
	require.NoError(t, err)
	require.Nil(t, u.LastLoginAt())

	u.RecordLogin()
	require.NotNil(t, u.LastLoginAt())
}

func TestReconstruct(t *testing.T) {
	original, err := NewUser("a@b.com", "Alice", "pw123", bcrypt.MinCost)
	require.NoError(t, err)

	rebuilt := Reconstruct(
		original.ID(),
		original.Email(),
		original.Name(),
		original.PasswordHash(),
		original.Role(),
		original.CreatedAt(),
		original.UpdatedAt(),
		original.LastLoginAt(),
	)

	assert.Equal(t, original.ID(), rebuilt.ID())
	assert.Equal(t, original.Email(), rebuilt.Email())
	assert.NoError(t, rebuilt.CheckPassword("pw123"))
}
