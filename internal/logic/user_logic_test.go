package logic

import (
	"testing"

	"github.com/mk23rd/lawata-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	u := NewUserLogic(db)

	user, err := u.Register("alice@example.com", "secret123", "Alice")
	require.NoError(t, err)
	assert.NotZero(t, user.Id)
	assert.Equal(t, model.UserRoleVisitor, user.Role)
	// 只存哈希
	assert.NotEqual(t, "secret123", user.PasswordHash)

	logged, err := u.Login("alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.Id, logged.Id)

	_, err = u.Login("alice@example.com", "wrong-password")
	assert.Error(t, err)
	_, err = u.Login("nobody@example.com", "secret123")
	assert.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	u := NewUserLogic(db)

	_, err := u.Register("alice@example.com", "secret123", "Alice")
	require.NoError(t, err)
	_, err = u.Register("alice@example.com", "other-secret", "Alice Again")
	assert.Error(t, err)
}

func TestGetUser(t *testing.T) {
	db := newTestDB(t)
	u := NewUserLogic(db)

	user, err := u.Register("alice@example.com", "secret123", "Alice")
	require.NoError(t, err)

	fetched, err := u.GetUser(user.Id)
	require.NoError(t, err)
	assert.Equal(t, "Alice", fetched.Name)

	_, err = u.GetUser(9999)
	assert.Error(t, err)
}
