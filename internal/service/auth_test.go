package service

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealdeck/recipebook-back/internal/db"
)

func TestRegisterAndLogin(t *testing.T) {
	conn := newTestDB(t)
	svc := NewAuth(conn, newTestLogger())

	token, err := svc.Register(RegisterInput{
		Email:     "alice@example.com",
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Smith",
		Password:  "correct horse battery",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user := db.User{}
	require.NoError(t, conn.Where("token = ?", token).First(&user).Error)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "correct horse battery", user.Password)

	fresh, err := svc.Login("alice@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, fresh)
	assert.NotEqual(t, token, fresh)

	_, err = svc.Login("alice@example.com", "wrong")
	assert.True(t, errors.Is(err, ErrLoginPasswordDoesNotMatch))

	_, err = svc.Login("nobody@example.com", "whatever")
	assert.True(t, errors.Is(err, ErrLoginUserNotFound))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	conn := newTestDB(t)
	svc := NewAuth(conn, newTestLogger())

	in := RegisterInput{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "correct horse battery",
	}
	_, err := svc.Register(in)
	require.NoError(t, err)

	in.Username = "alice2"
	_, err = svc.Register(in)
	assert.True(t, errors.Is(err, ErrAlreadyExists))
}
