package services

import (
	"testing"

	"resort-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	createTestUser(t, db, "guest@example.com")

	user, err := svc.Authenticate("guest@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", user.Email)

	// same error for wrong password and unknown email
	_, err = svc.Authenticate("guest@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, IsBusinessRule(err))
	wrongPass := err.Error()

	_, err = svc.Authenticate("nobody@example.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, wrongPass, err.Error())
}

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Register(RegisterRequest{
		FullName: "New Guest",
		Username: "newguest",
		Email:    "new@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.True(t, user.HasRole(models.RoleGuest))
	assert.NotEqual(t, "secret123", user.Password)

	_, err = svc.Register(RegisterRequest{
		FullName: "Short Password",
		Username: "shorty",
		Email:    "short@example.com",
		Password: "12345",
	})
	assert.True(t, IsValidation(err))

	_, err = svc.Register(RegisterRequest{
		FullName: "Bad Email",
		Username: "bademail",
		Email:    "not-an-email",
		Password: "secret123",
	})
	assert.True(t, IsValidation(err))

	// duplicate username/email stays generic
	_, err = svc.Register(RegisterRequest{
		FullName: "Duplicate",
		Username: "newguest",
		Email:    "new@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.True(t, IsBusinessRule(err))
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "guest@example.com")
	createTestUser(t, db, "other@example.com")

	err := svc.UpdateProfile(user, ProfileUpdate{
		FullName: "Renamed Guest",
		Username: "renamed",
		Email:    "renamed@example.com",
	})
	require.NoError(t, err)

	reloaded, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Guest", reloaded.FullName)
	assert.Equal(t, "renamed@example.com", reloaded.Email)

	// taking another user's email fails with the generic message
	err = svc.UpdateProfile(user, ProfileUpdate{
		FullName: "Renamed Guest",
		Username: "renamed",
		Email:    "other@example.com",
	})
	require.Error(t, err)
	assert.True(t, IsBusinessRule(err))
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "guest@example.com")

	err := svc.ChangePassword(user, "wrong", "newsecret")
	assert.True(t, IsBusinessRule(err))

	err = svc.ChangePassword(user, "secret123", "123")
	assert.True(t, IsValidation(err))

	require.NoError(t, svc.ChangePassword(user, "secret123", "newsecret"))

	_, err = svc.Authenticate("guest@example.com", "newsecret")
	assert.NoError(t, err)
}
