package services

import (
	"net/http/httptest"
	"testing"

	"hotelsite-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerTestUser(t *testing.T, svc *AuthService, username, email, password string) *models.User {
	t.Helper()
	user, fieldErrs, err := svc.Register(username, email, password)
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	require.NotNil(t, user)
	return user
}

func TestRegisterCreatesExactlyOneProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	user := registerTestUser(t, svc, "alice", "alice@example.com", "secret123")

	var profiles []models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&profiles).Error)
	require.Len(t, profiles, 1)
	assert.Empty(t, profiles[0].Avatar)
}

func TestRegisterDuplicateUsernameAndEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	registerTestUser(t, svc, "alice", "alice@example.com", "secret123")

	_, fieldErrs, err := svc.Register("alice", "other@example.com", "secret123")
	require.NoError(t, err)
	assert.Contains(t, fieldErrs, "username")

	_, fieldErrs, err = svc.Register("bob", "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Contains(t, fieldErrs, "email")
}

func TestLoginByEmailMatchesLoginByUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	registerTestUser(t, svc, "alice", "alice@example.com", "secret123")
	r := httptest.NewRequest("POST", "http://hotel.example/api/auth/login", nil)

	byUsername, err := svc.Login("alice", "secret123", r)
	require.NoError(t, err)
	byEmail, err := svc.Login("alice@example.com", "secret123", r)
	require.NoError(t, err)

	assert.Equal(t, byUsername.User, byEmail.User)
	assert.NotEmpty(t, byEmail.Access)
	assert.NotEmpty(t, byEmail.Refresh)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	registerTestUser(t, svc, "alice", "alice@example.com", "secret123")

	_, errUnknown := svc.Authenticate("nobody", "secret123")
	_, errWrongPassword := svc.Authenticate("alice", "wrong")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	// identical error, no hint which part was wrong
	assert.Equal(t, errUnknown, errWrongPassword)
}

func TestSnapshotCarriesAvatarURL(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	user := registerTestUser(t, svc, "alice", "alice@example.com", "secret123")
	require.NoError(t, db.Model(&models.Profile{}).
		Where("user_id = ?", user.ID).
		Update("avatar", "avatars/alice.png").Error)

	r := httptest.NewRequest("GET", "http://hotel.example/api/auth/me", nil)
	snap := svc.Snapshot(user, r)
	require.NotNil(t, snap.Avatar)
	assert.Equal(t, "http://hotel.example/uploads/avatars/alice.png", *snap.Avatar)
}

func TestGetOrCreateProfileBackfills(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	// user created outside the registration flow, without a profile
	user := models.User{Username: "legacy", Email: "legacy@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	profile, err := svc.GetOrCreateProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)

	again, err := svc.GetOrCreateProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, again.ID)
}
