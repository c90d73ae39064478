package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseforge/internal/models"
	"caseforge/internal/services"
	"caseforge/internal/tests/mocks"
)

func newAuthFixture() (services.AuthService, map[string]*models.User) {
	store := map[string]*models.User{}
	users := &mocks.UserRepository{
		CreateFn: func(u *models.User) error {
			store[u.Username] = u
			return nil
		},
		FindByUsernameFn: func(username string) (*models.User, error) {
			return store[username], nil
		},
	}
	return services.NewAuthService(users, "test-secret", time.Hour), store
}

func TestRegisterLoginVerifyRoundTrip(t *testing.T) {
	auth, store := newAuthFixture()

	user, err := auth.Register("alice", "alice@example.com", "s3cret", "")
	require.NoError(t, err)
	assert.Equal(t, "user", user.Role)
	assert.NotEqual(t, "s3cret", store["alice"].PasswordHash, "password must be hashed")

	logged, token, err := auth.Login("alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", logged.Username)
	require.NotEmpty(t, token)

	username, role, err := auth.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
	assert.Equal(t, "user", role)
}

func TestLoginWrongPassword(t *testing.T) {
	auth, _ := newAuthFixture()
	_, err := auth.Register("alice", "", "right", "")
	require.NoError(t, err)

	_, _, err = auth.Login("alice", "wrong")
	assert.ErrorIs(t, err, services.ErrAccessDenied)
}

func TestLoginUnknownUser(t *testing.T) {
	auth, _ := newAuthFixture()

	_, _, err := auth.Login("ghost", "pw")
	assert.ErrorIs(t, err, services.ErrAccessDenied)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	auth, _ := newAuthFixture()
	_, err := auth.Register("alice", "", "pw", "")
	require.NoError(t, err)

	_, err = auth.Register("alice", "", "other", "")
	assert.ErrorIs(t, err, services.ErrAlreadyExists)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	auth, _ := newAuthFixture()

	_, _, err := auth.Verify("not-a-token")
	assert.ErrorIs(t, err, services.ErrAccessDenied)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	authA, _ := newAuthFixture()
	store := map[string]*models.User{}
	users := &mocks.UserRepository{
		CreateFn: func(u *models.User) error {
			store[u.Username] = u
			return nil
		},
		FindByUsernameFn: func(username string) (*models.User, error) {
			return store[username], nil
		},
	}
	authB := services.NewAuthService(users, "different-secret", time.Hour)

	_, err := authB.Register("alice", "", "pw", "")
	require.NoError(t, err)
	_, token, err := authB.Login("alice", "pw")
	require.NoError(t, err)

	_, _, err = authA.Verify(token)
	assert.ErrorIs(t, err, services.ErrAccessDenied)
}
