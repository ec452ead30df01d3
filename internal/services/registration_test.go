package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/libris/internal/auth"
	userRepo "github.com/mrlokans/libris/internal/database/users"
	"github.com/mrlokans/libris/internal/entities"
)

func TestRegistrationService_Register(t *testing.T) {
	env := setupEnv(t)

	user, err := env.registration.Register(RegisterInput{
		Name:        "Alice",
		Email:       "alice@example.com",
		PhoneNumber: "+1 555 0100",
		Password:    "pw",
		Role:        entities.UserRoleAdmin,
	})
	require.NoError(t, err)

	_, err = uuid.Parse(user.Handle)
	assert.NoError(t, err, "handle is a generated UUID")
	assert.Equal(t, entities.UserRoleUser, user.Role, "self-registration always yields a reader")
	assert.Equal(t, "pw", user.Password)

	stored, err := env.users.GetByHandle(user.Handle)
	require.NoError(t, err)
	assert.Equal(t, "+1 555 0100", stored.PhoneNumber)
}

func TestRegistrationService_DuplicateEmail(t *testing.T) {
	env := setupEnv(t)
	input := RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "pw"}

	_, err := env.registration.Register(input)
	require.NoError(t, err)

	_, err = env.registration.Register(input)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegistrationService_Validation(t *testing.T) {
	env := setupEnv(t)

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"missing name", RegisterInput{Email: "a@example.com", Password: "pw"}},
		{"missing password", RegisterInput{Name: "A", Email: "a@example.com"}},
		{"bad email", RegisterInput{Name: "A", Email: "not-an-email", Password: "pw"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.registration.Register(tt.input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRegistrationService_CreateUser(t *testing.T) {
	env := setupEnv(t)

	user, err := env.registration.CreateUser(RegisterInput{
		Handle:   "kim",
		Name:     "Kim",
		Email:    "kim@example.com",
		Password: "pw",
		Role:     entities.UserRoleCreator,
	})
	require.NoError(t, err)
	assert.Equal(t, "kim", user.Handle)
	assert.Equal(t, entities.UserRoleCreator, user.Role)

	_, err = env.registration.CreateUser(RegisterInput{
		Handle: "admin", Name: "Fake", Email: "fake@example.com", Password: "pw", Role: entities.UserRoleAdmin,
	})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = env.registration.CreateUser(RegisterInput{
		Handle: "x", Name: "X", Email: "x@example.com", Password: "pw", Role: "superuser",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegistrationService_BcryptPasswords(t *testing.T) {
	env := setupEnv(t)
	scheme := auth.BcryptScheme{Cost: 4}
	registration := NewRegistrationService(env.users, scheme)

	user, err := registration.Register(RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)

	assert.NotEqual(t, "pw", user.Password)
	assert.True(t, scheme.Matches("pw", user.Password))
}

// staleUserStore answers existence checks as if no user existed yet, like a
// request that raced another registration for the same email.
type staleUserStore struct {
	*userRepo.Repository
}

func (staleUserStore) ExistsByHandleOrEmail(string, string) (bool, error) {
	return false, nil
}

func TestRegistrationService_ConcurrentDuplicateEmail(t *testing.T) {
	env := setupEnv(t)
	registration := NewRegistrationService(staleUserStore{env.users}, auth.PlaintextScheme{})
	input := RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "pw"}

	_, err := registration.Register(input)
	require.NoError(t, err)

	_, err = registration.Register(input)
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.ErrorIs(t, err, ErrConflict)
}
