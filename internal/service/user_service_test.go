package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecofinds/internal/domain"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("stores a hash and hides it", func(t *testing.T) {
		user, err := f.users.Register(ctx, RegisterInput{Email: " a@example.com ", Username: "alice", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", user.Email)
		assert.Empty(t, user.PasswordHash)

		stored, err := f.store.Users().GetByEmail(ctx, "a@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "secret", stored.PasswordHash)
		assert.NotEmpty(t, stored.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := f.users.Register(ctx, RegisterInput{Email: "a@example.com", Password: "other"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := f.users.Register(ctx, RegisterInput{Password: "secret"})
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = f.users.Register(ctx, RegisterInput{Email: "b@example.com"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "a@example.com")

	token, err := f.users.Login(ctx, "a@example.com", "secret")
	require.NoError(t, err)

	subject, err := f.tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", subject)

	_, err = f.users.Login(ctx, "a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.users.Login(ctx, "nobody@example.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "a@example.com")
	f.register(t, "b@example.com")

	name := "Alice"
	updated, err := f.users.UpdateProfile(ctx, alice.ID, domain.UserPatch{Username: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Username)
	assert.Equal(t, "a@example.com", updated.Email)

	taken := "b@example.com"
	_, err = f.users.UpdateProfile(ctx, alice.ID, domain.UserPatch{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)

	blank := "  "
	_, err = f.users.UpdateProfile(ctx, alice.ID, domain.UserPatch{Email: &blank})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.users.UpdateProfile(ctx, 999, domain.UserPatch{Username: &name})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIdentityResolver(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "a@example.com")

	token, err := f.users.Login(ctx, "a@example.com", "secret")
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		user, err := f.identity.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, user.ID)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := f.identity.Resolve(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrTokenInvalid)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("email changed after issue", func(t *testing.T) {
		email := "alice@example.com"
		_, err := f.users.UpdateProfile(ctx, alice.ID, domain.UserPatch{Email: &email})
		require.NoError(t, err)

		_, err = f.identity.Resolve(ctx, token)
		assert.ErrorIs(t, err, ErrIdentityNotFound)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}
