package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	first, err := h.Hash("s3cret")
	require.NoError(t, err)
	second, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "hashes must be salted")

	ok, err := h.Verify("s3cret", first)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", first)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = h.Verify("s3cret", "not-a-bcrypt-hash")
	assert.Error(t, err)
}

func TestNewPasswordHasherFallsBackToDefaultCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).Cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(bcrypt.MaxCost+1).Cost)
	assert.Equal(t, 12, NewPasswordHasher(12).Cost)
}
