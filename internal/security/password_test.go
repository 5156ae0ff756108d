package security_test

import (
	"testing"

	"collecto-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := security.HashPassword("StrongPass123!")
	require.NoError(t, err)

	assert.NotEqual(t, "StrongPass123!", hash)
	assert.True(t, security.CheckPassword("StrongPass123!", hash))
}

func TestCheckPassword_WrongPassword(t *testing.T) {
	hash, err := security.HashPassword("StrongPass123!")
	require.NoError(t, err)

	assert.False(t, security.CheckPassword("WrongPass", hash))
	assert.False(t, security.CheckPassword("", hash))
}

func TestHashPassword_DifferentSalts(t *testing.T) {
	first, err := security.HashPassword("StrongPass123!")
	require.NoError(t, err)
	second, err := security.HashPassword("StrongPass123!")
	require.NoError(t, err)

	// одинаковые пароли дают разные хэши из-за соли
	assert.NotEqual(t, first, second)
}
