package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cretpass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpass", hash)

	assert.True(t, CheckPassword(hash, "s3cretpass"))
	assert.False(t, CheckPassword(hash, "wrongpass1"))
	assert.False(t, CheckPassword("not-a-hash", "s3cretpass"))
}

func TestCheckPasswordStrength(t *testing.T) {
	assert.NoError(t, CheckPasswordStrength("abcdefg1"))
	assert.EqualError(t, CheckPasswordStrength("ab1"), "password must be at least 8 characters long")
	assert.EqualError(t, CheckPasswordStrength("12345678"), "password must contain at least one letter")
	assert.EqualError(t, CheckPasswordStrength("abcdefgh"), "password must contain at least one digit")
}
