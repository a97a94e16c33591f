package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, VerifyPassword(hash, "s3cret-pass"))
	assert.False(t, VerifyPassword(hash, "wrong-pass"))
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same-pass", 4)
	require.NoError(t, err)
	b, err := HashPassword("same-pass", 4)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
