package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_SaltedAndVerifiable(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("pw1")
	require.NoError(t, err)
	second, err := h.Hash("pw1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "pw1")
	assert.True(t, h.Verify("pw1", first))
	assert.True(t, h.Verify("pw1", second))
	assert.False(t, h.Verify("pw2", first))
	assert.False(t, h.Verify("pw1", "not-a-hash"))
}

func TestNewBcryptHasher_OutOfRangeCost(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(0).Cost)
	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(bcrypt.MaxCost+1).Cost)
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(bcrypt.MinCost).Cost)
}

func TestBcryptHasher_LongPasswordTruncated(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	long := strings.Repeat("a", 80)

	hash, err := h.Hash(long)
	require.NoError(t, err)

	assert.True(t, h.Verify(long, hash))
	assert.True(t, h.Verify(long[:72], hash))
	assert.True(t, h.Verify(long[:72]+"zzzzzzzz", hash))
	assert.False(t, h.Verify(long[:71], hash))
}
