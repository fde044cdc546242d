package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("longpass")
	require.NoError(t, err)
	assert.NotEqual(t, "longpass", hash)

	assert.NoError(t, h.Compare(hash, "longpass"))
	assert.ErrorIs(t, h.Compare(hash, "wrongpass"), bcrypt.ErrMismatchedHashAndPassword)
}

func TestNewBcryptHasher_OutOfRangeCostFallsBack(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(1).cost)
	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(99).cost)
}

func TestBcryptHasher_LongPasswords(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, n := range []int{72, 73, 100} {
		password := strings.Repeat("p", n)

		hash, err := h.Hash(password)
		require.NoError(t, err, n)
		assert.NoError(t, h.Compare(hash, password), n)
	}
}

func TestBcryptHasher_IgnoresBytesPastLimit(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	prefix := strings.Repeat("a", MaxPasswordBytes)

	hash, err := h.Hash(prefix + "first-tail")
	require.NoError(t, err)

	assert.NoError(t, h.Compare(hash, prefix+"other-tail"))
	assert.ErrorIs(t, h.Compare(hash, prefix[:MaxPasswordBytes-1]), bcrypt.ErrMismatchedHashAndPassword)
}
