package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, ComparePassword("s3cret-password", hash))
	assert.False(t, ComparePassword("wrong-password", hash))
}

func TestComparePassword_GarbageHash(t *testing.T) {
	// A corrupted stored hash must read as "no match", never an error.
	assert.False(t, ComparePassword("anything", "not-a-bcrypt-hash"))
	assert.False(t, ComparePassword("anything", ""))
}
