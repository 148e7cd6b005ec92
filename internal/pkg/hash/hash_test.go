package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcrypt(t *testing.T) {
	h := NewBcrypt(4, "pepper")

	long := strings.Repeat("a", 72)
	digest, err := h.Hash(long)
	require.NoError(t, err)

	assert.True(t, h.Verify(string(digest), long))
	assert.False(t, h.Verify(string(digest), long[:71]))
	assert.False(t, h.Verify("", long))

	other := NewBcrypt(4, "other-pepper")
	assert.False(t, other.Verify(string(digest), long))
}

func TestBcryptFallsBackToDefaultCost(t *testing.T) {
	h := NewBcrypt(99, "")
	assert.Equal(t, 10, h.cost)
}

func TestArgon2id(t *testing.T) {
	h := NewArgon2idWithParams("pepper", Argon2idParams{MemoryKiB: 1024, Iterations: 1, Parallelism: 1})

	digest, err := h.Hash("ABCD-EFGH-IJKL")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(digest), "$argon2id$v=19$m=1024,t=1,p=1$"))

	assert.True(t, h.Verify(string(digest), "ABCD-EFGH-IJKL"))
	assert.False(t, h.Verify(string(digest), "ABCD-EFGH-IJKM"))
	assert.False(t, h.Verify(string(digest), ""))
	assert.False(t, h.Verify("$bcrypt$nope", "ABCD-EFGH-IJKL"))

	// digests carry their own cost parameters
	stronger := NewArgon2idWithParams("pepper", Argon2idParams{MemoryKiB: 2048, Iterations: 2, Parallelism: 1})
	assert.True(t, stronger.Verify(string(digest), "ABCD-EFGH-IJKL"))
}

func TestHMACSHA256(t *testing.T) {
	h := NewHMACSHA256("secret")

	a, err := h.Hash("lead:buy:jane@example.com:42")
	require.NoError(t, err)
	b, _ := h.Hash("lead:buy:jane@example.com:42")

	assert.Len(t, a, 64)
	assert.Equal(t, a, b)
	assert.True(t, h.Verify(string(a), "lead:buy:jane@example.com:42"))
	assert.False(t, h.Verify(string(a), "lead:buy:jane@example.com:43"))
}
