package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA256HashIsDeterministic(t *testing.T) {
	h := NewSHA256()

	first, err := h.Hash("pw1234")
	require.NoError(t, err)
	second, err := h.Hash("pw1234")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64) // hex-encoded 32 bytes
}

func TestSHA256HashNeverStoresPlaintext(t *testing.T) {
	h := NewSHA256()

	digest, err := h.Hash("pw1234")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1234", digest)
}

func TestSHA256Verify(t *testing.T) {
	h := NewSHA256()

	digest, err := h.Hash("pw1234")
	require.NoError(t, err)

	assert.True(t, h.Verify("pw1234", digest))
	assert.False(t, h.Verify("pw12345", digest))
	assert.False(t, h.Verify("", digest))
}

func TestBcryptHashIsSalted(t *testing.T) {
	h := NewBcrypt()

	first, err := h.Hash("pw1234")
	require.NoError(t, err)
	second, err := h.Hash("pw1234")
	require.NoError(t, err)

	// Each digest carries its own salt
	assert.NotEqual(t, first, second)
}

func TestBcryptVerify(t *testing.T) {
	h := NewBcrypt()

	digest, err := h.Hash("pw1234")
	require.NoError(t, err)

	assert.True(t, h.Verify("pw1234", digest))
	assert.False(t, h.Verify("pw12345", digest))
}
