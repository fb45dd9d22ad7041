package lib

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderCodeFormat(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 10000; i++ {
		code, err := GenerateOrderCode()
		require.NoError(t, err)

		assert.Regexp(t, "^SD-[A-HJ-NP-Z2-9]{6}$", code)

		// Ambiguous characters are excluded from the alphabet
		suffix := strings.TrimPrefix(code, "SD-")
		assert.NotContains(t, suffix, "I")
		assert.NotContains(t, suffix, "O")
		assert.NotContains(t, suffix, "0")
		assert.NotContains(t, suffix, "1")

		seen[code] = true
	}

	// 32^6 combinations; 10k draws colliding down to a handful would mean
	// the generator is broken
	assert.Greater(t, len(seen), 9900)
}

func TestOrderCodeFallback(t *testing.T) {
	code, err := GenerateOrderCode()
	require.NoError(t, err)

	fallback := OrderCodeFallback(code)

	assert.True(t, strings.HasPrefix(fallback, code))
	assert.Greater(t, len(fallback), len(code))
	// Suffix is upper base-36, so still human-readable
	assert.Regexp(t, "^SD-[A-Z2-9]{6}-[0-9A-Z]{1,4}$", fallback)
}

func TestGenerateRandomToken(t *testing.T) {
	first, err := GenerateRandomToken()
	require.NoError(t, err)
	second, err := GenerateRandomToken()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	// 32 bytes, url-safe base64
	assert.Len(t, first, 44)
	assert.NotContains(t, first, "+")
	assert.NotContains(t, first, "/")
}
