package lib

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/argon2"
)

// encodeTestHash builds an encoded argon2id hash the way our hash tooling
// produces them. Low cost parameters keep the test fast.
func encodeTestHash(password string) string {
	salt := []byte("0123456789abcdef")
	var memory uint32 = 8 * 1024
	var time uint32 = 1
	var threads uint8 = 1

	hash := argon2.IDKey([]byte(password), salt, time, memory, threads, 32)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memory, time, threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
}

func TestVerifyPassword(t *testing.T) {
	encoded := encodeTestHash("kebab-mit-alles")

	assert.True(t, VerifyPassword("kebab-mit-alles", encoded))
	assert.False(t, VerifyPassword("kebab-ohne-alles", encoded))
	assert.False(t, VerifyPassword("", encoded))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	cases := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA",  // wrong algorithm
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$aGFzaA", // wrong version
		"$argon2id$v=19$m=8192,t=1,p=1$!!$aGFzaA",     // broken salt encoding
	}

	for _, encoded := range cases {
		assert.False(t, VerifyPassword("anything", encoded), "hash %q must not verify", encoded)
	}
}

func TestDecodeArgon2Hash(t *testing.T) {
	parts, err := DecodeArgon2Hash(encodeTestHash("pw"))

	assert.NoError(t, err)
	assert.Equal(t, uint32(8*1024), parts.Memory)
	assert.Equal(t, uint32(1), parts.Time)
	assert.Equal(t, uint8(1), parts.Threads)
	assert.Equal(t, uint32(32), parts.KeyLen)
	assert.Len(t, parts.Salt, 16)
}
