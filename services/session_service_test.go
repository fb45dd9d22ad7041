package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStoreLifecycle(t *testing.T) {
	store := NewMemorySessionStore()

	require.NoError(t, store.Create("token-a", time.Now().Add(time.Hour)))

	assert.True(t, store.Validate("token-a"))
	assert.False(t, store.Validate("token-b"))
	assert.False(t, store.Validate(""))

	require.NoError(t, store.Delete("token-a"))
	assert.False(t, store.Validate("token-a"))

	// Deleting an unknown token is not an error
	assert.NoError(t, store.Delete("token-a"))
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore()

	require.NoError(t, store.Create("stale", time.Now().Add(-time.Minute)))

	// Expired entries are dropped lazily on validation
	assert.False(t, store.Validate("stale"))
	store.mu.RLock()
	_, present := store.sessions["stale"]
	store.mu.RUnlock()
	assert.False(t, present)
}

func TestMemorySessionStoreConcurrent(t *testing.T) {
	store := NewMemorySessionStore()
	require.NoError(t, store.Create("shared", time.Now().Add(time.Hour)))

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 1000; j++ {
				store.Validate("shared")
				store.Create("shared", time.Now().Add(time.Hour))
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	assert.True(t, store.Validate("shared"))
}
