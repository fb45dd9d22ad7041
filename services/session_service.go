package services

import (
	"fmt"
	"saraylidoener_server/lib"
	"saraylidoener_server/structs"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
)

// SessionStore holds active admin sessions keyed by opaque token. It must be
// safe for concurrent use from simultaneous admin requests. Implementations
// are swappable: the in-memory store accepts that sessions die with the
// process, the Redis store survives restarts.
type SessionStore interface {
	Create(token string, expiresAt time.Time) error
	Validate(token string) bool
	Delete(token string) error
}

// SessionService issues, validates and revokes admin sessions and verifies
// the admin password.
type SessionService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	store  SessionStore
}

func NewSessionService(logger *gecho.Logger, cfg *structs.Config, cacheService *CacheService) *SessionService {
	var store SessionStore
	switch cfg.Auth.SessionStore {
	case "redis":
		store = NewRedisSessionStore(cacheService)
	default:
		store = NewMemorySessionStore()
	}

	return &SessionService{
		logger: logger,
		cfg:    cfg,
		store:  store,
	}
}

// Login verifies the password and, on success, creates a session and returns
// its token and expiry.
func (ss *SessionService) Login(password string) (string, time.Time, error) {
	hash := ss.cfg.Auth.AdminPasswordHash
	if hash == "" {
		ss.logger.Error("Admin login attempted but ADMIN_PASSWORD_HASH is not configured")
		return "", time.Time{}, lib.ErrInvalidCredentials
	}

	if !lib.VerifyPassword(password, hash) {
		return "", time.Time{}, lib.ErrInvalidCredentials
	}

	token, err := lib.GenerateRandomToken()
	if err != nil {
		return "", time.Time{}, err
	}

	expiresAt := time.Now().Add(ss.cfg.Auth.SessionTTL)
	if err := ss.store.Create(token, expiresAt); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to store session: %w", err)
	}

	return token, expiresAt, nil
}

// Validate reports whether the token belongs to a live session.
func (ss *SessionService) Validate(token string) bool {
	if token == "" {
		return false
	}
	return ss.store.Validate(token)
}

// Logout revokes the session. Revoking an unknown token is not an error.
func (ss *SessionService) Logout(token string) {
	if token == "" {
		return
	}
	if err := ss.store.Delete(token); err != nil {
		ss.logger.Warn("Failed to delete session", gecho.Field("error", err))
	}
}

// MemorySessionStore keeps sessions in a mutex-guarded map. Expired entries
// are dropped lazily on validation and swept periodically.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	store := &MemorySessionStore{
		sessions: make(map[string]time.Time),
	}

	go store.sweep(10 * time.Minute)

	return store
}

func (m *MemorySessionStore) Create(token string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = expiresAt
	return nil
}

func (m *MemorySessionStore) Validate(token string) bool {
	m.mu.RLock()
	expiresAt, ok := m.sessions[token]
	m.mu.RUnlock()

	if !ok {
		return false
	}

	if time.Now().After(expiresAt) {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return false
	}

	return true
}

func (m *MemorySessionStore) Delete(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *MemorySessionStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		m.mu.Lock()
		for token, expiresAt := range m.sessions {
			if now.After(expiresAt) {
				delete(m.sessions, token)
			}
		}
		m.mu.Unlock()
	}
}

// RedisSessionStore keeps sessions in Redis with the TTL handled by key
// expiry.
type RedisSessionStore struct {
	cache *CacheService
}

func NewRedisSessionStore(cache *CacheService) *RedisSessionStore {
	return &RedisSessionStore{cache: cache}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func (r *RedisSessionStore) Create(token string, expiresAt time.Time) error {
	return r.cache.Set(sessionKey(token), "1", time.Until(expiresAt))
}

func (r *RedisSessionStore) Validate(token string) bool {
	val, err := r.cache.Get(sessionKey(token))
	if err != nil {
		// Fail closed: an unreachable session store must not open the admin panel
		return false
	}
	return val == "1"
}

func (r *RedisSessionStore) Delete(token string) error {
	return r.cache.Delete(sessionKey(token))
}
