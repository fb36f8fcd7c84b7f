package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in process memory. It is behaviorally
// interchangeable with the redis store except for persistence across
// restarts.
type MemoryStore struct {
	mu     sync.RWMutex
	secret []byte
	ttl    time.Duration
	items  map[string]memoryEntry
}

type memoryEntry struct {
	userID    int
	expiresAt time.Time
}

func NewMemoryStore(secret string, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		secret: []byte(secret),
		ttl:    ttl,
		items:  make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Create(_ context.Context, userID int) (string, error) {
	raw := uuid.NewString()

	s.mu.Lock()
	s.items[hashToken(s.secret, raw)] = memoryEntry{
		userID:    userID,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	return raw, nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (int, error) {
	key := hashToken(s.secret, token)

	s.mu.RLock()
	e, ok := s.items[key]
	s.mu.RUnlock()

	if !ok {
		return 0, ErrNoSession
	}

	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.items, key)
		s.mu.Unlock()
		return 0, ErrNoSession
	}

	return e.userID, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.items, hashToken(s.secret, token))
	s.mu.Unlock()

	return nil
}
