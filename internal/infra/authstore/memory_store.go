package authstore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/health-companion/internal/domain/auth"
)

// MemoryStore tracks revoked token IDs in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore constructs a new in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke remembers the token ID until its expiry.
func (s *MemoryStore) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = expiresAt
	return nil
}

// IsRevoked reports whether the token ID was revoked and is still within its
// lifetime. Expired entries are pruned on read.
func (s *MemoryStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiresAt, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if expiresAt.Before(s.now()) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

var _ auth.TokenStore = (*MemoryStore)(nil)
