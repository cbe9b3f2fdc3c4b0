package auth

import (
	"sync"
	"time"
)

// RevocationStore remembers logged-out tokens until they would have expired
// anyway. Because entries are dropped at their natural expiry, the store is
// bounded by the number of logouts within one token lifetime rather than
// growing for the life of the process.
type RevocationStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke records the token until expiresAt. A zero expiry keeps the token
// for a day, covering tokens whose claims could not be parsed.
func (s *RevocationStore) Revoke(token string, expiresAt time.Time) {
	if expiresAt.IsZero() {
		expiresAt = s.now().Add(24 * time.Hour)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.revoked[token] = expiresAt
}

// IsRevoked reports whether the token was logged out and has not yet passed
// its natural expiry.
func (s *RevocationStore) IsRevoked(token string) bool {
	s.mu.RLock()
	expiresAt, ok := s.revoked[token]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if s.now().After(expiresAt) {
		s.mu.Lock()
		delete(s.revoked, token)
		s.mu.Unlock()
		return false
	}
	return true
}

// Len is used by tests to observe eviction.
func (s *RevocationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.revoked)
}

func (s *RevocationStore) sweepLocked() {
	now := s.now()
	for token, expiresAt := range s.revoked {
		if now.After(expiresAt) {
			delete(s.revoked, token)
		}
	}
}
