package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/users/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/domains/users/ports"
)

var _ ports.RevocationStore = (*RevocationStore)(nil)

// RevocationStore tracks revoked token ids in memory until they expire.
type RevocationStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{revoked: map[string]time.Time{}}
}

func (s *RevocationStore) Revoke(_ context.Context, token domain.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token.ID] = token.ExpiresAt
	return nil
}

func (s *RevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.revoked[tokenID]
	return ok, nil
}

func (s *RevocationStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged int64
	for id, expiresAt := range s.revoked {
		if !expiresAt.After(now) {
			delete(s.revoked, id)
			purged++
		}
	}
	return purged, nil
}
