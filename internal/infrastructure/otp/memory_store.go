package otp

import (
	"context"
	"sync"
	"time"
)

// MemorySecretStore is a process-local SecretStore.
type MemorySecretStore struct {
	mu      sync.Mutex
	secrets map[string]string
	used    map[string]time.Time
	now     func() time.Time
}

// NewMemorySecretStore creates an empty MemorySecretStore.
func NewMemorySecretStore() *MemorySecretStore {
	return &MemorySecretStore{
		secrets: make(map[string]string),
		used:    make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *MemorySecretStore) Secret(_ context.Context, ownerID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.secrets[ownerID], nil
}

func (s *MemorySecretStore) SetSecretIfAbsent(_ context.Context, ownerID, secret string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.secrets[ownerID]; ok {
		return existing, nil
	}
	s.secrets[ownerID] = secret
	return secret, nil
}

func (s *MemorySecretStore) IsUsed(_ context.Context, ownerID, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expires, ok := s.used[ownerID+":"+code]
	return ok && s.now().Before(expires), nil
}

func (s *MemorySecretStore) MarkUsed(_ context.Context, ownerID, code string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	key := ownerID + ":" + code
	if expires, ok := s.used[key]; ok && now.Before(expires) {
		return false, nil
	}
	s.used[key] = now.Add(ttl)
	return true, nil
}
