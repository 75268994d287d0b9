// auth/token_store_memory.go
package auth

import (
	"context"
	"sync"
)

// MemoryTokenStore holds the token in process memory. Token state is
// lost on restart, matching the default deployment.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewMemoryTokenStore creates an empty in-memory token store
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Load returns the stored token, or nil when none is stored
func (s *MemoryTokenStore) Load(_ context.Context) (*Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil {
		return nil, nil
	}
	copied := *s.token
	return &copied, nil
}

// Save replaces the stored token wholesale
func (s *MemoryTokenStore) Save(_ context.Context, token *Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == nil {
		s.token = nil
		return nil
	}
	copied := *token
	s.token = &copied
	return nil
}

// Delete clears the stored token
func (s *MemoryTokenStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
	return nil
}
