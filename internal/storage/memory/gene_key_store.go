// Package memory provides in-memory store implementations for tests and
// for running the server without external databases.
package memory

import (
	"context"
	"sync"

	"humandesign/internal/domain"
	"humandesign/internal/storage"
)

// GeneKeyStore is an in-memory implementation of storage.GeneKeyStore.
type GeneKeyStore struct {
	mu     sync.RWMutex
	byGate map[int]*domain.GeneKey
}

// NewGeneKeyStore creates a new in-memory gene key store.
func NewGeneKeyStore() *GeneKeyStore {
	return &GeneKeyStore{byGate: make(map[int]*domain.GeneKey)}
}

var _ storage.GeneKeyStore = (*GeneKeyStore)(nil)

// Insert adds one gene key record. Returns ErrDuplicateKey if the gate exists.
func (s *GeneKeyStore) Insert(_ context.Context, gk *domain.GeneKey) error {
	if gk == nil || gk.Gate < 1 || gk.Gate > 64 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byGate[gk.Gate]; exists {
		return storage.ErrDuplicateKey
	}

	keyCopy := *gk
	s.byGate[gk.Gate] = &keyCopy
	return nil
}

// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
func (s *GeneKeyStore) InsertBulk(_ context.Context, keys []*domain.GeneKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int]struct{}, len(keys))
	for _, gk := range keys {
		if gk == nil || gk.Gate < 1 || gk.Gate > 64 {
			return storage.ErrInvalidInput
		}
		if _, dup := seen[gk.Gate]; dup {
			return storage.ErrDuplicateKey
		}
		if _, exists := s.byGate[gk.Gate]; exists {
			return storage.ErrDuplicateKey
		}
		seen[gk.Gate] = struct{}{}
	}

	for _, gk := range keys {
		keyCopy := *gk
		s.byGate[gk.Gate] = &keyCopy
	}
	return nil
}

// GetByGate retrieves the record for a gate. Returns ErrNotFound if not loaded.
func (s *GeneKeyStore) GetByGate(_ context.Context, gate int) (*domain.GeneKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gk, exists := s.byGate[gate]
	if !exists {
		return nil, storage.ErrNotFound
	}

	keyCopy := *gk
	return &keyCopy, nil
}

// Count returns the number of loaded records.
func (s *GeneKeyStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byGate), nil
}
