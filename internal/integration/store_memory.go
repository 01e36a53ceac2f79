package integration

import (
	"context"
	"sync"

	id "consentd/pkg/domain"
	"consentd/pkg/platform/sentinel"
)

// InMemoryStore keeps credentials in process memory for tests and local
// development.
type InMemoryStore struct {
	mu          sync.RWMutex
	credentials map[id.IntegrationID]AccessCredential
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{credentials: make(map[id.IntegrationID]AccessCredential)}
}

func (s *InMemoryStore) Create(_ context.Context, credential *AccessCredential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.credentials[credential.ID]; ok {
		return sentinel.ErrConflict
	}
	s.credentials[credential.ID] = *credential
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, integrationID id.IntegrationID) (*AccessCredential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if credential, ok := s.credentials[integrationID]; ok {
		copied := credential
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) DeleteByID(_ context.Context, integrationID id.IntegrationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.credentials[integrationID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.credentials, integrationID)
	return nil
}
