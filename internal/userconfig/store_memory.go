package userconfig

import (
	"context"
	"strconv"
	"sync"

	id "consentd/pkg/domain"
)

type memoryKey struct {
	userID id.UserID
	key    string
}

// InMemoryStore keeps user preferences in process memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[memoryKey]string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[memoryKey]string)}
}

func (s *InMemoryStore) GetBool(_ context.Context, userID id.UserID, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[memoryKey{userID: userID, key: key}]
	if !ok {
		return false, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, nil
	}
	return parsed, nil
}

func (s *InMemoryStore) SetBool(_ context.Context, userID id.UserID, key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[memoryKey{userID: userID, key: key}] = strconv.FormatBool(value)
	return nil
}
