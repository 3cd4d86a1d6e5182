package memory

import (
	"context"
	"sync"

	"github.com/mcoot/activities-client/internal/model"
	"github.com/mcoot/activities-client/internal/storage"
)

// Storage is an in-memory credential store. Values live as long as the process.
type Storage struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		values: make(map[string]string),
	}
}

// Ensure Storage implements the interface
var _ storage.CredentialStore = (*Storage)(nil)

func (s *Storage) Load(ctx context.Context) (model.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	creds := model.Credentials{
		Token:       s.values[storage.KeyToken],
		DisplayName: s.values[storage.KeyDisplayName],
	}
	if !creds.Complete() {
		return model.Credentials{}, nil
	}
	return creds, nil
}

func (s *Storage) Save(ctx context.Context, creds model.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[storage.KeyToken] = creds.Token
	s.values[storage.KeyDisplayName] = creds.DisplayName
	return nil
}

func (s *Storage) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, storage.KeyToken)
	delete(s.values, storage.KeyDisplayName)
	return nil
}

func (s *Storage) Close() error {
	return nil
}

// Get returns a raw stored value (for tests and diagnostics)
func (s *Storage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set writes a raw value, bypassing the pair semantics (for tests)
func (s *Storage) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}
