package credentials

import mcerrors "github.com/mattercrypt/mattercrypt/internal/errors"

// MemoryStore is an in-memory Store used by tests. GetErr and SetErr, when
// set, are returned instead of touching the map, which lets tests simulate
// an unavailable secure-storage backend.
type MemoryStore struct {
	GetErr  error
	SetErr  error
	entries map[string]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

// Get retrieves the secret for the given account.
func (s *MemoryStore) Get(account string) (string, error) {
	if s.GetErr != nil {
		return "", s.GetErr
	}
	secret, ok := s.entries[account]
	if !ok {
		return "", mcerrors.ErrSecretNotFound
	}
	return secret, nil
}

// Set creates or overwrites the secret for the given account.
func (s *MemoryStore) Set(account, secret string) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	if s.entries == nil {
		s.entries = make(map[string]string)
	}
	s.entries[account] = secret
	return nil
}
