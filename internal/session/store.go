package session

import (
	"encoding/json"
	"strings"
	"sync"
)

// Canonical persisted keys. No other key names are read or written.
const (
	credentialKey = "authToken"
	userKey       = "user"
)

// UserRecord is persisted next to the credential so display data survives a
// reload without decoding the token again.
type UserRecord struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Store persists the credential and user record across page loads.
type Store interface {
	// Save overwrites both values in one write.
	Save(credential string, user UserRecord) error
	// Load reports false when either value is missing or unparsable.
	Load() (string, UserRecord, bool)
	// Clear removes both values. It is idempotent.
	Clear() error
}

func encodeUser(user UserRecord) (string, error) {
	raw, err := json.Marshal(user)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeUser(raw string) (UserRecord, bool) {
	if strings.TrimSpace(raw) == "" {
		return UserRecord{}, false
	}
	var user UserRecord
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return UserRecord{}, false
	}
	return user, true
}

// MemoryStore keeps the pair in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Save(credential string, user UserRecord) error {
	encoded, err := encodeUser(user)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[credentialKey] = credential
	s.values[userKey] = encoded
	return nil
}

func (s *MemoryStore) Load() (string, UserRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	credential, ok := s.values[credentialKey]
	if !ok || credential == "" {
		return "", UserRecord{}, false
	}
	user, ok := decodeUser(s.values[userKey])
	if !ok {
		return "", UserRecord{}, false
	}
	return credential, user, true
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, credentialKey)
	delete(s.values, userKey)
	return nil
}

// put writes a raw value, bypassing Save.
func (s *MemoryStore) put(key string, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}
