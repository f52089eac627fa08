package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Codelizard/HeroesOfCordan/pkg/state"
)

// MemoryStorage keeps sessions in process memory. Sessions are stored as JSON
// snapshots so callers never share a *state.Session.
type MemoryStorage struct {
	mu        sync.RWMutex
	sessions  map[SessionKey][]byte
	pingError error
}

// Ensure MemoryStorage implements SessionStore interface
var _ SessionStore = (*MemoryStorage)(nil)

// NewMemoryStorage creates an empty in-memory session store
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		sessions: make(map[SessionKey][]byte),
	}
}

// SetPingError configures Ping to fail with err; nil restores success
func (m *MemoryStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

func (m *MemoryStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MemoryStorage) Close() error {
	return nil
}

func (m *MemoryStorage) SaveSession(ctx context.Context, key SessionKey, s *state.Session) error {
	if s == nil {
		return errors.New("session cannot be nil")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[key] = data
	return nil
}

func (m *MemoryStorage) LoadSession(ctx context.Context, key SessionKey) (*state.Session, error) {
	m.mu.RLock()
	data, ok := m.sessions[key]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var s state.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

func (m *MemoryStorage) DeleteSession(ctx context.Context, key SessionKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, key)
	return nil
}

// Len returns the number of stored sessions.
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
