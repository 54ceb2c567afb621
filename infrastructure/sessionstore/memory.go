package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/cohort-roas-api/internal/domain"
)

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[string]*domain.Session),
	}
}

func (m *memoryStore) Save(_ context.Context, session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *session
	m.sessions[session.ID] = &stored
	return nil
}

// Get retorna uma cópia rasa; a série é imutável depois de criada
func (m *memoryStore) Get(_ context.Context, id string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	cp := *session
	return &cp, nil
}

func (m *memoryStore) Touch(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}

	session.LastAccess = at
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}

func (m *memoryStore) Sweep(_ context.Context, idleSince time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, session := range m.sessions {
		if session.LastAccess.Before(idleSince) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (m *memoryStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions), nil
}
