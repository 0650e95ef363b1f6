package store

import (
	"context"
	"sync"
	"time"

	"github.com/dialdish/dialdish/internal/models"
)

// Memory is an in-process SessionStore for single-node runs, simulated calls
// and tests. Each session carries its own lock so concurrent calls never
// contend with each other.
type Memory struct {
	mu       sync.Mutex
	sessions map[string]*memEntry
	now      func() time.Time
}

type memEntry struct {
	mu      sync.Mutex
	session models.Session
}

// NewMemory creates an empty in-memory session store.
func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[string]*memEntry),
		now:      time.Now,
	}
}

// WithNow overrides the store clock for tests.
func (m *Memory) WithNow(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) entry(id string, init InitData) *memEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		e = &memEntry{session: models.NewSession(id, init.RestaurantID, init.CustomerInfo, m.now())}
		m.sessions[id] = e
	}
	return e
}

// GetOrCreate implements SessionStore.
func (m *Memory) GetOrCreate(ctx context.Context, id string, init InitData) (models.Session, error) {
	e := m.entry(id, init)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session, nil
}

// Save implements SessionStore.
func (m *Memory) Save(ctx context.Context, session models.Session) error {
	e := m.entry(session.ID, InitData{RestaurantID: session.RestaurantID, CustomerInfo: session.CustomerInfo})
	e.mu.Lock()
	defer e.mu.Unlock()
	session.UpdatedAt = m.now()
	e.session = session
	return nil
}

// Mutate implements SessionStore: fn runs under the session's own lock, so
// duplicate deliveries for one call serialize while other calls proceed.
func (m *Memory) Mutate(ctx context.Context, id string, init InitData, fn func(models.Session) (models.Session, error)) (models.Session, error) {
	e := m.entry(id, init)
	e.mu.Lock()
	defer e.mu.Unlock()

	updated, err := fn(e.session)
	if err != nil {
		return e.session, err
	}
	updated.UpdatedAt = m.now()
	e.session = updated
	return updated, nil
}

// Len reports the number of tracked sessions.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
