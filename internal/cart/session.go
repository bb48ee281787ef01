package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Manager hands out one cart ledger per session. Each session owns its ledger
// exclusively; the manager only guards the session map itself.
type Manager struct {
	mu    sync.RWMutex
	carts map[string]*Ledger
}

// NewManager creates an empty session manager
func NewManager() *Manager {
	return &Manager{
		carts: make(map[string]*Ledger),
	}
}

// NewSession creates a fresh session with an empty cart and returns its id
func (m *Manager) NewSession() string {
	sessionID := uuid.NewString()

	m.mu.Lock()
	m.carts[sessionID] = New()
	m.mu.Unlock()

	return sessionID
}

// Get returns the ledger for a session, or false when the session is unknown
func (m *Manager) Get(sessionID string) (*Ledger, bool) {
	m.mu.RLock()
	ledger, ok := m.carts[sessionID]
	m.mu.RUnlock()
	return ledger, ok
}

// GetOrCreate returns the session's ledger, creating the session on first use
func (m *Manager) GetOrCreate(sessionID string) *Ledger {
	m.mu.RLock()
	ledger, ok := m.carts[sessionID]
	m.mu.RUnlock()
	if ok {
		return ledger
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ledger, ok = m.carts[sessionID]; ok {
		return ledger
	}
	ledger = New()
	m.carts[sessionID] = ledger
	return ledger
}

// Drop removes a session and its cart
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	delete(m.carts, sessionID)
	m.mu.Unlock()
}
