package cart

import "sync"

// Manager hands out one cart Store per session. Sessions are created
// lazily on first use.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager creates an empty session cart manager.
func NewManager() *Manager {
	return &Manager{
		stores: make(map[string]*Store),
	}
}

// Cart returns the cart for a session, creating it if absent.
func (m *Manager) Cart(sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, ok := m.stores[sessionID]
	if !ok {
		store = NewStore()
		m.stores[sessionID] = store
	}
	return store
}

// Drop forgets a session's cart entirely.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.stores, sessionID)
}
