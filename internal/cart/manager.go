package cart

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/activshop/storefront/internal/storage"
)

// Manager hands out one Store per client session. Each session's cart
// persists under its own storage key, so it survives restarts the way
// a browser cart survives page reloads. Mutations within one session
// are unsynchronized: concurrent writers to the same cart are
// last-writer-wins, like two browser tabs sharing local storage.
type Manager struct {
	mu     sync.RWMutex
	carts  map[string]*Store
	store  storage.Store
	logger *zap.Logger
}

// NewManager creates a cart manager over the given storage.
func NewManager(store storage.Store, logger *zap.Logger) *Manager {
	return &Manager{
		carts:  make(map[string]*Store),
		store:  store,
		logger: logger,
	}
}

// New issues a fresh session identifier and its (empty) cart. The
// empty cart is persisted right away so the session is recognized
// after a restart even before its first item.
func (m *Manager) New() (string, *Store) {
	id := uuid.New().String()
	c := NewStore(m.store, "cart_"+id, m.logger)
	if err := c.Clear(); err != nil {
		m.logger.Warn("Failed to persist new cart", zap.String("session_id", id), zap.Error(err))
	}

	m.mu.Lock()
	m.carts[id] = c
	m.mu.Unlock()
	return id, c
}

// Get returns the session's cart, restoring it from storage on first
// access. Session ids the manager never issued have no persisted cart
// and report false instead of being created on the fly.
func (m *Manager) Get(sessionID string) (*Store, bool) {
	m.mu.RLock()
	c, ok := m.carts[sessionID]
	m.mu.RUnlock()
	if ok {
		return c, true
	}

	var persisted map[int]int
	if err := m.store.Read("cart_"+sessionID, &persisted); errors.Is(err, storage.ErrNotExist) {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.carts[sessionID]; ok {
		return c, true
	}
	c = NewStore(m.store, "cart_"+sessionID, m.logger)
	m.carts[sessionID] = c
	return c, true
}
