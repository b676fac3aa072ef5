package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Lixing-Zhang/foodie-express/internal/cart"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

const keyPrefix = "cart:"

// CartKey returns the snapshot key of a session's cart
func CartKey(sessionID string) string {
	return keyPrefix + sessionID
}

// Manager creates, resumes, and ends sessions
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	store    cart.SnapshotStore
	log      *slog.Logger
	now      func() time.Time
}

// NewManager creates a session manager whose carts persist to store
func NewManager(store cart.SnapshotStore, log *slog.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		store:    store,
		log:      log,
		now:      time.Now,
	}
}

// Create starts a new session with an empty cart
func (m *Manager) Create(ctx context.Context) *Session {
	s := m.open(ctx, uuid.New().String())

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.log.Info("session created", "session_id", s.ID)
	return s
}

// Get returns the session with id. A session that is not in memory is
// resumed when its cart snapshot still exists in the store.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		s.touch(m.now())
		return s, nil
	}

	if m.store == nil {
		return nil, ErrSessionNotFound
	}
	if _, err := m.store.Load(ctx, CartKey(id)); err != nil {
		return nil, ErrSessionNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	s = m.open(ctx, id)
	m.sessions[id] = s

	m.log.Info("session resumed", "session_id", id, "cart_lines", s.Cart.Len())
	return s, nil
}

// End drops the in-memory session. Its cart snapshot stays in the store.
func (m *Manager) End(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.unsubscribe()
		m.log.Info("session ended", "session_id", id)
	}
}

// snapshotDeleter is implemented by stores that can drop a snapshot
type snapshotDeleter interface {
	Delete(ctx context.Context, key string) error
}

// Discard ends the session and deletes its cart snapshot, so the id can no
// longer be resumed
func (m *Manager) Discard(ctx context.Context, id string) error {
	m.End(id)

	d, ok := m.store.(snapshotDeleter)
	if !ok {
		return nil
	}
	if err := d.Delete(ctx, CartKey(id)); err != nil {
		return fmt.Errorf("failed to discard cart of session %s: %w", id, err)
	}
	return nil
}

// Count returns the number of in-memory sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) open(ctx context.Context, id string) *Session {
	now := m.now()
	ledger := cart.Open(ctx, CartKey(id), m.store, m.log)

	s := &Session{
		ID:        id,
		Cart:      ledger,
		CreatedAt: now,
		lastSeen:  now,
	}
	s.unsubscribe = ledger.Subscribe(func(t cart.Totals) {
		m.log.Debug("cart updated",
			"session_id", id,
			"total_items", t.ItemCount,
			"total_amount", t.Amount.StringFixed(2),
		)
	})
	return s
}
