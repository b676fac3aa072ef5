// Package session holds the per-visitor context: the cart ledger and the
// signed-in user. Sessions are passed explicitly to whatever needs them.
package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Lixing-Zhang/foodie-express/internal/cart"
	"github.com/Lixing-Zhang/foodie-express/internal/models"
)

// Session is one visitor's state
type Session struct {
	ID        string
	Cart      *cart.Ledger
	CreatedAt time.Time

	mu       sync.RWMutex
	user     *models.User
	lastSeen time.Time

	checkoutPending atomic.Bool
	unsubscribe     func()
}

// User returns the signed-in user, or nil
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SignedIn reports whether a user is attached
func (s *Session) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// SetUser attaches u as the signed-in user
func (s *Session) SetUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// SignOut detaches the user; the cart is kept
func (s *Session) SignOut() {
	s.SetUser(nil)
}

// LastSeen returns when the session was last touched
func (s *Session) LastSeen() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

// BeginCheckout marks a checkout as pending. It returns false when one is
// already in flight.
func (s *Session) BeginCheckout() bool {
	return s.checkoutPending.CompareAndSwap(false, true)
}

// EndCheckout clears the pending checkout mark
func (s *Session) EndCheckout() {
	s.checkoutPending.Store(false)
}

// CheckoutPending reports whether a checkout is in flight
func (s *Session) CheckoutPending() bool {
	return s.checkoutPending.Load()
}
