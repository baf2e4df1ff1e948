package service

import (
	"context"
	"sync"

	"github.com/ecomkit/storefront-cart/internal/cart"
	"github.com/ecomkit/storefront-cart/internal/model"
)

// SnapshotRepositoryInterface defines the snapshot store access the session
// registry needs.
type SnapshotRepositoryInterface interface {
	Load(ctx context.Context, cartID string) (model.CartState, error)
	Write(ctx context.Context, cartID string, state model.CartState) error
}

// Sessions owns the per-cart in-memory state: the cart itself (the source of
// truth between persists) and the order snapshot captured at confirmation,
// which outlives the cleared cart for the rest of the session. Access to a
// session is serialized; the snapshot store stays last-writer-wins across
// processes, as accepted by the design.
type Sessions struct {
	mu        sync.Mutex
	entries   map[string]*Session
	snapshots SnapshotRepositoryInterface
}

// Session is the state of one cart session. Hold the lock taken by Acquire
// while touching it.
type Session struct {
	mu             sync.Mutex
	Cart           *cart.Cart
	Order          *model.Order
	couponInFlight bool
}

// NewSessions creates an empty session registry backed by the given store.
func NewSessions(snapshots SnapshotRepositoryInterface) *Sessions {
	return &Sessions{
		entries:   make(map[string]*Session),
		snapshots: snapshots,
	}
}

// Acquire returns the session for a cart ID with its lock held, creating it
// on first contact. Callers must call Release when done.
func (s *Sessions) Acquire(cartID string) *Session {
	s.mu.Lock()
	entry, ok := s.entries[cartID]
	if !ok {
		entry = &Session{
			Cart: cart.New(boundStore{snapshots: s.snapshots, cartID: cartID}),
		}
		s.entries[cartID] = entry
	}
	s.mu.Unlock()

	entry.mu.Lock()
	return entry
}

// Release unlocks a session returned by Acquire.
func (s *Session) Release() {
	s.mu.Unlock()
}

// boundStore adapts the snapshot repository to the single-cart store the
// facade expects, binding the cart ID once.
type boundStore struct {
	snapshots SnapshotRepositoryInterface
	cartID    string
}

func (s boundStore) Load(ctx context.Context) (model.CartState, error) {
	return s.snapshots.Load(ctx, s.cartID)
}

func (s boundStore) Write(ctx context.Context, state model.CartState) error {
	return s.snapshots.Write(ctx, s.cartID, state)
}
