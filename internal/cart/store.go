package cart

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
)

// DefaultKey is the storage key the cart is persisted under.
const DefaultKey = "ambertruck_cart_v1"

// Storage is the persistence port: a durable string key-value store.
// Get reports ok=false when the key has never been written.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Listener receives the cart after every persisted mutation.
type Listener func(Cart)

// Store is the single source of truth for cart contents.
//
// Every mutation is applied to a copy, written to Storage in full and only
// then installed and announced to listeners. A failed write leaves the
// in-memory cart and every listener untouched.
//
// Store is not safe for concurrent use; callers serialize events.
type Store struct {
	storage   Storage
	key       string
	logger    *slog.Logger
	items     []LineItem
	listeners []Listener
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithLogger sets the logger used for recovered corruption reports.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open creates a store and reads the persisted cart.
// Absent or corrupt data yields an empty cart; only storage I/O errors fail.
func Open(ctx context.Context, storage Storage, opts ...Option) (*Store, error) {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Key returns the storage key in use.
func (s *Store) Key() string {
	return s.key
}

// Reload replaces the in-memory cart with the persisted one. Another writer
// of the same key wins over unsaved local state.
func (s *Store) Reload(ctx context.Context) error {
	raw, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("read cart %q: %w", s.key, err)
	}
	if !ok {
		s.items = nil
		return nil
	}

	items, err := Decode(raw)
	if err != nil {
		s.logger.Warn("recovered corrupt cart data", "key", s.key, "kept", len(items), "error", err)
	}
	s.items = items
	return nil
}

// Subscribe registers a listener for persisted mutations.
func (s *Store) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Snapshot returns a copy of the current cart.
func (s *Store) Snapshot() Cart {
	return Cart{Items: cloneItems(s.items)}
}

// Total returns Σ price × qty.
func (s *Store) Total() decimal.Decimal {
	return Cart{Items: s.items}.Total()
}

// ItemCount returns Σ qty.
func (s *Store) ItemCount() int {
	return Cart{Items: s.items}.ItemCount()
}

// Add merges qty units of the product into the cart: an existing line with
// the same identity is incremented, otherwise a new line is appended.
// Invalid input returns ErrInvalidDescriptor or ErrInvalidQuantity and
// leaves the cart untouched.
func (s *Store) Add(ctx context.Context, d Descriptor, qty int) (LineItem, error) {
	if qty < 1 || qty > MaxQty {
		return LineItem{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, qty)
	}
	if err := d.Validate(); err != nil {
		return LineItem{}, err
	}

	next := cloneItems(s.items)
	id := d.Identity()
	idx := indexOf(next, id)
	if idx >= 0 {
		if next[idx].Qty > MaxQty-qty {
			return LineItem{}, fmt.Errorf("%w: %d + %d exceeds %d", ErrInvalidQuantity, next[idx].Qty, qty, MaxQty)
		}
		next[idx].Qty += qty
	} else {
		next = append(next, LineItem{
			ID:    id,
			Name:  NormalizeName(d.Name),
			Price: d.Price,
			Qty:   qty,
		})
		idx = len(next) - 1
	}

	if err := s.commit(ctx, next); err != nil {
		return LineItem{}, err
	}
	s.logger.Debug("cart add", "id", id, "qty", next[idx].Qty)
	return next[idx], nil
}

// ChangeQty sets qty to max(qty+delta, 0) and removes the line at zero.
// Returns false without writing when id is not in the cart. A result above
// MaxQty returns ErrInvalidQuantity and leaves the cart untouched.
func (s *Store) ChangeQty(ctx context.Context, id string, delta int) (bool, error) {
	idx := indexOf(s.items, id)
	if idx < 0 {
		return false, nil
	}
	if delta == 0 {
		return true, nil
	}

	if delta > 0 && s.items[idx].Qty > MaxQty-delta {
		return true, fmt.Errorf("%w: %d + %d exceeds %d", ErrInvalidQuantity, s.items[idx].Qty, delta, MaxQty)
	}

	next := cloneItems(s.items)
	qty := next[idx].Qty + delta
	if qty <= 0 {
		next = append(next[:idx], next[idx+1:]...)
	} else {
		next[idx].Qty = qty
	}

	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	s.logger.Debug("cart change qty", "id", id, "delta", delta, "qty", max(qty, 0))
	return true, nil
}

// Remove deletes the line with the given id. Returns false without writing
// when id is not in the cart.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	idx := indexOf(s.items, id)
	if idx < 0 {
		return false, nil
	}

	next := cloneItems(s.items)
	next = append(next[:idx], next[idx+1:]...)
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	s.logger.Debug("cart remove", "id", id)
	return true, nil
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.commit(ctx, nil); err != nil {
		return err
	}
	s.logger.Debug("cart cleared")
	return nil
}

// commit persists next and, on success, installs it and notifies listeners.
func (s *Store) commit(ctx context.Context, next []LineItem) error {
	data, err := Encode(next)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("write cart %q: %w", s.key, err)
	}

	s.items = next
	snapshot := s.Snapshot()
	for _, l := range s.listeners {
		l(snapshot)
	}
	return nil
}
