// Package cart implements the persisted shopping cart: a mapping from
// product identifier to quantity, written back to durable storage after
// every mutation.
package cart

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/activshop/storefront/internal/catalog"
	"github.com/activshop/storefront/internal/storage"
)

// Store holds one cart and its persistence key. Quantities are always
// >= 1: removing the last unit deletes the entry instead of storing 0.
type Store struct {
	items  map[int]int
	store  storage.Store
	key    string
	logger *zap.Logger
}

// NewStore restores the cart persisted under key, or starts empty when
// nothing (or something corrupt) is stored there.
func NewStore(store storage.Store, key string, logger *zap.Logger) *Store {
	s := &Store{
		items:  make(map[int]int),
		store:  store,
		key:    key,
		logger: logger,
	}

	var persisted map[int]int
	if err := store.Read(key, &persisted); err != nil {
		if !errors.Is(err, storage.ErrNotExist) {
			// Corrupt data is treated as an empty cart, never an error.
			logger.Warn("Discarding unreadable cart", zap.String("key", key), zap.Error(err))
		}
		return s
	}
	for id, qty := range persisted {
		if qty > 0 {
			s.items[id] = qty
		}
	}
	return s
}

// Add increments the quantity for productID by one, creating the entry
// at 1 if absent. There is no stock limit.
func (s *Store) Add(productID int) error {
	s.items[productID]++
	return s.persist()
}

// Remove decrements the quantity for productID by one and deletes the
// entry when it reaches zero. Removing an absent product is a no-op.
func (s *Store) Remove(productID int) error {
	qty, ok := s.items[productID]
	if !ok {
		return nil
	}
	if qty > 1 {
		s.items[productID] = qty - 1
	} else {
		delete(s.items, productID)
	}
	return s.persist()
}

// Clear empties the cart.
func (s *Store) Clear() error {
	s.items = make(map[int]int)
	return s.persist()
}

// Items returns a copy of the productID -> quantity mapping.
func (s *Store) Items() map[int]int {
	out := make(map[int]int, len(s.items))
	for id, qty := range s.items {
		out[id] = qty
	}
	return out
}

// TotalItems returns the sum of all quantities.
func (s *Store) TotalItems() int {
	total := 0
	for _, qty := range s.items {
		total += qty
	}
	return total
}

// TotalPrice sums quantity x unit price over all entries. Entries whose
// product is missing from the catalog contribute 0.
func (s *Store) TotalPrice(cat *catalog.Catalog) int64 {
	var total int64
	for id, qty := range s.items {
		if p, ok := cat.ByID(id); ok {
			total += p.Prix * int64(qty)
		}
	}
	return total
}

func (s *Store) persist() error {
	if err := s.store.Write(s.key, s.items); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
