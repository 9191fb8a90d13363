// Package cart holds a user's pending line items. A Store is explicitly
// constructed around a Persister, loads its previous contents on init, keeps
// mutations in memory, and flushes the serialized cart after every change.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"vestra/models"
	"vestra/pricing"
)

// Persister is the durable side of a Store: a key-value blob per cart.
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// ErrNotFound is returned by a Persister when no cart is stored under a key.
var ErrNotFound = errors.New("cart: not persisted")

// Store is one user's cart. Line items keep insertion order; lines sharing a
// (product, size, color) tuple merge by summing quantities.
type Store struct {
	mu    sync.Mutex
	key   string
	items []models.CartItem
	p     Persister
	dirty bool
}

// Load builds a Store for key and restores its persisted contents. A missing
// or unparseable payload yields an empty cart; parse failures are logged and
// otherwise ignored.
func Load(ctx context.Context, p Persister, key string) *Store {
	s := &Store{key: key, p: p}

	data, err := p.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("cart %s: load failed: %v", key, err)
		}
		return s
	}

	if err := json.Unmarshal(data, &s.items); err != nil {
		log.Printf("cart %s: discarding unreadable payload: %v", key, err)
		s.items = nil
	}
	return s
}

// Add merges item into an existing line with the same variant tuple, or
// appends it, preserving insertion order.
func (s *Store) Add(item models.CartItem) error {
	if item.ProductID == "" || item.Quantity <= 0 || item.Price < 0 {
		return errors.New("cart: invalid line item")
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].SameVariant(item) {
			s.items[i].Quantity += item.Quantity
			s.dirty = true
			return nil
		}
	}
	s.items = append(s.items, item)
	s.dirty = true
	return nil
}

// Remove deletes the line matching (productID, size, color). When size and
// color are both empty it removes every variant of the product instead.
func (s *Store) Remove(productID, size, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.ProductID == productID {
			if size == "" && color == "" {
				continue
			}
			if item.Size == size && item.Color == color {
				continue
			}
		}
		kept = append(kept, item)
	}
	if len(kept) != len(s.items) {
		s.dirty = true
	}
	s.items = kept
}

// SetQuantity replaces the quantity of the matching variant line.
func (s *Store) SetQuantity(productID, size, color string, quantity int) error {
	if quantity < 1 {
		return errors.New("cart: quantity must be at least 1")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID && s.items[i].Size == size && s.items[i].Color == color {
			s.items[i].Quantity = quantity
			s.dirty = true
			return nil
		}
	}
	return errors.New("cart: no such line item")
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) > 0 {
		s.dirty = true
	}
	s.items = nil
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Quote prices the current contents.
func (s *Store) Quote() pricing.Quote {
	return pricing.Compute(s.Items())
}

// Flush persists the serialized cart when anything changed since the last
// flush. An empty cart deletes the stored key instead.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)
	dirty := s.dirty
	s.dirty = false
	s.mu.Unlock()

	if !dirty {
		return nil
	}

	if len(items) == 0 {
		return s.p.Delete(ctx, s.key)
	}

	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.p.Save(ctx, s.key, data)
}
