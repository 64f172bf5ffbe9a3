// Package memory holds the order list snapshot. The backend owns the data;
// this store only caches the last fetched list for display and diffing.
package memory

import (
	"sync"
	"time"

	"github.com/mysmilelab/labsync/internal/domain/model"
	"github.com/mysmilelab/labsync/internal/metrics"
)

// OrderStore is the in-memory order list, revalidated by re-fetching.
type OrderStore struct {
	mu        sync.RWMutex
	orders    []model.Order
	fetchedAt time.Time
}

// NewOrderStore creates an empty store.
func NewOrderStore() *OrderStore {
	return &OrderStore{}
}

// Replace installs a freshly fetched order list.
func (s *OrderStore) Replace(orders []model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders[:0:0], orders...)
	s.fetchedAt = time.Now()
	metrics.SnapshotOrders.Set(float64(len(s.orders)))
}

// Orders returns a copy of the current snapshot.
func (s *OrderStore) Orders() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Order(nil), s.orders...)
}

// Find returns the cached order with the given id.
func (s *OrderStore) Find(id int64) (model.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return model.Order{}, false
}

// FetchedAt reports when the snapshot was last replaced.
func (s *OrderStore) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}
