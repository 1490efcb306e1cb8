// Package daily keeps the same-day order board shown next to the register.
// The board is a read model: it is seeded from the backend and kept fresh by
// the cashier event feed; the backend stays the source of truth.
package daily

import (
	"sort"
	"sync"

	"github.com/MySagra/mycassa-sub000/internal/domain"
)

type Board struct {
	mu     sync.RWMutex
	orders map[int64]domain.DailyOrder
}

func NewBoard() *Board {
	return &Board{orders: make(map[int64]domain.DailyOrder)}
}

// Replace seeds the board from a full backend fetch.
func (b *Board) Replace(orders []domain.DailyOrder) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.orders = make(map[int64]domain.DailyOrder, len(orders))
	for _, o := range orders {
		b.orders[o.ID] = o
	}
}

// Upsert inserts or updates one order from a feed event.
func (b *Board) Upsert(order domain.DailyOrder) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders[order.ID] = order
}

// Remove drops an order, e.g. once it is picked up.
func (b *Board) Remove(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.orders, id)
}

// Snapshot returns the board newest-first.
func (b *Board) Snapshot() []domain.DailyOrder {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.DailyOrder, 0, len(b.orders))
	for _, o := range b.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].DisplayCode < out[j].DisplayCode
	})
	return out
}

func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.orders)
}
