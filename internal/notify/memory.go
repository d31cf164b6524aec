package notify

import (
	"context"
	"sync"
)

// MemoryDelivery is an in-memory Delivery used in tests and when no platform
// channel is configured.
type MemoryDelivery struct {
	mu      sync.Mutex
	pending map[int]Reminder
}

var _ Delivery = (*MemoryDelivery)(nil)

func NewMemoryDelivery() *MemoryDelivery {
	return &MemoryDelivery{pending: make(map[int]Reminder)}
}

func (m *MemoryDelivery) Schedule(_ context.Context, r Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[r.SlotID] = r
	return nil
}

func (m *MemoryDelivery) Cancel(_ context.Context, slotID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, slotID)
	return nil
}

// Pending returns the reminder in the given slot, if any.
func (m *MemoryDelivery) Pending(slotID int) (Reminder, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.pending[slotID]
	return r, ok
}
