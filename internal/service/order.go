package service

import (
	"sync"

	"arcrelay/internal/model"
)

// OrderService is the in-memory order table shared by all handlers.
// Every method holds the lock only for map work; callers must finish any
// network I/O before calling in.
type OrderService struct {
	mu     sync.RWMutex
	orders map[string]model.Order
}

func NewOrderService() *OrderService {
	return &OrderService{orders: make(map[string]model.Order)}
}

// Save inserts or replaces the record keyed by o.UUID.
func (s *OrderService) Save(o model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.UUID] = o
}

// UpdateStatus sets the status for uuid, creating the record if it is unknown.
// It reports whether the record already existed.
func (s *OrderService) UpdateStatus(uuid, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, existed := s.orders[uuid]
	s.orders[uuid] = model.Order{UUID: uuid, Status: status}
	return existed
}

// Snapshot returns a copy of the table keyed by order id.
func (s *OrderService) Snapshot() map[string]model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]model.Order, len(s.orders))
	for id, o := range s.orders {
		out[id] = o
	}
	return out
}

func (s *OrderService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
