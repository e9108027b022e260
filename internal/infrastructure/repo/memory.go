package repo

import (
	"context"
	"encoding/json"
	"sync"

	"milanfood-backend/internal/domain"
)

// MemoryOrderRepo keeps submitted orders and storefront payloads in process.
type MemoryOrderRepo struct {
	mu     sync.RWMutex
	m      map[string]*domain.Order
	intake map[string]json.RawMessage
}

func NewMemoryOrderRepo() *MemoryOrderRepo {
	return &MemoryOrderRepo{
		m:      make(map[string]*domain.Order),
		intake: make(map[string]json.RawMessage),
	}
}

func (r *MemoryOrderRepo) Submit(_ context.Context, o *domain.Order) error {
	cp := cloneOrder(o)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[o.OrderID] = cp
	return nil
}

func (r *MemoryOrderRepo) Append(_ context.Context, id string, payload json.RawMessage) error {
	cp := append(json.RawMessage(nil), payload...)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intake[id] = cp
	return nil
}

func (r *MemoryOrderRepo) Get(_ context.Context, id string) (*domain.Order, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.m[id]
	if !ok {
		return nil, false, nil
	}
	return cloneOrder(o), true, nil
}

func cloneOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.Items = make([]domain.LineItem, len(o.Items))
	for i, it := range o.Items {
		cp.Items[i] = it.Clone()
	}
	return &cp
}
