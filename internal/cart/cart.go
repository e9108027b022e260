package cart

import (
	"fmt"

	"milanfood-backend/internal/domain"
)

// Store is an ordered list of line items. Indices shift after a removal, so
// callers re-read Items() after every mutation instead of caching positions.
type Store struct {
	items []domain.LineItem
}

func New() *Store {
	return &Store{items: []domain.LineItem{}}
}

// Add appends the item; identical configurations are not merged.
func (s *Store) Add(item domain.LineItem) error {
	if item.Quantity < 1 {
		return fmt.Errorf("%w: line item quantity %d", domain.ErrInvalidQuantity, item.Quantity)
	}
	s.items = append(s.items, item.Clone())
	return nil
}

func (s *Store) Increment(index int) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.items[index].Quantity++
	return nil
}

// Decrement lowers the quantity by one and drops the item instead of
// leaving it at zero.
func (s *Store) Decrement(index int) error {
	if err := s.check(index); err != nil {
		return err
	}
	if s.items[index].Quantity <= 1 {
		s.removeAt(index)
		return nil
	}
	s.items[index].Quantity--
	return nil
}

func (s *Store) Remove(index int) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.removeAt(index)
	return nil
}

func (s *Store) Clear() {
	s.items = []domain.LineItem{}
}

func (s *Store) IsEmpty() bool { return len(s.items) == 0 }

func (s *Store) Len() int { return len(s.items) }

// UnitCount is the sum of quantities, shown on the cart badge.
func (s *Store) UnitCount() int {
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

func (s *Store) Items() []domain.LineItem {
	out := make([]domain.LineItem, len(s.items))
	for i, it := range s.items {
		out[i] = it.Clone()
	}
	return out
}

func (s *Store) check(index int) error {
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("%w: %d not in [0,%d)", domain.ErrIndexOutOfRange, index, len(s.items))
	}
	return nil
}

func (s *Store) removeAt(index int) {
	s.items = append(s.items[:index], s.items[index+1:]...)
}
