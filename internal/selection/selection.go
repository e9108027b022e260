package selection

import (
	"fmt"
	"strings"

	"milanfood-backend/internal/catalog"
	"milanfood-backend/internal/domain"
)

// Selection is the transient state of one open product detail view.
type Selection struct {
	product  catalog.Product
	quantity int
	choice   *string
	extras   []string
	note     string
}

// View is the JSON shape of an open selection.
type View struct {
	Product        catalog.Product `json:"product"`
	Quantity       int             `json:"quantity"`
	RequiredChoice *string         `json:"requiredChoice"`
	Extras         []string        `json:"extras"`
	Note           string          `json:"note"`
	CanCommit      bool            `json:"canCommit"`
}

func Start(p catalog.Product) *Selection {
	return &Selection{product: p, quantity: 1, extras: []string{}}
}

func (s *Selection) Product() catalog.Product { return s.product }

func (s *Selection) SetRequiredChoice(label string) error {
	g := s.product.RequiredOptions
	if !g.Has(label) {
		return invalidOption(g, label)
	}
	v := label
	s.choice = &v
	return nil
}

// ToggleExtra adds the label when absent and removes it when present.
func (s *Selection) ToggleExtra(label string) error {
	g := s.product.Extras
	if !g.Has(label) {
		return invalidOption(g, label)
	}
	for i, e := range s.extras {
		if e == label {
			s.extras = append(s.extras[:i], s.extras[i+1:]...)
			return nil
		}
	}
	s.extras = append(s.extras, label)
	return nil
}

func (s *Selection) SetQuantity(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: quantity must be at least 1, got %d", domain.ErrInvalidQuantity, n)
	}
	s.quantity = n
	return nil
}

func (s *Selection) SetNote(text string) { s.note = text }

func (s *Selection) CanCommit() bool {
	return s.product.RequiredOptions == nil || s.choice != nil
}

func (s *Selection) Commit() (domain.LineItem, error) {
	if !s.CanCommit() {
		return domain.LineItem{}, fmt.Errorf("%w: choose a %s first", domain.ErrIncompleteSelection, strings.ToLower(s.product.RequiredOptions.Name))
	}
	item := domain.LineItem{
		ProductID: s.product.ID,
		Name:      s.product.Name,
		UnitPrice: s.product.Price,
		Extras:    append([]string{}, s.extras...),
		Note:      s.note,
		Quantity:  s.quantity,
	}
	if s.choice != nil {
		v := *s.choice
		item.RequiredChoice = &v
	}
	return item, nil
}

func (s *Selection) View() View {
	v := View{
		Product:   s.product,
		Quantity:  s.quantity,
		Extras:    append([]string{}, s.extras...),
		Note:      s.note,
		CanCommit: s.CanCommit(),
	}
	if s.choice != nil {
		c := *s.choice
		v.RequiredChoice = &c
	}
	return v
}

func invalidOption(g *catalog.OptionGroup, label string) error {
	if g == nil {
		return fmt.Errorf("%w: product has no such option group for %q", domain.ErrInvalidOption, label)
	}
	return fmt.Errorf("%w: %q is not one of %s", domain.ErrInvalidOption, label, g.Name)
}
