package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
)

var ErrInvalidCatalog = errors.New("catalog: invalid")

// OptionGroup is a named set of option labels. A required group asks for
// exactly one label; an extras group allows any subset.
type OptionGroup struct {
	Name     string   `json:"name"`
	Options  []string `json:"options"`
	Required bool     `json:"required"`
}

func (g *OptionGroup) Has(label string) bool {
	if g == nil {
		return false
	}
	for _, o := range g.Options {
		if o == label {
			return true
		}
	}
	return false
}

func (g *OptionGroup) clone() *OptionGroup {
	if g == nil {
		return nil
	}
	return &OptionGroup{Name: g.Name, Options: append([]string{}, g.Options...), Required: g.Required}
}

type Product struct {
	ID              int          `json:"id"`
	Category        string       `json:"category"`
	Name            string       `json:"name"`
	Image           string       `json:"image,omitempty"`
	Description     string       `json:"description,omitempty"`
	Price           int64        `json:"price"`
	OriginalPrice   *int64       `json:"oldPrice,omitempty"`
	RequiredOptions *OptionGroup `json:"requiredOptions,omitempty"`
	Extras          *OptionGroup `json:"extras,omitempty"`
	Rating          float64      `json:"rating"`
	DeliveryTime    string       `json:"time"`
}

// DiscountPercent is the badge value shown when the original price is above
// the current one, 0 otherwise.
func (p Product) DiscountPercent() int {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price || *p.OriginalPrice == 0 {
		return 0
	}
	old := float64(*p.OriginalPrice)
	return int(math.Round((old - float64(p.Price)) / old * 100))
}

func (p Product) clone() Product {
	cp := p
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		cp.OriginalPrice = &v
	}
	cp.RequiredOptions = p.RequiredOptions.clone()
	cp.Extras = p.Extras.clone()
	return cp
}

// Catalog is the read-only product list. Insertion order defines display order.
type Catalog struct {
	products []Product
	byID     map[int]int
}

func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	for _, p := range products {
		p = normalize(p.clone())
		if err := validate(p); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %d", ErrInvalidCatalog, p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Load reads a JSON array of products.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return New(products)
}

func (c *Catalog) ListCategories() []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, p := range c.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// ListProducts filters by category (exact, case-insensitive) and by a
// case-insensitive substring of the name. Empty filters match everything.
func (c *Catalog) ListProducts(category, name string) []Product {
	category = strings.TrimSpace(category)
	needle := strings.ToLower(name)
	out := []Product{}
	for _, p := range c.products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		out = append(out, p.clone())
	}
	return out
}

func (c *Catalog) Product(id int) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i].clone(), true
}

func normalize(p Product) Product {
	p.Category = strings.TrimSpace(p.Category)
	p.Name = strings.TrimSpace(p.Name)
	if p.OriginalPrice != nil && *p.OriginalPrice < p.Price {
		p.OriginalPrice = nil
	}
	if p.RequiredOptions != nil {
		if len(p.RequiredOptions.Options) == 0 {
			p.RequiredOptions = nil
		} else {
			p.RequiredOptions.Required = true
		}
	}
	if p.Extras != nil {
		if len(p.Extras.Options) == 0 {
			p.Extras = nil
		} else {
			p.Extras.Required = false
		}
	}
	return p
}

func validate(p Product) error {
	if p.Name == "" || p.Category == "" {
		return fmt.Errorf("%w: product %d needs a name and a category", ErrInvalidCatalog, p.ID)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: product %d has a negative price", ErrInvalidCatalog, p.ID)
	}
	for _, g := range []*OptionGroup{p.RequiredOptions, p.Extras} {
		if g == nil {
			continue
		}
		seen := map[string]struct{}{}
		for _, o := range g.Options {
			if strings.TrimSpace(o) == "" {
				return fmt.Errorf("%w: product %d has an empty option in %q", ErrInvalidCatalog, p.ID, g.Name)
			}
			if _, dup := seen[o]; dup {
				return fmt.Errorf("%w: product %d repeats option %q", ErrInvalidCatalog, p.ID, o)
			}
			seen[o] = struct{}{}
		}
	}
	return nil
}
