package shop

import (
	"context"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

// Products manages the catalog. A product whose stock reaches 0 through
// Update, UpdateStock or ReduceStock is deactivated; reactivation is manual.
type Products struct {
	Store *Store
	Log   logrus.FieldLogger
}

// All returns the active products.
func (s *Products) All(ctx context.Context) []Product {
	return filterProducts(s.Store.LoadProducts(ctx), func(p Product) bool { return p.Active })
}

// AllAdmin returns every product, including deactivated ones.
func (s *Products) AllAdmin(ctx context.Context) []Product {
	return s.Store.LoadProducts(ctx)
}

func (s *Products) ByID(ctx context.Context, id string) (Product, error) {
	for _, p := range s.Store.LoadProducts(ctx) {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

// Search matches term against name or description, ignoring case.
func (s *Products) Search(ctx context.Context, term string) []Product {
	term = strings.ToLower(strings.TrimSpace(term))
	return filterProducts(s.All(ctx), func(p Product) bool {
		return strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term)
	})
}

func (s *Products) ByCategory(ctx context.Context, category string) []Product {
	return filterProducts(s.All(ctx), func(p Product) bool {
		return strings.EqualFold(p.Category, category)
	})
}

// Categories lists the distinct categories of active products, sorted.
func (s *Products) Categories(ctx context.Context) []string {
	var out []string
	for _, p := range s.All(ctx) {
		if p.Category != "" && !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	slices.Sort(out)
	return out
}

func (s *Products) Add(ctx context.Context, p Product) (Product, error) {
	if err := validateProduct(p); err != nil {
		return Product{}, err
	}
	p.ID = NewID(PrefixProduct)
	p.Active = p.Stock > 0
	if err := s.Store.SaveProduct(ctx, p); err != nil {
		s.Log.WithError(err).Error("add product")
		return Product{}, err
	}
	s.Log.WithFields(logrus.Fields{"product_id": p.ID, "name": p.Name}).Info("product added")
	return p, nil
}

// Update replaces a stored product with p.
func (s *Products) Update(ctx context.Context, p Product) (Product, error) {
	if err := validateProduct(p); err != nil {
		return Product{}, err
	}
	if p.Stock == 0 {
		p.Active = false
	}
	err := s.mutate(ctx, p.ID, func(cur *Product) error {
		*cur = p
		return nil
	})
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

// Delete deactivates the product. It stays in storage.
func (s *Products) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(p *Product) error {
		p.Active = false
		return nil
	})
}

func (s *Products) ToggleStatus(ctx context.Context, id string, active bool) error {
	return s.mutate(ctx, id, func(p *Product) error {
		if active && p.Stock == 0 {
			return ErrOutOfStock
		}
		p.Active = active
		return nil
	})
}

func (s *Products) UpdateStock(ctx context.Context, id string, stock int) error {
	if stock < 0 {
		return ErrInvalidStock
	}
	return s.mutate(ctx, id, func(p *Product) error {
		p.Stock = stock
		if stock == 0 {
			p.Active = false
		}
		return nil
	})
}

// ReduceStock takes qty units out of stock. It fails without changes when
// fewer than qty units are left.
func (s *Products) ReduceStock(ctx context.Context, id string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	return s.mutate(ctx, id, func(p *Product) error {
		if p.Stock < qty {
			return &StockShortageError{Shortages: []Shortage{{ProductID: id, Required: qty, Available: p.Stock}}}
		}
		p.Stock -= qty
		if p.Stock == 0 {
			p.Active = false
		}
		return nil
	})
}

// mutate applies fn to the stored product with the given id under the
// collection lock.
func (s *Products) mutate(ctx context.Context, id string, fn func(p *Product) error) error {
	err := s.Store.Products.Update(ctx, func(products []Product) ([]Product, error) {
		for i := range products {
			if products[i].ID == id {
				if err := fn(&products[i]); err != nil {
					return nil, err
				}
				return products, nil
			}
		}
		return nil, ErrProductNotFound
	})
	if err != nil && !isDomainError(err) {
		s.Log.WithError(err).WithField("product_id", id).Error("update product")
	}
	return err
}

func validateProduct(p Product) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return ErrInvalidProduct
	case p.Price.IsNegative():
		return ErrInvalidProduct
	case p.Stock < 0:
		return ErrInvalidStock
	}
	return nil
}

func filterProducts(in []Product, keep func(Product) bool) []Product {
	out := make([]Product, 0, len(in))
	for _, p := range in {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
