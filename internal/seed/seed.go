// Package seed fills an empty store with the default accounts and catalog.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type CatalogProduct struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Stock       int    `yaml:"stock"`
	Image       string `yaml:"image"`
	Category    string `yaml:"category"`
	Brand       string `yaml:"brand"`
}

type Catalog struct {
	Products []CatalogProduct `yaml:"products"`
}

func (c CatalogProduct) price() (decimal.Decimal, error) {
	return decimal.NewFromString(c.Price)
}

func DefaultCatalog() (Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

func ParseCatalog(b []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	for i, p := range c.Products {
		price, err := p.price()
		if err != nil || p.Name == "" || price.IsNegative() || p.Stock < 0 {
			return Catalog{}, fmt.Errorf("catalog product %d: %w", i, shop.ErrInvalidProduct)
		}
	}
	return c, nil
}

func LoadCatalogFile(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, err
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return Catalog{}, err
	}
	return ParseCatalog(b)
}

type account struct {
	username, password, email, fullName string
	role                                shop.Role
}

var defaultAccounts = []account{
	{"admin", "admin123", "admin@unicorshoes.com", "Administrador Unicor", shop.RoleAdmin},
	{"Victor19", "123456", "victor.negrete@unicor.edu.co", "Victor Manuel Negrete", shop.RoleUser},
	{"Maria23", "123456", "maria.garcia@unicor.edu.co", "Maria Alejandra Garcia", shop.RoleUser},
	{"Carlos_2000", "123456", "carlos.rodriguez@unicor.edu.co", "Carlos Andres Rodriguez", shop.RoleUser},
	{"Andrea_M", "123456", "andrea.martinez@unicor.edu.co", "Andrea Marcela Martinez", shop.RoleUser},
}

type Result struct {
	UsersCreated  int
	ProductsAdded int
}

// Run creates the default accounts when there are no users at all, and adds
// every catalog product whose name is not in the store yet.
func Run(ctx context.Context, store *shop.Store, hasher shop.PasswordHasher, catalog Catalog, log logrus.FieldLogger) (Result, error) {
	var res Result

	err := store.Users.Update(ctx, func(users []shop.User) ([]shop.User, error) {
		if len(users) > 0 {
			return users, nil
		}
		for _, a := range defaultAccounts {
			digest, err := hasher.Hash(a.password)
			if err != nil {
				return nil, err
			}
			users = append(users, shop.User{
				ID:                 shop.NewID(shop.PrefixUser),
				Username:           a.username,
				Password:           digest,
				Email:              a.email,
				FullName:           a.fullName,
				Role:               a.role,
				WishlistProductIDs: []string{},
				OrderIDs:           []string{},
			})
		}
		res.UsersCreated = len(defaultAccounts)
		return users, nil
	})
	if err != nil {
		return res, fmt.Errorf("seed users: %w", err)
	}

	err = store.Products.Update(ctx, func(products []shop.Product) ([]shop.Product, error) {
		have := make(map[string]bool, len(products))
		for _, p := range products {
			have[p.Name] = true
		}
		for _, c := range catalog.Products {
			if have[c.Name] {
				continue
			}
			price, err := c.price()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", c.Name, shop.ErrInvalidProduct)
			}
			products = append(products, shop.Product{
				ID:          shop.NewID(shop.PrefixProduct),
				Name:        c.Name,
				Description: c.Description,
				Price:       price,
				Stock:       c.Stock,
				ImagePath:   c.Image,
				Category:    c.Category,
				Brand:       c.Brand,
				Active:      c.Stock > 0,
			})
			have[c.Name] = true
			res.ProductsAdded++
		}
		return products, nil
	})
	if err != nil {
		return res, fmt.Errorf("seed products: %w", err)
	}

	if res.UsersCreated > 0 {
		log.WithField("count", res.UsersCreated).Info("default users created (admin/admin123)")
	}
	if res.ProductsAdded > 0 {
		log.WithField("count", res.ProductsAdded).Info("catalog products added")
	}
	return res, nil
}
