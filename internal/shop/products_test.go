package shop_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddProduct(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Air Jordan 1 Rojo", 360000, 10)
	assert.True(t, strings.HasPrefix(p.ID, "PROD_"))
	assert.True(t, p.Active)

	empty := f.product(t, "Air Jordan 1 Gris", 300000, 0)
	assert.False(t, empty.Active)

	_, err := f.svc.Products.Add(f.ctx, shop.Product{Name: " ", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, shop.ErrInvalidProduct)
	_, err = f.svc.Products.Add(f.ctx, shop.Product{Name: "x", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, shop.ErrInvalidProduct)
	_, err = f.svc.Products.Add(f.ctx, shop.Product{Name: "x", Stock: -1})
	assert.ErrorIs(t, err, shop.ErrInvalidStock)

	assert.Len(t, f.svc.Products.AllAdmin(f.ctx), 2)
}

func TestReduceStockToZero(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Air Jordan 1 Spiderman", 450000, 3)

	require.NoError(t, f.svc.Products.ReduceStock(f.ctx, p.ID, 3))
	got := f.stock(t, p.ID)
	assert.Equal(t, 0, got.Stock)
	assert.False(t, got.Active)

	err := f.svc.Products.ReduceStock(f.ctx, p.ID, 1)
	assert.ErrorIs(t, err, shop.ErrInsufficientStock)
	var short *shop.StockShortageError
	require.True(t, errors.As(err, &short))
	assert.Equal(t, []shop.Shortage{{ProductID: p.ID, Required: 1, Available: 0}}, short.Shortages)
	assert.Equal(t, 0, f.stock(t, p.ID).Stock)

	assert.ErrorIs(t, f.svc.Products.ReduceStock(f.ctx, p.ID, 0), shop.ErrInvalidQuantity)
	assert.ErrorIs(t, f.svc.Products.ReduceStock(f.ctx, "PROD_missing", 1), shop.ErrProductNotFound)
}

func TestDeleteIsSoft(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Air Jordan 1 Verde", 355000, 18)

	require.NoError(t, f.svc.Products.Delete(f.ctx, p.ID))

	assert.Empty(t, f.svc.Products.All(f.ctx))
	assert.Len(t, f.svc.Products.AllAdmin(f.ctx), 1)
	got := f.stock(t, p.ID)
	assert.False(t, got.Active)
	assert.Equal(t, 18, got.Stock)

	assert.ErrorIs(t, f.svc.Products.Delete(f.ctx, "PROD_missing"), shop.ErrProductNotFound)
}

func TestStockAndActivation(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Air Jordan 1 Beige", 340000, 2)

	assert.ErrorIs(t, f.svc.Products.UpdateStock(f.ctx, p.ID, -1), shop.ErrInvalidStock)

	require.NoError(t, f.svc.Products.UpdateStock(f.ctx, p.ID, 0))
	assert.False(t, f.stock(t, p.ID).Active)
	assert.ErrorIs(t, f.svc.Products.ToggleStatus(f.ctx, p.ID, true), shop.ErrOutOfStock)

	// Restocking does not reactivate on its own.
	require.NoError(t, f.svc.Products.UpdateStock(f.ctx, p.ID, 4))
	assert.False(t, f.stock(t, p.ID).Active)

	require.NoError(t, f.svc.Products.ToggleStatus(f.ctx, p.ID, true))
	assert.True(t, f.stock(t, p.ID).Available())
	require.NoError(t, f.svc.Products.ToggleStatus(f.ctx, p.ID, false))
	assert.Empty(t, f.svc.Products.All(f.ctx))
}

func TestUpdateProduct(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Air Jordan 1 Naranja", 345000, 14)

	p.Price = decimal.NewFromInt(300000)
	p.Description = "rebajadas"
	got, err := f.svc.Products.Update(f.ctx, p)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(300000)))
	assert.Equal(t, "rebajadas", f.stock(t, p.ID).Description)

	p.Stock = 0
	got, err = f.svc.Products.Update(f.ctx, p)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.False(t, f.stock(t, p.ID).Active)

	_, err = f.svc.Products.Update(f.ctx, shop.Product{ID: "PROD_missing", Name: "x"})
	assert.ErrorIs(t, err, shop.ErrProductNotFound)
}

func TestSearchAndCategories(t *testing.T) {
	f := newFixture(t)
	f.product(t, "Air Jordan 1 Rojo", 360000, 10)
	gorra, err := f.svc.Products.Add(f.ctx, shop.Product{
		Name:        "Gorra Unicor",
		Description: "Gorra VERDE institucional",
		Price:       decimal.NewFromInt(50000),
		Stock:       3,
		Category:    "Accesorios",
	})
	require.NoError(t, err)
	hidden := f.product(t, "Air Jordan 1 Oculto", 1, 1)
	require.NoError(t, f.svc.Products.Delete(f.ctx, hidden.ID))

	found := f.svc.Products.Search(f.ctx, "JORDAN")
	require.Len(t, found, 1)
	assert.Equal(t, "Air Jordan 1 Rojo", found[0].Name)

	found = f.svc.Products.Search(f.ctx, "verde")
	require.Len(t, found, 1)
	assert.Equal(t, gorra.ID, found[0].ID)

	assert.Len(t, f.svc.Products.Search(f.ctx, ""), 2)
	assert.Equal(t, []string{"Accesorios", "Zapatillas"}, f.svc.Products.Categories(f.ctx))
	assert.Len(t, f.svc.Products.ByCategory(f.ctx, "zapatillas"), 1)
	assert.Empty(t, f.svc.Products.ByCategory(f.ctx, "Ropa"))
}
