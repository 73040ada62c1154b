package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LarozaLighting/laroza_api/internal/datasync"
	"github.com/LarozaLighting/laroza_api/internal/models"
	"github.com/LarozaLighting/laroza_api/internal/repository"
	"github.com/LarozaLighting/laroza_api/internal/store"
	"github.com/LarozaLighting/laroza_api/internal/utils"
)

func newProductFixture(t *testing.T) (*ProductService, *datasync.Bus) {
	t.Helper()
	st := store.NewMemoryStore()
	require.NoError(t, repository.Seed(context.Background(), st))
	bus := datasync.NewBus()
	t.Cleanup(func() { bus.Close() })
	return NewProductService(repository.NewProductRepository(st), bus), bus
}

func TestGetProductsFilters(t *testing.T) {
	svc, _ := newProductFixture(t)
	ctx := context.Background()

	all, err := svc.GetProducts(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 12)

	ceiling, err := svc.GetProducts(ctx, string(models.CategoryCeiling), "")
	require.NoError(t, err)
	require.NotEmpty(t, ceiling)
	for _, p := range ceiling {
		assert.Equal(t, models.CategoryCeiling, p.Category)
	}

	chandeliers, err := svc.GetProducts(ctx, "", "chandelier")
	require.NoError(t, err)
	require.Len(t, chandeliers, 1)
	assert.Equal(t, "p2", chandeliers[0].ID)
}

func TestCreateProductDefaultsImage(t *testing.T) {
	svc, _ := newProductFixture(t)

	created, err := svc.CreateProduct(context.Background(), &ProductInput{
		Name:     "Garden Spot Light",
		Category: models.CategoryFixtures,
		Price:    1200,
		Stock:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, "product-placeholder", created.Image)
	assert.NotEmpty(t, created.ID)

	fetched, err := svc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, fetched.Name)
}

func TestCreateProductRejectsInvalidInput(t *testing.T) {
	svc, _ := newProductFixture(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, &ProductInput{Name: "", Category: models.CategoryWall, Price: 100})
	assert.ErrorIs(t, err, utils.ErrInvalidProduct)

	_, err = svc.CreateProduct(ctx, &ProductInput{Name: "Lamp", Category: "furniture", Price: 100})
	assert.ErrorIs(t, err, utils.ErrInvalidCategory)

	_, err = svc.CreateProduct(ctx, &ProductInput{Name: "Lamp", Category: models.CategoryWall, Price: -5})
	assert.ErrorIs(t, err, utils.ErrInvalidProduct)
}

func TestAdjustStockClampsAtZero(t *testing.T) {
	svc, _ := newProductFixture(t)
	ctx := context.Background()

	// p12 seeds with stock 3.
	adjusted, err := svc.AdjustStock(ctx, "p12", -100)
	require.NoError(t, err)
	assert.Equal(t, 0, adjusted.Stock)
	assert.True(t, adjusted.IsOutOfStock())

	adjusted, err = svc.AdjustStock(ctx, "p12", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, adjusted.Stock)
}

func TestAdjustStockBroadcastsInventoryAndProducts(t *testing.T) {
	svc, bus := newProductFixture(t)

	var types []datasync.EventType
	bus.Subscribe(func(ev datasync.Event) { types = append(types, ev.Type) })

	_, err := svc.AdjustStock(context.Background(), "p1", -1)
	require.NoError(t, err)

	assert.Equal(t, []datasync.EventType{datasync.TypeInventory, datasync.TypeProducts}, types)
}

func TestDeleteProduct(t *testing.T) {
	svc, _ := newProductFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteProduct(ctx, "p1"))
	_, err := svc.GetProduct(ctx, "p1")
	assert.ErrorIs(t, err, utils.ErrProductNotFound)

	assert.ErrorIs(t, svc.DeleteProduct(ctx, "p1"), utils.ErrProductNotFound)
}

func TestGetLowStock(t *testing.T) {
	svc, _ := newProductFixture(t)

	low, err := svc.GetLowStock(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(low))
	for _, p := range low {
		ids = append(ids, p.ID)
	}
	// Seeded products at or below their thresholds.
	assert.ElementsMatch(t, []string{"p5", "p9", "p12"}, ids)
}
