package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/LarozaLighting/laroza_api/internal/models"
	"github.com/LarozaLighting/laroza_api/internal/store"
)

// ProductRepository handles data access for the products collection. Reads
// fetch the whole collection; SaveAll replaces it in its entirety. There is
// no partial or merge update.
type ProductRepository struct {
	store store.Store
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(st store.Store) *ProductRepository {
	return &ProductRepository{store: st}
}

// GetAll returns the whole products collection in stored order.
func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	raw, ok, err := r.store.Get(ctx, store.KeyProducts)
	if err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}
	if !ok {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// SaveAll replaces the whole products collection. Last writer wins.
func (r *ProductRepository) SaveAll(ctx context.Context, products []models.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode products: %w", err)
	}
	return r.store.Set(ctx, store.KeyProducts, string(data))
}
