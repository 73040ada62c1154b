package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/LarozaLighting/laroza_api/internal/models"
	"github.com/LarozaLighting/laroza_api/internal/store"
)

// OrderRepository handles data access for the orders collection. Newest
// orders sit at the front of the array.
type OrderRepository struct {
	store store.Store
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(st store.Store) *OrderRepository {
	return &OrderRepository{store: st}
}

// GetAll returns the whole orders collection in stored order.
func (r *OrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	raw, ok, err := r.store.Get(ctx, store.KeyOrders)
	if err != nil {
		return nil, fmt.Errorf("read orders: %w", err)
	}
	if !ok {
		return []models.Order{}, nil
	}
	var orders []models.Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

// SaveAll replaces the whole orders collection. Last writer wins.
func (r *OrderRepository) SaveAll(ctx context.Context, orders []models.Order) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	return r.store.Set(ctx, store.KeyOrders, string(data))
}
