package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/LarozaLighting/laroza_api/internal/models"
	"github.com/LarozaLighting/laroza_api/internal/store"
)

// PromotionRepository handles data access for the promotions collection.
type PromotionRepository struct {
	store store.Store
}

// NewPromotionRepository creates a new PromotionRepository.
func NewPromotionRepository(st store.Store) *PromotionRepository {
	return &PromotionRepository{store: st}
}

// GetAll returns the whole promotions collection in stored order.
func (r *PromotionRepository) GetAll(ctx context.Context) ([]models.Promotion, error) {
	raw, ok, err := r.store.Get(ctx, store.KeyPromotions)
	if err != nil {
		return nil, fmt.Errorf("read promotions: %w", err)
	}
	if !ok {
		return []models.Promotion{}, nil
	}
	var promotions []models.Promotion
	if err := json.Unmarshal([]byte(raw), &promotions); err != nil {
		return nil, fmt.Errorf("decode promotions: %w", err)
	}
	return promotions, nil
}

// SaveAll replaces the whole promotions collection. Last writer wins.
func (r *PromotionRepository) SaveAll(ctx context.Context, promotions []models.Promotion) error {
	data, err := json.Marshal(promotions)
	if err != nil {
		return fmt.Errorf("encode promotions: %w", err)
	}
	return r.store.Set(ctx, store.KeyPromotions, string(data))
}
