package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/LarozaLighting/laroza_api/internal/models"
	"github.com/LarozaLighting/laroza_api/internal/store"
)

// ReviewRepository handles data access for the reviews collection.
type ReviewRepository struct {
	store store.Store
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(st store.Store) *ReviewRepository {
	return &ReviewRepository{store: st}
}

// GetAll returns the whole reviews collection in stored order.
func (r *ReviewRepository) GetAll(ctx context.Context) ([]models.Review, error) {
	raw, ok, err := r.store.Get(ctx, store.KeyReviews)
	if err != nil {
		return nil, fmt.Errorf("read reviews: %w", err)
	}
	if !ok {
		return []models.Review{}, nil
	}
	var reviews []models.Review
	if err := json.Unmarshal([]byte(raw), &reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, nil
}

// SaveAll replaces the whole reviews collection. Last writer wins.
func (r *ReviewRepository) SaveAll(ctx context.Context, reviews []models.Review) error {
	data, err := json.Marshal(reviews)
	if err != nil {
		return fmt.Errorf("encode reviews: %w", err)
	}
	return r.store.Set(ctx, store.KeyReviews, string(data))
}
