package service

import (
	"context"
	"time"

	"github.com/LarozaLighting/laroza_api/internal/datasync"
	"github.com/LarozaLighting/laroza_api/internal/models"
	"github.com/LarozaLighting/laroza_api/internal/repository"
	"github.com/LarozaLighting/laroza_api/internal/utils"
)

// ReviewService implements customer reviews. One review per order is a UI
// convention only; nothing here enforces it.
type ReviewService struct {
	reviews *repository.ReviewRepository
	bus     *datasync.Bus

	now func() time.Time
}

// NewReviewService constructs a ReviewService.
func NewReviewService(reviews *repository.ReviewRepository, bus *datasync.Bus) *ReviewService {
	return &ReviewService{reviews: reviews, bus: bus, now: time.Now}
}

// ReviewInput carries the fields for a new review.
type ReviewInput struct {
	ProductID string `json:"productId"`
	OrderID   string `json:"orderId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// GetReviews returns reviews, optionally restricted to one product.
func (s *ReviewService) GetReviews(ctx context.Context, productID string) ([]models.Review, error) {
	reviews, err := s.reviews.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if productID == "" {
		return reviews, nil
	}
	matching := make([]models.Review, 0)
	for _, r := range reviews {
		if r.ProductID == productID {
			matching = append(matching, r)
		}
	}
	return matching, nil
}

// CreateReview prepends a review for the given customer and broadcasts it.
// The comment may be empty; the rating must be 1-5.
func (s *ReviewService) CreateReview(ctx context.Context, customerName string, input *ReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, utils.ErrInvalidRating
	}

	reviews, err := s.reviews.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	review := models.Review{
		ID:           utils.NewEntityID("r"),
		ProductID:    input.ProductID,
		OrderID:      input.OrderID,
		CustomerName: customerName,
		Rating:       input.Rating,
		Comment:      input.Comment,
		Date:         s.now().Format(utils.DateLayout),
	}

	if err := s.reviews.SaveAll(ctx, append([]models.Review{review}, reviews...)); err != nil {
		return nil, err
	}
	s.bus.Broadcast(datasync.TypeReviews, datasync.ActionCreate)
	return &review, nil
}

// DeleteReview removes a review (admin moderation) and broadcasts it.
func (s *ReviewService) DeleteReview(ctx context.Context, id string) error {
	reviews, err := s.reviews.GetAll(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.Review, 0, len(reviews))
	for _, r := range reviews {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(reviews) {
		return utils.ErrReviewNotFound
	}

	if err := s.reviews.SaveAll(ctx, kept); err != nil {
		return err
	}
	s.bus.Broadcast(datasync.TypeReviews, datasync.ActionDelete)
	return nil
}
