package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/LarozaLighting/laroza_api/internal/service"
	"github.com/LarozaLighting/laroza_api/internal/utils"
)

// ReviewHandler handles product review endpoints.
type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// List handles GET /v1/reviews. Supports ?productId= to scope to a product.
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.reviewService.GetReviews(c.Request.Context(), c.Query("productId"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load reviews")
		return
	}
	utils.Success(c, 200, "Reviews retrieved successfully", reviews)
}

// Create handles POST /v1/reviews. The reviewer name comes from the session.
func (h *ReviewHandler) Create(c *gin.Context) {
	var input service.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid review payload")
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), c.GetString("username"), &input)
	switch {
	case errors.Is(err, utils.ErrInvalidRating):
		utils.Error(c, 400, "INVALID_RATING", "Rating must be between 1 and 5")
	case err != nil:
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create review")
	default:
		utils.Success(c, 201, "Review created successfully", review)
	}
}

// Delete handles DELETE /v1/reviews/:id.
func (h *ReviewHandler) Delete(c *gin.Context) {
	err := h.reviewService.DeleteReview(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, utils.ErrReviewNotFound):
		utils.Error(c, 404, "REVIEW_NOT_FOUND", "Review not found")
	case err != nil:
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete review")
	default:
		utils.Success(c, 200, "Review deleted successfully", nil)
	}
}
