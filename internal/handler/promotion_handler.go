package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/LarozaLighting/laroza_api/internal/service"
	"github.com/LarozaLighting/laroza_api/internal/utils"
)

// PromotionHandler handles promotion management and code validation.
type PromotionHandler struct {
	promotionService *service.PromotionService
}

func NewPromotionHandler(promotionService *service.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

// List handles GET /v1/promotions.
func (h *PromotionHandler) List(c *gin.Context) {
	promos, err := h.promotionService.GetPromotions(c.Request.Context())
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load promotions")
		return
	}
	utils.Success(c, 200, "Promotions retrieved successfully", promos)
}

// Create handles POST /v1/promotions.
func (h *PromotionHandler) Create(c *gin.Context) {
	var input service.PromotionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid promotion payload")
		return
	}

	promo, err := h.promotionService.CreatePromotion(c.Request.Context(), &input)
	switch {
	case errors.Is(err, utils.ErrInvalidPromoCode):
		utils.Error(c, 400, "INVALID_PROMOTION", "Promotion fields are missing or invalid")
	case err != nil:
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create promotion")
	default:
		utils.Success(c, 201, "Promotion created successfully", promo)
	}
}

// Update handles PUT /v1/promotions/:id.
func (h *PromotionHandler) Update(c *gin.Context) {
	var input service.PromotionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid promotion payload")
		return
	}

	promo, err := h.promotionService.UpdatePromotion(c.Request.Context(), c.Param("id"), &input)
	switch {
	case errors.Is(err, utils.ErrPromotionNotFound):
		utils.Error(c, 404, "PROMOTION_NOT_FOUND", "Promotion not found")
	case errors.Is(err, utils.ErrInvalidPromoCode):
		utils.Error(c, 400, "INVALID_PROMOTION", "Promotion fields are missing or invalid")
	case err != nil:
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update promotion")
	default:
		utils.Success(c, 200, "Promotion updated successfully", promo)
	}
}

// Delete handles DELETE /v1/promotions/:id.
func (h *PromotionHandler) Delete(c *gin.Context) {
	err := h.promotionService.DeletePromotion(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, utils.ErrPromotionNotFound):
		utils.Error(c, 404, "PROMOTION_NOT_FOUND", "Promotion not found")
	case err != nil:
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete promotion")
	default:
		utils.Success(c, 200, "Promotion deleted successfully", nil)
	}
}

// Validate handles GET /v1/promotions/validate/:code.
func (h *PromotionHandler) Validate(c *gin.Context) {
	promo, err := h.promotionService.Validate(c.Request.Context(), c.Param("code"))
	switch {
	case errors.Is(err, utils.ErrPromoUsageLimit):
		utils.Error(c, 409, "PROMO_USAGE_LIMIT", "This promo code has reached its usage limit")
	case errors.Is(err, utils.ErrInvalidPromoCode):
		utils.Error(c, 404, "INVALID_PROMO", "Invalid or expired promo code")
	case err != nil:
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to validate promo code")
	default:
		utils.Success(c, 200, "Promo code is valid", promo)
	}
}
