package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidCredentials  = errors.New("INVALID_CREDENTIALS")
	ErrUsernameTaken       = errors.New("USERNAME_TAKEN")
	ErrPasswordTooShort    = errors.New("PASSWORD_TOO_SHORT")
	ErrProductNotFound     = errors.New("PRODUCT_NOT_FOUND")
	ErrInvalidProduct      = errors.New("INVALID_PRODUCT")
	ErrInvalidCategory     = errors.New("INVALID_CATEGORY")
	ErrInsufficientStock   = errors.New("INSUFFICIENT_STOCK")
	ErrEmptyOrder          = errors.New("EMPTY_ORDER")
	ErrOrderNotFound       = errors.New("ORDER_NOT_FOUND")
	ErrInvalidStatusChange = errors.New("INVALID_STATUS_CHANGE")
	ErrPromotionNotFound   = errors.New("PROMOTION_NOT_FOUND")
	ErrInvalidPromoCode    = errors.New("INVALID_PROMO_CODE")
	ErrPromoUsageLimit     = errors.New("PROMO_USAGE_LIMIT")
	ErrInvalidRating       = errors.New("INVALID_RATING")
	ErrReviewNotFound      = errors.New("REVIEW_NOT_FOUND")
)
