package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/LarozaLighting/laroza_api/internal/models"
	"github.com/LarozaLighting/laroza_api/internal/service"
	"github.com/LarozaLighting/laroza_api/internal/utils"
)

// OrderHandler handles order listing, placement and status changes.
type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List handles GET /v1/orders. Admins see every order, customers only
// their own.
func (h *OrderHandler) List(c *gin.Context) {
	customer := ""
	if c.GetString("role") != string(models.RoleAdmin) {
		customer = c.GetString("username")
	}

	orders, err := h.orderService.GetOrders(c.Request.Context(), customer)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load orders")
		return
	}
	utils.Success(c, 200, "Orders retrieved successfully", orders)
}

// Get handles GET /v1/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if errors.Is(err, utils.ErrOrderNotFound) {
		utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
		return
	}
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load order")
		return
	}

	if c.GetString("role") != string(models.RoleAdmin) && order.CustomerName != c.GetString("username") {
		utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
		return
	}
	utils.Success(c, 200, "Order retrieved successfully", order)
}

type placeOrderRequest struct {
	Items     []service.OrderLine `json:"items" binding:"required"`
	PromoCode string              `json:"promoCode"`
}

// Place handles POST /v1/orders. The customer name comes from the session.
func (h *OrderHandler) Place(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Order items are required")
		return
	}

	order, err := h.orderService.PlaceOrder(c.Request.Context(), c.GetString("username"), req.Items, req.PromoCode)
	switch {
	case errors.Is(err, utils.ErrEmptyOrder):
		utils.Error(c, 400, "EMPTY_ORDER", "An order needs at least one item")
	case errors.Is(err, utils.ErrProductNotFound):
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "One of the ordered products no longer exists")
	case errors.Is(err, utils.ErrInsufficientStock):
		utils.Error(c, 409, "INSUFFICIENT_STOCK", "Not enough stock for one of the ordered products")
	case errors.Is(err, utils.ErrInvalidPromoCode), errors.Is(err, utils.ErrPromoUsageLimit):
		utils.Error(c, 400, "INVALID_PROMO", "The promo code is not valid")
	case err != nil:
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to place order")
	default:
		utils.Success(c, 201, "Order placed successfully", order)
	}
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /v1/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "A status is required")
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	switch {
	case errors.Is(err, utils.ErrOrderNotFound):
		utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
	case errors.Is(err, utils.ErrInvalidStatusChange):
		utils.Error(c, 409, "INVALID_STATUS_CHANGE", "The order cannot move to that status")
	case err != nil:
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update order status")
	default:
		utils.Success(c, 200, "Order status updated successfully", order)
	}
}
