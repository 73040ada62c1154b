package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/LarozaLighting/laroza_api/internal/service"
	"github.com/LarozaLighting/laroza_api/internal/utils"
)

// ProductHandler handles the catalog endpoints.
type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles GET /v1/products. Supports ?category= and ?search= filters.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.GetProducts(c.Request.Context(), c.Query("category"), c.Query("search"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load products")
		return
	}
	utils.Success(c, 200, "Products retrieved successfully", products)
}

// Get handles GET /v1/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, utils.ErrProductNotFound):
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
	case err != nil:
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load product")
	default:
		utils.Success(c, 200, "Product retrieved successfully", product)
	}
}

// Create handles POST /v1/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product payload")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &input)
	switch {
	case errors.Is(err, utils.ErrInvalidProduct), errors.Is(err, utils.ErrInvalidCategory):
		utils.Error(c, 400, "INVALID_PRODUCT", "Product fields are missing or invalid")
	case err != nil:
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create product")
	default:
		utils.Success(c, 201, "Product created successfully", product)
	}
}

// Update handles PUT /v1/products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product payload")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), &input)
	switch {
	case errors.Is(err, utils.ErrProductNotFound):
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
	case errors.Is(err, utils.ErrInvalidProduct), errors.Is(err, utils.ErrInvalidCategory):
		utils.Error(c, 400, "INVALID_PRODUCT", "Product fields are missing or invalid")
	case err != nil:
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update product")
	default:
		utils.Success(c, 200, "Product updated successfully", product)
	}
}

// Delete handles DELETE /v1/products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, utils.ErrProductNotFound):
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
	case err != nil:
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete product")
	default:
		utils.Success(c, 200, "Product deleted successfully", nil)
	}
}

type adjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// AdjustStock handles PATCH /v1/products/:id/stock.
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Also accept ?delta= for quick manual adjustments.
		delta, convErr := strconv.Atoi(c.Query("delta"))
		if convErr != nil {
			utils.Error(c, 400, "INVALID_REQUEST", "A non-zero delta is required")
			return
		}
		req.Delta = delta
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), c.Param("id"), req.Delta)
	switch {
	case errors.Is(err, utils.ErrProductNotFound):
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
	case err != nil:
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to adjust stock")
	default:
		utils.Success(c, 200, "Stock adjusted successfully", product)
	}
}

// LowStock handles GET /v1/products/low-stock.
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.productService.GetLowStock(c.Request.Context())
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load low stock products")
		return
	}
	utils.Success(c, 200, "Low stock products retrieved successfully", products)
}
