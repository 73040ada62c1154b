package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/LarozaLighting/laroza_api/internal/datasync"
	"github.com/LarozaLighting/laroza_api/internal/models"
	"github.com/LarozaLighting/laroza_api/internal/repository"
	"github.com/LarozaLighting/laroza_api/internal/utils"
)

// ProductService implements catalog and inventory operations. Every mutation
// re-reads the whole collection, applies the change in memory, saves the
// whole array back, then broadcasts. The read/save pair is not locked, so
// the last writer wins on concurrent edits.
type ProductService struct {
	products *repository.ProductRepository
	bus      *datasync.Bus
}

// NewProductService constructs a ProductService.
func NewProductService(products *repository.ProductRepository, bus *datasync.Bus) *ProductService {
	return &ProductService{products: products, bus: bus}
}

// ProductInput carries the editable product fields.
type ProductInput struct {
	Name              string                 `json:"name"`
	Category          models.ProductCategory `json:"category"`
	Price             float64                `json:"price"`
	Stock             int                    `json:"stock"`
	Image             string                 `json:"image"`
	Description       string                 `json:"description"`
	LowStockThreshold int                    `json:"lowStockThreshold"`
}

func (in *ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return utils.ErrInvalidProduct
	}
	if !models.ValidCategory(in.Category) {
		return utils.ErrInvalidCategory
	}
	if in.Price < 0 || in.Stock < 0 || in.LowStockThreshold < 0 {
		return utils.ErrInvalidProduct
	}
	return nil
}

// GetProducts returns the catalog, optionally filtered by category and a
// case-insensitive name search.
func (s *ProductService) GetProducts(ctx context.Context, category, search string) ([]models.Product, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" && search == "" {
		return products, nil
	}

	needle := strings.ToLower(search)
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && string(p.Category) != category {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// GetProduct returns a single product by id.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, utils.ErrProductNotFound
}

// CreateProduct appends a new catalog entry and broadcasts the change.
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*models.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	image := input.Image
	if image == "" {
		image = "product-placeholder"
	}
	product := models.Product{
		ID:                utils.NewEntityID("p"),
		Name:              input.Name,
		Category:          input.Category,
		Price:             input.Price,
		Stock:             input.Stock,
		Image:             image,
		Description:       input.Description,
		LowStockThreshold: input.LowStockThreshold,
	}

	if err := s.products.SaveAll(ctx, append(products, product)); err != nil {
		return nil, err
	}
	s.bus.Broadcast(datasync.TypeProducts, datasync.ActionCreate)
	return &product, nil
}

// UpdateProduct replaces the editable fields of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input *ProductInput) (*models.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var updated *models.Product
	for i := range products {
		if products[i].ID != id {
			continue
		}
		products[i].Name = input.Name
		products[i].Category = input.Category
		products[i].Price = input.Price
		products[i].Stock = input.Stock
		products[i].Description = input.Description
		products[i].LowStockThreshold = input.LowStockThreshold
		if input.Image != "" {
			products[i].Image = input.Image
		}
		updated = &products[i]
		break
	}
	if updated == nil {
		return nil, utils.ErrProductNotFound
	}

	if err := s.products.SaveAll(ctx, products); err != nil {
		return nil, err
	}
	s.bus.Broadcast(datasync.TypeProducts, datasync.ActionUpdate)
	return updated, nil
}

// DeleteProduct removes a product from the catalog.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return utils.ErrProductNotFound
	}

	if err := s.products.SaveAll(ctx, kept); err != nil {
		return err
	}
	s.bus.Broadcast(datasync.TypeProducts, datasync.ActionDelete)
	return nil
}

// AdjustStock changes a product's stock by delta, clamping at zero, and
// broadcasts an inventory update.
func (s *ProductService) AdjustStock(ctx context.Context, id string, delta int) (*models.Product, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var adjusted *models.Product
	for i := range products {
		if products[i].ID != id {
			continue
		}
		newStock := products[i].Stock + delta
		if newStock < 0 {
			newStock = 0
		}
		products[i].Stock = newStock
		adjusted = &products[i]
		break
	}
	if adjusted == nil {
		return nil, utils.ErrProductNotFound
	}

	if err := s.products.SaveAll(ctx, products); err != nil {
		return nil, err
	}
	s.bus.Broadcast(datasync.TypeInventory, datasync.ActionUpdate)
	s.bus.Broadcast(datasync.TypeProducts, datasync.ActionUpdate)

	if adjusted.IsLowStock() {
		log.Warn().Str("product_id", adjusted.ID).Int("stock", adjusted.Stock).Msg("product at low stock")
	}
	return adjusted, nil
}

// GetLowStock returns every product at or below its low-stock threshold.
func (s *ProductService) GetLowStock(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]models.Product, 0)
	for _, p := range products {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}
