package models

type ProductCategory string

const (
	CategoryCeiling    ProductCategory = "Ceiling"
	CategoryWall       ProductCategory = "Wall"
	CategoryDecorative ProductCategory = "Decorative"
	CategoryLEDBulbs   ProductCategory = "LED Bulbs"
	CategoryFixtures   ProductCategory = "Fixtures"
)

// ProductCategories lists every valid category, in display order.
var ProductCategories = []ProductCategory{
	CategoryCeiling,
	CategoryWall,
	CategoryDecorative,
	CategoryLEDBulbs,
	CategoryFixtures,
}

// Product is a catalog entry. The whole products collection is stored as one
// JSON array; array order is display order.
type Product struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Category          ProductCategory `json:"category"`
	Price             float64         `json:"price"`
	Stock             int             `json:"stock"`
	Image             string          `json:"image"`
	Description       string          `json:"description"`
	LowStockThreshold int             `json:"lowStockThreshold"`
}

// IsLowStock reports whether stock is at or below the configured threshold.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.LowStockThreshold
}

// IsOutOfStock reports whether the product has no stock left.
func (p *Product) IsOutOfStock() bool {
	return p.Stock == 0
}

// ValidCategory reports whether c is one of the five fixed categories.
func ValidCategory(c ProductCategory) bool {
	for _, v := range ProductCategories {
		if v == c {
			return true
		}
	}
	return false
}
