package service

import (
	"context"

	"github.com/LarozaLighting/laroza_api/internal/models"
	"github.com/LarozaLighting/laroza_api/internal/repository"
)

// DashboardService aggregates read-only store metrics for the admin
// overview panel.
type DashboardService struct {
	products   *repository.ProductRepository
	orders     *repository.OrderRepository
	promotions *repository.PromotionRepository
	reviews    *repository.ReviewRepository
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(
	products *repository.ProductRepository,
	orders *repository.OrderRepository,
	promotions *repository.PromotionRepository,
	reviews *repository.ReviewRepository,
) *DashboardService {
	return &DashboardService{
		products:   products,
		orders:     orders,
		promotions: promotions,
		reviews:    reviews,
	}
}

// DashboardStats is the admin overview snapshot. Revenue counts completed
// orders only.
type DashboardStats struct {
	TotalProducts int              `json:"totalProducts"`
	TotalStock    int              `json:"totalStock"`
	LowStock      []models.Product `json:"lowStock"`
	TotalOrders   int              `json:"totalOrders"`
	PendingOrders int              `json:"pendingOrders"`
	TotalRevenue  float64          `json:"totalRevenue"`
	ActivePromos  int              `json:"activePromos"`
	TotalReviews  int              `json:"totalReviews"`
	AverageRating float64          `json:"averageRating"`
}

// GetStats computes the overview snapshot from fresh collection reads.
func (s *DashboardService) GetStats(ctx context.Context, today string) (*DashboardStats, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	promotions, err := s.promotions.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalProducts: len(products),
		TotalOrders:   len(orders),
		TotalReviews:  len(reviews),
		LowStock:      make([]models.Product, 0),
	}
	for _, p := range products {
		stats.TotalStock += p.Stock
		if p.IsLowStock() {
			stats.LowStock = append(stats.LowStock, p)
		}
	}
	for _, o := range orders {
		switch o.Status {
		case models.OrderPending:
			stats.PendingOrders++
		case models.OrderCompleted:
			stats.TotalRevenue += o.Total
		}
	}
	for _, p := range promotions {
		if p.IsValidOn(today) {
			stats.ActivePromos++
		}
	}
	if len(reviews) > 0 {
		var sum int
		for _, r := range reviews {
			sum += r.Rating
		}
		stats.AverageRating = float64(sum) / float64(len(reviews))
	}
	return stats, nil
}
