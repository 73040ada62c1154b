package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/LarozaLighting/laroza_api/internal/datasync"
	"github.com/LarozaLighting/laroza_api/internal/models"
	"github.com/LarozaLighting/laroza_api/internal/repository"
	"github.com/LarozaLighting/laroza_api/internal/utils"
)

// OrderService implements order placement and lifecycle management.
type OrderService struct {
	orders     *repository.OrderRepository
	products   *repository.ProductRepository
	promotions *repository.PromotionRepository
	promoSvc   *PromotionService
	bus        *datasync.Bus

	now func() time.Time
}

// NewOrderService constructs an OrderService.
func NewOrderService(
	orders *repository.OrderRepository,
	products *repository.ProductRepository,
	promotions *repository.PromotionRepository,
	promoSvc *PromotionService,
	bus *datasync.Bus,
) *OrderService {
	return &OrderService{
		orders:     orders,
		products:   products,
		promotions: promotions,
		promoSvc:   promoSvc,
		bus:        bus,
		now:        time.Now,
	}
}

// OrderLine is one requested line item on a new order.
type OrderLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// GetOrders returns every order, newest first in stored order. When customer
// is non-empty only that customer's orders are returned.
func (s *OrderService) GetOrders(ctx context.Context, customer string) ([]models.Order, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if customer == "" {
		return orders, nil
	}
	mine := make([]models.Order, 0)
	for _, o := range orders {
		if o.CustomerName == customer {
			mine = append(mine, o)
		}
	}
	return mine, nil
}

// GetOrder returns a single order by id.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, utils.ErrOrderNotFound
}

// PlaceOrder validates stock against a fresh catalog read, decrements stock,
// records the order, and bumps the promotion usage counter when a code was
// applied. The three collection writes are sequential and non-atomic: a
// crash between them can leave stock decremented without an order (or an
// order without the promo counted). The store offers no transaction to close
// that window; callers get best-effort atomicity from the writes being
// adjacent.
func (s *OrderService) PlaceOrder(ctx context.Context, customerName string, lines []OrderLine, promoCode string) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, utils.ErrEmptyOrder
	}
	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, utils.ErrEmptyOrder
		}
	}

	// Promotion is validated before any write so an invalid code rejects the
	// whole order.
	var discount float64
	if promoCode != "" {
		promo, err := s.promoSvc.Validate(ctx, promoCode)
		if err != nil {
			return nil, err
		}
		discount = promo.Discount
		promoCode = promo.Code
	}

	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]int, len(products))
	for i := range products {
		byID[products[i].ID] = i
	}

	var items []models.OrderItem
	var subtotal float64
	for _, l := range lines {
		i, ok := byID[l.ProductID]
		if !ok {
			return nil, utils.ErrProductNotFound
		}
		p := products[i]
		if p.Stock < l.Quantity {
			return nil, utils.ErrInsufficientStock
		}
		items = append(items, models.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    l.Quantity,
			Price:       p.Price,
		})
		subtotal += p.Price * float64(l.Quantity)
	}

	discountAmount := subtotal * discount / 100
	order := models.Order{
		ID:           utils.NewEntityID("o"),
		CustomerName: customerName,
		Items:        items,
		Total:        subtotal - discountAmount,
		Status:       models.OrderPending,
		Date:         s.now().Format(utils.DateLayout),
		PromoCode:    promoCode,
		Discount:     discount,
	}

	// Write 1: decrement stock.
	for _, l := range lines {
		products[byID[l.ProductID]].Stock -= l.Quantity
	}
	if err := s.products.SaveAll(ctx, products); err != nil {
		return nil, err
	}
	s.bus.Broadcast(datasync.TypeInventory, datasync.ActionUpdate)
	s.bus.Broadcast(datasync.TypeProducts, datasync.ActionUpdate)

	// Write 2: record the order, newest first.
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.orders.SaveAll(ctx, append([]models.Order{order}, orders...)); err != nil {
		return nil, err
	}
	s.bus.Broadcast(datasync.TypeOrders, datasync.ActionCreate)

	// Write 3: count the promo use.
	if promoCode != "" {
		if err := s.incrementPromoUse(ctx, promoCode); err != nil {
			// The order already exists; losing one usage tick is preferable
			// to failing the placed order.
			log.Warn().Err(err).Str("code", promoCode).Msg("failed to count promo use")
		}
	}

	log.Info().
		Str("order_id", order.ID).
		Str("customer", customerName).
		Float64("total", order.Total).
		Msg("order placed")
	return &order, nil
}

func (s *OrderService) incrementPromoUse(ctx context.Context, code string) error {
	promotions, err := s.promotions.GetAll(ctx)
	if err != nil {
		return err
	}
	for i := range promotions {
		if strings.EqualFold(promotions[i].Code, code) {
			promotions[i].CurrentUses++
		}
	}
	if err := s.promotions.SaveAll(ctx, promotions); err != nil {
		return err
	}
	s.bus.Broadcast(datasync.TypePromotions, datasync.ActionUpdate)
	return nil
}

// UpdateStatus moves an order through its lifecycle. Illegal transitions are
// rejected.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var updated *models.Order
	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		if !orders[i].CanTransitionTo(status) {
			return nil, utils.ErrInvalidStatusChange
		}
		orders[i].Status = status
		updated = &orders[i]
		break
	}
	if updated == nil {
		return nil, utils.ErrOrderNotFound
	}

	if err := s.orders.SaveAll(ctx, orders); err != nil {
		return nil, err
	}
	s.bus.Broadcast(datasync.TypeOrders, datasync.ActionUpdate)
	return updated, nil
}
