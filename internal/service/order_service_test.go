package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LarozaLighting/laroza_api/internal/datasync"
	"github.com/LarozaLighting/laroza_api/internal/models"
	"github.com/LarozaLighting/laroza_api/internal/repository"
	"github.com/LarozaLighting/laroza_api/internal/store"
	"github.com/LarozaLighting/laroza_api/internal/utils"
)

type orderFixture struct {
	store    *store.MemoryStore
	bus      *datasync.Bus
	orders   *OrderService
	products *ProductService
	promos   *PromotionService
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	st := store.NewMemoryStore()
	require.NoError(t, repository.Seed(context.Background(), st))

	bus := datasync.NewBus()
	t.Cleanup(func() { bus.Close() })

	productRepo := repository.NewProductRepository(st)
	orderRepo := repository.NewOrderRepository(st)
	promoRepo := repository.NewPromotionRepository(st)

	promoSvc := NewPromotionService(promoRepo, bus)
	promoSvc.now = func() time.Time { return time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC) }

	orderSvc := NewOrderService(orderRepo, productRepo, promoRepo, promoSvc, bus)
	orderSvc.now = promoSvc.now

	return &orderFixture{
		store:    st,
		bus:      bus,
		orders:   orderSvc,
		products: NewProductService(productRepo, bus),
		promos:   promoSvc,
	}
}

func TestPlaceOrderDecrementsStockAndRecordsOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.orders.PlaceOrder(ctx, "Juan Santos", []OrderLine{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p7", Quantity: 10},
	}, "")
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, "2026-01-15", order.Date)
	assert.InDelta(t, 2*2499+10*199, order.Total, 0.001)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Modern LED Ceiling Light", order.Items[0].ProductName)

	// Stock decremented: p1 45->43, p7 150->140.
	p1, err := f.products.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 43, p1.Stock)
	p7, err := f.products.GetProduct(ctx, "p7")
	require.NoError(t, err)
	assert.Equal(t, 140, p7.Stock)

	// Order recorded newest first.
	orders, err := f.orders.GetOrders(ctx, "")
	require.NoError(t, err)
	require.Len(t, orders, 5)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestPlaceOrderAppliesPromo(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.orders.PlaceOrder(ctx, "Maria Cruz", []OrderLine{
		{ProductID: "p2", Quantity: 1},
	}, "newyear2026")
	require.NoError(t, err)

	assert.Equal(t, "NEWYEAR2026", order.PromoCode)
	assert.InDelta(t, 15, order.Discount, 0.001)
	assert.InDelta(t, 8999*0.85, order.Total, 0.001)

	// Usage counter bumped: seeded at 3.
	promo, err := f.promos.Validate(ctx, "NEWYEAR2026")
	require.NoError(t, err)
	assert.Equal(t, 4, promo.CurrentUses)
}

func TestPlaceOrderRejectsInvalidPromoBeforeAnyWrite(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.orders.PlaceOrder(ctx, "Juan Santos", []OrderLine{
		{ProductID: "p1", Quantity: 1},
	}, "NOSUCHCODE")
	assert.ErrorIs(t, err, utils.ErrInvalidPromoCode)

	// Nothing changed.
	p1, err := f.products.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 45, p1.Stock)
	orders, err := f.orders.GetOrders(ctx, "")
	require.NoError(t, err)
	assert.Len(t, orders, 4)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	f := newOrderFixture(t)

	// p12 seeds with stock 3.
	_, err := f.orders.PlaceOrder(context.Background(), "Juan Santos", []OrderLine{
		{ProductID: "p12", Quantity: 4},
	}, "")
	assert.ErrorIs(t, err, utils.ErrInsufficientStock)
}

func TestPlaceOrderValidatesStockAgainstFreshRead(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	// Another context drains the stock between page load and checkout.
	_, err := f.products.AdjustStock(ctx, "p12", -3)
	require.NoError(t, err)

	_, err = f.orders.PlaceOrder(ctx, "Juan Santos", []OrderLine{
		{ProductID: "p12", Quantity: 1},
	}, "")
	assert.ErrorIs(t, err, utils.ErrInsufficientStock)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.orders.PlaceOrder(context.Background(), "Juan Santos", []OrderLine{
		{ProductID: "p404", Quantity: 1},
	}, "")
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestPlaceOrderEmptyOrRubbishLines(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.orders.PlaceOrder(ctx, "Juan Santos", nil, "")
	assert.ErrorIs(t, err, utils.ErrEmptyOrder)

	_, err = f.orders.PlaceOrder(ctx, "Juan Santos", []OrderLine{{ProductID: "p1", Quantity: 0}}, "")
	assert.ErrorIs(t, err, utils.ErrEmptyOrder)
}

func TestPlaceOrderBroadcastSequence(t *testing.T) {
	f := newOrderFixture(t)

	type change struct {
		Type   datasync.EventType
		Action datasync.Action
	}
	var got []change
	f.bus.Subscribe(func(ev datasync.Event) {
		got = append(got, change{ev.Type, ev.Action})
	})

	_, err := f.orders.PlaceOrder(context.Background(), "Maria Cruz", []OrderLine{
		{ProductID: "p1", Quantity: 1},
	}, "WELCOME10")
	require.NoError(t, err)

	assert.Equal(t, []change{
		{datasync.TypeInventory, datasync.ActionUpdate},
		{datasync.TypeProducts, datasync.ActionUpdate},
		{datasync.TypeOrders, datasync.ActionCreate},
		{datasync.TypePromotions, datasync.ActionUpdate},
	}, got)
}

func TestGetOrdersScopedToCustomer(t *testing.T) {
	f := newOrderFixture(t)

	mine, err := f.orders.GetOrders(context.Background(), "Maria Cruz")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "o2", mine[0].ID)
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	// o1 is pending.
	order, err := f.orders.UpdateStatus(ctx, "o1", models.OrderProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, order.Status)

	order, err = f.orders.UpdateStatus(ctx, "o1", models.OrderCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompleted, order.Status)

	// Completed is terminal.
	_, err = f.orders.UpdateStatus(ctx, "o1", models.OrderCancelled)
	assert.ErrorIs(t, err, utils.ErrInvalidStatusChange)

	_, err = f.orders.UpdateStatus(ctx, "o404", models.OrderProcessing)
	assert.ErrorIs(t, err, utils.ErrOrderNotFound)
}

func TestUpdateStatusCancelFromProcessing(t *testing.T) {
	f := newOrderFixture(t)

	// o2 is processing.
	order, err := f.orders.UpdateStatus(context.Background(), "o2", models.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, order.Status)
}

// Two execution contexts over one store, linked by the envelope transport:
// a checkout in one context must be visible to the other after its refresh
// callback fires.
func TestCheckoutConvergesAcrossContexts(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, repository.Seed(context.Background(), st))

	shopBus := datasync.NewBus(datasync.NewEnvelopeTransport(st))
	defer shopBus.Close()
	adminBus := datasync.NewBus(datasync.NewEnvelopeTransport(st))
	defer adminBus.Close()

	productRepo := repository.NewProductRepository(st)
	promoRepo := repository.NewPromotionRepository(st)
	promoSvc := NewPromotionService(promoRepo, shopBus)
	orderSvc := NewOrderService(repository.NewOrderRepository(st), productRepo, promoRepo, promoSvc, shopBus)

	adminProducts := NewProductService(productRepo, adminBus)

	refreshed := make(chan struct{}, 8)
	stop := adminBus.AutoRefresh([]datasync.EventType{datasync.TypeProducts}, func() {
		refreshed <- struct{}{}
	})
	defer stop()

	_, err := orderSvc.PlaceOrder(context.Background(), "Juan Santos", []OrderLine{
		{ProductID: "p1", Quantity: 5},
	}, "")
	require.NoError(t, err)

	select {
	case <-refreshed:
	case <-time.After(time.Second):
		t.Fatal("admin context never notified of the checkout")
	}

	p1, err := adminProducts.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 40, p1.Stock)
}
