package models

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderItem is a line item with product name and unit price snapshotted at
// order time, so later catalog edits do not rewrite history.
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Order is a placed customer order. Total is computed once at creation
// (sum of item price*quantity minus discount) and never recomputed.
type Order struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customerName"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
	Status       OrderStatus `json:"status"`
	Date         string      `json:"date"`
	PromoCode    string      `json:"promoCode,omitempty"`
	Discount     float64     `json:"discount,omitempty"`
}

// CanTransitionTo reports whether the status change is allowed:
// pending -> processing -> completed, with cancellation possible while the
// order is still pending or processing.
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	switch next {
	case OrderProcessing:
		return o.Status == OrderPending
	case OrderCompleted:
		return o.Status == OrderProcessing
	case OrderCancelled:
		return o.Status == OrderPending || o.Status == OrderProcessing
	default:
		return false
	}
}
