package models

// Review is a customer product review tied to the order it came from.
// The "one review per order" rule is a UI convention, not enforced here.
type Review struct {
	ID           string `json:"id"`
	ProductID    string `json:"productId"`
	OrderID      string `json:"orderId"`
	CustomerName string `json:"customerName"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	Date         string `json:"date"`
}
