package models

import "time"

// PurchaseItem is a point-in-time snapshot of a product line at checkout.
// Later edits or deletion of the product never alter it.
type PurchaseItem struct {
	ProductID       int64   `json:"productId"`
	ProductTitle    string  `json:"productTitle"`
	ProductImage    string  `json:"productImage,omitempty"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
}

// Purchase aggregates the items of one checkout. TotalAmount is the frozen
// sum of priceAtPurchase x quantity, never recomputed from current prices.
type Purchase struct {
	ID           int64          `json:"id"`
	UserID       int64          `json:"userId"`
	TotalAmount  float64        `json:"totalAmount"`
	PurchaseDate time.Time      `json:"purchaseDate"`
	Items        []PurchaseItem `json:"items"`
}

// CheckoutResponse wraps the purchase created from the current cart.
type CheckoutResponse struct {
	Msg             string    `json:"msg"`
	PurchaseID      int64     `json:"purchaseId,omitempty"`
	PurchaseDetails *Purchase `json:"purchaseDetails,omitempty"`
	Error           string    `json:"error,omitempty"`
}
