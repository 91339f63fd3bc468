package models

import "time"

// CartItem ties a product to a desired quantity in the signed-in user's
// cart. The embedded product is a server-provided snapshot of the listing
// at fetch time. Quantity is always >= 1; a quantity below 1 removes the
// item instead.
type CartItem struct {
	ID        int64     `json:"id,omitempty"`
	ProductID int64     `json:"productId"`
	Quantity  int       `json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
	AddedAt   time.Time `json:"addedAt,omitempty"`
}

type AddToCartRequest struct {
	ProductID int64 `json:"productId" validate:"required"`
	Quantity  int   `json:"quantity" validate:"omitempty,min=1"`
}

type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// CartResponse is what the cart mutation endpoints return: the affected
// item (nil when it was removed) plus the full updated cart.
type CartResponse struct {
	Msg   string     `json:"msg"`
	Item  *CartItem  `json:"item,omitempty"`
	Cart  []CartItem `json:"cart"`
	Error string     `json:"error,omitempty"`
}
