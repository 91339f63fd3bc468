package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ecofinds/marketplace-client/internal/models"
)

func (c *Client) GetCart(ctx context.Context) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := c.doJSON(ctx, "get_cart", http.MethodGet, "/cart", nil, &items); err != nil {
		return nil, err
	}

	return items, nil
}

// AddToCart adds quantity of a product, merging with any existing line.
func (c *Client) AddToCart(ctx context.Context, req models.AddToCartRequest) (*models.CartResponse, error) {
	var resp models.CartResponse
	if err := c.doJSON(ctx, "add_to_cart", http.MethodPost, "/cart", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// UpdateCartQuantity sets the quantity of a cart line. A quantity below 1
// removes the line on the backend.
func (c *Client) UpdateCartQuantity(ctx context.Context, productID int64, quantity int) (*models.CartResponse, error) {
	req := models.UpdateCartQuantityRequest{Quantity: quantity}

	var resp models.CartResponse
	if err := c.doJSON(ctx, "update_cart_quantity", http.MethodPut, "/cart/item/"+strconv.FormatInt(productID, 10), req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) RemoveFromCart(ctx context.Context, productID int64) (*models.CartResponse, error) {
	var resp models.CartResponse
	if err := c.doJSON(ctx, "remove_from_cart", http.MethodDelete, "/cart/item/"+strconv.FormatInt(productID, 10), nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Checkout turns the current cart into a purchase with frozen prices.
func (c *Client) Checkout(ctx context.Context) (*models.CheckoutResponse, error) {
	var resp models.CheckoutResponse
	if err := c.doJSON(ctx, "checkout", http.MethodPost, "/cart/checkout", nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// GetPurchases returns the purchase history, most recent first.
func (c *Client) GetPurchases(ctx context.Context) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := c.doJSON(ctx, "get_purchases", http.MethodGet, "/purchases", nil, &purchases); err != nil {
		return nil, err
	}

	return purchases, nil
}
