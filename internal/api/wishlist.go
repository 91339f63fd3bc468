package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ecofinds/marketplace-client/internal/models"
)

type wishlistMutationResponse struct {
	Msg       string `json:"msg"`
	ProductID int64  `json:"productId"`
	Error     string `json:"error,omitempty"`
}

func (c *Client) GetWishlist(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.doJSON(ctx, "get_wishlist", http.MethodGet, "/wishlist", nil, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (c *Client) AddToWishlist(ctx context.Context, productID int64) error {
	var resp wishlistMutationResponse

	return c.doJSON(ctx, "add_to_wishlist", http.MethodPost, "/wishlist/"+strconv.FormatInt(productID, 10), nil, &resp)
}

func (c *Client) RemoveFromWishlist(ctx context.Context, productID int64) error {
	var resp wishlistMutationResponse

	return c.doJSON(ctx, "remove_from_wishlist", http.MethodDelete, "/wishlist/"+strconv.FormatInt(productID, 10), nil, &resp)
}
