package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	apperrors "github.com/ecofinds/marketplace-client/internal/errors"
	"github.com/ecofinds/marketplace-client/internal/models"
)

// GetProducts fetches one page of browsable products. Category "All" and
// the empty string mean no category filter.
func (c *Client) GetProducts(ctx context.Context, category models.Category, query string, page, pageSize int) (*models.PaginatedProductsResponse, error) {
	params := url.Values{}

	if category.IsFilter() {
		params.Set("category", string(category))
	}

	if query != "" {
		params.Set("q", query)
	}

	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(pageSize))

	var resp models.PaginatedProductsResponse
	if err := c.doJSON(ctx, "get_products", http.MethodGet, "/products?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// GetMyListings fetches the signed-in user's own products.
func (c *Client) GetMyListings(ctx context.Context) (*models.MyListingsResponse, error) {
	var resp models.MyListingsResponse
	if err := c.doJSON(ctx, "get_my_listings", http.MethodGet, "/my-listings", nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.doJSON(ctx, "get_product", http.MethodGet, "/products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

// CreateProduct submits a new listing as multipart form data. Price is sent
// in its string form; the backend coerces it.
func (c *Client) CreateProduct(ctx context.Context, input models.ProductInput, images []models.ImageUpload) (*models.Product, error) {
	sub := NewSubmission().
		AddField("title", input.Title).
		AddField("description", input.Description).
		AddField("category", string(input.Category)).
		AddField("price", input.Price).
		AddImages(images)

	var product models.Product
	if err := c.doMultipart(ctx, "create_product", http.MethodPost, "/products", sub, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

// UpdateProduct submits a partial edit. Only fields present in the patch go
// on the wire. existingImages names the previously stored image URLs the
// caller wants to keep; the backend reconciles the rest away.
func (c *Client) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch, newImages []models.ImageUpload, existingImages []string) (*models.Product, error) {
	sub := NewSubmission()

	if patch.Title != nil {
		sub.AddField("title", *patch.Title)
	}
	if patch.Description != nil {
		sub.AddField("description", *patch.Description)
	}
	if patch.Category != nil {
		sub.AddField("category", string(*patch.Category))
	}
	if patch.Price != nil {
		sub.AddField("price", *patch.Price)
	}

	if existingImages != nil {
		serialized, err := json.Marshal(existingImages)
		if err != nil {
			return nil, apperrors.InternalError("Failed to serialize existing image list").WithError(err)
		}

		sub.AddField("existingImages", string(serialized))
	}

	sub.AddImages(newImages)

	var product models.Product
	if err := c.doMultipart(ctx, "update_product", http.MethodPut, "/products/"+url.PathEscape(id), sub, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) (*models.DeleteResponse, error) {
	var resp models.DeleteResponse
	if err := c.doJSON(ctx, "delete_product", http.MethodDelete, "/products/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
