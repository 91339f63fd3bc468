package models

// PaginatedProductsResponse is the envelope the products listing endpoint
// returns. Field names are fixed by the backend wire format.
type PaginatedProductsResponse struct {
	Products      []Product `json:"products"`
	TotalProducts int       `json:"total_products"`
	CurrentPage   int       `json:"current_page"`
	TotalPages    int       `json:"total_pages"`
	HasNext       bool      `json:"has_next"`
	HasPrev       bool      `json:"has_prev"`
	Error         string    `json:"error,omitempty"`
}

// MyListingsResponse wraps the signed-in user's own products.
type MyListingsResponse struct {
	Products []Product `json:"products"`
	Error    string    `json:"error,omitempty"`
}

// DeleteResponse is returned by the product delete endpoint.
type DeleteResponse struct {
	Msg   string `json:"msg"`
	Error string `json:"error,omitempty"`
}
