package models

import (
	"strings"
	"time"
)

// Category is the closed set of product categories the marketplace knows
// about. All is a pseudo-category meaning "no filter" and is never stored
// on a product.
type Category string

const (
	CategoryAll         Category = "All"
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryFurniture   Category = "Furniture"
	CategoryBooks       Category = "Books"
	CategorySports      Category = "Sports"
	CategoryToys        Category = "Toys"
	CategoryHomeGarden  Category = "Home & Garden"
	CategoryOther       Category = "Other"
)

// Categories lists every assignable category, in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryFurniture,
	CategoryBooks,
	CategorySports,
	CategoryToys,
	CategoryHomeGarden,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if strings.EqualFold(string(known), string(c)) {
			return true
		}
	}

	return false
}

// IsFilter reports whether c narrows a product query. An empty value and
// the All pseudo-category both mean "everything".
func (c Category) IsFilter() bool {
	return c != "" && !strings.EqualFold(string(c), string(CategoryAll))
}

type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Price       float64   `json:"price"`
	Images      []string  `json:"images"`
	SellerID    int64     `json:"sellerId"`
	SellerName  string    `json:"sellerName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductInput is the form shape collected from a seller before submission.
// Price travels as its string form; the backend owns numeric coercion.
type ProductInput struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Description string   `json:"description" validate:"required"`
	Category    Category `json:"category" validate:"required"`
	Price       string   `json:"price" validate:"required"`
}

// ProductPatch carries only the fields a seller wants to change. Nil means
// "leave as is".
type ProductPatch struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string   `json:"description,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Price       *string   `json:"price,omitempty"`
}

// ImageUpload is one attachment of a multipart product submission.
type ImageUpload struct {
	Filename string
	Content  []byte
}

// Merge overlays the non-zero fields of update onto p and returns the result.
// Used for the shallow merge after an update succeeds: fields the server
// echoed back win, everything else keeps its prior value.
func (p Product) Merge(update Product) Product {
	merged := p

	if update.Title != "" {
		merged.Title = update.Title
	}
	if update.Description != "" {
		merged.Description = update.Description
	}
	if update.Category != "" {
		merged.Category = update.Category
	}
	if update.Price != 0 {
		merged.Price = update.Price
	}
	if update.Images != nil {
		merged.Images = update.Images
	}
	if update.SellerName != "" {
		merged.SellerName = update.SellerName
	}
	if !update.CreatedAt.IsZero() {
		merged.CreatedAt = update.CreatedAt
	}

	return merged
}
