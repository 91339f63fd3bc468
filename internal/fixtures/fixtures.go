// Package fixtures holds static sample data used to seed the stub server
// and to back tests and demos. Nothing in the runtime path depends on it.
package fixtures

import (
	"time"

	"github.com/ecofinds/marketplace-client/internal/models"
)

var baseTime = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func Users() []models.User {
	return []models.User{
		{
			ID:        1,
			Email:     "maya@ecofinds.dev",
			Username:  "maya_renews",
			CreatedAt: baseTime.AddDate(0, -6, 0),
		},
		{
			ID:           2,
			Email:        "sam@ecofinds.dev",
			Username:     "thrifty_sam",
			ProfileImage: "http://localhost:5000/uploads/sam.png",
			CreatedAt:    baseTime.AddDate(0, -3, 0),
		},
	}
}

// Passwords returns the plaintext credentials matching Users, keyed by
// email. Only the stub server hashes and stores them.
func Passwords() map[string]string {
	return map[string]string{
		"maya@ecofinds.dev": "recycle123",
		"sam@ecofinds.dev":  "greenplanet",
	}
}

func Products() []models.Product {
	return []models.Product{
		{
			ID:          1,
			Title:       "Refurbished Standing Desk",
			Description: "Height adjustable, barely used, small scratch on the left edge.",
			Category:    models.CategoryFurniture,
			Price:       149.50,
			Images:      []string{"http://localhost:5000/uploads/desk-front.jpg"},
			SellerID:    1,
			SellerName:  "maya_renews",
			CreatedAt:   baseTime.Add(-96 * time.Hour),
		},
		{
			ID:          2,
			Title:       "Vintage Denim Jacket",
			Description: "Classic 90s wash, size M, no rips.",
			Category:    models.CategoryClothing,
			Price:       35,
			Images:      []string{"http://localhost:5000/uploads/denim.jpg"},
			SellerID:    2,
			SellerName:  "thrifty_sam",
			CreatedAt:   baseTime.Add(-72 * time.Hour),
		},
		{
			ID:          3,
			Title:       "Complete Harry Potter Box Set",
			Description: "Paperback, all seven books, good condition.",
			Category:    models.CategoryBooks,
			Price:       42.99,
			Images:      []string{"http://localhost:5000/uploads/hp-boxset.jpg"},
			SellerID:    1,
			SellerName:  "maya_renews",
			CreatedAt:   baseTime.Add(-48 * time.Hour),
		},
		{
			ID:          4,
			Title:       "Sony WH-1000XM4 Headphones",
			Description: "Noise cancelling over-ears, comes with original case and cable.",
			Category:    models.CategoryElectronics,
			Price:       189,
			Images: []string{
				"http://localhost:5000/uploads/sony-case.jpg",
				"http://localhost:5000/uploads/sony-side.jpg",
			},
			SellerID:   2,
			SellerName: "thrifty_sam",
			CreatedAt:  baseTime.Add(-24 * time.Hour),
		},
		{
			ID:          5,
			Title:       "Wooden Train Set",
			Description: "40 pieces, compatible with the big-brand tracks.",
			Category:    models.CategoryToys,
			Price:       18.75,
			Images:      []string{"http://localhost:5000/uploads/train.jpg"},
			SellerID:    1,
			SellerName:  "maya_renews",
			CreatedAt:   baseTime.Add(-12 * time.Hour),
		},
		{
			ID:          6,
			Title:       "Cast Iron Skillet 26cm",
			Description: "Pre-seasoned, smooth cooking surface.",
			Category:    models.CategoryHomeGarden,
			Price:       24,
			Images:      nil,
			SellerID:    2,
			SellerName:  "thrifty_sam",
			CreatedAt:   baseTime.Add(-2 * time.Hour),
		},
	}
}

func CartItems() []models.CartItem {
	products := Products()

	return []models.CartItem{
		{
			ID:        1,
			ProductID: 4,
			Quantity:  1,
			Product:   &products[3],
			AddedAt:   baseTime.Add(-90 * time.Minute),
		},
	}
}

func Purchases() []models.Purchase {
	return []models.Purchase{
		{
			ID:           1,
			UserID:       1,
			TotalAmount:  70,
			PurchaseDate: baseTime.AddDate(0, -1, 0),
			Items: []models.PurchaseItem{
				{
					ProductID:       2,
					ProductTitle:    "Vintage Denim Jacket",
					ProductImage:    "http://localhost:5000/uploads/denim.jpg",
					Quantity:        2,
					PriceAtPurchase: 35,
				},
			},
		},
	}
}
