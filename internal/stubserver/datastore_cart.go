package stubserver

import (
	"time"

	"github.com/ecofinds/marketplace-client/internal/models"
	"github.com/shopspring/decimal"
)

// addToCart merges quantity into an existing line or appends a new one.
// Returns the affected line with its product snapshot attached.
func (ds *dataStore) addToCart(userID, productID int64, quantity int) (models.CartItem, []models.CartItem) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	items := ds.carts[userID]

	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			ds.carts[userID] = items

			return ds.snapshotLocked(items[i]), ds.cartOfLocked(userID)
		}
	}

	item := models.CartItem{
		ID:        ds.nextCartItemID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now().UTC(),
	}
	ds.nextCartItemID++
	ds.carts[userID] = append(items, item)

	return ds.snapshotLocked(item), ds.cartOfLocked(userID)
}

func (ds *dataStore) snapshotLocked(item models.CartItem) models.CartItem {
	if product, ok := ds.products[item.ProductID]; ok {
		snapshot := product
		item.Product = &snapshot
	}

	return item
}

// setCartQuantity updates one line; a quantity below 1 removes it. The
// second return is false when the product is not in the cart.
func (ds *dataStore) setCartQuantity(userID, productID int64, quantity int) (*models.CartItem, []models.CartItem, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	items := ds.carts[userID]

	for i := range items {
		if items[i].ProductID != productID {
			continue
		}

		if quantity < 1 {
			ds.carts[userID] = append(items[:i], items[i+1:]...)

			return nil, ds.cartOfLocked(userID), true
		}

		items[i].Quantity = quantity
		ds.carts[userID] = items
		updated := ds.snapshotLocked(items[i])

		return &updated, ds.cartOfLocked(userID), true
	}

	return nil, nil, false
}

func (ds *dataStore) removeFromCart(userID, productID int64) ([]models.CartItem, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	items := ds.carts[userID]

	for i := range items {
		if items[i].ProductID == productID {
			ds.carts[userID] = append(items[:i], items[i+1:]...)

			return ds.cartOfLocked(userID), true
		}
	}

	return nil, false
}

// checkout freezes the cart into a purchase. Totals are computed with
// decimal arithmetic and rounded to cents once at the end.
func (ds *dataStore) checkout(userID int64) (*models.Purchase, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	items := ds.carts[userID]
	if len(items) == 0 {
		return nil, false
	}

	total := decimal.Zero
	purchaseItems := make([]models.PurchaseItem, 0, len(items))

	for _, item := range items {
		product, ok := ds.products[item.ProductID]
		if !ok {
			continue
		}

		price := decimal.NewFromFloat(product.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))

		var image string
		if len(product.Images) > 0 {
			image = product.Images[0]
		}

		purchaseItems = append(purchaseItems, models.PurchaseItem{
			ProductID:       product.ID,
			ProductTitle:    product.Title,
			ProductImage:    image,
			Quantity:        item.Quantity,
			PriceAtPurchase: product.Price,
		})
	}

	purchase := models.Purchase{
		ID:           ds.nextPurchaseID,
		UserID:       userID,
		TotalAmount:  total.Round(2).InexactFloat64(),
		PurchaseDate: time.Now().UTC(),
		Items:        purchaseItems,
	}
	ds.nextPurchaseID++

	ds.purchases[userID] = append(ds.purchases[userID], purchase)
	ds.carts[userID] = nil

	return &purchase, true
}

func (ds *dataStore) wishlistOf(userID int64) []models.Product {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	products := make([]models.Product, 0, len(ds.wishlists[userID]))

	for _, productID := range ds.wishlists[userID] {
		if product, ok := ds.products[productID]; ok {
			products = append(products, product)
		}
	}

	return products
}

func (ds *dataStore) addToWishlist(userID, productID int64) bool {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	for _, id := range ds.wishlists[userID] {
		if id == productID {
			return false
		}
	}

	ds.wishlists[userID] = append(ds.wishlists[userID], productID)

	return true
}

func (ds *dataStore) removeFromWishlist(userID, productID int64) bool {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ids := ds.wishlists[userID]

	for i, id := range ids {
		if id == productID {
			ds.wishlists[userID] = append(ids[:i], ids[i+1:]...)

			return true
		}
	}

	return false
}

func (ds *dataStore) userCount() int {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	return len(ds.users)
}
