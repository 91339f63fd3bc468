package stubserver

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ecofinds/marketplace-client/internal/fixtures"
	"github.com/ecofinds/marketplace-client/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// dataStore is the stub server's in-memory world: users, products, carts,
// wishlists and purchases, seeded from fixtures. A single mutex is enough
// at this scale.
type dataStore struct {
	mu sync.Mutex

	users     map[int64]models.User
	passwords map[int64][]byte
	products  map[int64]models.Product
	carts     map[int64][]models.CartItem
	wishlists map[int64][]int64
	purchases map[int64][]models.Purchase

	nextUserID     int64
	nextProductID  int64
	nextCartItemID int64
	nextPurchaseID int64
}

func newDataStore() *dataStore {
	ds := &dataStore{
		users:     make(map[int64]models.User),
		passwords: make(map[int64][]byte),
		products:  make(map[int64]models.Product),
		carts:     make(map[int64][]models.CartItem),
		wishlists: make(map[int64][]int64),
		purchases: make(map[int64][]models.Purchase),
	}

	ds.seed()

	return ds
}

func (ds *dataStore) seed() {
	passwords := fixtures.Passwords()

	for _, user := range fixtures.Users() {
		ds.users[user.ID] = user

		if plain, ok := passwords[user.Email]; ok {
			hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
			if err == nil {
				ds.passwords[user.ID] = hash
			}
		}

		if user.ID >= ds.nextUserID {
			ds.nextUserID = user.ID + 1
		}
	}

	for _, product := range fixtures.Products() {
		ds.products[product.ID] = product

		if product.ID >= ds.nextProductID {
			ds.nextProductID = product.ID + 1
		}
	}

	for _, item := range fixtures.CartItems() {
		ds.carts[1] = append(ds.carts[1], item)

		if item.ID >= ds.nextCartItemID {
			ds.nextCartItemID = item.ID + 1
		}
	}

	for _, purchase := range fixtures.Purchases() {
		ds.purchases[purchase.UserID] = append(ds.purchases[purchase.UserID], purchase)

		if purchase.ID >= ds.nextPurchaseID {
			ds.nextPurchaseID = purchase.ID + 1
		}
	}
}

func (ds *dataStore) userByEmail(email string) (models.User, []byte, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	for id, user := range ds.users {
		if strings.EqualFold(user.Email, email) {
			return user, ds.passwords[id], true
		}
	}

	return models.User{}, nil, false
}

func (ds *dataStore) userByUsername(username string) (models.User, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	for _, user := range ds.users {
		if user.Username == username {
			return user, true
		}
	}

	return models.User{}, false
}

func (ds *dataStore) user(id int64) (models.User, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	user, ok := ds.users[id]

	return user, ok
}

func (ds *dataStore) createUser(req models.RegisterRequest) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	user := models.User{
		ID:           ds.nextUserID,
		Email:        req.Email,
		Username:     req.Username,
		ProfileImage: req.ProfileImage,
		CreatedAt:    time.Now().UTC(),
	}
	ds.nextUserID++
	ds.users[user.ID] = user
	ds.passwords[user.ID] = hash

	return user, nil
}

func (ds *dataStore) updateUser(user models.User) {
	ds.mu.Lock()
	ds.users[user.ID] = user
	ds.mu.Unlock()
}

// productPage filters, sorts newest first, and slices one page. page is
// 1-based; per the backend contract an out-of-range page yields an empty
// page, not an error.
func (ds *dataStore) productPage(category, query string, page, perPage int) ([]models.Product, int, int) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	matched := make([]models.Product, 0, len(ds.products))

	for _, product := range ds.products {
		if category != "" && !strings.EqualFold(category, "all") && !strings.EqualFold(string(product.Category), category) {
			continue
		}

		if query != "" {
			needle := strings.ToLower(query)
			if !strings.Contains(strings.ToLower(product.Title), needle) &&
				!strings.Contains(strings.ToLower(product.Description), needle) {
				continue
			}
		}

		matched = append(matched, product)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)

	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	startIdx := (page - 1) * perPage
	if startIdx >= total || startIdx < 0 {
		return []models.Product{}, total, totalPages
	}

	endIdx := startIdx + perPage
	if endIdx > total {
		endIdx = total
	}

	pageItems := make([]models.Product, endIdx-startIdx)
	copy(pageItems, matched[startIdx:endIdx])

	return pageItems, total, totalPages
}

func (ds *dataStore) product(id int64) (models.Product, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	product, ok := ds.products[id]

	return product, ok
}

func (ds *dataStore) productsBySeller(sellerID int64) []models.Product {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	var owned []models.Product

	for _, product := range ds.products {
		if product.SellerID == sellerID {
			owned = append(owned, product)
		}
	}

	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	return owned
}

func (ds *dataStore) insertProduct(product models.Product) models.Product {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	product.ID = ds.nextProductID
	ds.nextProductID++
	ds.products[product.ID] = product

	return product
}

func (ds *dataStore) updateProduct(product models.Product) {
	ds.mu.Lock()
	ds.products[product.ID] = product
	ds.mu.Unlock()
}

// deleteProduct removes the listing and every cart line and wishlist entry
// referencing it. Purchase snapshots stay untouched.
func (ds *dataStore) deleteProduct(id int64) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	delete(ds.products, id)

	for userID, items := range ds.carts {
		kept := items[:0]

		for _, item := range items {
			if item.ProductID != id {
				kept = append(kept, item)
			}
		}

		ds.carts[userID] = kept
	}

	for userID, ids := range ds.wishlists {
		kept := ids[:0]

		for _, pid := range ids {
			if pid != id {
				kept = append(kept, pid)
			}
		}

		ds.wishlists[userID] = kept
	}
}

// cartOf returns the user's cart with fresh product snapshots attached.
func (ds *dataStore) cartOf(userID int64) []models.CartItem {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	return ds.cartOfLocked(userID)
}

func (ds *dataStore) cartOfLocked(userID int64) []models.CartItem {
	items := ds.carts[userID]
	out := make([]models.CartItem, 0, len(items))

	for _, item := range items {
		if product, ok := ds.products[item.ProductID]; ok {
			snapshot := product
			item.Product = &snapshot
		}

		out = append(out, item)
	}

	return out
}

func (ds *dataStore) purchasesOf(userID int64) []models.Purchase {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	history := make([]models.Purchase, len(ds.purchases[userID]))
	copy(history, ds.purchases[userID])

	sort.Slice(history, func(i, j int) bool {
		return history[i].PurchaseDate.After(history[j].PurchaseDate)
	})

	return history
}
