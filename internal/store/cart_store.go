package store

import (
	"context"
	"sync"

	"github.com/ecofinds/marketplace-client/internal/models"
	"github.com/ecofinds/marketplace-client/internal/notify"
)

// CartAPI is the slice of the API client the cart store consumes.
type CartAPI interface {
	GetCart(ctx context.Context) ([]models.CartItem, error)
	AddToCart(ctx context.Context, req models.AddToCartRequest) (*models.CartResponse, error)
	UpdateCartQuantity(ctx context.Context, productID int64, quantity int) (*models.CartResponse, error)
	RemoveFromCart(ctx context.Context, productID int64) (*models.CartResponse, error)
	Checkout(ctx context.Context) (*models.CheckoutResponse, error)
	GetPurchases(ctx context.Context) ([]models.Purchase, error)
}

// CartStore holds the signed-in user's cart and purchase history for
// display. Mutations take the backend's returned cart as authoritative.
type CartStore struct {
	api      CartAPI
	identity Identity
	notifier notify.Notifier

	mu        sync.Mutex
	items     []models.CartItem
	purchases []models.Purchase
}

func NewCartStore(api CartAPI, identity Identity, notifier notify.Notifier) *CartStore {
	s := &CartStore{
		api:      api,
		identity: identity,
		notifier: notifier,
	}

	identity.OnChange(func(user *models.User) {
		if user == nil {
			s.mu.Lock()
			s.items = nil
			s.purchases = nil
			s.mu.Unlock()
		}
	})

	return s
}

func (s *CartStore) FetchCart(ctx context.Context) {
	if s.identity.CurrentUser() == nil {
		s.mu.Lock()
		s.items = nil
		s.mu.Unlock()

		return
	}

	items, err := s.api.GetCart(ctx)
	if err != nil {
		s.notifyError(err.Error())

		return
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// AddToCart puts quantity of a product into the cart. Quantity defaults to
// one; values below one are rejected before any network call.
func (s *CartStore) AddToCart(ctx context.Context, productID int64, quantity int) bool {
	if s.identity.CurrentUser() == nil {
		s.notifyError("You must be signed in to use the cart")

		return false
	}

	if quantity == 0 {
		quantity = 1
	}

	if quantity < 1 {
		s.notifyError("Quantity must be at least 1")

		return false
	}

	resp, err := s.api.AddToCart(ctx, models.AddToCartRequest{ProductID: productID, Quantity: quantity})
	if err != nil || resp.Error != "" {
		message := "Failed to add item to cart"
		if err != nil {
			message = err.Error()
		} else if resp.Error != "" {
			message = resp.Error
		}

		s.notifyError(message)

		return false
	}

	s.mu.Lock()
	s.items = resp.Cart
	s.mu.Unlock()

	s.notifier.Notify(notify.Notification{
		Title:       "Added to cart",
		Description: resp.Msg,
		Variant:     notify.VariantDefault,
	})

	return true
}

// SetQuantity updates one cart line. The backend removes the line when the
// quantity drops below one.
func (s *CartStore) SetQuantity(ctx context.Context, productID int64, quantity int) bool {
	resp, err := s.api.UpdateCartQuantity(ctx, productID, quantity)
	if err != nil || resp.Error != "" {
		message := "Failed to update cart"
		if err != nil {
			message = err.Error()
		} else if resp.Error != "" {
			message = resp.Error
		}

		s.notifyError(message)

		return false
	}

	s.mu.Lock()
	s.items = resp.Cart
	s.mu.Unlock()

	return true
}

func (s *CartStore) Remove(ctx context.Context, productID int64) bool {
	resp, err := s.api.RemoveFromCart(ctx, productID)
	if err != nil || resp.Error != "" {
		message := "Failed to remove item"
		if err != nil {
			message = err.Error()
		} else if resp.Error != "" {
			message = resp.Error
		}

		s.notifyError(message)

		return false
	}

	s.mu.Lock()
	s.items = resp.Cart
	s.mu.Unlock()

	return true
}

// Checkout converts the cart into a purchase. On success the cart empties
// and the new purchase is prepended to the history.
func (s *CartStore) Checkout(ctx context.Context) (*models.Purchase, bool) {
	resp, err := s.api.Checkout(ctx)
	if err != nil || resp.Error != "" || resp.PurchaseDetails == nil {
		message := "Checkout failed"
		if err != nil {
			message = err.Error()
		} else if resp.Error != "" {
			message = resp.Error
		}

		s.notifyError(message)

		return nil, false
	}

	s.mu.Lock()
	s.items = nil
	s.purchases = append([]models.Purchase{*resp.PurchaseDetails}, s.purchases...)
	s.mu.Unlock()

	s.notifier.Notify(notify.Notification{
		Title:       "Success",
		Description: resp.Msg,
		Variant:     notify.VariantDefault,
	})

	return resp.PurchaseDetails, true
}

func (s *CartStore) FetchPurchases(ctx context.Context) {
	if s.identity.CurrentUser() == nil {
		s.mu.Lock()
		s.purchases = nil
		s.mu.Unlock()

		return
	}

	purchases, err := s.api.GetPurchases(ctx)
	if err != nil {
		s.notifyError(err.Error())

		return
	}

	s.mu.Lock()
	s.purchases = purchases
	s.mu.Unlock()
}

func (s *CartStore) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)

	return out
}

func (s *CartStore) Purchases() []models.Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Purchase, len(s.purchases))
	copy(out, s.purchases)

	return out
}

// Subtotal sums price x quantity over the current cart snapshot.
func (s *CartStore) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64

	for _, item := range s.items {
		if item.Product != nil {
			total += item.Product.Price * float64(item.Quantity)
		}
	}

	return total
}

func (s *CartStore) notifyError(message string) {
	s.notifier.Notify(notify.Notification{
		Title:       "Error",
		Description: message,
		Variant:     notify.VariantDestructive,
	})
}
