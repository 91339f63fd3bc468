package store_test

import (
	"context"
	"testing"

	apperrors "github.com/ecofinds/marketplace-client/internal/errors"
	"github.com/ecofinds/marketplace-client/internal/models"
	"github.com/ecofinds/marketplace-client/internal/store"
	"github.com/ecofinds/marketplace-client/internal/store/mocks"
	"github.com/ecofinds/marketplace-client/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCartStore(t *testing.T, user *models.User) (*store.CartStore, *mocks.CartAPI, *testutils.FakeIdentity, *testutils.NotifierSpy) {
	t.Helper()

	mockAPI := new(mocks.CartAPI)
	identity := testutils.NewFakeIdentity(user)
	spy := &testutils.NotifierSpy{}

	s := store.NewCartStore(mockAPI, identity, spy)

	return s, mockAPI, identity, spy
}

func cartResponse(msg string, items ...models.CartItem) *models.CartResponse {
	return &models.CartResponse{Msg: msg, Cart: items}
}

func TestFetchCart(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: 1, Username: "maya_renews"}

	t.Run("No user - clears without a network call", func(t *testing.T) {
		s, mockAPI, _, _ := newCartStore(t, nil)

		s.FetchCart(ctx)

		assert.Empty(t, s.Items())
		mockAPI.AssertNotCalled(t, "GetCart")
	})

	t.Run("Success", func(t *testing.T) {
		s, mockAPI, _, _ := newCartStore(t, user)

		items := []models.CartItem{{ID: 1, ProductID: 4, Quantity: 2}}
		mockAPI.On("GetCart", mock.Anything).Return(items, nil).Once()

		s.FetchCart(ctx)

		assert.Equal(t, items, s.Items())
		mockAPI.AssertExpectations(t)
	})

	t.Run("Failure - keeps previous snapshot", func(t *testing.T) {
		s, mockAPI, _, spy := newCartStore(t, user)

		items := []models.CartItem{{ID: 1, ProductID: 4, Quantity: 2}}
		mockAPI.On("GetCart", mock.Anything).Return(items, nil).Once()
		s.FetchCart(ctx)

		mockAPI.On("GetCart", mock.Anything).
			Return(nil, apperrors.TransportError("Request failed: get_cart")).Once()
		s.FetchCart(ctx)

		assert.Equal(t, items, s.Items())
		assert.Equal(t, 1, spy.Count())
		mockAPI.AssertExpectations(t)
	})
}

func TestAddToCart(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: 1, Username: "maya_renews"}

	t.Run("Failure - no signed-in user, no network call", func(t *testing.T) {
		s, mockAPI, _, spy := newCartStore(t, nil)

		ok := s.AddToCart(ctx, 4, 1)

		assert.False(t, ok)
		assert.Equal(t, 1, spy.Count())
		mockAPI.AssertNotCalled(t, "AddToCart")
	})

	t.Run("Zero quantity defaults to one", func(t *testing.T) {
		s, mockAPI, _, _ := newCartStore(t, user)

		mockAPI.On("AddToCart", mock.Anything, models.AddToCartRequest{ProductID: 4, Quantity: 1}).
			Return(cartResponse("Item added to cart", models.CartItem{ID: 1, ProductID: 4, Quantity: 1}), nil).Once()

		ok := s.AddToCart(ctx, 4, 0)

		assert.True(t, ok)
		assert.Len(t, s.Items(), 1)
		mockAPI.AssertExpectations(t)
	})

	t.Run("Failure - negative quantity rejected before the network", func(t *testing.T) {
		s, mockAPI, _, spy := newCartStore(t, user)

		ok := s.AddToCart(ctx, 4, -2)

		assert.False(t, ok)
		last, _ := spy.Last()
		assert.Equal(t, "Quantity must be at least 1", last.Description)
		mockAPI.AssertNotCalled(t, "AddToCart")
	})

	t.Run("Success - backend cart is authoritative", func(t *testing.T) {
		s, mockAPI, _, spy := newCartStore(t, user)

		returned := []models.CartItem{
			{ID: 1, ProductID: 4, Quantity: 3},
			{ID: 2, ProductID: 6, Quantity: 1},
		}
		mockAPI.On("AddToCart", mock.Anything, models.AddToCartRequest{ProductID: 6, Quantity: 1}).
			Return(cartResponse("Item added to cart", returned...), nil).Once()

		ok := s.AddToCart(ctx, 6, 1)

		assert.True(t, ok)
		assert.Equal(t, returned, s.Items())

		last, _ := spy.Last()
		assert.Equal(t, "Added to cart", last.Title)
		mockAPI.AssertExpectations(t)
	})

	t.Run("Failure - API rejection notifies", func(t *testing.T) {
		s, mockAPI, _, spy := newCartStore(t, user)

		mockAPI.On("AddToCart", mock.Anything, models.AddToCartRequest{ProductID: 1, Quantity: 1}).
			Return(nil, apperrors.ForbiddenError("You cannot add your own product to the cart")).Once()

		ok := s.AddToCart(ctx, 1, 1)

		assert.False(t, ok)
		last, _ := spy.Last()
		assert.Equal(t, "You cannot add your own product to the cart", last.Description)
		mockAPI.AssertExpectations(t)
	})
}

func TestSetQuantityAndRemove(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: 1, Username: "maya_renews"}

	t.Run("SetQuantity replaces the snapshot", func(t *testing.T) {
		s, mockAPI, _, _ := newCartStore(t, user)

		mockAPI.On("UpdateCartQuantity", mock.Anything, int64(4), 5).
			Return(cartResponse("Cart updated", models.CartItem{ID: 1, ProductID: 4, Quantity: 5}), nil).Once()

		ok := s.SetQuantity(ctx, 4, 5)

		assert.True(t, ok)
		assert.Equal(t, 5, s.Items()[0].Quantity)
		mockAPI.AssertExpectations(t)
	})

	t.Run("Remove empties the line", func(t *testing.T) {
		s, mockAPI, _, _ := newCartStore(t, user)

		mockAPI.On("RemoveFromCart", mock.Anything, int64(4)).
			Return(cartResponse("Item removed from cart"), nil).Once()

		ok := s.Remove(ctx, 4)

		assert.True(t, ok)
		assert.Empty(t, s.Items())
		mockAPI.AssertExpectations(t)
	})

	t.Run("Remove failure keeps the snapshot", func(t *testing.T) {
		s, mockAPI, _, spy := newCartStore(t, user)

		items := []models.CartItem{{ID: 1, ProductID: 4, Quantity: 2}}
		mockAPI.On("GetCart", mock.Anything).Return(items, nil).Once()
		s.FetchCart(ctx)

		mockAPI.On("RemoveFromCart", mock.Anything, int64(4)).
			Return(nil, apperrors.NotFoundError("Item not found in cart")).Once()

		ok := s.Remove(ctx, 4)

		assert.False(t, ok)
		assert.Equal(t, items, s.Items())
		assert.Equal(t, 1, spy.Count())
		mockAPI.AssertExpectations(t)
	})
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: 1, Username: "maya_renews"}

	t.Run("Success - empties cart and prepends purchase", func(t *testing.T) {
		s, mockAPI, _, spy := newCartStore(t, user)

		mockAPI.On("GetCart", mock.Anything).
			Return([]models.CartItem{{ID: 1, ProductID: 4, Quantity: 1}}, nil).Once()
		s.FetchCart(ctx)

		older := models.Purchase{ID: 1, UserID: 1, TotalAmount: 25}
		mockAPI.On("GetPurchases", mock.Anything).
			Return([]models.Purchase{older}, nil).Once()
		s.FetchPurchases(ctx)

		purchase := models.Purchase{ID: 2, UserID: 1, TotalAmount: 189}
		mockAPI.On("Checkout", mock.Anything).
			Return(&models.CheckoutResponse{Msg: "Purchase successful", PurchaseDetails: &purchase}, nil).Once()

		result, ok := s.Checkout(ctx)

		assert.True(t, ok)
		assert.Equal(t, &purchase, result)
		assert.Empty(t, s.Items())
		assert.Equal(t, []models.Purchase{purchase, older}, s.Purchases())

		last, _ := spy.Last()
		assert.Equal(t, "Success", last.Title)
		mockAPI.AssertExpectations(t)
	})

	t.Run("Failure - empty cart rejection keeps state", func(t *testing.T) {
		s, mockAPI, _, spy := newCartStore(t, user)

		mockAPI.On("Checkout", mock.Anything).
			Return(nil, apperrors.BadRequestError("Cart is empty")).Once()

		result, ok := s.Checkout(ctx)

		assert.False(t, ok)
		assert.Nil(t, result)
		last, _ := spy.Last()
		assert.Equal(t, "Cart is empty", last.Description)
		mockAPI.AssertExpectations(t)
	})

	t.Run("Failure - missing purchase details treated as failure", func(t *testing.T) {
		s, mockAPI, _, spy := newCartStore(t, user)

		mockAPI.On("Checkout", mock.Anything).
			Return(&models.CheckoutResponse{Msg: "Purchase successful"}, nil).Once()

		_, ok := s.Checkout(ctx)

		assert.False(t, ok)
		assert.Equal(t, 1, spy.Count())
		mockAPI.AssertExpectations(t)
	})
}

func TestSubtotal(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: 1, Username: "maya_renews"}

	s, mockAPI, _, _ := newCartStore(t, user)

	headphones := models.Product{ID: 4, Price: 189}
	skillet := models.Product{ID: 6, Price: 34.5}

	mockAPI.On("GetCart", mock.Anything).Return([]models.CartItem{
		{ID: 1, ProductID: 4, Quantity: 2, Product: &headphones},
		{ID: 2, ProductID: 6, Quantity: 1, Product: &skillet},
		{ID: 3, ProductID: 9, Quantity: 3}, // product no longer resolvable
	}, nil).Once()
	s.FetchCart(ctx)

	assert.InEpsilon(t, 412.5, s.Subtotal(), 1e-9)
	mockAPI.AssertExpectations(t)
}

func TestSignOutClearsCart(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: 1, Username: "maya_renews"}

	s, mockAPI, identity, _ := newCartStore(t, user)

	mockAPI.On("GetCart", mock.Anything).
		Return([]models.CartItem{{ID: 1, ProductID: 4, Quantity: 1}}, nil).Once()
	s.FetchCart(ctx)

	mockAPI.On("GetPurchases", mock.Anything).
		Return([]models.Purchase{{ID: 1, UserID: 1}}, nil).Once()
	s.FetchPurchases(ctx)

	identity.SetUser(nil)

	assert.Empty(t, s.Items())
	assert.Empty(t, s.Purchases())
	mockAPI.AssertExpectations(t)
}
