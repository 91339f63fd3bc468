package stubserver

import (
	"net/http"
	"strconv"

	"github.com/ecofinds/marketplace-client/internal/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	items := s.data.cartOf(userIDFrom(r.Context()))
	if items == nil {
		items = []models.CartItem{}
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	var req models.AddToCartRequest
	if err := decodeBody(r, &req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Request body is missing or not JSON")
		return
	}

	if req.ProductID == 0 {
		writeMsg(w, http.StatusBadRequest, "productId is required")
		return
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if req.Quantity < 1 {
		writeMsg(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	product, ok := s.data.product(req.ProductID)
	if !ok {
		writeMsg(w, http.StatusNotFound, "Product not found")
		return
	}

	if product.SellerID == userID {
		writeMsg(w, http.StatusForbidden, "You cannot add your own product to the cart")
		return
	}

	item, cart := s.data.addToCart(userID, req.ProductID, req.Quantity)

	writeJSON(w, http.StatusOK, models.CartResponse{
		Msg:  "Item added/updated in cart",
		Item: &item,
		Cart: cart,
	})
}

func (s *Server) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var req models.UpdateCartQuantityRequest
	if err := decodeBody(r, &req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Quantity is required in request body")
		return
	}

	item, cart, found := s.data.setCartQuantity(userID, productID, req.Quantity)
	if !found {
		writeMsg(w, http.StatusNotFound, "Product not found in cart")
		return
	}

	msg := "Cart item quantity updated."
	if item == nil {
		msg = "Item removed from cart as quantity was less than 1."
	}

	writeJSON(w, http.StatusOK, models.CartResponse{
		Msg:  msg,
		Item: item,
		Cart: cart,
	})
}

func (s *Server) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	cart, found := s.data.removeFromCart(userID, productID)
	if !found {
		writeMsg(w, http.StatusNotFound, "Product not found in cart")
		return
	}

	writeJSON(w, http.StatusOK, models.CartResponse{
		Msg:  "Product removed from cart",
		Cart: cart,
	})
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	purchase, ok := s.data.checkout(userIDFrom(r.Context()))
	if !ok {
		writeMsg(w, http.StatusBadRequest, "Cart is empty. Nothing to checkout.")
		return
	}

	writeJSON(w, http.StatusOK, models.CheckoutResponse{
		Msg:             "Checkout successful!",
		PurchaseID:      purchase.ID,
		PurchaseDetails: purchase,
	})
}

func (s *Server) handlePurchaseHistory(w http.ResponseWriter, r *http.Request) {
	history := s.data.purchasesOf(userIDFrom(r.Context()))
	if history == nil {
		history = []models.Purchase{}
	}

	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleGetWishlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.wishlistOf(userIDFrom(r.Context())))
}

func (s *Server) handleAddToWishlist(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, ok := s.data.product(productID)
	if !ok {
		writeMsg(w, http.StatusNotFound, "Product not found")
		return
	}

	if product.SellerID == userID {
		writeMsg(w, http.StatusForbidden, "You cannot add your own product to your wishlist")
		return
	}

	if !s.data.addToWishlist(userID, productID) {
		writeMsg(w, http.StatusConflict, "Product already in wishlist")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"msg":       "Product added to wishlist",
		"productId": productID,
	})
}

func (s *Server) handleRemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	if _, ok := s.data.product(productID); !ok {
		writeMsg(w, http.StatusNotFound, "Product not found, so it cannot be in wishlist")
		return
	}

	if !s.data.removeFromWishlist(userID, productID) {
		writeMsg(w, http.StatusNotFound, "Product not in wishlist")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"msg":       "Product removed from wishlist",
		"productId": productID,
	})
}
