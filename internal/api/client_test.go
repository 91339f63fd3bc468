package api_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecofinds/marketplace-client/internal/api"
	"github.com/ecofinds/marketplace-client/internal/auth"
	apperrors "github.com/ecofinds/marketplace-client/internal/errors"
	"github.com/ecofinds/marketplace-client/internal/models"
	"github.com/ecofinds/marketplace-client/internal/stubserver"
	"github.com/ecofinds/marketplace-client/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBackend spins up a fresh stub backend per test so state mutations
// cannot leak between tests.
func newBackend(t *testing.T) string {
	t.Helper()

	srv := stubserver.New([]byte("test-secret"), "/uploads", testutils.DiscardLogger())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts.URL + "/api"
}

func newClient(baseURL string) (*api.Client, *auth.Session) {
	session := auth.NewSession()

	return api.NewClient(baseURL, 5*time.Second, session), session
}

func signIn(t *testing.T, client *api.Client, session *auth.Session, email, password string) *models.User {
	t.Helper()

	resp, err := client.Login(context.Background(), models.LoginRequest{Email: email, Password: password})
	require.NoError(t, err)
	require.NoError(t, session.SignIn(resp))

	return session.CurrentUser()
}

func productIDs(products []models.Product) []int64 {
	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	return ids
}

func TestGetProducts(t *testing.T) {
	ctx := context.Background()
	baseURL := newBackend(t)
	client, _ := newClient(baseURL)

	t.Run("First page, newest first", func(t *testing.T) {
		resp, err := client.GetProducts(ctx, models.CategoryAll, "", 1, 4)

		require.NoError(t, err)
		assert.Equal(t, []int64{6, 5, 4, 3}, productIDs(resp.Products))
		assert.Equal(t, 6, resp.TotalProducts)
		assert.Equal(t, 2, resp.TotalPages)
		assert.True(t, resp.HasNext)
		assert.False(t, resp.HasPrev)
	})

	t.Run("Last page", func(t *testing.T) {
		resp, err := client.GetProducts(ctx, models.CategoryAll, "", 2, 4)

		require.NoError(t, err)
		assert.Equal(t, []int64{2, 1}, productIDs(resp.Products))
		assert.False(t, resp.HasNext)
		assert.True(t, resp.HasPrev)
	})

	t.Run("Category filter", func(t *testing.T) {
		resp, err := client.GetProducts(ctx, models.CategoryElectronics, "", 1, 8)

		require.NoError(t, err)
		require.Len(t, resp.Products, 1)
		assert.Equal(t, "Sony WH-1000XM4 Headphones", resp.Products[0].Title)
		assert.Equal(t, 1, resp.TotalProducts)
	})

	t.Run("Search matches descriptions too", func(t *testing.T) {
		resp, err := client.GetProducts(ctx, models.CategoryAll, "noise", 1, 8)

		require.NoError(t, err)
		require.Len(t, resp.Products, 1)
		assert.Equal(t, int64(4), resp.Products[0].ID)
	})

	t.Run("Out-of-range page is empty, not an error", func(t *testing.T) {
		resp, err := client.GetProducts(ctx, models.CategoryAll, "", 99, 8)

		require.NoError(t, err)
		assert.Empty(t, resp.Products)
		assert.Equal(t, 6, resp.TotalProducts)
	})
}

func TestGetProductByID(t *testing.T) {
	ctx := context.Background()
	client, _ := newClient(newBackend(t))

	t.Run("Found", func(t *testing.T) {
		product, err := client.GetProductByID(ctx, "3")

		require.NoError(t, err)
		assert.Equal(t, "Complete Harry Potter Box Set", product.Title)
		assert.Equal(t, "maya_renews", product.SellerName)
	})

	t.Run("Not found", func(t *testing.T) {
		_, err := client.GetProductByID(ctx, "999")

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 404, appErr.StatusCode)
		assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Product not found", appErr.Message)
	})
}

func TestAuth(t *testing.T) {
	ctx := context.Background()

	t.Run("Login success populates the session", func(t *testing.T) {
		client, session := newClient(newBackend(t))

		user := signIn(t, client, session, "maya@ecofinds.dev", "recycle123")

		assert.Equal(t, "maya_renews", user.Username)
		assert.NotEmpty(t, session.AccessToken())
		assert.NotEmpty(t, session.RefreshToken())
		assert.True(t, session.ExpiresAt().After(time.Now()))
	})

	t.Run("Login failure", func(t *testing.T) {
		client, _ := newClient(newBackend(t))

		_, err := client.Login(ctx, models.LoginRequest{Email: "maya@ecofinds.dev", Password: "wrong"})

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 401, appErr.StatusCode)
		assert.Equal(t, "Invalid email or password", appErr.Message)
	})

	t.Run("Register rejects a taken email", func(t *testing.T) {
		client, _ := newClient(newBackend(t))

		_, err := client.Register(ctx, models.RegisterRequest{
			Email:    "maya@ecofinds.dev",
			Username: "other_maya",
			Password: "hunter22",
		})

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 409, appErr.StatusCode)
		assert.Equal(t, apperrors.ErrCodeConflict, appErr.Code)
		assert.Equal(t, "Email already exists", appErr.Message)
	})

	t.Run("Register then fetch own profile", func(t *testing.T) {
		client, session := newClient(newBackend(t))

		resp, err := client.Register(ctx, models.RegisterRequest{
			Email:    "noah@ecofinds.dev",
			Username: "noah_zero_waste",
			Password: "compost1",
		})
		require.NoError(t, err)
		require.NoError(t, session.SignIn(resp))

		me, err := client.Me(ctx)
		require.NoError(t, err)
		assert.Equal(t, "noah_zero_waste", me.Username)
		assert.Equal(t, resp.User.ID, me.ID)
	})

	t.Run("Refresh issues a fresh access token", func(t *testing.T) {
		client, session := newClient(newBackend(t))
		signIn(t, client, session, "maya@ecofinds.dev", "recycle123")

		resp, err := client.Refresh(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, resp.AccessToken)

		session.SetAccessToken(resp.AccessToken)

		_, err = client.Me(ctx)
		assert.NoError(t, err)
	})

	t.Run("Authenticated endpoints reject anonymous calls", func(t *testing.T) {
		client, _ := newClient(newBackend(t))

		_, err := client.GetMyListings(ctx)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 401, appErr.StatusCode)
	})

	t.Run("Update profile rejects a taken username", func(t *testing.T) {
		client, session := newClient(newBackend(t))
		signIn(t, client, session, "maya@ecofinds.dev", "recycle123")

		taken := "thrifty_sam"
		_, err := client.UpdateProfile(ctx, models.ProfilePatch{Username: &taken})

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 409, appErr.StatusCode)
	})
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	client, session := newClient(newBackend(t))
	signIn(t, client, session, "maya@ecofinds.dev", "recycle123")

	input := models.ProductInput{
		Title:       "Bamboo Desk Organizer",
		Description: "Three compartments, lightly used.",
		Category:    models.CategoryHomeGarden,
		Price:       "12.50",
	}

	t.Run("Success - uploads filtered by extension", func(t *testing.T) {
		images := []models.ImageUpload{
			{Filename: "front.png", Content: []byte("png-bytes")},
			{Filename: "malware.exe", Content: []byte("nope")},
		}

		product, err := client.CreateProduct(ctx, input, images)

		require.NoError(t, err)
		assert.Equal(t, int64(7), product.ID)
		assert.Equal(t, "maya_renews", product.SellerName)
		assert.InEpsilon(t, 12.5, product.Price, 1e-9)
		require.Len(t, product.Images, 1)
		assert.Contains(t, product.Images[0], "/uploads/")
	})

	t.Run("Failure - non-numeric price", func(t *testing.T) {
		bad := input
		bad.Price = "twelve"

		_, err := client.CreateProduct(ctx, bad, nil)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "Price must be a positive number", appErr.Message)
	})

	t.Run("Failure - more than two decimal places", func(t *testing.T) {
		bad := input
		bad.Price = "12.505"

		_, err := client.CreateProduct(ctx, bad, nil)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.StatusCode)
	})

	t.Run("Failure - unknown category", func(t *testing.T) {
		bad := input
		bad.Category = "Vehicles"

		_, err := client.CreateProduct(ctx, bad, nil)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "Unknown category", appErr.Message)
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Seller edits price and trims images", func(t *testing.T) {
		baseURL := newBackend(t)
		client, session := newClient(baseURL)
		signIn(t, client, session, "sam@ecofinds.dev", "greenplanet")

		original, err := client.GetProductByID(ctx, "4")
		require.NoError(t, err)
		require.Len(t, original.Images, 2)

		newPrice := "99.99"
		product, err := client.UpdateProduct(ctx, "4",
			models.ProductPatch{Price: &newPrice}, nil, original.Images[:1])

		require.NoError(t, err)
		assert.InEpsilon(t, 99.99, product.Price, 1e-9)
		assert.Equal(t, original.Images[:1], product.Images)
		assert.Equal(t, original.Title, product.Title)
	})

	t.Run("Unknown kept-image URLs are dropped", func(t *testing.T) {
		client, session := newClient(newBackend(t))
		signIn(t, client, session, "sam@ecofinds.dev", "greenplanet")

		product, err := client.UpdateProduct(ctx, "4",
			models.ProductPatch{}, nil, []string{"http://elsewhere/evil.jpg"})

		require.NoError(t, err)
		assert.Empty(t, product.Images)
	})

	t.Run("Non-seller is forbidden", func(t *testing.T) {
		client, session := newClient(newBackend(t))
		signIn(t, client, session, "sam@ecofinds.dev", "greenplanet")

		newTitle := "Hijacked"
		_, err := client.UpdateProduct(ctx, "1", models.ProductPatch{Title: &newTitle}, nil, nil)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 403, appErr.StatusCode)
		assert.Equal(t, apperrors.ErrCodeForbidden, appErr.Code)
		assert.Equal(t, "Not authorized to update this product", appErr.Message)
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Delete cascades into other users' carts", func(t *testing.T) {
		baseURL := newBackend(t)

		seller, sellerSession := newClient(baseURL)
		signIn(t, seller, sellerSession, "sam@ecofinds.dev", "greenplanet")

		buyer, buyerSession := newClient(baseURL)
		signIn(t, buyer, buyerSession, "maya@ecofinds.dev", "recycle123")

		items, err := buyer.GetCart(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Equal(t, int64(4), items[0].ProductID)

		resp, err := seller.DeleteProduct(ctx, "4")
		require.NoError(t, err)
		assert.Equal(t, "Product deleted successfully", resp.Msg)

		_, err = buyer.GetProductByID(ctx, "4")
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 404, appErr.StatusCode)

		items, err = buyer.GetCart(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Non-seller is forbidden", func(t *testing.T) {
		client, session := newClient(newBackend(t))
		signIn(t, client, session, "maya@ecofinds.dev", "recycle123")

		_, err := client.DeleteProduct(ctx, "4")

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "Not authorized to delete this product", appErr.Message)
	})
}

func TestCartAndCheckout(t *testing.T) {
	ctx := context.Background()
	client, session := newClient(newBackend(t))
	signIn(t, client, session, "maya@ecofinds.dev", "recycle123")

	items, err := client.GetCart(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Sony WH-1000XM4 Headphones", items[0].Product.Title)

	// Adding the same product merges quantities into one line.
	resp, err := client.AddToCart(ctx, models.AddToCartRequest{ProductID: 4, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, resp.Cart, 1)
	assert.Equal(t, 3, resp.Cart[0].Quantity)

	// Own listings cannot be bought.
	_, err = client.AddToCart(ctx, models.AddToCartRequest{ProductID: 1, Quantity: 1})
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.StatusCode)
	assert.Equal(t, "You cannot add your own product to the cart", appErr.Message)

	resp, err = client.UpdateCartQuantity(ctx, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Cart[0].Quantity)

	checkout, err := client.Checkout(ctx)
	require.NoError(t, err)
	require.NotNil(t, checkout.PurchaseDetails)
	assert.Equal(t, "Checkout successful!", checkout.Msg)
	assert.InEpsilon(t, 378.0, checkout.PurchaseDetails.TotalAmount, 1e-9)
	require.Len(t, checkout.PurchaseDetails.Items, 1)
	assert.InEpsilon(t, 189.0, checkout.PurchaseDetails.Items[0].PriceAtPurchase, 1e-9)

	items, err = client.GetCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = client.Checkout(ctx)
	appErr, ok = apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "Cart is empty. Nothing to checkout.", appErr.Message)

	// History is newest first; the fixture purchase trails the fresh one.
	purchases, err := client.GetPurchases(ctx)
	require.NoError(t, err)
	require.Len(t, purchases, 2)
	assert.Equal(t, checkout.PurchaseID, purchases[0].ID)
	assert.InEpsilon(t, 70.0, purchases[1].TotalAmount, 1e-9)
}

func TestWishlist(t *testing.T) {
	ctx := context.Background()
	client, session := newClient(newBackend(t))
	signIn(t, client, session, "maya@ecofinds.dev", "recycle123")

	require.NoError(t, client.AddToWishlist(ctx, 4))

	err := client.AddToWishlist(ctx, 4)
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.StatusCode)

	err = client.AddToWishlist(ctx, 1)
	appErr, ok = apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "You cannot add your own product to your wishlist", appErr.Message)

	products, err := client.GetWishlist(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(4), products[0].ID)

	require.NoError(t, client.RemoveFromWishlist(ctx, 4))

	err = client.RemoveFromWishlist(ctx, 4)
	appErr, ok = apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}
