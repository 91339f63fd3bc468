// Package store holds the client-side state containers. Each store is the
// single source of truth for one view concern, delegates all persistence to
// the API client, and surfaces every failure through the notifier instead
// of propagating it.
package store

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/ecofinds/marketplace-client/internal/models"
	"github.com/ecofinds/marketplace-client/internal/notify"
	"github.com/ecofinds/marketplace-client/internal/utils"
	"github.com/go-playground/validator/v10"
)

const defaultPageSize = 8

// ProductAPI is the slice of the API client the product store consumes.
type ProductAPI interface {
	GetProducts(ctx context.Context, category models.Category, query string, page, pageSize int) (*models.PaginatedProductsResponse, error)
	GetMyListings(ctx context.Context) (*models.MyListingsResponse, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, input models.ProductInput, images []models.ImageUpload) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch models.ProductPatch, newImages []models.ImageUpload, existingImages []string) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) (*models.DeleteResponse, error)
}

// Identity exposes the signed-in user and identity-change notification.
// *auth.Session satisfies it.
type Identity interface {
	CurrentUser() *models.User
	OnChange(func(user *models.User))
}

// ProductStore owns the browse page, the user's own listings, pagination
// metadata, the active filter/search, and the loading flag.
type ProductStore struct {
	api      ProductAPI
	identity Identity
	notifier notify.Notifier
	validate *validator.Validate
	logger   *slog.Logger
	pageSize int

	mu             sync.Mutex
	products       []models.Product
	userProducts   []models.Product
	currentPage    int
	totalPages     int
	totalProducts  int
	hasNext        bool
	hasPrev        bool
	activeCategory models.Category
	searchQuery    string
	loading        bool

	// Monotonic tokens per operation class. A response whose token is no
	// longer the latest issued is stale and discarded.
	browseSeq   uint64
	listingsSeq uint64
}

// ProductStoreOption tunes a ProductStore at construction time.
type ProductStoreOption func(*ProductStore)

// WithPageSize sets how many products a browse page requests. Non-positive
// values keep the default.
func WithPageSize(size int) ProductStoreOption {
	return func(s *ProductStore) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

func NewProductStore(api ProductAPI, identity Identity, notifier notify.Notifier, logger *slog.Logger, opts ...ProductStoreOption) *ProductStore {
	s := &ProductStore{
		api:            api,
		identity:       identity,
		notifier:       notifier,
		validate:       validator.New(),
		logger:         logger,
		pageSize:       defaultPageSize,
		currentPage:    1,
		totalPages:     1,
		activeCategory: models.CategoryAll,
	}

	for _, opt := range opts {
		opt(s)
	}

	identity.OnChange(func(user *models.User) {
		s.Init(context.Background())
	})

	return s
}

// Init performs the only unsolicited network activity: an unfiltered
// first-page fetch, plus the user's listings when someone is signed in. It
// runs on construction consumers' demand and again whenever the signed-in
// identity changes.
func (s *ProductStore) Init(ctx context.Context) {
	s.mu.Lock()
	s.activeCategory = models.CategoryAll
	s.searchQuery = ""
	s.mu.Unlock()

	s.fetchProducts(ctx, 1, models.CategoryAll, "", false)
	s.FetchUserProducts(ctx)
}

// FetchProducts re-requests the current page with the active filter and
// search.
func (s *ProductStore) FetchProducts(ctx context.Context) {
	s.mu.Lock()
	page, category, query := s.currentPage, s.activeCategory, s.searchQuery
	s.mu.Unlock()

	s.fetchProducts(ctx, page, category, query, false)
}

func (s *ProductStore) fetchProducts(ctx context.Context, page int, category models.Category, query string, keepStaleOnError bool) {
	s.mu.Lock()
	s.loading = true
	s.browseSeq++
	token := s.browseSeq
	pageSize := s.pageSize
	s.mu.Unlock()

	resp, err := s.api.GetProducts(ctx, category, query, page, pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false

	if token != s.browseSeq {
		// Superseded by a later fetch; let that one win.
		return
	}

	if err != nil || resp.Error != "" || resp.Products == nil {
		message := "Failed to load products"

		switch {
		case err != nil:
			message = err.Error()
		case resp.Error != "":
			message = resp.Error
		}

		s.logger.Error("product fetch failed",
			slog.Int("page", page),
			slog.String("category", string(category)),
			slog.String("error", message))
		s.notifier.Notify(notify.Notification{
			Title:       "Error",
			Description: message,
			Variant:     notify.VariantDestructive,
		})

		if !keepStaleOnError {
			s.products = []models.Product{}
			s.currentPage = 1
			s.totalPages = 1
			s.totalProducts = 0
			s.hasNext = false
			s.hasPrev = false
		}

		return
	}

	s.products = resp.Products
	s.currentPage = utils.OrDefault(resp.CurrentPage, 1)
	s.totalPages = utils.OrDefault(resp.TotalPages, 1)
	s.totalProducts = resp.TotalProducts
	s.hasNext = resp.HasNext
	s.hasPrev = resp.HasPrev
}

// FetchUserProducts loads the signed-in user's own listings. Without a
// signed-in user it clears the collection and stays off the network.
func (s *ProductStore) FetchUserProducts(ctx context.Context) {
	if s.identity.CurrentUser() == nil {
		s.mu.Lock()
		s.userProducts = nil
		s.mu.Unlock()

		return
	}

	s.mu.Lock()
	s.listingsSeq++
	token := s.listingsSeq
	s.mu.Unlock()

	resp, err := s.api.GetMyListings(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.listingsSeq {
		return
	}

	if err != nil || resp.Error != "" {
		message := "Failed to load your listings"
		if err != nil {
			message = err.Error()
		} else if resp.Error != "" {
			message = resp.Error
		}

		s.notifier.Notify(notify.Notification{
			Title:       "Error",
			Description: message,
			Variant:     notify.VariantDestructive,
		})
		s.userProducts = nil

		return
	}

	s.userProducts = resp.Products
}

// SetPage navigates to page within [1, totalPages]. Out-of-range pages and
// the current page are no-ops.
func (s *ProductStore) SetPage(ctx context.Context, page int) {
	s.mu.Lock()

	if page < 1 || page > s.totalPages || page == s.currentPage {
		s.mu.Unlock()

		return
	}

	category, query := s.activeCategory, s.searchQuery
	s.mu.Unlock()

	s.fetchProducts(ctx, page, category, query, false)
}

// SetActiveCategory changes the category filter and refetches from page 1.
func (s *ProductStore) SetActiveCategory(ctx context.Context, category models.Category) {
	s.mu.Lock()
	s.activeCategory = category
	query := s.searchQuery
	s.mu.Unlock()

	s.fetchProducts(ctx, 1, category, query, false)
}

// SetSearchQuery changes the search text and refetches from page 1.
func (s *ProductStore) SetSearchQuery(ctx context.Context, query string) {
	s.mu.Lock()
	s.searchQuery = query
	category := s.activeCategory
	s.mu.Unlock()

	s.fetchProducts(ctx, 1, category, query, false)
}

// GetProductByID serves the product from the in-memory page or the user's
// listings when possible, falling back to a single-product fetch.
func (s *ProductStore) GetProductByID(ctx context.Context, id int64) (*models.Product, bool) {
	s.mu.Lock()

	for i := range s.products {
		if s.products[i].ID == id {
			product := s.products[i]
			s.mu.Unlock()

			return &product, true
		}
	}

	for i := range s.userProducts {
		if s.userProducts[i].ID == id {
			product := s.userProducts[i]
			s.mu.Unlock()

			return &product, true
		}
	}

	s.mu.Unlock()

	product, err := s.api.GetProductByID(ctx, strconv.FormatInt(id, 10))
	if err != nil {
		s.notifier.Notify(notify.Notification{
			Title:       "Error",
			Description: err.Error(),
			Variant:     notify.VariantDestructive,
		})

		return nil, false
	}

	return product, true
}

// AddProduct submits a new listing. Requires a signed-in user; without one
// it notifies and never touches the network. On success the user's
// listings are refreshed and the browse view returns to an unfiltered
// first page so the new item surfaces.
func (s *ProductStore) AddProduct(ctx context.Context, input models.ProductInput, images []models.ImageUpload) (*models.Product, bool) {
	if s.identity.CurrentUser() == nil {
		s.notifier.Notify(notify.Notification{
			Title:       "Authentication required",
			Description: "You must be signed in to create a listing",
			Variant:     notify.VariantDestructive,
		})

		return nil, false
	}

	if err := s.validate.Struct(input); err != nil {
		s.notifier.Notify(notify.Notification{
			Title:       "Invalid listing",
			Description: err.Error(),
			Variant:     notify.VariantDestructive,
		})

		return nil, false
	}

	s.setLoading(true)
	product, err := s.api.CreateProduct(ctx, input, images)
	s.setLoading(false)

	if err != nil {
		s.notifier.Notify(notify.Notification{
			Title:       "Error",
			Description: err.Error(),
			Variant:     notify.VariantDestructive,
		})

		return nil, false
	}

	s.notifier.Notify(notify.Notification{
		Title:       "Success",
		Description: "Your listing is live",
		Variant:     notify.VariantDefault,
	})

	s.FetchUserProducts(ctx)

	s.mu.Lock()
	s.activeCategory = models.CategoryAll
	s.searchQuery = ""
	s.mu.Unlock()

	s.fetchProducts(ctx, 1, models.CategoryAll, "", false)

	return product, true
}

// UpdateProduct submits a partial edit and, on success, shallow-merges the
// server's returned product into the matching entry of both collections
// instead of refetching.
func (s *ProductStore) UpdateProduct(ctx context.Context, id int64, patch models.ProductPatch, newImages []models.ImageUpload, existingImages []string) bool {
	if err := s.validate.Struct(patch); err != nil {
		s.notifier.Notify(notify.Notification{
			Title:       "Invalid listing",
			Description: err.Error(),
			Variant:     notify.VariantDestructive,
		})

		return false
	}

	s.setLoading(true)
	updated, err := s.api.UpdateProduct(ctx, strconv.FormatInt(id, 10), patch, newImages, existingImages)
	s.setLoading(false)

	if err != nil {
		s.notifier.Notify(notify.Notification{
			Title:       "Error",
			Description: err.Error(),
			Variant:     notify.VariantDestructive,
		})

		return false
	}

	s.mu.Lock()

	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i] = s.products[i].Merge(*updated)
		}
	}

	for i := range s.userProducts {
		if s.userProducts[i].ID == id {
			s.userProducts[i] = s.userProducts[i].Merge(*updated)
		}
	}

	s.mu.Unlock()

	s.notifier.Notify(notify.Notification{
		Title:       "Success",
		Description: "Listing updated",
		Variant:     notify.VariantDefault,
	})

	return true
}

// DeleteProduct removes a listing: optimistic removal from both
// collections first, then a listings refresh and a browse refresh that
// keeps the already-updated page on a transient failure. When the removal
// empties a page past the first, the previous page is fetched as well.
func (s *ProductStore) DeleteProduct(ctx context.Context, id int64) bool {
	s.setLoading(true)
	resp, err := s.api.DeleteProduct(ctx, strconv.FormatInt(id, 10))
	s.setLoading(false)

	if err != nil || resp.Error != "" || resp.Msg == "" {
		message := "Failed to delete listing"
		if err != nil {
			message = err.Error()
		} else if resp.Error != "" {
			message = resp.Error
		}

		s.notifier.Notify(notify.Notification{
			Title:       "Error",
			Description: message,
			Variant:     notify.VariantDestructive,
		})

		return false
	}

	s.notifier.Notify(notify.Notification{
		Title:       "Success",
		Description: resp.Msg,
		Variant:     notify.VariantDefault,
	})

	s.mu.Lock()
	s.products = removeByID(s.products, id)
	s.userProducts = removeByID(s.userProducts, id)
	pageNowEmpty := len(s.products) == 0 && s.currentPage > 1
	page, category, query := s.currentPage, s.activeCategory, s.searchQuery
	s.mu.Unlock()

	s.FetchUserProducts(ctx)
	s.fetchProducts(ctx, page, category, query, true)

	if pageNowEmpty {
		s.fetchProducts(ctx, page-1, category, query, false)
	}

	return true
}

func removeByID(products []models.Product, id int64) []models.Product {
	kept := products[:0]

	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}

	return kept
}

func (s *ProductStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// --- read accessors ---

func (s *ProductStore) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Product, len(s.products))
	copy(out, s.products)

	return out
}

func (s *ProductStore) UserProducts() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Product, len(s.userProducts))
	copy(out, s.userProducts)

	return out
}

func (s *ProductStore) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.currentPage
}

func (s *ProductStore) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.totalPages
}

func (s *ProductStore) TotalProducts() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.totalProducts
}

func (s *ProductStore) HasNext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hasNext
}

func (s *ProductStore) HasPrev() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hasPrev
}

func (s *ProductStore) ActiveCategory() models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.activeCategory
}

func (s *ProductStore) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.searchQuery
}

func (s *ProductStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loading
}
