package stubserver

import (
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/ecofinds/marketplace-client/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultPerPage    = 8
	maxUploadMemory   = 10 << 20
	allowedExtensions = ".png .jpg .jpeg .gif .webp"
)

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	perPage, err := strconv.Atoi(q.Get("per_page"))
	if err != nil || perPage < 1 {
		perPage = defaultPerPage
	}

	products, total, totalPages := s.data.productPage(q.Get("category"), q.Get("q"), page, perPage)

	writeJSON(w, http.StatusOK, models.PaginatedProductsResponse{
		Products:      products,
		TotalProducts: total,
		CurrentPage:   page,
		TotalPages:    totalPages,
		HasNext:       page < totalPages,
		HasPrev:       page > 1,
	})
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, ok := s.data.product(id)
	if !ok {
		writeMsg(w, http.StatusNotFound, "Product not found")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleMyListings(w http.ResponseWriter, r *http.Request) {
	products := s.data.productsBySeller(userIDFrom(r.Context()))
	if products == nil {
		products = []models.Product{}
	}

	writeJSON(w, http.StatusOK, models.MyListingsResponse{Products: products})
}

// parsePrice validates the form's price string: a positive number with at
// most two decimal places.
func parsePrice(raw string) (float64, bool) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}

	if !price.IsPositive() || price.Exponent() < -2 {
		return 0, false
	}

	return price.InexactFloat64(), true
}

// storeUploads assigns each allowed upload a unique filename and returns
// the resulting URLs. The stub keeps no bytes; the URL is the record.
func (s *Server) storeUploads(files []*multipart.FileHeader) []string {
	var urls []string

	for _, header := range files {
		if header.Filename == "" {
			continue
		}

		ext := strings.ToLower(path.Ext(header.Filename))
		if ext == "" || !strings.Contains(allowedExtensions, ext) {
			s.logger.Warn("File type not allowed", slog.String("filename", header.Filename))
			continue
		}

		urls = append(urls, s.uploadURL+"/"+uuid.New().String()+ext)
	}

	return urls
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	user, ok := s.data.user(userIDFrom(r.Context()))
	if !ok {
		writeMsg(w, http.StatusNotFound, "Authenticated user not found")
		return
	}

	if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		writeMsg(w, http.StatusUnsupportedMediaType, "Content-Type must be multipart/form-data")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeMsg(w, http.StatusBadRequest, "Malformed multipart form")
		return
	}

	title := s.sanitizer.Sanitize(strings.TrimSpace(r.FormValue("title")))
	description := s.sanitizer.Sanitize(strings.TrimSpace(r.FormValue("description")))
	category := models.Category(strings.TrimSpace(r.FormValue("category")))
	priceStr := r.FormValue("price")

	if title == "" || description == "" || category == "" || priceStr == "" {
		writeMsg(w, http.StatusBadRequest, "Missing required product fields")
		return
	}

	if !category.Valid() {
		writeMsg(w, http.StatusBadRequest, "Unknown category")
		return
	}

	price, ok := parsePrice(priceStr)
	if !ok {
		writeMsg(w, http.StatusBadRequest, "Price must be a positive number")
		return
	}

	var images []string
	if r.MultipartForm != nil {
		images = s.storeUploads(r.MultipartForm.File["images"])
	}

	product := s.data.insertProduct(models.Product{
		Title:       title,
		Description: description,
		Category:    category,
		Price:       price,
		Images:      images,
		SellerID:    user.ID,
		SellerName:  user.Username,
		CreatedAt:   time.Now().UTC(),
	})

	writeJSON(w, http.StatusCreated, product)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, ok := s.data.product(id)
	if !ok {
		writeMsg(w, http.StatusNotFound, "Product not found")
		return
	}

	if product.SellerID != userIDFrom(r.Context()) {
		writeMsg(w, http.StatusForbidden, "Not authorized to update this product")
		return
	}

	if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		writeMsg(w, http.StatusUnsupportedMediaType, "Content-Type must be multipart/form-data for product updates")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeMsg(w, http.StatusBadRequest, "Malformed multipart form")
		return
	}

	form := r.MultipartForm

	if values, present := form.Value["title"]; present && len(values) > 0 {
		product.Title = s.sanitizer.Sanitize(strings.TrimSpace(values[0]))
	}

	if values, present := form.Value["description"]; present && len(values) > 0 {
		product.Description = s.sanitizer.Sanitize(strings.TrimSpace(values[0]))
	}

	if values, present := form.Value["category"]; present && len(values) > 0 {
		category := models.Category(strings.TrimSpace(values[0]))
		if !category.Valid() {
			writeMsg(w, http.StatusBadRequest, "Unknown category")
			return
		}

		product.Category = category
	}

	if values, present := form.Value["price"]; present && len(values) > 0 {
		price, ok := parsePrice(values[0])
		if !ok {
			writeMsg(w, http.StatusBadRequest, "Price must be a positive number")
			return
		}

		product.Price = price
	}

	// The client sends the full list of previously stored image URLs it
	// wants to keep; anything absent from it is dropped.
	var kept []string

	if values, present := form.Value["existingImages"]; present && len(values) > 0 {
		var requested []string
		if err := json.Unmarshal([]byte(values[0]), &requested); err == nil {
			existing := make(map[string]bool, len(product.Images))
			for _, url := range product.Images {
				existing[url] = true
			}

			for _, url := range requested {
				if existing[url] {
					kept = append(kept, url)
				}
			}
		} else {
			s.logger.Warn("Could not parse existingImages JSON", slog.String("raw", values[0]))
			kept = product.Images
		}
	} else {
		kept = product.Images
	}

	product.Images = append(kept, s.storeUploads(form.File["images"])...)

	s.data.updateProduct(product)

	writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, ok := s.data.product(id)
	if !ok {
		writeMsg(w, http.StatusNotFound, "Product not found")
		return
	}

	if product.SellerID != userIDFrom(r.Context()) {
		writeMsg(w, http.StatusForbidden, "Not authorized to delete this product")
		return
	}

	s.data.deleteProduct(id)

	writeMsg(w, http.StatusOK, "Product deleted successfully")
}
