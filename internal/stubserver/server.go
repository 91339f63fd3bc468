// Package stubserver is an in-memory implementation of the EcoFinds REST
// API, seeded from fixtures. Demos run against it instead of a real
// backend, and the API-client tests use it behind httptest.
package stubserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ecofinds/marketplace-client/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/hellofresh/health-go/v5"
	"github.com/microcosm-cc/bluemonday"
)

type Server struct {
	data      *dataStore
	jwtKey    []byte
	uploadURL string
	sanitizer *bluemonday.Policy
	validate  *validator.Validate
	logger    *slog.Logger
	started   time.Time
}

func New(jwtKey []byte, uploadURL string, logger *slog.Logger) *Server {
	return &Server{
		data:      newDataStore(),
		jwtKey:    jwtKey,
		uploadURL: uploadURL,
		sanitizer: bluemonday.StrictPolicy(),
		validate:  validator.New(),
		logger:    logger,
		started:   time.Now(),
	}
}

// Handler builds the full route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(s.logging)
	r.Use(metrics.Middleware)

	r.Route("/api", func(api chi.Router) {
		api.Post("/register", s.handleRegister)
		api.Post("/login", s.handleLogin)
		api.Get("/products", s.handleListProducts)
		api.Get("/products/{id}", s.handleGetProduct)

		api.Group(func(authed chi.Router) {
			authed.Use(s.authenticate)

			authed.Post("/refresh", s.handleRefresh)
			authed.Post("/logout", s.handleLogout)
			authed.Get("/me", s.handleMe)
			authed.Put("/profile", s.handleUpdateProfile)

			authed.Post("/products", s.handleCreateProduct)
			authed.Put("/products/{id}", s.handleUpdateProduct)
			authed.Delete("/products/{id}", s.handleDeleteProduct)
			authed.Get("/my-listings", s.handleMyListings)

			authed.Get("/cart", s.handleGetCart)
			authed.Post("/cart", s.handleAddToCart)
			authed.Put("/cart/item/{productId}", s.handleUpdateCartItem)
			authed.Delete("/cart/item/{productId}", s.handleRemoveFromCart)
			authed.Post("/cart/checkout", s.handleCheckout)

			authed.Get("/wishlist", s.handleGetWishlist)
			authed.Post("/wishlist/{productId}", s.handleAddToWishlist)
			authed.Delete("/wishlist/{productId}", s.handleRemoveFromWishlist)

			authed.Get("/purchases", s.handlePurchaseHistory)
		})
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	if h, err := s.healthHandler(); err == nil {
		r.Get("/status", h.HandlerFunc)
	}

	return r
}

func (s *Server) healthHandler() (*health.Health, error) {
	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "ecofinds-stub-server",
			Version: "1.0.0",
		}),
		health.WithChecks(
			health.Config{
				Name:    "fixture-store",
				Timeout: time.Second,
				Check: func(ctx context.Context) error {
					if s.data.userCount() == 0 {
						return fmt.Errorf("fixture store is empty")
					}
					return nil
				},
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

const maxJSONBody = 1 << 20

// decodeBody reads a JSON request body into dest. An empty body and invalid
// JSON are both decode failures; callers answer with a 400.
func decodeBody(r *http.Request, dest any) error {
	defer r.Body.Close()

	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(dest); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}

	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", slog.String("error", err.Error()))
	}
}

// writeMsg writes the backend's error/ack shape: {"msg": "..."}.
func writeMsg(w http.ResponseWriter, statusCode int, msg string) {
	writeJSON(w, statusCode, map[string]string{"msg": msg})
}
