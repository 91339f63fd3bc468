package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecofinds/marketplace-client/internal/api"
	"github.com/ecofinds/marketplace-client/internal/auth"
	"github.com/ecofinds/marketplace-client/internal/config"
	"github.com/ecofinds/marketplace-client/internal/models"
	"github.com/ecofinds/marketplace-client/internal/notify"
	"github.com/ecofinds/marketplace-client/internal/store"
	"github.com/ecofinds/marketplace-client/internal/stubserver"
	"github.com/ecofinds/marketplace-client/internal/telemetry"
	"github.com/joho/godotenv"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Optional .env, then config
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment from .env")
	}

	cfg := config.MustLoad()

	// Trace pipeline first, so the client's instrumented transport records
	// real spans from the very first request
	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.Telemetry)
	if err != nil {
		slog.Error("Failed to set up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Fixtures-backed stub server, so the demo needs no real backend
	stub := stubserver.New([]byte(cfg.StubServer.JWTKey), cfg.StubServer.UploadURL, logger)
	server := http.Server{
		Addr:    cfg.StubServer.Addr,
		Handler: stub.Handler(),
	}

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start stub server", slog.String("error", err.Error()))
		}
	}()

	slog.Info("Stub server is up", slog.String("address", cfg.StubServer.Addr))

	// Client wiring: session -> API client -> stores
	session := auth.NewSession()
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, session)
	notifier := notify.NewSlogNotifier(logger)
	products := store.NewProductStore(client, session, notifier, logger,
		store.WithPageSize(cfg.API.PageSize))
	cart := store.NewCartStore(client, session, notifier)

	ctx := context.Background()

	// Browse anonymously first
	products.Init(ctx)
	slog.Info("Browse page loaded",
		slog.Int("products", len(products.Products())),
		slog.Int("total", products.TotalProducts()),
		slog.Int("pages", products.TotalPages()))

	products.SetActiveCategory(ctx, models.CategoryElectronics)
	slog.Info("Filtered by category",
		slog.String("category", string(products.ActiveCategory())),
		slog.Int("products", len(products.Products())))

	// Sign in a fixture user; the identity change re-runs initialization
	authResp, err := client.Login(ctx, models.LoginRequest{
		Email:    "maya@ecofinds.dev",
		Password: "recycle123",
	})
	if err != nil {
		slog.Error("Demo login failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := session.SignIn(authResp); err != nil {
		slog.Error("Session rejected auth response", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("Signed in",
		slog.String("username", session.CurrentUser().Username),
		slog.Int("own_listings", len(products.UserProducts())))

	// Create a listing, then clean it up
	created, ok := products.AddProduct(ctx, models.ProductInput{
		Title:       "Bamboo Desk Organizer",
		Description: "Three compartments, light wear.",
		Category:    models.CategoryHomeGarden,
		Price:       "12.50",
	}, nil)
	if ok {
		slog.Info("Listing created", slog.Int64("id", created.ID))
		products.DeleteProduct(ctx, created.ID)
	}

	cart.FetchCart(ctx)
	slog.Info("Cart loaded",
		slog.Int("items", len(cart.Items())),
		slog.Float64("subtotal", cart.Subtotal()))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	slog.Info("Demo complete; stub server keeps serving until interrupted",
		slog.String("metrics", "http://"+cfg.StubServer.Addr+"/metrics"),
		slog.String("health", "http://"+cfg.StubServer.Addr+"/status"))

	<-done

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Stub server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Stub server shut down gracefully")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("Trace pipeline shutdown encountered an issue", slog.String("error", err.Error()))
	}
}
