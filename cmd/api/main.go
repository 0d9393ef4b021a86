package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prosalon-backend/config"
	"prosalon-backend/internal/delivery/http/middleware"
	v1 "prosalon-backend/internal/delivery/http/v1"
	"prosalon-backend/internal/infrastructure/cache"
	"prosalon-backend/internal/repository/postgres"
	"prosalon-backend/internal/usecase"
	"prosalon-backend/pkg/logger"
	"prosalon-backend/pkg/storage"
	"prosalon-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Initialize Database
	pgxPool, err := postgres.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	log.Info().Msg("Successfully connected to PostgreSQL via pgx")

	// Initialize Repositories
	categoryRepo := postgres.NewCategoryRepository(pgxPool)
	productRepo := postgres.NewProductRepository(pgxPool)
	orderRepo := postgres.NewOrderRepository(pgxPool)
	txManager := postgres.NewTransactionManager(pgxPool)

	// Initialize Cache (In-Memory)
	// Default expiration 30m, cleanup every 60m
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	// Set up Router
	mux := http.NewServeMux()

	// --- Storage Module (R2, optional) ---
	var r2Storage *storage.R2Storage
	if cfg.R2AccountID != "" {
		r2Storage, err = storage.NewR2Storage(
			context.Background(),
			cfg.R2AccountID,
			cfg.R2AccessKeyID,
			cfg.R2AccessKeySecret,
			cfg.R2BucketName,
			cfg.R2PublicURL,
			cfg.R2UploadTimeout,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
		}
	} else {
		log.Warn().Msg("R2 not configured, media uploads disabled")
	}
	uploadHandler := v1.NewUploadHandler(r2Storage)

	// Catalog Module
	catalogUC := usecase.NewCatalogUsecase(categoryRepo, productRepo, memCache, cfg)
	catalogHandler := v1.NewCatalogHandler(catalogUC)
	adminHandler := v1.NewAdminHandler(catalogUC)

	// Order Module
	orderUC := usecase.NewOrderUsecase(orderRepo, productRepo, txManager, cfg)
	orderHandler := v1.NewOrderHandler(orderUC)

	adminMiddleware := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(middleware.AdminMiddleware(h))
	}

	// Catalog (Public). OptionalAuth so dealers get their pricing while
	// anonymous shoppers browse retail.
	mux.Handle("GET /api/v1/categories", middleware.OptionalAuth(http.HandlerFunc(catalogHandler.GetCategories)))
	mux.Handle("GET /api/v1/categories/resolve", middleware.OptionalAuth(http.HandlerFunc(catalogHandler.ResolveCategory)))
	mux.Handle("GET /api/v1/products", middleware.OptionalAuth(http.HandlerFunc(catalogHandler.ListProducts)))
	mux.Handle("GET /api/v1/products/{id}", middleware.OptionalAuth(http.HandlerFunc(catalogHandler.GetProduct)))

	// Checkout & Orders (Protected)
	mux.Handle("POST /api/v1/checkout", middleware.AuthMiddleware(http.HandlerFunc(orderHandler.Checkout)))
	mux.Handle("GET /api/v1/orders", middleware.AuthMiddleware(http.HandlerFunc(orderHandler.GetMyOrders)))

	// Uploads (Admin)
	mux.Handle("POST /api/v1/admin/uploads", adminMiddleware(uploadHandler.UploadImage))

	// Admin Product Management
	mux.Handle("GET /api/v1/admin/products/{id}", adminMiddleware(adminHandler.GetProductRaw))
	mux.Handle("POST /api/v1/admin/products", adminMiddleware(adminHandler.CreateProduct))
	mux.Handle("PUT /api/v1/admin/products/{id}", adminMiddleware(adminHandler.UpdateProduct))
	mux.Handle("DELETE /api/v1/admin/products/{id}", adminMiddleware(adminHandler.DeleteProduct))

	// Admin Category Management
	mux.Handle("GET /api/v1/admin/categories", adminMiddleware(adminHandler.ListCategoriesFlat))
	mux.Handle("POST /api/v1/admin/categories", adminMiddleware(adminHandler.CreateCategory))
	mux.Handle("DELETE /api/v1/admin/categories/{id}", adminMiddleware(adminHandler.DeleteCategory))

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Support root health check for Load Balancers

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Initialize Rate Limiter with lifecycle management
	// 50 req/s, burst 100, cleanup every minute, TTL 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		50,
		100,
		time.Minute,
		3*time.Minute,
	)

	// Apply CORS (with config injection), Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	log.Info().Msgf("Server starting on %s", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	pgxPool.Close()

	log.Info().Msg("Server exited properly")
}
