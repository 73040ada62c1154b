package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/LarozaLighting/laroza_api/internal/config"
	"github.com/LarozaLighting/laroza_api/internal/database"
	"github.com/LarozaLighting/laroza_api/internal/datasync"
	"github.com/LarozaLighting/laroza_api/internal/handler"
	"github.com/LarozaLighting/laroza_api/internal/middleware"
	"github.com/LarozaLighting/laroza_api/internal/models"
	"github.com/LarozaLighting/laroza_api/internal/repository"
	"github.com/LarozaLighting/laroza_api/internal/service"
	"github.com/LarozaLighting/laroza_api/internal/sse"
	"github.com/LarozaLighting/laroza_api/internal/store"
	"github.com/LarozaLighting/laroza_api/internal/utils"
	"github.com/LarozaLighting/laroza_api/internal/worker"
)

// main is the application entrypoint for the Laroza Lighting API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("store", cfg.Store.Driver).Msg("starting laroza api")

	utils.InitJWT(cfg.JWTSecret)

	// 3. Open the backing store
	st, rdb, err := openStore(cfg)
	if err != nil {
		log.Error().Err(err).Msg("store initialization failed")
		fmt.Fprintf(os.Stderr, "store initialization failed: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	// 4. Build sync transports and the change bus
	bus := datasync.NewBus(buildTransports(cfg, st, rdb)...)
	defer bus.Close()

	// 5. Initialize repositories and seed missing collections
	productRepo := repository.NewProductRepository(st)
	orderRepo := repository.NewOrderRepository(st)
	promoRepo := repository.NewPromotionRepository(st)
	reviewRepo := repository.NewReviewRepository(st)
	accountRepo := repository.NewAccountRepository(st)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repository.Seed(seedCtx, st); err != nil {
		seedCancel()
		log.Error().Err(err).Msg("seeding failed")
		fmt.Fprintf(os.Stderr, "seeding failed: %v\n", err)
		os.Exit(1)
	}
	seedCancel()

	// 6. Initialize services
	authSvc := service.NewAuthService(accountRepo, &cfg.Auth)
	productSvc := service.NewProductService(productRepo, bus)
	promoSvc := service.NewPromotionService(promoRepo, bus)
	orderSvc := service.NewOrderService(orderRepo, productRepo, promoRepo, promoSvc, bus)
	reviewSvc := service.NewReviewService(reviewRepo, bus)
	dashboardSvc := service.NewDashboardService(productRepo, orderRepo, promoRepo, reviewRepo)

	// 7. SSE hub: connected browsers receive every change event
	hub := sse.NewHub()
	unsubscribe := bus.Subscribe(hub.Broadcast)
	defer unsubscribe()

	// 8. Initialize handlers
	handlers := &Handlers{
		Health:    handler.NewHealthHandler(st, hub),
		Auth:      handler.NewAuthHandler(authSvc),
		Product:   handler.NewProductHandler(productSvc),
		Order:     handler.NewOrderHandler(orderSvc),
		Promotion: handler.NewPromotionHandler(promoSvc),
		Review:    handler.NewReviewHandler(reviewSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		SSE:       handler.NewSSEHandler(hub),
	}

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, middleware.NewJWTMiddleware())

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	go worker.NewPromoExpiryWorker(promoRepo, bus, cfg.Worker.PromoExpiryInterval).Start(ctx)
	go worker.NewLowStockWorker(productRepo, cfg.Worker.LowStockInterval).Start(ctx)

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// openStore builds the configured store backend. When the backend is Redis,
// the client is returned as well so the pub/sub transport can share it.
func openStore(cfg *config.Config) (store.Store, *redis.Client, error) {
	switch cfg.Store.Driver {
	case config.StoreRedis:
		rs, err := store.NewRedisStore(&cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return rs, rs.Client(), nil

	case config.StorePostgres:
		db, err := database.Connect(&cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		if err := runMigrations(db.DB); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info().Msg("migrations completed successfully")
		return store.NewPostgresStore(db, cfg.DB.DSN()), nil, nil

	default:
		return store.NewMemoryStore(), nil, nil
	}
}

// buildTransports assembles the configured sync transports. Several can run
// at once for redundancy; each transport drops its own published messages so
// local subscribers never see a broadcast twice.
func buildTransports(cfg *config.Config, st store.Store, rdb *redis.Client) []datasync.Transport {
	var transports []datasync.Transport
	loopback := datasync.NewLoopback()

	for _, name := range cfg.Store.Transports {
		switch name {
		case config.TransportLoopback:
			// With a single bus per process this hub has no peers, so the
			// transport is inert here; the memory-store default has no
			// cross-context path and needs none.
			transports = append(transports, loopback.Attach())
		case config.TransportEnvelope:
			transports = append(transports, datasync.NewEnvelopeTransport(st))
		case config.TransportRedis:
			if rdb == nil {
				client, err := store.NewRedisStore(&cfg.Redis)
				if err != nil {
					log.Warn().Err(err).Msg("redis sync transport unavailable")
					continue
				}
				rdb = client.Client()
			}
			transports = append(transports, datasync.NewRedisTransport(rdb))
		case config.TransportKafka:
			transports = append(transports, datasync.NewKafkaTransport(cfg.Kafka.Brokers))
		}
	}
	return transports
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Order     *handler.OrderHandler
	Promotion *handler.PromotionHandler
	Review    *handler.ReviewHandler
	Dashboard *handler.DashboardHandler
	SSE       *handler.SSEHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMw *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Auth
	router.POST("/v1/auth/login", handlers.Auth.Login)
	router.POST("/v1/auth/register", handlers.Auth.Register)

	// Public storefront reads
	router.GET("/v1/products", handlers.Product.List)
	router.GET("/v1/products/:id", handlers.Product.Get)
	router.GET("/v1/reviews", handlers.Review.List)
	router.GET("/v1/promotions/validate/:code", handlers.Promotion.Validate)

	// Live change feed (JWT via query param, EventSource cannot set headers)
	router.GET("/v1/events", handlers.SSE.Stream)

	// Authenticated customer routes
	customer := router.Group("/v1")
	customer.Use(jwtMw.Handle())
	{
		customer.GET("/orders", handlers.Order.List)
		customer.GET("/orders/:id", handlers.Order.Get)
		customer.POST("/orders", handlers.Order.Place)
		customer.POST("/reviews", handlers.Review.Create)
	}

	// Admin routes
	admin := router.Group("/v1/admin")
	admin.Use(jwtMw.Handle(), jwtMw.RequireRole(models.RoleAdmin))
	{
		// Catalog management
		admin.POST("/products", handlers.Product.Create)
		admin.PUT("/products/:id", handlers.Product.Update)
		admin.DELETE("/products/:id", handlers.Product.Delete)
		admin.PATCH("/products/:id/stock", handlers.Product.AdjustStock)
		admin.GET("/products/low-stock", handlers.Product.LowStock)

		// Order management
		admin.PATCH("/orders/:id/status", handlers.Order.UpdateStatus)

		// Promotion management
		admin.GET("/promotions", handlers.Promotion.List)
		admin.POST("/promotions", handlers.Promotion.Create)
		admin.PUT("/promotions/:id", handlers.Promotion.Update)
		admin.DELETE("/promotions/:id", handlers.Promotion.Delete)

		// Review moderation
		admin.DELETE("/reviews/:id", handlers.Review.Delete)

		// Dashboard
		admin.GET("/dashboard/stats", handlers.Dashboard.Stats)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
