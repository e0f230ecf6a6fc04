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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/playfiesta/store_api/internal/cache"
	"github.com/playfiesta/store_api/internal/config"
	"github.com/playfiesta/store_api/internal/database"
	"github.com/playfiesta/store_api/internal/handler"
	"github.com/playfiesta/store_api/internal/middleware"
	"github.com/playfiesta/store_api/internal/models"
	"github.com/playfiesta/store_api/internal/repository"
	"github.com/playfiesta/store_api/internal/service"
	"github.com/playfiesta/store_api/internal/utils"
	"github.com/playfiesta/store_api/pkg/mailer"
)

// main is the application entrypoint for the storefront & admin API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting store api")

	utils.SetJWTSecret(cfg.JWTSecret)

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	catalogCache := cache.NewCatalogCache(redisClient)
	preferences := cache.NewPreferenceStore(redisClient)

	// 4. Initialize mail notifications (optional)
	var notifier *service.NotificationService
	if m, err := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}); err != nil {
		log.Warn().Err(err).Msg("mailer initialization failed - order notifications disabled")
	} else {
		notifier = service.NewNotificationService(m, cfg.SMTP.AdminAddr, cfg.Store.PanelURL)
	}

	// 5. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	userRepo := repository.NewUserRepository(db)
	storeConfigRepo := repository.NewStoreConfigRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// 6. Initialize services
	catalogSvc := service.NewCatalogService(productRepo, catalogCache)
	categorySvc := service.NewCategoryService(categoryRepo)
	productMgmtSvc := service.NewProductManagementService(productRepo, categoryRepo, catalogCache)
	var orderNotifier service.OrderNotifier
	if notifier != nil {
		orderNotifier = notifier
	}
	orderSvc := service.NewOrderService(orderRepo, productRepo, orderNotifier)
	addressSvc := service.NewAddressService(addressRepo)
	authSvc := service.NewAuthService(userRepo)
	statsSvc := service.NewStatsService(statsRepo)
	configSvc := service.NewConfigService(storeConfigRepo, cfg.Store)
	sitemapSvc := service.NewSitemapService(productRepo, categoryRepo, cfg.Store.PublicURL)

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:            handler.NewHealthHandler(db),
		Catalog:           handler.NewCatalogHandler(catalogSvc, categorySvc),
		Order:             handler.NewOrderHandler(orderSvc),
		Auth:              handler.NewAuthHandler(authSvc),
		Address:           handler.NewAddressHandler(addressSvc),
		AdminOrder:        handler.NewAdminOrderHandler(orderSvc),
		ProductManagement: handler.NewProductManagementHandler(productMgmtSvc),
		Category:          handler.NewCategoryHandler(categorySvc),
		Stats:             handler.NewStatsHandler(statsSvc),
		Config:            handler.NewConfigHandler(configSvc),
		Preference:        handler.NewPreferenceHandler(preferences),
		POS:               handler.NewPOSHandler(catalogSvc, orderSvc),
		Sitemap:           handler.NewSitemapHandler(sitemapSvc),
	}

	// 8. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware()

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 10. Start HTTP server
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

	// 11. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 12. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health            *handler.HealthHandler
	Catalog           *handler.CatalogHandler
	Order             *handler.OrderHandler
	Auth              *handler.AuthHandler
	Address           *handler.AddressHandler
	AdminOrder        *handler.AdminOrderHandler
	ProductManagement *handler.ProductManagementHandler
	Category          *handler.CategoryHandler
	Stats             *handler.StatsHandler
	Config            *handler.ConfigHandler
	Preference        *handler.PreferenceHandler
	POS               *handler.POSHandler
	Sitemap           *handler.SitemapHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMw *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)
	router.GET("/sitemap.xml", handlers.Sitemap.GetSitemap)

	// Public storefront
	store := router.Group("/v1/store")
	{
		store.GET("/config", handlers.Config.GetConfig)
		store.GET("/:division/products", handlers.Catalog.ListProducts)
		store.GET("/:division/products/:slug", handlers.Catalog.GetProduct)
		store.GET("/:division/categories", handlers.Catalog.ListCategories)
	}

	// Checkout (no account required; the order id is the confirmation token)
	router.POST("/v1/orders", handlers.Order.CreateOrder)
	router.GET("/v1/orders/:id", handlers.Order.GetOrder)

	// Accounts
	auth := router.Group("/v1/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
	}

	// Authenticated user area
	me := router.Group("/v1/me")
	me.Use(jwtMw.Handle(models.RoleUser))
	{
		me.GET("/address", handlers.Address.GetAddress)
		me.PUT("/address", handlers.Address.SetAddress)
		me.DELETE("/address", handlers.Address.DeleteAddress)
	}

	// Point of sale (sellers and admins)
	pos := router.Group("/v1/pos")
	pos.Use(jwtMw.Handle(models.RoleSeller))
	{
		pos.GET("/products/:barcode", handlers.POS.LookupBarcode)
		pos.POST("/sales", handlers.POS.CreateSale)
	}

	// Admin panel
	admin := router.Group("/v1/admin")
	admin.Use(jwtMw.Handle(models.RoleAdmin))
	{
		// Product management
		admin.GET("/products", handlers.ProductManagement.ListProducts)
		admin.POST("/products", handlers.ProductManagement.CreateProduct)
		admin.GET("/products/:id", handlers.ProductManagement.GetProduct)
		admin.PUT("/products/:id", handlers.ProductManagement.UpdateProduct)
		admin.DELETE("/products/:id", handlers.ProductManagement.DeleteProduct)

		// Category management
		admin.GET("/categories", handlers.Category.ListCategories)
		admin.POST("/categories", handlers.Category.CreateCategory)
		admin.PUT("/categories/:id", handlers.Category.UpdateCategory)
		admin.DELETE("/categories/:id", handlers.Category.DeleteCategory)

		// Order management
		admin.GET("/orders", handlers.AdminOrder.ListOrders)
		admin.GET("/orders/export", handlers.AdminOrder.Export)
		admin.GET("/orders/:id", handlers.AdminOrder.GetOrder)
		admin.PUT("/orders/:id/status", handlers.AdminOrder.UpdateStatus)
		admin.POST("/orders/:id/pay", handlers.AdminOrder.MarkPaid)

		// Dashboard & configuration
		admin.GET("/dashboard", handlers.Stats.GetDashboard)
		admin.GET("/config", handlers.Config.GetConfig)
		admin.PUT("/config", handlers.Config.UpdateConfig)

		// Panel preferences
		admin.GET("/preferences/division", handlers.Preference.GetDivision)
		admin.PUT("/preferences/division", handlers.Preference.SetDivision)
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
