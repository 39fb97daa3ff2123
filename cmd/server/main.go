package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/bulky/backend/internal/application/cart"
	catalogapp "github.com/bulky/backend/internal/application/catalog"
	identityapp "github.com/bulky/backend/internal/application/identity"
	orderapp "github.com/bulky/backend/internal/application/order"
	"github.com/bulky/backend/internal/infrastructure/auth"
	"github.com/bulky/backend/internal/infrastructure/config"
	"github.com/bulky/backend/internal/infrastructure/logger"
	"github.com/bulky/backend/internal/infrastructure/payment"
	"github.com/bulky/backend/internal/infrastructure/persistence"
	"github.com/bulky/backend/internal/infrastructure/storage"
	"github.com/bulky/backend/internal/interfaces/http/handler"
	"github.com/bulky/backend/internal/interfaces/http/middleware"
	"github.com/bulky/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Bulky Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Tracing.Enabled {
		if err := db.EnableTracing(cfg.Tracing.LogFullSQL); err != nil {
			log.Fatal("Failed to enable database tracing", zap.Error(err))
		}
		log.Info("Database tracing enabled")
	}

	// Token blacklist backed by Redis, with an in-process fallback so a
	// Redis outage does not take the whole API down
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
		blacklist = redisBlacklist
	}

	// Initialize repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)

	// Payment gateway
	stripeAdapter, err := payment.NewStripeAdapter(&payment.StripeConfig{
		SecretKey: cfg.Stripe.SecretKey,
		Currency:  cfg.Stripe.Currency,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize payment gateway", zap.Error(err))
	}

	// Object storage for product images
	objectStorage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(accountRepo, companyRepo, jwtService, blacklist, cfg.Auth, log)
	accountService := identityapp.NewAccountService(accountRepo, companyRepo, log)
	companyService := identityapp.NewCompanyService(companyRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, objectStorage, log)
	cartService := cartapp.NewService(cartRepo, productRepo)
	orderService := orderapp.NewService(orderRepo, cartRepo, accountRepo, stripeAdapter, log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, order matters: request ID first so the rest can
	// log it, recovery before anything that may panic
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	if cfg.Tracing.Enabled {
		engine.Use(middleware.Tracing(cfg.Tracing.ServiceName))
	}
	engine.Use(middleware.RequestLogger(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// JWT authentication with public paths for auth, health and catalog browsing
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Initialize HTTP handlers and register routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(db)).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewCategoryHandler(categoryService)).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewCartHandler(cartService)).
		Register(handler.NewOrderHandler(orderService)).
		Register(handler.NewCompanyHandler(companyService)).
		Register(handler.NewAccountHandler(accountService))
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
