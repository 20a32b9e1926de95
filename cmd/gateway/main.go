package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	app_middleware "github.com/bitcoindeepa/miniapp-gateway/internal/application/middleware"
	"github.com/bitcoindeepa/miniapp-gateway/internal/application/state"
	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/cache"
	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/config"
	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/logging"
	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/upstream"
	app_handler "github.com/bitcoindeepa/miniapp-gateway/internal/interfaces/http/handlers"
	"github.com/bitcoindeepa/miniapp-gateway/internal/interfaces/http/response"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logging.Init(&cfg.Sentry); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Sync()

	logging.Logger.Info("Starting mini app gateway",
		zap.Int("port", cfg.Server.Port),
		zap.String("environment", cfg.Sentry.Environment),
		zap.String("upstream", cfg.Upstream.BaseURL),
	)

	ctx := context.Background()

	// Initialize Redis
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logging.Logger.Fatal("Failed to parse Redis URL", zap.Error(err))
	}
	opts.PoolSize = cfg.Redis.PoolSize
	redisClient := redis.NewClient(opts)
	defer redisClient.Close()

	// Test Redis connection
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logging.Logger.Fatal("Failed to ping Redis", zap.Error(err))
	}

	// Initialize upstream client and caches
	upstreamClient := upstream.NewClient(cfg.Upstream, logging.WithComponent("upstream"))
	defer upstreamClient.Close()
	catalogCache := cache.NewCatalogCache(redisClient, cfg.Cache.CatalogTTL, logging.WithComponent("cache"))
	sessionStore := state.New()

	// Initialize middleware
	rateLimiter := app_middleware.NewRateLimiter(redisClient, true) // fail open

	// Initialize handlers
	authHandler := app_handler.NewAuthHandler(upstreamClient, sessionStore, cfg.Auth.DevFallback)
	packagesHandler := app_handler.NewPackagesHandler(upstreamClient, catalogCache)
	subscriptionHandler := app_handler.NewSubscriptionHandler(upstreamClient, sessionStore)
	transactionHandler := app_handler.NewTransactionHandler(upstreamClient)
	userHandler := app_handler.NewUserHandler(upstreamClient, catalogCache, sessionStore)
	kycHandler := app_handler.NewKYCHandler(upstreamClient)
	communityHandler := app_handler.NewCommunityHandler(catalogCache, sessionStore)

	// Setup Gin router
	if cfg.Sentry.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
			logging.CaptureError(fmt.Errorf("panic: %v", recovered), "panic recovered",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString("request_id")),
			)
			response.InternalError(c, "Internal server error")
			c.Abort()
		}),
		logging.RequestMiddleware(logging.Logger),
	)

	// Health check endpoint (no auth required)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// Public routes
		api.POST("/auth/telegram",
			rateLimiter.Middleware(app_middleware.ByIP, app_middleware.DefaultConfig),
			authHandler.TelegramAuth,
		)
		api.GET("/package", packagesHandler.List)
		api.GET("/user/exists/:telegramId", userHandler.Exists)
		api.GET("/community/stats", communityHandler.Stats)

		// Protected routes (require a bearer credential)
		protected := api.Group("")
		protected.Use(app_middleware.RequireBearer())
		{
			protected.POST("/user", userHandler.Create)

			subs := protected.Group("/subscription")
			subs.POST("/cancel", subscriptionHandler.Cancel)
			subs.GET("/current", subscriptionHandler.Current)
			subs.POST("/payhere-link", subscriptionHandler.PayhereLink)

			txs := protected.Group("/transaction")
			txs.GET("/dca-summary", transactionHandler.DCASummary)
			txs.GET("/latest",
				rateLimiter.Middleware(app_middleware.ByToken, app_middleware.PollingConfig),
				transactionHandler.Latest,
			)
			txs.GET("/list", transactionHandler.List)

			kyc := protected.Group("/user/kyc")
			kyc.POST("/initiate", kycHandler.Initiate)
			kyc.GET("/status", kycHandler.Status)
		}
	}

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Graceful shutdown
	go func() {
		logging.Logger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("Server exited")
}
