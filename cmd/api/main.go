package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ecomkit/storefront-cart/internal/config"
	"github.com/ecomkit/storefront-cart/internal/handler"
	"github.com/ecomkit/storefront-cart/internal/repository"
	"github.com/ecomkit/storefront-cart/internal/service"
	"github.com/ecomkit/storefront-cart/internal/session"
	"github.com/ecomkit/storefront-cart/internal/tracking"
	"github.com/ecomkit/storefront-cart/internal/validator"
	"github.com/ecomkit/storefront-cart/pkg/database"
)

func main() {
	// Load configuration first
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize zerolog based on configuration
	initLogger(cfg)

	// Create context for startup
	ctx := context.Background()

	// Initialize database pool with retry
	pool, err := database.NewPool(ctx, cfg.DB.DSN(), 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Initialize Fiber with production-ready configuration
	app := fiber.New(fiber.Config{
		AppName:      "Storefront Cart Service",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    1 * 1024 * 1024, // 1MB, cart payloads are tiny
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())

	cookies := session.Cookies{
		Cart:    cfg.Session.CartCookie,
		Session: cfg.Session.SessionCookie,
	}
	app.Use(session.Middleware(cookies))

	// Initialize validator
	validate := validator.New()

	// Event sink: the personalization SDK collaborator. Logged locally when
	// tracking is disabled in config.
	var sink tracking.Sink = tracking.NewLogSink()
	if !cfg.Tracking.Enabled {
		sink = tracking.NewNopSink()
	}

	// Initialize cart and checkout components (layered architecture)
	snapshotRepo := repository.NewSnapshotRepository(pool)
	couponRepo := repository.NewCouponRepository(pool)
	accountRepo := repository.NewAccountRepository(pool)

	sessions := service.NewSessions(snapshotRepo)
	couponService := service.NewCouponService(couponRepo)
	cartService := service.NewCartService(sessions, couponService, sink, cfg.Tracking.BaseURL)
	checkoutService := service.NewCheckoutService(sessions, accountRepo, sink, cfg.Tracking.BaseURL, cfg.Store.ShippingFee)

	cartHandler := handler.NewCartHandler(cartService, validate)
	couponHandler := handler.NewCouponHandler(couponService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	authHandler := handler.NewAuthHandler(cookies, sink)

	// Health handler
	healthHandler := handler.NewHealthHandler(pool)
	app.Get("/health", healthHandler.Check)

	// Cart routes
	app.Get("/api/cart", cartHandler.GetCart)
	app.Delete("/api/cart", cartHandler.ClearCart)
	app.Post("/api/cart/items", cartHandler.AddItem)
	app.Put("/api/cart/items/:id", cartHandler.UpdateQuantity)
	app.Delete("/api/cart/items/:id", cartHandler.RemoveItem)
	app.Post("/api/cart/coupon", cartHandler.ApplyCoupon)
	app.Delete("/api/cart/coupon", cartHandler.RemoveCoupon)

	// Coupon validation route
	app.Post("/api/coupon", couponHandler.Validate)

	// Checkout routes
	app.Get("/api/checkout", checkoutHandler.GetCheckout)
	app.Post("/api/checkout/confirm", checkoutHandler.ConfirmOrder)
	app.Get("/api/confirmation", checkoutHandler.GetConfirmation)

	// Auth routes
	app.Post("/api/auth/login", authHandler.Login)
	app.Post("/api/auth/logout", authHandler.Logout)

	// Start server with graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	log.Info().Int("timeout_seconds", cfg.Server.ShutdownTimeout).Msg("shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	// Shutdown server (waits for in-flight requests)
	log.Info().Msg("waiting for in-flight requests to complete...")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	// Close database pool AFTER server shutdown (even if shutdown timed out)
	log.Info().Msg("closing database connections...")
	pool.Close()
	log.Info().Msg("database connections closed")
	log.Info().Msg("server stopped")
}

// initLogger configures zerolog based on the application configuration.
func initLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Log.Pretty {
		// Human-readable output for development
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().Timestamp().Logger()
	} else {
		// JSON output for production
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
