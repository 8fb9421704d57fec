package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/threadline-shop/threadline-api/internal/application/auth"
	"github.com/threadline-shop/threadline-api/internal/application/inventory"
	"github.com/threadline-shop/threadline-api/internal/application/order"
	"github.com/threadline-shop/threadline-api/internal/application/usecase"
	"github.com/threadline-shop/threadline-api/internal/infrastructure/postgres"
	httpRouter "github.com/threadline-shop/threadline-api/internal/interfaces/http"
	"github.com/threadline-shop/threadline-api/pkg/config"
	"github.com/threadline-shop/threadline-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	refreshRepo := postgres.NewRefreshTokenRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	collectionRepo := postgres.NewCollectionRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	wishlistRepo := postgres.NewWishlistRepository(pool)
	prefsRepo := postgres.NewPreferencesRepository(pool)
	viewedRepo := postgres.NewRecentlyViewedRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, refreshRepo, auth.JWTConfig{
		Secret:          cfg.JWT.Secret,
		ExpMinutes:      cfg.JWT.Expiration,
		RefreshExpHours: cfg.JWT.RefreshExpiration,
		Issuer:          cfg.JWT.Issuer,
	}, log)
	productUC := usecase.NewProductUseCase(productRepo, brandRepo, categoryRepo)
	catalogUC := usecase.NewCatalogUseCase(brandRepo, categoryRepo, collectionRepo)
	stockUC := inventory.NewStockUseCase(txRunner, stockRepo, productRepo)
	orderUC := order.NewUseCase(txRunner, orderRepo, productRepo, stockUC, log)
	reviewUC := usecase.NewReviewUseCase(reviewRepo, productRepo, log)
	wishlistUC := usecase.NewWishlistUseCase(wishlistRepo, productRepo)
	prefsUC := usecase.NewPreferencesUseCase(prefsRepo, viewedRepo, productRepo)
	returnsUC := usecase.NewReturnsUseCase(txRunner, returnRepo, orderRepo, stockUC, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		CatalogUC:  catalogUC,
		StockUC:    stockUC,
		OrderUC:    orderUC,
		ReviewUC:   reviewUC,
		WishlistUC: wishlistUC,
		PrefsUC:    prefsUC,
		ReturnsUC:  returnsUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
