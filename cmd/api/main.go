package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Demmynile/hanniefoods/api/controllers"
	"github.com/Demmynile/hanniefoods/api/routes"
	"github.com/Demmynile/hanniefoods/internal/cart"
	"github.com/Demmynile/hanniefoods/internal/checkout"
	"github.com/Demmynile/hanniefoods/internal/orders"
	"github.com/Demmynile/hanniefoods/internal/products"
	"github.com/Demmynile/hanniefoods/internal/reviews"
	"github.com/Demmynile/hanniefoods/pkg/config"
	"github.com/Demmynile/hanniefoods/pkg/logger"
	"github.com/Demmynile/hanniefoods/pkg/metrics"
	"github.com/Demmynile/hanniefoods/pkg/paystack"
	"github.com/Demmynile/hanniefoods/pkg/redis"
	"github.com/Demmynile/hanniefoods/pkg/sanity"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	store, err := sanity.New(context.Background(), cfg.Sanity, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap content store", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gateway, err := paystack.NewClient(context.Background(), cfg.Paystack, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap payment gateway", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	productRepo := products.NewRepository(store)
	productService, err := products.NewService(productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	cartStorage, err := cart.NewRedisStorage(redisClient, cfg.Cart.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart storage", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cartStorage, productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	referenceGuard, err := orders.NewRedisReferenceGuard(redisClient, 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create reference guard", err)
		os.Exit(1)
	}
	orderService, err := orders.NewService(orders.NewRepository(store), referenceGuard, checkoutMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	reviewService, err := reviews.NewService(reviews.NewRepository(store), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create review service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(cfg.Paystack, cartService, orderService, gateway, checkoutMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Registry:    registry,
			HTTPMetrics: httpMetrics,
			Ready: map[string]controllers.Pinger{
				"content store": store,
				"redis":         redisClient,
			},
			Products: productService,
			Cart:     cartService,
			Checkout: checkoutService,
			Orders:   orderService,
			Reviews:  reviewService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
