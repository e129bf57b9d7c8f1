package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/oktaviandwip/musalabel-storefront/internal/auth"
	"github.com/oktaviandwip/musalabel-storefront/internal/backend"
	"github.com/oktaviandwip/musalabel-storefront/internal/cart"
	"github.com/oktaviandwip/musalabel-storefront/internal/catalog"
	"github.com/oktaviandwip/musalabel-storefront/internal/checkout"
	"github.com/oktaviandwip/musalabel-storefront/internal/dashboard"
	"github.com/oktaviandwip/musalabel-storefront/internal/httpapi"
	"github.com/oktaviandwip/musalabel-storefront/internal/poller"
	"github.com/oktaviandwip/musalabel-storefront/internal/session"
)

type Config struct {
	HTTPPort        string
	BackendBaseURL  string
	RedisAddr       string
	KafkaBrokers    []string
	AllowedOrigins  []string
	SuccessRedirect string
	FailureRedirect string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		BackendBaseURL:  getEnv("BACKEND_BASE_URL", "http://localhost:4000"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:    strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		SuccessRedirect: getEnv("PAYMENT_SUCCESS_URL", "http://localhost:3000/products/orders/"),
		FailureRedirect: getEnv("PAYMENT_FAILURE_URL", "http://localhost:3000/products/checkout/"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	api := backend.New(cfg.BackendBaseURL, cfg.RequestTimeout)

	sessions := session.NewRedisStore(redisClient)
	carts := cart.NewManager(api, cart.NewRedisCache(redisClient))
	catalogService := catalog.NewService(api)
	checkouts := checkout.NewManager(api, api, api, cfg.SuccessRedirect, cfg.FailureRedirect)
	authService := auth.NewService(api, sessions)
	dashboardService := dashboard.NewService(api)

	handlers := httpapi.Handlers{
		Auth:      httpapi.NewAuthHandler(authService, carts, sessions),
		Profile:   httpapi.NewProfileHandler(api, sessions),
		Products:  httpapi.NewProductHandler(catalogService),
		Cart:      httpapi.NewCartHandler(carts, catalogService),
		Checkout:  httpapi.NewCheckoutHandler(checkouts, carts, catalogService),
		Orders:    httpapi.NewOrdersHandler(api),
		Dashboard: httpapi.NewDashboardHandler(dashboardService),
	}

	router := httpapi.NewRouter(handlers, sessions, cfg.RequestTimeout, cfg.AllowedOrigins)

	// Payment confirmation events invalidate cached carts.
	pollerCtx, stopPoller := context.WithCancel(context.Background())
	paymentPoller := poller.NewPoller(carts, cfg.KafkaBrokers...)
	go paymentPoller.Run(pollerCtx)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront gateway starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	stopPoller()
	paymentPoller.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
