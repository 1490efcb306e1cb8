package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/MySagra/mycassa-sub000/internal/daily"
	"github.com/MySagra/mycassa-sub000/internal/feed"
	h "github.com/MySagra/mycassa-sub000/internal/http"
	"github.com/MySagra/mycassa-sub000/internal/menu"
	"github.com/MySagra/mycassa-sub000/internal/orderclient"
	"github.com/MySagra/mycassa-sub000/internal/settings"
)

type Config struct {
	HTTPPort        string
	RedisAddr       string
	KafkaBrokers    []string
	KafkaTopic      string
	KafkaGroupID    string
	BackendURL      string
	BackendToken    string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:    []string{getEnv("KAFKA_BROKER", "localhost:9092")},
		KafkaTopic:      getEnv("KAFKA_TOPIC", "cashier-events"),
		KafkaGroupID:    getEnv("KAFKA_GROUP_ID", "register"),
		BackendURL:      getEnv("BACKEND_URL", "http://localhost:3001"),
		BackendToken:    getEnv("BACKEND_TOKEN", ""),
		RequestTimeout:  getDurationEnv("REQUEST_TIMEOUT_SECONDS", 30),
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * time.Second
		}
	}
	return time.Duration(defaultSeconds) * time.Second
}

func main() {
	cfg := loadConfig()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	backend := orderclient.New(cfg.BackendURL, orderclient.StaticToken(cfg.BackendToken), nil)

	menuStore := menu.NewStore()
	menuService := menu.NewService(backend, menu.NewRedisCache(redisClient), menuStore)
	settingsStore := settings.NewRedisStore(redisClient)
	board := daily.NewBoard()

	// Cashier event feed keeps availability and the day board fresh.
	consumer := feed.NewConsumer(menuStore, board, cfg.KafkaTopic, cfg.KafkaGroupID, cfg.KafkaBrokers...)
	feedCtx, stopFeed := context.WithCancel(context.Background())
	go consumer.Run(feedCtx)

	handler := h.NewHandler(h.NewSessionStore(nil), menuService, menuStore, settingsStore, backend, board, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		handler.Routes(r)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "register"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("register starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	stopFeed()
	consumer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
