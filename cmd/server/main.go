package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stockpile/stockpile/internal/auth"
	"github.com/stockpile/stockpile/internal/cache"
	"github.com/stockpile/stockpile/internal/config"
	"github.com/stockpile/stockpile/internal/database"
	"github.com/stockpile/stockpile/internal/handlers"
	"github.com/stockpile/stockpile/internal/logger"
	"github.com/stockpile/stockpile/internal/middleware"
	"github.com/stockpile/stockpile/internal/redis"
	"github.com/stockpile/stockpile/internal/service"
	"github.com/stockpile/stockpile/internal/storage"
)

func main() {
	log := logger.New("catalog-server")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Connected to Postgres")

	if err := database.Migrate(ctx, cfg.Database.DSN); err != nil {
		log.Fatal("Failed to run migrations: %v", err)
	}
	log.Info("Migrations applied")

	redisClient, err := redis.New(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Connected to Redis at %s", cfg.Redis.Addr)

	secret := cfg.JWT.Secret
	if secret == "" {
		log.Warn("JWT_SECRET not set, using an insecure default")
		secret = "insecure-dev-secret"
	}
	jwtManager := auth.NewJWTManager(secret, cfg.JWT.Expiry)

	productCache := cache.NewMultiTierCache(128, redisClient, 5*time.Minute)

	userStore := storage.NewPostgresUserStorage(db)
	productStore := storage.NewPostgresProductStorage(db)

	userService := service.NewUserService(userStore, jwtManager)
	productService := service.NewProductService(productStore, productCache)

	authHandler := handlers.NewAuthHandler(userService)
	productHandler := handlers.NewProductHandler(productService)

	authMW := middleware.NewAuthMiddleware(jwtManager)
	rateLimiter := middleware.NewRateLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/register", rateLimiter.Middleware(authHandler.Register))
	mux.HandleFunc("/api/login", rateLimiter.Middleware(authHandler.Login))
	mux.HandleFunc("/api/products", authMW.RequireAuth(productHandler.List))
	mux.HandleFunc("/api/products/search", authMW.RequireAuth(productHandler.Search))
	mux.HandleFunc("/api/products/", authMW.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			productHandler.Update(w, r)
		case http.MethodDelete:
			productHandler.Delete(w, r)
		default:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusMethodNotAllowed)
			w.Write([]byte(`{"message":"Method not allowed"}`))
		}
	}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Catalog API listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed: %v", err)
	}
	log.Info("Server stopped")
}
