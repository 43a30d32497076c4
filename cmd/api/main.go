package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/cache"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/config"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/handler"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/middleware"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/model"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/pricing"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/repository"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/router"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/service"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Assist Move Assist API...")

	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Database
	dialect := repository.DialectFor(cfg.Database.Type)
	if dialect.Name == repository.SQLite.Name {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
	}
	db, err := repository.Open(dialect, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to initialize %s: %v", dialect.Name, err)
	}
	defer db.Close()

	projectRepo := repository.NewSQLProjectRepository(db)
	userRepo := repository.NewSQLUserRepository(db)

	// Cache store: Redis when requested and reachable, memory otherwise
	store, storeName := openStore(cfg.Cache)
	defer store.Close()

	readThrough := cache.NewReadThrough(store, cache.WithOpTimeout(cfg.Cache.OpTimeout))
	invalidator := cache.NewInvalidator(store)

	// Services
	tokenService := service.NewTokenService(store)
	authService := service.NewAuthService(userRepo, tokenService)
	projectService := service.NewProjectService(projectRepo, readThrough, invalidator)
	dashboardService := service.NewDashboardService(projectRepo, readThrough)
	pricingService := pricing.NewService(readThrough)

	seedAdmin(authService, userRepo, cfg.Auth)

	var warmup *service.WarmupScheduler
	if cfg.Cache.WarmupInterval > 0 {
		warmup = service.NewWarmupScheduler(dashboardService, service.WarmupConfig{Interval: cfg.Cache.WarmupInterval})
		warmup.Start()
	}

	// Handlers
	healthHandler := handler.New(cfg.App.Name, cfg.App.Version,
		handler.Dependency{Name: "cache_" + storeName, Pinger: store},
		handler.Dependency{Name: "database_" + dialect.Name, Pinger: db},
	)

	authMiddleware := middleware.NewAuthMiddleware(middleware.AuthConfig{
		TokenService: tokenService,
		APIKeys:      cfg.Auth.APIKeys,
	})

	r := router.New(router.Config{
		Handler:          healthHandler,
		AuthHandler:      handler.NewAuthHandler(authService, tokenService),
		ProjectHandler:   handler.NewProjectHandler(projectService),
		DashboardHandler: handler.NewDashboardHandler(dashboardService),
		PricingHandler:   handler.NewPricingHandler(pricingService),
		AdminHandler:     handler.NewAdminHandler(readThrough, invalidator, dialect.Name),
		AuthMiddleware:   authMiddleware,
		AllowedOrigins:   cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if warmup != nil {
		warmup.Stop()
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	fmt.Println("Goodbye!")
}

// closableStore is a cache store the process owns and must close.
type closableStore interface {
	cache.Store
	cache.Pinger
	Close() error
}

func openStore(cfg config.CacheConfig) (closableStore, string) {
	if cfg.UsesRedis() {
		redisStore, err := cache.NewRedisStore(cache.RedisStoreConfig{
			Addr:     cfg.RedisAddress(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			PoolSize: cfg.RedisPoolSize,
		})
		if err == nil {
			log.Printf("Redis cache store initialized at %s", cfg.RedisAddress())
			return redisStore, "redis"
		}
		log.Printf("Warning: Redis connection failed, falling back to memory store: %v", err)
	}

	log.Println("Memory cache store initialized")
	return cache.NewMemoryStore(), "memory"
}

func seedAdmin(auth *service.AuthService, users repository.UserRepository, cfg config.AuthConfig) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := users.GetUserByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		log.Printf("Warning: admin lookup failed: %v", err)
		return
	}

	if _, err := auth.Register(ctx, "Administrador", cfg.AdminEmail, cfg.AdminPassword, model.RoleSuperAdmin); err != nil {
		log.Printf("Warning: admin seed failed: %v", err)
		return
	}
	log.Printf("Seeded admin user %s", cfg.AdminEmail)
}
