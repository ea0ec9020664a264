package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/gig-marketplace-api/internal/config"
	"github.com/yukikurage/gig-marketplace-api/internal/constants"
	"github.com/yukikurage/gig-marketplace-api/internal/database"
	"github.com/yukikurage/gig-marketplace-api/internal/handlers"
	"github.com/yukikurage/gig-marketplace-api/internal/logger"
	"github.com/yukikurage/gig-marketplace-api/internal/metrics"
	"github.com/yukikurage/gig-marketplace-api/internal/notify"
	"github.com/yukikurage/gig-marketplace-api/internal/repository"
	"github.com/yukikurage/gig-marketplace-api/internal/services"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	db := database.GetDB()

	if err := database.Migrate(db); err != nil {
		zapLogger.Fatal("failed to run migrations", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Live notifications
	registry := notify.NewRegistry(constants.SubscriberBuffer)
	var notifier notify.Notifier
	switch cfg.NotifyBackend {
	case config.NotifyBackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})
		defer client.Close()

		relay := notify.NewRedisNotifier(client, cfg.RedisNotifyChannel, registry, zapLogger)
		go func() {
			if err := relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				zapLogger.Error("notification relay stopped", zap.Error(err))
			}
		}()
		notifier = relay
	default:
		notifier = notify.NewLocalNotifier(registry, zapLogger)
	}

	// Metrics
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(promRegistry, registry.ConnectionCount)

	// Repositories and services
	userRepo := repository.NewUserRepository(db)
	gigRepo := repository.NewGigRepository(db)
	bidRepo := repository.NewBidRepository(db)
	hireRepo := repository.NewHireRepository(db)

	authService := services.NewAuthService(userRepo)
	gigService := services.NewGigService(gigRepo)
	bidService := services.NewBidService(bidRepo, gigRepo)
	hireService := services.NewHireService(bidRepo, gigRepo, hireRepo, notifier, appMetrics, zapLogger)

	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware(zapLogger))

	// Setup session middleware with Redis
	store, err := redisStore.NewStore(
		10,              // Redis pool size
		"tcp",           // network type
		cfg.RedisAddr(), // Redis address from config
		"",              // username (empty for default user)
		"",              // password (empty = no password)
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		zapLogger.Fatal("failed to create Redis session store", zap.Error(err))
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Gig Marketplace API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(r, handlers.Handlers{
		Auth:   handlers.NewAuthHandler(authService),
		Gig:    handlers.NewGigHandler(gigService),
		Bid:    handlers.NewBidHandler(bidService, hireService),
		Events: handlers.NewEventHandler(registry),
	}, gigRepo)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("server starting", zap.String("addr", srv.Addr), zap.String("notify_backend", cfg.NotifyBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
