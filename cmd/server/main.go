package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	billingapp "github.com/plantlease/backend/internal/application/billing"
	leasingapp "github.com/plantlease/backend/internal/application/leasing"
	"github.com/plantlease/backend/internal/infrastructure/cache"
	"github.com/plantlease/backend/internal/infrastructure/config"
	"github.com/plantlease/backend/internal/infrastructure/event"
	"github.com/plantlease/backend/internal/infrastructure/logger"
	"github.com/plantlease/backend/internal/infrastructure/persistence"
	"github.com/plantlease/backend/internal/interfaces/http/handler"
	"github.com/plantlease/backend/internal/interfaces/http/middleware"
	"github.com/plantlease/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting plant lease backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Balance cache: Redis when enabled, otherwise in-process
	var balanceCache billingapp.BalanceCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisBalanceCache(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis", zap.Error(err))
			}
		}()
		balanceCache = redisCache
		log.Info("Redis balance cache connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		balanceCache = cache.NewInMemoryBalanceCache(cfg.Redis.TTL)
	}

	eventBus := event.NewInMemoryEventBus(log)

	// Application services
	paymentService := billingapp.NewPaymentService(persistence.NewGormBillingTransactionScope(db.DB))
	paymentService.SetEventPublisher(eventBus)
	paymentService.SetBalanceCache(balanceCache)

	contractService := leasingapp.NewContractService(persistence.NewGormLeasingTransactionScope(db.DB))
	contractService.SetEventPublisher(eventBus)

	// HTTP server
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.RequestID(log),
		middleware.AccessLog(log),
		middleware.Recovery(log),
	)
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.GET("/healthz", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r := router.NewRouter(engine)
	r.Register(router.NewBillingRoutes(handler.NewPaymentHandler(paymentService)))
	r.Register(router.NewLeasingRoutes(handler.NewContractHandler(contractService)))
	r.Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
