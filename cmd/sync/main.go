package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hallsamuel90/t14-wc-sync/internal/config"
	"github.com/hallsamuel90/t14-wc-sync/internal/handlers"
	"github.com/hallsamuel90/t14-wc-sync/internal/logging"
	"github.com/hallsamuel90/t14-wc-sync/internal/middleware"
	"github.com/hallsamuel90/t14-wc-sync/internal/observability"
	"github.com/hallsamuel90/t14-wc-sync/internal/services"
	"github.com/hallsamuel90/t14-wc-sync/internal/utils/httpclient"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	// Initialize observability
	observability.InitTracer()
	defer observability.ShutdownTracer()

	logging.Logger.Info("starting product sync service",
		zap.Int("brand_id", config.AppConfig.BrandID),
		zap.Int("batch_size", config.AppConfig.BatchSize))

	// Wire the pipeline
	pool := httpclient.NewPool(4)
	defer pool.Close()

	turn14 := services.NewTurn14Client(
		config.AppConfig.Turn14BaseURL,
		config.AppConfig.Turn14Client,
		config.AppConfig.Turn14Secret,
		pool,
		logging.Logger,
	)
	store := services.NewWcClient(
		config.AppConfig.WcBaseURL,
		config.AppConfig.WcClient,
		config.AppConfig.WcSecret,
		pool,
		logging.Logger,
	)
	pipeline := services.NewProductSyncService(turn14, store, config.AppConfig.BatchSize, logging.Logger)

	queue := services.NewSyncQueue(pipeline, logging.Logger)
	queue.Start()

	scheduler := services.NewSyncScheduler(
		queue,
		services.SystemClock{},
		config.AppConfig.BrandID,
		services.DefaultSchedules(
			config.AppConfig.InventoryInterval,
			config.AppConfig.PricingInterval,
			config.AppConfig.StaleInterval,
			config.AppConfig.ResyncInterval,
		),
		logging.Logger,
	)
	scheduler.Start()

	// Operational HTTP surface
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	syncHandlers := handlers.NewSyncHandlers(queue)
	v1 := router.Group("/v1")
	{
		v1.GET("/health", syncHandlers.HealthCheck)
		v1.GET("/queue", syncHandlers.QueueStatus)
		v1.POST("/sync/:type", syncHandlers.TriggerSync)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfig.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("ops server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	logging.Logger.Info("shutdown signal received")

	scheduler.Stop()
	queue.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("ops server shutdown failed", zap.Error(err))
	}

	logging.Logger.Info("product sync service stopped")
}
