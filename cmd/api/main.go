package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/storefront/internal/config"
	"github.com/Pesokrava/storefront/internal/delivery/events"
	httpDelivery "github.com/Pesokrava/storefront/internal/delivery/http"
	"github.com/Pesokrava/storefront/internal/delivery/http/handler"
	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/cache"
	"github.com/Pesokrava/storefront/internal/pkg/database"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
	cacheRepo "github.com/Pesokrava/storefront/internal/repository/cache"
	"github.com/Pesokrava/storefront/internal/repository/postgres"
	"github.com/Pesokrava/storefront/internal/repository/static"
	cartusecase "github.com/Pesokrava/storefront/internal/usecase/cart"
	"github.com/Pesokrava/storefront/internal/usecase/catalog"
	"github.com/Pesokrava/storefront/internal/worker"

	_ "github.com/Pesokrava/storefront/docs"
)

// @title Storefront API
// @version 1.0
// @description Catalog queries and shopper carts for the storefront.

// @contact.name API Support
// @contact.url http://github.com/Pesokrava/storefront

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @tag.name Catalog
// @tag.description Product filtering, sorting and facets

// @tag.name Cart
// @tag.description Session scoped shopping carts

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env)
	appLogger.Info("Starting Storefront API...")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var productRepo domain.ProductRepository
	switch cfg.Catalog.Source {
	case config.SourcePostgres:
		appLogger.Info("Connecting to PostgreSQL...")
		db, err := database.WaitForDB(cfg, 10, 2*time.Second, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", err)
		}
		defer db.Close()

		if err := database.RunMigrations(db); err != nil {
			appLogger.Fatal("Failed to run migrations", err)
		}
		appLogger.Info("Connected to PostgreSQL successfully")

		productRepo = postgres.NewProductRepository(db)
	default:
		productRepo = static.NewFeedRepository(cfg.Catalog.File)
	}

	var catalogCache catalog.Cache
	if cfg.Redis.Enabled {
		appLogger.Info("Connecting to Redis...")
		redisClient, err := cache.WaitForRedis(cfg, 10, 2*time.Second, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", err)
		}
		defer redisClient.Close()
		appLogger.Info("Connected to Redis successfully")

		catalogCache = cacheRepo.NewCatalogCache(redisClient, cfg.Cache.CatalogTTL)
	}

	catalogService := catalog.NewService(productRepo, catalogCache, cfg.Catalog.Locale, appLogger)
	if err := catalogService.Load(ctx); err != nil {
		appLogger.Fatal("Failed to load catalog", err)
	}

	refresher := worker.NewCatalogRefresher(catalogService, cfg.Catalog.RefreshDebounce, appLogger)

	var cartPublisher cartusecase.EventPublisher
	if cfg.NATS.Enabled {
		appLogger.Info("Connecting to NATS...")
		publisher, err := events.NewPublisher(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create NATS publisher", err)
		}
		defer publisher.Close()
		cartPublisher = publisher

		streams := events.NewStreamConfig(publisher.JetStream(), appLogger)
		if err := streams.EnsureStreams(); err != nil {
			appLogger.Fatal("Failed to ensure streams", err)
		}

		consumer := events.RefresherConsumerName(uuid.New())
		if err := streams.EnsureRefresherConsumer(consumer); err != nil {
			appLogger.Fatal("Failed to ensure consumer", err)
		}

		sub, err := publisher.JetStream().PullSubscribe(events.CatalogSubject, consumer,
			nats.Bind(events.CatalogStream, consumer), nats.ManualAck())
		if err != nil {
			appLogger.Fatal("Failed to subscribe to JetStream consumer", err)
		}
		defer func() {
			if err := sub.Unsubscribe(); err != nil {
				appLogger.Error("Failed to unsubscribe from JetStream", err)
			}
			if err := streams.RemoveRefresherConsumer(consumer); err != nil {
				appLogger.Error("Failed to remove JetStream consumer", err)
			}
		}()

		appLogger.WithFields(map[string]any{
			"stream":   events.CatalogStream,
			"consumer": consumer,
		}).Info("Subscribed to JetStream consumer")

		go events.Pull(ctx, sub, refresher.HandleEvent, appLogger)
	}

	if cfg.Catalog.Watch && cfg.Catalog.Source == config.SourceStatic && cfg.Catalog.File != "" {
		go func() {
			if err := static.Watch(ctx, cfg.Catalog.File, func() { refresher.Trigger("file") }, appLogger); err != nil {
				appLogger.Error("Catalog feed watcher stopped", err)
			}
		}()
	}

	registry := cartusecase.NewRegistry(cfg.Cart.SessionTTL, appLogger)
	go registry.Run(ctx, cfg.Cart.SweepInterval)

	cartService := cartusecase.NewService(registry, catalogService, cartPublisher, appLogger)

	catalogHandler := handler.NewCatalogHandler(catalogService, appLogger)
	cartHandler := handler.NewCartHandler(cartService, appLogger)

	router := httpDelivery.NewRouter(catalogHandler, cartHandler, cfg, appLogger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Infof("HTTP server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}

	if err := refresher.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Error during refresher shutdown", err)
	}

	appLogger.Info("Server stopped gracefully")
}
