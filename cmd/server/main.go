package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Ramax12/ArtiVana-nuxt-filter/config"
	_ "github.com/Ramax12/ArtiVana-nuxt-filter/docs"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/app"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/cache"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/catalog"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/handlers"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/middleware"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/pkg/cuid2"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/storefront"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/sweepers"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/telemetry"
)

const serviceName = "catalog-service"

// @title ArtiVana Catalog API
// @version 1.0
// @description Product listing and faceted filter metadata for the ArtiVana storefront.
// @BasePath /
// @securityDefinitions.apikey InternalAPIKey
// @in header
// @name X-Internal-API-Key
func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := app.InitLogger(cfg.Logging, os.Stdout, serviceName)
	log.Logger = *logger

	logger.Info().Str("source", cfg.Catalog.Source).Msg("Starting catalog service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:     cfg.Telemetry.Enabled,
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialise telemetry")
	}

	source, closeSource, err := app.OpenSource(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open catalog source")
	}
	defer closeSource()

	store := catalog.NewStore(source, app.StoreConfig(cfg.Catalog), logger)
	if err := store.Load(ctx); err != nil {
		// Partial loads still publish; the health check reports readiness.
		logger.Warn().Err(err).Msg("Initial catalog load incomplete")
	}

	var metaCache storefront.MetaCache
	var publisher handlers.RefreshPublisher
	if cfg.Redis.URL != "" {
		client, err := cache.Connect(ctx, cfg.Redis.URL, cfg.Redis.DialTimeout)
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, running without meta cache and refresh broadcast")
		} else {
			defer client.Close()
			metaCache = cache.NewMetaCache(client, cfg.Redis.CacheTTL)

			bus := cache.NewRefreshBus(client, cfg.Redis.RefreshChannel, cuid2.Prefixed("node", cuid2.Options{}))
			if err := bus.Listen(ctx, func(ev cache.RefreshEvent) {
				logger.Info().Str("origin", ev.Origin).Msg("Refresh broadcast received")
				if err := store.Load(ctx); err != nil {
					logger.Warn().Err(err).Msg("Broadcast catalog refresh incomplete")
				}
			}); err != nil {
				logger.Warn().Err(err).Msg("Failed to subscribe to refresh broadcast")
			}
			publisher = bus
			logger.Info().Str("channel", cfg.Redis.RefreshChannel).Msg("Redis connected")
		}
	}

	service := storefront.NewService(store, metaCache, app.ServiceConfig(cfg))

	refresher := sweepers.NewCatalogRefresher(store, logger, cfg.Catalog.RefreshInterval)
	go refresher.Start(ctx)

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
	})
	go limiter.RunCleanup(ctx, 5*time.Minute)

	router := newRouter(cfg, logger, store, service, publisher, limiter)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")
	refresher.Stop()
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Telemetry shutdown failed")
	}

	logger.Info().Msg("Server exited")
}

func newRouter(
	cfg *config.Config,
	logger *zerolog.Logger,
	store *catalog.Store,
	service *storefront.Service,
	publisher handlers.RefreshPublisher,
	limiter *middleware.IPRateLimiter,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(logger))
	router.Use(otelgin.Middleware(serviceName))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.API.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{
			handlers.HeaderTotalCount,
			handlers.HeaderPage,
			handlers.HeaderPageSize,
			handlers.HeaderTotalPages,
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/health", handlers.HealthCheck(store))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	products := handlers.NewProductsHandler(service, handlers.QueryOptions{
		RequireSubcategory: cfg.API.RequireSubcategory,
	})
	catalogHandler := handlers.NewCatalogHandler(store, publisher)

	api := router.Group("/api/products")
	api.Use(middleware.RateLimitMiddleware(limiter))
	{
		api.GET("/filter", products.ListProducts)
		api.GET("/filter-meta", products.FilterMeta)
	}

	internal := router.Group("/internal")
	internal.Use(middleware.InternalAuthMiddleware(cfg.API.InternalAPIKey))
	internal.Use(middleware.ServiceRateLimitMiddleware(50, 100))
	{
		internal.GET("/health", handlers.HealthCheck(store))
		internal.GET("/catalog/status", catalogHandler.Status)
		internal.POST("/catalog/refresh", catalogHandler.Refresh)
		internal.GET("/catalog/export", products.ExportProducts)
	}

	return router
}
