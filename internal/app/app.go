// Package app wires the service dependencies together.
package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"faultwatch/internal/cache"
	"faultwatch/internal/config"
	"faultwatch/internal/db"
	"faultwatch/internal/events"
	httpserver "faultwatch/internal/http"
	"faultwatch/internal/http/handlers"
	"faultwatch/internal/http/middleware"
	"faultwatch/internal/repository"
	"faultwatch/internal/service"
	"faultwatch/internal/ws"
)

// App owns the long-lived components.
type App struct {
	server *httpserver.Server
	hub    *ws.Hub
	db     *sql.DB
	redis  *redis.Client
	alerts *events.AlertPublisher
	logger *zap.Logger
}

// New constructs application components. Redis and Kafka stay nil when
// not configured; the services treat them as absent collaborators.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repository.EnsureSchema(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	readingRepo := repository.NewReadingRepository(sqlDB)
	uploadRepo := repository.NewUploadRepository(sqlDB)

	var (
		redisClient  *redis.Client
		summaryCache *cache.SummaryCache
	)
	if cfg.RedisEnabled() {
		redisClient, err = cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		summaryCache = cache.NewSummaryCache(redisClient, cfg.SummaryTTL())
	}

	var alerts *events.AlertPublisher
	if cfg.KafkaEnabled() {
		alerts = events.NewAlertPublisher(cfg.Kafka.Brokers, cfg.Kafka.AlertsTopic, logger)
	}

	hub := ws.NewHub(30*time.Second, logger)

	// Typed nils must not end up inside the services' interface fields.
	var (
		invalidator service.SummaryInvalidator
		alertSink   service.AlertSink
		readCache   service.SummaryCache
	)
	if summaryCache != nil {
		invalidator = summaryCache
		readCache = summaryCache
	}
	if alerts != nil {
		alertSink = alerts
	}

	ingestService := service.NewIngestService(readingRepo, uploadRepo, invalidator, alertSink, hub, logger)
	reportService := service.NewReportService(readingRepo, uploadRepo, readCache, logger)

	routes := httpserver.Routes{
		Upload:   handlers.NewUploadHandler(ingestService, logger),
		Readings: handlers.NewReadingsHandler(reportService, logger),
		Summary:  handlers.NewSummaryHandler(reportService, logger),
		Export:   handlers.NewExportHandler(reportService, logger),
		Uploads:  handlers.NewUploadsHandler(reportService, logger),
		Reset:    handlers.NewResetHandler(reportService, logger),
		Live:     handlers.NewLiveHandler(hub, logger),
		Health:   handlers.NewHealthHandler(),
	}
	if cfg.Auth.JWTSecret != "" {
		routes.Auth = middleware.AuthMiddleware(cfg.Auth.JWTSecret)
	} else {
		logger.Warn("jwt secret not set, mutating endpoints are unauthenticated")
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server: server,
		hub:    hub,
		db:     sqlDB,
		redis:  redisClient,
		alerts: alerts,
		logger: logger,
	}, nil
}

// Run starts the websocket hub and serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	go a.hub.Run(ctx)
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.alerts != nil {
		if err := a.alerts.Close(); err != nil {
			a.logger.Warn("failed to close alert publisher", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
