package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/senyabanana/rfq-desk/internal/db"
	"github.com/senyabanana/rfq-desk/internal/handlers"
	"github.com/senyabanana/rfq-desk/internal/repository"
	"github.com/senyabanana/rfq-desk/internal/router"
	"github.com/senyabanana/rfq-desk/internal/router/config"
	"github.com/senyabanana/rfq-desk/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	logger, err := initLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal("cannot init logger:", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbSource, err := db.ConnString(cfg)
	if err != nil {
		logger.Fatal("invalid database config", zap.Error(err))
	}
	runDBMigration(logger, cfg.MigrationURL, dbSource)

	dbPool, err := db.InitDb(ctx, dbSource)
	if err != nil {
		logger.Fatal("error initializing database", zap.Error(err))
	}
	defer dbPool.Close()

	var rfqRepo repository.RFQRepository = repository.NewHTTPRFQRepository(cfg.BackendURL, cfg.BackendTimeout)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis is unreachable, reads fall through to backend", zap.Error(err))
		}
		rfqRepo = repository.NewCachedRFQRepository(rfqRepo, rdb, cfg.CacheTTL, logger)
	}
	submissionRepo := repository.NewPostgresSubmissionRepository(dbPool)

	sessions := services.NewSessionStore(cfg.SessionTTL)
	go sessions.Run(ctx, time.Minute, func(evicted int) {
		logger.Info("idle sessions evicted", zap.Int("count", evicted))
	})

	deskService := services.NewDeskService(rfqRepo, submissionRepo, sessions, logger)
	deskHandler := handlers.NewDeskHandler(deskService, logger, cfg.RequestTimeout)

	routes := router.InitRoutes(deskHandler, logger, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           routes,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server is listening", zap.String("addr", cfg.ServerAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func initLogger(level, format string) (*zap.Logger, error) {
	var zapCfg zap.Config
	if format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func runDBMigration(logger *zap.Logger, migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		logger.Fatal("cannot create a new migrate instance", zap.Error(err))
	}

	if err = migration.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("failed to run migrate up", zap.Error(err))
	}
	logger.Info("db migrated successfully")
}
