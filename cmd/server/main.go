package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/royalsilk/storefront/internal/api"
	"github.com/royalsilk/storefront/internal/core/service"
	"github.com/royalsilk/storefront/internal/infrastructure/config"
	mongodb "github.com/royalsilk/storefront/internal/infrastructure/db/mongo"
	mysqldb "github.com/royalsilk/storefront/internal/infrastructure/db/mysql"
	redisdb "github.com/royalsilk/storefront/internal/infrastructure/db/redis"
	"github.com/royalsilk/storefront/internal/infrastructure/queue"
	"github.com/royalsilk/storefront/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := mysqldb.Connect(ctx, mysqldb.Config{DSN: cfg.MySQL.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("mysql connection failed")
	}
	if err := mysqldb.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("mysql migration failed")
	}

	mongoClient, mongoDB, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	auditTrail := service.NewAuditTrail(mongodb.NewAuditRepository(mongoDB), log)
	audit := queue.NewDispatcher(cfg.AuditWorkers, auditTrail, log)
	audit.Start(ctx)

	e := api.NewRouter(cfg, db, mongoDB, rdb, audit, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("storefront listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
