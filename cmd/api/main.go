// @title        Catalog API
// @version      1.0
// @description  Products and categories behind JWT bearer authentication.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
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

	"github.com/rs/zerolog"

	"github.com/storefront/catalog-api/internal/api"
	"github.com/storefront/catalog-api/internal/api/handler"
	"github.com/storefront/catalog-api/internal/core/ports"
	"github.com/storefront/catalog-api/internal/core/service"
	"github.com/storefront/catalog-api/internal/infrastructure/crypto"
	"github.com/storefront/catalog-api/internal/infrastructure/db/memory"
	mongostore "github.com/storefront/catalog-api/internal/infrastructure/db/mongo"
	pgstore "github.com/storefront/catalog-api/internal/infrastructure/db/postgres"
	redisstore "github.com/storefront/catalog-api/internal/infrastructure/db/redis"
	"github.com/storefront/catalog-api/internal/infrastructure/token"
	"github.com/storefront/catalog-api/internal/pkg/config"
	"github.com/storefront/catalog-api/pkg/logger"
)

// stores groups the repositories selected by STORAGE_DRIVER.
type stores struct {
	users      ports.UserRepository
	categories ports.CategoryRepository
	products   ports.ProductRepository
	pinger     handler.Pinger
	close      func(context.Context)
}

func main() {
	cfg, err := config.Load(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "catalog-api",
	})
	log.Info().Str("env", cfg.Env).Str("storage", cfg.StorageDriver).Msg("configuration loaded")

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := openStores(startupCtx, cfg, log)
	must(log, err, "open storage")
	defer st.close(context.Background())

	health := map[string]handler.Pinger{cfg.StorageDriver: st.pinger}

	var limiter ports.LoginLimiter
	if cfg.Redis.Enabled {
		rdb, err := redisstore.Connect(startupCtx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		must(log, err, "connect to redis")
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("redis close failed")
			}
		}()
		limiter = redisstore.NewLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
		health["redis"] = redisstore.NewPinger(rdb)
	} else {
		limiter = memory.NewLoginLimiter(cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow, nil)
	}

	codec, err := token.NewCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	must(log, err, "initialise token codec")

	auth, err := service.NewAuthService(st.users, crypto.NewBcryptHasher(0), codec, log.With().Str("component", "auth").Logger())
	must(log, err, "initialise auth service")

	e := api.NewRouter(api.Dependencies{
		Logger:       log,
		Tokens:       codec,
		Auth:         auth,
		Products:     service.NewProductService(st.products, st.categories, log.With().Str("component", "products").Logger()),
		Categories:   service.NewCategoryService(st.categories, st.products, st.users, log.With().Str("component", "categories").Logger()),
		LoginLimiter: limiter,
		HealthChecks: health,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-serverErr:
		log.Error().Err(err).Msg("http server failed")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	switch cfg.StorageDriver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &stores{
			users:      mongostore.NewUserRepository(db),
			categories: mongostore.NewCategoryRepository(db),
			products:   mongostore.NewProductRepository(db),
			pinger:     mongostore.NewPinger(client),
			close: func(ctx context.Context) {
				if err := client.Disconnect(ctx); err != nil {
					log.Error().Err(err).Msg("mongo disconnect failed")
				}
			},
		}, nil

	case config.DriverPostgres:
		if err := pgstore.Migrate(cfg.Postgres.DSN, log); err != nil {
			return nil, err
		}
		pool, err := pgstore.NewPool(ctx, cfg.Postgres.DSN, log)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:      pgstore.NewUserRepository(pool),
			categories: pgstore.NewCategoryRepository(pool),
			products:   pgstore.NewProductRepository(pool),
			pinger:     pgstore.NewPinger(pool),
			close:      func(context.Context) { pool.Close() },
		}, nil

	default:
		log.Warn().Msg("using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		return &stores{
			users:      store.Users(),
			categories: store.Categories(),
			products:   store.Products(),
			pinger:     store,
			close:      func(context.Context) {},
		}, nil
	}
}

func must(log zerolog.Logger, err error, step string) {
	if err != nil {
		log.Fatal().Err(err).Str("step", step).Msg("startup failure")
	}
}
