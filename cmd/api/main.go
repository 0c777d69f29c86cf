// @title           Storefront Commerce API
// @version         1.0
// @description     Catalog, accounts, password reset and carts for the storefront.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"github.com/storefront/commerce-api/internal/api"
	"github.com/storefront/commerce-api/internal/api/handler"
	"github.com/storefront/commerce-api/internal/core/service"
	mongostore "github.com/storefront/commerce-api/internal/infrastructure/db/mongo"
	"github.com/storefront/commerce-api/internal/infrastructure/db/postgres"
	redisstore "github.com/storefront/commerce-api/internal/infrastructure/db/redis"
	"github.com/storefront/commerce-api/internal/infrastructure/queue"
	"github.com/storefront/commerce-api/internal/pkg/config"
	"github.com/storefront/commerce-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
		Env:    cfg.Env,
	})

	ctx := context.Background()

	// --- Stores ---
	db, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL, MaxConns: cfg.Postgres.MaxConns})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	if err := postgres.Migrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("postgres migration failed")
	}

	mongoClient, mongoDB, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	auditRepo := mongostore.NewAuditRepository(mongoDB)
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("audit index creation failed")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}

	// --- Audit trail ---
	dispatcher := queue.NewAuditDispatcher(cfg.Audit.Workers, auditRepo, log)
	dispatcher.Start()

	// --- Services ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, log)
	guard := service.NewAccessGuard(dispatcher, log)
	catalogRepo := postgres.NewCatalogRepository(db)
	users := postgres.NewUserRepository(db)

	router := api.NewRouter(api.Dependencies{
		Catalog: service.NewCatalogService(
			catalogRepo,
			redisstore.NewCatalogCache(rdb, cfg.Catalog.CachePrefix),
			cfg.Catalog.CacheTTL,
			dispatcher,
			log,
		),
		Users: service.NewUserService(users, tokens, dispatcher, log),
		Resets: service.NewPasswordResetService(
			users,
			postgres.NewResetCodeRepository(db),
			redisstore.NewResetNotifier(rdb, redisstore.ResetCodeStream),
			dispatcher,
			log,
		),
		Carts:  service.NewCartService(postgres.NewCartRepository(db), catalogRepo, log),
		Tokens: tokens,
		Guard:  guard,
		Readiness: map[string]handler.PingFunc{
			"postgres": func(ctx context.Context) error { return postgres.Ping(ctx, db) },
			"mongodb":  func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Log: log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := router.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			// Requests first, then the audit queue they feed, then the stores.
			"storefront": func(ctx context.Context) error {
				return shutdown(ctx, router.Shutdown, dispatcher.Stop, mongoClient.Disconnect, func(context.Context) error {
					return postgres.Close(db)
				}, func(context.Context) error {
					return rdb.Close()
				})
			},
		},
	)

	exitCode := <-wait
	log.Info().Int("exit_code", exitCode).Msg("shutdown complete")
	os.Exit(exitCode)
}

// shutdown runs steps in order and joins their errors.
func shutdown(ctx context.Context, steps ...func(context.Context) error) error {
	var errs []error
	for _, step := range steps {
		if err := step(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
