package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/inmovement/patient-portal/internal/api"
	"github.com/inmovement/patient-portal/internal/api/handler"
	"github.com/inmovement/patient-portal/internal/core/service"
	"github.com/inmovement/patient-portal/internal/core/validation"
	"github.com/inmovement/patient-portal/internal/infrastructure/config"
	mongostore "github.com/inmovement/patient-portal/internal/infrastructure/db/mongo"
	redisstore "github.com/inmovement/patient-portal/internal/infrastructure/db/redis"
	"github.com/inmovement/patient-portal/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "patient-portal",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- MongoDB ---
	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.CallTimeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	records := mongostore.NewRecordStore(db, cfg.CallTimeout)
	identity := mongostore.NewIdentityGateway(db, cfg.CallTimeout)
	if err := records.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := identity.EnsureIndexes(ctx); err != nil {
		return err
	}

	// --- Redis ---
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Timeout:  cfg.CallTimeout,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	guard := redisstore.NewSubmitGuard(rdb, cfg.SubmitGuardTTL)
	favorites := redisstore.NewFavoriteStore(rdb)

	// --- Services ---
	forms := validation.New()
	registration := service.NewRegistrationService(identity, records, guard, forms, cfg.JWTSecret, cfg.TokenTTL, log)
	profile := service.NewProfileService(records, guard, forms, log)
	catalog := service.NewCatalogService(records, favorites, log)

	e := api.NewRouter(api.Deps{
		Registration: registration,
		Profile:      profile,
		Catalog:      catalog,
		Validator:    forms,
		Probes: map[string]handler.Probe{
			"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
