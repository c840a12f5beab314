package main

import (
	"context"
	"errors"
	"time"

	"wardrobeapi/config"
	"wardrobeapi/controllers"
	"wardrobeapi/dbhelper"
	"wardrobeapi/logging"
	"wardrobeapi/services"
	"wardrobeapi/stylist"
	"wardrobeapi/tasks"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

func setupStores(cfg config.Config) (services.Stores, error) {
	if cfg.StoreBackend == "memory" {
		log.Warn().Msg("using in-memory stores, data is lost on restart")
		return services.NewMemoryStores(), nil
	}
	db, err := dbhelper.SetupDB(cfg.DB, cfg.Env == "local")
	if err != nil {
		return services.Stores{}, err
	}
	return services.NewGormStores(db), nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(cfg.Env)

	err = sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Env,
		Release:          "wardrobeapi@1.0.0",
		Debug:            false,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("sentry.Init")
	}
	defer sentry.Recover()
	defer sentry.Flush(2 * time.Second)

	stores, err := setupStores(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up stores")
	}

	awsService := &services.AWSService{Config: services.StorageConfig{
		AccountID:       cfg.Storage.AccountID,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		AccessKeySecret: cfg.Storage.AccessKeySecret,
	}}
	if err := awsService.InitPresignClient(context.Background()); err != nil {
		if !errors.Is(err, services.ErrStorageDisabled) {
			log.Fatal().Err(err).Msg("failed to initialize AWS provider: S3")
		}
		log.Warn().Msg("photo storage is not configured, clothing photos are disabled")
	}
	urlCache, err := services.NewURLCacheService(awsService, cfg.Storage.BucketName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize URL cache service")
	}
	proposals, err := services.NewProposalCache(services.DefaultCacheSize, cfg.ProposalTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize proposal cache")
	}

	var enqueuer tasks.Enqueuer
	if cfg.StoreBackend == "memory" {
		enqueuer = tasks.NewInlineEnqueuer(stores)
	} else {
		asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Broker.Address})
		defer asynqClient.Close()
		enqueuer = asynqClient
	}

	e := controllers.SetupServer(
		stores, awsService, urlCache, proposals, enqueuer,
		stylist.NewAssembler(nil, nil),
		controllers.Settings{JWTSecret: cfg.JWTSecret, BucketName: cfg.Storage.BucketName},
	)
	e.Debug = cfg.Env == "local"
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimit))))
	e.Use(middleware.Recover())
	e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))

	log.Info().Str("address", cfg.Address).Str("store", cfg.StoreBackend).Msg("starting wardrobe api")
	if err := e.Start(cfg.Address); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
