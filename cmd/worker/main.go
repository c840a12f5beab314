package main

import (
	"context"
	"time"

	"wardrobeapi/config"
	"wardrobeapi/dbhelper"
	"wardrobeapi/logging"
	"wardrobeapi/services"
	"wardrobeapi/tasks"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("[Queue] failed to load config")
	}
	logging.Setup(cfg.Env)
	if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN, Environment: cfg.Env, Release: "wardrobeworker@1.0.0"}); err != nil {
		log.Fatal().Err(err).Msg("sentry.Init")
	}
	defer sentry.Flush(2 * time.Second)

	if cfg.StoreBackend != "postgres" {
		log.Fatal().Str("store", cfg.StoreBackend).Msg("[Queue] the worker needs the postgres store")
	}
	db, err := dbhelper.SetupDB(cfg.DB, false)
	if err != nil {
		log.Fatal().Err(err).Msg("[Queue] failed to connect database")
	}
	stores := services.NewGormStores(db)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.Broker.Address},
		asynq.Config{Concurrency: cfg.Broker.Concurrency, Queues: map[string]int{
			tasks.QueueDefault: 1,
		}},
	)
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeOutfitWorn, func(ctx context.Context, t *asynq.Task) error {
		return tasks.HandleOutfitWornTask(ctx, t, stores)
	})

	log.Info().Int("concurrency", cfg.Broker.Concurrency).Msg("[Queue] starting worker")
	if err := srv.Run(mux); err != nil {
		log.Fatal().Err(err).Msg("[Queue] worker stopped")
	}
}
