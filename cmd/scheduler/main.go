package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/Ferrari4891/selecttravel-api/internal/config"
	"github.com/Ferrari4891/selecttravel-api/internal/email"
	"github.com/Ferrari4891/selecttravel-api/internal/repository/postgres"
	"github.com/Ferrari4891/selecttravel-api/internal/scheduler"
	"github.com/Ferrari4891/selecttravel-api/internal/service/report"
	"github.com/Ferrari4891/selecttravel-api/pkg/logger"
	redisbroker "github.com/Ferrari4891/selecttravel-api/pkg/messaging/redis"
	"github.com/Ferrari4891/selecttravel-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	zl := log.Logger
	appLogger := &logger.Logger{ZL: zl}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redisbroker.NewRedisBroker(redisbroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &zl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer broker.Close()

	lock := redisbroker.NewCycleLock(broker.(*redisbroker.RedisBroker).Client(), "", cfg.Scheduler.LockTTL)

	businessRepo := postgres.NewBusinessRepository(db)
	voucherRepo := postgres.NewVoucherRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	resultRepo := postgres.NewDispatchResultRepository(db)

	dispatcher := scheduler.NewDispatcher(
		scheduleRepo,
		resultRepo,
		voucherRepo,
		report.NewService(businessRepo, voucherRepo, resultRepo),
		email.NewSMTPService(cfg.SMTP),
		broker,
		lock,
		appLogger,
		metrics.New("selecttravel_scheduler"),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	retention := scheduler.NewRetentionWorker(resultRepo, cfg.Scheduler.RetentionDays, cfg.Scheduler.RetentionInterval, appLogger)
	go retention.Start(ctx)

	c := cron.New()
	if _, err := c.AddFunc(cfg.Scheduler.CycleSpec, func() {
		summary, err := dispatcher.RunCycle(ctx, time.Now())
		if err != nil {
			if errors.Is(err, scheduler.ErrCycleInProgress) {
				log.Warn().Msg("previous dispatch cycle still running, skipping")
				return
			}
			log.Error().Err(err).Msg("dispatch cycle failed")
			return
		}
		log.Info().
			Int("processed", summary.Processed).
			Int("succeeded", summary.Succeeded).
			Int("failed", summary.Failed).
			Int("skipped", summary.Skipped).
			Msg("dispatch cycle complete")
	}); err != nil {
		log.Fatal().Err(err).Str("spec", cfg.Scheduler.CycleSpec).Msg("invalid cycle spec")
	}
	c.Start()
	log.Info().Str("spec", cfg.Scheduler.CycleSpec).Msg("scheduler started")

	healthSrv := healthServer(cfg.Scheduler.HealthPort, db)
	go func() {
		if err := healthSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("health server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	cancel()
	<-c.Stop().Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := healthSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server shutdown failed")
	}
}
