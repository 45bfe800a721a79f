package main

import (
	"github.com/rs/zerolog/log"

	"github.com/Ferrari4891/selecttravel-api/internal/config"
	"github.com/Ferrari4891/selecttravel-api/internal/email"
	"github.com/Ferrari4891/selecttravel-api/internal/repository"
	"github.com/Ferrari4891/selecttravel-api/internal/scheduler"
	"github.com/Ferrari4891/selecttravel-api/internal/service/report"
	"github.com/Ferrari4891/selecttravel-api/pkg/logger"
	"github.com/Ferrari4891/selecttravel-api/pkg/messaging"
	redisbroker "github.com/Ferrari4891/selecttravel-api/pkg/messaging/redis"
	"github.com/Ferrari4891/selecttravel-api/pkg/metrics"
)

// newDispatcher wires the dispatcher behind POST /dispatch/run. It shares the
// same redis cycle lock as the scheduler binary so a manual run never overlaps
// a scheduled one.
func newDispatcher(
	cfg *config.Config,
	scheduleRepo repository.ScheduleRepository,
	resultRepo repository.DispatchResultRepository,
	voucherRepo repository.VoucherRepository,
	businessRepo repository.BusinessRepository,
) *scheduler.Dispatcher {
	zl := log.Logger
	appLogger := &logger.Logger{ZL: zl}

	var (
		broker messaging.Broker
		lock   scheduler.CycleLock
	)
	b, err := redisbroker.NewRedisBroker(redisbroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &zl)
	if err != nil {
		// Manual dispatch stays available without redis; the claim update
		// still prevents double dispatch.
		log.Warn().Err(err).Msg("redis unavailable, manual dispatch runs without cycle lock")
	} else {
		broker = b
		lock = redisbroker.NewCycleLock(b.(*redisbroker.RedisBroker).Client(), "", cfg.Scheduler.LockTTL)
	}

	return scheduler.NewDispatcher(
		scheduleRepo,
		resultRepo,
		voucherRepo,
		report.NewService(businessRepo, voucherRepo, resultRepo),
		email.NewSMTPService(cfg.SMTP),
		broker,
		lock,
		appLogger,
		metrics.New("selecttravel_api"),
	)
}
