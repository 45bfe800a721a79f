package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Ferrari4891/selecttravel-api/internal/repository"
	"github.com/Ferrari4891/selecttravel-api/pkg/logger"
)

// RetentionWorker trims old run-log rows on a slow ticker. The run log is
// append-only everywhere else.
type RetentionWorker struct {
	results       repository.DispatchResultRepository
	retentionDays int
	interval      time.Duration
	logger        *logger.Logger
}

func NewRetentionWorker(results repository.DispatchResultRepository, retentionDays int, interval time.Duration, logger *logger.Logger) *RetentionWorker {
	if retentionDays <= 0 {
		retentionDays = 90
	}
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &RetentionWorker{
		results:       results,
		retentionDays: retentionDays,
		interval:      interval,
		logger:        logger,
	}
}

func (w *RetentionWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.cleanup(ctx); err != nil {
				w.logger.Error(err, "run log cleanup failed")
			}
		}
	}
}

func (w *RetentionWorker) cleanup(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -w.retentionDays)

	rows, err := w.results.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete old dispatch results: %w", err)
	}

	w.logger.ZL.Info().Int64("rows", rows).Time("cutoff", cutoff).Msg("trimmed run log")
	return nil
}
