package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Ferrari4891/selecttravel-api/internal/email"
	"github.com/Ferrari4891/selecttravel-api/internal/model"
	"github.com/Ferrari4891/selecttravel-api/internal/repository"
	"github.com/Ferrari4891/selecttravel-api/pkg/logger"
	"github.com/Ferrari4891/selecttravel-api/pkg/messaging"
	"github.com/Ferrari4891/selecttravel-api/pkg/metrics"
)

// ErrCycleInProgress is returned when another dispatcher invocation holds the
// cycle lock.
var ErrCycleInProgress = errors.New("dispatch cycle already in progress")

const (
	eventChannel        = "dispatch.events"
	defaultDurationDays = 7
)

// ReportBuilder renders an analytics report email for a report schedule.
type ReportBuilder interface {
	BuildReport(ctx context.Context, schedule *model.Schedule) (*model.ReportEmail, error)
}

// CycleLock serializes dispatch cycles across invocations.
type CycleLock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// Dispatcher runs dispatch cycles: selects due schedules, claims each one,
// performs its action and appends the outcome to the run log. Schedules are
// processed sequentially and independently; one failure never blocks or rolls
// back the others.
type Dispatcher struct {
	schedules repository.ScheduleRepository
	results   repository.DispatchResultRepository
	vouchers  repository.VoucherRepository
	reports   ReportBuilder
	emails    email.Service
	broker    messaging.Broker
	lock      CycleLock
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

func NewDispatcher(
	schedules repository.ScheduleRepository,
	results repository.DispatchResultRepository,
	vouchers repository.VoucherRepository,
	reports ReportBuilder,
	emails email.Service,
	broker messaging.Broker,
	lock CycleLock,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Dispatcher {
	return &Dispatcher{
		schedules: schedules,
		results:   results,
		vouchers:  vouchers,
		reports:   reports,
		emails:    emails,
		broker:    broker,
		lock:      lock,
		logger:    logger,
		metrics:   metrics,
	}
}

// RunCycle processes all currently-due schedules once. A store error during
// selection aborts the whole cycle with nothing mutated; per-schedule failures
// are isolated and logged. Returns ErrCycleInProgress when another invocation
// holds the cycle lock.
func (d *Dispatcher) RunCycle(ctx context.Context, now time.Time) (*model.CycleSummary, error) {
	if d.lock != nil {
		acquired, err := d.lock.Acquire(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire cycle lock: %w", err)
		}
		if !acquired {
			return nil, ErrCycleInProgress
		}
		defer func() {
			if err := d.lock.Release(ctx); err != nil {
				d.logger.Error(err, "failed to release cycle lock")
			}
		}()
	}

	timer := prometheus.NewTimer(d.metrics.CycleDuration)
	defer timer.ObserveDuration()

	due, err := d.schedules.ListDue(ctx, now)
	if err != nil {
		d.metrics.DatabaseOperations.WithLabelValues("list_due", "error").Inc()
		return nil, fmt.Errorf("failed to select due schedules: %w", err)
	}
	d.metrics.DatabaseOperations.WithLabelValues("list_due", "success").Inc()
	d.metrics.SchedulesDue.Set(float64(len(due)))

	summary := &model.CycleSummary{}
	for _, schedule := range due {
		summary.Processed++
		d.process(ctx, schedule, now, summary)
	}

	d.logger.ZL.Info().
		Int("processed", summary.Processed).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped).
		Msg("dispatch cycle finished")

	return summary, nil
}

func (d *Dispatcher) process(ctx context.Context, schedule *model.Schedule, now time.Time, summary *model.CycleSummary) {
	if !KnownPattern(schedule.Pattern) {
		d.logger.ZL.Warn().
			Str("schedule_id", schedule.ID.String()).
			Str("pattern", string(schedule.Pattern)).
			Msg("unknown recurrence pattern, falling back to daily")
	}
	next := NextTrigger(now, schedule.Pattern, ParamsFor(schedule))

	// Claim before the side effect: the conditional update advances
	// next_trigger_at only if it still holds the observed value, so an
	// overlapping invocation that already claimed this due instant loses here
	// and skips. The trigger always advances, success or failure, which keeps
	// failing schedules from retrying in a tight loop.
	claimed, err := d.schedules.ClaimDue(ctx, schedule.ID, schedule.NextTriggerAt, next, now)
	if err != nil {
		d.logger.Error(err, "failed to claim schedule", "schedule_id", schedule.ID.String())
		summary.Failed++
		return
	}
	if !claimed {
		d.metrics.DispatchSkipped.Inc()
		summary.Skipped++
		return
	}

	voucherID, actionErr := d.dispatch(ctx, schedule, now)

	result := &model.DispatchResult{
		ScheduleID:  schedule.ID,
		TriggeredAt: now,
	}
	if actionErr != nil {
		msg := actionErr.Error()
		result.Status = model.DispatchStatusFailed
		result.ErrorMessage = &msg
		summary.Failed++
		d.metrics.DispatchFailed.WithLabelValues(string(schedule.Kind)).Inc()
		d.logger.Error(actionErr, "dispatch failed",
			"schedule_id", schedule.ID.String(),
			"kind", string(schedule.Kind))
	} else {
		result.Status = model.DispatchStatusSuccess
		result.VoucherID = voucherID
		summary.Succeeded++
		d.metrics.DispatchSucceeded.WithLabelValues(string(schedule.Kind)).Inc()
	}

	if err := d.results.Create(ctx, result); err != nil {
		d.logger.Error(err, "failed to record dispatch result", "schedule_id", schedule.ID.String())
	}

	if actionErr == nil && d.broker != nil {
		d.publishEvent(ctx, schedule, voucherID)
	}
}

// dispatch performs the schedule's side-effecting action exactly once. This is
// a fire-and-forget integration boundary: a voucher row appears or an email is
// handed to the SMTP provider, with no delivery-confirmation loop.
func (d *Dispatcher) dispatch(ctx context.Context, schedule *model.Schedule, now time.Time) (*uuid.UUID, error) {
	switch schedule.Kind {
	case model.ScheduleKindVoucher:
		return d.createVoucher(ctx, schedule, now)
	case model.ScheduleKindReport:
		return nil, d.sendReport(ctx, schedule)
	default:
		return nil, fmt.Errorf("unsupported schedule kind: %s", schedule.Kind)
	}
}

func (d *Dispatcher) createVoucher(ctx context.Context, schedule *model.Schedule, now time.Time) (*uuid.UUID, error) {
	var tpl model.VoucherTemplate
	if err := json.Unmarshal(schedule.Template, &tpl); err != nil {
		return nil, fmt.Errorf("invalid voucher template: %w", err)
	}

	days := tpl.DurationDays
	if days <= 0 {
		days = defaultDurationDays
	}

	voucher := &model.Voucher{
		BusinessID:    schedule.BusinessID,
		ScheduleID:    &schedule.ID,
		Title:         tpl.Title,
		Description:   tpl.Description,
		DiscountType:  tpl.DiscountType,
		DiscountValue: tpl.DiscountValue,
		StartsAt:      now,
		ExpiresAt:     now.AddDate(0, 0, days),
		IsActive:      true,
	}

	if err := d.vouchers.Create(ctx, voucher); err != nil {
		return nil, fmt.Errorf("failed to create voucher: %w", err)
	}
	return &voucher.ID, nil
}

func (d *Dispatcher) sendReport(ctx context.Context, schedule *model.Schedule) error {
	report, err := d.reports.BuildReport(ctx, schedule)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	if err := d.emails.Send(ctx, report.To, report.Subject, report.Body); err != nil {
		d.metrics.EmailsFailed.Inc()
		return fmt.Errorf("failed to send report email: %w", err)
	}
	d.metrics.EmailsSent.Inc()
	return nil
}

func (d *Dispatcher) publishEvent(ctx context.Context, schedule *model.Schedule, voucherID *uuid.UUID) {
	eventType := "report.sent"
	if schedule.Kind == model.ScheduleKindVoucher {
		eventType = "voucher.created"
	}

	payload := map[string]interface{}{
		"schedule_id": schedule.ID,
		"business_id": schedule.BusinessID,
	}
	if voucherID != nil {
		payload["voucher_id"] = *voucherID
	}

	if err := d.broker.Publish(ctx, eventChannel, messaging.Message{Type: eventType, Payload: payload}); err != nil {
		d.logger.Error(err, "failed to publish dispatch event", "schedule_id", schedule.ID.String())
	}
}
