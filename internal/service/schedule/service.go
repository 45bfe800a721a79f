package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ferrari4891/selecttravel-api/internal/model"
	"github.com/Ferrari4891/selecttravel-api/internal/repository"
	"github.com/Ferrari4891/selecttravel-api/internal/scheduler"
)

type Service struct {
	repo         repository.ScheduleRepository
	businessRepo repository.BusinessRepository
	resultRepo   repository.DispatchResultRepository
}

func NewService(repo repository.ScheduleRepository, businessRepo repository.BusinessRepository, resultRepo repository.DispatchResultRepository) *Service {
	return &Service{
		repo:         repo,
		businessRepo: businessRepo,
		resultRepo:   resultRepo,
	}
}

// CreateSchedule validates the recurrence definition and computes the first
// trigger. Unknown patterns are rejected here rather than silently defaulted at
// dispatch time.
func (s *Service) CreateSchedule(ctx context.Context, schedule *model.Schedule) error {
	if err := s.validateSchedule(schedule); err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}

	if _, err := s.businessRepo.Get(ctx, schedule.BusinessID); err != nil {
		return fmt.Errorf("failed to get business: %w", err)
	}

	schedule.IsActive = true
	schedule.NextTriggerAt = scheduler.InitialTrigger(time.Now(), schedule.Pattern, scheduler.ParamsFor(schedule))

	if err := s.repo.Create(ctx, schedule); err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

func (s *Service) GetSchedule(ctx context.Context, id uuid.UUID) (*model.Schedule, error) {
	schedule, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return schedule, nil
}

func (s *Service) ListSchedules(ctx context.Context, businessID uuid.UUID) ([]*model.Schedule, error) {
	schedules, err := s.repo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

// UpdateSchedule re-validates and recomputes the next trigger from the new
// recurrence parameters.
func (s *Service) UpdateSchedule(ctx context.Context, schedule *model.Schedule) error {
	if err := s.validateSchedule(schedule); err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}

	schedule.NextTriggerAt = scheduler.InitialTrigger(time.Now(), schedule.Pattern, scheduler.ParamsFor(schedule))

	if err := s.repo.Update(ctx, schedule); err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}
	return nil
}

// DeactivateSchedule disables a schedule. Schedules are never deleted so the
// run log keeps its referent.
func (s *Service) DeactivateSchedule(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("failed to deactivate schedule: %w", err)
	}
	return nil
}

func (s *Service) ActivateSchedule(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SetActive(ctx, id, true); err != nil {
		return fmt.Errorf("failed to activate schedule: %w", err)
	}
	return nil
}

func (s *Service) ListDispatchResults(ctx context.Context, scheduleID uuid.UUID, limit int) ([]*model.DispatchResult, error) {
	results, err := s.resultRepo.ListBySchedule(ctx, scheduleID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list dispatch results: %w", err)
	}
	return results, nil
}

func (s *Service) validateSchedule(schedule *model.Schedule) error {
	if schedule.BusinessID == uuid.Nil {
		return fmt.Errorf("business ID is required")
	}

	switch schedule.Kind {
	case model.ScheduleKindVoucher:
		var tpl model.VoucherTemplate
		if err := json.Unmarshal(schedule.Template, &tpl); err != nil {
			return fmt.Errorf("invalid voucher template: %w", err)
		}
		if tpl.Title == "" {
			return fmt.Errorf("voucher template title is required")
		}
		if tpl.DiscountType != model.DiscountPercentage && tpl.DiscountType != model.DiscountFixed {
			return fmt.Errorf("invalid discount type: %s", tpl.DiscountType)
		}
		if tpl.DiscountValue <= 0 {
			return fmt.Errorf("discount value must be positive")
		}
	case model.ScheduleKindReport:
		var tpl model.ReportTemplate
		if err := json.Unmarshal(schedule.Template, &tpl); err != nil {
			return fmt.Errorf("invalid report template: %w", err)
		}
	default:
		return fmt.Errorf("unknown schedule kind: %s", schedule.Kind)
	}

	if !scheduler.KnownPattern(schedule.Pattern) {
		return fmt.Errorf("unknown recurrence pattern: %s", schedule.Pattern)
	}

	if schedule.SendTime != nil {
		if _, err := time.Parse("15:04", *schedule.SendTime); err != nil {
			return fmt.Errorf("invalid send time %q: must be HH:MM", *schedule.SendTime)
		}
	}

	if schedule.Pattern == model.PatternWeekly {
		if schedule.SendDay == nil {
			return fmt.Errorf("weekly schedules require a send day")
		}
		if !validWeekday(*schedule.SendDay) {
			return fmt.Errorf("invalid send day: %s", *schedule.SendDay)
		}
	}

	if schedule.Pattern == model.PatternMonthly {
		if schedule.SendDayOfMonth == nil {
			return fmt.Errorf("monthly schedules require a day of month")
		}
		if *schedule.SendDayOfMonth < 1 || *schedule.SendDayOfMonth > 28 {
			return fmt.Errorf("day of month must be between 1 and 28")
		}
	}

	return nil
}

func validWeekday(name string) bool {
	switch name {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return true
	}
	return false
}
