package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ferrari4891/selecttravel-api/internal/model"
	apperrors "github.com/Ferrari4891/selecttravel-api/pkg/errors"
)

const scheduleColumns = `
	id, business_id, kind, pattern, send_time, send_day, send_day_of_month,
	template, is_active, last_triggered_at, next_trigger_at, created_at, updated_at
`

func (r *scheduleRepository) Create(ctx context.Context, schedule *model.Schedule) error {
	query := `
		INSERT INTO schedules (
			id, business_id, kind, pattern, send_time, send_day, send_day_of_month,
			template, is_active, next_trigger_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	schedule.ID = uuid.New()
	schedule.CreatedAt = time.Now()
	schedule.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		schedule.ID,
		schedule.BusinessID,
		schedule.Kind,
		schedule.Pattern,
		schedule.SendTime,
		schedule.SendDay,
		schedule.SendDayOfMonth,
		schedule.Template,
		schedule.IsActive,
		schedule.NextTriggerAt,
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

func (r *scheduleRepository) Get(ctx context.Context, id uuid.UUID) (*model.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1`

	var schedule model.Schedule
	err := r.db.GetContext(ctx, &schedule, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("schedule", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &schedule, nil
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *model.Schedule) error {
	query := `
		UPDATE schedules
		SET pattern = $1, send_time = $2, send_day = $3, send_day_of_month = $4,
			template = $5, is_active = $6, next_trigger_at = $7, updated_at = $8
		WHERE id = $9
	`
	schedule.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		schedule.Pattern,
		schedule.SendTime,
		schedule.SendDay,
		schedule.SendDayOfMonth,
		schedule.Template,
		schedule.IsActive,
		schedule.NextTriggerAt,
		schedule.UpdatedAt,
		schedule.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("schedule", nil)
	}

	return nil
}

func (r *scheduleRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*model.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE business_id = $1 ORDER BY created_at DESC`

	var schedules []*model.Schedule
	err := r.db.SelectContext(ctx, &schedules, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

func (r *scheduleRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE schedules SET is_active = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, active, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set schedule active flag: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("schedule", nil)
	}

	return nil
}

// ListDue selects due schedules joined against the owning business's current
// tier and status, so eligibility is evaluated fresh on every cycle. Schedules
// of ineligible businesses are left untouched and resume once the business
// requalifies.
func (r *scheduleRepository) ListDue(ctx context.Context, now time.Time) ([]*model.Schedule, error) {
	query := `
		SELECT s.id, s.business_id, s.kind, s.pattern, s.send_time, s.send_day,
			   s.send_day_of_month, s.template, s.is_active, s.last_triggered_at,
			   s.next_trigger_at, s.created_at, s.updated_at
		FROM schedules s
		JOIN businesses b ON b.id = s.business_id
		WHERE s.is_active = true
		  AND s.next_trigger_at <= $1
		  AND b.tier = $2
		  AND b.status = $3
		ORDER BY s.next_trigger_at ASC
	`
	var schedules []*model.Schedule
	err := r.db.SelectContext(ctx, &schedules, query, now, model.TierPremium, model.BusinessStatusApproved)
	if err != nil {
		return nil, apperrors.NewUnavailable("failed to select due schedules", err)
	}
	return schedules, nil
}

// ClaimDue advances next_trigger_at only while it still holds the observed
// value, so two overlapping invocations cannot both win the same due instant.
func (r *scheduleRepository) ClaimDue(ctx context.Context, id uuid.UUID, observedNext, newNext, triggeredAt time.Time) (bool, error) {
	query := `
		UPDATE schedules
		SET next_trigger_at = $1, last_triggered_at = $2, updated_at = $3
		WHERE id = $4 AND next_trigger_at = $5
	`
	result, err := r.db.ExecContext(ctx, query, newNext, triggeredAt, time.Now(), id, observedNext)
	if err != nil {
		return false, fmt.Errorf("failed to claim schedule: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}
