package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ferrari4891/selecttravel-api/internal/model"
)

func (r *dispatchResultRepository) Create(ctx context.Context, result *model.DispatchResult) error {
	query := `
		INSERT INTO dispatch_results (
			id, schedule_id, status, voucher_id, error_message, triggered_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	result.ID = uuid.New()
	result.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		result.ID,
		result.ScheduleID,
		result.Status,
		result.VoucherID,
		result.ErrorMessage,
		result.TriggeredAt,
		result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create dispatch result: %w", err)
	}
	return nil
}

func (r *dispatchResultRepository) ListBySchedule(ctx context.Context, scheduleID uuid.UUID, limit int) ([]*model.DispatchResult, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, schedule_id, status, voucher_id, error_message, triggered_at, created_at
		FROM dispatch_results
		WHERE schedule_id = $1
		ORDER BY triggered_at DESC
		LIMIT $2
	`
	var results []*model.DispatchResult
	err := r.db.SelectContext(ctx, &results, query, scheduleID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list dispatch results: %w", err)
	}
	return results, nil
}

func (r *dispatchResultRepository) CountForBusinessSince(ctx context.Context, businessID uuid.UUID, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM dispatch_results d
		JOIN schedules s ON s.id = d.schedule_id
		WHERE s.business_id = $1 AND d.triggered_at >= $2 AND d.status = $3
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, businessID, since, model.DispatchStatusSuccess)
	if err != nil {
		return 0, fmt.Errorf("failed to count dispatch results: %w", err)
	}
	return count, nil
}

func (r *dispatchResultRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM dispatch_results WHERE triggered_at < $1`

	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old dispatch results: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}
