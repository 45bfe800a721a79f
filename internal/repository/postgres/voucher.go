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

func (r *voucherRepository) Create(ctx context.Context, voucher *model.Voucher) error {
	query := `
		INSERT INTO vouchers (
			id, business_id, schedule_id, title, description,
			discount_type, discount_value, starts_at, expires_at,
			is_active, redemptions, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	voucher.ID = uuid.New()
	voucher.CreatedAt = time.Now()
	voucher.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		voucher.ID,
		voucher.BusinessID,
		voucher.ScheduleID,
		voucher.Title,
		voucher.Description,
		voucher.DiscountType,
		voucher.DiscountValue,
		voucher.StartsAt,
		voucher.ExpiresAt,
		voucher.IsActive,
		voucher.Redemptions,
		voucher.CreatedAt,
		voucher.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create voucher: %w", err)
	}
	return nil
}

func (r *voucherRepository) Get(ctx context.Context, id uuid.UUID) (*model.Voucher, error) {
	query := `
		SELECT id, business_id, schedule_id, title, description,
			   discount_type, discount_value, starts_at, expires_at,
			   is_active, redemptions, created_at, updated_at
		FROM vouchers
		WHERE id = $1
	`
	var voucher model.Voucher
	err := r.db.GetContext(ctx, &voucher, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("voucher", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get voucher: %w", err)
	}
	return &voucher, nil
}

func (r *voucherRepository) Update(ctx context.Context, voucher *model.Voucher) error {
	query := `
		UPDATE vouchers
		SET title = $1, description = $2, discount_type = $3, discount_value = $4,
			starts_at = $5, expires_at = $6, is_active = $7, updated_at = $8
		WHERE id = $9
	`
	voucher.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		voucher.Title,
		voucher.Description,
		voucher.DiscountType,
		voucher.DiscountValue,
		voucher.StartsAt,
		voucher.ExpiresAt,
		voucher.IsActive,
		voucher.UpdatedAt,
		voucher.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update voucher: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("voucher", nil)
	}

	return nil
}

func (r *voucherRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID, activeOnly bool) ([]*model.Voucher, error) {
	query := `
		SELECT id, business_id, schedule_id, title, description,
			   discount_type, discount_value, starts_at, expires_at,
			   is_active, redemptions, created_at, updated_at
		FROM vouchers
		WHERE business_id = $1
	`
	if activeOnly {
		query += " AND is_active = true AND expires_at > now()"
	}
	query += " ORDER BY created_at DESC"

	var vouchers []*model.Voucher
	err := r.db.SelectContext(ctx, &vouchers, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	return vouchers, nil
}

func (r *voucherRepository) Latest(ctx context.Context, businessID uuid.UUID) (*model.Voucher, error) {
	query := `
		SELECT id, business_id, schedule_id, title, description,
			   discount_type, discount_value, starts_at, expires_at,
			   is_active, redemptions, created_at, updated_at
		FROM vouchers
		WHERE business_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var voucher model.Voucher
	err := r.db.GetContext(ctx, &voucher, query, businessID)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("voucher", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest voucher: %w", err)
	}
	return &voucher, nil
}

func (r *voucherRepository) CountCreatedSince(ctx context.Context, businessID uuid.UUID, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM vouchers WHERE business_id = $1 AND created_at >= $2`

	var count int
	err := r.db.GetContext(ctx, &count, query, businessID, since)
	if err != nil {
		return 0, fmt.Errorf("failed to count vouchers: %w", err)
	}
	return count, nil
}
