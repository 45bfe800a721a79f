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

func (r *businessRepository) Create(ctx context.Context, business *model.Business) error {
	query := `
		INSERT INTO businesses (
			id, owner_id, name, email, category, city, country,
			tier, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	business.ID = uuid.New()
	business.CreatedAt = time.Now()
	business.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		business.ID,
		business.OwnerID,
		business.Name,
		business.Email,
		business.Category,
		business.City,
		business.Country,
		business.Tier,
		business.Status,
		business.CreatedAt,
		business.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}
	return nil
}

func (r *businessRepository) Get(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	query := `
		SELECT id, owner_id, name, email, category, city, country,
			   tier, status, created_at, updated_at
		FROM businesses
		WHERE id = $1
	`
	var business model.Business
	err := r.db.GetContext(ctx, &business, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("business", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	return &business, nil
}

func (r *businessRepository) Update(ctx context.Context, business *model.Business) error {
	query := `
		UPDATE businesses
		SET name = $1, email = $2, category = $3, city = $4, country = $5,
			tier = $6, status = $7, updated_at = $8
		WHERE id = $9
	`
	business.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		business.Name,
		business.Email,
		business.Category,
		business.City,
		business.Country,
		business.Tier,
		business.Status,
		business.UpdatedAt,
		business.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("business", nil)
	}

	return nil
}

func (r *businessRepository) List(ctx context.Context, filters map[string]interface{}) ([]*model.Business, error) {
	query := `
		SELECT id, owner_id, name, email, category, city, country,
			   tier, status, created_at, updated_at
		FROM businesses
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if v, ok := filters["city"]; ok {
		query += fmt.Sprintf(" AND city = $%d", argCount)
		args = append(args, v)
		argCount++
	}

	if v, ok := filters["category"]; ok {
		query += fmt.Sprintf(" AND category = $%d", argCount)
		args = append(args, v)
		argCount++
	}

	if v, ok := filters["status"]; ok {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, v)
		argCount++
	}

	if v, ok := filters["owner_id"]; ok {
		query += fmt.Sprintf(" AND owner_id = $%d", argCount)
		args = append(args, v)
		argCount++
	}

	query += " ORDER BY name ASC"

	var businesses []*model.Business
	err := r.db.SelectContext(ctx, &businesses, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	return businesses, nil
}
