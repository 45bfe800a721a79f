package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Ferrari4891/selecttravel-api/internal/model"
)

type BusinessRepository interface {
	Create(ctx context.Context, business *model.Business) error
	Get(ctx context.Context, id uuid.UUID) (*model.Business, error)
	Update(ctx context.Context, business *model.Business) error
	List(ctx context.Context, filters map[string]interface{}) ([]*model.Business, error)
}

type VoucherRepository interface {
	Create(ctx context.Context, voucher *model.Voucher) error
	Get(ctx context.Context, id uuid.UUID) (*model.Voucher, error)
	Update(ctx context.Context, voucher *model.Voucher) error
	ListByBusiness(ctx context.Context, businessID uuid.UUID, activeOnly bool) ([]*model.Voucher, error)
	// Latest returns the most recently created voucher for a business, used for
	// report variable substitution. Returns a not-found error when none exist.
	Latest(ctx context.Context, businessID uuid.UUID) (*model.Voucher, error)
	CountCreatedSince(ctx context.Context, businessID uuid.UUID, since time.Time) (int, error)
}

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	Get(ctx context.Context, id uuid.UUID) (*model.Schedule, error)
	Update(ctx context.Context, schedule *model.Schedule) error
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*model.Schedule, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	// ListDue returns every active schedule whose next_trigger_at is at or before
	// now and whose owning business is currently eligible. Single consistent
	// snapshot, no side effects.
	ListDue(ctx context.Context, now time.Time) ([]*model.Schedule, error)

	// ClaimDue conditionally advances a schedule's trigger bookkeeping. The update
	// only applies while next_trigger_at still equals observedNext, so overlapping
	// dispatcher invocations cannot both claim the same due instant. Returns false
	// when the row was already claimed.
	ClaimDue(ctx context.Context, id uuid.UUID, observedNext, newNext, triggeredAt time.Time) (bool, error)
}

type DispatchResultRepository interface {
	// Create appends one run-log row. Rows are never updated or deleted except by
	// the retention sweep.
	Create(ctx context.Context, result *model.DispatchResult) error
	ListBySchedule(ctx context.Context, scheduleID uuid.UUID, limit int) ([]*model.DispatchResult, error)
	CountForBusinessSince(ctx context.Context, businessID uuid.UUID, since time.Time) (int, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}
