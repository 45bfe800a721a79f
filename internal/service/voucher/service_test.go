package voucher

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ferrari4891/selecttravel-api/internal/model"
	apperrors "github.com/Ferrari4891/selecttravel-api/pkg/errors"
)

type fakeVoucherRepo struct {
	vouchers map[uuid.UUID]*model.Voucher
}

func newFakeVoucherRepo() *fakeVoucherRepo {
	return &fakeVoucherRepo{vouchers: make(map[uuid.UUID]*model.Voucher)}
}

func (f *fakeVoucherRepo) Create(_ context.Context, v *model.Voucher) error {
	v.ID = uuid.New()
	f.vouchers[v.ID] = v
	return nil
}

func (f *fakeVoucherRepo) Get(_ context.Context, id uuid.UUID) (*model.Voucher, error) {
	v, ok := f.vouchers[id]
	if !ok {
		return nil, apperrors.NewNotFound("voucher", nil)
	}
	return v, nil
}

func (f *fakeVoucherRepo) Update(_ context.Context, v *model.Voucher) error {
	f.vouchers[v.ID] = v
	return nil
}

func (f *fakeVoucherRepo) ListByBusiness(context.Context, uuid.UUID, bool) ([]*model.Voucher, error) {
	return nil, nil
}

func (f *fakeVoucherRepo) Latest(context.Context, uuid.UUID) (*model.Voucher, error) {
	return nil, apperrors.NewNotFound("voucher", nil)
}

func (f *fakeVoucherRepo) CountCreatedSince(context.Context, uuid.UUID, time.Time) (int, error) {
	return 0, nil
}

func validVoucher() *model.Voucher {
	return &model.Voucher{
		BusinessID:    uuid.New(),
		Title:         "Summer Deal",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: 25,
		ExpiresAt:     time.Now().AddDate(0, 0, 7),
	}
}

func TestCreateVoucher(t *testing.T) {
	repo := newFakeVoucherRepo()
	svc := NewService(repo)

	v := validVoucher()
	require.NoError(t, svc.CreateVoucher(context.Background(), v))

	assert.True(t, v.IsActive)
	assert.False(t, v.StartsAt.IsZero())
	assert.Len(t, repo.vouchers, 1)
}

func TestCreateVoucherValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.Voucher)
		wantErr string
	}{
		{
			name:    "missing business",
			mutate:  func(v *model.Voucher) { v.BusinessID = uuid.Nil },
			wantErr: "business ID is required",
		},
		{
			name:    "missing title",
			mutate:  func(v *model.Voucher) { v.Title = "" },
			wantErr: "title is required",
		},
		{
			name:    "bad discount type",
			mutate:  func(v *model.Voucher) { v.DiscountType = "bogus" },
			wantErr: "invalid discount type",
		},
		{
			name:    "non-positive discount",
			mutate:  func(v *model.Voucher) { v.DiscountValue = 0 },
			wantErr: "discount value must be positive",
		},
		{
			name:    "percentage over 100",
			mutate:  func(v *model.Voucher) { v.DiscountValue = 150 },
			wantErr: "cannot exceed 100",
		},
		{
			name: "expiry before start",
			mutate: func(v *model.Voucher) {
				v.StartsAt = time.Now()
				v.ExpiresAt = time.Now().AddDate(0, 0, -1)
			},
			wantErr: "expiry must be after start",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeVoucherRepo())
			v := validVoucher()
			tt.mutate(v)

			err := svc.CreateVoucher(context.Background(), v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDeactivateVoucher(t *testing.T) {
	repo := newFakeVoucherRepo()
	svc := NewService(repo)

	v := validVoucher()
	require.NoError(t, svc.CreateVoucher(context.Background(), v))

	require.NoError(t, svc.DeactivateVoucher(context.Background(), v.ID))
	assert.False(t, repo.vouchers[v.ID].IsActive)
}

func TestDeactivateVoucherNotFound(t *testing.T) {
	svc := NewService(newFakeVoucherRepo())

	err := svc.DeactivateVoucher(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
