package report

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ferrari4891/selecttravel-api/internal/model"
	apperrors "github.com/Ferrari4891/selecttravel-api/pkg/errors"
)

type fakeBusinessRepo struct {
	business *model.Business
}

func (f *fakeBusinessRepo) Create(context.Context, *model.Business) error { return nil }
func (f *fakeBusinessRepo) Get(context.Context, uuid.UUID) (*model.Business, error) {
	if f.business == nil {
		return nil, apperrors.NewNotFound("business", nil)
	}
	return f.business, nil
}
func (f *fakeBusinessRepo) Update(context.Context, *model.Business) error { return nil }
func (f *fakeBusinessRepo) List(context.Context, map[string]interface{}) ([]*model.Business, error) {
	return nil, nil
}

type fakeVoucherRepo struct {
	latest *model.Voucher
	count  int
}

func (f *fakeVoucherRepo) Create(context.Context, *model.Voucher) error { return nil }
func (f *fakeVoucherRepo) Get(context.Context, uuid.UUID) (*model.Voucher, error) {
	return nil, apperrors.NewNotFound("voucher", nil)
}
func (f *fakeVoucherRepo) Update(context.Context, *model.Voucher) error { return nil }
func (f *fakeVoucherRepo) ListByBusiness(context.Context, uuid.UUID, bool) ([]*model.Voucher, error) {
	return nil, nil
}
func (f *fakeVoucherRepo) Latest(context.Context, uuid.UUID) (*model.Voucher, error) {
	if f.latest == nil {
		return nil, apperrors.NewNotFound("voucher", nil)
	}
	return f.latest, nil
}
func (f *fakeVoucherRepo) CountCreatedSince(context.Context, uuid.UUID, time.Time) (int, error) {
	return f.count, nil
}

type fakeResultRepo struct {
	count int
}

func (fakeResultRepo) Create(context.Context, *model.DispatchResult) error { return nil }
func (fakeResultRepo) ListBySchedule(context.Context, uuid.UUID, int) ([]*model.DispatchResult, error) {
	return nil, nil
}
func (f fakeResultRepo) CountForBusinessSince(context.Context, uuid.UUID, time.Time) (int, error) {
	return f.count, nil
}
func (fakeResultRepo) DeleteOlderThan(context.Context, time.Time) (int64, error) { return 0, nil }

func reportScheduleWith(t *testing.T, tpl model.ReportTemplate) *model.Schedule {
	t.Helper()
	raw, err := json.Marshal(tpl)
	require.NoError(t, err)
	return &model.Schedule{
		ID:         uuid.New(),
		BusinessID: uuid.New(),
		Kind:       model.ScheduleKindReport,
		Pattern:    model.PatternMonthly,
		Template:   raw,
	}
}

func TestBuildReportSubstitutesVariables(t *testing.T) {
	businesses := &fakeBusinessRepo{business: &model.Business{
		ID:    uuid.New(),
		Name:  "Cafe Roma",
		Email: "cafe@example.com",
	}}
	vouchers := &fakeVoucherRepo{
		count: 4,
		latest: &model.Voucher{
			Title:         "Spring Special",
			DiscountType:  model.DiscountPercentage,
			DiscountValue: 20,
			ExpiresAt:     time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	svc := NewService(businesses, vouchers, fakeResultRepo{count: 6})

	schedule := reportScheduleWith(t, model.ReportTemplate{
		RecipientEmail: "owner@example.com",
		Subject:        "{business_name} report",
		Body:           "{voucher_count} vouchers, latest {voucher_title} at {discount} until {expiry}",
	})

	email, err := svc.BuildReport(context.Background(), schedule)
	require.NoError(t, err)

	assert.Equal(t, "owner@example.com", email.To)
	assert.Equal(t, "Cafe Roma report", email.Subject)
	assert.Equal(t, "4 vouchers, latest Spring Special at 20% off until Apr 15, 2025", email.Body)
}

func TestBuildReportFallsBackToBusinessEmail(t *testing.T) {
	businesses := &fakeBusinessRepo{business: &model.Business{
		ID:    uuid.New(),
		Name:  "Cafe Roma",
		Email: "cafe@example.com",
	}}

	svc := NewService(businesses, &fakeVoucherRepo{}, fakeResultRepo{})

	email, err := svc.BuildReport(context.Background(), reportScheduleWith(t, model.ReportTemplate{}))
	require.NoError(t, err)
	assert.Equal(t, "cafe@example.com", email.To)
}

func TestBuildReportNoRecipient(t *testing.T) {
	businesses := &fakeBusinessRepo{business: &model.Business{ID: uuid.New(), Name: "Cafe Roma"}}

	svc := NewService(businesses, &fakeVoucherRepo{}, fakeResultRepo{})

	_, err := svc.BuildReport(context.Background(), reportScheduleWith(t, model.ReportTemplate{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recipient")
}

func TestBuildReportNoVouchersLeavesPlaceholders(t *testing.T) {
	businesses := &fakeBusinessRepo{business: &model.Business{
		ID:    uuid.New(),
		Name:  "Cafe Roma",
		Email: "cafe@example.com",
	}}

	svc := NewService(businesses, &fakeVoucherRepo{}, fakeResultRepo{})

	schedule := reportScheduleWith(t, model.ReportTemplate{
		Subject: "report",
		Body:    "count {voucher_count}, latest {voucher_title}",
	})

	email, err := svc.BuildReport(context.Background(), schedule)
	require.NoError(t, err)
	assert.Equal(t, "count 0, latest {voucher_title}", email.Body)
}

func TestBuildReportDefaultTemplates(t *testing.T) {
	businesses := &fakeBusinessRepo{business: &model.Business{
		ID:    uuid.New(),
		Name:  "Cafe Roma",
		Email: "cafe@example.com",
	}}

	svc := NewService(businesses, &fakeVoucherRepo{count: 2}, fakeResultRepo{})

	email, err := svc.BuildReport(context.Background(), reportScheduleWith(t, model.ReportTemplate{}))
	require.NoError(t, err)
	assert.Equal(t, "Your Cafe Roma activity report", email.Subject)
	assert.Contains(t, email.Body, "Vouchers created: 2")
}

func TestBuildReportDispatchCount(t *testing.T) {
	businesses := &fakeBusinessRepo{business: &model.Business{
		ID:    uuid.New(),
		Name:  "Cafe Roma",
		Email: "cafe@example.com",
	}}

	svc := NewService(businesses, &fakeVoucherRepo{}, fakeResultRepo{count: 6})

	schedule := reportScheduleWith(t, model.ReportTemplate{
		Subject: "report",
		Body:    "{dispatch_count} successful dispatches in {period}",
	})

	email, err := svc.BuildReport(context.Background(), schedule)
	require.NoError(t, err)
	assert.Equal(t, "6 successful dispatches in the last 30 days", email.Body)
}

func TestBuildReportInvalidTemplate(t *testing.T) {
	svc := NewService(&fakeBusinessRepo{}, &fakeVoucherRepo{}, fakeResultRepo{})

	schedule := &model.Schedule{Template: json.RawMessage(`{broken`)}

	_, err := svc.BuildReport(context.Background(), schedule)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid report template")
}
