package schedule

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

type fakeScheduleRepo struct {
	created *model.Schedule
	updated *model.Schedule
	active  map[uuid.UUID]bool
}

func (f *fakeScheduleRepo) Create(_ context.Context, s *model.Schedule) error {
	f.created = s
	return nil
}
func (f *fakeScheduleRepo) Get(context.Context, uuid.UUID) (*model.Schedule, error) {
	return nil, apperrors.NewNotFound("schedule", nil)
}
func (f *fakeScheduleRepo) Update(_ context.Context, s *model.Schedule) error {
	f.updated = s
	return nil
}
func (f *fakeScheduleRepo) ListByBusiness(context.Context, uuid.UUID) ([]*model.Schedule, error) {
	return nil, nil
}
func (f *fakeScheduleRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	if f.active == nil {
		f.active = make(map[uuid.UUID]bool)
	}
	f.active[id] = active
	return nil
}
func (f *fakeScheduleRepo) ListDue(context.Context, time.Time) ([]*model.Schedule, error) {
	return nil, nil
}
func (f *fakeScheduleRepo) ClaimDue(context.Context, uuid.UUID, time.Time, time.Time, time.Time) (bool, error) {
	return false, nil
}

type fakeBusinessRepo struct {
	businesses map[uuid.UUID]*model.Business
}

func (f *fakeBusinessRepo) Create(context.Context, *model.Business) error { return nil }
func (f *fakeBusinessRepo) Get(_ context.Context, id uuid.UUID) (*model.Business, error) {
	b, ok := f.businesses[id]
	if !ok {
		return nil, apperrors.NewNotFound("business", nil)
	}
	return b, nil
}
func (f *fakeBusinessRepo) Update(context.Context, *model.Business) error { return nil }
func (f *fakeBusinessRepo) List(context.Context, map[string]interface{}) ([]*model.Business, error) {
	return nil, nil
}

type fakeResultRepo struct{}

func (fakeResultRepo) Create(context.Context, *model.DispatchResult) error { return nil }
func (fakeResultRepo) ListBySchedule(context.Context, uuid.UUID, int) ([]*model.DispatchResult, error) {
	return nil, nil
}
func (fakeResultRepo) CountForBusinessSince(context.Context, uuid.UUID, time.Time) (int, error) {
	return 0, nil
}
func (fakeResultRepo) DeleteOlderThan(context.Context, time.Time) (int64, error) { return 0, nil }

func newTestService(businessID uuid.UUID) (*Service, *fakeScheduleRepo) {
	repo := &fakeScheduleRepo{}
	businesses := &fakeBusinessRepo{businesses: map[uuid.UUID]*model.Business{
		businessID: {ID: businessID, Name: "Cafe Roma"},
	}}
	return NewService(repo, businesses, fakeResultRepo{}), repo
}

func voucherTemplate(t *testing.T) json.RawMessage {
	t.Helper()
	tpl, err := json.Marshal(model.VoucherTemplate{
		Title:         "Daily Deal",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: 15,
	})
	require.NoError(t, err)
	return tpl
}

func TestCreateScheduleComputesInitialTrigger(t *testing.T) {
	businessID := uuid.New()
	svc, repo := newTestService(businessID)

	sendTime := "09:00"
	s := &model.Schedule{
		BusinessID: businessID,
		Kind:       model.ScheduleKindVoucher,
		Pattern:    model.PatternDaily,
		SendTime:   &sendTime,
		Template:   voucherTemplate(t),
	}

	require.NoError(t, svc.CreateSchedule(context.Background(), s))

	require.NotNil(t, repo.created)
	assert.True(t, repo.created.IsActive)
	assert.True(t, repo.created.NextTriggerAt.After(time.Now().Add(-time.Second)))
	assert.Equal(t, 9, repo.created.NextTriggerAt.Hour())
	assert.Equal(t, 0, repo.created.NextTriggerAt.Minute())
}

func TestCreateScheduleRejectsUnknownPattern(t *testing.T) {
	businessID := uuid.New()
	svc, repo := newTestService(businessID)

	s := &model.Schedule{
		BusinessID: businessID,
		Kind:       model.ScheduleKindVoucher,
		Pattern:    model.RecurrencePattern("fortnightly"),
		Template:   voucherTemplate(t),
	}

	err := svc.CreateSchedule(context.Background(), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown recurrence pattern")
	assert.Nil(t, repo.created)
}

func TestCreateScheduleRejectsUnknownBusiness(t *testing.T) {
	svc, repo := newTestService(uuid.New())

	s := &model.Schedule{
		BusinessID: uuid.New(),
		Kind:       model.ScheduleKindVoucher,
		Pattern:    model.PatternDaily,
		Template:   voucherTemplate(t),
	}

	require.Error(t, svc.CreateSchedule(context.Background(), s))
	assert.Nil(t, repo.created)
}

func TestCreateScheduleValidation(t *testing.T) {
	businessID := uuid.New()
	sendDay := "monday"
	badDay := "moonday"
	badTime := "9am"
	dom28 := 28
	dom31 := 31

	tests := []struct {
		name    string
		mutate  func(*model.Schedule)
		wantErr string
	}{
		{
			name:    "missing business",
			mutate:  func(s *model.Schedule) { s.BusinessID = uuid.Nil },
			wantErr: "business ID is required",
		},
		{
			name:    "unknown kind",
			mutate:  func(s *model.Schedule) { s.Kind = "newsletter" },
			wantErr: "unknown schedule kind",
		},
		{
			name: "voucher template missing title",
			mutate: func(s *model.Schedule) {
				s.Template = json.RawMessage(`{"discount_type":"fixed","discount_value":5}`)
			},
			wantErr: "title is required",
		},
		{
			name: "voucher template bad discount type",
			mutate: func(s *model.Schedule) {
				s.Template = json.RawMessage(`{"title":"x","discount_type":"bogus","discount_value":5}`)
			},
			wantErr: "invalid discount type",
		},
		{
			name: "voucher template non-positive discount",
			mutate: func(s *model.Schedule) {
				s.Template = json.RawMessage(`{"title":"x","discount_type":"fixed","discount_value":0}`)
			},
			wantErr: "discount value must be positive",
		},
		{
			name:    "malformed send time",
			mutate:  func(s *model.Schedule) { s.SendTime = &badTime },
			wantErr: "must be HH:MM",
		},
		{
			name: "weekly without send day",
			mutate: func(s *model.Schedule) {
				s.Pattern = model.PatternWeekly
			},
			wantErr: "weekly schedules require a send day",
		},
		{
			name: "weekly with bad send day",
			mutate: func(s *model.Schedule) {
				s.Pattern = model.PatternWeekly
				s.SendDay = &badDay
			},
			wantErr: "invalid send day",
		},
		{
			name: "monthly without day of month",
			mutate: func(s *model.Schedule) {
				s.Pattern = model.PatternMonthly
			},
			wantErr: "monthly schedules require a day of month",
		},
		{
			name: "monthly day of month out of range",
			mutate: func(s *model.Schedule) {
				s.Pattern = model.PatternMonthly
				s.SendDayOfMonth = &dom31
			},
			wantErr: "between 1 and 28",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(businessID)
			s := &model.Schedule{
				BusinessID: businessID,
				Kind:       model.ScheduleKindVoucher,
				Pattern:    model.PatternDaily,
				Template:   voucherTemplate(t),
			}
			tt.mutate(s)

			err := svc.CreateSchedule(context.Background(), s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Nil(t, repo.created)
		})
	}

	t.Run("monthly day 28 accepted", func(t *testing.T) {
		svc, repo := newTestService(businessID)
		s := &model.Schedule{
			BusinessID:     businessID,
			Kind:           model.ScheduleKindVoucher,
			Pattern:        model.PatternMonthly,
			SendDayOfMonth: &dom28,
			Template:       voucherTemplate(t),
		}
		require.NoError(t, svc.CreateSchedule(context.Background(), s))
		assert.NotNil(t, repo.created)
	})

	t.Run("weekly with valid send day accepted", func(t *testing.T) {
		svc, repo := newTestService(businessID)
		s := &model.Schedule{
			BusinessID: businessID,
			Kind:       model.ScheduleKindVoucher,
			Pattern:    model.PatternWeekly,
			SendDay:    &sendDay,
			Template:   voucherTemplate(t),
		}
		require.NoError(t, svc.CreateSchedule(context.Background(), s))
		require.NotNil(t, repo.created)
		assert.Equal(t, time.Monday, repo.created.NextTriggerAt.Weekday())
	})
}

func TestUpdateScheduleRecomputesTrigger(t *testing.T) {
	businessID := uuid.New()
	svc, repo := newTestService(businessID)

	s := &model.Schedule{
		ID:            uuid.New(),
		BusinessID:    businessID,
		Kind:          model.ScheduleKindVoucher,
		Pattern:       model.PatternDaily,
		Template:      voucherTemplate(t),
		NextTriggerAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, svc.UpdateSchedule(context.Background(), s))

	require.NotNil(t, repo.updated)
	assert.True(t, repo.updated.NextTriggerAt.After(time.Now()))
}

func TestActivateDeactivate(t *testing.T) {
	svc, repo := newTestService(uuid.New())
	id := uuid.New()

	require.NoError(t, svc.DeactivateSchedule(context.Background(), id))
	assert.False(t, repo.active[id])

	require.NoError(t, svc.ActivateSchedule(context.Background(), id))
	assert.True(t, repo.active[id])
}
