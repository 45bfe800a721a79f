package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Ferrari4891/selecttravel-api/internal/model"
)

func TestNextTriggerDaily(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	next := NextTrigger(now, model.PatternDaily, RecurrenceParams{})

	assert.Equal(t, time.Date(2025, 3, 11, 14, 30, 0, 0, time.UTC), next)
	assert.True(t, next.After(now))
}

func TestNextTriggerDailyWithSendTime(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	next := NextTrigger(now, model.PatternDaily, RecurrenceParams{SendTime: "09:00"})

	// The period is added before the time of day is overwritten, so a send
	// time earlier than now still lands on tomorrow.
	assert.Equal(t, time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC), next)
	assert.True(t, next.After(now))
}

func TestNextTriggerDailySendTimeLaterThanNow(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	next := NextTrigger(now, model.PatternDaily, RecurrenceParams{SendTime: "22:15"})

	assert.Equal(t, time.Date(2025, 3, 11, 22, 15, 0, 0, time.UTC), next)
}

func TestNextTriggerWeekly(t *testing.T) {
	// A Monday.
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	next := NextTrigger(now, model.PatternWeekly, RecurrenceParams{SendDay: "monday"})

	assert.Equal(t, time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC), next)
	assert.Equal(t, now.Weekday(), next.Weekday())
}

func TestNextTriggerMonthlyEndOfMonth(t *testing.T) {
	// Jan 31 plus one calendar month must not skip February.
	now := time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC)

	next := NextTrigger(now, model.PatternMonthly, RecurrenceParams{SendDayOfMonth: 15})

	assert.Equal(t, time.Date(2025, 2, 15, 12, 0, 0, 0, time.UTC), next)
}

func TestNextTriggerMonthlyDecemberRollsOver(t *testing.T) {
	now := time.Date(2025, 12, 20, 12, 0, 0, 0, time.UTC)

	next := NextTrigger(now, model.PatternMonthly, RecurrenceParams{SendDayOfMonth: 5})

	assert.Equal(t, time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC), next)
}

func TestNextTriggerMonthlyWithoutDayOfMonth(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	next := NextTrigger(now, model.PatternMonthly, RecurrenceParams{})

	assert.Equal(t, time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC), next)
}

func TestNextTriggerMonthlySendTimeAppliedLast(t *testing.T) {
	now := time.Date(2025, 1, 31, 23, 50, 0, 0, time.UTC)

	next := NextTrigger(now, model.PatternMonthly, RecurrenceParams{
		SendDayOfMonth: 1,
		SendTime:       "00:05",
	})

	assert.Equal(t, time.Date(2025, 2, 1, 0, 5, 0, 0, time.UTC), next)
	assert.True(t, next.After(now))
}

func TestNextTriggerUnknownPatternFallsBackToDaily(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	next := NextTrigger(now, model.RecurrencePattern("fortnightly"), RecurrenceParams{})

	assert.Equal(t, now.AddDate(0, 0, 1), next)
}

func TestNextTriggerMalformedSendTimeIgnored(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	next := NextTrigger(now, model.PatternDaily, RecurrenceParams{SendTime: "25:99"})

	assert.Equal(t, now.AddDate(0, 0, 1), next)
}

func TestNextTriggerAlwaysAfterNow(t *testing.T) {
	patterns := []model.RecurrencePattern{
		model.PatternDaily,
		model.PatternWeekly,
		model.PatternMonthly,
		model.RecurrencePattern("bogus"),
	}
	times := []string{"", "00:00", "12:00", "23:59"}
	now := time.Date(2025, 6, 30, 23, 59, 0, 0, time.UTC)

	for _, pattern := range patterns {
		for _, st := range times {
			next := NextTrigger(now, pattern, RecurrenceParams{SendTime: st, SendDayOfMonth: 14})
			assert.True(t, next.After(now), "pattern=%s send_time=%q next=%s", pattern, st, next)
		}
	}
}

func TestInitialTriggerDailyTodayIfStillAhead(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	first := InitialTrigger(now, model.PatternDaily, RecurrenceParams{SendTime: "18:00"})

	assert.Equal(t, time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC), first)
}

func TestInitialTriggerDailyTomorrowIfPassed(t *testing.T) {
	now := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)

	first := InitialTrigger(now, model.PatternDaily, RecurrenceParams{SendTime: "18:00"})

	assert.Equal(t, time.Date(2025, 3, 11, 18, 0, 0, 0, time.UTC), first)
}

func TestInitialTriggerWeeklyNextMatchingDay(t *testing.T) {
	// A Monday; first Friday trigger is four days out.
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	first := InitialTrigger(now, model.PatternWeekly, RecurrenceParams{SendDay: "friday", SendTime: "09:00"})

	assert.Equal(t, time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Friday, first.Weekday())
}

func TestInitialTriggerWeeklySameDayAlreadyPassed(t *testing.T) {
	// A Monday after the send time; next Monday, not today.
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	first := InitialTrigger(now, model.PatternWeekly, RecurrenceParams{SendDay: "monday", SendTime: "09:00"})

	assert.Equal(t, time.Date(2025, 3, 17, 9, 0, 0, 0, time.UTC), first)
}

func TestInitialTriggerMonthly(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	first := InitialTrigger(now, model.PatternMonthly, RecurrenceParams{SendDayOfMonth: 15, SendTime: "08:00"})

	assert.Equal(t, time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC), first)
}

func TestInitialTriggerMonthlyDayAlreadyPassed(t *testing.T) {
	now := time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC)

	first := InitialTrigger(now, model.PatternMonthly, RecurrenceParams{SendDayOfMonth: 15, SendTime: "08:00"})

	assert.Equal(t, time.Date(2025, 4, 15, 8, 0, 0, 0, time.UTC), first)
}

func TestKnownPattern(t *testing.T) {
	assert.True(t, KnownPattern(model.PatternDaily))
	assert.True(t, KnownPattern(model.PatternWeekly))
	assert.True(t, KnownPattern(model.PatternMonthly))
	assert.False(t, KnownPattern(model.RecurrencePattern("hourly")))
	assert.False(t, KnownPattern(model.RecurrencePattern("")))
}

func TestParamsFor(t *testing.T) {
	st := "09:30"
	sd := "tuesday"
	dom := 14
	s := &model.Schedule{SendTime: &st, SendDay: &sd, SendDayOfMonth: &dom}

	p := ParamsFor(s)

	assert.Equal(t, "09:30", p.SendTime)
	assert.Equal(t, "tuesday", p.SendDay)
	assert.Equal(t, 14, p.SendDayOfMonth)

	assert.Equal(t, RecurrenceParams{}, ParamsFor(&model.Schedule{}))
}
