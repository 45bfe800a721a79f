package scheduler

import (
	"strings"
	"time"

	"github.com/Ferrari4891/selecttravel-api/internal/model"
)

// RecurrenceParams carries the pattern parameters of a schedule.
type RecurrenceParams struct {
	SendTime       string // "15:04", optional
	SendDay        string // weekday name, weekly schedules only
	SendDayOfMonth int    // 1-28, monthly schedules only; 0 means unset
}

// ParamsFor extracts recurrence parameters from a schedule row.
func ParamsFor(s *model.Schedule) RecurrenceParams {
	p := RecurrenceParams{}
	if s.SendTime != nil {
		p.SendTime = *s.SendTime
	}
	if s.SendDay != nil {
		p.SendDay = *s.SendDay
	}
	if s.SendDayOfMonth != nil {
		p.SendDayOfMonth = *s.SendDayOfMonth
	}
	return p
}

// KnownPattern reports whether pattern is one the calculator handles natively.
func KnownPattern(pattern model.RecurrencePattern) bool {
	switch pattern {
	case model.PatternDaily, model.PatternWeekly, model.PatternMonthly:
		return true
	}
	return false
}

// NextTrigger computes the next trigger instant after a dispatch at now. Pure:
// the dispatch time is always passed in, never read from the clock here.
//
// The period is added first and the time-of-day overwritten second. Reversing
// that order would let a send time later in the day produce a trigger before
// now. Unknown patterns fall back to adding one day so a schedule never gets
// stuck; callers log a warning when that happens.
func NextTrigger(now time.Time, pattern model.RecurrencePattern, params RecurrenceParams) time.Time {
	var next time.Time

	switch pattern {
	case model.PatternDaily:
		next = now.AddDate(0, 0, 1)
	case model.PatternWeekly:
		next = now.AddDate(0, 0, 7)
	case model.PatternMonthly:
		if params.SendDayOfMonth >= 1 && params.SendDayOfMonth <= 28 {
			// Day-of-month is capped at 28, so the constructed date never
			// normalizes into a second month hop.
			next = time.Date(now.Year(), now.Month()+1, params.SendDayOfMonth,
				now.Hour(), now.Minute(), 0, 0, now.Location())
		} else {
			next = now.AddDate(0, 1, 0)
		}
	default:
		next = now.AddDate(0, 0, 1)
	}

	return applySendTime(next, params.SendTime)
}

// InitialTrigger computes the first trigger for a newly created or reconfigured
// schedule: the earliest instant strictly after now that matches the pattern
// parameters.
func InitialTrigger(now time.Time, pattern model.RecurrencePattern, params RecurrenceParams) time.Time {
	switch pattern {
	case model.PatternDaily:
		next := applySendTime(now, params.SendTime)
		if !next.After(now) {
			next = applySendTime(now.AddDate(0, 0, 1), params.SendTime)
		}
		return next

	case model.PatternWeekly:
		day, ok := parseWeekday(params.SendDay)
		if !ok {
			return NextTrigger(now, pattern, params)
		}
		next := applySendTime(now, params.SendTime)
		offset := (int(day) - int(now.Weekday()) + 7) % 7
		next = next.AddDate(0, 0, offset)
		if !next.After(now) {
			next = next.AddDate(0, 0, 7)
		}
		return next

	case model.PatternMonthly:
		if params.SendDayOfMonth < 1 || params.SendDayOfMonth > 28 {
			return NextTrigger(now, pattern, params)
		}
		next := time.Date(now.Year(), now.Month(), params.SendDayOfMonth,
			now.Hour(), now.Minute(), 0, 0, now.Location())
		next = applySendTime(next, params.SendTime)
		if !next.After(now) {
			next = time.Date(now.Year(), now.Month()+1, params.SendDayOfMonth,
				next.Hour(), next.Minute(), 0, 0, now.Location())
		}
		return next

	default:
		return now.AddDate(0, 0, 1)
	}
}

// applySendTime overwrites the clock fields of t with a "15:04" send time,
// keeping the date. Malformed or empty send times leave t unchanged.
func applySendTime(t time.Time, sendTime string) time.Time {
	if sendTime == "" {
		return t
	}
	parsed, err := time.Parse("15:04", sendTime)
	if err != nil {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), parsed.Hour(), parsed.Minute(), 0, 0, t.Location())
}

func parseWeekday(name string) (time.Weekday, bool) {
	switch strings.ToLower(name) {
	case "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	case "tuesday":
		return time.Tuesday, true
	case "wednesday":
		return time.Wednesday, true
	case "thursday":
		return time.Thursday, true
	case "friday":
		return time.Friday, true
	case "saturday":
		return time.Saturday, true
	}
	return time.Sunday, false
}
