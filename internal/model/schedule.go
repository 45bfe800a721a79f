package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ScheduleKind string

const (
	ScheduleKindVoucher ScheduleKind = "voucher"
	ScheduleKindReport  ScheduleKind = "report"
)

type RecurrencePattern string

const (
	PatternDaily   RecurrencePattern = "daily"
	PatternWeekly  RecurrencePattern = "weekly"
	PatternMonthly RecurrencePattern = "monthly"
)

// Schedule is a persisted recurrence definition driving periodic creation of a
// voucher or sending of an analytics report. NextTriggerAt advances after every
// dispatch attempt, success or failure, so a failing schedule never retries in a
// tight loop. Schedules are deactivated, never deleted.
type Schedule struct {
	ID              uuid.UUID         `json:"id" db:"id"`
	BusinessID      uuid.UUID         `json:"business_id" db:"business_id"`
	Kind            ScheduleKind      `json:"kind" db:"kind"`
	Pattern         RecurrencePattern `json:"pattern" db:"pattern"`
	SendTime        *string           `json:"send_time,omitempty" db:"send_time"`
	SendDay         *string           `json:"send_day,omitempty" db:"send_day"`
	SendDayOfMonth  *int              `json:"send_day_of_month,omitempty" db:"send_day_of_month"`
	Template        json.RawMessage   `json:"template" db:"template"`
	IsActive        bool              `json:"is_active" db:"is_active"`
	LastTriggeredAt *time.Time        `json:"last_triggered_at,omitempty" db:"last_triggered_at"`
	NextTriggerAt   time.Time         `json:"next_trigger_at" db:"next_trigger_at"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`
}

// VoucherTemplate is the payload of a voucher schedule.
type VoucherTemplate struct {
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue float64      `json:"discount_value"`
	DurationDays  int          `json:"duration_days"`
}

// ReportTemplate is the payload of a report schedule. Subject and Body may
// contain {variable} placeholders substituted at dispatch time.
type ReportTemplate struct {
	RecipientEmail string `json:"recipient_email"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
}

// ReportEmail is a rendered analytics report ready for delivery.
type ReportEmail struct {
	To      string
	Subject string
	Body    string
}
