package model

import (
	"time"

	"github.com/google/uuid"
)

type DispatchStatus string

const (
	DispatchStatusSuccess DispatchStatus = "success"
	DispatchStatusFailed  DispatchStatus = "failed"
)

// DispatchResult is one row of the run log: the outcome of a single dispatch
// attempt for a (schedule, trigger) pair. Append-only, never mutated.
type DispatchResult struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	ScheduleID   uuid.UUID      `json:"schedule_id" db:"schedule_id"`
	Status       DispatchStatus `json:"status" db:"status"`
	VoucherID    *uuid.UUID     `json:"voucher_id,omitempty" db:"voucher_id"`
	ErrorMessage *string        `json:"error_message,omitempty" db:"error_message"`
	TriggeredAt  time.Time      `json:"triggered_at" db:"triggered_at"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

// CycleSummary is returned by one dispatcher invocation.
type CycleSummary struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}
