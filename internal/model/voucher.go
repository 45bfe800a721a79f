package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Voucher struct {
	ID            uuid.UUID    `json:"id" db:"id"`
	BusinessID    uuid.UUID    `json:"business_id" db:"business_id"`
	ScheduleID    *uuid.UUID   `json:"schedule_id,omitempty" db:"schedule_id"`
	Title         string       `json:"title" db:"title"`
	Description   string       `json:"description" db:"description"`
	DiscountType  DiscountType `json:"discount_type" db:"discount_type"`
	DiscountValue float64      `json:"discount_value" db:"discount_value"`
	StartsAt      time.Time    `json:"starts_at" db:"starts_at"`
	ExpiresAt     time.Time    `json:"expires_at" db:"expires_at"`
	IsActive      bool         `json:"is_active" db:"is_active"`
	Redemptions   int          `json:"redemptions" db:"redemptions"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}

// Discount renders the discount as display text, e.g. "20% off" or "$5 off".
func (v *Voucher) Discount() string {
	value := strconv.FormatFloat(v.DiscountValue, 'f', -1, 64)
	if v.DiscountType == DiscountPercentage {
		return value + "% off"
	}
	return "$" + value + " off"
}
