package model

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionTier string

const (
	TierTrial   SubscriptionTier = "trial"
	TierBasic   SubscriptionTier = "basic"
	TierPremium SubscriptionTier = "premium"
)

type BusinessStatus string

const (
	BusinessStatusPending   BusinessStatus = "pending"
	BusinessStatusApproved  BusinessStatus = "approved"
	BusinessStatusSuspended BusinessStatus = "suspended"
)

// Business is a venue listed in the directory. Scheduled voucher campaigns and
// analytics reports are gated on its subscription tier and approval status.
type Business struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	OwnerID   uuid.UUID        `json:"owner_id" db:"owner_id"`
	Name      string           `json:"name" db:"name"`
	Email     string           `json:"email" db:"email"`
	Category  string           `json:"category" db:"category"`
	City      string           `json:"city" db:"city"`
	Country   string           `json:"country" db:"country"`
	Tier      SubscriptionTier `json:"tier" db:"tier"`
	Status    BusinessStatus   `json:"status" db:"status"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" db:"updated_at"`
}

// IsEligible reports whether the business may receive scheduled dispatches.
// Evaluated fresh at every dispatch cycle, never cached.
func (b *Business) IsEligible() bool {
	return b.Tier == TierPremium && b.Status == BusinessStatusApproved
}
