package entity

import "time"

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusInactive  = "inactive"
	SubscriptionStatusSuspended = "suspended"
	SubscriptionStatusCancelled = "cancelled"
)

// BillingPeriod is the fixed interval between two billing dates.
const BillingPeriod = 30 * 24 * time.Hour

type Subscription struct {
	ID          uint64
	MemberID    uint64
	PlanID      uint64
	Status      string
	StartedAt   time.Time
	NextBilling time.Time
	AutoRenew   bool
	EndedAt     *time.Time
	UpdatedAt   time.Time
}

func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive
}
