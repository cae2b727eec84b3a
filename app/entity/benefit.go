package entity

import "time"

type Benefit struct {
	ID                 uint64
	Title              string
	Description        string
	Provider           string
	DiscountCode       string
	DiscountPercentage int32
	RedeemURL          string
	PlanIDs            []uint64
	AvailableQuantity  *int32
	UsedQuantity       int32
	ValidFrom          time.Time
	ValidUntil         time.Time
	Active             bool
	CreatedAt          time.Time
}

// WithinWindow reports whether now falls inside [ValidFrom, ValidUntil].
func (b *Benefit) WithinWindow(now time.Time) bool {
	return !now.Before(b.ValidFrom) && !now.After(b.ValidUntil)
}

// HasQuota reports whether another redemption fits under the available
// quantity. A nil quantity means unlimited.
func (b *Benefit) HasQuota() bool {
	return b.AvailableQuantity == nil || b.UsedQuantity < *b.AvailableQuantity
}

// Remaining is advisory only; the authoritative check happens inside the
// redemption transaction.
func (b *Benefit) Remaining() *int32 {
	if b.AvailableQuantity == nil {
		return nil
	}
	left := *b.AvailableQuantity - b.UsedQuantity
	if left < 0 {
		left = 0
	}
	return &left
}

// EligiblePlan reports whether holders of planID may redeem. An empty plan set
// makes the benefit open to every member.
func (b *Benefit) EligiblePlan(planID uint64) bool {
	if len(b.PlanIDs) == 0 {
		return true
	}
	for _, id := range b.PlanIDs {
		if id == planID {
			return true
		}
	}
	return false
}

type BenefitRedemption struct {
	ID         uint64
	MemberID   uint64
	BenefitID  uint64
	Code       string
	RedeemedAt time.Time
	Used       bool
	UsedAt     *time.Time
}
