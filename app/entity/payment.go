package entity

import "time"

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

const (
	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodDebitCard    = "debit_card"
	PaymentMethodPix          = "pix"
	PaymentMethodBankTransfer = "bank_transfer"
)

type Payment struct {
	ID             uint64
	MemberID       uint64
	SubscriptionID *uint64
	AmountCents    int64
	Method         string
	Status         string
	TransactionID  string
	ProcessedAt    *time.Time
	CreatedAt      time.Time
}
