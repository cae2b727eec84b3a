package payment

import "context"

type ResultType string

const (
	ResultTypeSuccess ResultType = "success"
	ResultTypeFailure ResultType = "failure"
)

type Charge struct {
	PaymentID   uint64
	MemberID    uint64
	AmountCents int64
	Method      string
}

type Result struct {
	Type          ResultType
	TransactionID string
	Error         string
}

// Gateway settles a pending charge.
type Gateway interface {
	Settle(ctx context.Context, charge Charge) Result
}
