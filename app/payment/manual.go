package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ManualGateway confirms every charge and issues a local transaction id.
// Used where settlement happens outside this service.
type ManualGateway struct{}

func NewManualGateway() *ManualGateway {
	return &ManualGateway{}
}

func (g *ManualGateway) Settle(_ context.Context, charge Charge) Result {
	if charge.AmountCents < 0 {
		return Result{Type: ResultTypeFailure, Error: "negative amount"}
	}
	return Result{
		Type:          ResultTypeSuccess,
		TransactionID: fmt.Sprintf("manual-%s", uuid.NewString()),
	}
}
