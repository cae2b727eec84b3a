package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

const ticketCodeBytes = 24

// Generator produces opaque codes for tickets and redemptions.
type Generator interface {
	TicketCode() (string, error)
	RedemptionCode() (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

// TicketCode returns 48 hex characters drawn from crypto/rand.
func (RandomGenerator) TicketCode() (string, error) {
	buf := make([]byte, ticketCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate ticket code: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// RedemptionCode returns a random UUID.
func (RandomGenerator) RedemptionCode() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate redemption code: %w", err)
	}
	return id.String(), nil
}
