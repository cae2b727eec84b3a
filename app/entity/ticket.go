package entity

import "time"

type Ticket struct {
	ID          uint64
	OwnerID     uint64
	EventoID    uint64
	Seat        string
	Code        string
	PurchasedAt time.Time
	Used        bool
	UsedAt      *time.Time
}
