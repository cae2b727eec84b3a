package entity

import "time"

type Evento struct {
	ID                 uint64
	Title              string
	Description        string
	Location           string
	Speaker            string
	EventType          string
	EventDate          time.Time
	MaxAttendees       *int32
	TicketsSold        int32
	RequiresMembership bool
	AllowedPlanIDs     []uint64
	CreatedAt          time.Time
}

// IsFull reports whether the attendee cap, if any, has been reached.
func (e *Evento) IsFull() bool {
	return e.MaxAttendees != nil && e.TicketsSold >= *e.MaxAttendees
}

// AllowsPlan reports whether holders of planID may attend. An empty allow-list
// admits every plan.
func (e *Evento) AllowsPlan(planID uint64) bool {
	if len(e.AllowedPlanIDs) == 0 {
		return true
	}
	for _, id := range e.AllowedPlanIDs {
		if id == planID {
			return true
		}
	}
	return false
}
