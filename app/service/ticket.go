package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-memberships/app/entity"
	"github.com/vibast-solutions/ms-go-memberships/app/factory"
	"github.com/vibast-solutions/ms-go-memberships/app/repository"
	"github.com/vibast-solutions/ms-go-memberships/app/token"
	"go.opentelemetry.io/otel/attribute"
)

type ticketRepository interface {
	Purchase(ctx context.Context, ticket *entity.Ticket) error
	MarkUsed(ctx context.Context, id uint64, usedAt time.Time) (bool, error)
	FindByID(ctx context.Context, id uint64) (*entity.Ticket, error)
	FindByCode(ctx context.Context, code string) (*entity.Ticket, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]*entity.Ticket, error)
}

type eventoLookup interface {
	FindByID(ctx context.Context, id uint64) (*entity.Evento, error)
}

type activeSubscriptionFinder interface {
	FindActiveByMember(ctx context.Context, memberID uint64) (*entity.Subscription, error)
}

type TicketService struct {
	ticketRepo       ticketRepository
	eventoRepo       eventoLookup
	subscriptionRepo activeSubscriptionFinder
	memberRepo       memberLookup
	codes            token.Generator
	recorder         Recorder
	logger           logrus.FieldLogger
}

func NewTicketService(
	ticketRepo ticketRepository,
	eventoRepo eventoLookup,
	subscriptionRepo activeSubscriptionFinder,
	memberRepo memberLookup,
	codes token.Generator,
	recorder Recorder,
) *TicketService {
	return &TicketService{
		ticketRepo:       ticketRepo,
		eventoRepo:       eventoRepo,
		subscriptionRepo: subscriptionRepo,
		memberRepo:       memberRepo,
		codes:            codes,
		recorder:         recorderOrNop(recorder),
		logger:           factory.NewModuleLogger("ticket-office"),
	}
}

// Purchase issues a ticket for the member. Uniqueness per (member, event)
// and the attendee cap are enforced by the store inside one transaction.
func (s *TicketService) Purchase(ctx context.Context, memberID, eventoID uint64, seat string, now time.Time) (_ *entity.Ticket, err error) {
	ctx, done := startOperation(ctx, s.recorder, "ticket.purchase",
		attribute.Int64("member_id", int64(memberID)), attribute.Int64("evento_id", int64(eventoID)))
	defer done(&err)

	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, storeError(err)
	}
	if member == nil {
		return nil, fmt.Errorf("%w: member %d", ErrNotFound, memberID)
	}

	evento, err := s.eventoRepo.FindByID(ctx, eventoID)
	if err != nil {
		return nil, storeError(err)
	}
	if evento == nil {
		return nil, fmt.Errorf("%w: evento %d", ErrNotFound, eventoID)
	}

	active, err := s.subscriptionRepo.FindActiveByMember(ctx, memberID)
	if err != nil {
		return nil, storeError(err)
	}
	if err := CheckEventoAccess(evento, active); err != nil {
		return nil, err
	}

	code, err := s.codes.TicketCode()
	if err != nil {
		return nil, err
	}

	ticket := &entity.Ticket{
		OwnerID:     memberID,
		EventoID:    eventoID,
		Seat:        strings.TrimSpace(seat),
		Code:        code,
		PurchasedAt: now.UTC(),
	}
	if err := s.ticketRepo.Purchase(ctx, ticket); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("%w: member already holds a ticket for this event", ErrConflict)
		case errors.Is(err, repository.ErrEventFull):
			return nil, fmt.Errorf("%w: event is sold out", ErrCapacity)
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("%w: evento %d", ErrNotFound, eventoID)
		default:
			s.logger.WithError(err).Error("Ticket purchase failed")
			return nil, storeError(err)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"ticket_id": ticket.ID,
		"member_id": memberID,
		"evento_id": eventoID,
	}).Info("Ticket purchased")
	return ticket, nil
}

// ValidateTicket marks the ticket used. It returns true exactly once per
// ticket and false on every later call.
func (s *TicketService) ValidateTicket(ctx context.Context, ticketID uint64, now time.Time) (_ bool, err error) {
	ctx, done := startOperation(ctx, s.recorder, "ticket.validate", attribute.Int64("ticket_id", int64(ticketID)))
	defer done(&err)

	changed, err := s.ticketRepo.MarkUsed(ctx, ticketID, now.UTC())
	if err != nil {
		s.logger.WithError(err).WithField("ticket_id", ticketID).Error("Ticket validation failed")
		return false, storeError(err)
	}
	if changed {
		s.logger.WithField("ticket_id", ticketID).Info("Ticket validated")
		return true, nil
	}

	if _, err := s.GetTicket(ctx, ticketID); err != nil {
		return false, err
	}
	return false, nil
}

// ValidateTicketCode resolves the ticket by its code and validates it.
func (s *TicketService) ValidateTicketCode(ctx context.Context, code string, now time.Time) (*entity.Ticket, bool, error) {
	ticket, err := s.FindByCode(ctx, code)
	if err != nil {
		return nil, false, err
	}
	ok, err := s.ValidateTicket(ctx, ticket.ID, now)
	if err != nil {
		return nil, false, err
	}
	ticket, err = s.GetTicket(ctx, ticket.ID)
	if err != nil {
		return nil, false, err
	}
	return ticket, ok, nil
}

func (s *TicketService) GetTicket(ctx context.Context, id uint64) (*entity.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if ticket == nil {
		return nil, fmt.Errorf("%w: ticket %d", ErrNotFound, id)
	}
	return ticket, nil
}

func (s *TicketService) FindByCode(ctx context.Context, code string) (*entity.Ticket, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidRequest)
	}
	ticket, err := s.ticketRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, storeError(err)
	}
	if ticket == nil {
		return nil, fmt.Errorf("%w: ticket", ErrNotFound)
	}
	return ticket, nil
}

func (s *TicketService) ListTickets(ctx context.Context, memberID uint64) ([]*entity.Ticket, error) {
	items, err := s.ticketRepo.ListByOwner(ctx, memberID)
	if err != nil {
		return nil, storeError(err)
	}
	return items, nil
}
