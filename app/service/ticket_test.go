package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-memberships/app/entity"
	"github.com/vibast-solutions/ms-go-memberships/app/repository"
)

func newTicketService(tickets *mockTicketRepo, evento *entity.Evento, active *entity.Subscription) *TicketService {
	return NewTicketService(
		tickets,
		&mockEventoRepo{findByIDFn: func(context.Context, uint64) (*entity.Evento, error) { return evento, nil }},
		&mockSubscriptionRepo{findActiveByMemberFn: func(context.Context, uint64) (*entity.Subscription, error) { return active, nil }},
		&mockMemberRepo{},
		fakeCodes{ticket: "abc123"},
		nil,
	)
}

func TestPurchaseRequiresMembership(t *testing.T) {
	evento := &entity.Evento{ID: 5, RequiresMembership: true}
	svc := newTicketService(&mockTicketRepo{}, evento, nil)

	if _, err := svc.Purchase(context.Background(), 7, 5, "", t0); !errors.Is(err, ErrEligibility) {
		t.Fatalf("expected ErrEligibility, got %v", err)
	}
}

func TestPurchaseAllowedPlans(t *testing.T) {
	evento := &entity.Evento{ID: 5, RequiresMembership: true, AllowedPlanIDs: []uint64{3}}
	bronze := activeSubscription(1)
	bronze.PlanID = 1

	svc := newTicketService(&mockTicketRepo{}, evento, bronze)
	if _, err := svc.Purchase(context.Background(), 7, 5, "", t0); !errors.Is(err, ErrEligibility) {
		t.Fatalf("expected ErrEligibility for plan outside allow-list, got %v", err)
	}

	ouro := activeSubscription(1)
	ouro.PlanID = 3
	svc = newTicketService(&mockTicketRepo{}, evento, ouro)
	if _, err := svc.Purchase(context.Background(), 7, 5, "", t0); err != nil {
		t.Fatalf("expected purchase to succeed, got %v", err)
	}
}

func TestPurchaseOpenEventWithoutMembership(t *testing.T) {
	evento := &entity.Evento{ID: 5, RequiresMembership: false}
	var stored *entity.Ticket
	svc := newTicketService(&mockTicketRepo{purchaseFn: func(_ context.Context, ticket *entity.Ticket) error {
		ticket.ID = 9
		stored = ticket
		return nil
	}}, evento, nil)

	ticket, err := svc.Purchase(context.Background(), 7, 5, " A12 ", t0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stored == nil || ticket.ID != 9 {
		t.Fatalf("expected stored ticket, got %+v", ticket)
	}
	if ticket.Code != "abc123" || ticket.Seat != "A12" || ticket.Used || !ticket.PurchasedAt.Equal(t0) {
		t.Fatalf("unexpected ticket: %+v", ticket)
	}
}

func TestPurchaseMapsStoreErrors(t *testing.T) {
	evento := &entity.Evento{ID: 5}
	cases := []struct {
		repoErr error
		want    error
	}{
		{repository.ErrDuplicate, ErrConflict},
		{repository.ErrEventFull, ErrCapacity},
		{repository.ErrNotFound, ErrNotFound},
		{errors.New("io timeout"), ErrStoreUnavailable},
	}
	for _, tc := range cases {
		svc := newTicketService(&mockTicketRepo{purchaseFn: func(context.Context, *entity.Ticket) error {
			return tc.repoErr
		}}, evento, nil)
		if _, err := svc.Purchase(context.Background(), 7, 5, "", t0); !errors.Is(err, tc.want) {
			t.Fatalf("repo error %v: expected %v, got %v", tc.repoErr, tc.want, err)
		}
	}
}

func TestPurchaseUnknownEvento(t *testing.T) {
	svc := newTicketService(&mockTicketRepo{}, nil, nil)
	if _, err := svc.Purchase(context.Background(), 7, 5, "", t0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestValidateTicketOnce(t *testing.T) {
	used := false
	svc := newTicketService(&mockTicketRepo{
		markUsedFn: func(context.Context, uint64, time.Time) (bool, error) {
			if used {
				return false, nil
			}
			used = true
			return true, nil
		},
		findByIDFn: func(_ context.Context, id uint64) (*entity.Ticket, error) {
			return &entity.Ticket{ID: id, Used: used}, nil
		},
	}, nil, nil)

	ok, err := svc.ValidateTicket(context.Background(), 1, t0)
	if err != nil || !ok {
		t.Fatalf("expected first validation to succeed, ok=%v err=%v", ok, err)
	}
	ok, err = svc.ValidateTicket(context.Background(), 1, t0.Add(time.Minute))
	if err != nil || ok {
		t.Fatalf("expected second validation to return false, ok=%v err=%v", ok, err)
	}
}

func TestValidateTicketMissing(t *testing.T) {
	svc := newTicketService(&mockTicketRepo{
		markUsedFn: func(context.Context, uint64, time.Time) (bool, error) { return false, nil },
	}, nil, nil)

	if _, err := svc.ValidateTicket(context.Background(), 1, t0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestValidateTicketCode(t *testing.T) {
	svc := newTicketService(&mockTicketRepo{
		findByCodeFn: func(_ context.Context, code string) (*entity.Ticket, error) {
			if code != "abc" {
				return nil, nil
			}
			return &entity.Ticket{ID: 4, Code: code}, nil
		},
		findByIDFn: func(_ context.Context, id uint64) (*entity.Ticket, error) {
			return &entity.Ticket{ID: id, Code: "abc", Used: true}, nil
		},
	}, nil, nil)

	ticket, ok, err := svc.ValidateTicketCode(context.Background(), " abc ", t0)
	if err != nil || !ok || !ticket.Used {
		t.Fatalf("unexpected result ticket=%+v ok=%v err=%v", ticket, ok, err)
	}
	if _, _, err := svc.ValidateTicketCode(context.Background(), "zzz", t0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := svc.ValidateTicketCode(context.Background(), "  ", t0); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
