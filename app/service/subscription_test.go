package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-memberships/app/entity"
	"github.com/vibast-solutions/ms-go-memberships/app/repository"
	"github.com/vibast-solutions/ms-go-memberships/config"
)

var t0 = time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

func testMembershipConfig() config.MembershipConfig {
	return config.MembershipConfig{BillingPeriodDays: 30, RenewalBatchSize: 100}
}

func newLedger(subs *mockSubscriptionRepo, plans *mockPlanRepo, members *mockMemberRepo, rec Recorder) *SubscriptionService {
	if plans == nil {
		plans = &mockPlanRepo{}
	}
	if members == nil {
		members = &mockMemberRepo{}
	}
	return NewSubscriptionService(subs, plans, members, testMembershipConfig(), rec)
}

func activeSubscription(id uint64) *entity.Subscription {
	return &entity.Subscription{
		ID:          id,
		MemberID:    7,
		PlanID:      1,
		Status:      entity.SubscriptionStatusActive,
		StartedAt:   t0,
		NextBilling: t0.Add(entity.BillingPeriod),
		AutoRenew:   true,
		UpdatedAt:   t0,
	}
}

func TestSubscribeCreatesActiveSubscription(t *testing.T) {
	var created *entity.Subscription
	rec := &fakeRecorder{}
	svc := newLedger(&mockSubscriptionRepo{createFn: func(_ context.Context, s *entity.Subscription) error {
		s.ID = 11
		created = s
		return nil
	}}, nil, nil, rec)

	sub, err := svc.Subscribe(context.Background(), 7, 1, t0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sub.ID != 11 || created == nil {
		t.Fatalf("expected subscription to be stored, got %+v", sub)
	}
	if sub.Status != entity.SubscriptionStatusActive || !sub.AutoRenew {
		t.Fatalf("unexpected status or auto renew: %+v", sub)
	}
	if !sub.NextBilling.Equal(t0.Add(30 * 24 * time.Hour)) {
		t.Fatalf("expected next billing at now+30d, got %v", sub.NextBilling)
	}
	if !sub.StartedAt.Equal(t0) || sub.EndedAt != nil {
		t.Fatalf("unexpected timestamps: %+v", sub)
	}
	if len(rec.ops) != 1 || rec.ops[0].operation != "subscription.subscribe" || rec.ops[0].outcome != "ok" {
		t.Fatalf("unexpected recorded operations: %+v", rec.ops)
	}
}

func TestSubscribeConflictWhenActiveExists(t *testing.T) {
	svc := newLedger(&mockSubscriptionRepo{createFn: func(_ context.Context, _ *entity.Subscription) error {
		return repository.ErrDuplicate
	}}, nil, nil, nil)

	_, err := svc.Subscribe(context.Background(), 7, 1, t0)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestSubscribeUnknownMemberOrPlan(t *testing.T) {
	svc := newLedger(&mockSubscriptionRepo{}, nil, &mockMemberRepo{findByIDFn: func(context.Context, uint64) (*entity.Member, error) {
		return nil, nil
	}}, nil)
	if _, err := svc.Subscribe(context.Background(), 7, 1, t0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for member, got %v", err)
	}

	svc = newLedger(&mockSubscriptionRepo{}, &mockPlanRepo{findByIDFn: func(_ context.Context, id uint64) (*entity.Plan, error) {
		return &entity.Plan{ID: id, Active: false}, nil
	}}, nil, nil)
	if _, err := svc.Subscribe(context.Background(), 7, 1, t0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for inactive plan, got %v", err)
	}
}

func TestSubscribeStoreFailure(t *testing.T) {
	boom := errors.New("connection refused")
	svc := newLedger(&mockSubscriptionRepo{createFn: func(context.Context, *entity.Subscription) error {
		return boom
	}}, nil, nil, nil)

	_, err := svc.Subscribe(context.Background(), 7, 1, t0)
	if !errors.Is(err, ErrStoreUnavailable) || !errors.Is(err, boom) {
		t.Fatalf("expected store unavailable wrapping cause, got %v", err)
	}
}

func TestRenewAdvancesFromNow(t *testing.T) {
	current := activeSubscription(3)
	var gotNext time.Time
	svc := newLedger(&mockSubscriptionRepo{
		findByIDFn: func(context.Context, uint64) (*entity.Subscription, error) {
			snapshot := *current
			return &snapshot, nil
		},
		renewFn: func(_ context.Context, _ uint64, next, _ time.Time) (bool, error) {
			gotNext = next
			current.NextBilling = next
			return true, nil
		},
	}, nil, nil, nil)

	now := t0.Add(45 * 24 * time.Hour)
	sub, err := svc.Renew(context.Background(), 3, now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !gotNext.Equal(now.Add(30 * 24 * time.Hour)) {
		t.Fatalf("expected next billing now+30d, got %v", gotNext)
	}
	if !sub.NextBilling.Equal(gotNext) {
		t.Fatalf("expected reloaded subscription, got %+v", sub)
	}
}

func TestRenewNoOpWhenNotRenewable(t *testing.T) {
	cases := map[string]*entity.Subscription{
		"cancelled": func() *entity.Subscription {
			s := activeSubscription(1)
			s.Status = entity.SubscriptionStatusCancelled
			return s
		}(),
		"no auto renew": func() *entity.Subscription { s := activeSubscription(1); s.AutoRenew = false; return s }(),
		"suspended": func() *entity.Subscription {
			s := activeSubscription(1)
			s.Status = entity.SubscriptionStatusSuspended
			return s
		}(),
	}
	for name, sub := range cases {
		t.Run(name, func(t *testing.T) {
			renewCalled := false
			svc := newLedger(&mockSubscriptionRepo{
				findByIDFn: func(context.Context, uint64) (*entity.Subscription, error) { return sub, nil },
				renewFn: func(context.Context, uint64, time.Time, time.Time) (bool, error) {
					renewCalled = true
					return true, nil
				},
			}, nil, nil, nil)

			got, err := svc.Renew(context.Background(), 1, t0.Add(time.Hour))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if renewCalled {
				t.Fatal("expected no store write")
			}
			if !got.NextBilling.Equal(sub.NextBilling) {
				t.Fatalf("expected unchanged next billing, got %v", got.NextBilling)
			}
		})
	}
}

func TestRenewNotFound(t *testing.T) {
	svc := newLedger(&mockSubscriptionRepo{}, nil, nil, nil)
	if _, err := svc.Renew(context.Background(), 99, t0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestChangePlanRequiresActive(t *testing.T) {
	cancelled := activeSubscription(1)
	cancelled.Status = entity.SubscriptionStatusCancelled
	svc := newLedger(&mockSubscriptionRepo{findByIDFn: func(context.Context, uint64) (*entity.Subscription, error) {
		return cancelled, nil
	}}, nil, nil, nil)

	if _, err := svc.ChangePlan(context.Background(), 1, 2, t0); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestChangePlanSwapsPlanOnly(t *testing.T) {
	current := activeSubscription(1)
	svc := newLedger(&mockSubscriptionRepo{
		findByIDFn: func(context.Context, uint64) (*entity.Subscription, error) {
			snapshot := *current
			return &snapshot, nil
		},
		changePlanFn: func(_ context.Context, _ uint64, planID uint64, _ time.Time) (bool, error) {
			current.PlanID = planID
			return true, nil
		},
	}, nil, nil, nil)

	sub, err := svc.ChangePlan(context.Background(), 1, 3, t0.Add(time.Hour))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sub.PlanID != 3 {
		t.Fatalf("expected plan 3, got %d", sub.PlanID)
	}
	if !sub.NextBilling.Equal(t0.Add(entity.BillingPeriod)) || !sub.StartedAt.Equal(t0) {
		t.Fatalf("expected billing dates untouched, got %+v", sub)
	}
}

func TestChangePlanLosesRaceWithCancel(t *testing.T) {
	svc := newLedger(&mockSubscriptionRepo{
		findByIDFn: func(context.Context, uint64) (*entity.Subscription, error) { return activeSubscription(1), nil },
		changePlanFn: func(context.Context, uint64, uint64, time.Time) (bool, error) {
			return false, nil
		},
	}, nil, nil, nil)

	if _, err := svc.ChangePlan(context.Background(), 1, 2, t0); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestChangePlanUnknownPlan(t *testing.T) {
	svc := newLedger(&mockSubscriptionRepo{
		findByIDFn: func(context.Context, uint64) (*entity.Subscription, error) { return activeSubscription(1), nil },
	}, &mockPlanRepo{findByIDFn: func(context.Context, uint64) (*entity.Plan, error) { return nil, nil }}, nil, nil)

	if _, err := svc.ChangePlan(context.Background(), 1, 42, t0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCancelSetsEndedAt(t *testing.T) {
	current := activeSubscription(1)
	svc := newLedger(&mockSubscriptionRepo{
		cancelFn: func(_ context.Context, _ uint64, endedAt time.Time) (bool, error) {
			current.Status = entity.SubscriptionStatusCancelled
			current.EndedAt = &endedAt
			return true, nil
		},
		findByIDFn: func(context.Context, uint64) (*entity.Subscription, error) { return current, nil },
	}, nil, nil, nil)

	end := t0.Add(5 * 24 * time.Hour)
	sub, err := svc.Cancel(context.Background(), 1, end)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sub.Status != entity.SubscriptionStatusCancelled || sub.EndedAt == nil || !sub.EndedAt.Equal(end) {
		t.Fatalf("unexpected cancelled subscription: %+v", sub)
	}
}

func TestCancelTwiceIsInvalidState(t *testing.T) {
	cancelled := activeSubscription(1)
	cancelled.Status = entity.SubscriptionStatusCancelled
	svc := newLedger(&mockSubscriptionRepo{
		cancelFn:   func(context.Context, uint64, time.Time) (bool, error) { return false, nil },
		findByIDFn: func(context.Context, uint64) (*entity.Subscription, error) { return cancelled, nil },
	}, nil, nil, nil)

	if _, err := svc.Cancel(context.Background(), 1, t0); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestCancelMissing(t *testing.T) {
	svc := newLedger(&mockSubscriptionRepo{
		cancelFn: func(context.Context, uint64, time.Time) (bool, error) { return false, nil },
	}, nil, nil, nil)

	if _, err := svc.Cancel(context.Background(), 1, t0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRunRenewalBatch(t *testing.T) {
	due := []*entity.Subscription{activeSubscription(1), activeSubscription(2), activeSubscription(3)}
	var gotLimit int
	renewed := map[uint64]time.Time{}
	svc := newLedger(&mockSubscriptionRepo{
		listDueRenewalFn: func(_ context.Context, _ time.Time, limit int) ([]*entity.Subscription, error) {
			gotLimit = limit
			return due, nil
		},
		renewFn: func(_ context.Context, id uint64, next, _ time.Time) (bool, error) {
			if id == 2 {
				return false, errors.New("deadlock")
			}
			if id == 3 {
				return false, nil
			}
			renewed[id] = next
			return true, nil
		},
	}, nil, nil, nil)

	now := t0.Add(31 * 24 * time.Hour)
	count, err := svc.RunRenewalBatch(context.Background(), now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if count != 1 || len(renewed) != 1 {
		t.Fatalf("expected one renewal, got %d (%v)", count, renewed)
	}
	if !renewed[1].Equal(now.Add(entity.BillingPeriod)) {
		t.Fatalf("unexpected next billing %v", renewed[1])
	}
	if gotLimit != 100 {
		t.Fatalf("expected batch size to be forwarded, got %d", gotLimit)
	}
}

func TestRunRenewalBatchListFailure(t *testing.T) {
	svc := newLedger(&mockSubscriptionRepo{
		listDueRenewalFn: func(context.Context, time.Time, int) ([]*entity.Subscription, error) {
			return nil, errors.New("down")
		},
	}, nil, nil, nil)

	if _, err := svc.RunRenewalBatch(context.Background(), t0); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
