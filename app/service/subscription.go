package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-memberships/app/entity"
	"github.com/vibast-solutions/ms-go-memberships/app/factory"
	"github.com/vibast-solutions/ms-go-memberships/app/repository"
	"github.com/vibast-solutions/ms-go-memberships/config"
	"go.opentelemetry.io/otel/attribute"
)

type subscriptionRepository interface {
	Create(ctx context.Context, subscription *entity.Subscription) error
	FindByID(ctx context.Context, id uint64) (*entity.Subscription, error)
	FindActiveByMember(ctx context.Context, memberID uint64) (*entity.Subscription, error)
	ListByMember(ctx context.Context, memberID uint64) ([]*entity.Subscription, error)
	ListDueRenewal(ctx context.Context, now time.Time, limit int) ([]*entity.Subscription, error)
	Renew(ctx context.Context, id uint64, nextBilling, updatedAt time.Time) (bool, error)
	ChangePlan(ctx context.Context, id, planID uint64, updatedAt time.Time) (bool, error)
	Cancel(ctx context.Context, id uint64, endedAt time.Time) (bool, error)
	CountActive(ctx context.Context) (int64, error)
}

type planRepository interface {
	Create(ctx context.Context, plan *entity.Plan) error
	FindByID(ctx context.Context, id uint64) (*entity.Plan, error)
	ListActive(ctx context.Context) ([]*entity.Plan, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)
}

type memberLookup interface {
	FindByID(ctx context.Context, id uint64) (*entity.Member, error)
}

// SubscriptionService owns the subscription state machine.
type SubscriptionService struct {
	subscriptionRepo subscriptionRepository
	planRepo         planRepository
	memberRepo       memberLookup
	cfg              config.MembershipConfig
	recorder         Recorder
	logger           logrus.FieldLogger
}

func NewSubscriptionService(
	subscriptionRepo subscriptionRepository,
	planRepo planRepository,
	memberRepo memberLookup,
	cfg config.MembershipConfig,
	recorder Recorder,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		memberRepo:       memberRepo,
		cfg:              cfg,
		recorder:         recorderOrNop(recorder),
		logger:           factory.NewModuleLogger("subscription-ledger"),
	}
}

// Subscribe enrolls the member in plan. The store rejects a second active
// subscription for the same member, which surfaces as ErrConflict.
func (s *SubscriptionService) Subscribe(ctx context.Context, memberID, planID uint64, now time.Time) (_ *entity.Subscription, err error) {
	ctx, done := startOperation(ctx, s.recorder, "subscription.subscribe",
		attribute.Int64("member_id", int64(memberID)), attribute.Int64("plan_id", int64(planID)))
	defer done(&err)

	if err := s.requireMember(ctx, memberID); err != nil {
		return nil, err
	}
	if _, err := s.requireActivePlan(ctx, planID); err != nil {
		return nil, err
	}

	now = now.UTC()
	subscription := &entity.Subscription{
		MemberID:    memberID,
		PlanID:      planID,
		Status:      entity.SubscriptionStatusActive,
		StartedAt:   now,
		NextBilling: now.Add(s.cfg.BillingPeriod()),
		AutoRenew:   true,
		UpdatedAt:   now,
	}
	if err := s.subscriptionRepo.Create(ctx, subscription); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: member already has an active subscription", ErrConflict)
		}
		s.logger.WithError(err).Error("Create subscription failed")
		return nil, storeError(err)
	}

	s.logger.WithFields(logrus.Fields{
		"subscription_id": subscription.ID,
		"member_id":       memberID,
		"plan_id":         planID,
	}).Info("Subscription created")
	return subscription, nil
}

// Renew advances next_billing to now plus one billing period. Subscriptions
// that are not active or not auto-renewing are returned unchanged.
func (s *SubscriptionService) Renew(ctx context.Context, subscriptionID uint64, now time.Time) (_ *entity.Subscription, err error) {
	ctx, done := startOperation(ctx, s.recorder, "subscription.renew",
		attribute.Int64("subscription_id", int64(subscriptionID)))
	defer done(&err)

	subscription, err := s.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if !subscription.IsActive() || !subscription.AutoRenew {
		return subscription, nil
	}

	now = now.UTC()
	changed, err := s.subscriptionRepo.Renew(ctx, subscriptionID, now.Add(s.cfg.BillingPeriod()), now)
	if err != nil {
		s.logger.WithError(err).WithField("subscription_id", subscriptionID).Error("Renew subscription failed")
		return nil, storeError(err)
	}
	if changed {
		s.logger.WithField("subscription_id", subscriptionID).Debug("Subscription renewed")
	}
	return s.GetSubscription(ctx, subscriptionID)
}

// ChangePlan swaps the plan of an active subscription. Billing dates are
// left as they are.
func (s *SubscriptionService) ChangePlan(ctx context.Context, subscriptionID, planID uint64, now time.Time) (_ *entity.Subscription, err error) {
	ctx, done := startOperation(ctx, s.recorder, "subscription.change_plan",
		attribute.Int64("subscription_id", int64(subscriptionID)), attribute.Int64("plan_id", int64(planID)))
	defer done(&err)

	subscription, err := s.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if !subscription.IsActive() {
		return nil, fmt.Errorf("%w: subscription is %s", ErrInvalidState, subscription.Status)
	}
	if _, err := s.requireActivePlan(ctx, planID); err != nil {
		return nil, err
	}

	changed, err := s.subscriptionRepo.ChangePlan(ctx, subscriptionID, planID, now.UTC())
	if err != nil {
		s.logger.WithError(err).WithField("subscription_id", subscriptionID).Error("Change plan failed")
		return nil, storeError(err)
	}
	if !changed {
		// Cancelled between the read and the write.
		return nil, fmt.Errorf("%w: subscription is no longer active", ErrInvalidState)
	}

	s.logger.WithFields(logrus.Fields{
		"subscription_id": subscriptionID,
		"from_plan_id":    subscription.PlanID,
		"to_plan_id":      planID,
	}).Info("Subscription plan changed")
	return s.GetSubscription(ctx, subscriptionID)
}

// Cancel ends the subscription. Cancelled is terminal.
func (s *SubscriptionService) Cancel(ctx context.Context, subscriptionID uint64, now time.Time) (_ *entity.Subscription, err error) {
	ctx, done := startOperation(ctx, s.recorder, "subscription.cancel",
		attribute.Int64("subscription_id", int64(subscriptionID)))
	defer done(&err)

	changed, err := s.subscriptionRepo.Cancel(ctx, subscriptionID, now.UTC())
	if err != nil {
		s.logger.WithError(err).WithField("subscription_id", subscriptionID).Error("Cancel subscription failed")
		return nil, storeError(err)
	}
	if !changed {
		if _, err := s.GetSubscription(ctx, subscriptionID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: subscription is already cancelled", ErrInvalidState)
	}

	s.logger.WithField("subscription_id", subscriptionID).Info("Subscription cancelled")
	return s.GetSubscription(ctx, subscriptionID)
}

func (s *SubscriptionService) GetSubscription(ctx context.Context, id uint64) (*entity.Subscription, error) {
	subscription, err := s.subscriptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if subscription == nil {
		return nil, fmt.Errorf("%w: subscription %d", ErrNotFound, id)
	}
	return subscription, nil
}

func (s *SubscriptionService) ListSubscriptions(ctx context.Context, memberID uint64) ([]*entity.Subscription, error) {
	items, err := s.subscriptionRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, storeError(err)
	}
	return items, nil
}

// ActiveSubscription returns the member's active subscription or nil.
func (s *SubscriptionService) ActiveSubscription(ctx context.Context, memberID uint64) (*entity.Subscription, error) {
	subscription, err := s.subscriptionRepo.FindActiveByMember(ctx, memberID)
	if err != nil {
		return nil, storeError(err)
	}
	return subscription, nil
}

// RunRenewalBatch renews every active auto-renewing subscription whose
// billing date has passed. Individual failures are logged and skipped.
func (s *SubscriptionService) RunRenewalBatch(ctx context.Context, now time.Time) (int, error) {
	items, err := s.subscriptionRepo.ListDueRenewal(ctx, now.UTC(), s.cfg.RenewalBatchSize)
	if err != nil {
		return 0, storeError(err)
	}

	renewed := 0
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return renewed, err
		}
		changed, err := s.subscriptionRepo.Renew(ctx, item.ID, now.UTC().Add(s.cfg.BillingPeriod()), now.UTC())
		if err != nil {
			s.logger.WithError(err).WithField("subscription_id", item.ID).Warn("Renewal failed")
			continue
		}
		if changed {
			renewed++
		}
	}

	if renewed > 0 {
		s.logger.WithField("renewed", renewed).Info("Renewal batch completed")
	}
	return renewed, nil
}

func (s *SubscriptionService) requireMember(ctx context.Context, memberID uint64) error {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return storeError(err)
	}
	if member == nil {
		return fmt.Errorf("%w: member %d", ErrNotFound, memberID)
	}
	return nil
}

func (s *SubscriptionService) requireActivePlan(ctx context.Context, planID uint64) (*entity.Plan, error) {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, storeError(err)
	}
	if plan == nil || !plan.Active {
		return nil, fmt.Errorf("%w: plan %d", ErrNotFound, planID)
	}
	return plan, nil
}
