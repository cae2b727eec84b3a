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

type redemptionRepository interface {
	Redeem(ctx context.Context, redemption *entity.BenefitRedemption, guard repository.RedeemGuard) (*entity.Benefit, error)
	MarkUsed(ctx context.Context, id uint64, usedAt time.Time) (bool, error)
	FindByID(ctx context.Context, id uint64) (*entity.BenefitRedemption, error)
	FindByCode(ctx context.Context, code string) (*entity.BenefitRedemption, error)
	ListByMember(ctx context.Context, memberID uint64) ([]*entity.BenefitRedemption, error)
}

type benefitLookup interface {
	FindByID(ctx context.Context, id uint64) (*entity.Benefit, error)
}

type RedeemResult struct {
	Redemption *entity.BenefitRedemption
	Benefit    *entity.Benefit
}

type RedemptionService struct {
	redemptionRepo   redemptionRepository
	benefitRepo      benefitLookup
	subscriptionRepo activeSubscriptionFinder
	memberRepo       memberLookup
	codes            token.Generator
	recorder         Recorder
	logger           logrus.FieldLogger
}

func NewRedemptionService(
	redemptionRepo redemptionRepository,
	benefitRepo benefitLookup,
	subscriptionRepo activeSubscriptionFinder,
	memberRepo memberLookup,
	codes token.Generator,
	recorder Recorder,
) *RedemptionService {
	return &RedemptionService{
		redemptionRepo:   redemptionRepo,
		benefitRepo:      benefitRepo,
		subscriptionRepo: subscriptionRepo,
		memberRepo:       memberRepo,
		codes:            codes,
		recorder:         recorderOrNop(recorder),
		logger:           factory.NewModuleLogger("redemption-engine"),
	}
}

// CanRedeem reports whether benefit accepts a redemption at now: it must be
// active, inside its validity window and below its quota.
func CanRedeem(benefit *entity.Benefit, now time.Time) bool {
	return redeemBlocker(benefit, now) == nil
}

// redeemBlocker returns the first failing rule in precedence order.
func redeemBlocker(benefit *entity.Benefit, now time.Time) error {
	switch {
	case !benefit.Active:
		return ErrInactive
	case !benefit.WithinWindow(now):
		return ErrExpired
	case !benefit.HasQuota():
		return ErrQuotaExceeded
	default:
		return nil
	}
}

// CanRedeem is the advisory lookup form of CanRedeem for transports.
func (s *RedemptionService) CanRedeem(ctx context.Context, benefitID uint64, now time.Time) (*entity.Benefit, bool, error) {
	benefit, err := s.benefitRepo.FindByID(ctx, benefitID)
	if err != nil {
		return nil, false, storeError(err)
	}
	if benefit == nil {
		return nil, false, fmt.Errorf("%w: benefit %d", ErrNotFound, benefitID)
	}
	return benefit, CanRedeem(benefit, now), nil
}

// Redeem records a redemption and consumes one unit of quota atomically.
// Failures are reported as ErrInactive, ErrExpired, ErrQuotaExceeded or
// ErrAlreadyRedeemed, in that order of precedence, and leave the quota as it
// was.
func (s *RedemptionService) Redeem(ctx context.Context, memberID, benefitID uint64, now time.Time) (_ *RedeemResult, err error) {
	ctx, done := startOperation(ctx, s.recorder, "benefit.redeem",
		attribute.Int64("member_id", int64(memberID)), attribute.Int64("benefit_id", int64(benefitID)))
	defer done(&err)

	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, storeError(err)
	}
	if member == nil {
		return nil, fmt.Errorf("%w: member %d", ErrNotFound, memberID)
	}

	benefit, err := s.benefitRepo.FindByID(ctx, benefitID)
	if err != nil {
		return nil, storeError(err)
	}
	if benefit == nil {
		return nil, fmt.Errorf("%w: benefit %d", ErrNotFound, benefitID)
	}

	active, err := s.subscriptionRepo.FindActiveByMember(ctx, memberID)
	if err != nil {
		return nil, storeError(err)
	}
	if err := CheckBenefitAccess(benefit, active); err != nil {
		return nil, err
	}

	code, err := s.codes.RedemptionCode()
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	redemption := &entity.BenefitRedemption{
		MemberID:   memberID,
		BenefitID:  benefitID,
		Code:       code,
		RedeemedAt: now,
	}
	updated, err := s.redemptionRepo.Redeem(ctx, redemption, func(locked *entity.Benefit) error {
		return redeemBlocker(locked, now)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInactive), errors.Is(err, ErrExpired), errors.Is(err, ErrQuotaExceeded):
			return nil, err
		case errors.Is(err, repository.ErrQuotaExhausted):
			return nil, ErrQuotaExceeded
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrAlreadyRedeemed
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("%w: benefit %d", ErrNotFound, benefitID)
		default:
			s.logger.WithError(err).Error("Redeem benefit failed")
			return nil, storeError(err)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"redemption_id": redemption.ID,
		"member_id":     memberID,
		"benefit_id":    benefitID,
	}).Info("Benefit redeemed")
	return &RedeemResult{Redemption: redemption, Benefit: updated}, nil
}

// ConsumeRedemption marks the redemption used. It returns true exactly once.
func (s *RedemptionService) ConsumeRedemption(ctx context.Context, redemptionID uint64, now time.Time) (_ bool, err error) {
	ctx, done := startOperation(ctx, s.recorder, "benefit.consume", attribute.Int64("redemption_id", int64(redemptionID)))
	defer done(&err)

	changed, err := s.redemptionRepo.MarkUsed(ctx, redemptionID, now.UTC())
	if err != nil {
		s.logger.WithError(err).WithField("redemption_id", redemptionID).Error("Consume redemption failed")
		return false, storeError(err)
	}
	if changed {
		s.logger.WithField("redemption_id", redemptionID).Info("Redemption consumed")
		return true, nil
	}

	if _, err := s.GetRedemption(ctx, redemptionID); err != nil {
		return false, err
	}
	return false, nil
}

// ConsumeRedemptionCode resolves the redemption by code and consumes it.
func (s *RedemptionService) ConsumeRedemptionCode(ctx context.Context, code string, now time.Time) (*entity.BenefitRedemption, bool, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, false, fmt.Errorf("%w: code is required", ErrInvalidRequest)
	}
	redemption, err := s.redemptionRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, false, storeError(err)
	}
	if redemption == nil {
		return nil, false, fmt.Errorf("%w: redemption", ErrNotFound)
	}

	ok, err := s.ConsumeRedemption(ctx, redemption.ID, now)
	if err != nil {
		return nil, false, err
	}
	redemption, err = s.GetRedemption(ctx, redemption.ID)
	if err != nil {
		return nil, false, err
	}
	return redemption, ok, nil
}

func (s *RedemptionService) GetRedemption(ctx context.Context, id uint64) (*entity.BenefitRedemption, error) {
	redemption, err := s.redemptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if redemption == nil {
		return nil, fmt.Errorf("%w: redemption %d", ErrNotFound, id)
	}
	return redemption, nil
}

func (s *RedemptionService) ListRedemptions(ctx context.Context, memberID uint64) ([]*entity.BenefitRedemption, error) {
	items, err := s.redemptionRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, storeError(err)
	}
	return items, nil
}
