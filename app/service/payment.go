package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-memberships/app/entity"
	"github.com/vibast-solutions/ms-go-memberships/app/factory"
	"github.com/vibast-solutions/ms-go-memberships/app/payment"
)

type paymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	Transition(ctx context.Context, id uint64, from, to, transactionID string, processedAt *time.Time) (bool, error)
	FindByID(ctx context.Context, id uint64) (*entity.Payment, error)
	ListByMember(ctx context.Context, memberID uint64) ([]*entity.Payment, error)
}

type subscriptionLookup interface {
	FindByID(ctx context.Context, id uint64) (*entity.Subscription, error)
}

type createPaymentRequest interface {
	GetMemberId() uint64
	GetSubscriptionId() uint64
	GetAmountCents() int64
	GetMethod() string
}

// PaymentService keeps the payment record trail. Settlement is delegated to
// a payment.Gateway.
type PaymentService struct {
	paymentRepo      paymentRepository
	memberRepo       memberLookup
	subscriptionRepo subscriptionLookup
	gateway          payment.Gateway
	logger           logrus.FieldLogger
}

func NewPaymentService(
	paymentRepo paymentRepository,
	memberRepo memberLookup,
	subscriptionRepo subscriptionLookup,
	gateway payment.Gateway,
) *PaymentService {
	return &PaymentService{
		paymentRepo:      paymentRepo,
		memberRepo:       memberRepo,
		subscriptionRepo: subscriptionRepo,
		gateway:          gateway,
		logger:           factory.NewModuleLogger("payments"),
	}
}

func (s *PaymentService) Create(ctx context.Context, req createPaymentRequest, now time.Time) (*entity.Payment, error) {
	method := strings.TrimSpace(req.GetMethod())
	if !isPaymentMethodAllowed(method) {
		return nil, fmt.Errorf("%w: unsupported payment method %q", ErrInvalidRequest, method)
	}
	if req.GetAmountCents() <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
	}

	member, err := s.memberRepo.FindByID(ctx, req.GetMemberId())
	if err != nil {
		return nil, storeError(err)
	}
	if member == nil {
		return nil, fmt.Errorf("%w: member %d", ErrNotFound, req.GetMemberId())
	}

	item := &entity.Payment{
		MemberID:    member.ID,
		AmountCents: req.GetAmountCents(),
		Method:      method,
		Status:      entity.PaymentStatusPending,
		CreatedAt:   now.UTC(),
	}
	if subscriptionID := req.GetSubscriptionId(); subscriptionID != 0 {
		subscription, err := s.subscriptionRepo.FindByID(ctx, subscriptionID)
		if err != nil {
			return nil, storeError(err)
		}
		if subscription == nil || subscription.MemberID != member.ID {
			return nil, fmt.Errorf("%w: subscription %d", ErrNotFound, subscriptionID)
		}
		item.SubscriptionID = &subscriptionID
	}

	if err := s.paymentRepo.Create(ctx, item); err != nil {
		return nil, storeError(err)
	}
	return item, nil
}

// Process settles a pending payment through the gateway. A gateway failure
// moves the payment to failed.
func (s *PaymentService) Process(ctx context.Context, paymentID uint64, now time.Time) (*entity.Payment, error) {
	item, err := s.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if item.Status != entity.PaymentStatusPending {
		return nil, fmt.Errorf("%w: payment is %s", ErrInvalidState, item.Status)
	}

	result := s.gateway.Settle(ctx, payment.Charge{
		PaymentID:   item.ID,
		MemberID:    item.MemberID,
		AmountCents: item.AmountCents,
		Method:      item.Method,
	})

	processedAt := now.UTC()
	target := entity.PaymentStatusCompleted
	if result.Type != payment.ResultTypeSuccess {
		target = entity.PaymentStatusFailed
		s.logger.WithFields(logrus.Fields{"payment_id": item.ID, "reason": result.Error}).Warn("Payment settlement failed")
	}
	return s.transition(ctx, item.ID, entity.PaymentStatusPending, target, result.TransactionID, &processedAt)
}

func (s *PaymentService) Fail(ctx context.Context, paymentID uint64, now time.Time) (*entity.Payment, error) {
	processedAt := now.UTC()
	return s.transition(ctx, paymentID, entity.PaymentStatusPending, entity.PaymentStatusFailed, "", &processedAt)
}

func (s *PaymentService) Refund(ctx context.Context, paymentID uint64) (*entity.Payment, error) {
	return s.transition(ctx, paymentID, entity.PaymentStatusCompleted, entity.PaymentStatusRefunded, "", nil)
}

func (s *PaymentService) GetPayment(ctx context.Context, id uint64) (*entity.Payment, error) {
	item, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: payment %d", ErrNotFound, id)
	}
	return item, nil
}

func (s *PaymentService) ListPayments(ctx context.Context, memberID uint64) ([]*entity.Payment, error) {
	items, err := s.paymentRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, storeError(err)
	}
	return items, nil
}

func (s *PaymentService) transition(ctx context.Context, id uint64, from, to, transactionID string, processedAt *time.Time) (*entity.Payment, error) {
	changed, err := s.paymentRepo.Transition(ctx, id, from, to, transactionID, processedAt)
	if err != nil {
		return nil, storeError(err)
	}
	if !changed {
		current, err := s.GetPayment(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: payment is %s", ErrInvalidState, current.Status)
	}

	s.logger.WithFields(logrus.Fields{"payment_id": id, "status": to}).Info("Payment status changed")
	return s.GetPayment(ctx, id)
}

func isPaymentMethodAllowed(method string) bool {
	switch method {
	case entity.PaymentMethodCreditCard,
		entity.PaymentMethodDebitCard,
		entity.PaymentMethodPix,
		entity.PaymentMethodBankTransfer:
		return true
	default:
		return false
	}
}
